package timeouts_test

import (
	"testing"
	"time"

	"github.com/dalemusser/meethub/internal/app/system/timeouts"
)

func TestDefaultsAreOrdered(t *testing.T) {
	t.Cleanup(timeouts.Reset)

	if timeouts.Ping() != timeouts.DefaultPing {
		t.Errorf("Ping: got %v, want %v", timeouts.Ping(), timeouts.DefaultPing)
	}
	if !(timeouts.Ping() < timeouts.Short() &&
		timeouts.Short() < timeouts.Medium() &&
		timeouts.Medium() < timeouts.Long()) {
		t.Errorf("defaults out of order: %v %v %v %v",
			timeouts.Ping(), timeouts.Short(), timeouts.Medium(), timeouts.Long())
	}
}

func TestConfigureOverridesOnlyPositiveValues(t *testing.T) {
	t.Cleanup(timeouts.Reset)

	timeouts.Configure(timeouts.Config{
		Short: 250 * time.Millisecond,
		Long:  time.Minute,
	})

	if timeouts.Short() != 250*time.Millisecond {
		t.Errorf("Short: got %v", timeouts.Short())
	}
	if timeouts.Long() != time.Minute {
		t.Errorf("Long: got %v", timeouts.Long())
	}
	// Zero values in the config leave the current settings alone.
	if timeouts.Ping() != timeouts.DefaultPing {
		t.Errorf("Ping changed: got %v", timeouts.Ping())
	}
	if timeouts.Medium() != timeouts.DefaultMedium {
		t.Errorf("Medium changed: got %v", timeouts.Medium())
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	timeouts.Configure(timeouts.Config{Ping: time.Hour, Medium: time.Hour})
	timeouts.Reset()

	if timeouts.Ping() != timeouts.DefaultPing || timeouts.Medium() != timeouts.DefaultMedium {
		t.Errorf("Reset left overrides in place: %v %v", timeouts.Ping(), timeouts.Medium())
	}
}
