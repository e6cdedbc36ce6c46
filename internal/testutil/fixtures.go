// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/dalemusser/meethub/internal/app/system/calendar"
	"github.com/dalemusser/meethub/internal/domain/models"
)

// Fixtures creates seed documents directly in the test database, bypassing
// store-level validation so tests can stage arbitrary states.
type Fixtures struct {
	DB *mongo.Database
}

func NewFixtures(db *mongo.Database) *Fixtures {
	return &Fixtures{DB: db}
}

// CreateUser inserts a user with the given username and password and
// returns the stored document. Admin status follows the username suffix
// convention used by the account store.
func (f *Fixtures) CreateUser(t *testing.T, ctx context.Context, userName, email, password string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	now := time.Now().UTC()
	u := models.User{
		UserID:       uuid.NewString(),
		FirstName:    "Test",
		LastName:     "User",
		UserName:     userName,
		UserNameCI:   strings.ToLower(userName),
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
		IsAdmin:      strings.HasSuffix(strings.ToLower(userName), "admin"),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.DB.Collection("users").InsertOne(ctx, u); err != nil {
		t.Fatalf("insert user fixture: %v", err)
	}
	return u
}

// CreateAdmin inserts a user whose username carries the admin suffix.
func (f *Fixtures) CreateAdmin(t *testing.T, ctx context.Context, email, password string) models.User {
	t.Helper()
	return f.CreateUser(t, ctx, "testadmin", email, password)
}

// CreateMeeting inserts a meeting for the given owner spanning start to end,
// with the derived month and color fields filled in the same way the store
// does on create.
func (f *Fixtures) CreateMeeting(t *testing.T, ctx context.Context, owner models.User, title string, start, end time.Time) models.Meeting {
	t.Helper()

	now := time.Now().UTC()
	m := models.Meeting{
		MeetingID:     uuid.NewString(),
		OwnerUserID:   owner.UserID,
		OwnerEmail:    owner.Email,
		Title:         title,
		Description:   "fixture meeting",
		Location:      "room 1",
		Start:         start,
		End:           end,
		MonthStart:    calendar.MonthOf(start),
		MonthEnd:      calendar.MonthOf(end),
		Year:          calendar.YearOf(start),
		Importance:    models.ImportanceMedium,
		Color:         calendar.ColorFor(models.ImportanceMedium),
		CreatedByName: "testadmin",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := f.DB.Collection("meetings").InsertOne(ctx, m); err != nil {
		t.Fatalf("insert meeting fixture: %v", err)
	}
	return m
}
