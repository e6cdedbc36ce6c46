// internal/app/system/validate/validate.go

// Package validate holds the pure temporal rules for meeting dates.
package validate

import (
	"errors"
	"time"
)

var (
	// ErrStartAfterEnd is returned when a meeting would end before it starts.
	ErrStartAfterEnd = errors.New("meeting start date time cannot be greater than meeting end date time")

	// ErrStartInPast is returned when a meeting would start before now.
	ErrStartInPast = errors.New("meeting start date time cannot be less than current date time")
)

// VerifyStartEnd checks the temporal invariants on a meeting's dates.
// Rules are checked in order and the first failure wins:
//
//  1. start must not be after end
//  2. start must not be before now
//
// It is called with the submitted values at creation and with the post-merge
// values at edit, so an edit to any field of a meeting whose dates have
// slipped into the past is rejected until the dates are bumped forward.
func VerifyStartEnd(start, end, now time.Time) error {
	if start.After(end) {
		return ErrStartAfterEnd
	}
	if start.Before(now) {
		return ErrStartInPast
	}
	return nil
}
