// internal/app/store/meetings/types.go
package meetingstore

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no meeting matches the lookup.
	ErrNotFound = errors.New("meeting not found")
	// ErrOwnerNotFound is returned when the owner user id does not name an
	// account in the directory.
	ErrOwnerNotFound = errors.New("meeting owner not found")
	// ErrOwnerIsPrivileged is returned when the owner resolves to an admin
	// account. Admins schedule meetings; they never own them.
	ErrOwnerIsPrivileged = errors.New("cannot schedule a meeting for an admin account")
	// ErrBadImportance is returned when importance is outside the color
	// table range.
	ErrBadImportance = errors.New("importance out of range")
	// ErrNoOpEdit is returned when an edit changes nothing.
	ErrNoOpEdit = errors.New("there are no changes to save")
)

// NewMeetingParams carries the caller-supplied fields for a new meeting.
// Everything else on the record is derived.
type NewMeetingParams struct {
	OwnerUserID string
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	Importance  int
}

// Patch is a partial update. Nil fields are left untouched; the edit is
// rejected as a no-op when every supplied field matches the stored value.
type Patch struct {
	Title       *string
	Description *string
	Location    *string
	Start       *time.Time
	End         *time.Time
	Importance  *int
}
