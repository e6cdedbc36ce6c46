// internal/domain/models/meeting.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Importance levels for a meeting. The value doubles as the index into the
// calendar color table, so the set is closed.
const (
	ImportanceHigh   = 0
	ImportanceMedium = 1
	ImportanceLow    = 2
)

// Color is the primary/secondary color pair the calendar frontend renders a
// meeting with. It is derived from Importance, never set by a caller.
type Color struct {
	Primary   string `bson:"primary" json:"primary"`
	Secondary string `bson:"secondary" json:"secondary"`
}

// Meeting is the stored meeting record.
//
// MonthStart, MonthEnd and Year are denormalized from Start/End so month
// listings are an equality match instead of a date range scan. MonthStart and
// MonthEnd are recomputed on every write that touches the corresponding
// timestamp. Year is fixed at creation and deliberately *not* recomputed on
// edit; moving a meeting's start into a different calendar year leaves Year
// stale and the meeting invisible to month listings for the new year.
type Meeting struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"-"`

	// MeetingID is the opaque public identifier, assigned at creation.
	MeetingID string `bson:"meeting_id" json:"id"`

	// Owner is the user the meeting is scheduled for, resolved once at
	// creation from the user directory. Admins cannot be owners.
	OwnerUserID string `bson:"owner_user_id" json:"userId"`
	OwnerEmail  string `bson:"owner_email" json:"userEmail"`

	// CreatedByName is the display name of the admin who scheduled it.
	CreatedByName string `bson:"created_by_name" json:"adminName"`

	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	Location    string `bson:"location" json:"location"`

	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`

	Importance int   `bson:"importance" json:"importance"`
	Color      Color `bson:"color" json:"color"`

	MonthStart int `bson:"month_start" json:"-"` // 0-11, month(Start)
	MonthEnd   int `bson:"month_end" json:"-"`   // 0-11, month(End)
	Year       int `bson:"year" json:"-"`        // year(Start) at creation

	CreatedAt time.Time `bson:"created_at" json:"-"`
	UpdatedAt time.Time `bson:"updated_at" json:"-"`
}

// MeetingSnapshot is the meeting as the notification pipeline sees it: the
// storage id, index fields and timestamps are stripped, but the owner
// identifiers remain so sinks can route the notification.
type MeetingSnapshot struct {
	ID            string    `json:"id"`
	OwnerUserID   string    `json:"userId"`
	OwnerEmail    string    `json:"userEmail"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Importance    int       `json:"importance"`
	Color         Color     `json:"color"`
	CreatedByName string    `json:"adminName"`
}

// MeetingView is the public API shape of a meeting. On top of the snapshot
// strip, the owner identifiers are removed; the caller already knows whose
// meetings it asked for.
type MeetingView struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Importance    int       `json:"importance"`
	Color         Color     `json:"color"`
	CreatedByName string    `json:"adminName"`
}

// Snapshot strips storage and index internals for the notification pipeline.
func (m Meeting) Snapshot() MeetingSnapshot {
	return MeetingSnapshot{
		ID:            m.MeetingID,
		OwnerUserID:   m.OwnerUserID,
		OwnerEmail:    m.OwnerEmail,
		Title:         m.Title,
		Description:   m.Description,
		Location:      m.Location,
		Start:         m.Start,
		End:           m.End,
		Importance:    m.Importance,
		Color:         m.Color,
		CreatedByName: m.CreatedByName,
	}
}

// View strips the owner identifiers from a snapshot for API responses.
func (s MeetingSnapshot) View() MeetingView {
	return MeetingView{
		ID:            s.ID,
		Title:         s.Title,
		Description:   s.Description,
		Location:      s.Location,
		Start:         s.Start,
		End:           s.End,
		Importance:    s.Importance,
		Color:         s.Color,
		CreatedByName: s.CreatedByName,
	}
}

// View is the snapshot-then-strip shortcut used by the list endpoint.
func (m Meeting) View() MeetingView {
	return m.Snapshot().View()
}
