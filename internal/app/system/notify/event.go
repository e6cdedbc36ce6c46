// internal/app/system/notify/event.go
package notify

import (
	"fmt"
	"time"

	"github.com/dalemusser/meethub/internal/domain/models"
)

// Kind is the closed set of notification kinds. Sinks switch over it
// exhaustively; adding a kind without teaching every sink about it is a
// compile-visible change, not a silent string mismatch.
type Kind int

const (
	KindCreate Kind = iota
	KindUpdate
	KindDelete
	KindReminder
)

// String returns the wire name of the kind, matching what push clients
// expect in the "type" field.
func (k Kind) String() string {
	switch k {
	case KindCreate:
		return "meeting-create"
	case KindUpdate:
		return "meeting-update"
	case KindDelete:
		return "meeting-delete"
	case KindReminder:
		return "reminder"
	}
	return fmt.Sprintf("notify.Kind(%d)", int(k))
}

// Event is a transient meeting notification. It is produced by the meeting
// store and the reminder scanner, consumed by the dispatcher's sinks, and
// never persisted.
type Event struct {
	Meeting models.MeetingSnapshot
	Title   string
	Message string
	Kind    Kind
}

// Scheduled builds the event published after a meeting is created.
func Scheduled(m models.MeetingSnapshot) Event {
	return Event{
		Meeting: m,
		Title:   "Meeting Scheduled",
		Message: "An admin scheduled a meeting for you",
		Kind:    KindCreate,
	}
}

// Updated builds the event published after a meeting is edited. The snapshot
// is the merged record, not the patch.
func Updated(m models.MeetingSnapshot) Event {
	return Event{
		Meeting: m,
		Title:   "Meeting Update",
		Message: "An admin updated a meeting",
		Kind:    KindUpdate,
	}
}

// Deleted builds the event published after a meeting is removed, carrying
// the removed record's snapshot.
func Deleted(m models.MeetingSnapshot) Event {
	return Event{
		Meeting: m,
		Title:   "Meeting Delete",
		Message: "An admin deleted a meeting",
		Kind:    KindDelete,
	}
}

// Reminder builds the event published for a meeting starting within the
// reminder window.
func Reminder(m models.MeetingSnapshot, window time.Duration) Event {
	return Event{
		Meeting: m,
		Title:   "Meeting Soon",
		Message: fmt.Sprintf("You have a meeting in %d minute", int(window.Minutes())),
		Kind:    KindReminder,
	}
}
