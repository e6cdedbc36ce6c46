// internal/app/store/meetings/store.go
package meetingstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	userstore "github.com/dalemusser/meethub/internal/app/store/users"
	"github.com/dalemusser/meethub/internal/app/system/calendar"
	"github.com/dalemusser/meethub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/meethub/internal/app/system/notify"
	"github.com/dalemusser/meethub/internal/app/system/timeouts"
	"github.com/dalemusser/meethub/internal/app/system/validate"
	"github.com/dalemusser/meethub/internal/domain/models"
)

// Directory resolves an owner user id to an account. The users store
// satisfies it; tests substitute a stub.
type Directory interface {
	FindByUserID(ctx context.Context, userID string) (models.User, error)
}

// Store manages meeting records and publishes a notification event for
// every successful write.
type Store struct {
	c         *mongo.Collection
	directory Directory
	events    notify.Publisher
}

// New creates a meetings Store backed by the given database. Every create,
// edit and delete publishes an event to the given publisher after the write
// lands.
func New(db *mongo.Database, directory Directory, events notify.Publisher) *Store {
	return &Store{
		c:         db.Collection("meetings"),
		directory: directory,
		events:    events,
	}
}

// Create validates and stores a new meeting scheduled by the named admin,
// then publishes a meeting-create event.
//
// The owner is resolved from the directory at creation time; the resolved
// email is frozen onto the record and is not updated if the account later
// changes its address.
func (s *Store) Create(ctx context.Context, createdByName string, p NewMeetingParams) (models.Meeting, error) {
	owner, err := s.directory.FindByUserID(ctx, p.OwnerUserID)
	if errors.Is(err, userstore.ErrNotFound) {
		return models.Meeting{}, ErrOwnerNotFound
	}
	if err != nil {
		return models.Meeting{}, fmt.Errorf("resolve owner: %w", err)
	}
	if owner.IsAdmin {
		return models.Meeting{}, ErrOwnerIsPrivileged
	}

	if !calendar.ValidImportance(p.Importance) {
		return models.Meeting{}, ErrBadImportance
	}
	if err := validate.VerifyStartEnd(p.Start, p.End, time.Now()); err != nil {
		return models.Meeting{}, err
	}

	now := time.Now().UTC()
	m := models.Meeting{
		MeetingID:     uuid.NewString(),
		OwnerUserID:   owner.UserID,
		OwnerEmail:    owner.Email,
		CreatedByName: createdByName,
		Title:         htmlsanitize.Text(p.Title),
		Description:   htmlsanitize.Sanitize(p.Description),
		Location:      htmlsanitize.Text(p.Location),
		Start:         p.Start,
		End:           p.End,
		Importance:    p.Importance,
		Color:         calendar.ColorFor(p.Importance),
		MonthStart:    calendar.MonthOf(p.Start),
		MonthEnd:      calendar.MonthOf(p.End),
		Year:          calendar.YearOf(p.Start),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	dbctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	if _, err := s.c.InsertOne(dbctx, m); err != nil {
		return models.Meeting{}, err
	}

	s.events.Publish(notify.Scheduled(m.Snapshot()))
	return m, nil
}

// FindByMeetingID looks up a meeting by its public identifier.
func (s *Store) FindByMeetingID(ctx context.Context, meetingID string) (models.Meeting, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	var m models.Meeting
	err := s.c.FindOne(ctx, bson.M{"meeting_id": meetingID}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return models.Meeting{}, ErrNotFound
	}
	return m, err
}

// Edit applies a partial update to a meeting and publishes a meeting-update
// event. The merged record is re-validated, so an edit that leaves the start
// in the past fails even when the timestamps themselves were not touched.
//
// MonthStart and MonthEnd are recomputed when the corresponding timestamp
// changes. Year is not; see the Meeting doc comment.
func (s *Store) Edit(ctx context.Context, meetingID string, p Patch) (models.Meeting, error) {
	m, err := s.FindByMeetingID(ctx, meetingID)
	if err != nil {
		return models.Meeting{}, err
	}

	changed := false
	if p.Title != nil {
		if t := htmlsanitize.Text(*p.Title); t != m.Title {
			m.Title = t
			changed = true
		}
	}
	if p.Description != nil {
		if d := htmlsanitize.Sanitize(*p.Description); d != m.Description {
			m.Description = d
			changed = true
		}
	}
	if p.Location != nil {
		if l := htmlsanitize.Text(*p.Location); l != m.Location {
			m.Location = l
			changed = true
		}
	}
	if p.Start != nil && !p.Start.Equal(m.Start) {
		m.Start = *p.Start
		m.MonthStart = calendar.MonthOf(m.Start)
		changed = true
	}
	if p.End != nil && !p.End.Equal(m.End) {
		m.End = *p.End
		m.MonthEnd = calendar.MonthOf(m.End)
		changed = true
	}
	if p.Importance != nil && *p.Importance != m.Importance {
		if !calendar.ValidImportance(*p.Importance) {
			return models.Meeting{}, ErrBadImportance
		}
		m.Importance = *p.Importance
		m.Color = calendar.ColorFor(m.Importance)
		changed = true
	}

	// Validation runs before the no-change check, so a no-op patch against a
	// past meeting still reports the timestamp problem.
	if err := validate.VerifyStartEnd(m.Start, m.End, time.Now()); err != nil {
		return models.Meeting{}, err
	}
	if !changed {
		return models.Meeting{}, ErrNoOpEdit
	}

	m.UpdatedAt = time.Now().UTC()

	dbctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	res, err := s.c.ReplaceOne(dbctx, bson.M{"meeting_id": meetingID}, m)
	if err != nil {
		return models.Meeting{}, err
	}
	// A concurrent delete between the read and the write surfaces as not
	// found rather than silently resurrecting the record.
	if res.MatchedCount == 0 {
		return models.Meeting{}, ErrNotFound
	}

	s.events.Publish(notify.Updated(m.Snapshot()))
	return m, nil
}

// Delete removes a meeting and publishes a meeting-delete event carrying the
// removed record. Concurrent deletes of the same meeting succeed exactly
// once; the loser gets ErrNotFound.
func (s *Store) Delete(ctx context.Context, meetingID string) (models.Meeting, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	var m models.Meeting
	err := s.c.FindOneAndDelete(ctx, bson.M{"meeting_id": meetingID}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return models.Meeting{}, ErrNotFound
	}
	if err != nil {
		return models.Meeting{}, err
	}

	s.events.Publish(notify.Deleted(m.Snapshot()))
	return m, nil
}

// ListByMonth returns the owner's meetings that touch the given zero-based
// month in the given year, ordered by start time. A meeting matches when
// either its start month or its end month equals the requested month.
func (s *Store) ListByMonth(ctx context.Context, ownerUserID string, month, year int) ([]models.Meeting, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()

	filter := bson.M{
		"owner_user_id": ownerUserID,
		"year":          year,
		"$or": []bson.M{
			{"month_start": month},
			{"month_end": month},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})

	cursor, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	meetings := []models.Meeting{}
	if err := cursor.All(ctx, &meetings); err != nil {
		return nil, err
	}
	return meetings, nil
}

// ListStartingWithin returns meetings whose start falls in [from, from+window],
// both ends inclusive, ordered by start time. The reminder scanner uses this
// with its tick interval as the window.
func (s *Store) ListStartingWithin(ctx context.Context, from time.Time, window time.Duration) ([]models.Meeting, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()

	filter := bson.M{"start": bson.M{
		"$gte": from,
		"$lte": from.Add(window),
	}}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})

	cursor, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	meetings := []models.Meeting{}
	if err := cursor.All(ctx, &meetings); err != nil {
		return nil, err
	}
	return meetings, nil
}
