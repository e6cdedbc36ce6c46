// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureMeetings(ctx, db); err != nil {
		problems = append(problems, "meetings: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// ensureIndexSet creates each desired index, reusing an existing index with
// the same key pattern and recreating it when the options drifted.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, desired []mongo.IndexModel) error {
	type existingIndex struct {
		Name   string `bson:"name"`
		Key    bson.D `bson:"key"`
		Unique *bool  `bson:"unique,omitempty"`
	}

	keySig := func(keys bson.D) string {
		parts := make([]string, 0, len(keys))
		for _, kv := range keys {
			parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
		}
		return strings.Join(parts, ", ")
	}

	existing := map[string]existingIndex{} // key signature -> index
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return fmt.Errorf("list indexes: %w", err)
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		existing[keySig(idx.Key)] = idx
	}

	var errs []string
	for _, m := range desired {
		var wantUnique bool
		var wantName string
		if m.Options != nil {
			if m.Options.Unique != nil {
				wantUnique = *m.Options.Unique
			}
			if m.Options.Name != nil {
				wantName = *m.Options.Name
			}
		}
		sig := keySig(m.Keys.(bson.D))

		if ex, ok := existing[sig]; ok {
			haveUnique := ex.Unique != nil && *ex.Unique
			if haveUnique == wantUnique {
				continue
			}
			// Options drifted (e.g. upgrading to unique). Drop and recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), wantName, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if wafflemongo.IsDup(err) && wantUnique {
				errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index, duplicates present", coll.Name(), wantName))
			} else {
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), wantName, err))
			}
			continue
		}
		zap.L().Info("created index",
			zap.String("collection", coll.Name()),
			zap.String("name", wantName),
			zap.String("keys", sig),
			zap.Bool("unique", wantUnique))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("users"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("uniq_users_user_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_users_email").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "user_name_ci", Value: 1}},
			Options: options.Index().SetName("uniq_users_user_name_ci").SetUnique(true),
		},
		// Reset token cleanup scans by expiry.
		{
			Keys:    bson.D{{Key: "reset_token_expiry", Value: 1}},
			Options: options.Index().SetName("idx_users_reset_expiry"),
		},
	})
}

func ensureMeetings(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("meetings"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "meeting_id", Value: 1}},
			Options: options.Index().SetName("uniq_meetings_meeting_id").SetUnique(true),
		},
		// Month listing matches owner + year + either month field.
		{
			Keys: bson.D{
				{Key: "owner_user_id", Value: 1},
				{Key: "year", Value: 1},
				{Key: "month_start", Value: 1},
			},
			Options: options.Index().SetName("idx_meetings_owner_year_mstart"),
		},
		{
			Keys: bson.D{
				{Key: "owner_user_id", Value: 1},
				{Key: "year", Value: 1},
				{Key: "month_end", Value: 1},
			},
			Options: options.Index().SetName("idx_meetings_owner_year_mend"),
		},
		// Reminder scans range on start.
		{
			Keys:    bson.D{{Key: "start", Value: 1}},
			Options: options.Index().SetName("idx_meetings_start"),
		},
	})
}
