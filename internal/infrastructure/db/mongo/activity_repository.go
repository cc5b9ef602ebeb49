package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bugtrackr/bug-tracker-api/internal/core/domain"
	"github.com/bugtrackr/bug-tracker-api/internal/core/ports"
)

const collectionActivity = "activity_log"

// ActivityRepository implements ports.ActivityRepository using MongoDB.
type ActivityRepository struct {
	col *mongo.Collection
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(db *mongo.Database) ports.ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivity)}
}

// Insert persists an activity event to the activity_log collection.
func (r *ActivityRepository) Insert(ctx context.Context, event *domain.ActivityEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"bug_id":       event.BugID,
		"actor":        event.Actor,
		"action":       event.Action,
		"at":           event.At.UTC(),
		"processed_at": time.Now().UTC(),
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// FindByBug returns the audit trail for one bug, newest first.
func (r *ActivityRepository) FindByBug(ctx context.Context, bugID string) ([]*domain.ActivityEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"bug_id": bugID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer cursor.Close(ctx)

	var events []*domain.ActivityEvent
	for cursor.Next(ctx) {
		var doc struct {
			BugID  string    `bson:"bug_id"`
			Actor  string    `bson:"actor"`
			Action string    `bson:"action"`
			At     time.Time `bson:"at"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode activity: %w", err)
		}
		events = append(events, &domain.ActivityEvent{
			BugID:  doc.BugID,
			Actor:  doc.Actor,
			Action: doc.Action,
			At:     doc.At.UTC(),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return events, nil
}
