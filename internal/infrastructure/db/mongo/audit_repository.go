package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/plasturgie/learning-platform/internal/core/ports"
)

const reviewEventsCollection = "review_events"

// AuditRepository persists the review audit trail written by the dispatcher
// workers. Events are append-only.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(reviewEventsCollection)}
}

type mongoReviewEvent struct {
	Action      string    `bson:"action"`
	ReviewID    string    `bson:"review_id"`
	SubjectID   string    `bson:"subject_id"`
	SubjectType string    `bson:"subject_type"`
	ActorID     string    `bson:"actor_id"`
	Rating      int       `bson:"rating"`
	OccurredAt  time.Time `bson:"occurred_at"`
}

func (r *AuditRepository) InsertReviewEvent(ctx context.Context, event *ports.ReviewAuditEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoReviewEvent{
		Action:      event.Action,
		ReviewID:    event.ReviewID,
		SubjectID:   event.SubjectID,
		SubjectType: event.SubjectType,
		ActorID:     event.ActorID,
		Rating:      event.Rating,
		OccurredAt:  event.OccurredAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert review event: %w", err)
	}
	return nil
}

// EnsureIndexes creates the audit query indexes.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "subject_id", Value: 1}, {Key: "occurred_at", Value: 1}}},
		{Keys: bson.D{{Key: "review_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
