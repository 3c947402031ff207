package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/plasturgie/learning-platform/internal/core/domain"
)

const reviewsCollection = "reviews"

type ReviewRepository struct {
	coll *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{coll: db.Collection(reviewsCollection)}
}

type mongoReview struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       string             `bson:"user_id"`
	CourseID     string             `bson:"course_id,omitempty"`
	InstructorID string             `bson:"instructor_id,omitempty"`
	Rating       int                `bson:"rating"`
	Comment      string             `bson:"comment,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (mr *mongoReview) toDomain() *domain.Review {
	return &domain.Review{
		ID:           mr.ID.Hex(),
		UserID:       mr.UserID,
		CourseID:     mr.CourseID,
		InstructorID: mr.InstructorID,
		Rating:       mr.Rating,
		Comment:      mr.Comment,
		CreatedAt:    mr.CreatedAt,
		UpdatedAt:    mr.UpdatedAt,
	}
}

// Insert stores a review. The partial unique indexes on (user_id, course_id)
// and (user_id, instructor_id) reject a second review by the same user for
// the same subject in the write itself; there is no read-then-insert window.
// A preset ID is honored so a compensating re-insert restores the original
// document identity.
func (r *ReviewRepository) Insert(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoReview{
		UserID:       review.UserID,
		CourseID:     review.CourseID,
		InstructorID: review.InstructorID,
		Rating:       review.Rating,
		Comment:      review.Comment,
		CreatedAt:    review.CreatedAt,
		UpdatedAt:    review.UpdatedAt,
	}
	if review.ID != "" {
		oid, err := primitive.ObjectIDFromHex(review.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid review id %q: %w", review.ID, err)
		}
		doc.ID = oid
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateReview
		}
		return nil, fmt.Errorf("insert review: %w", err)
	}

	created := *review
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id string) (*domain.Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReviewNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mr mongoReview
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("find review: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *ReviewRepository) FindByCourse(ctx context.Context, courseID string) ([]*domain.Review, error) {
	return r.findAll(ctx, bson.M{"course_id": courseID})
}

func (r *ReviewRepository) FindByInstructor(ctx context.Context, instructorID string) ([]*domain.Review, error) {
	return r.findAll(ctx, bson.M{"instructor_id": instructorID})
}

func (r *ReviewRepository) FindByUser(ctx context.Context, userID string) ([]*domain.Review, error) {
	return r.findAll(ctx, bson.M{"user_id": userID})
}

func (r *ReviewRepository) FindByRating(ctx context.Context, rating int) ([]*domain.Review, error) {
	return r.findAll(ctx, bson.M{"rating": rating})
}

func (r *ReviewRepository) findAll(ctx context.Context, filter bson.M) ([]*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find reviews: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Review
	for cur.Next(ctx) {
		var mr mongoReview
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode review: %w", err)
		}
		out = append(out, mr.toDomain())
	}
	return out, cur.Err()
}

func (r *ReviewRepository) Update(ctx context.Context, id string, rating int, comment string) (*domain.Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReviewNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	after := options.After
	var mr mongoReview
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"rating": rating, "comment": comment, "updated_at": time.Now().UTC()}},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&mr)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("update review: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrReviewNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

// EnsureIndexes creates the partial unique compound indexes that back the
// one-review-per-user-per-subject constraint, plus the read-path indexes.
func (r *ReviewRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "course_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"course_id": bson.M{"$exists": true}}),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "instructor_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"instructor_id": bson.M{"$exists": true}}),
		},
		{Keys: bson.D{{Key: "course_id", Value: 1}}},
		{Keys: bson.D{{Key: "instructor_id", Value: 1}}},
		{Keys: bson.D{{Key: "rating", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
