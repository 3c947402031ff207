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

const instructorsCollection = "instructors"

type InstructorRepository struct {
	coll *mongo.Collection
}

func NewInstructorRepository(db *mongo.Database) *InstructorRepository {
	return &InstructorRepository{coll: db.Collection(instructorsCollection)}
}

type mongoInstructor struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Expertise string             `bson:"expertise"`
	Bio       string             `bson:"bio,omitempty"`
	Rating    float64            `bson:"rating"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (mi *mongoInstructor) toDomain() *domain.Instructor {
	return &domain.Instructor{
		ID:        mi.ID.Hex(),
		UserID:    mi.UserID,
		Expertise: mi.Expertise,
		Bio:       mi.Bio,
		Rating:    mi.Rating,
		CreatedAt: mi.CreatedAt,
		UpdatedAt: mi.UpdatedAt,
	}
}

func (r *InstructorRepository) Create(ctx context.Context, inst *domain.Instructor) (*domain.Instructor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoInstructor{
		UserID:    inst.UserID,
		Expertise: inst.Expertise,
		Bio:       inst.Bio,
		Rating:    inst.Rating,
		CreatedAt: inst.CreatedAt,
		UpdatedAt: inst.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert instructor: %w", err)
	}

	created := *inst
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *InstructorRepository) FindByID(ctx context.Context, id string) (*domain.Instructor, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInstructorNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mi mongoInstructor
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mi); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInstructorNotFound
		}
		return nil, fmt.Errorf("find instructor: %w", err)
	}
	return mi.toDomain(), nil
}

// FindByUser returns (nil, nil) when the user has no instructor profile;
// absence is a normal outcome here, not an error.
func (r *InstructorRepository) FindByUser(ctx context.Context, userID string) (*domain.Instructor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mi mongoInstructor
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&mi); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find instructor by user: %w", err)
	}
	return mi.toDomain(), nil
}

func (r *InstructorRepository) FindAll(ctx context.Context) ([]*domain.Instructor, error) {
	return r.findAll(ctx, bson.M{})
}

func (r *InstructorRepository) FindByExpertise(ctx context.Context, expertise string) ([]*domain.Instructor, error) {
	return r.findAll(ctx, bson.M{"expertise": expertise})
}

func (r *InstructorRepository) FindByMinRating(ctx context.Context, minRating float64) ([]*domain.Instructor, error) {
	return r.findAll(ctx, bson.M{"rating": bson.M{"$gte": minRating}})
}

func (r *InstructorRepository) findAll(ctx context.Context, filter bson.M) ([]*domain.Instructor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find instructors: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Instructor
	for cur.Next(ctx) {
		var mi mongoInstructor
		if err := cur.Decode(&mi); err != nil {
			return nil, fmt.Errorf("decode instructor: %w", err)
		}
		out = append(out, mi.toDomain())
	}
	return out, cur.Err()
}

func (r *InstructorRepository) UpdateProfile(ctx context.Context, id, expertise, bio string) (*domain.Instructor, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInstructorNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	after := options.After
	var mi mongoInstructor
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"expertise": expertise, "bio": bio, "updated_at": time.Now().UTC()}},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&mi)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInstructorNotFound
		}
		return nil, fmt.Errorf("update instructor: %w", err)
	}
	return mi.toDomain(), nil
}

// SetRating persists the aggregate rating. Only the rating aggregator and
// the refresh path call this.
func (r *InstructorRepository) SetRating(ctx context.Context, id string, rating float64) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInstructorNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"rating": rating, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("set rating: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrInstructorNotFound
	}
	return nil
}

func (r *InstructorRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInstructorNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete instructor: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrInstructorNotFound
	}
	return nil
}

// EnsureIndexes creates the user link and rating read-path indexes.
func (r *InstructorRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "expertise", Value: 1}}},
		{Keys: bson.D{{Key: "rating", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
