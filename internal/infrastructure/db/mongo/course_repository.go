package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/plasturgie/learning-platform/internal/core/domain"
	"github.com/plasturgie/learning-platform/internal/core/ports"
)

const coursesCollection = "courses"

type CourseRepository struct {
	coll *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{coll: db.Collection(coursesCollection)}
}

type mongoCourse struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Description   string             `bson:"description,omitempty"`
	Category      string             `bson:"category"`
	Mode          string             `bson:"mode"`
	DurationHours int                `bson:"duration_hours"`
	Price         float64            `bson:"price"`
	InstructorIDs []string           `bson:"instructor_ids"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (mc *mongoCourse) toDomain() *domain.Course {
	return &domain.Course{
		ID:            mc.ID.Hex(),
		Title:         mc.Title,
		Description:   mc.Description,
		Category:      mc.Category,
		Mode:          mc.Mode,
		DurationHours: mc.DurationHours,
		Price:         mc.Price,
		InstructorIDs: mc.InstructorIDs,
		CreatedAt:     mc.CreatedAt,
		UpdatedAt:     mc.UpdatedAt,
	}
}

func (r *CourseRepository) Create(ctx context.Context, course *domain.Course) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	ids := course.InstructorIDs
	if ids == nil {
		ids = []string{}
	}
	doc := mongoCourse{
		Title:         course.Title,
		Description:   course.Description,
		Category:      course.Category,
		Mode:          course.Mode,
		DurationHours: course.DurationHours,
		Price:         course.Price,
		InstructorIDs: ids,
		CreatedAt:     course.CreatedAt,
		UpdatedAt:     course.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert course: %w", err)
	}

	created := *course
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*domain.Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCourseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoCourse
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	return mc.toDomain(), nil
}

// FindAll lists the catalog, narrowed by any non-zero filter fields. Title
// matches as a case-insensitive regex on an escaped literal.
func (r *CourseRepository) FindAll(ctx context.Context, filter ports.CourseFilter) ([]*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Mode != "" {
		query["mode"] = filter.Mode
	}
	if filter.InstructorID != "" {
		query["instructor_ids"] = filter.InstructorID
	}
	if filter.Title != "" {
		query["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Title), Options: "i"}
	}
	if filter.MaxPrice != nil {
		query["price"] = bson.M{"$lte": *filter.MaxPrice}
	}

	cur, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("find courses: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Course
	for cur.Next(ctx) {
		var mc mongoCourse
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode course: %w", err)
		}
		out = append(out, mc.toDomain())
	}
	return out, cur.Err()
}

func (r *CourseRepository) Update(ctx context.Context, course *domain.Course) (*domain.Course, error) {
	oid, err := primitive.ObjectIDFromHex(course.ID)
	if err != nil {
		return nil, domain.ErrCourseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	after := options.After
	var mc mongoCourse
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"title":          course.Title,
			"description":    course.Description,
			"category":       course.Category,
			"mode":           course.Mode,
			"duration_hours": course.DurationHours,
			"price":          course.Price,
			"updated_at":     time.Now().UTC(),
		}},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&mc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("update course: %w", err)
	}
	return mc.toDomain(), nil
}

// AddInstructor attaches an instructor to a course. $addToSet makes the
// operation idempotent: attaching twice is a no-op.
func (r *CourseRepository) AddInstructor(ctx context.Context, courseID, instructorID string) error {
	oid, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return domain.ErrCourseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$addToSet": bson.M{"instructor_ids": instructorID},
			"$set":      bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("add instructor: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

// RemoveInstructor detaches an instructor. $pull makes the operation
// idempotent: detaching an unattached instructor is a no-op.
func (r *CourseRepository) RemoveInstructor(ctx context.Context, courseID, instructorID string) error {
	oid, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return domain.ErrCourseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$pull": bson.M{"instructor_ids": instructorID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("remove instructor: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

func (r *CourseRepository) SetInstructors(ctx context.Context, courseID string, instructorIDs []string) error {
	oid, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return domain.ErrCourseNotFound
	}

	if instructorIDs == nil {
		instructorIDs = []string{}
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"instructor_ids": instructorIDs,
			"updated_at":     time.Now().UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("set instructors: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCourseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

// EnsureIndexes creates the catalog read-path indexes.
func (r *CourseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "instructor_ids", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
