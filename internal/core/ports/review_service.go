package ports

import (
	"context"

	"github.com/plasturgie/learning-platform/internal/core/domain"
)

// CreateReviewInput carries a new review from the transport layer.
// Exactly one of CourseID / InstructorID is set by the calling handler.
type CreateReviewInput struct {
	AuthorID     string
	CourseID     string
	InstructorID string
	Rating       int
	Comment      string
}

// UpdateReviewInput carries a review mutation. Actor is the authenticated
// principal performing it; only the author or an admin may proceed.
type UpdateReviewInput struct {
	ReviewID string
	Rating   int
	Comment  string
	Actor    *domain.Principal
}

// ReviewService is the rating aggregator: every mutation that touches an
// instructor's review set synchronously recomputes and persists that
// instructor's aggregate rating before returning.
type ReviewService interface {
	CreateCourseReview(ctx context.Context, in CreateReviewInput) (*domain.Review, error)
	CreateInstructorReview(ctx context.Context, in CreateReviewInput) (*domain.Review, error)
	UpdateReview(ctx context.Context, in UpdateReviewInput) (*domain.Review, error)
	DeleteReview(ctx context.Context, reviewID string, actor *domain.Principal) error

	GetReview(ctx context.Context, id string) (*domain.Review, error)
	ReviewsByCourse(ctx context.Context, courseID string) ([]*domain.Review, error)
	ReviewsByInstructor(ctx context.Context, instructorID string) ([]*domain.Review, error)
	ReviewsByUser(ctx context.Context, userID string) ([]*domain.Review, error)
	ReviewsByRating(ctx context.Context, rating int) ([]*domain.Review, error)

	// AverageForCourse is computed on demand and never persisted.
	AverageForCourse(ctx context.Context, courseID string) (float64, error)
	// AverageForInstructor recomputes from the review set without persisting.
	AverageForInstructor(ctx context.Context, instructorID string) (float64, error)
}
