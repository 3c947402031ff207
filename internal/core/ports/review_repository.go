package ports

import (
	"context"

	"github.com/plasturgie/learning-platform/internal/core/domain"
)

// ReviewRepository defines persistence for reviews.
//
// Insert must enforce one-review-per-(user, subject) atomically with the
// write itself (unique constraint), returning domain.ErrDuplicateReview on
// violation. A read-then-insert implementation is not acceptable.
type ReviewRepository interface {
	Insert(ctx context.Context, review *domain.Review) (*domain.Review, error)
	FindByID(ctx context.Context, id string) (*domain.Review, error)
	FindByCourse(ctx context.Context, courseID string) ([]*domain.Review, error)
	FindByInstructor(ctx context.Context, instructorID string) ([]*domain.Review, error)
	FindByUser(ctx context.Context, userID string) ([]*domain.Review, error)
	FindByRating(ctx context.Context, rating int) ([]*domain.Review, error)
	Update(ctx context.Context, id string, rating int, comment string) (*domain.Review, error)
	Delete(ctx context.Context, id string) error
}
