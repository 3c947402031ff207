package ports

import (
	"context"

	"github.com/plasturgie/learning-platform/internal/core/domain"
)

// InstructorRepository defines persistence for instructor profiles.
type InstructorRepository interface {
	Create(ctx context.Context, instructor *domain.Instructor) (*domain.Instructor, error)
	FindByID(ctx context.Context, id string) (*domain.Instructor, error)
	// FindByUser returns (nil, nil) when the user has no instructor profile:
	// absence is a normal outcome, not an error.
	FindByUser(ctx context.Context, userID string) (*domain.Instructor, error)
	FindAll(ctx context.Context) ([]*domain.Instructor, error)
	FindByExpertise(ctx context.Context, expertise string) ([]*domain.Instructor, error)
	FindByMinRating(ctx context.Context, minRating float64) ([]*domain.Instructor, error)
	UpdateProfile(ctx context.Context, id, expertise, bio string) (*domain.Instructor, error)
	// SetRating persists the derived aggregate. Only the rating aggregation
	// paths may call it.
	SetRating(ctx context.Context, id string, rating float64) error
	Delete(ctx context.Context, id string) error
}
