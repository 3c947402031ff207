package ports

import (
	"context"

	"github.com/plasturgie/learning-platform/internal/core/domain"
)

// CreateInstructorInput links a new teaching profile to an existing user.
type CreateInstructorInput struct {
	UserID    string
	Expertise string
	Bio       string
}

// InstructorService defines use-case operations on instructor profiles.
type InstructorService interface {
	Create(ctx context.Context, in CreateInstructorInput) (*domain.Instructor, error)
	GetByID(ctx context.Context, id string) (*domain.Instructor, error)
	// ForUser returns (nil, false, nil) when the user has no instructor
	// profile; callers branch on the boolean, never on an error.
	ForUser(ctx context.Context, userID string) (*domain.Instructor, bool, error)
	List(ctx context.Context) ([]*domain.Instructor, error)
	ListByExpertise(ctx context.Context, expertise string) ([]*domain.Instructor, error)
	ListByMinRating(ctx context.Context, minRating float64) ([]*domain.Instructor, error)
	UpdateProfile(ctx context.Context, id, expertise, bio string) (*domain.Instructor, error)
	// RefreshRating re-derives and persists the aggregate from the current
	// review set (admin-triggered repair path).
	RefreshRating(ctx context.Context, id string) (*domain.Instructor, error)
	Delete(ctx context.Context, id string) error
}
