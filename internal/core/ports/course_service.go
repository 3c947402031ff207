package ports

import (
	"context"

	"github.com/plasturgie/learning-platform/internal/core/domain"
)

// CourseInput carries course fields from the transport layer.
type CourseInput struct {
	Title         string
	Description   string
	Category      string
	Mode          string
	DurationHours int
	Price         float64
}

// CourseService defines use-case operations on the course catalog.
type CourseService interface {
	// Create stores the course and, when the creator has an instructor
	// profile, attaches them as its first instructor.
	Create(ctx context.Context, in CourseInput, creator *domain.Principal) (*domain.Course, error)
	GetByID(ctx context.Context, id string) (*domain.Course, error)
	List(ctx context.Context, filter CourseFilter) ([]*domain.Course, error)
	Update(ctx context.Context, id string, in CourseInput) (*domain.Course, error)
	AddInstructor(ctx context.Context, courseID, instructorID string) error
	RemoveInstructor(ctx context.Context, courseID, instructorID string) error
	// SetInstructors replaces the teaching set; every id must resolve to an
	// existing instructor or the whole call fails.
	SetInstructors(ctx context.Context, courseID string, instructorIDs []string) error
	Delete(ctx context.Context, id string) error
}
