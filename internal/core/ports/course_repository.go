package ports

import (
	"context"

	"github.com/plasturgie/learning-platform/internal/core/domain"
)

// CourseFilter narrows a catalog listing. Zero-value fields are ignored;
// Title matches as a case-insensitive substring.
type CourseFilter struct {
	Category     string
	Mode         string
	InstructorID string
	Title        string
	MaxPrice     *float64
}

// CourseRepository defines persistence for catalog courses.
type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) (*domain.Course, error)
	FindByID(ctx context.Context, id string) (*domain.Course, error)
	FindAll(ctx context.Context, filter CourseFilter) ([]*domain.Course, error)
	Update(ctx context.Context, course *domain.Course) (*domain.Course, error)
	// AddInstructor attaches an instructor to the course's teaching set.
	// Adding an already-attached instructor is a no-op.
	AddInstructor(ctx context.Context, courseID, instructorID string) error
	// RemoveInstructor detaches an instructor; detaching one that is not
	// attached is a no-op.
	RemoveInstructor(ctx context.Context, courseID, instructorID string) error
	// SetInstructors replaces the course's teaching set wholesale.
	SetInstructors(ctx context.Context, courseID string, instructorIDs []string) error
	Delete(ctx context.Context, id string) error
}
