package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/plasturgie/learning-platform/internal/core/domain"
	"github.com/plasturgie/learning-platform/internal/core/ports"
)

// CourseService manages the course catalog.
type CourseService struct {
	courses     ports.CourseRepository
	instructors ports.InstructorRepository
	log         zerolog.Logger
}

func NewCourseService(courses ports.CourseRepository, instructors ports.InstructorRepository, log zerolog.Logger) *CourseService {
	return &CourseService{courses: courses, instructors: instructors, log: log}
}

func (s *CourseService) Create(ctx context.Context, in ports.CourseInput, creator *domain.Principal) (*domain.Course, error) {
	now := time.Now().UTC()
	course := &domain.Course{
		Title:         in.Title,
		Description:   in.Description,
		Category:      in.Category,
		Mode:          in.Mode,
		DurationHours: in.DurationHours,
		Price:         in.Price,
		InstructorIDs: []string{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.courses.Create(ctx, course)
	if err != nil {
		return nil, err
	}

	// A creating instructor becomes the course's first instructor. Having no
	// profile is a normal outcome for admins, not an error path.
	if creator.HasAnyRole(domain.RoleInstructor) {
		instructor, err := s.instructors.FindByUser(ctx, creator.UserID)
		if err != nil {
			return nil, err
		}
		if instructor != nil {
			if err := s.courses.AddInstructor(ctx, created.ID, instructor.ID); err != nil {
				return nil, err
			}
			created.InstructorIDs = append(created.InstructorIDs, instructor.ID)
		}
	}

	s.log.Info().Str("course_id", created.ID).Str("title", in.Title).Msg("course created")
	return created, nil
}

func (s *CourseService) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	return s.courses.FindByID(ctx, id)
}

func (s *CourseService) List(ctx context.Context, filter ports.CourseFilter) ([]*domain.Course, error) {
	return s.courses.FindAll(ctx, filter)
}

func (s *CourseService) Update(ctx context.Context, id string, in ports.CourseInput) (*domain.Course, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	course.Title = in.Title
	course.Description = in.Description
	course.Category = in.Category
	course.Mode = in.Mode
	course.DurationHours = in.DurationHours
	course.Price = in.Price
	course.UpdatedAt = time.Now().UTC()

	return s.courses.Update(ctx, course)
}

func (s *CourseService) AddInstructor(ctx context.Context, courseID, instructorID string) error {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		return err
	}
	if _, err := s.instructors.FindByID(ctx, instructorID); err != nil {
		return err
	}
	return s.courses.AddInstructor(ctx, courseID, instructorID)
}

func (s *CourseService) RemoveInstructor(ctx context.Context, courseID, instructorID string) error {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		return err
	}
	if _, err := s.instructors.FindByID(ctx, instructorID); err != nil {
		return err
	}
	return s.courses.RemoveInstructor(ctx, courseID, instructorID)
}

func (s *CourseService) SetInstructors(ctx context.Context, courseID string, instructorIDs []string) error {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		return err
	}
	for _, id := range instructorIDs {
		if _, err := s.instructors.FindByID(ctx, id); err != nil {
			return err
		}
	}
	return s.courses.SetInstructors(ctx, courseID, instructorIDs)
}

func (s *CourseService) Delete(ctx context.Context, id string) error {
	if _, err := s.courses.FindByID(ctx, id); err != nil {
		return err
	}
	return s.courses.Delete(ctx, id)
}
