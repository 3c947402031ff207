package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/plasturgie/learning-platform/internal/core/domain"
	"github.com/plasturgie/learning-platform/internal/core/ports"
)

// InstructorService manages teaching profiles. It never writes the rating
// field outside RefreshRating, which reuses the aggregator's recompute rule.
type InstructorService struct {
	instructors ports.InstructorRepository
	reviews     ports.ReviewRepository
	users       ports.UserRepository
	locks       SubjectLocker
	log         zerolog.Logger
}

func NewInstructorService(
	instructors ports.InstructorRepository,
	reviews ports.ReviewRepository,
	users ports.UserRepository,
	locks SubjectLocker,
	log zerolog.Logger,
) *InstructorService {
	return &InstructorService{
		instructors: instructors,
		reviews:     reviews,
		users:       users,
		locks:       locks,
		log:         log,
	}
}

func (s *InstructorService) Create(ctx context.Context, in ports.CreateInstructorInput) (*domain.Instructor, error) {
	if _, err := s.users.FindByID(ctx, in.UserID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	instructor := &domain.Instructor{
		UserID:    in.UserID,
		Expertise: in.Expertise,
		Bio:       in.Bio,
		Rating:    0, // no reviews yet
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.instructors.Create(ctx, instructor)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("instructor_id", created.ID).Str("user_id", in.UserID).Msg("instructor created")
	return created, nil
}

func (s *InstructorService) GetByID(ctx context.Context, id string) (*domain.Instructor, error) {
	return s.instructors.FindByID(ctx, id)
}

// ForUser resolves a user's teaching profile. Absence is an ordinary
// outcome reported through the boolean, not an error.
func (s *InstructorService) ForUser(ctx context.Context, userID string) (*domain.Instructor, bool, error) {
	instructor, err := s.instructors.FindByUser(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if instructor == nil {
		return nil, false, nil
	}
	return instructor, true, nil
}

func (s *InstructorService) List(ctx context.Context) ([]*domain.Instructor, error) {
	return s.instructors.FindAll(ctx)
}

func (s *InstructorService) ListByExpertise(ctx context.Context, expertise string) ([]*domain.Instructor, error) {
	return s.instructors.FindByExpertise(ctx, expertise)
}

func (s *InstructorService) ListByMinRating(ctx context.Context, minRating float64) ([]*domain.Instructor, error) {
	return s.instructors.FindByMinRating(ctx, minRating)
}

func (s *InstructorService) UpdateProfile(ctx context.Context, id, expertise, bio string) (*domain.Instructor, error) {
	return s.instructors.UpdateProfile(ctx, id, expertise, bio)
}

// RefreshRating re-derives the stored aggregate from the current review set,
// inside the same per-instructor critical section the aggregator uses.
func (s *InstructorService) RefreshRating(ctx context.Context, id string) (*domain.Instructor, error) {
	if _, err := s.instructors.FindByID(ctx, id); err != nil {
		return nil, err
	}

	release, err := s.locks.Acquire(ctx, instructorLockKey(id))
	if err != nil {
		return nil, fmt.Errorf("acquire instructor lock: %w", err)
	}
	defer release()

	reviews, err := s.reviews.FindByInstructor(ctx, id)
	if err != nil {
		return nil, err
	}
	rating := domain.AverageRating(reviews)
	if err := s.instructors.SetRating(ctx, id, rating); err != nil {
		return nil, err
	}

	return s.instructors.FindByID(ctx, id)
}

func (s *InstructorService) Delete(ctx context.Context, id string) error {
	if _, err := s.instructors.FindByID(ctx, id); err != nil {
		return err
	}
	return s.instructors.Delete(ctx, id)
}
