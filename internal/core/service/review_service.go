package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/plasturgie/learning-platform/internal/core/domain"
	"github.com/plasturgie/learning-platform/internal/core/ports"
)

// SubjectLocker serializes the {mutate review set, recompute, persist
// aggregate} unit per subject key. Locks for different keys never contend.
type SubjectLocker interface {
	// Acquire blocks until the key's lock is held or ctx is done, and
	// returns the release function.
	Acquire(ctx context.Context, key string) (func(), error)
}

// ReviewAuditor records review mutations for the audit trail. Recording is
// asynchronous and must never affect the mutation's outcome.
type ReviewAuditor interface {
	Record(event ports.ReviewAuditEvent)
}

// ReviewService is the rating aggregator. Instructor aggregates are
// recomputed in full (fetch all reviews, mean, round half-up to one decimal)
// inside a per-instructor critical section; course averages are computed on
// demand and never persisted.
type ReviewService struct {
	reviews     ports.ReviewRepository
	instructors ports.InstructorRepository
	courses     ports.CourseRepository
	users       ports.UserRepository
	locks       SubjectLocker
	audit       ReviewAuditor
	log         zerolog.Logger
}

func NewReviewService(
	reviews ports.ReviewRepository,
	instructors ports.InstructorRepository,
	courses ports.CourseRepository,
	users ports.UserRepository,
	locks SubjectLocker,
	audit ReviewAuditor,
	log zerolog.Logger,
) *ReviewService {
	return &ReviewService{
		reviews:     reviews,
		instructors: instructors,
		courses:     courses,
		users:       users,
		locks:       locks,
		audit:       audit,
		log:         log,
	}
}

func (s *ReviewService) CreateCourseReview(ctx context.Context, in ports.CreateReviewInput) (*domain.Review, error) {
	if !domain.ValidRating(in.Rating) {
		return nil, domain.ErrInvalidRating
	}
	if _, err := s.courses.FindByID(ctx, in.CourseID); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, in.AuthorID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	review := &domain.Review{
		UserID:    in.AuthorID,
		CourseID:  in.CourseID,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Course averages are derived on demand, so no critical section is
	// needed here: uniqueness is enforced by the insert itself.
	created, err := s.reviews.Insert(ctx, review)
	if err != nil {
		return nil, err
	}

	s.record(ports.AuditReviewCreated, created, "course", created.CourseID, in.AuthorID)
	s.log.Info().Str("review_id", created.ID).Str("course_id", in.CourseID).Int("rating", in.Rating).Msg("course review created")
	return created, nil
}

func (s *ReviewService) CreateInstructorReview(ctx context.Context, in ports.CreateReviewInput) (*domain.Review, error) {
	if !domain.ValidRating(in.Rating) {
		return nil, domain.ErrInvalidRating
	}
	if _, err := s.instructors.FindByID(ctx, in.InstructorID); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, in.AuthorID); err != nil {
		return nil, err
	}

	release, err := s.locks.Acquire(ctx, instructorLockKey(in.InstructorID))
	if err != nil {
		return nil, fmt.Errorf("acquire instructor lock: %w", err)
	}
	defer release()

	now := time.Now().UTC()
	review := &domain.Review{
		UserID:       in.AuthorID,
		InstructorID: in.InstructorID,
		Rating:       in.Rating,
		Comment:      in.Comment,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.reviews.Insert(ctx, review)
	if err != nil {
		return nil, err
	}

	// Review write and aggregate write succeed or fail together: a failed
	// recompute removes the review just written.
	if err := s.recomputeInstructor(ctx, in.InstructorID); err != nil {
		if delErr := s.reviews.Delete(ctx, created.ID); delErr != nil {
			s.log.Error().Err(delErr).Str("review_id", created.ID).Msg("rollback of review insert failed")
		}
		return nil, err
	}

	s.record(ports.AuditReviewCreated, created, "instructor", created.InstructorID, in.AuthorID)
	s.log.Info().Str("review_id", created.ID).Str("instructor_id", in.InstructorID).Int("rating", in.Rating).Msg("instructor review created")
	return created, nil
}

func (s *ReviewService) UpdateReview(ctx context.Context, in ports.UpdateReviewInput) (*domain.Review, error) {
	if !domain.ValidRating(in.Rating) {
		return nil, domain.ErrInvalidRating
	}

	review, err := s.reviews.FindByID(ctx, in.ReviewID)
	if err != nil {
		return nil, err
	}
	if !canMutate(in.Actor, review) {
		return nil, domain.ErrForbidden
	}

	if review.InstructorID == "" {
		updated, err := s.reviews.Update(ctx, in.ReviewID, in.Rating, in.Comment)
		if err != nil {
			return nil, err
		}
		s.record(ports.AuditReviewUpdated, updated, "course", updated.CourseID, in.Actor.UserID)
		return updated, nil
	}

	release, err := s.locks.Acquire(ctx, instructorLockKey(review.InstructorID))
	if err != nil {
		return nil, fmt.Errorf("acquire instructor lock: %w", err)
	}
	defer release()

	updated, err := s.reviews.Update(ctx, in.ReviewID, in.Rating, in.Comment)
	if err != nil {
		return nil, err
	}

	if err := s.recomputeInstructor(ctx, review.InstructorID); err != nil {
		// Restore the pre-update values so no half-applied state survives.
		if _, restoreErr := s.reviews.Update(ctx, review.ID, review.Rating, review.Comment); restoreErr != nil {
			s.log.Error().Err(restoreErr).Str("review_id", review.ID).Msg("rollback of review update failed")
		}
		return nil, err
	}

	s.record(ports.AuditReviewUpdated, updated, "instructor", updated.InstructorID, in.Actor.UserID)
	return updated, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, reviewID string, actor *domain.Principal) error {
	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if !canMutate(actor, review) {
		return domain.ErrForbidden
	}

	if review.InstructorID == "" {
		if err := s.reviews.Delete(ctx, reviewID); err != nil {
			return err
		}
		s.record(ports.AuditReviewDeleted, review, "course", review.CourseID, actor.UserID)
		return nil
	}

	release, err := s.locks.Acquire(ctx, instructorLockKey(review.InstructorID))
	if err != nil {
		return fmt.Errorf("acquire instructor lock: %w", err)
	}
	defer release()

	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return err
	}

	if err := s.recomputeInstructor(ctx, review.InstructorID); err != nil {
		// Re-insert the deleted review (its id is preserved) so the review
		// set and the stored aggregate stay consistent with each other.
		if _, insErr := s.reviews.Insert(ctx, review); insErr != nil {
			s.log.Error().Err(insErr).Str("review_id", review.ID).Msg("rollback of review delete failed")
		}
		return err
	}

	s.record(ports.AuditReviewDeleted, review, "instructor", review.InstructorID, actor.UserID)
	return nil
}

func (s *ReviewService) GetReview(ctx context.Context, id string) (*domain.Review, error) {
	return s.reviews.FindByID(ctx, id)
}

func (s *ReviewService) ReviewsByCourse(ctx context.Context, courseID string) ([]*domain.Review, error) {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.reviews.FindByCourse(ctx, courseID)
}

func (s *ReviewService) ReviewsByInstructor(ctx context.Context, instructorID string) ([]*domain.Review, error) {
	if _, err := s.instructors.FindByID(ctx, instructorID); err != nil {
		return nil, err
	}
	return s.reviews.FindByInstructor(ctx, instructorID)
}

func (s *ReviewService) ReviewsByUser(ctx context.Context, userID string) ([]*domain.Review, error) {
	return s.reviews.FindByUser(ctx, userID)
}

func (s *ReviewService) ReviewsByRating(ctx context.Context, rating int) ([]*domain.Review, error) {
	if !domain.ValidRating(rating) {
		return nil, domain.ErrInvalidRating
	}
	return s.reviews.FindByRating(ctx, rating)
}

func (s *ReviewService) AverageForCourse(ctx context.Context, courseID string) (float64, error) {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		return 0, err
	}
	reviews, err := s.reviews.FindByCourse(ctx, courseID)
	if err != nil {
		return 0, err
	}
	return domain.AverageRating(reviews), nil
}

func (s *ReviewService) AverageForInstructor(ctx context.Context, instructorID string) (float64, error) {
	if _, err := s.instructors.FindByID(ctx, instructorID); err != nil {
		return 0, err
	}
	reviews, err := s.reviews.FindByInstructor(ctx, instructorID)
	if err != nil {
		return 0, err
	}
	return domain.AverageRating(reviews), nil
}

// recomputeInstructor re-derives the instructor's aggregate from the full
// review set and persists it. Full recompute, not incremental: correctness
// over performance, review volume per instructor is small.
func (s *ReviewService) recomputeInstructor(ctx context.Context, instructorID string) error {
	reviews, err := s.reviews.FindByInstructor(ctx, instructorID)
	if err != nil {
		return fmt.Errorf("recompute rating: %w", err)
	}
	rating := domain.AverageRating(reviews)
	if err := s.instructors.SetRating(ctx, instructorID, rating); err != nil {
		return fmt.Errorf("recompute rating: %w", err)
	}
	return nil
}

// canMutate gates review mutations: the author or an admin only. The policy
// layer checks this too, but the aggregator must not allow a bypass.
func canMutate(actor *domain.Principal, review *domain.Review) bool {
	if actor == nil {
		return false
	}
	return actor.IsAdmin() || actor.UserID == review.UserID
}

func instructorLockKey(instructorID string) string {
	return "instructor:" + instructorID
}

func (s *ReviewService) record(action string, review *domain.Review, subjectType, subjectID, actorID string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ports.ReviewAuditEvent{
		Action:      action,
		ReviewID:    review.ID,
		SubjectID:   subjectID,
		SubjectType: subjectType,
		ActorID:     actorID,
		Rating:      review.Rating,
		OccurredAt:  time.Now().UTC(),
	})
}
