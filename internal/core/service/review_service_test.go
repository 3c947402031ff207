package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/plasturgie/learning-platform/internal/core/domain"
	"github.com/plasturgie/learning-platform/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubReviewRepo struct {
	mu      sync.Mutex
	seq     int
	reviews map[string]*domain.Review

	insertErr error // if set, Insert returns this error
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{reviews: make(map[string]*domain.Review)}
}

func cloneReview(r *domain.Review) *domain.Review {
	clone := *r
	return &clone
}

func (s *stubReviewRepo) Insert(_ context.Context, review *domain.Review) (*domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.insertErr != nil {
		return nil, s.insertErr
	}
	// Mirrors the unique compound index: the duplicate check and the write
	// happen under the same lock.
	for _, existing := range s.reviews {
		if existing.UserID != review.UserID {
			continue
		}
		if review.CourseID != "" && existing.CourseID == review.CourseID {
			return nil, domain.ErrDuplicateReview
		}
		if review.InstructorID != "" && existing.InstructorID == review.InstructorID {
			return nil, domain.ErrDuplicateReview
		}
	}

	clone := cloneReview(review)
	if clone.ID == "" {
		s.seq++
		clone.ID = fmt.Sprintf("r%d", s.seq)
	}
	s.reviews[clone.ID] = clone
	return cloneReview(clone), nil
}

func (s *stubReviewRepo) FindByID(_ context.Context, id string) (*domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reviews[id]
	if !ok {
		return nil, domain.ErrReviewNotFound
	}
	return cloneReview(r), nil
}

func (s *stubReviewRepo) FindByCourse(_ context.Context, courseID string) ([]*domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Review
	for _, r := range s.reviews {
		if r.CourseID == courseID {
			out = append(out, cloneReview(r))
		}
	}
	return out, nil
}

func (s *stubReviewRepo) FindByInstructor(_ context.Context, instructorID string) ([]*domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Review
	for _, r := range s.reviews {
		if r.InstructorID == instructorID {
			out = append(out, cloneReview(r))
		}
	}
	return out, nil
}

func (s *stubReviewRepo) FindByUser(_ context.Context, userID string) ([]*domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Review
	for _, r := range s.reviews {
		if r.UserID == userID {
			out = append(out, cloneReview(r))
		}
	}
	return out, nil
}

func (s *stubReviewRepo) FindByRating(_ context.Context, rating int) ([]*domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Review
	for _, r := range s.reviews {
		if r.Rating == rating {
			out = append(out, cloneReview(r))
		}
	}
	return out, nil
}

func (s *stubReviewRepo) Update(_ context.Context, id string, rating int, comment string) (*domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reviews[id]
	if !ok {
		return nil, domain.ErrReviewNotFound
	}
	r.Rating = rating
	r.Comment = comment
	r.UpdatedAt = time.Now().UTC()
	return cloneReview(r), nil
}

func (s *stubReviewRepo) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reviews[id]; !ok {
		return domain.ErrReviewNotFound
	}
	delete(s.reviews, id)
	return nil
}

type stubInstructorRepo struct {
	mu          sync.Mutex
	instructors map[string]*domain.Instructor
	setRatings  []float64 // ratings passed to SetRating, in order
	setErr      error     // if set, SetRating returns this error
}

func newStubInstructorRepo(ids ...string) *stubInstructorRepo {
	s := &stubInstructorRepo{instructors: make(map[string]*domain.Instructor)}
	for _, id := range ids {
		s.instructors[id] = &domain.Instructor{ID: id, UserID: "user-of-" + id}
	}
	return s
}

func (s *stubInstructorRepo) Create(_ context.Context, i *domain.Instructor) (*domain.Instructor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *i
	if clone.ID == "" {
		clone.ID = fmt.Sprintf("i%d", len(s.instructors)+1)
	}
	s.instructors[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (s *stubInstructorRepo) FindByID(_ context.Context, id string) (*domain.Instructor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.instructors[id]
	if !ok {
		return nil, domain.ErrInstructorNotFound
	}
	clone := *i
	return &clone, nil
}

func (s *stubInstructorRepo) FindByUser(_ context.Context, userID string) (*domain.Instructor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, i := range s.instructors {
		if i.UserID == userID {
			clone := *i
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *stubInstructorRepo) FindAll(_ context.Context) ([]*domain.Instructor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Instructor
	for _, i := range s.instructors {
		clone := *i
		out = append(out, &clone)
	}
	return out, nil
}

func (s *stubInstructorRepo) FindByExpertise(_ context.Context, expertise string) ([]*domain.Instructor, error) {
	return nil, nil
}

func (s *stubInstructorRepo) FindByMinRating(_ context.Context, minRating float64) ([]*domain.Instructor, error) {
	return nil, nil
}

func (s *stubInstructorRepo) UpdateProfile(_ context.Context, id, expertise, bio string) (*domain.Instructor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.instructors[id]
	if !ok {
		return nil, domain.ErrInstructorNotFound
	}
	i.Expertise = expertise
	i.Bio = bio
	clone := *i
	return &clone, nil
}

func (s *stubInstructorRepo) SetRating(_ context.Context, id string, rating float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	i, ok := s.instructors[id]
	if !ok {
		return domain.ErrInstructorNotFound
	}
	i.Rating = rating
	s.setRatings = append(s.setRatings, rating)
	return nil
}

func (s *stubInstructorRepo) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.instructors, id)
	return nil
}

func (s *stubInstructorRepo) rating(id string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.instructors[id].Rating
}

type stubCourseRepo struct {
	courses map[string]*domain.Course
}

func newStubCourseRepo(ids ...string) *stubCourseRepo {
	s := &stubCourseRepo{courses: make(map[string]*domain.Course)}
	for _, id := range ids {
		s.courses[id] = &domain.Course{ID: id, Title: "course " + id}
	}
	return s
}

func (s *stubCourseRepo) Create(_ context.Context, c *domain.Course) (*domain.Course, error) {
	clone := *c
	if clone.ID == "" {
		clone.ID = fmt.Sprintf("c%d", len(s.courses)+1)
	}
	s.courses[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (s *stubCourseRepo) FindByID(_ context.Context, id string) (*domain.Course, error) {
	c, ok := s.courses[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	clone := *c
	return &clone, nil
}

func (s *stubCourseRepo) FindAll(_ context.Context, filter ports.CourseFilter) ([]*domain.Course, error) {
	var out []*domain.Course
	for _, c := range s.courses {
		if filter.Category != "" && c.Category != filter.Category {
			continue
		}
		if filter.Mode != "" && c.Mode != filter.Mode {
			continue
		}
		if filter.InstructorID != "" && !c.HasInstructor(filter.InstructorID) {
			continue
		}
		if filter.Title != "" && !strings.Contains(strings.ToLower(c.Title), strings.ToLower(filter.Title)) {
			continue
		}
		if filter.MaxPrice != nil && c.Price > *filter.MaxPrice {
			continue
		}
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

func (s *stubCourseRepo) Update(_ context.Context, c *domain.Course) (*domain.Course, error) {
	s.courses[c.ID] = c
	clone := *c
	return &clone, nil
}

func (s *stubCourseRepo) AddInstructor(_ context.Context, courseID, instructorID string) error {
	c, ok := s.courses[courseID]
	if !ok {
		return domain.ErrCourseNotFound
	}
	if !c.HasInstructor(instructorID) {
		c.InstructorIDs = append(c.InstructorIDs, instructorID)
	}
	return nil
}

func (s *stubCourseRepo) RemoveInstructor(_ context.Context, courseID, instructorID string) error {
	c, ok := s.courses[courseID]
	if !ok {
		return domain.ErrCourseNotFound
	}
	kept := c.InstructorIDs[:0]
	for _, id := range c.InstructorIDs {
		if id != instructorID {
			kept = append(kept, id)
		}
	}
	c.InstructorIDs = kept
	return nil
}

func (s *stubCourseRepo) SetInstructors(_ context.Context, courseID string, instructorIDs []string) error {
	c, ok := s.courses[courseID]
	if !ok {
		return domain.ErrCourseNotFound
	}
	c.InstructorIDs = append([]string(nil), instructorIDs...)
	return nil
}

func (s *stubCourseRepo) Delete(_ context.Context, id string) error {
	delete(s.courses, id)
	return nil
}

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newStubUserRepo(ids ...string) *stubUserRepo {
	s := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, id := range ids {
		s.users[id] = &domain.User{ID: id, Username: "user-" + id, Role: domain.RoleLearner}
	}
	return s
}

func (s *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return nil, domain.ErrUserExists
		}
	}
	clone := *u
	if clone.ID == "" {
		clone.ID = fmt.Sprintf("u%d", len(s.users)+1)
	}
	s.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (s *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.User
	for _, u := range s.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (s *stubUserRepo) UpdateRole(_ context.Context, id, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (s *stubUserRepo) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

type recordingAuditor struct {
	mu     sync.Mutex
	events []ports.ReviewAuditEvent
}

func (a *recordingAuditor) Record(e ports.ReviewAuditEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, e)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type reviewFixture struct {
	svc         *ReviewService
	reviews     *stubReviewRepo
	instructors *stubInstructorRepo
	courses     *stubCourseRepo
	users       *stubUserRepo
	audit       *recordingAuditor
}

func newReviewFixture(userIDs ...string) *reviewFixture {
	f := &reviewFixture{
		reviews:     newStubReviewRepo(),
		instructors: newStubInstructorRepo("inst1", "inst2"),
		courses:     newStubCourseRepo("course1"),
		users:       newStubUserRepo(userIDs...),
		audit:       &recordingAuditor{},
	}
	f.svc = NewReviewService(f.reviews, f.instructors, f.courses, f.users, NewKeyedMutex(), f.audit, zerolog.Nop())
	return f
}

func mustCreateInstructorReview(t *testing.T, f *reviewFixture, userID string, rating int) *domain.Review {
	t.Helper()
	r, err := f.svc.CreateInstructorReview(context.Background(), ports.CreateReviewInput{
		AuthorID:     userID,
		InstructorID: "inst1",
		Rating:       rating,
	})
	if err != nil {
		t.Fatalf("create instructor review: %v", err)
	}
	return r
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestReviewService_CreateCourseReview_Duplicate(t *testing.T) {
	f := newReviewFixture("u1", "u2")
	ctx := context.Background()

	if _, err := f.svc.CreateCourseReview(ctx, ports.CreateReviewInput{AuthorID: "u1", CourseID: "course1", Rating: 4}); err != nil {
		t.Fatalf("first review: %v", err)
	}
	if _, err := f.svc.CreateCourseReview(ctx, ports.CreateReviewInput{AuthorID: "u1", CourseID: "course1", Rating: 5}); !errors.Is(err, domain.ErrDuplicateReview) {
		t.Fatalf("expected ErrDuplicateReview, got %v", err)
	}
	// A different user reviewing the same course must still succeed.
	if _, err := f.svc.CreateCourseReview(ctx, ports.CreateReviewInput{AuthorID: "u2", CourseID: "course1", Rating: 2}); err != nil {
		t.Fatalf("second user's review: %v", err)
	}
}

func TestReviewService_CreateReview_InvalidRating(t *testing.T) {
	f := newReviewFixture("u1")
	for _, rating := range []int{0, 6, -3} {
		if _, err := f.svc.CreateCourseReview(context.Background(), ports.CreateReviewInput{AuthorID: "u1", CourseID: "course1", Rating: rating}); !errors.Is(err, domain.ErrInvalidRating) {
			t.Fatalf("rating %d: expected ErrInvalidRating, got %v", rating, err)
		}
	}
}

func TestReviewService_CreateReview_UnknownSubject(t *testing.T) {
	f := newReviewFixture("u1")
	ctx := context.Background()

	if _, err := f.svc.CreateCourseReview(ctx, ports.CreateReviewInput{AuthorID: "u1", CourseID: "ghost", Rating: 3}); !errors.Is(err, domain.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
	if _, err := f.svc.CreateInstructorReview(ctx, ports.CreateReviewInput{AuthorID: "u1", InstructorID: "ghost", Rating: 3}); !errors.Is(err, domain.ErrInstructorNotFound) {
		t.Fatalf("expected ErrInstructorNotFound, got %v", err)
	}
}

func TestReviewService_InstructorAggregate(t *testing.T) {
	f := newReviewFixture("u1", "u2", "u3")

	r1 := mustCreateInstructorReview(t, f, "u1", 3)
	mustCreateInstructorReview(t, f, "u2", 4)
	r3 := mustCreateInstructorReview(t, f, "u3", 5)

	if got := f.instructors.rating("inst1"); got != 4.0 {
		t.Fatalf("aggregate after [3,4,5] = %v, want 4.0", got)
	}

	// Deleting the 3 leaves [4,5], mean 4.5.
	admin := &domain.Principal{UserID: "admin", Role: domain.RoleAdmin}
	if err := f.svc.DeleteReview(context.Background(), r1.ID, admin); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := f.instructors.rating("inst1"); got != 4.5 {
		t.Fatalf("aggregate after delete = %v, want 4.5", got)
	}

	// Deleting everything resets the aggregate to exactly 0.
	for _, r := range []*domain.Review{r3} {
		if err := f.svc.DeleteReview(context.Background(), r.ID, admin); err != nil {
			t.Fatalf("delete: %v", err)
		}
	}
	remaining, _ := f.reviews.FindByUser(context.Background(), "u2")
	if err := f.svc.DeleteReview(context.Background(), remaining[0].ID, admin); err != nil {
		t.Fatalf("delete last: %v", err)
	}
	if got := f.instructors.rating("inst1"); got != 0 {
		t.Fatalf("aggregate after deleting all = %v, want exactly 0", got)
	}
}

func TestReviewService_UpdateRecomputes(t *testing.T) {
	f := newReviewFixture("u1", "u2")

	r := mustCreateInstructorReview(t, f, "u1", 2)
	mustCreateInstructorReview(t, f, "u2", 4)

	author := &domain.Principal{UserID: "u1", Role: domain.RoleLearner}
	updated, err := f.svc.UpdateReview(context.Background(), ports.UpdateReviewInput{
		ReviewID: r.ID, Rating: 5, Comment: "revised", Actor: author,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Rating != 5 || updated.Comment != "revised" {
		t.Fatalf("unexpected updated review: %+v", updated)
	}
	if got := f.instructors.rating("inst1"); got != 4.5 {
		t.Fatalf("aggregate after update = %v, want 4.5", got)
	}
}

func TestReviewService_MutationAuthorization(t *testing.T) {
	f := newReviewFixture("u1", "u2")
	r := mustCreateInstructorReview(t, f, "u1", 4)

	stranger := &domain.Principal{UserID: "u2", Role: domain.RoleLearner}
	if _, err := f.svc.UpdateReview(context.Background(), ports.UpdateReviewInput{ReviewID: r.ID, Rating: 1, Actor: stranger}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-author update, got %v", err)
	}
	if err := f.svc.DeleteReview(context.Background(), r.ID, stranger); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-author delete, got %v", err)
	}
	if err := f.svc.DeleteReview(context.Background(), r.ID, nil); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for missing actor, got %v", err)
	}

	// An admin may delete another user's review.
	admin := &domain.Principal{UserID: "u2", Role: domain.RoleAdmin}
	if err := f.svc.DeleteReview(context.Background(), r.ID, admin); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}

func TestReviewService_FailedRecomputeRollsBackInsert(t *testing.T) {
	f := newReviewFixture("u1")
	f.instructors.setErr = errors.New("db down")

	_, err := f.svc.CreateInstructorReview(context.Background(), ports.CreateReviewInput{
		AuthorID: "u1", InstructorID: "inst1", Rating: 5,
	})
	if err == nil {
		t.Fatalf("expected recompute failure to fail the mutation")
	}

	// The inserted review must not survive: all-or-nothing.
	left, _ := f.reviews.FindByInstructor(context.Background(), "inst1")
	if len(left) != 0 {
		t.Fatalf("expected no reviews after rollback, found %d", len(left))
	}
}

func TestReviewService_FailedRecomputeRollsBackUpdate(t *testing.T) {
	f := newReviewFixture("u1")
	r := mustCreateInstructorReview(t, f, "u1", 2)

	f.instructors.setErr = errors.New("db down")
	author := &domain.Principal{UserID: "u1", Role: domain.RoleLearner}
	if _, err := f.svc.UpdateReview(context.Background(), ports.UpdateReviewInput{ReviewID: r.ID, Rating: 5, Comment: "x", Actor: author}); err == nil {
		t.Fatalf("expected recompute failure to fail the mutation")
	}

	got, err := f.reviews.FindByID(context.Background(), r.ID)
	if err != nil {
		t.Fatalf("review vanished: %v", err)
	}
	if got.Rating != 2 {
		t.Fatalf("expected pre-update rating 2 restored, got %d", got.Rating)
	}
}

func TestReviewService_AverageForCourse(t *testing.T) {
	f := newReviewFixture("u1", "u2")
	ctx := context.Background()

	avg, err := f.svc.AverageForCourse(ctx, "course1")
	if err != nil {
		t.Fatalf("average: %v", err)
	}
	if avg != 0 {
		t.Fatalf("average with no reviews = %v, want 0", avg)
	}

	_, _ = f.svc.CreateCourseReview(ctx, ports.CreateReviewInput{AuthorID: "u1", CourseID: "course1", Rating: 4})
	_, _ = f.svc.CreateCourseReview(ctx, ports.CreateReviewInput{AuthorID: "u2", CourseID: "course1", Rating: 5})

	avg, err = f.svc.AverageForCourse(ctx, "course1")
	if err != nil {
		t.Fatalf("average: %v", err)
	}
	if avg != 4.5 {
		t.Fatalf("average = %v, want 4.5", avg)
	}

	if _, err := f.svc.AverageForCourse(ctx, "ghost"); !errors.Is(err, domain.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestReviewService_ConcurrentCreates_NoLostUpdate(t *testing.T) {
	const n = 20
	userIDs := make([]string, n)
	for i := range userIDs {
		userIDs[i] = fmt.Sprintf("u%d", i+1)
	}
	f := newReviewFixture(userIDs...)

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.CreateInstructorReview(context.Background(), ports.CreateReviewInput{
				AuthorID:     userIDs[i],
				InstructorID: "inst1",
				Rating:       (i % 5) + 1,
			})
		}(i)
	}
	wg.Wait()

	sum := 0
	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("create %d failed: %v", i, errs[i])
		}
		sum += (i % 5) + 1
	}

	reviews, _ := f.reviews.FindByInstructor(context.Background(), "inst1")
	if len(reviews) != n {
		t.Fatalf("expected %d reviews, found %d", n, len(reviews))
	}

	want := domain.RoundRating(float64(sum) / float64(n))
	if got := f.instructors.rating("inst1"); got != want {
		t.Fatalf("final aggregate = %v, want %v", got, want)
	}
}

func TestReviewService_ConcurrentDuplicateAttempts(t *testing.T) {
	f := newReviewFixture("u1")

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.CreateInstructorReview(context.Background(), ports.CreateReviewInput{
				AuthorID: "u1", InstructorID: "inst1", Rating: 3,
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrDuplicateReview):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one winner, got %d", succeeded)
	}
}

func TestReviewService_AuditEventsRecorded(t *testing.T) {
	f := newReviewFixture("u1")
	r := mustCreateInstructorReview(t, f, "u1", 4)

	author := &domain.Principal{UserID: "u1", Role: domain.RoleLearner}
	if _, err := f.svc.UpdateReview(context.Background(), ports.UpdateReviewInput{ReviewID: r.ID, Rating: 5, Actor: author}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := f.svc.DeleteReview(context.Background(), r.ID, author); err != nil {
		t.Fatalf("delete: %v", err)
	}

	f.audit.mu.Lock()
	defer f.audit.mu.Unlock()
	if len(f.audit.events) != 3 {
		t.Fatalf("expected 3 audit events, got %d", len(f.audit.events))
	}
	wantActions := []string{ports.AuditReviewCreated, ports.AuditReviewUpdated, ports.AuditReviewDeleted}
	for i, want := range wantActions {
		if f.audit.events[i].Action != want {
			t.Fatalf("event %d action = %q, want %q", i, f.audit.events[i].Action, want)
		}
		if f.audit.events[i].SubjectID != "inst1" || f.audit.events[i].SubjectType != "instructor" {
			t.Fatalf("event %d subject = %+v", i, f.audit.events[i])
		}
	}
}
