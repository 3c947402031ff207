package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/plasturgie/learning-platform/internal/core/domain"
	"github.com/plasturgie/learning-platform/internal/core/ports"
)

func newCourseFixture() (*CourseService, *stubCourseRepo, *stubInstructorRepo) {
	courses := newStubCourseRepo()
	instructors := newStubInstructorRepo("inst1")
	svc := NewCourseService(courses, instructors, zerolog.Nop())
	return svc, courses, instructors
}

func TestCreateCourseAttachesCreatingInstructor(t *testing.T) {
	svc, _, _ := newCourseFixture()

	creator := &domain.Principal{UserID: "user-of-inst1", Role: domain.RoleInstructor}
	course, err := svc.Create(context.Background(), ports.CourseInput{
		Title:         "Injection Molding Basics",
		Category:      "manufacturing",
		Mode:          "online",
		DurationHours: 12,
	}, creator)
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	if len(course.InstructorIDs) != 1 || course.InstructorIDs[0] != "inst1" {
		t.Fatalf("instructor ids = %v, want [inst1]", course.InstructorIDs)
	}
}

func TestCreateCourseByAdminWithoutProfile(t *testing.T) {
	svc, _, _ := newCourseFixture()

	admin := &domain.Principal{UserID: "admin1", Role: domain.RoleAdmin}
	course, err := svc.Create(context.Background(), ports.CourseInput{
		Title: "Compliance Training",
		Mode:  "in_person",
	}, admin)
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	if len(course.InstructorIDs) != 0 {
		t.Fatalf("instructor ids = %v, want empty", course.InstructorIDs)
	}
}

func TestCreateCourseInstructorWithoutProfile(t *testing.T) {
	// An INSTRUCTOR-role user who never created a profile still gets the
	// course; there is simply nobody to attach.
	svc, _, _ := newCourseFixture()

	creator := &domain.Principal{UserID: "no-profile", Role: domain.RoleInstructor}
	course, err := svc.Create(context.Background(), ports.CourseInput{Title: "Solo"}, creator)
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	if len(course.InstructorIDs) != 0 {
		t.Fatalf("instructor ids = %v, want empty", course.InstructorIDs)
	}
}

func TestUpdateCourse(t *testing.T) {
	svc, courses, _ := newCourseFixture()
	created, err := courses.Create(context.Background(), &domain.Course{Title: "old"})
	if err != nil {
		t.Fatalf("seed course: %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, ports.CourseInput{
		Title:         "new title",
		Mode:          "hybrid",
		DurationHours: 8,
		Price:         99.5,
	})
	if err != nil {
		t.Fatalf("update course: %v", err)
	}
	if updated.Title != "new title" || updated.Mode != "hybrid" {
		t.Fatalf("updated course = %+v", updated)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) && !updated.UpdatedAt.Equal(updated.CreatedAt) {
		t.Fatalf("UpdatedAt not refreshed: %v", updated.UpdatedAt)
	}
}

func TestUpdateUnknownCourse(t *testing.T) {
	svc, _, _ := newCourseFixture()
	if _, err := svc.Update(context.Background(), "ghost", ports.CourseInput{Title: "x"}); !errors.Is(err, domain.ErrCourseNotFound) {
		t.Fatalf("err = %v, want ErrCourseNotFound", err)
	}
}

func TestAddInstructorValidatesBothSides(t *testing.T) {
	svc, courses, _ := newCourseFixture()
	created, err := courses.Create(context.Background(), &domain.Course{Title: "c"})
	if err != nil {
		t.Fatalf("seed course: %v", err)
	}

	if err := svc.AddInstructor(context.Background(), "ghost", "inst1"); !errors.Is(err, domain.ErrCourseNotFound) {
		t.Fatalf("unknown course err = %v, want ErrCourseNotFound", err)
	}
	if err := svc.AddInstructor(context.Background(), created.ID, "ghost"); !errors.Is(err, domain.ErrInstructorNotFound) {
		t.Fatalf("unknown instructor err = %v, want ErrInstructorNotFound", err)
	}

	if err := svc.AddInstructor(context.Background(), created.ID, "inst1"); err != nil {
		t.Fatalf("add instructor: %v", err)
	}
	// Attaching twice stays a single entry.
	if err := svc.AddInstructor(context.Background(), created.ID, "inst1"); err != nil {
		t.Fatalf("re-add instructor: %v", err)
	}
	got, err := svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get course: %v", err)
	}
	if len(got.InstructorIDs) != 1 {
		t.Fatalf("instructor ids = %v, want exactly one", got.InstructorIDs)
	}
}

func TestDeleteUnknownCourse(t *testing.T) {
	svc, _, _ := newCourseFixture()
	if err := svc.Delete(context.Background(), "ghost"); !errors.Is(err, domain.ErrCourseNotFound) {
		t.Fatalf("err = %v, want ErrCourseNotFound", err)
	}
}

func seedCatalog(t *testing.T, courses *stubCourseRepo) {
	t.Helper()
	ctx := context.Background()
	seed := []*domain.Course{
		{Title: "Injection Molding Basics", Category: "manufacturing", Mode: "online", Price: 50, InstructorIDs: []string{"inst1"}},
		{Title: "Advanced Molding", Category: "manufacturing", Mode: "in_person", Price: 200},
		{Title: "Workplace Safety", Category: "compliance", Mode: "online", Price: 20},
	}
	for _, c := range seed {
		if _, err := courses.Create(ctx, c); err != nil {
			t.Fatalf("seed course %q: %v", c.Title, err)
		}
	}
}

func TestListCoursesFiltered(t *testing.T) {
	svc, courses, _ := newCourseFixture()
	seedCatalog(t, courses)
	ctx := context.Background()

	maxPrice := 100.0
	cases := []struct {
		name   string
		filter ports.CourseFilter
		want   int
	}{
		{"no filter", ports.CourseFilter{}, 3},
		{"by category", ports.CourseFilter{Category: "manufacturing"}, 2},
		{"by mode", ports.CourseFilter{Mode: "online"}, 2},
		{"by instructor", ports.CourseFilter{InstructorID: "inst1"}, 1},
		{"title substring is case-insensitive", ports.CourseFilter{Title: "molding"}, 2},
		{"by max price", ports.CourseFilter{MaxPrice: &maxPrice}, 2},
		{"combined", ports.CourseFilter{Category: "manufacturing", Mode: "online"}, 1},
		{"no match", ports.CourseFilter{Category: "cooking"}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.List(ctx, tc.filter)
			if err != nil {
				t.Fatalf("list courses: %v", err)
			}
			if len(got) != tc.want {
				t.Fatalf("got %d courses, want %d", len(got), tc.want)
			}
		})
	}
}

func TestRemoveInstructorFromCourse(t *testing.T) {
	svc, courses, _ := newCourseFixture()
	created, err := courses.Create(context.Background(), &domain.Course{Title: "c", InstructorIDs: []string{"inst1"}})
	if err != nil {
		t.Fatalf("seed course: %v", err)
	}

	if err := svc.RemoveInstructor(context.Background(), created.ID, "inst1"); err != nil {
		t.Fatalf("remove instructor: %v", err)
	}
	got, err := svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get course: %v", err)
	}
	if len(got.InstructorIDs) != 0 {
		t.Fatalf("instructor ids = %v, want empty", got.InstructorIDs)
	}

	// Detaching again is a no-op, not an error.
	if err := svc.RemoveInstructor(context.Background(), created.ID, "inst1"); err != nil {
		t.Fatalf("re-remove instructor: %v", err)
	}

	if err := svc.RemoveInstructor(context.Background(), created.ID, "ghost"); !errors.Is(err, domain.ErrInstructorNotFound) {
		t.Fatalf("unknown instructor err = %v, want ErrInstructorNotFound", err)
	}
	if err := svc.RemoveInstructor(context.Background(), "ghost", "inst1"); !errors.Is(err, domain.ErrCourseNotFound) {
		t.Fatalf("unknown course err = %v, want ErrCourseNotFound", err)
	}
}

func TestSetInstructorsReplacesTeachingSet(t *testing.T) {
	svc, courses, instructors := newCourseFixture()
	if _, err := instructors.Create(context.Background(), &domain.Instructor{ID: "inst2", UserID: "user-of-inst2"}); err != nil {
		t.Fatalf("seed instructor: %v", err)
	}
	created, err := courses.Create(context.Background(), &domain.Course{Title: "c", InstructorIDs: []string{"inst1"}})
	if err != nil {
		t.Fatalf("seed course: %v", err)
	}

	if err := svc.SetInstructors(context.Background(), created.ID, []string{"inst2"}); err != nil {
		t.Fatalf("set instructors: %v", err)
	}
	got, err := svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get course: %v", err)
	}
	if len(got.InstructorIDs) != 1 || got.InstructorIDs[0] != "inst2" {
		t.Fatalf("instructor ids = %v, want [inst2]", got.InstructorIDs)
	}

	// One unknown id fails the whole replacement and leaves the set alone.
	if err := svc.SetInstructors(context.Background(), created.ID, []string{"inst1", "ghost"}); !errors.Is(err, domain.ErrInstructorNotFound) {
		t.Fatalf("err = %v, want ErrInstructorNotFound", err)
	}
	got, err = svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get course: %v", err)
	}
	if len(got.InstructorIDs) != 1 || got.InstructorIDs[0] != "inst2" {
		t.Fatalf("instructor ids mutated on failed replacement: %v", got.InstructorIDs)
	}
}
