package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/plasturgie/learning-platform/internal/core/domain"
	"github.com/plasturgie/learning-platform/internal/core/ports"
)

func newInstructorFixture(userIDs ...string) (*InstructorService, *stubInstructorRepo, *stubReviewRepo) {
	instructors := newStubInstructorRepo()
	reviews := newStubReviewRepo()
	users := newStubUserRepo(userIDs...)
	svc := NewInstructorService(instructors, reviews, users, NewKeyedMutex(), zerolog.Nop())
	return svc, instructors, reviews
}

func TestInstructorService_Create(t *testing.T) {
	svc, _, _ := newInstructorFixture("u1")

	inst, err := svc.Create(context.Background(), ports.CreateInstructorInput{
		UserID:    "u1",
		Expertise: "injection molding",
		Bio:       "20 years on the shop floor",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inst.Rating != 0 {
		t.Fatalf("new instructor rating = %v, want 0", inst.Rating)
	}
	if inst.UserID != "u1" {
		t.Fatalf("user id = %q, want u1", inst.UserID)
	}
}

func TestInstructorService_Create_UnknownUser(t *testing.T) {
	svc, _, _ := newInstructorFixture("u1")

	if _, err := svc.Create(context.Background(), ports.CreateInstructorInput{UserID: "ghost"}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestInstructorService_ForUser(t *testing.T) {
	svc, _, _ := newInstructorFixture("u1", "u2")
	ctx := context.Background()

	created, err := svc.Create(ctx, ports.CreateInstructorInput{UserID: "u1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	inst, ok, err := svc.ForUser(ctx, "u1")
	if err != nil || !ok {
		t.Fatalf("ForUser(u1) = %v, %v, %v", inst, ok, err)
	}
	if inst.ID != created.ID {
		t.Fatalf("wrong profile: %+v", inst)
	}

	// Absence is a normal outcome, not an error.
	inst, ok, err = svc.ForUser(ctx, "u2")
	if err != nil {
		t.Fatalf("ForUser(u2): %v", err)
	}
	if ok || inst != nil {
		t.Fatalf("expected no profile for u2, got %+v", inst)
	}
}

func TestInstructorService_RefreshRating(t *testing.T) {
	svc, instructors, reviews := newInstructorFixture("u1")
	ctx := context.Background()

	inst, err := svc.Create(ctx, ports.CreateInstructorInput{UserID: "u1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Reviews written behind the service's back, as a repair job would see.
	for i, rating := range []int{3, 3, 3, 4} {
		if _, err := reviews.Insert(ctx, &domain.Review{
			UserID:       string(rune('a' + i)),
			InstructorID: inst.ID,
			Rating:       rating,
		}); err != nil {
			t.Fatalf("seed review: %v", err)
		}
	}

	refreshed, err := svc.RefreshRating(ctx, inst.ID)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.Rating != 3.3 {
		t.Fatalf("refreshed rating = %v, want 3.3", refreshed.Rating)
	}
	if got := instructors.rating(inst.ID); got != 3.3 {
		t.Fatalf("persisted rating = %v, want 3.3", got)
	}
}

func TestInstructorService_RefreshRating_Unknown(t *testing.T) {
	svc, _, _ := newInstructorFixture()

	if _, err := svc.RefreshRating(context.Background(), "ghost"); !errors.Is(err, domain.ErrInstructorNotFound) {
		t.Fatalf("expected ErrInstructorNotFound, got %v", err)
	}
}
