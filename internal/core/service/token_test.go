package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/plasturgie/learning-platform/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{ID: "64f0c1", Username: "alice", Role: domain.RoleLearner}
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := NewTokenCodec("secret", time.Hour)

	raw, err := codec.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	p, err := codec.Validate(raw)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if p.UserID != "64f0c1" || p.Username != "alice" || p.Role != domain.RoleLearner {
		t.Fatalf("principal mismatch: %+v", p)
	}
}

func TestTokenCodec_Expired(t *testing.T) {
	codec := NewTokenCodec("secret", time.Hour)

	issued := time.Now().UTC()
	codec.now = func() time.Time { return issued }
	raw, err := codec.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Validate exactly at and after the expiry instant.
	for _, at := range []time.Time{issued.Add(time.Hour + time.Second), issued.Add(48 * time.Hour)} {
		codec.now = func() time.Time { return at }
		if _, err := codec.Validate(raw); !errors.Is(err, domain.ErrTokenExpired) {
			t.Fatalf("validate at %v: expected ErrTokenExpired, got %v", at, err)
		}
	}
}

func TestTokenCodec_TamperedPayload(t *testing.T) {
	codec := NewTokenCodec("secret", time.Hour)

	raw, err := codec.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", raw)
	}

	// Flip a character in the payload: the recomputed signature no longer
	// matches, so validation must fail.
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := codec.Validate(tampered); err == nil {
		t.Fatalf("tampered payload validated")
	}
}

func TestTokenCodec_TamperedSignature(t *testing.T) {
	codec := NewTokenCodec("secret", time.Hour)

	raw, err := codec.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(raw, ".")
	sig := []byte(parts[2])
	if sig[3] == 'x' {
		sig[3] = 'y'
	} else {
		sig[3] = 'x'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := codec.Validate(tampered); !errors.Is(err, domain.ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	issuer := NewTokenCodec("secret-a", time.Hour)
	validator := NewTokenCodec("secret-b", time.Hour)

	raw, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := validator.Validate(raw); !errors.Is(err, domain.ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
}

func TestTokenCodec_Garbage(t *testing.T) {
	codec := NewTokenCodec("secret", time.Hour)
	if _, err := codec.Validate("not-a-token"); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}
