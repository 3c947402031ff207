package domain

import (
	"math"
	"time"
)

// Review is a single user's rating of exactly one subject: a course or an
// instructor (never both). At most one review exists per (user, subject).
type Review struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	CourseID     string    `json:"course_id,omitempty"`
	InstructorID string    `json:"instructor_id,omitempty"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidRating reports whether rating is inside the accepted 1..5 range.
func ValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

// AverageRating computes the arithmetic mean of the given reviews' ratings,
// rounded half-up to one decimal place. An empty set yields exactly 0.
func AverageRating(reviews []*Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	mean := float64(sum) / float64(len(reviews))
	return RoundRating(mean)
}

// RoundRating rounds a rating value half-up to one decimal place.
// Ratings are non-negative, so floor(x*10 + 0.5) implements half-up exactly.
func RoundRating(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
