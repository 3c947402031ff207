package handler

import (
	"time"

	"github.com/plasturgie/learning-platform/internal/core/domain"
)

type createCourseReviewRequest struct {
	CourseID string `json:"course_id" validate:"required"`
	Rating   int    `json:"rating"    validate:"required,gte=1,lte=5"`
	Comment  string `json:"comment"   validate:"omitempty,max=2000"`
}

type createInstructorReviewRequest struct {
	InstructorID string `json:"instructor_id" validate:"required"`
	Rating       int    `json:"rating"        validate:"required,gte=1,lte=5"`
	Comment      string `json:"comment"       validate:"omitempty,max=2000"`
}

type updateReviewRequest struct {
	Rating  int    `json:"rating"  validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

type reviewResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	CourseID     string    `json:"course_id,omitempty"`
	InstructorID string    `json:"instructor_id,omitempty"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type averageRatingResponse struct {
	Rating float64 `json:"rating"`
}

func toReviewResponse(r *domain.Review) reviewResponse {
	return reviewResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		CourseID:     r.CourseID,
		InstructorID: r.InstructorID,
		Rating:       r.Rating,
		Comment:      r.Comment,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toReviewResponses(reviews []*domain.Review) []reviewResponse {
	out := make([]reviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, toReviewResponse(r))
	}
	return out
}
