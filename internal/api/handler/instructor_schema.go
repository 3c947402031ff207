package handler

import (
	"time"

	"github.com/plasturgie/learning-platform/internal/core/domain"
)

type createInstructorRequest struct {
	UserID    string `json:"user_id"   validate:"required"`
	Expertise string `json:"expertise" validate:"required"`
	Bio       string `json:"bio"       validate:"omitempty,max=4000"`
}

type updateInstructorRequest struct {
	Expertise string `json:"expertise" validate:"required"`
	Bio       string `json:"bio"       validate:"omitempty,max=4000"`
}

type instructorResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Expertise string    `json:"expertise"`
	Bio       string    `json:"bio,omitempty"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toInstructorResponse(i *domain.Instructor) instructorResponse {
	return instructorResponse{
		ID:        i.ID,
		UserID:    i.UserID,
		Expertise: i.Expertise,
		Bio:       i.Bio,
		Rating:    i.Rating,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func toInstructorResponses(instructors []*domain.Instructor) []instructorResponse {
	out := make([]instructorResponse, 0, len(instructors))
	for _, i := range instructors {
		out = append(out, toInstructorResponse(i))
	}
	return out
}
