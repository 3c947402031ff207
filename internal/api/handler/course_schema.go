package handler

import (
	"time"

	"github.com/plasturgie/learning-platform/internal/core/domain"
)

type courseRequest struct {
	Title         string  `json:"title"          validate:"required"`
	Description   string  `json:"description"    validate:"omitempty,max=8000"`
	Category      string  `json:"category"       validate:"required"`
	Mode          string  `json:"mode"           validate:"required,oneof=in_person online hybrid"`
	DurationHours int     `json:"duration_hours" validate:"required,gt=0"`
	Price         float64 `json:"price"          validate:"gte=0"`
}

type setInstructorsRequest struct {
	InstructorIDs []string `json:"instructor_ids"`
}

type courseResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category"`
	Mode          string    `json:"mode"`
	DurationHours int       `json:"duration_hours"`
	Price         float64   `json:"price"`
	InstructorIDs []string  `json:"instructor_ids"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toCourseResponse(course *domain.Course) courseResponse {
	ids := course.InstructorIDs
	if ids == nil {
		ids = []string{}
	}
	return courseResponse{
		ID:            course.ID,
		Title:         course.Title,
		Description:   course.Description,
		Category:      course.Category,
		Mode:          course.Mode,
		DurationHours: course.DurationHours,
		Price:         course.Price,
		InstructorIDs: ids,
		CreatedAt:     course.CreatedAt,
		UpdatedAt:     course.UpdatedAt,
	}
}

func toCourseResponses(courses []*domain.Course) []courseResponse {
	out := make([]courseResponse, 0, len(courses))
	for _, course := range courses {
		out = append(out, toCourseResponse(course))
	}
	return out
}
