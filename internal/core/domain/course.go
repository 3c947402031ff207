package domain

import "time"

// Course delivery modes.
const (
	ModeInPerson = "in_person"
	ModeOnline   = "online"
	ModeHybrid   = "hybrid"
)

// Course is a catalog entry taught by zero or more instructors.
// Its average rating is computed on demand from reviews, never stored.
type Course struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category,omitempty"`
	Mode          string    `json:"mode,omitempty"`
	DurationHours int       `json:"duration_hours,omitempty"`
	Price         float64   `json:"price,omitempty"`
	InstructorIDs []string  `json:"instructor_ids"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HasInstructor reports whether instructorID already teaches the course.
func (c *Course) HasInstructor(instructorID string) bool {
	for _, id := range c.InstructorIDs {
		if id == instructorID {
			return true
		}
	}
	return false
}
