package domain

import "time"

// Instructor is the teaching profile linked 1:1 to a user with the
// INSTRUCTOR role. Rating is a derived aggregate: the only writers are the
// review aggregation path and the admin-triggered refresh, both of which
// recompute it from the full review set.
type Instructor struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Expertise string    `json:"expertise"`
	Bio       string    `json:"bio,omitempty"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
