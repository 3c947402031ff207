package domain

import "time"

const (
	RoleAdmin      = "ADMIN"
	RoleInstructor = "INSTRUCTOR"
	RoleCompanyRep = "COMPANY_REP"
	RoleLearner    = "LEARNER"
)

// ValidRole reports whether role is one of the four platform roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleInstructor, RoleCompanyRep, RoleLearner:
		return true
	}
	return false
}

// User models a registered identity. Role is mutable only through the admin
// update path; PasswordHash never leaves the auth layer.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
