package domain

// Principal is the request-scoped identity resolved from a validated token.
// It is built fresh for every request and never persisted.
type Principal struct {
	UserID   string
	Username string
	Role     string
}

// HasAnyRole reports whether the principal's role is in roles.
func (p *Principal) HasAnyRole(roles ...string) bool {
	if p == nil {
		return false
	}
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// IsAdmin is a shorthand for the most common role check.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
