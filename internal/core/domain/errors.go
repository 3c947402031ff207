package domain

import "errors"

// Token-layer failures. All three surface as 401; the distinction matters for
// logging and for tests, never for the response body.
var (
	ErrTokenMalformed  = errors.New("malformed token")
	ErrTokenExpired    = errors.New("token expired")
	ErrBadSignature    = errors.New("invalid token signature")
)

// Authn/authz failures decided at the boundary.
var (
	ErrUnauthorized       = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Resource and invariant failures.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInstructorNotFound = errors.New("instructor not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrReviewNotFound     = errors.New("review not found")
	ErrDuplicateReview    = errors.New("subject already reviewed by this user")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrInvalidRole        = errors.New("invalid role")
)
