package ports

import (
	"context"
	"time"
)

// Review audit actions.
const (
	AuditReviewCreated = "review_created"
	AuditReviewUpdated = "review_updated"
	AuditReviewDeleted = "review_deleted"
)

// ReviewAuditEvent records a single review mutation for the audit trail.
// SubjectID is the course or instructor the review targets.
type ReviewAuditEvent struct {
	Action      string
	ReviewID    string
	SubjectID   string
	SubjectType string // "course" or "instructor"
	ActorID     string
	Rating      int
	OccurredAt  time.Time
}

// AuditRepository persists review audit events.
type AuditRepository interface {
	InsertReviewEvent(ctx context.Context, event *ReviewAuditEvent) error
}
