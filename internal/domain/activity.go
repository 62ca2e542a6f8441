package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityType is the kind of event recorded in the activity log.
type ActivityType string

const (
	ActivityCheckIn  ActivityType = "check_in"
	ActivityCheckOut ActivityType = "check_out"
)

// ActivityLogEntry is one append-only audit record for a visit.
// VisitorID is not enforced as a foreign key by the database.
type ActivityLogEntry struct {
	ID           uuid.UUID    `json:"id"`
	VisitorID    uuid.UUID    `json:"visitorId"`
	ActivityType ActivityType `json:"activityType"`
	Timestamp    time.Time    `json:"timestamp"`
}

// Receipt reports the outcome of a check-in or check-out.
// AuditErr holds the activity-log write failure, if any. It is diagnostic
// only: a non-nil AuditErr never means the mutation itself failed.
type Receipt struct {
	VisitID  uuid.UUID
	AuditErr error
}
