package domain

import "time"

type PendingStatus string

const (
	// PendingReview waits for a staff member.
	PendingReview PendingStatus = "pending_review"
	// PendingAwaitingPI has a token and waits for the PI.
	PendingAwaitingPI PendingStatus = "awaiting_pi"
	// PendingCompleted was finalized and produced records.
	PendingCompleted PendingStatus = "completed"
	// PendingDuplicate was finalized but the association already existed.
	PendingDuplicate PendingStatus = "duplicate"
)

// Done reports whether finalization already ran.
func (s PendingStatus) Done() bool {
	return s == PendingCompleted || s == PendingDuplicate
}

// PendingUser is a parsed account request awaiting approval.
type PendingUser struct {
	ID            string
	IsPI          bool
	Request       AccountRequest
	ApprovalToken string // empty until issued
	Status        PendingStatus
	RequestedAt   time.Time
	ProcessedAt   *time.Time
}
