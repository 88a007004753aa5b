// Package service holds the request workflows: account reconciliation and
// approval, pipeline validation and fulfillment, and the mailbox poller that
// feeds them.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/cnap/internal/cnap/analysis"
	"github.com/aussiebroadwan/cnap/internal/cnap/domain"
	"github.com/aussiebroadwan/cnap/internal/cnap/notify"
)

var (
	ErrPendingNotFound = errors.New("pending request not found")
	ErrInvalidRecord   = errors.New("invalid record")
	ErrRecordNotFound  = errors.New("record not found")
	ErrRecordConflict  = errors.New("record conflicts with an existing one")
)

// Subject used for every failure report sent to staff.
const staffErrorSubject = "Error encountered"

// Notifier is the outbound channel used by every workflow.
type Notifier interface {
	Send(ctx context.Context, n notify.Notification) error
	NotifyStaff(ctx context.Context, message, subject string) error
}

// ProjectCreator places a filled order with the analysis platform.
type ProjectCreator interface {
	CreateProject(ctx context.Context, req analysis.ProjectRequest) error
}

// ChargeReview is what a FinanceApprover sees before a budget is charged.
type ChargeReview struct {
	Payment  domain.Payment
	Product  domain.Product
	Quantity int64
	Cost     domain.Cents
}

// FinanceApprover is an optional extra approval leg consulted before a
// charge. A false result rejects the order with the returned reason.
type FinanceApprover interface {
	ApproveCharge(ctx context.Context, r ChargeReview) (ok bool, reason string, err error)
}

type clock func() time.Time

func (c clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}
