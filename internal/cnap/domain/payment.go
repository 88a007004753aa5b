package domain

import (
	"fmt"
	"time"
)

type PaymentType string

const (
	PaymentCreditCard    PaymentType = "CC"
	PaymentPurchaseOrder PaymentType = "PO"
	PaymentJournal       PaymentType = "JN"
)

// ParsePaymentType validates a payment type code.
func ParsePaymentType(s string) (PaymentType, error) {
	switch t := PaymentType(s); t {
	case PaymentCreditCard, PaymentPurchaseOrder, PaymentJournal:
		return t, nil
	}
	return "", fmt.Errorf("unknown payment type %q", s)
}

// Payment is a funding instrument owned by a ResearchGroup.
type Payment struct {
	ID              string      `json:"id"`
	Type            PaymentType `json:"payment_type"`
	Number          string      `json:"number"`
	Date            *time.Time  `json:"payment_date,omitempty"`
	ResearchGroupID string      `json:"research_group_id"`
	Code            string      `json:"code,omitempty"`
	Amount          *Cents      `json:"amount_cents,omitempty"` // nil means no ceiling
	CreatedAt       time.Time   `json:"created_at"`
}

// Unlimited reports whether the payment has no spending ceiling.
func (p Payment) Unlimited() bool { return p.Amount == nil }

// Budget tracks the running total charged against one Payment.
type Budget struct {
	ID         string    `json:"id"`
	PaymentID  string    `json:"payment_id"`
	CurrentSum Cents     `json:"current_sum_cents"`
	UpdatedAt  time.Time `json:"updated_at"`
}
