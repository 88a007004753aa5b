package domain

import (
	"math"
	"time"
)

// MaxOrderQuantity caps the units one pipeline request may order.
const MaxOrderQuantity = 1_000_000

// Product is an orderable analysis pipeline.
type Product struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Quantity          int64     `json:"quantity"`
	IsQuantityLimited bool      `json:"is_quantity_limited"`
	WorkflowPK        int64     `json:"workflow_pk"`
	UnitCost          Cents     `json:"unit_cost_cents"`
	CreatedAt         time.Time `json:"created_at"`
}

// Cost prices n units. ok is false when n or the unit cost is negative or
// the total does not fit in Cents.
func (p Product) Cost(n int64) (total Cents, ok bool) {
	if n < 0 || p.UnitCost < 0 {
		return 0, false
	}
	if p.UnitCost != 0 && n > math.MaxInt64/int64(p.UnitCost) {
		return 0, false
	}
	return p.UnitCost * Cents(n), true
}

// HasStock reports whether n units can be taken from inventory.
func (p Product) HasStock(n int64) bool {
	return !p.IsQuantityLimited || n <= p.Quantity
}

type Purchase struct {
	ID             string     `json:"id"`
	CnapUserID     string     `json:"cnap_user_id"`
	PurchaseNumber string     `json:"purchase_number"`
	IssueDate      *time.Time `json:"issue_date,omitempty"`
	CloseDate      *time.Time `json:"close_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type Order struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	PurchaseID  string    `json:"purchase_id"`
	Quantity    int64     `json:"quantity"`
	OrderFilled bool      `json:"order_filled"`
	CreatedAt   time.Time `json:"created_at"`
}
