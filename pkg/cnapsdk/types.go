package cnapsdk

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports dependency status on /readyz.
type HealthChecks struct {
	Database string `json:"database"`
}

// ============================================================================
// Records
// ============================================================================

// ListResponse wraps every collection endpoint.
type ListResponse[T any] struct {
	Items []T `json:"items"`
}

type Organization struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type ResearchGroup struct {
	ID                    string `json:"id"`
	PIName                string `json:"pi_name"`
	PIEmail               string `json:"pi_email"`
	OrganizationID        string `json:"organization_id,omitempty"`
	HasHarvardAppointment bool   `json:"has_harvard_appointment"`
	Department            string `json:"department"`
	AddressLines          string `json:"address_lines"`
	City                  string `json:"city"`
	State                 string `json:"state"`
	PostalCode            string `json:"postal_code"`
	Country               string `json:"country"`
	CreatedAt             string `json:"created_at"`
}

// Member is a user's association with a research group.
type Member struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id"`
	ResearchGroupID string `json:"research_group_id"`
	JoinedAt        string `json:"joined_at"`
}

// ProductInput creates or replaces a product. Unit cost is in cents.
type ProductInput struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	Quantity          int64  `json:"quantity"`
	IsQuantityLimited bool   `json:"is_quantity_limited"`
	WorkflowPK        int64  `json:"workflow_pk"`
	UnitCostCents     int64  `json:"unit_cost_cents"`
}

type Product struct {
	ID string `json:"id"`
	ProductInput
	UnitCost  string `json:"unit_cost"` // formatted, e.g. "$10.00"
	CreatedAt string `json:"created_at"`
}

// PaymentInput creates or replaces a payment method. A nil amount means
// the payment has no spending ceiling.
type PaymentInput struct {
	PaymentType     string  `json:"payment_type" example:"PO"`
	Number          string  `json:"number"`
	PaymentDate     *string `json:"payment_date,omitempty" example:"2026-01-31"`
	ResearchGroupID string  `json:"research_group_id"`
	Code            string  `json:"code"`
	AmountCents     *int64  `json:"amount_cents,omitempty"`
}

type Payment struct {
	ID string `json:"id"`
	PaymentInput
	Budget    *Budget `json:"budget,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// Budget is the running total charged against a payment.
type Budget struct {
	CurrentSumCents int64  `json:"current_sum_cents"`
	CurrentSum      string `json:"current_sum"`
	UpdatedAt       string `json:"updated_at"`
}

type Purchase struct {
	ID             string `json:"id"`
	CnapUserID     string `json:"cnap_user_id"`
	PurchaseNumber string `json:"purchase_number"`
	IssueDate      string `json:"issue_date,omitempty"`
	CloseDate      string `json:"close_date,omitempty"`
	CreatedAt      string `json:"created_at"`
}

type Order struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	PurchaseID  string `json:"purchase_id"`
	Quantity    int64  `json:"quantity"`
	OrderFilled bool   `json:"order_filled"`
	CreatedAt   string `json:"created_at"`
}

// PendingRequest is an account request awaiting, or finished with, approval.
// The approval token is never exposed.
type PendingRequest struct {
	ID             string `json:"id"`
	Status         string `json:"status" example:"pending_review"`
	IsPI           bool   `json:"is_pi"`
	RequesterName  string `json:"requester_name"`
	RequesterEmail string `json:"requester_email"`
	PIName         string `json:"pi_name"`
	PIEmail        string `json:"pi_email"`
	Organization   string `json:"organization,omitempty"`
	RequestedAt    string `json:"requested_at"`
	ProcessedAt    string `json:"processed_at,omitempty"`
}
