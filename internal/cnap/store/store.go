package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/cnap/internal/cnap/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Repositories are reached through methods so a Tx-scoped
// Store can hand out the same repositories bound to the transaction.
type Store interface {
	Organizations() Organizations
	ResearchGroups() ResearchGroups
	FinancialCoordinators() FinancialCoordinators
	Users() Users
	Members() Members
	PendingUsers() PendingUsers
	ProcessedEmails() ProcessedEmails
	Payments() Payments
	Budgets() Budgets
	Products() Products
	Purchases() Purchases
	Orders() Orders

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Nested transactions are not supported.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Organizations interface {
	CreateOrganization(ctx context.Context, o domain.Organization) error
	GetOrganizationByID(ctx context.Context, id string) (domain.Organization, error)

	// GetOrganizationByName returns the oldest organization with that name.
	GetOrganizationByName(ctx context.Context, name string) (domain.Organization, error)
	ListOrganizations(ctx context.Context) ([]domain.Organization, error)
}

type ResearchGroups interface {
	// CreateResearchGroup returns ErrAlreadyExists when the PI email is taken.
	CreateResearchGroup(ctx context.Context, g domain.ResearchGroup) error
	GetResearchGroupByID(ctx context.Context, id string) (domain.ResearchGroup, error)
	GetResearchGroupByPIEmail(ctx context.Context, email string) (domain.ResearchGroup, error)
	ListResearchGroups(ctx context.Context) ([]domain.ResearchGroup, error)
}

type FinancialCoordinators interface {
	CreateFinancialCoordinator(ctx context.Context, fc domain.FinancialCoordinator) error
	ListFinancialCoordinatorsByGroup(ctx context.Context, groupID string) ([]domain.FinancialCoordinator, error)
}

type Users interface {
	// CreateUser returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error
	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// Members stores CnapUser associations.
type Members interface {
	// CreateMember returns ErrAlreadyExists when the user already belongs to
	// the group.
	CreateMember(ctx context.Context, m domain.CnapUser) error
	GetMemberByID(ctx context.Context, id string) (domain.CnapUser, error)
	GetMember(ctx context.Context, userID, groupID string) (domain.CnapUser, error)
	ListMembers(ctx context.Context) ([]domain.CnapUser, error)
}

type PendingUsers interface {
	CreatePendingUser(ctx context.Context, p domain.PendingUser) error
	GetPendingUserByID(ctx context.Context, id string) (domain.PendingUser, error)
	GetPendingUserByToken(ctx context.Context, token string) (domain.PendingUser, error)
	ListPendingUsers(ctx context.Context) ([]domain.PendingUser, error)

	// IssueApprovalToken moves a pending_review row to awaiting_pi. It
	// returns ErrNotFound when no row in pending_review matches.
	IssueApprovalToken(ctx context.Context, id, token string) error

	// FinishPendingUser records the final status. It returns ErrNotFound
	// when the row is missing or was already finished.
	FinishPendingUser(ctx context.Context, id string, status domain.PendingStatus, at time.Time) error
}

type ProcessedEmails interface {
	// CreateProcessedEmail returns ErrAlreadyExists when the message was
	// already marked.
	CreateProcessedEmail(ctx context.Context, e domain.ProcessedEmail) error
	IsProcessed(ctx context.Context, server, folder, uid string) (bool, error)
	DeleteProcessedEmail(ctx context.Context, id string) error
}

type Payments interface {
	// CreatePayment returns ErrAlreadyExists when the code is taken.
	CreatePayment(ctx context.Context, p domain.Payment) error
	GetPaymentByID(ctx context.Context, id string) (domain.Payment, error)
	GetPaymentByCode(ctx context.Context, code string) (domain.Payment, error)
	ListPayments(ctx context.Context) ([]domain.Payment, error)
	UpdatePayment(ctx context.Context, p domain.Payment) error
	DeletePayment(ctx context.Context, id string) error
}

type Budgets interface {
	// EnsureBudget creates a zero budget for the payment unless one exists,
	// then returns the stored row.
	EnsureBudget(ctx context.Context, b domain.Budget) (domain.Budget, error)
	GetBudgetByPaymentID(ctx context.Context, paymentID string) (domain.Budget, error)

	// ChargeBudget adds amount to the running sum only when the result stays
	// within ceiling. The check and the write are one statement.
	ChargeBudget(ctx context.Context, paymentID string, amount, ceiling domain.Cents) (bool, error)

	// ReleaseBudget subtracts a previously charged amount.
	ReleaseBudget(ctx context.Context, paymentID string, amount domain.Cents) error
}

type Products interface {
	// CreateProduct returns ErrAlreadyExists when the name is taken.
	CreateProduct(ctx context.Context, p domain.Product) error
	GetProductByID(ctx context.Context, id string) (domain.Product, error)
	GetProductByName(ctx context.Context, name string) (domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, p domain.Product) error
	DeleteProduct(ctx context.Context, id string) error

	// ReserveInventory takes n units from a quantity-limited product if that
	// many remain. Unlimited products always succeed and are left untouched.
	ReserveInventory(ctx context.Context, id string, n int64) (bool, error)
}

type Purchases interface {
	CreatePurchase(ctx context.Context, p domain.Purchase) error
	GetPurchaseByID(ctx context.Context, id string) (domain.Purchase, error)
	ListPurchases(ctx context.Context) ([]domain.Purchase, error)
}

type Orders interface {
	CreateOrder(ctx context.Context, o domain.Order) error
	GetOrderByID(ctx context.Context, id string) (domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	MarkOrderFilled(ctx context.Context, id string) error
}
