package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/cnap/internal/cnap/domain"
	"github.com/aussiebroadwan/cnap/internal/cnap/store"
	"github.com/aussiebroadwan/cnap/pkg/idx"
)

// RecordsService backs the staff records API.
type RecordsService struct {
	Store store.Store
	Now   func() time.Time
}

// PaymentView is a payment with its running budget, if one was opened.
type PaymentView struct {
	domain.Payment
	Budget *domain.Budget `json:"budget,omitempty"`
}

func mapStoreErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return ErrRecordNotFound
	case errors.Is(err, store.ErrAlreadyExists):
		return ErrRecordConflict
	}
	return err
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRecord, fmt.Sprintf(format, args...))
}

func validateProduct(p *domain.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	switch {
	case p.Name == "":
		return invalid("name is required")
	case p.Quantity < 0:
		return invalid("quantity must not be negative")
	case p.UnitCost < 0:
		return invalid("unit cost must not be negative")
	}
	return nil
}

func (s *RecordsService) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	if err := validateProduct(&p); err != nil {
		return domain.Product{}, err
	}
	p.ID = idx.New().String()
	p.CreatedAt = clock(s.Now).now()
	if err := s.Store.Products().CreateProduct(ctx, p); err != nil {
		return domain.Product{}, mapStoreErr(err)
	}
	return p, nil
}

func (s *RecordsService) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	p, err := s.Store.Products().GetProductByID(ctx, id)
	return p, mapStoreErr(err)
}

func (s *RecordsService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.Store.Products().ListProducts(ctx)
}

func (s *RecordsService) UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	if err := validateProduct(&p); err != nil {
		return domain.Product{}, err
	}
	existing, err := s.Store.Products().GetProductByID(ctx, p.ID)
	if err != nil {
		return domain.Product{}, mapStoreErr(err)
	}
	p.CreatedAt = existing.CreatedAt
	if err := s.Store.Products().UpdateProduct(ctx, p); err != nil {
		return domain.Product{}, mapStoreErr(err)
	}
	return p, nil
}

func (s *RecordsService) DeleteProduct(ctx context.Context, id string) error {
	return mapStoreErr(s.Store.Products().DeleteProduct(ctx, id))
}

func (s *RecordsService) validatePayment(ctx context.Context, p *domain.Payment) error {
	if _, err := domain.ParsePaymentType(string(p.Type)); err != nil {
		return invalid("%v", err)
	}
	p.Code = strings.TrimSpace(p.Code)
	if p.Amount != nil && *p.Amount < 0 {
		return invalid("amount must not be negative")
	}
	if p.ResearchGroupID == "" {
		return invalid("research_group_id is required")
	}
	if _, err := s.Store.ResearchGroups().GetResearchGroupByID(ctx, p.ResearchGroupID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return invalid("research group %s does not exist", p.ResearchGroupID)
		}
		return err
	}
	return nil
}

func (s *RecordsService) CreatePayment(ctx context.Context, p domain.Payment) (PaymentView, error) {
	if err := s.validatePayment(ctx, &p); err != nil {
		return PaymentView{}, err
	}
	p.ID = idx.New().String()
	p.CreatedAt = clock(s.Now).now()
	if err := s.Store.Payments().CreatePayment(ctx, p); err != nil {
		return PaymentView{}, mapStoreErr(err)
	}
	return PaymentView{Payment: p}, nil
}

func (s *RecordsService) GetPayment(ctx context.Context, id string) (PaymentView, error) {
	p, err := s.Store.Payments().GetPaymentByID(ctx, id)
	if err != nil {
		return PaymentView{}, mapStoreErr(err)
	}
	return s.withBudget(ctx, p)
}

func (s *RecordsService) ListPayments(ctx context.Context) ([]PaymentView, error) {
	payments, err := s.Store.Payments().ListPayments(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PaymentView, 0, len(payments))
	for _, p := range payments {
		v, err := s.withBudget(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *RecordsService) UpdatePayment(ctx context.Context, p domain.Payment) (PaymentView, error) {
	if err := s.validatePayment(ctx, &p); err != nil {
		return PaymentView{}, err
	}
	existing, err := s.Store.Payments().GetPaymentByID(ctx, p.ID)
	if err != nil {
		return PaymentView{}, mapStoreErr(err)
	}
	p.CreatedAt = existing.CreatedAt
	if err := s.Store.Payments().UpdatePayment(ctx, p); err != nil {
		return PaymentView{}, mapStoreErr(err)
	}
	return s.withBudget(ctx, p)
}

func (s *RecordsService) DeletePayment(ctx context.Context, id string) error {
	return mapStoreErr(s.Store.Payments().DeletePayment(ctx, id))
}

func (s *RecordsService) withBudget(ctx context.Context, p domain.Payment) (PaymentView, error) {
	b, err := s.Store.Budgets().GetBudgetByPaymentID(ctx, p.ID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return PaymentView{Payment: p}, nil
	case err != nil:
		return PaymentView{}, err
	}
	return PaymentView{Payment: p, Budget: &b}, nil
}

// Read-only records.

func (s *RecordsService) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	return s.Store.Organizations().ListOrganizations(ctx)
}

func (s *RecordsService) GetOrganization(ctx context.Context, id string) (domain.Organization, error) {
	o, err := s.Store.Organizations().GetOrganizationByID(ctx, id)
	return o, mapStoreErr(err)
}

func (s *RecordsService) ListResearchGroups(ctx context.Context) ([]domain.ResearchGroup, error) {
	return s.Store.ResearchGroups().ListResearchGroups(ctx)
}

func (s *RecordsService) GetResearchGroup(ctx context.Context, id string) (domain.ResearchGroup, error) {
	g, err := s.Store.ResearchGroups().GetResearchGroupByID(ctx, id)
	return g, mapStoreErr(err)
}

func (s *RecordsService) ListMembers(ctx context.Context) ([]domain.CnapUser, error) {
	return s.Store.Members().ListMembers(ctx)
}

func (s *RecordsService) GetMember(ctx context.Context, id string) (domain.CnapUser, error) {
	m, err := s.Store.Members().GetMemberByID(ctx, id)
	return m, mapStoreErr(err)
}

func (s *RecordsService) ListPurchases(ctx context.Context) ([]domain.Purchase, error) {
	return s.Store.Purchases().ListPurchases(ctx)
}

func (s *RecordsService) GetPurchase(ctx context.Context, id string) (domain.Purchase, error) {
	p, err := s.Store.Purchases().GetPurchaseByID(ctx, id)
	return p, mapStoreErr(err)
}

func (s *RecordsService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.Store.Orders().ListOrders(ctx)
}

func (s *RecordsService) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	o, err := s.Store.Orders().GetOrderByID(ctx, id)
	return o, mapStoreErr(err)
}

func (s *RecordsService) ListPendingRequests(ctx context.Context) ([]domain.PendingUser, error) {
	return s.Store.PendingUsers().ListPendingUsers(ctx)
}

func (s *RecordsService) GetPendingRequest(ctx context.Context, id string) (domain.PendingUser, error) {
	p, err := s.Store.PendingUsers().GetPendingUserByID(ctx, id)
	return p, mapStoreErr(err)
}
