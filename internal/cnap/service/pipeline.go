package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/cnap/internal/cnap/domain"
	"github.com/aussiebroadwan/cnap/internal/cnap/metrics"
	"github.com/aussiebroadwan/cnap/internal/cnap/notify"
	"github.com/aussiebroadwan/cnap/internal/cnap/store"
	"github.com/aussiebroadwan/cnap/pkg/idx"
	"github.com/aussiebroadwan/cnap/pkg/slogx"
)

// PipelineOutcome is the branch a pipeline request took.
type PipelineOutcome string

const (
	OutcomeRegisterFirst      PipelineOutcome = "register_first"
	OutcomeRegisterLab        PipelineOutcome = "register_lab"
	OutcomeAssociateFirst     PipelineOutcome = "associate_first"
	OutcomeUnknownProduct     PipelineOutcome = "unknown_product"
	OutcomeInventoryShortfall PipelineOutcome = "inventory_shortfall"
	OutcomeQuoted             PipelineOutcome = "quoted"
	OutcomeUnknownPayment     PipelineOutcome = "unknown_payment"
	OutcomeRejected           PipelineOutcome = "rejected"
	OutcomeAccepted           PipelineOutcome = "accepted"
)

type PipelineService struct {
	Store    store.Store
	Notifier Notifier
	Projects ProjectCreator
	Finance  FinanceApprover // optional
	Metrics  *metrics.Metrics
	Now      func() time.Time
}

// pipelineOrder carries a request through validation and fulfillment.
type pipelineOrder struct {
	req     domain.PipelineRequest
	user    domain.User
	member  domain.CnapUser
	product domain.Product
	cost    domain.Cents
	payment domain.Payment
	charged bool // budget was debited and must be released on failure
}

// HandlePipelineRequest routes a parsed pipeline request: identity checks,
// then a quote when no payment code is given, otherwise a budget charge and
// fulfillment.
func (s *PipelineService) HandlePipelineRequest(ctx context.Context, req domain.PipelineRequest) (PipelineOutcome, error) {
	ctx = slogx.With(ctx,
		slog.String("requester", req.Email),
		slog.String("pi_email", req.PIEmail),
		slog.String("pipeline", req.Product),
		slog.Int64("quantity", req.Quantity),
	)
	outcome, err := s.handle(ctx, req)
	if outcome != "" {
		s.Metrics.PipelineOutcome(string(outcome))
		slogx.FromContext(ctx).Info("pipeline request handled", slog.String("outcome", string(outcome)))
	}
	return outcome, err
}

func (s *PipelineService) handle(ctx context.Context, req domain.PipelineRequest) (PipelineOutcome, error) {
	r := Resolver{Store: s.Store}
	o := pipelineOrder{req: req}

	// 1. Requester must exist.
	user, err := r.FindUserByEmail(ctx, req.Email)
	if err != nil {
		return "", err
	}
	if !user.Found {
		return OutcomeRegisterFirst, s.tell(ctx, req.Email, notify.RegisterFirst, req.Email)
	}
	o.user = user.Value

	// 2. The PI's lab must exist.
	lab, err := r.FindResearchGroupByPIEmail(ctx, req.PIEmail)
	if err != nil {
		return "", err
	}
	if !lab.Found {
		return OutcomeRegisterLab, s.tell(ctx, req.Email, notify.RegisterLab, req.PIEmail)
	}

	// 3. The requester must belong to it.
	member, err := r.FindAssociation(ctx, o.user.ID, lab.Value.ID)
	if err != nil {
		return "", err
	}
	if !member.Found {
		return OutcomeAssociateFirst, s.tell(ctx, req.Email, notify.AssociateFirst, req.PIEmail)
	}
	o.member = member.Value

	// 4. No payment code: quote.
	if !req.HasPaymentCode() {
		if outcome, err := s.priceOrder(ctx, &o); outcome != "" || err != nil {
			return outcome, err
		}
		quoteErr := s.tell(ctx, req.Email, notify.Quote, req.Product, req.Quantity, o.product.UnitCost.String(), o.cost.String())
		staffErr := s.Notifier.NotifyStaff(ctx,
			fmt.Sprintf("%s was quoted %s for %d of %q and still needs to supply a payment method.",
				req.Email, o.cost, req.Quantity, req.Product),
			"CNAP pipeline quote sent",
		)
		return OutcomeQuoted, errors.Join(quoteErr, staffErr)
	}

	// 5. The payment code must resolve.
	payment, err := s.Store.Payments().GetPaymentByCode(ctx, req.PaymentCode)
	if errors.Is(err, store.ErrNotFound) {
		return OutcomeUnknownPayment, s.tell(ctx, req.Email, notify.ResubmitPayment, req.PaymentCode)
	}
	if err != nil {
		return "", err
	}
	o.payment = payment

	// 6. Validate against the budget, then fulfill.
	if outcome, err := s.priceOrder(ctx, &o); outcome != "" || err != nil {
		return outcome, err
	}
	if payment.ResearchGroupID != lab.Value.ID {
		return s.reject(ctx, o, fmt.Sprintf("payment code %s does not belong to the lab of %s", req.PaymentCode, req.PIEmail))
	}
	if reason, err := s.charge(ctx, &o); err != nil {
		return "", err
	} else if reason != "" {
		return s.reject(ctx, o, reason)
	}
	return s.fulfill(ctx, &o)
}

// priceOrder resolves the product and checks stock. A non-empty outcome
// means the request stopped here and the parties were notified.
func (s *PipelineService) priceOrder(ctx context.Context, o *pipelineOrder) (PipelineOutcome, error) {
	req := o.req
	product, err := s.Store.Products().GetProductByName(ctx, req.Product)
	if errors.Is(err, store.ErrNotFound) {
		staffErr := s.Notifier.NotifyStaff(ctx,
			fmt.Sprintf("%s requested an unknown pipeline %q (quantity %d, PI %s).", req.Email, req.Product, req.Quantity, req.PIEmail),
			"CNAP bad pipeline request",
		)
		userErr := s.tell(ctx, req.Email, notify.PipelineFailed, req.Product)
		return OutcomeUnknownProduct, errors.Join(staffErr, userErr)
	}
	if err != nil {
		return "", err
	}
	o.product = product
	cost, ok := product.Cost(req.Quantity)
	if !ok {
		return s.reject(ctx, *o, fmt.Sprintf("an order of %d units of %q cannot be priced", req.Quantity, req.Product))
	}
	o.cost = cost

	if !product.HasStock(req.Quantity) {
		return OutcomeInventoryShortfall, s.shortfall(ctx, *o)
	}
	return "", nil
}

// charge debits the payment's budget. It returns a rejection reason, or ""
// when the charge was accepted. Open-ended payments are accepted without
// touching the budget.
func (s *PipelineService) charge(ctx context.Context, o *pipelineOrder) (string, error) {
	if s.Finance != nil {
		ok, reason, err := s.Finance.ApproveCharge(ctx, ChargeReview{
			Payment: o.payment, Product: o.product, Quantity: o.req.Quantity, Cost: o.cost,
		})
		if err != nil {
			return "", fmt.Errorf("finance approval: %w", err)
		}
		if !ok {
			if reason == "" {
				reason = "the charge was declined by finance"
			}
			return reason, nil
		}
	}

	budget, err := s.Store.Budgets().EnsureBudget(ctx, domain.Budget{
		ID:        idx.New().String(),
		PaymentID: o.payment.ID,
		UpdatedAt: clock(s.Now).now(),
	})
	if err != nil {
		return "", err
	}
	if o.payment.Unlimited() {
		return "", nil
	}

	ceiling := *o.payment.Amount
	ok, err := s.Store.Budgets().ChargeBudget(ctx, o.payment.ID, o.cost, ceiling)
	if err != nil {
		return "", err
	}
	if !ok {
		// Reload so the reason reflects what actually blocked the charge.
		if b, err := s.Store.Budgets().GetBudgetByPaymentID(ctx, o.payment.ID); err == nil {
			budget = b
		}
		return fmt.Sprintf("the order cost of %s plus prior charges of %s exceeds the payment amount of %s",
			o.cost, budget.CurrentSum, ceiling), nil
	}
	o.charged = true
	return "", nil
}

func (s *PipelineService) reject(ctx context.Context, o pipelineOrder, reason string) (PipelineOutcome, error) {
	slogx.FromContext(ctx).Info("pipeline request rejected", slog.String("reason", reason))
	return OutcomeRejected, s.tell(ctx, o.req.Email, notify.PaymentRejected, o.req.Product, reason)
}

func (s *PipelineService) shortfall(ctx context.Context, o pipelineOrder) error {
	req := o.req
	userErr := s.tell(ctx, req.Email, notify.InventoryShortfall, req.Product, req.Quantity, o.product.Quantity)
	staffErr := s.Notifier.NotifyStaff(ctx,
		fmt.Sprintf("%s requested %d of %q but only %d remain.", req.Email, req.Quantity, req.Product, o.product.Quantity),
		"CNAP inventory shortfall",
	)
	return errors.Join(userErr, staffErr)
}

func (s *PipelineService) tell(ctx context.Context, to string, kind notify.Kind, args ...any) error {
	return s.Notifier.Send(ctx, notify.Notification{Kind: kind, To: to, Args: args})
}
