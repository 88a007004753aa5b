package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/cnap/internal/cnap/analysis"
	"github.com/aussiebroadwan/cnap/internal/cnap/domain"
	"github.com/aussiebroadwan/cnap/internal/cnap/store"
	"github.com/aussiebroadwan/cnap/pkg/idx"
	"github.com/aussiebroadwan/cnap/pkg/slogx"
)

var errOutOfStock = errors.New("inventory exhausted")

// fulfill records the purchase and order, takes inventory, and places the
// project downstream. Downstream failures leave the order unfilled for a
// human to reconcile.
func (s *PipelineService) fulfill(ctx context.Context, o *pipelineOrder) (PipelineOutcome, error) {
	log := slogx.FromContext(ctx)
	now := clock(s.Now).now()

	purchase := domain.Purchase{
		ID:             idx.NewAt(now).String(),
		CnapUserID:     o.member.ID,
		PurchaseNumber: "P-" + idx.NewAt(now).String(),
		IssueDate:      &now,
		CreatedAt:      now,
	}
	order := domain.Order{
		ID:         idx.NewAt(now).String(),
		ProductID:  o.product.ID,
		PurchaseID: purchase.ID,
		Quantity:   o.req.Quantity,
		CreatedAt:  now,
	}

	// 1. Reserve stock and record the order together.
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		ok, err := tx.Products().ReserveInventory(ctx, o.product.ID, o.req.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			return errOutOfStock
		}
		if err := tx.Purchases().CreatePurchase(ctx, purchase); err != nil {
			return fmt.Errorf("create purchase: %w", err)
		}
		if err := tx.Orders().CreateOrder(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return nil
	})
	if err != nil {
		// Give back the charge; nothing was recorded.
		if o.charged {
			if rerr := s.Store.Budgets().ReleaseBudget(ctx, o.payment.ID, o.cost); rerr != nil {
				log.Error("failed to release budget charge",
					slog.String("payment_id", o.payment.ID),
					slog.Any("error", rerr),
				)
				err = errors.Join(err, rerr)
			}
		}
		if errors.Is(err, errOutOfStock) {
			// Stock moved between the check and the reservation.
			if p, perr := s.Store.Products().GetProductByID(ctx, o.product.ID); perr == nil {
				o.product = p
			}
			return OutcomeInventoryShortfall, s.shortfall(ctx, *o)
		}
		log.Error("failed to record order", slog.Any("error", err))
		return "", err
	}

	log = log.With(slog.String("order_id", order.ID), slog.String("purchase_id", purchase.ID))
	log.Info("order recorded", slog.Int64("cost_cents", int64(o.cost)))

	// 2. Place the project downstream.
	err = s.Projects.CreateProject(ctx, analysis.ProjectRequest{
		ClientEmail:   o.req.Email,
		WorkflowPK:    o.product.WorkflowPK,
		NumberOrdered: o.req.Quantity,
	})
	if err != nil {
		log.Error("analysis project creation failed", slog.Any("error", err))
		return OutcomeAccepted, s.Notifier.NotifyStaff(ctx,
			fmt.Sprintf("Order %s (purchase %s) for %d of %q by %s was charged %s but the analysis platform rejected it: %v",
				order.ID, purchase.ID, o.req.Quantity, o.req.Product, o.req.Email, o.cost, err),
			staffErrorSubject,
		)
	}

	// 3. Only now is the order filled.
	if err := s.Store.Orders().MarkOrderFilled(ctx, order.ID); err != nil {
		return OutcomeAccepted, fmt.Errorf("mark order %s filled: %w", order.ID, err)
	}
	log.Info("order filled")
	return OutcomeAccepted, nil
}
