package sqlstore

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/cnap/internal/cnap/domain"
)

type paymentsRepo struct {
	q *querier
}

const paymentColumns = `id, payment_type, number, payment_date, research_group_id, code, amount_cents, created_at`

func scanPayment(s scanner) (domain.Payment, error) {
	var (
		p      domain.Payment
		ptype  string
		date   sql.NullTime
		code   sql.NullString
		amount sql.NullInt64
	)
	err := s.Scan(&p.ID, &ptype, &p.Number, &date, &p.ResearchGroupID, &code, &amount, &p.CreatedAt)
	p.Type = domain.PaymentType(ptype)
	p.Date = mapNullTimePtr(date)
	p.Code = mapNullString(code)
	p.Amount = mapNullCents(amount)
	return p, err
}

func (r *paymentsRepo) CreatePayment(ctx context.Context, p domain.Payment) error {
	_, err := r.q.exec(ctx,
		`INSERT INTO payments (`+paymentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, string(p.Type), p.Number, mapOptionalTime(p.Date), p.ResearchGroupID,
		mapStringNull(p.Code), mapOptionalCents(p.Amount), stamp(p.CreatedAt),
	)
	return err
}

func (r *paymentsRepo) GetPaymentByID(ctx context.Context, id string) (domain.Payment, error) {
	p, err := scanPayment(r.q.queryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = ?`, id))
	return p, r.q.mapErr(err)
}

func (r *paymentsRepo) GetPaymentByCode(ctx context.Context, code string) (domain.Payment, error) {
	p, err := scanPayment(r.q.queryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE code = ?`, code))
	return p, r.q.mapErr(err)
}

func (r *paymentsRepo) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	rows, err := r.q.query(ctx, `SELECT `+paymentColumns+` FROM payments ORDER BY created_at, id`)
	return collect(rows, err, scanPayment)
}

func (r *paymentsRepo) UpdatePayment(ctx context.Context, p domain.Payment) error {
	return r.q.execOne(ctx,
		`UPDATE payments SET payment_type = ?, number = ?, payment_date = ?, research_group_id = ?,
			code = ?, amount_cents = ? WHERE id = ?`,
		string(p.Type), p.Number, mapOptionalTime(p.Date), p.ResearchGroupID,
		mapStringNull(p.Code), mapOptionalCents(p.Amount), p.ID,
	)
}

func (r *paymentsRepo) DeletePayment(ctx context.Context, id string) error {
	return r.q.execOne(ctx, `DELETE FROM payments WHERE id = ?`, id)
}

type budgetsRepo struct {
	q *querier
}

const budgetColumns = `id, payment_id, current_sum_cents, updated_at`

func scanBudget(s scanner) (domain.Budget, error) {
	var (
		b   domain.Budget
		sum int64
	)
	err := s.Scan(&b.ID, &b.PaymentID, &sum, &b.UpdatedAt)
	b.CurrentSum = domain.Cents(sum)
	return b, err
}

func (r *budgetsRepo) EnsureBudget(ctx context.Context, b domain.Budget) (domain.Budget, error) {
	_, err := r.q.exec(ctx,
		`INSERT INTO budgets (`+budgetColumns+`) VALUES (?, ?, ?, ?) ON CONFLICT (payment_id) DO NOTHING`,
		b.ID, b.PaymentID, int64(b.CurrentSum), stamp(b.UpdatedAt),
	)
	if err != nil {
		return domain.Budget{}, err
	}
	return r.GetBudgetByPaymentID(ctx, b.PaymentID)
}

func (r *budgetsRepo) GetBudgetByPaymentID(ctx context.Context, paymentID string) (domain.Budget, error) {
	b, err := scanBudget(r.q.queryRow(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE payment_id = ?`, paymentID))
	return b, r.q.mapErr(err)
}

func (r *budgetsRepo) ChargeBudget(ctx context.Context, paymentID string, amount, ceiling domain.Cents) (bool, error) {
	return r.q.execAny(ctx,
		`UPDATE budgets SET current_sum_cents = current_sum_cents + ?, updated_at = ?
			WHERE payment_id = ? AND current_sum_cents + ? <= ?`,
		int64(amount), now(), paymentID, int64(amount), int64(ceiling),
	)
}

func (r *budgetsRepo) ReleaseBudget(ctx context.Context, paymentID string, amount domain.Cents) error {
	return r.q.execOne(ctx,
		`UPDATE budgets SET current_sum_cents = current_sum_cents - ?, updated_at = ?
			WHERE payment_id = ? AND current_sum_cents >= ?`,
		int64(amount), now(), paymentID, int64(amount),
	)
}
