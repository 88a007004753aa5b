package sqlstore

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/cnap/internal/cnap/domain"
)

type productsRepo struct {
	q *querier
}

const productColumns = `id, name, description, quantity, is_quantity_limited, workflow_pk, unit_cost_cents, created_at`

func scanProduct(s scanner) (domain.Product, error) {
	var (
		p    domain.Product
		cost int64
	)
	err := s.Scan(&p.ID, &p.Name, &p.Description, &p.Quantity, &p.IsQuantityLimited, &p.WorkflowPK, &cost, &p.CreatedAt)
	p.UnitCost = domain.Cents(cost)
	return p, err
}

func (r *productsRepo) CreateProduct(ctx context.Context, p domain.Product) error {
	_, err := r.q.exec(ctx,
		`INSERT INTO products (`+productColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Quantity, p.IsQuantityLimited, p.WorkflowPK, int64(p.UnitCost), stamp(p.CreatedAt),
	)
	return err
}

func (r *productsRepo) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	p, err := scanProduct(r.q.queryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id))
	return p, r.q.mapErr(err)
}

func (r *productsRepo) GetProductByName(ctx context.Context, name string) (domain.Product, error) {
	p, err := scanProduct(r.q.queryRow(ctx, `SELECT `+productColumns+` FROM products WHERE name = ?`, name))
	return p, r.q.mapErr(err)
}

func (r *productsRepo) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.q.query(ctx, `SELECT `+productColumns+` FROM products ORDER BY name, id`)
	return collect(rows, err, scanProduct)
}

func (r *productsRepo) UpdateProduct(ctx context.Context, p domain.Product) error {
	return r.q.execOne(ctx,
		`UPDATE products SET name = ?, description = ?, quantity = ?, is_quantity_limited = ?,
			workflow_pk = ?, unit_cost_cents = ? WHERE id = ?`,
		p.Name, p.Description, p.Quantity, p.IsQuantityLimited, p.WorkflowPK, int64(p.UnitCost), p.ID,
	)
}

func (r *productsRepo) DeleteProduct(ctx context.Context, id string) error {
	return r.q.execOne(ctx, `DELETE FROM products WHERE id = ?`, id)
}

func (r *productsRepo) ReserveInventory(ctx context.Context, id string, n int64) (bool, error) {
	return r.q.execAny(ctx,
		`UPDATE products
			SET quantity = CASE WHEN is_quantity_limited THEN quantity - ? ELSE quantity END
			WHERE id = ? AND (NOT is_quantity_limited OR quantity >= ?)`,
		n, id, n,
	)
}

type purchasesRepo struct {
	q *querier
}

const purchaseColumns = `id, cnap_user_id, purchase_number, issue_date, close_date, created_at`

func scanPurchase(s scanner) (domain.Purchase, error) {
	var (
		p             domain.Purchase
		issue, closed sql.NullTime
	)
	err := s.Scan(&p.ID, &p.CnapUserID, &p.PurchaseNumber, &issue, &closed, &p.CreatedAt)
	p.IssueDate = mapNullTimePtr(issue)
	p.CloseDate = mapNullTimePtr(closed)
	return p, err
}

func (r *purchasesRepo) CreatePurchase(ctx context.Context, p domain.Purchase) error {
	_, err := r.q.exec(ctx,
		`INSERT INTO purchases (`+purchaseColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.CnapUserID, p.PurchaseNumber, mapOptionalTime(p.IssueDate), mapOptionalTime(p.CloseDate), stamp(p.CreatedAt),
	)
	return err
}

func (r *purchasesRepo) GetPurchaseByID(ctx context.Context, id string) (domain.Purchase, error) {
	p, err := scanPurchase(r.q.queryRow(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = ?`, id))
	return p, r.q.mapErr(err)
}

func (r *purchasesRepo) ListPurchases(ctx context.Context) ([]domain.Purchase, error) {
	rows, err := r.q.query(ctx, `SELECT `+purchaseColumns+` FROM purchases ORDER BY created_at, id`)
	return collect(rows, err, scanPurchase)
}

type ordersRepo struct {
	q *querier
}

const orderColumns = `id, product_id, purchase_id, quantity, order_filled, created_at`

func scanOrder(s scanner) (domain.Order, error) {
	var o domain.Order
	err := s.Scan(&o.ID, &o.ProductID, &o.PurchaseID, &o.Quantity, &o.OrderFilled, &o.CreatedAt)
	return o, err
}

func (r *ordersRepo) CreateOrder(ctx context.Context, o domain.Order) error {
	_, err := r.q.exec(ctx,
		`INSERT INTO orders (`+orderColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		o.ID, o.ProductID, o.PurchaseID, o.Quantity, o.OrderFilled, stamp(o.CreatedAt),
	)
	return err
}

func (r *ordersRepo) GetOrderByID(ctx context.Context, id string) (domain.Order, error) {
	o, err := scanOrder(r.q.queryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id))
	return o, r.q.mapErr(err)
}

func (r *ordersRepo) ListOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.q.query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at, id`)
	return collect(rows, err, scanOrder)
}

func (r *ordersRepo) MarkOrderFilled(ctx context.Context, id string) error {
	return r.q.execOne(ctx, `UPDATE orders SET order_filled = ? WHERE id = ?`, true, id)
}
