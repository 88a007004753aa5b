package sqlstore

import (
	"context"

	"github.com/aussiebroadwan/cnap/internal/cnap/domain"
)

type orgsRepo struct {
	q *querier
}

const orgColumns = `id, name, created_at`

func scanOrg(s scanner) (domain.Organization, error) {
	var o domain.Organization
	err := s.Scan(&o.ID, &o.Name, &o.CreatedAt)
	return o, err
}

func (r *orgsRepo) CreateOrganization(ctx context.Context, o domain.Organization) error {
	_, err := r.q.exec(ctx,
		`INSERT INTO organizations (`+orgColumns+`) VALUES (?, ?, ?)`,
		o.ID, o.Name, stamp(o.CreatedAt),
	)
	return err
}

func (r *orgsRepo) GetOrganizationByID(ctx context.Context, id string) (domain.Organization, error) {
	o, err := scanOrg(r.q.queryRow(ctx, `SELECT `+orgColumns+` FROM organizations WHERE id = ?`, id))
	return o, r.q.mapErr(err)
}

func (r *orgsRepo) GetOrganizationByName(ctx context.Context, name string) (domain.Organization, error) {
	o, err := scanOrg(r.q.queryRow(ctx,
		`SELECT `+orgColumns+` FROM organizations WHERE name = ? ORDER BY created_at, id LIMIT 1`, name))
	return o, r.q.mapErr(err)
}

func (r *orgsRepo) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	rows, err := r.q.query(ctx, `SELECT `+orgColumns+` FROM organizations ORDER BY name, id`)
	return collect(rows, err, scanOrg)
}
