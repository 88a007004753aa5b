package sqlstore

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/cnap/internal/cnap/domain"
)

type groupsRepo struct {
	q *querier
}

const groupColumns = `id, pi_name, pi_email, organization_id, has_harvard_appointment, department,
	address_lines, city, state, postal_code, country, created_at`

func scanGroup(s scanner) (domain.ResearchGroup, error) {
	var (
		g     domain.ResearchGroup
		orgID sql.NullString
	)
	err := s.Scan(&g.ID, &g.PIName, &g.PIEmail, &orgID, &g.HasHarvardAppointment, &g.Department,
		&g.AddressLines, &g.City, &g.State, &g.PostalCode, &g.Country, &g.CreatedAt)
	g.OrganizationID = mapNullString(orgID)
	return g, err
}

func (r *groupsRepo) CreateResearchGroup(ctx context.Context, g domain.ResearchGroup) error {
	_, err := r.q.exec(ctx,
		`INSERT INTO research_groups (`+groupColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.PIName, g.PIEmail, mapStringNull(g.OrganizationID), g.HasHarvardAppointment, g.Department,
		g.AddressLines, g.City, g.State, g.PostalCode, g.Country, stamp(g.CreatedAt),
	)
	return err
}

func (r *groupsRepo) GetResearchGroupByID(ctx context.Context, id string) (domain.ResearchGroup, error) {
	g, err := scanGroup(r.q.queryRow(ctx, `SELECT `+groupColumns+` FROM research_groups WHERE id = ?`, id))
	return g, r.q.mapErr(err)
}

func (r *groupsRepo) GetResearchGroupByPIEmail(ctx context.Context, email string) (domain.ResearchGroup, error) {
	g, err := scanGroup(r.q.queryRow(ctx, `SELECT `+groupColumns+` FROM research_groups WHERE pi_email = ?`, email))
	return g, r.q.mapErr(err)
}

func (r *groupsRepo) ListResearchGroups(ctx context.Context) ([]domain.ResearchGroup, error) {
	rows, err := r.q.query(ctx, `SELECT `+groupColumns+` FROM research_groups ORDER BY created_at, id`)
	return collect(rows, err, scanGroup)
}

type coordinatorsRepo struct {
	q *querier
}

const coordinatorColumns = `id, research_group_id, contact_name, contact_email, created_at`

func scanCoordinator(s scanner) (domain.FinancialCoordinator, error) {
	var fc domain.FinancialCoordinator
	err := s.Scan(&fc.ID, &fc.ResearchGroupID, &fc.ContactName, &fc.ContactEmail, &fc.CreatedAt)
	return fc, err
}

func (r *coordinatorsRepo) CreateFinancialCoordinator(ctx context.Context, fc domain.FinancialCoordinator) error {
	_, err := r.q.exec(ctx,
		`INSERT INTO financial_coordinators (`+coordinatorColumns+`) VALUES (?, ?, ?, ?, ?)`,
		fc.ID, fc.ResearchGroupID, fc.ContactName, fc.ContactEmail, stamp(fc.CreatedAt),
	)
	return err
}

func (r *coordinatorsRepo) ListFinancialCoordinatorsByGroup(ctx context.Context, groupID string) ([]domain.FinancialCoordinator, error) {
	rows, err := r.q.query(ctx,
		`SELECT `+coordinatorColumns+` FROM financial_coordinators WHERE research_group_id = ? ORDER BY created_at, id`, groupID)
	return collect(rows, err, scanCoordinator)
}
