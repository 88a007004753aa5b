package sqlstore

import (
	"context"

	"github.com/aussiebroadwan/cnap/internal/cnap/domain"
)

type usersRepo struct {
	q *querier
}

const userColumns = `id, first_name, last_name, email, phone, created_at`

func scanUser(s scanner) (domain.User, error) {
	var u domain.User
	err := s.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.CreatedAt)
	return u, err
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.exec(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.FirstName, u.LastName, u.Email, u.Phone, stamp(u.CreatedAt),
	)
	return err
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	u, err := scanUser(r.q.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	return u, r.q.mapErr(err)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	u, err := scanUser(r.q.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email))
	return u, r.q.mapErr(err)
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.q.query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	return collect(rows, err, scanUser)
}

type membersRepo struct {
	q *querier
}

const memberColumns = `id, user_id, research_group_id, joined_at`

func scanMember(s scanner) (domain.CnapUser, error) {
	var m domain.CnapUser
	err := s.Scan(&m.ID, &m.UserID, &m.ResearchGroupID, &m.JoinedAt)
	return m, err
}

func (r *membersRepo) CreateMember(ctx context.Context, m domain.CnapUser) error {
	_, err := r.q.exec(ctx,
		`INSERT INTO cnap_users (`+memberColumns+`) VALUES (?, ?, ?, ?)`,
		m.ID, m.UserID, m.ResearchGroupID, stamp(m.JoinedAt),
	)
	return err
}

func (r *membersRepo) GetMemberByID(ctx context.Context, id string) (domain.CnapUser, error) {
	m, err := scanMember(r.q.queryRow(ctx, `SELECT `+memberColumns+` FROM cnap_users WHERE id = ?`, id))
	return m, r.q.mapErr(err)
}

func (r *membersRepo) GetMember(ctx context.Context, userID, groupID string) (domain.CnapUser, error) {
	m, err := scanMember(r.q.queryRow(ctx,
		`SELECT `+memberColumns+` FROM cnap_users WHERE user_id = ? AND research_group_id = ?`, userID, groupID))
	return m, r.q.mapErr(err)
}

func (r *membersRepo) ListMembers(ctx context.Context) ([]domain.CnapUser, error) {
	rows, err := r.q.query(ctx, `SELECT `+memberColumns+` FROM cnap_users ORDER BY joined_at, id`)
	return collect(rows, err, scanMember)
}
