package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aussiebroadwan/cnap/internal/cnap/domain"
)

type pendingRepo struct {
	q *querier
}

const pendingColumns = `id, is_pi, info_json, approval_token, status, requested_at, processed_at`

func scanPending(s scanner) (domain.PendingUser, error) {
	var (
		p         domain.PendingUser
		info      string
		token     sql.NullString
		status    string
		processed sql.NullTime
	)
	if err := s.Scan(&p.ID, &p.IsPI, &info, &token, &status, &p.RequestedAt, &processed); err != nil {
		return domain.PendingUser{}, err
	}
	if err := json.Unmarshal([]byte(info), &p.Request); err != nil {
		return domain.PendingUser{}, fmt.Errorf("decode pending user %s: %w", p.ID, err)
	}
	p.ApprovalToken = mapNullString(token)
	p.Status = domain.PendingStatus(status)
	p.ProcessedAt = mapNullTimePtr(processed)
	return p, nil
}

func (r *pendingRepo) CreatePendingUser(ctx context.Context, p domain.PendingUser) error {
	info, err := json.Marshal(p.Request)
	if err != nil {
		return fmt.Errorf("encode pending user: %w", err)
	}
	status := p.Status
	if status == "" {
		status = domain.PendingReview
	}
	_, err = r.q.exec(ctx,
		`INSERT INTO pending_users (`+pendingColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.IsPI, string(info), mapStringNull(p.ApprovalToken), string(status),
		stamp(p.RequestedAt), mapOptionalTime(p.ProcessedAt),
	)
	return err
}

func (r *pendingRepo) GetPendingUserByID(ctx context.Context, id string) (domain.PendingUser, error) {
	p, err := scanPending(r.q.queryRow(ctx, `SELECT `+pendingColumns+` FROM pending_users WHERE id = ?`, id))
	return p, r.q.mapErr(err)
}

func (r *pendingRepo) GetPendingUserByToken(ctx context.Context, token string) (domain.PendingUser, error) {
	p, err := scanPending(r.q.queryRow(ctx, `SELECT `+pendingColumns+` FROM pending_users WHERE approval_token = ?`, token))
	return p, r.q.mapErr(err)
}

func (r *pendingRepo) ListPendingUsers(ctx context.Context) ([]domain.PendingUser, error) {
	rows, err := r.q.query(ctx, `SELECT `+pendingColumns+` FROM pending_users ORDER BY requested_at, id`)
	return collect(rows, err, scanPending)
}

func (r *pendingRepo) IssueApprovalToken(ctx context.Context, id, token string) error {
	return r.q.execOne(ctx,
		`UPDATE pending_users SET approval_token = ?, status = ? WHERE id = ? AND status = ?`,
		token, string(domain.PendingAwaitingPI), id, string(domain.PendingReview),
	)
}

func (r *pendingRepo) FinishPendingUser(ctx context.Context, id string, status domain.PendingStatus, at time.Time) error {
	return r.q.execOne(ctx,
		`UPDATE pending_users SET status = ?, processed_at = ? WHERE id = ? AND status NOT IN (?, ?)`,
		string(status), stamp(at), id, string(domain.PendingCompleted), string(domain.PendingDuplicate),
	)
}

type processedRepo struct {
	q *querier
}

func (r *processedRepo) CreateProcessedEmail(ctx context.Context, e domain.ProcessedEmail) error {
	_, err := r.q.exec(ctx,
		`INSERT INTO processed_emails (id, mail_server, mail_folder, message_uid, processed_at) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.MailServer, e.MailFolder, e.MessageUID, stamp(e.ProcessedAt),
	)
	return err
}

func (r *processedRepo) IsProcessed(ctx context.Context, server, folder, uid string) (bool, error) {
	var n int
	err := r.q.queryRow(ctx,
		`SELECT COUNT(*) FROM processed_emails WHERE mail_server = ? AND mail_folder = ? AND message_uid = ?`,
		server, folder, uid,
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *processedRepo) DeleteProcessedEmail(ctx context.Context, id string) error {
	return r.q.execOne(ctx, `DELETE FROM processed_emails WHERE id = ?`, id)
}
