package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/cnap/internal/cnap/domain"
	"github.com/aussiebroadwan/cnap/internal/cnap/notify"
	"github.com/aussiebroadwan/cnap/internal/cnap/store"
	"github.com/aussiebroadwan/cnap/pkg/cryptox"
	"github.com/aussiebroadwan/cnap/pkg/idx"
	"github.com/aussiebroadwan/cnap/pkg/slogx"
)

// ApprovalResult reports what a PI approval did.
type ApprovalResult string

const (
	// ApprovalCompleted created the lab or the membership.
	ApprovalCompleted ApprovalResult = "completed"
	// ApprovalDuplicate found everything already in place and sent nothing.
	ApprovalDuplicate ApprovalResult = "duplicate"
	// ApprovalAlreadyProcessed means this link was used before.
	ApprovalAlreadyProcessed ApprovalResult = "already_processed"
)

// errFinished aborts a finalizer transaction that lost the race to mark
// the PendingUser finished.
var errFinished = errors.New("pending user already finished")

type approvalRecord struct {
	group      domain.ResearchGroup
	labCreated bool
	status     domain.PendingStatus
}

// ApprovePI finalizes the request behind a PI approval token. For a
// self-registration it instantiates the lab. For a member request it also
// instantiates the lab when missing, then associates the requester. An
// existing association is a silent no-op.
func (s *AccountService) ApprovePI(ctx context.Context, token string) (ApprovalResult, error) {
	log := slogx.FromContext(ctx)

	// 1. Load the request.
	if !cryptox.ValidApprovalToken(token) {
		return "", ErrPendingNotFound
	}
	p, err := s.Store.PendingUsers().GetPendingUserByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrPendingNotFound
		}
		return "", err
	}
	log = log.With(slog.String("pending_id", p.ID), slog.Bool("is_pi", p.IsPI))
	if p.Status.Done() {
		log.Info("approval link reused", slog.String("status", string(p.Status)))
		return ApprovalAlreadyProcessed, nil
	}

	// 2. Materialize records. A unique violation means a concurrent
	// finalizer created the same row; the retry sees it and reuses it.
	var rec approvalRecord
	err = s.finalize(ctx, p, &rec)
	if errors.Is(err, store.ErrAlreadyExists) {
		log.Debug("finalizer raced on a unique key, retrying")
		err = s.finalize(ctx, p, &rec)
	}
	switch {
	case errors.Is(err, errFinished):
		log.Info("approval finished concurrently")
		return ApprovalAlreadyProcessed, nil
	case err != nil:
		log.Error("failed to finalize approval", slog.Any("error", err))
		return "", err
	}

	log.Info("approval finalized",
		slog.String("status", string(rec.status)),
		slog.String("research_group_id", rec.group.ID),
		slog.Bool("lab_created", rec.labCreated),
	)

	// 3. Notify, only when something changed.
	if rec.status == domain.PendingDuplicate {
		return ApprovalDuplicate, nil
	}
	return ApprovalCompleted, s.notifyApproved(ctx, p, rec)
}

func (s *AccountService) finalize(ctx context.Context, p domain.PendingUser, rec *approvalRecord) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		*rec = approvalRecord{}
		req := p.Request

		group, created, err := s.ensureLab(ctx, tx, req)
		if err != nil {
			return err
		}
		rec.group, rec.labCreated = group, created

		if p.IsPI {
			rec.status = domain.PendingDuplicate
			if created {
				rec.status = domain.PendingCompleted
			}
		} else {
			joined, err := s.ensureMember(ctx, tx, req.Requester(), group.ID)
			if err != nil {
				return err
			}
			rec.status = domain.PendingDuplicate
			if joined {
				rec.status = domain.PendingCompleted
			}
		}

		err = tx.PendingUsers().FinishPendingUser(ctx, p.ID, rec.status, clock(s.Now).now())
		if errors.Is(err, store.ErrNotFound) {
			return errFinished
		}
		return err
	})
}

// ensureLab returns the PI's research group, creating the organization,
// group, financial coordinator, PI user and PI membership when absent.
func (s *AccountService) ensureLab(ctx context.Context, tx store.Tx, req domain.AccountRequest) (domain.ResearchGroup, bool, error) {
	found, err := Resolver{Store: tx}.FindResearchGroupByPIEmail(ctx, req.PIEmail)
	if err != nil {
		return domain.ResearchGroup{}, false, err
	}
	if found.Found {
		return found.Value, false, nil
	}

	now := clock(s.Now).now()

	var orgID string
	if req.Organization != "" {
		org, err := tx.Organizations().GetOrganizationByName(ctx, req.Organization)
		switch {
		case errors.Is(err, store.ErrNotFound):
			org = domain.Organization{ID: idx.New().String(), Name: req.Organization, CreatedAt: now}
			if err := tx.Organizations().CreateOrganization(ctx, org); err != nil {
				return domain.ResearchGroup{}, false, fmt.Errorf("create organization: %w", err)
			}
		case err != nil:
			return domain.ResearchGroup{}, false, err
		}
		orgID = org.ID
	}

	group := domain.ResearchGroup{
		ID:                    idx.New().String(),
		PIName:                req.PIName(),
		PIEmail:               req.PIEmail,
		OrganizationID:        orgID,
		HasHarvardAppointment: req.HarvardAppointment,
		Department:            req.Department,
		AddressLines:          req.Address,
		City:                  req.City,
		State:                 req.State,
		PostalCode:            req.PostalCode,
		Country:               req.Country,
		CreatedAt:             now,
	}
	if err := tx.ResearchGroups().CreateResearchGroup(ctx, group); err != nil {
		return domain.ResearchGroup{}, false, fmt.Errorf("create research group: %w", err)
	}

	fc := domain.FinancialCoordinator{
		ID:              idx.New().String(),
		ResearchGroupID: group.ID,
		ContactName:     req.FinancialContact,
		ContactEmail:    req.FinancialEmail,
		CreatedAt:       now,
	}
	if err := tx.FinancialCoordinators().CreateFinancialCoordinator(ctx, fc); err != nil {
		return domain.ResearchGroup{}, false, fmt.Errorf("create financial coordinator: %w", err)
	}

	if _, err := s.ensureMember(ctx, tx, req.PI(), group.ID); err != nil {
		return domain.ResearchGroup{}, false, err
	}
	return group, true, nil
}

// ensureMember reuses or creates the base user for u and associates it with
// the group. It reports false when the association already existed.
func (s *AccountService) ensureMember(ctx context.Context, tx store.Tx, u domain.User, groupID string) (bool, error) {
	r := Resolver{Store: tx}
	now := clock(s.Now).now()

	found, err := r.FindUserByEmail(ctx, u.Email)
	if err != nil {
		return false, err
	}
	user := found.Value
	if !found.Found {
		user = u
		user.ID = idx.New().String()
		user.CreatedAt = now
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			return false, fmt.Errorf("create user: %w", err)
		}
	}

	member, err := r.FindAssociation(ctx, user.ID, groupID)
	if err != nil {
		return false, err
	}
	if member.Found {
		return false, nil
	}
	err = tx.Members().CreateMember(ctx, domain.CnapUser{
		ID:              idx.New().String(),
		UserID:          user.ID,
		ResearchGroupID: groupID,
		JoinedAt:        now,
	})
	if err != nil {
		return false, fmt.Errorf("create membership: %w", err)
	}
	return true, nil
}

func (s *AccountService) notifyApproved(ctx context.Context, p domain.PendingUser, rec approvalRecord) error {
	req := p.Request
	if p.IsPI {
		userErr := s.Notifier.Send(ctx, notify.Notification{
			Kind: notify.LabCreated,
			To:   req.PIEmail,
			Args: []any{req.PIName()},
		})
		staffErr := s.Notifier.NotifyStaff(ctx,
			fmt.Sprintf("The lab of %s <%s> is now registered (research group %s).", req.PIName(), req.PIEmail, rec.group.ID),
			"CNAP lab registered",
		)
		return errors.Join(userErr, staffErr)
	}

	userErr := s.Notifier.Send(ctx, notify.Notification{
		Kind: notify.AccountConfirmed,
		To:   req.Email,
		Args: []any{req.RequesterName(), req.PIName()},
	})
	staffErr := s.Notifier.NotifyStaff(ctx,
		fmt.Sprintf("%s <%s> joined the lab of %s <%s>.", req.RequesterName(), req.Email, req.PIName(), req.PIEmail),
		"CNAP account confirmed",
	)
	return errors.Join(userErr, staffErr)
}
