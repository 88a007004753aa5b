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
	"github.com/aussiebroadwan/cnap/pkg/cryptox"
	"github.com/aussiebroadwan/cnap/pkg/idx"
	"github.com/aussiebroadwan/cnap/pkg/slogx"
)

// AccountOutcome is the branch an account request took.
type AccountOutcome string

const (
	// OutcomeLabExists: a PI asked to register a lab that already exists.
	OutcomeLabExists AccountOutcome = "lab_exists"
	// OutcomeNewLab: a PI asked to register a new lab. Staff review first.
	OutcomeNewLab AccountOutcome = "new_lab"
	// OutcomeNewUser: the requester has never been seen. Staff review first.
	OutcomeNewUser AccountOutcome = "new_user"
	// OutcomeUnknownPI: a known requester names a PI with no lab.
	OutcomeUnknownPI AccountOutcome = "unknown_pi"
	// OutcomeAlreadyMember: the requester already belongs to the PI's lab.
	OutcomeAlreadyMember AccountOutcome = "already_member"
	// OutcomeAwaitingPI: a known requester joins a known lab. The PI is asked directly.
	OutcomeAwaitingPI AccountOutcome = "awaiting_pi"
)

// accountFacts are the resolver answers the decision table switches on.
type accountFacts struct {
	requesterKnown    bool
	isPI              bool
	labKnown          bool
	associationExists bool
}

func decideAccount(f accountFacts) AccountOutcome {
	switch {
	case f.isPI && f.labKnown:
		return OutcomeLabExists
	case f.isPI:
		return OutcomeNewLab
	case !f.requesterKnown:
		return OutcomeNewUser
	case !f.labKnown:
		return OutcomeUnknownPI
	case f.associationExists:
		return OutcomeAlreadyMember
	}
	return OutcomeAwaitingPI
}

type AccountService struct {
	Store    store.Store
	Notifier Notifier
	Links    notify.Links
	Metrics  *metrics.Metrics
	Now      func() time.Time
}

// HandleAccountRequest reconciles a parsed account request against existing
// users and labs and takes the matching action. Repeated requests are not
// deduplicated; each one creates a new PendingUser.
func (s *AccountService) HandleAccountRequest(ctx context.Context, req domain.AccountRequest) (AccountOutcome, error) {
	log := slogx.FromContext(ctx).With(
		slog.String("requester", req.Email),
		slog.String("pi_email", req.PIEmail),
		slog.Bool("is_pi", req.IsPI),
	)
	r := Resolver{Store: s.Store}

	// 1. Resolve the requester and the lab.
	facts := accountFacts{isPI: req.IsPI}
	user, err := r.FindUserByEmail(ctx, req.Email)
	if err != nil {
		return "", err
	}
	facts.requesterKnown = user.Found

	lab, err := r.FindResearchGroupByPIEmail(ctx, req.PIEmail)
	if err != nil {
		return "", err
	}
	facts.labKnown = lab.Found

	if user.Found && lab.Found && !req.IsPI {
		member, err := r.FindAssociation(ctx, user.Value.ID, lab.Value.ID)
		if err != nil {
			return "", err
		}
		facts.associationExists = member.Found
	}

	// 2. Decide.
	outcome := decideAccount(facts)
	log = log.With(slog.String("outcome", string(outcome)))
	s.Metrics.AccountOutcome(string(outcome))

	// 3. Act.
	switch outcome {
	case OutcomeLabExists, OutcomeAlreadyMember:
		log.Info("duplicate account request")
		return outcome, s.Notifier.Send(ctx, notify.Notification{
			Kind: notify.ExistingAccount,
			To:   req.Email,
			Args: []any{req.RequesterName()},
		})

	case OutcomeNewLab, OutcomeNewUser, OutcomeUnknownPI:
		p, err := s.createPending(ctx, req, "", domain.PendingReview)
		if err != nil {
			log.Error("failed to create pending user", slog.Any("error", err))
			return "", err
		}
		log.Info("account request queued for staff review", slog.String("pending_id", p.ID))
		return outcome, s.Notifier.NotifyStaff(ctx, staffReviewMessage(p, s.Links), "New CNAP account request")

	case OutcomeAwaitingPI:
		token, err := cryptox.NewApprovalToken(req.PIEmail)
		if err != nil {
			return "", err
		}
		p, err := s.createPending(ctx, req, token, domain.PendingAwaitingPI)
		if err != nil {
			log.Error("failed to create pending user", slog.Any("error", err))
			return "", err
		}
		log.Info("account request sent to PI", slog.String("pending_id", p.ID))
		return outcome, s.notifyPIAndRequester(ctx, req, token)
	}
	return "", fmt.Errorf("unhandled account outcome %q", outcome)
}

// StaffApprove issues the approval token for a pending request and emails
// the PI. Requests that already left staff review are left alone.
func (s *AccountService) StaffApprove(ctx context.Context, pendingID string) error {
	log := slogx.FromContext(ctx).With(slog.String("pending_id", pendingID))

	// 1. Load the request.
	p, err := s.Store.PendingUsers().GetPendingUserByID(ctx, pendingID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrPendingNotFound
		}
		return err
	}
	if p.Status != domain.PendingReview {
		log.Info("staff approval ignored, request already reviewed", slog.String("status", string(p.Status)))
		return nil
	}

	// 2. Issue the token. A concurrent approval wins the conditional update.
	token, err := cryptox.NewApprovalToken(p.Request.PIEmail)
	if err != nil {
		return err
	}
	if err := s.Store.PendingUsers().IssueApprovalToken(ctx, p.ID, token); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("staff approval ignored, request approved concurrently")
			return nil
		}
		return err
	}
	log.Info("staff approved account request", slog.Bool("is_pi", p.IsPI))

	// 3. Ask the PI.
	if p.IsPI {
		return s.Notifier.Send(ctx, notify.Notification{
			Kind: notify.PISelfConfirmation,
			To:   p.Request.PIEmail,
			Args: []any{p.Request.PIName(), s.Links.PIApproval(token)},
		})
	}
	return s.notifyPIAndRequester(ctx, p.Request, token)
}

func (s *AccountService) createPending(ctx context.Context, req domain.AccountRequest, token string, status domain.PendingStatus) (domain.PendingUser, error) {
	p := domain.PendingUser{
		ID:            idx.New().String(),
		IsPI:          req.IsPI,
		Request:       req,
		ApprovalToken: token,
		Status:        status,
		RequestedAt:   clock(s.Now).now(),
	}
	return p, s.Store.PendingUsers().CreatePendingUser(ctx, p)
}

func (s *AccountService) notifyPIAndRequester(ctx context.Context, req domain.AccountRequest, token string) error {
	piErr := s.Notifier.Send(ctx, notify.Notification{
		Kind: notify.PIAuthorization,
		To:   req.PIEmail,
		Args: []any{req.PIName(), req.RequesterName(), req.Email, s.Links.PIApproval(token)},
	})
	reqErr := s.Notifier.Send(ctx, notify.Notification{
		Kind: notify.AccountPending,
		To:   req.Email,
		Args: []any{req.RequesterName(), req.PIEmail},
	})
	return errors.Join(piErr, reqErr)
}

func staffReviewMessage(p domain.PendingUser, links notify.Links) string {
	r := p.Request
	kind := "lab member"
	if p.IsPI {
		kind = "new lab (PI self-registration)"
	}
	return fmt.Sprintf(
		"A new CNAP account request needs review.\n\nType: %s\nRequester: %s <%s>\nPI: %s <%s>\nOrganization: %s\nDepartment: %s\n\n"+
			"Approve: %s\n\n"+
			"The link needs a staff token. Mint one with `cnap-token -email <your address>` and append it to the link as ?access_token=<token>.",
		kind, r.RequesterName(), r.Email, r.PIName(), r.PIEmail, r.Organization, r.Department,
		links.StaffApproval(p.ID),
	)
}
