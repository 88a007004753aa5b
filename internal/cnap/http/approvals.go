package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/cnap/internal/cnap/domain"
	"github.com/aussiebroadwan/cnap/internal/cnap/service"
	"github.com/aussiebroadwan/cnap/internal/cnap/store"
	"github.com/aussiebroadwan/cnap/pkg/cryptox"
	"github.com/aussiebroadwan/cnap/pkg/httpx"
	"github.com/aussiebroadwan/cnap/pkg/slogx"
)

const (
	unknownApproval = "Unknown or expired approval link."
	staffAck        = "Thank you. The request is approved and the PI will be asked to confirm."
	piAck           = "Thank you for confirming. The account will be set up shortly and everyone involved will be notified by email."
)

// ApprovalsHandler serves the links sent in approval emails. GET shows a
// confirmation page; POST hands the work to the dispatcher and answers at once.
type ApprovalsHandler struct {
	AccountService *service.AccountService
	Store          store.Store
	Dispatcher     service.Dispatcher
}

// HandleStaffGet handles GET /v1/approvals/staff/{id}
//
//	@Summary		Staff approval page
//	@Description	Shows a pending account request and a button to approve it.
//	@Tags			Approvals
//	@Produce		html
//	@Security		BearerAuth
//	@Param			id				path		string	true	"Pending request ID (ULID)"
//	@Param			access_token	query		string	false	"Staff token when the link is opened from email"
//	@Success		200				{string}	string	"confirmation page"
//	@Failure		400				{string}	string	"unknown request"
//	@Failure		401				{string}	string	"missing or invalid token"
//	@Failure		403				{string}	string	"token lacks the staff scope"
//	@Router			/v1/approvals/staff/{id} [get].
func (h *ApprovalsHandler) HandleStaffGet(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadByID(w, r)
	if !ok {
		return
	}

	page := approvalPage{
		Title:   "Approve account request",
		Details: requestDetails(p),
	}
	if p.Status == domain.PendingReview {
		page.Action = r.URL.RequestURI()
		page.Button = "Approve and ask the PI"
	} else {
		page.Notice = "This request was already reviewed."
	}
	renderApprovalPage(w, r, page)
}

// HandleStaffPost handles POST /v1/approvals/staff/{id}
//
//	@Summary		Approve a pending account request
//	@Description	Issues the PI approval token and emails the PI. Runs in the background.
//	@Tags			Approvals
//	@Produce		plain
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Pending request ID (ULID)"
//	@Success		200	{string}	string	"acknowledgement"
//	@Failure		400	{string}	string	"unknown request"
//	@Failure		401	{string}	string	"missing or invalid token"
//	@Failure		403	{string}	string	"token lacks the staff scope"
//	@Router			/v1/approvals/staff/{id} [post].
func (h *ApprovalsHandler) HandleStaffPost(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadByID(w, r)
	if !ok {
		return
	}

	slogx.FromContext(r.Context()).Info("staff approval submitted",
		slog.String("pending_id", p.ID),
		slog.String("staff", httpx.SubjectFromContext(r.Context())),
	)
	h.Dispatcher.Dispatch(r.Context(), "staff_approve", func(ctx context.Context) error {
		return h.AccountService.StaffApprove(ctx, p.ID)
	})
	httpx.WriteText(w, http.StatusOK, staffAck)
}

// HandlePIGet handles GET /v1/approvals/pi/{token}
//
//	@Summary		PI approval page
//	@Description	Shows the account request a PI is asked to confirm.
//	@Tags			Approvals
//	@Produce		html
//	@Param			token	path		string	true	"Approval token from the email"
//	@Success		200		{string}	string	"confirmation page"
//	@Failure		400		{string}	string	"unknown token"
//	@Router			/v1/approvals/pi/{token} [get].
func (h *ApprovalsHandler) HandlePIGet(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadByToken(w, r)
	if !ok {
		return
	}

	page := approvalPage{
		Title:   "Confirm lab membership",
		Details: requestDetails(p),
	}
	if p.IsPI {
		page.Title = "Confirm lab registration"
	}
	if p.Status.Done() {
		page.Notice = "This request was already confirmed."
	} else {
		page.Action = r.URL.RequestURI()
		page.Button = "Confirm"
	}
	renderApprovalPage(w, r, page)
}

// HandlePIPost handles POST /v1/approvals/pi/{token}
//
//	@Summary		Confirm an account request
//	@Description	Creates the lab and memberships behind the token. Runs in the background;
//	@Description	resubmitting a used link is acknowledged and changes nothing.
//	@Tags			Approvals
//	@Produce		plain
//	@Param			token	path		string	true	"Approval token from the email"
//	@Success		200		{string}	string	"acknowledgement"
//	@Failure		400		{string}	string	"unknown token"
//	@Router			/v1/approvals/pi/{token} [post].
func (h *ApprovalsHandler) HandlePIPost(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadByToken(w, r)
	if !ok {
		return
	}

	token := p.ApprovalToken
	slogx.FromContext(r.Context()).Info("PI approval submitted",
		slog.String("pending_id", p.ID),
		slog.String("token_fp", cryptox.FingerprintToken(token)),
	)
	h.Dispatcher.Dispatch(r.Context(), "pi_approve", func(ctx context.Context) error {
		_, err := h.AccountService.ApprovePI(ctx, token)
		return err
	})
	httpx.WriteText(w, http.StatusOK, piAck)
}

func (h *ApprovalsHandler) loadByID(w http.ResponseWriter, r *http.Request) (domain.PendingUser, bool) {
	p, err := h.Store.PendingUsers().GetPendingUserByID(r.Context(), r.PathValue("id"))
	return p, h.checkLoaded(w, r, err)
}

func (h *ApprovalsHandler) loadByToken(w http.ResponseWriter, r *http.Request) (domain.PendingUser, bool) {
	token := r.PathValue("token")
	if !cryptox.ValidApprovalToken(token) {
		httpx.WriteText(w, http.StatusBadRequest, unknownApproval)
		return domain.PendingUser{}, false
	}
	p, err := h.Store.PendingUsers().GetPendingUserByToken(r.Context(), token)
	return p, h.checkLoaded(w, r, err)
}

func (h *ApprovalsHandler) checkLoaded(w http.ResponseWriter, r *http.Request, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteText(w, http.StatusBadRequest, unknownApproval)
	default:
		slogx.FromContext(r.Context()).Error("failed to load pending request", slog.Any("error", err))
		httpx.WriteText(w, http.StatusInternalServerError, "Something went wrong. Please try again later.")
	}
	return false
}
