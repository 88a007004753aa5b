package http_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/cnap/internal/cnap/domain"
	"github.com/aussiebroadwan/cnap/pkg/cnapsdk"
	"github.com/aussiebroadwan/cnap/pkg/cryptox"
	"github.com/aussiebroadwan/cnap/pkg/idx"
	"github.com/stretchr/testify/require"
)

func labRequest() domain.AccountRequest {
	return domain.AccountRequest{
		FirstName:    "Dana",
		LastName:     "Okafor",
		Email:        "okafor@lab.org",
		IsPI:         true,
		PIFirstName:  "Dana",
		PILastName:   "Okafor",
		PIEmail:      "okafor@lab.org",
		Organization: "Harvard University",
		Department:   "Biostatistics",
		Country:      "USA",
	}
}

func (e *testEnv) seedPending(t *testing.T) domain.PendingUser {
	t.Helper()
	p := domain.PendingUser{
		ID:          idx.New().String(),
		IsPI:        true,
		Request:     labRequest(),
		Status:      domain.PendingReview,
		RequestedAt: time.Now().UTC(),
	}
	require.NoError(t, e.store.PendingUsers().CreatePendingUser(context.Background(), p))
	return p
}

func (e *testEnv) pending(t *testing.T, id string) domain.PendingUser {
	t.Helper()
	p, err := e.store.PendingUsers().GetPendingUserByID(context.Background(), id)
	require.NoError(t, err)
	return p
}

func TestStaffApprovalRequiresStaffToken(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedPending(t)
	target := "/v1/approvals/staff/" + p.ID

	t.Run("no token", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, target, "", nil)
		requireStatus(t, rec, http.StatusUnauthorized)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")
		require.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
		require.Contains(t, rec.Body.String(), "access_token")
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, target, "not-a-jwt", nil)
		requireStatus(t, rec, http.StatusUnauthorized)
	})

	t.Run("missing scope", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, target, env.token(t, "reader"), nil)
		requireStatus(t, rec, http.StatusForbidden)
		require.Equal(t, domain.PendingReview, env.pending(t, p.ID).Status)
	})

	t.Run("token in query", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, target+"?access_token="+env.token(t), "", nil)
		requireStatus(t, rec, http.StatusOK)
	})
}

func TestStaffApprovalFlow(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedPending(t)
	target := "/v1/approvals/staff/" + p.ID
	tok := env.token(t)

	rec := env.do(t, http.MethodGet, target, tok, nil)
	requireStatus(t, rec, http.StatusOK)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	require.Contains(t, rec.Body.String(), "Dana Okafor")
	require.Contains(t, rec.Body.String(), "Approve and ask the PI")

	rec = env.do(t, http.MethodPost, target, tok, nil)
	requireStatus(t, rec, http.StatusOK)
	require.Contains(t, rec.Body.String(), "approved")

	got := env.pending(t, p.ID)
	require.Equal(t, domain.PendingAwaitingPI, got.Status)
	require.NotEmpty(t, got.ApprovalToken)

	// The page no longer offers the form once reviewed.
	rec = env.do(t, http.MethodGet, target, tok, nil)
	requireStatus(t, rec, http.StatusOK)
	require.Contains(t, rec.Body.String(), "already reviewed")
	require.NotContains(t, rec.Body.String(), "<form")
}

func TestStaffApprovalUnknownRequest(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/v1/approvals/staff/"+idx.New().String(), env.token(t), nil)
	requireStatus(t, rec, http.StatusBadRequest)
	require.Contains(t, rec.Body.String(), "Unknown or expired")
}

func TestPIApprovalFlow(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedPending(t)

	rec := env.do(t, http.MethodPost, "/v1/approvals/staff/"+p.ID, env.token(t), nil)
	requireStatus(t, rec, http.StatusOK)
	token := env.pending(t, p.ID).ApprovalToken
	target := "/v1/approvals/pi/" + token

	// No bearer token is needed: the link itself is the credential.
	rec = env.do(t, http.MethodGet, target, "", nil)
	requireStatus(t, rec, http.StatusOK)
	require.Contains(t, rec.Body.String(), "Confirm lab registration")
	require.Contains(t, rec.Body.String(), "<form")

	rec = env.do(t, http.MethodPost, target, "", nil)
	requireStatus(t, rec, http.StatusOK)
	require.Contains(t, rec.Body.String(), "Thank you for confirming")
	require.Equal(t, domain.PendingCompleted, env.pending(t, p.ID).Status)

	lab, err := env.store.ResearchGroups().GetResearchGroupByPIEmail(context.Background(), "okafor@lab.org")
	require.NoError(t, err)
	require.Equal(t, "Dana Okafor", lab.PIName)

	// Resubmitting is acknowledged and the page says it is done.
	rec = env.do(t, http.MethodPost, target, "", nil)
	requireStatus(t, rec, http.StatusOK)
	rec = env.do(t, http.MethodGet, target, "", nil)
	requireStatus(t, rec, http.StatusOK)
	require.Contains(t, rec.Body.String(), "already confirmed")
}

func TestPIApprovalUnknownToken(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name  string
		token string
	}{
		{"malformed", "short"},
		{"well formed but unissued", strings.Repeat("ab", cryptox.ApprovalTokenLen/2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/v1/approvals/pi/"+tt.token, "", nil)
			requireStatus(t, rec, http.StatusBadRequest)
			require.Contains(t, rec.Body.String(), "Unknown or expired")
		})
	}
}

func TestPendingRequestsListing(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t)
	p := env.seedPending(t)

	rec := env.do(t, http.MethodGet, "/v1/pending-requests", tok, nil)
	requireStatus(t, rec, http.StatusOK)
	list := decode[cnapsdk.ListResponse[cnapsdk.PendingRequest]](t, rec)
	require.Len(t, list.Items, 1)
	require.Equal(t, p.ID, list.Items[0].ID)
	require.Equal(t, "pending_review", list.Items[0].Status)
	require.Equal(t, "Dana Okafor", list.Items[0].PIName)
	require.Empty(t, list.Items[0].ProcessedAt)

	requireStatus(t, env.do(t, http.MethodPost, "/v1/approvals/staff/"+p.ID, tok, nil), http.StatusOK)

	rec = env.do(t, http.MethodGet, "/v1/pending-requests/"+p.ID, tok, nil)
	requireStatus(t, rec, http.StatusOK)
	got := decode[cnapsdk.PendingRequest](t, rec)
	require.Equal(t, "awaiting_pi", got.Status)
	require.NotContains(t, rec.Body.String(), env.pending(t, p.ID).ApprovalToken)

	requireStatus(t, env.do(t, http.MethodGet, "/v1/pending-requests/"+idx.New().String(), tok, nil), http.StatusNotFound)
}
