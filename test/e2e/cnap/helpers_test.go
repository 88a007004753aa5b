package cnap_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/cnap/internal/cnap/app"
	"github.com/aussiebroadwan/cnap/internal/cnap/domain"
	"github.com/aussiebroadwan/cnap/pkg/cnapsdk"
	"github.com/aussiebroadwan/cnap/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

/*
 * End-to-end helpers. Each test runs the whole service in-process: a real
 * sqlite database, a directory mailbox the test drops .eml files into, and
 * a stub analysis platform. Requests go through the SDK over HTTP.
 */

const (
	facilityAddress = "cnap@facility.org"
	staffSecret     = "e2e-staff-secret-0123456789abcdef"
	staffIssuer     = "cnap-e2e"
	mailFolder      = "INBOX"

	piEmail = "okafor@lab.org"

	eventuallyWait = 5 * time.Second
	eventuallyTick = 50 * time.Millisecond
)

type analysisCall struct {
	ClientEmail   string `json:"client_email"`
	WorkflowPK    int64  `json:"workflow_pk"`
	NumberOrdered int64  `json:"number_ordered"`
}

// stubAnalysis records project creations.
type stubAnalysis struct {
	mu    sync.Mutex
	calls []analysisCall
}

func (s *stubAnalysis) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var c analysisCall
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	s.calls = append(s.calls, c)
	s.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (s *stubAnalysis) Calls() []analysisCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]analysisCall(nil), s.calls...)
}

type testService struct {
	app      *app.Application
	client   *cnapsdk.SDKClient
	mailDir  string
	analysis *stubAnalysis
	uid      int
}

// setupService starts the service and returns a handle to drive it.
func setupService(t *testing.T) *testService {
	t.Helper()

	dir := t.TempDir()
	mailDir := filepath.Join(dir, "mail")
	require.NoError(t, os.MkdirAll(filepath.Join(mailDir, mailFolder), 0o755))

	analysis := &stubAnalysis{}
	analysisSrv := httptest.NewServer(analysis)
	t.Cleanup(analysisSrv.Close)

	cfg := app.Config{
		Env:                 "test",
		LogLevel:            "error",
		LogFormat:           "json",
		ShutdownGracePeriod: 5 * time.Second,
		DatabaseDriver:      "sqlite",
		DatabaseFile:        filepath.Join(dir, "cnap.db"),
		PollInterval:        time.Hour,
		PollWorkers:         1,
		MailboxDriver:       "dir",
		MailboxDir:          mailDir,
		MailFolder:          mailFolder,
		FacilityAddress:     facilityAddress,
		FacilityName:        "CNAP Team",
		AccountSubject:      "CNAP Account Request",
		PipelineSubject:     "CNAP Pipeline Request",
		StaffEmails:         []string{"staff@facility.org"},
		PublicBaseURL:       "https://cnap.example",
		AnalysisAPIURL:      analysisSrv.URL,
		StaffTokenSecret:    staffSecret,
		StaffTokenIssuer:    staffIssuer,
	}
	require.NoError(t, cfg.Validate())

	a, err := app.New(context.Background(), cfg)
	require.NoError(t, err)
	srv := httptest.NewServer(a.Handler())
	t.Cleanup(func() {
		srv.Close()
		require.NoError(t, a.Shutdown())
	})

	return &testService{
		app:      a,
		client:   cnapsdk.NewSDKClient(srv.URL),
		mailDir:  mailDir,
		analysis: analysis,
	}
}

// staff returns a session carrying a freshly minted staff token.
func (s *testService) staff(t *testing.T) *cnapsdk.Session {
	t.Helper()
	signer, err := jwtx.NewHS256([]byte(staffSecret), staffIssuer)
	require.NoError(t, err)
	tok, err := signer.Sign(jwtx.NewStaffClaims("staff@facility.org", staffIssuer, time.Hour, time.Now()))
	require.NoError(t, err)
	return s.client.NewStaffSession(tok)
}

// deliver drops a request email into the mailbox.
func (s *testService) deliver(t *testing.T, subject, from string, fields ...string) {
	t.Helper()
	s.uid++
	raw := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=utf-8\r\n\r\n<html><body>\n%s\n</body></html>\r\n",
		from, facilityAddress, subject, strings.Join(fields, "\n"))
	path := filepath.Join(s.mailDir, mailFolder, fmt.Sprintf("%06d.eml", s.uid))
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))
}

// poll runs one mailbox sweep synchronously.
func (s *testService) poll(t *testing.T) {
	t.Helper()
	require.NoError(t, s.app.Poller().RunOnce(t.Context()))
}

// approvalToken reads the token the PI would have received by email.
func (s *testService) approvalToken(t *testing.T, pendingID string) string {
	t.Helper()
	p, err := s.app.Store().PendingUsers().GetPendingUserByID(t.Context(), pendingID)
	require.NoError(t, err)
	require.NotEmpty(t, p.ApprovalToken)
	return p.ApprovalToken
}

// waitForStatus blocks until the pending request reaches status.
func (s *testService) waitForStatus(t *testing.T, staff *cnapsdk.Session, id string, status domain.PendingStatus) {
	t.Helper()
	require.Eventually(t, func() bool {
		p, err := staff.GetPendingRequest(t.Context(), id)
		return err == nil && p.Status == string(status)
	}, eventuallyWait, eventuallyTick)
}

func piAccountFields() []string {
	return []string{
		"FIRST_NAME:Dana",
		"LAST_NAME:Okafor",
		"EMAIL:" + piEmail,
		"PHONE:555-0100",
		"PI:yes",
		"PI_FIRST_NAME:Dana",
		"PI_LAST_NAME:Okafor",
		"PI_EMAIL:" + piEmail,
		"PI_PHONE:555-0100",
		"HARVARD_APPOINTMENT:yes",
		"ORGANIZATION:Harvard University",
		"DEPARTMENT:Biostatistics",
		"FINANCIAL_CONTACT:Pat Finance",
		"FINANCIAL_EMAIL:finance@lab.org",
		"ADDRESS:655 Huntington Ave",
		"CITY:Boston",
		"STATE:MA",
		"POSTAL_CODE:02115",
		"COUNTRY:USA",
	}
}

// registerLab runs a PI self-registration through staff and PI approval and
// returns the new research group.
func (s *testService) registerLab(t *testing.T, staff *cnapsdk.Session) cnapsdk.ResearchGroup {
	t.Helper()

	s.deliver(t, "CNAP Account Request", piEmail, piAccountFields()...)
	s.poll(t)

	pending, err := staff.ListPendingRequests(t.Context())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	id := pending[0].ID

	_, err = staff.StaffApprove(t.Context(), id)
	require.NoError(t, err)
	s.waitForStatus(t, staff, id, domain.PendingAwaitingPI)

	_, err = s.client.ApprovePI(t.Context(), s.approvalToken(t, id))
	require.NoError(t, err)
	s.waitForStatus(t, staff, id, domain.PendingCompleted)

	groups, err := staff.ListResearchGroups(t.Context())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	return groups[0]
}
