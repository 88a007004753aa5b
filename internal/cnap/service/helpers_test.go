package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/cnap/internal/cnap/analysis"
	"github.com/aussiebroadwan/cnap/internal/cnap/domain"
	"github.com/aussiebroadwan/cnap/internal/cnap/notify"
	"github.com/aussiebroadwan/cnap/internal/cnap/store"
	"github.com/aussiebroadwan/cnap/internal/cnap/store/drivers/sqlite"
	"github.com/aussiebroadwan/cnap/pkg/idx"
	"github.com/aussiebroadwan/cnap/pkg/slogx"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func testNow() time.Time { return fixedNow }

func testContext() context.Context {
	return slogx.WithContext(context.Background(), slogx.Discard())
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := sqlite.NewStore(sqlite.FileDSN(filepath.Join(t.TempDir(), "cnap.db")))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

type staffNote struct {
	Message string
	Subject string
}

// recordingNotifier captures every notification. Send fails with sendErr
// when it is set.
type recordingNotifier struct {
	mu      sync.Mutex
	sent    []notify.Notification
	staff   []staffNote
	sendErr error
}

func (n *recordingNotifier) Send(_ context.Context, note notify.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, note)
	return n.sendErr
}

func (n *recordingNotifier) NotifyStaff(_ context.Context, message, subject string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.staff = append(n.staff, staffNote{Message: message, Subject: subject})
	return nil
}

func (n *recordingNotifier) kinds() []notify.Kind {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]notify.Kind, 0, len(n.sent))
	for _, s := range n.sent {
		out = append(out, s.Kind)
	}
	return out
}

func (n *recordingNotifier) sentTo(kind notify.Kind) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, s := range n.sent {
		if s.Kind == kind {
			out = append(out, s.To)
		}
	}
	return out
}

func (n *recordingNotifier) staffSubjects() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.staff))
	for _, s := range n.staff {
		out = append(out, s.Subject)
	}
	return out
}

func (n *recordingNotifier) reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent, n.staff = nil, nil
}

// fakeProjects records project creations and fails when err is set.
type fakeProjects struct {
	mu    sync.Mutex
	calls []analysis.ProjectRequest
	err   error
}

func (f *fakeProjects) CreateProject(_ context.Context, req analysis.ProjectRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	return f.err
}

// Fixtures.

const (
	piEmail      = "okafor@lab.org"
	postdocEmail = "reyes@lab.org"
)

func piRequest() domain.AccountRequest {
	return domain.AccountRequest{
		FirstName:          "Dana",
		LastName:           "Okafor",
		Email:              piEmail,
		Phone:              "555-0100",
		IsPI:               true,
		PIFirstName:        "Dana",
		PILastName:         "Okafor",
		PIEmail:            piEmail,
		PIPhone:            "555-0100",
		HarvardAppointment: true,
		Organization:       "Harvard University",
		Department:         "Biostatistics",
		FinancialContact:   "Pat Finance",
		FinancialEmail:     "finance@lab.org",
		Address:            "655 Huntington Ave",
		City:               "Boston",
		State:              "MA",
		PostalCode:         "02115",
		Country:            "USA",
	}
}

func postdocRequest() domain.AccountRequest {
	r := piRequest()
	r.FirstName, r.LastName, r.Email, r.Phone = "Sam", "Reyes", postdocEmail, "555-0101"
	r.IsPI = false
	return r
}

func seedUser(t *testing.T, st store.Store, email string) domain.User {
	t.Helper()
	u := domain.User{ID: idx.New().String(), FirstName: "Seed", LastName: "User", Email: email}
	require.NoError(t, st.Users().CreateUser(testContext(), u))
	return u
}

func seedLab(t *testing.T, st store.Store, pi string) domain.ResearchGroup {
	t.Helper()
	g := domain.ResearchGroup{ID: idx.New().String(), PIName: "Dana Okafor", PIEmail: pi}
	require.NoError(t, st.ResearchGroups().CreateResearchGroup(testContext(), g))
	return g
}

func seedMember(t *testing.T, st store.Store, u domain.User, g domain.ResearchGroup) domain.CnapUser {
	t.Helper()
	m := domain.CnapUser{ID: idx.New().String(), UserID: u.ID, ResearchGroupID: g.ID}
	require.NoError(t, st.Members().CreateMember(testContext(), m))
	return m
}

func count[T any](t *testing.T, list func(context.Context) ([]T, error)) int {
	t.Helper()
	v, err := list(testContext())
	require.NoError(t, err)
	return len(v)
}

func cents(c domain.Cents) *domain.Cents { return &c }
