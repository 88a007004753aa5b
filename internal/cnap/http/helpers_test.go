package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	httpapi "github.com/aussiebroadwan/cnap/internal/cnap/http"
	"github.com/aussiebroadwan/cnap/internal/cnap/metrics"
	"github.com/aussiebroadwan/cnap/internal/cnap/notify"
	"github.com/aussiebroadwan/cnap/internal/cnap/service"
	"github.com/aussiebroadwan/cnap/internal/cnap/store"
	"github.com/aussiebroadwan/cnap/internal/cnap/store/drivers/sqlite"
	"github.com/aussiebroadwan/cnap/pkg/jwtx"
	"github.com/aussiebroadwan/cnap/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "0123456789abcdef0123456789abcdef"
	testIssuer = "cnap-test"
)

type testEnv struct {
	router  *httpapi.Router
	store   store.Store
	signer  *jwtx.HS256
	metrics *metrics.Metrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.FileDSN(filepath.Join(t.TempDir(), "cnap.db")))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	hs, err := jwtx.NewHS256([]byte(testSecret), testIssuer)
	require.NoError(t, err)

	m := metrics.New()
	notifier := notify.NewNotifier(notify.LogMailer{}, notify.Config{
		From:        "cnap@facility.org",
		StaffEmails: []string{"staff@facility.org"},
	})

	r := httpapi.NewRouter(hs, "test", st, m, slogx.Discard())
	r.AccountService = &service.AccountService{
		Store:    st,
		Notifier: notifier,
		Links:    notify.Links{BaseURL: "https://cnap.example"},
		Metrics:  m,
	}
	r.RecordsService = &service.RecordsService{Store: st}
	r.Dispatcher = service.SyncDispatcher{}
	r.ApplyRoutes()

	return &testEnv{router: r, store: st, signer: hs, metrics: m}
}

func (e *testEnv) token(t *testing.T, scopes ...string) string {
	t.Helper()
	c := jwtx.NewStaffClaims("staff@facility.org", testIssuer, time.Hour, time.Now())
	if scopes != nil {
		c.Scopes = scopes
	}
	tok, err := e.signer.Sign(c)
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			b, err := json.Marshal(body)
			require.NoError(t, err)
			raw = string(b)
		}
		rd = bytes.NewBufferString(raw)
	}
	req := httptest.NewRequestWithContext(context.Background(), method, target, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, code int) {
	t.Helper()
	require.Equal(t, code, rec.Code, rec.Body.String())
}
