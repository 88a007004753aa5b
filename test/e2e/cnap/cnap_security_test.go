package cnap_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/cnap/pkg/cnapsdk"
	"github.com/aussiebroadwan/cnap/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	svc := setupService(t)

	live, err := svc.client.GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)

	ready, err := svc.client.GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks.Database)
}

func TestStaffEndpointsRejectBadTokens(t *testing.T) {
	svc := setupService(t)

	otherSigner, err := jwtx.NewHS256([]byte(strings.Repeat("x", jwtx.MinSecretLen)), staffIssuer)
	require.NoError(t, err)
	forged, err := otherSigner.Sign(jwtx.NewStaffClaims("mallory@example.org", staffIssuer, time.Hour, time.Now()))
	require.NoError(t, err)

	ourSigner, err := jwtx.NewHS256([]byte(staffSecret), staffIssuer)
	require.NoError(t, err)
	expired, err := ourSigner.Sign(jwtx.NewStaffClaims("staff@facility.org", staffIssuer, time.Minute, time.Now().Add(-time.Hour)))
	require.NoError(t, err)

	noScope := jwtx.NewStaffClaims("staff@facility.org", staffIssuer, time.Hour, time.Now())
	noScope.Scopes = nil
	unscoped, err := ourSigner.Sign(noScope)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"empty", "", 401},
		{"forged", forged, 401},
		{"expired", expired, 401},
		{"no staff scope", unscoped, 403},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.client.NewStaffSession(tt.token).ListProducts(t.Context())
			var apiErr *cnapsdk.APIError
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}

func TestUnknownApprovalLink(t *testing.T) {
	svc := setupService(t)

	_, err := svc.client.ApprovePI(t.Context(), strings.Repeat("0", 64))
	var apiErr *cnapsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 400, apiErr.StatusCode)
	require.Contains(t, apiErr.Description, "Unknown or expired")
}
