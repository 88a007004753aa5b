package cnapsdk

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorResponse(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
		wantDesc string
	}{
		{"json body", http.StatusConflict, `{"error":"conflict","error_description":"name taken"}`, ErrorCodeConflict, "name taken"},
		{"plain text 400", http.StatusBadRequest, "Unknown or expired approval link.\n", ErrorCodeInvalidRequest, "Unknown or expired approval link."},
		{"plain text 401", http.StatusUnauthorized, "", ErrorCodeInvalidToken, ""},
		{"plain text 403", http.StatusForbidden, "nope", ErrorCodeInsufficientScope, "nope"},
		{"unexpected status", http.StatusBadGateway, "<html>bad gateway</html>", ErrorCodeServerError, "<html>bad gateway</html>"},
		{"json without code", http.StatusNotFound, `{"message":"missing"}`, ErrorCodeNotFound, `{"message":"missing"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseErrorResponse(&http.Response{StatusCode: tt.status}, []byte(tt.body))
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, tt.status, apiErr.StatusCode)
			require.Equal(t, tt.wantCode, apiErr.Code)
			require.Equal(t, tt.wantDesc, apiErr.Description)
		})
	}

	require.NoError(t, parseErrorResponse(&http.Response{StatusCode: http.StatusOK}, nil))
}

func TestAPIErrorIs(t *testing.T) {
	err := fmt.Errorf("create product: %w", ErrConflict.With("name taken"))

	require.ErrorIs(t, err, ErrConflict)
	require.False(t, errors.Is(err, ErrNotFound))
	require.Equal(t, "conflict: name taken", errors.Unwrap(err).Error())
	// With must not mutate the shared sentinel.
	require.Equal(t, "record conflicts with an existing one", ErrConflict.Description)
}
