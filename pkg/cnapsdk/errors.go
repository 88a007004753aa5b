package cnapsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/cnap/pkg/httpx"
)

const (
	ErrorCodeInvalidRequest    = "invalid_request"
	ErrorCodeNotFound          = "not_found"
	ErrorCodeConflict          = "conflict"
	ErrorCodeServerError       = "server_error"
	ErrorCodeInvalidToken      = "invalid_token"
	ErrorCodeInsufficientScope = "insufficient_scope"
)

// APIError is an error response from the facility API. Handlers write it
// and the SDK decodes it.
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("%d %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes e as a JSON response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteError(w, e.StatusCode, e.Code, e.Description)
}

// With returns a copy of e carrying a more specific description.
func (e *APIError) With(description string) *APIError {
	c := *e
	c.Description = description
	return &c
}

var (
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required fields",
	}
	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "record not found",
	}
	ErrConflict = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeConflict,
		Description: "record conflicts with an existing one",
	}
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "the server encountered an unexpected condition",
	}
)

// Is matches API errors by status code and error code so callers can write
// errors.Is(err, cnapsdk.ErrNotFound).
func (e *APIError) Is(target error) bool {
	var t *APIError
	if !errors.As(target, &t) {
		return false
	}
	return e.StatusCode == t.StatusCode && e.Code == t.Code
}

// parseErrorResponse turns a non-2xx response into an *APIError. Plain-text
// bodies (approval acknowledgements, bearer challenges) keep their text as
// the description.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp httpx.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	code := ErrorCodeServerError
	switch resp.StatusCode {
	case http.StatusBadRequest:
		code = ErrorCodeInvalidRequest
	case http.StatusUnauthorized:
		code = ErrorCodeInvalidToken
	case http.StatusForbidden:
		code = ErrorCodeInsufficientScope
	case http.StatusNotFound:
		code = ErrorCodeNotFound
	}
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        code,
		Description: strings.TrimSpace(string(body)),
	}
}
