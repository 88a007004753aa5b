package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/cnap/pkg/jwtx"
	"github.com/aussiebroadwan/cnap/pkg/slogx"
)

// AuthnMiddleware requires a valid bearer token. The token may be sent in the
// Authorization header or, for links opened from email, as access_token.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw := bearerToken(r)
			if raw == "" {
				writeBearerError(w, "missing bearer token")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("jwt verify failed", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithAuth(ctx, claims)))
		})
	}
}

func bearerToken(r *http.Request) string {
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	}
	return strings.TrimSpace(r.URL.Query().Get("access_token"))
}

// RFC 6750 error response for bearer auth. The plain-text body is what a
// browser following an emailed link shows.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteText(w, http.StatusUnauthorized, AuthRequiredText+" ("+desc+")")
}

// AuthRequiredText is the body of a 401 from AuthnMiddleware.
const AuthRequiredText = "Staff sign-in required. Send a staff token in the Authorization header or append ?access_token=<token> to the link."
