package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/sdgtech/payroll-backend-go/internal/handler/http/response"
	"github.com/sdgtech/payroll-backend-go/internal/pkg/jwt"
)

// AuthRequired rejects requests without a verified operator access token.
// It runs after jwtauth.Verifier.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, "Invalid token")
				return
			}

			if !jwt.IsAccessToken(claims) {
				response.Unauthorized(w, "Invalid token")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
