package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/auth"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/handler/http/response"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type claimsKey struct{}

// AuthRequired rejects requests without a valid access token and stores its
// claims in the request context.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claimsMap, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := jwt.ClaimsFromMap(claimsMap)
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// ClaimsFromContext returns the claims stored by AuthRequired.
func ClaimsFromContext(ctx context.Context) (jwt.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(jwt.Claims)
	return claims, ok
}

// DepartmentFromContext returns the department of the authenticated user.
func DepartmentFromContext(ctx context.Context) string {
	claims, _ := ClaimsFromContext(ctx)
	return claims.Department
}
