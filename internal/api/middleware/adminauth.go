package middleware

import (
	"net/http"

	"github.com/promoarcade/snakesladders/internal/api/apierr"
	"github.com/promoarcade/snakesladders/internal/services/adminauth"
)

// AdminAuth creates middleware that protects admin routes with HTTP Basic
// authentication checked against the stored admin credential
func AdminAuth(authService *adminauth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				w.Header().Set("WWW-Authenticate", `Basic realm="admin"`)
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			if err := authService.Login(r.Context(), username, password); err != nil {
				apierr.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
