package middleware

import (
	"net/http"
	"strings"

	"feedback-prioritizer/internal/utils"
)

// RequireRole lets the request through only when the session role matches.
// Browsers asking for HTML are redirected to loginPath; API clients get 401.
func RequireRole(role, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got, _ := utils.GetString(r.Context(), utils.CtxRole); got == role {
				next.ServeHTTP(w, r)
				return
			}
			if strings.Contains(r.Header.Get("Accept"), "text/html") {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			utils.Error(w, http.StatusUnauthorized, "authentication required")
		})
	}
}
