package web

import (
	"net/http"
	"time"

	"github.com/dkurganov/guestgate/internal/server/auth"
	"github.com/google/uuid"
)

const adminCookieName = "portal_admin"

// requestLogger tags every request with a generated id and logs the
// method/path pair on completion.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := s.logger.With("request_id", uuid.NewString())

		next.ServeHTTP(w, r)

		log.Info(r.Context(), "request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

// requireAdmin gates the admin pages on a valid session token. Anything
// short of a verified token redirects to the login form.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(adminCookieName)
		if err != nil {
			http.Redirect(w, r, "/admin/login", http.StatusFound)
			return
		}
		if err := auth.VerifyAdminToken(cookie.Value, s.opts.SecretKey); err != nil {
			http.Redirect(w, r, "/admin/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
