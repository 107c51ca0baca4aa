package web

import "net/http"

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.indexGet)
	mux.HandleFunc("GET /signup", s.signupGet)
	mux.HandleFunc("POST /signup", s.signupPost)
	mux.HandleFunc("GET /signin", s.signinGet)
	mux.HandleFunc("POST /signin", s.signinPost)
	mux.HandleFunc("GET /success", s.successGet)

	mux.HandleFunc("GET /admin/login", s.adminLoginGet)
	mux.HandleFunc("POST /admin/login", s.adminLoginPost)
	mux.HandleFunc("GET /admin/logout", s.adminLogout)

	admin := http.NewServeMux()
	admin.HandleFunc("GET /admin", s.adminDashboard)
	admin.HandleFunc("GET /admin/users.csv", s.adminUsersCSV)
	admin.HandleFunc("GET /admin/stats", s.adminStats)
	admin.HandleFunc("GET /admin/stats.csv", s.adminStatsCSV)
	mux.Handle("/admin", s.requireAdmin(admin))
	mux.Handle("/admin/", s.requireAdmin(admin))

	return mux
}
