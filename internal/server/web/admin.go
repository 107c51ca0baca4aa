package web

import (
	"crypto/subtle"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/dkurganov/guestgate/internal/server/auth"
	"github.com/dkurganov/guestgate/internal/server/models"
	"github.com/dkurganov/guestgate/internal/server/repositories/accounting"
	"golang.org/x/crypto/bcrypt"
)

func (s *Server) adminLoginGet(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "admin_login.html", pageData{Title: "Admin Login", Flash: s.popFlashes(w, r)})
}

func (s *Server) checkAdminPassword(password string) bool {
	if s.opts.AdminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.opts.AdminPasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(s.opts.AdminPassword), []byte(password)) == 1
}

func (s *Server) adminLoginPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := r.FormValue("username")
	password := r.FormValue("password")

	if username != s.opts.AdminUsername || !s.checkAdminPassword(password) {
		s.addFlash(w, r, "error", "Invalid admin credentials")
		http.Redirect(w, r, "/admin/login", http.StatusFound)
		return
	}

	token, err := auth.GenerateAdminToken(s.opts.SecretKey, s.opts.AdminTokenValidity)
	if err != nil {
		s.logger.Error(ctx, "minting admin token failed", "error", err.Error())
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     adminCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.opts.AdminTokenValidity.Seconds()),
	})
	http.Redirect(w, r, "/admin", http.StatusFound)
}

func (s *Server) adminLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     adminCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	http.Redirect(w, r, "/admin/login", http.StatusFound)
}

type dashboardData struct {
	Title string
	Flash Flashes
	Users []*models.Identity
}

func (s *Server) adminDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := s.registrar.List(ctx)
	if err != nil {
		s.logger.Error(ctx, "listing registrants failed", "error", err.Error())
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	s.render(w, r, "admin_dashboard.html", dashboardData{
		Title: "Admin Dashboard",
		Flash: s.popFlashes(w, r),
		Users: users,
	})
}

func (s *Server) adminUsersCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := s.registrar.List(ctx)
	if err != nil {
		s.logger.Error(ctx, "listing registrants failed", "error", err.Error())
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="users.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"Full Name", "Company", "Email", "Phone", "Created At"})
	for _, u := range users {
		_ = cw.Write([]string{u.FullName, u.Company, u.Email, u.Phone, u.CreatedAt.UTC().Format(time.RFC3339)})
	}
	cw.Flush()
}

// parseTimeParam accepts the datetime-local and plain date formats the
// filter form submits. Anything unparseable means an open bound: this read
// path falls back instead of erroring.
func parseTimeParam(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}

func statsQuery(r *http.Request) (accounting.Filter, accounting.Sort) {
	q := r.URL.Query()
	filter := accounting.Filter{
		Start: parseTimeParam(q.Get("start")),
		End:   parseTimeParam(q.Get("end")),
	}
	sort := accounting.Sort{
		Column:    q.Get("sort"),
		Direction: q.Get("dir"),
	}
	return filter, sort
}

type statsData struct {
	Title   string
	Flash   Flashes
	PerUser []*models.UsageSummary
	Totals  *models.DashboardTotals
	Start   string
	End     string
	Sort    string
	Dir     string
}

func (s *Server) adminStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter, sort := statsQuery(r)

	perUser, err := s.stats.Summarize(ctx, filter, sort)
	if err != nil {
		s.logger.Error(ctx, "summarizing stats failed", "error", err.Error())
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	totals, err := s.stats.Totals(ctx)
	if err != nil {
		s.logger.Error(ctx, "reading totals failed", "error", err.Error())
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	column, direction := sort.Resolve()
	s.render(w, r, "admin_stats.html", statsData{
		Title:   "Statistics",
		Flash:   s.popFlashes(w, r),
		PerUser: perUser,
		Totals:  totals,
		Start:   r.URL.Query().Get("start"),
		End:     r.URL.Query().Get("end"),
		Sort:    column,
		Dir:     direction,
	})
}

func (s *Server) adminStatsCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter, _ := statsQuery(r)

	// The export always uses the default ordering.
	perUser, err := s.stats.Summarize(ctx, filter, accounting.Sort{})
	if err != nil {
		s.logger.Error(ctx, "summarizing stats failed", "error", err.Error())
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="stats.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"Username", "Sessions", "Last Login", "Total Time (s)", "Input Octets", "Output Octets"})
	for _, row := range perUser {
		lastLogin := ""
		if row.LastLogin != nil {
			lastLogin = row.LastLogin.UTC().Format(time.RFC3339)
		}
		_ = cw.Write([]string{
			row.Username,
			strconv.FormatInt(row.SessionCount, 10),
			lastLogin,
			strconv.FormatInt(row.TotalDurationSeconds, 10),
			strconv.FormatInt(row.TotalBytesIn, 10),
			strconv.FormatInt(row.TotalBytesOut, 10),
		})
	}
	cw.Flush()
}
