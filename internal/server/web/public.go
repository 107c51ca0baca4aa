package web

import (
	"errors"
	"net/http"

	"github.com/dkurganov/guestgate/internal/common"
	"github.com/dkurganov/guestgate/internal/server/handoff"
)

type pageData struct {
	Title string
	Flash Flashes
}

func (s *Server) indexGet(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "index.html", pageData{Title: "Captive Portal", Flash: s.popFlashes(w, r)})
}

func (s *Server) signupGet(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "signup.html", pageData{Title: "Sign Up", Flash: s.popFlashes(w, r)})
}

func (s *Server) signupPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, err := s.registrar.Register(ctx,
		r.FormValue("fullName"), r.FormValue("company"), r.FormValue("email"), r.FormValue("phone"))
	if err != nil {
		// One combined message per failure kind; the form never reveals
		// which uniqueness check tripped beyond that.
		switch {
		case errors.Is(err, common.ErrorValidation):
			s.addFlash(w, r, "error", "All fields are required.")
		case errors.Is(err, common.ErrorDuplicateContact):
			s.addFlash(w, r, "error", "Email or phone already registered.")
		case errors.Is(err, common.ErrorDuplicateCredential):
			s.addFlash(w, r, "error", "Email already exists in RADIUS.")
		default:
			s.logger.Error(ctx, "signup failed", "error", err.Error())
			s.addFlash(w, r, "error", "Registration failed.")
		}
		http.Redirect(w, r, "/signup", http.StatusFound)
		return
	}

	s.addFlash(w, r, "success", "Registration successful. You can now sign in.")
	http.Redirect(w, r, "/signin", http.StatusFound)
}

// routerParams are the hotspot redirect values the signin form round-trips
// back to us so a successful login can hand off to the router.
type routerParams struct {
	LinkLoginOnly string
	Dst           string
	Popup         string
	ChapID        string
	ChapChallenge string
}

func routerParamsFromQuery(r *http.Request) routerParams {
	q := r.URL.Query()
	pick := func(names ...string) string {
		for _, n := range names {
			if v := q.Get(n); v != "" {
				return v
			}
		}
		return ""
	}
	return routerParams{
		LinkLoginOnly: pick("link-login-only", "linkLoginOnly"),
		Dst:           pick("dst"),
		Popup:         pick("popup"),
		ChapID:        pick("chap-id", "chapId"),
		ChapChallenge: pick("chap-challenge", "chapChallenge"),
	}
}

func routerParamsFromForm(r *http.Request) routerParams {
	return routerParams{
		LinkLoginOnly: r.FormValue("linkLoginOnly"),
		Dst:           r.FormValue("dst"),
		Popup:         r.FormValue("popup"),
		ChapID:        r.FormValue("chapId"),
		ChapChallenge: r.FormValue("chapChallenge"),
	}
}

type signinData struct {
	Title  string
	Flash  Flashes
	Router routerParams
}

func (s *Server) signinGet(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "signin.html", signinData{
		Title:  "Sign In",
		Flash:  s.popFlashes(w, r),
		Router: routerParamsFromQuery(r),
	})
}

type handoffData struct {
	Title         string
	LinkLoginOnly string
	Username      string
	Password      string
	Dst           string
	Popup         string
	CHAP          bool
}

func (s *Server) signinPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	email := r.FormValue("email")
	phone := r.FormValue("phone")
	router := routerParamsFromForm(r)

	if email == "" || phone == "" {
		s.addFlash(w, r, "error", "Email and phone are required.")
		http.Redirect(w, r, "/signin", http.StatusFound)
		return
	}

	if err := s.verifier.Verify(ctx, email, phone); err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			s.addFlash(w, r, "error", "Invalid credentials.")
		} else {
			s.logger.Error(ctx, "signin failed", "error", err.Error())
			s.addFlash(w, r, "error", "Authentication failed.")
		}
		http.Redirect(w, r, "/signin", http.StatusFound)
		return
	}

	// With a router login URL present, render the auto-submitting handoff
	// form so the hotspot grants access.
	if router.LinkLoginOnly != "" {
		result := handoff.Compute(phone, router.ChapID, router.ChapChallenge)

		password := phone
		if result.Mode == handoff.ModeCHAP {
			password = result.Digest
		} else if router.ChapID != "" || router.ChapChallenge != "" {
			s.logger.Warn(ctx, "CHAP handoff degraded to PAP", "email", email)
		}

		s.render(w, r, "handoff.html", handoffData{
			Title:         "Authorizing...",
			LinkLoginOnly: router.LinkLoginOnly,
			Username:      email,
			Password:      password,
			Dst:           router.Dst,
			Popup:         router.Popup,
			CHAP:          result.Mode == handoff.ModeCHAP,
		})
		return
	}

	http.Redirect(w, r, "/success", http.StatusFound)
}

func (s *Server) successGet(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "success.html", pageData{Title: "Access Granted", Flash: s.popFlashes(w, r)})
}
