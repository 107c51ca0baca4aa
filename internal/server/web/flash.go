package web

import "net/http"

const sessionName = "portal-session"

// Flashes holds one-shot feedback messages for the next rendered page.
type Flashes struct {
	Error   []string
	Success []string
}

func (s *Server) addFlash(w http.ResponseWriter, r *http.Request, kind, msg string) {
	session, _ := s.store.Get(r, sessionName)
	session.AddFlash(msg, kind)
	_ = session.Save(r, w)
}

// popFlashes drains both flash queues, saving the session so the messages
// show exactly once.
func (s *Server) popFlashes(w http.ResponseWriter, r *http.Request) Flashes {
	session, _ := s.store.Get(r, sessionName)

	var f Flashes
	for _, v := range session.Flashes("error") {
		if msg, ok := v.(string); ok {
			f.Error = append(f.Error, msg)
		}
	}
	for _, v := range session.Flashes("success") {
		if msg, ok := v.(string); ok {
			f.Success = append(f.Success, msg)
		}
	}
	_ = session.Save(r, w)

	return f
}
