package server

import (
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/akeil/xform"
	"github.com/akeil/xform/internal/logging"
)

const cookieName = "xform-session"

// maxSessions limits the number of sessions that are remembered.
const maxSessions = 10000

// Sessions keeps track of the page each browser session is on.
//
// Only sessions that have left the start page are stored.
type Sessions struct {
	mx    sync.Mutex
	pages map[string]xform.Page
	start xform.Page
	limit int
}

// NewSessions creates an empty session store.
// Sessions that are seen for the first time are on the start page.
func NewSessions(start xform.Page) *Sessions {
	return &Sessions{
		pages: make(map[string]xform.Page),
		start: start,
		limit: maxSessions,
	}
}

// Page returns the current page for the session with the given id.
func (s *Sessions) Page(id string) xform.Page {
	s.mx.Lock()
	defer s.mx.Unlock()
	p, ok := s.pages[id]
	if !ok {
		return s.start
	}
	return p
}

// SetPage moves the session with the given id to page p.
//
// When the store is full, an arbitrary other session is dropped and
// goes back to the start page.
func (s *Sessions) SetPage(id string, p xform.Page) {
	s.mx.Lock()
	defer s.mx.Unlock()

	if p == s.start {
		delete(s.pages, id)
		return
	}

	_, known := s.pages[id]
	if !known && len(s.pages) >= s.limit {
		for other := range s.pages {
			logging.Debug("Drop session %v", other)
			delete(s.pages, other)
			break
		}
	}
	s.pages[id] = p
}

// Len is the number of known sessions.
func (s *Sessions) Len() int {
	s.mx.Lock()
	defer s.mx.Unlock()
	return len(s.pages)
}

// sessionID reads the session id from the request cookie.
// If there is none or it is invalid, a new id is created and set as cookie
// on the response.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(cookieName)
	if err == nil {
		id, err := uuid.Parse(c.Value)
		if err == nil {
			return id.String()
		}
		logging.Debug("Discard invalid session id %q", c.Value)
	}

	id := uuid.New().String()
	logging.Debug("New session %v", id)
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
