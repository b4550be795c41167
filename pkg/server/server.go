// Package server runs the interactive demo as a small web application.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/akeil/xform"
	"github.com/akeil/xform/internal/logging"
	"github.com/akeil/xform/pkg/render"
)

// Config holds the settings for the demo server.
type Config struct {
	// Addr is the TCP address to listen on, e.g. ":8080".
	Addr string
	// StartPage is the page for new sessions.
	StartPage xform.Page
	// Width and Height are the size of the plot images in pixels.
	Width  int
	Height int
	// Palette for the plots, nil for the default colors.
	Palette *render.Palette
}

// DefaultConfig listens on port 8080 and starts on the welcome page.
func DefaultConfig() Config {
	return Config{
		Addr:      ":8080",
		StartPage: xform.Welcome,
		Width:     800,
		Height:    800,
	}
}

// Server serves the demo pages, plot images and the live endpoint.
type Server struct {
	cfg      Config
	sessions *Sessions
	rc       *render.Context
	mux      *http.ServeMux
	upgrader websocket.Upgrader
	exit     chan struct{}
}

// New creates a Server for the given config.
func New(cfg Config) *Server {
	s := &Server{
		cfg:      cfg,
		sessions: NewSessions(cfg.StartPage),
		rc:       render.NewContext(cfg.Width, cfg.Height, cfg.Palette),
		mux:      http.NewServeMux(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		exit: make(chan struct{}),
	}

	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/start", method(http.MethodPost, s.handleStart))
	s.mux.HandleFunc("/reset", method(http.MethodPost, s.handleReset))
	s.mux.HandleFunc("/plot.png", method(http.MethodGet, s.handlePlot(render.PNG)))
	s.mux.HandleFunc("/plot.pdf", method(http.MethodGet, s.handlePlot(render.PDF)))
	s.mux.HandleFunc("/api/transform", method(http.MethodGet, s.handleTransform))
	s.mux.HandleFunc("/ws", s.handleLive)

	return s
}

// Sessions gives access to the session store.
func (s *Server) Sessions() *Sessions {
	return s.sessions
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logging.Debug("%v %v", r.Method, r.URL)
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe accepts connections until ctx is done.
// Open requests are given a few seconds to finish.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		logging.Info("Listening on %v", s.cfg.Addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	logging.Info("Shutting down")
	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Close ends all live connections.
func (s *Server) Close() {
	select {
	case <-s.exit:
		// already closed
	default:
		close(s.exit)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, xform.NewNotFound("no page at %q", r.URL.Path))
		return
	}
	if r.Method != http.MethodGet {
		writeStatus(w, http.StatusMethodNotAllowed)
		return
	}

	id := sessionID(w, r)
	page := s.sessions.Page(id)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := renderPage(w, page, r.URL.Query())
	if err != nil {
		writeError(w, err)
	}
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	id := sessionID(w, r)
	s.sessions.SetPage(id, xform.Demo)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	id := sessionID(w, r)
	s.sessions.SetPage(id, xform.Welcome)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handlePlot(format render.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := evaluate(r)
		if err != nil {
			writeError(w, err)
			return
		}

		// render to a buffer first so errors can still be reported
		var buf bytes.Buffer
		err = s.rc.Render(render.FromResult(res), format, &buf)
		if err != nil {
			writeError(w, xform.Wrap(err, "render %v", format))
			return
		}

		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Cache-Control", "no-cache")
		_, err = buf.WriteTo(w)
		if err != nil {
			logging.Warning("Failed to send plot: %v", err)
		}
	}
}

func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	res, err := evaluate(r)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(res)
	if err != nil {
		logging.Warning("Failed to send result: %v", err)
	}
}

func evaluate(r *http.Request) (xform.Result, error) {
	p, err := ParseParams(r.URL.Query())
	if err != nil {
		return xform.Result{}, err
	}
	return xform.Evaluate(p)
}

// method restricts a handler to a single HTTP method.
func method(m string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != m {
			w.Header().Set("Allow", m)
			writeStatus(w, http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}

// writeError sends an error response with a status code that matches the
// type of error.
func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case xform.IsValidationError(err):
		code = http.StatusBadRequest
	case xform.IsNotFound(err):
		code = http.StatusNotFound
	}

	if code == http.StatusInternalServerError {
		logging.Error("Request failed: %v", err)
	} else {
		logging.Debug("Request rejected: %v", err)
	}
	http.Error(w, err.Error(), code)
}

func writeStatus(w http.ResponseWriter, code int) {
	http.Error(w, http.StatusText(code), code)
}
