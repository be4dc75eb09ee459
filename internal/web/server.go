package web

import (
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"skupick/internal/catalog"
	"skupick/internal/model"
	"skupick/internal/report"
	"skupick/internal/sku"
)

//go:embed static/*
var staticFS embed.FS

//go:embed help.md
var helpMD string

// DefaultMaxSessions bounds the number of sessions held in memory.
const DefaultMaxSessions = 1024

var (
	errSessionNotFound = errors.New("session not found")
	errTooManySessions = errors.New("too many sessions")
)

// session is one browser's picker. Its mutex serializes every call into the
// selector, which is not safe for concurrent use.
type session struct {
	mu       sync.Mutex
	id       string
	name     string
	sel      *sku.Selector
	lastUsed time.Time
}

// Server serves the picker over a JSON API, one selector per session.
type Server struct {
	catalog     *catalog.Catalog
	log         *zap.Logger
	metrics     *metrics
	registry    *prometheus.Registry
	maxSessions int

	mu       sync.Mutex
	sessions map[string]*session
}

// NewServer returns a server whose sessions default to catalog c.
func NewServer(c *catalog.Catalog, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	reg := prometheus.NewRegistry()
	return &Server{
		catalog:     c,
		log:         log,
		metrics:     newMetrics(reg),
		registry:    reg,
		maxSessions: DefaultMaxSessions,
		sessions:    make(map[string]*session),
	}
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	subFS, _ := fs.Sub(staticFS, "static")
	mux.Handle("GET /", http.FileServer(http.FS(subFS)))

	// API Endpoints
	mux.HandleFunc("POST /api/sessions", s.instrument("create", s.handleCreate))
	mux.HandleFunc("GET /api/sessions/{id}", s.instrument("get", s.handleGet))
	mux.HandleFunc("DELETE /api/sessions/{id}", s.instrument("delete", s.handleDelete))
	mux.HandleFunc("POST /api/sessions/{id}/toggle", s.instrument("toggle", s.handleToggle))
	mux.HandleFunc("POST /api/sessions/{id}/select", s.instrument("select", s.handleSelect))
	mux.HandleFunc("POST /api/sessions/{id}/reset", s.instrument("reset", s.handleReset))
	mux.HandleFunc("GET /api/sessions/{id}/report", s.instrument("report", s.handleReport))
	mux.HandleFunc("GET /api/help", handleHelp)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return mux
}

// StartServer serves the picker on addr until the listener fails.
func StartServer(addr string, c *catalog.Catalog, log *zap.Logger) error {
	s := NewServer(c, log)
	log.Info("starting skupick web server",
		zap.String("addr", addr),
		zap.String("catalog", c.Name),
		zap.Int("variants", len(c.Variants)))
	return http.ListenAndServe(addr, s.Handler())
}

type sessionResponse struct {
	ID      string          `json:"id"`
	Outcome *sku.Outcome    `json:"outcome,omitempty"`
	State   report.Snapshot `json:"state"`
}

type toggleRequest struct {
	Position int    `json:"position"`
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

type selectRequest struct {
	ID         string          `json:"id"`
	Attributes []sku.Attribute `json:"attributes"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	c := s.catalog
	if r.ContentLength != 0 {
		decoded, err := catalog.Decode(r.Body)
		if err != nil {
			s.metrics.bindErrorsTotal.Inc()
			s.writeError(w, err)
			return
		}
		c = decoded
	}

	sel := sku.New(sku.WithListener(s.metrics.listener()))
	if err := c.Bind(sel); err != nil {
		s.metrics.bindErrorsTotal.Inc()
		s.writeError(w, err)
		return
	}

	sess := &session{
		id:       uuid.NewString(),
		name:     c.Name,
		sel:      sel,
		lastUsed: time.Now(),
	}
	if err := s.add(sess); err != nil {
		s.writeError(w, err)
		return
	}
	s.log.Debug("session created", zap.String("session", sess.id), zap.String("catalog", c.Name))

	writeJSON(w, http.StatusCreated, sessionResponse{
		ID:    sess.id,
		State: report.Take(sel, sess.name, true),
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *session) (*sku.Outcome, error) {
		return nil, nil
	})
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid toggle request"})
		return
	}
	s.withSession(w, r, func(sess *session) (*sku.Outcome, error) {
		out, err := sess.sel.Toggle(req.Position, req.Value, req.Selected)
		if err != nil {
			return nil, err
		}
		s.metrics.togglesTotal.WithLabelValues(out.Kind.String()).Inc()
		return &out, nil
	})
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid select request"})
		return
	}
	s.withSession(w, r, func(sess *session) (*sku.Outcome, error) {
		if req.ID != "" {
			return nil, sess.sel.SelectVariantByID(req.ID)
		}
		return nil, sess.sel.SelectVariant(sku.Variant{Attributes: req.Attributes})
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *session) (*sku.Outcome, error) {
		return nil, sess.sel.Reset()
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.metrics.sessionsActive.Set(float64(len(s.sessions)))
	s.mu.Unlock()

	if !ok {
		s.writeError(w, errSessionNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	sess, err := s.get(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	sess.mu.Lock()
	text := report.Generate(sess.sel, sess.name, r.URL.Query().Has("verbose"))
	sess.mu.Unlock()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(text))
}

func handleHelp(w http.ResponseWriter, r *http.Request) {
	// Use the embedded help content
	text := strings.ReplaceAll(helpMD, "{{VERSION}}", model.Version)

	w.Header().Set("Content-Type", "text/markdown")
	w.Write([]byte(text))
}

// withSession runs fn under the session lock and replies with the session's
// state afterwards.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(*session) (*sku.Outcome, error)) {
	sess, err := s.get(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastUsed = time.Now()

	out, err := fn(sess)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		ID:      sess.id,
		Outcome: out,
		State:   report.Take(sess.sel, sess.name, r.URL.Query().Has("variants")),
	})
}

func (s *Server) add(sess *session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sessions) >= s.maxSessions {
		s.evictIdleLocked()
	}
	if len(s.sessions) >= s.maxSessions {
		return errTooManySessions
	}
	s.sessions[sess.id] = sess
	s.metrics.sessionsActive.Set(float64(len(s.sessions)))
	return nil
}

// evictIdleLocked drops sessions unused for more than an hour.
func (s *Server) evictIdleLocked() {
	cutoff := time.Now().Add(-time.Hour)
	for id, sess := range s.sessions {
		if sess.mu.TryLock() {
			idle := sess.lastUsed.Before(cutoff)
			sess.mu.Unlock()
			if idle {
				delete(s.sessions, id)
			}
		}
	}
}

func (s *Server) get(id string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, errSessionNotFound
	}
	return sess, nil
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, sku.ErrInvalidInput), errors.Is(err, catalog.ErrDuplicateID), errors.Is(err, catalog.ErrMalformed):
		status = http.StatusBadRequest
	case errors.Is(err, errSessionNotFound), errors.Is(err, sku.ErrVariantNotFound):
		status = http.StatusNotFound
	case errors.Is(err, sku.ErrNotBound):
		status = http.StatusConflict
	case errors.Is(err, errTooManySessions):
		status = http.StatusServiceUnavailable
	}
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument logs each API call and records its latency.
func (s *Server) instrument(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)
		elapsed := time.Since(start)
		s.metrics.requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
		s.log.Info("api request",
			zap.String("route", route),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", elapsed))
	}
}
