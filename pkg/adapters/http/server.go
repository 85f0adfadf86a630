package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/aretw0/turing/pkg/session"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes machines and sessions over HTTP.
type Server struct {
	Machines ports.MachineProvider
	Sessions *session.Manager
	Streams  *StreamManager

	spec     *openapi3.T
	gatherer prometheus.Gatherer
	logger   *slog.Logger
	maxSteps int
}

// Option configures the Server.
type Option func(*Server)

// WithSessions enables the /sessions routes.
func WithSessions(m *session.Manager) Option {
	return func(s *Server) {
		s.Sessions = m
	}
}

// WithGatherer serves g on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger configures the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMaxSteps caps every run. Requests may ask for fewer steps, never more.
func WithMaxSteps(n int) Option {
	return func(s *Server) {
		s.maxSteps = n
	}
}

// NewServer loads the API document and prepares the handlers.
func NewServer(machines ports.MachineProvider, opts ...Option) (*Server, error) {
	s := &Server{
		Machines: machines,
		logger:   logging.NewNop(),
		maxSteps: MaxRunSteps,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)

	spec, err := LoadSpec(context.Background())
	if err != nil {
		return nil, err
	}
	s.spec = spec
	return s, nil
}

// NotifyReload tells subscribers of the global event stream that
// definitions changed.
func (s *Server) NotifyReload(source string) {
	s.Streams.Broadcast(globalTopic, source)
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.yaml", s.GetSpec)
	r.Get("/events", s.SubscribeEvents)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Post("/validate", s.ValidateMachine)
	r.Route("/machines", func(r chi.Router) {
		r.Get("/", s.ListMachines)
		r.Get("/{name}", s.GetMachine)
		r.Get("/{name}/graph", s.GetMachineGraph)
		r.Post("/{name}/run", s.RunMachine)
	})

	if s.Sessions != nil {
		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", s.ListSessions)
			r.Post("/", s.StartSession)
			r.Get("/{id}", s.GetSession)
			r.Delete("/{id}", s.DeleteSession)
			r.Post("/{id}/step", s.StepSession)
		})
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "turing-http",
		"version":     turing.Version,
		"api_version": s.spec.Info.Version,
	})
}

// GetSpec handles GET /openapi.yaml.
func (s *Server) GetSpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(rawSpec)
}

// ListMachines handles GET /machines.
func (s *Server) ListMachines(w http.ResponseWriter, r *http.Request) {
	names, err := s.Machines.Names(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"machines": names})
}

// GetMachine handles GET /machines/{name}.
func (s *Server) GetMachine(w http.ResponseWriter, r *http.Request) {
	m, err := s.Machines.Machine(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, m.Inspect())
}

// GetMachineGraph handles GET /machines/{name}/graph.
func (s *Server) GetMachineGraph(w http.ResponseWriter, r *http.Request) {
	m, err := s.Machines.Machine(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, m.Graph())
}

// RunMachine handles POST /machines/{name}/run.
func (s *Server) RunMachine(w http.ResponseWriter, r *http.Request) {
	var body RunRequest
	if !s.decode(w, r, &body) {
		return
	}

	m, err := s.Machines.Machine(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	input, err := runner.SanitizeInput(body.Input)
	if err != nil {
		s.writeError(w, err)
		return
	}

	limit := s.maxSteps
	if body.MaxSteps > 0 && (limit <= 0 || body.MaxSteps < limit) {
		limit = body.MaxSteps
	}

	var res *turing.Result
	if body.Trace {
		res, err = m.Trace(r.Context(), input, limit)
	} else {
		res, err = m.Walk(r.Context(), input, limit, nil)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// ValidateMachine handles POST /validate.
func (s *Server) ValidateMachine(w http.ResponseWriter, r *http.Request) {
	var body ValidateRequest
	if !s.decode(w, r, &body) {
		return
	}
	format := compiler.FormatYAML
	if body.Format != "" {
		format = compiler.Format(body.Format)
	}

	def, err := compiler.Parse([]byte(body.Definition), format)
	if err != nil {
		s.writeJSON(w, http.StatusOK, ValidateResponse{Error: errorPayload(err)})
		return
	}
	m, err := turing.New(def)
	if err != nil {
		s.writeJSON(w, http.StatusOK, ValidateResponse{Name: def.Name, Error: errorPayload(err)})
		return
	}
	s.writeJSON(w, http.StatusOK, ValidateResponse{Valid: true, Name: def.Name, Machine: m.Inspect()})
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

// StartSession handles POST /sessions.
func (s *Server) StartSession(w http.ResponseWriter, r *http.Request) {
	var body StartSessionRequest
	if !s.decode(w, r, &body) {
		return
	}
	input, err := runner.SanitizeInput(body.Input)
	if err != nil {
		s.writeError(w, err)
		return
	}
	sess, err := s.Sessions.Start(r.Context(), body.Machine, input)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, sess)
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Sessions.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sess)
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StepSession handles POST /sessions/{id}/step.
func (s *Server) StepSession(w http.ResponseWriter, r *http.Request) {
	var body StepRequest
	if r.ContentLength != 0 && !s.decode(w, r, &body) {
		return
	}
	id := chi.URLParam(r, "id")

	sess, err := s.Sessions.Step(r.Context(), id, body.Steps)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if payload, err := json.Marshal(sess); err == nil {
		s.Streams.Broadcast(id, string(payload))
	}
	s.writeJSON(w, http.StatusOK, sess)
}

// SubscribeEvents handles GET /events (SSE). Without session_id it streams
// definition reloads, with it the session after every step.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, errors.New("streaming not supported"))
		return
	}

	topic := r.URL.Query().Get("session_id")
	ch, cancel := s.Streams.Subscribe(topic)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()
	s.logger.Debug("SSE client connected", "topic", topic)

	event := "reload"
	if topic != globalTopic {
		event = "session"
	}
	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected", "topic", topic)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, msg)
			flusher.Flush()
		}
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.logger.Warn("invalid request body", "path", r.URL.Path, "err", err)
		s.writeJSON(w, http.StatusBadRequest, &ErrorPayload{Error: "invalid request body: " + err.Error()})
		return false
	}
	if err := validateRequest(v); err != nil {
		s.writeError(w, err)
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	s.writeJSON(w, status, errorPayload(err))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
