package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mitchellh/mapstructure"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/typeguard/internal/changes"
	"github.com/aretw0/typeguard/internal/logging"
	"github.com/aretw0/typeguard/pkg/observability"
	"github.com/aretw0/typeguard/pkg/ports"
	"github.com/aretw0/typeguard/pkg/schema"
	"github.com/aretw0/typeguard/pkg/validate"
)

// MaxBodyBytes bounds the size of request bodies.
const MaxBodyBytes = 1 << 20

// Server serves the validation API over a schema store.
type Server struct {
	Store    ports.SchemaStore
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Metrics  *observability.Metrics
	MaxDepth int
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithRegistry collects metrics into reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.Registry = reg
	}
}

// WithMaxDepth bounds the nesting of contracts accepted by the server.
func WithMaxDepth(depth int) Option {
	return func(s *Server) {
		s.MaxDepth = depth
	}
}

// NewServer creates a Server backed by store.
func NewServer(store ports.SchemaStore, opts ...Option) *Server {
	s := &Server{Store: store}
	for _, opt := range opts {
		opt(s)
	}
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}
	if s.Registry == nil {
		s.Registry = prometheus.NewRegistry()
	}
	s.Metrics = observability.NewMetrics(s.Registry)
	return s
}

// NewHandler creates the HTTP handler for the validation API.
func NewHandler(store ports.SchemaStore, opts ...Option) http.Handler {
	return NewServer(store, opts...).Routes()
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{}))

	r.Post("/validate", s.Validate)
	r.Route("/schemas", func(r chi.Router) {
		r.Get("/", s.ListSchemas)
		r.Put("/{name}", s.PutSchema)
		r.Get("/{name}", s.GetSchema)
		r.Delete("/{name}", s.DeleteSchema)
		r.Post("/{name}/validate", s.ValidateWithSchema)
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ValidateRequest is the body of POST /validate.
type ValidateRequest struct {
	Schema json.RawMessage `json:"schema"`
	Value  json.RawMessage `json:"value"`
	Coerce bool            `json:"coerce"`
	Base   bool            `json:"base"`
}

// ValidateResponse is returned when validation succeeds.
type ValidateResponse struct {
	Value   any             `json:"value"`
	Changes json.RawMessage `json:"changes,omitempty"`
}

// ErrorResponse is returned for every failed request. Validation failures
// carry one issue per field error.
type ErrorResponse struct {
	Error  string           `json:"error"`
	Issues []validate.Issue `json:"errors,omitempty"`
}

// queryOptions are the validation switches accepted in the query string.
type queryOptions struct {
	Coerce bool `mapstructure:"coerce"`
	Base   bool `mapstructure:"base"`
}

// Validate handles POST /validate.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	var body ValidateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(&body); err != nil {
		s.fail(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if len(body.Schema) == 0 {
		s.fail(w, http.StatusBadRequest, errors.New("schema is required"))
		return
	}

	def, err := schema.ParseJSON(body.Schema)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	value, err := decodeValue(body.Value)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	s.run(w, def, value, queryOptions{Coerce: body.Coerce, Base: body.Base})
}

// ValidateWithSchema handles POST /schemas/{name}/validate; the body is the value.
func (s *Server) ValidateWithSchema(w http.ResponseWriter, r *http.Request) {
	opts, err := parseQuery(r)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}

	def, err := s.Store.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, storeStatus(err), err)
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		s.fail(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	value, err := decodeValue(raw)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	s.run(w, def, value, opts)
}

func (s *Server) run(w http.ResponseWriter, def schema.Definition, value any, q queryOptions) {
	opts := []validate.Option{
		validate.WithLogger(s.Logger),
		validate.WithHooks(s.Metrics.Hooks()),
		validate.WithMaxDepth(s.MaxDepth),
	}
	if q.Coerce {
		opts = append(opts, validate.WithCoercion())
	}
	if q.Base {
		opts = append(opts, validate.WithBase())
	}

	out, err := validate.Validate(def, value, opts...)
	if err != nil {
		if issues := validate.Issues(err); issues != nil {
			writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Issues: issues})
			return
		}
		s.fail(w, http.StatusBadRequest, err)
		return
	}

	resp := ValidateResponse{Value: out}
	if patch, err := changes.Diff(value, out); err != nil {
		s.Logger.Warn("failed to compute changes", "error", err)
	} else {
		resp.Changes = patch
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListSchemas handles GET /schemas.
func (s *Server) ListSchemas(w http.ResponseWriter, r *http.Request) {
	names, err := s.Store.List(r.Context())
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"schemas": names})
}

// PutSchema handles PUT /schemas/{name}. The body is a JSON or YAML
// definition, chosen by Content-Type.
func (s *Server) PutSchema(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		s.fail(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	var def schema.Definition
	if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		def, err = schema.ParseYAML(raw)
	} else {
		def, err = schema.ParseJSON(raw)
	}
	if err == nil {
		err = schema.Check(def, s.MaxDepth)
	}
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}

	name := chi.URLParam(r, "name")
	if err := s.Store.Save(r.Context(), name, def); err != nil {
		s.fail(w, storeStatus(err), err)
		return
	}
	s.Logger.Info("schema saved", "name", name, "kind", def.Kind())
	writeJSON(w, http.StatusOK, map[string]any{"name": name, "schema": def})
}

// GetSchema handles GET /schemas/{name}.
func (s *Server) GetSchema(w http.ResponseWriter, r *http.Request) {
	def, err := s.Store.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, storeStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, def)
}

// DeleteSchema handles DELETE /schemas/{name}.
func (s *Server) DeleteSchema(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.fail(w, storeStatus(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// -- Helpers --

func parseQuery(r *http.Request) (queryOptions, error) {
	raw := make(map[string]any)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			raw[key] = values[0]
		}
	}

	var q queryOptions
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &q,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return q, err
	}
	if err := decoder.Decode(raw); err != nil {
		return q, fmt.Errorf("invalid query: %w", err)
	}
	return q, nil
}

func decodeValue(raw []byte) (any, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("invalid value: %w", err)
	}
	return v, nil
}

func storeStatus(err error) int {
	switch {
	case errors.Is(err, ports.ErrSchemaNotFound):
		return http.StatusNotFound
	case errors.Is(err, ports.ErrInvalidName):
		return http.StatusBadRequest
	}
	var defErr *schema.DefinitionError
	if errors.As(err, &defErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "status", status, "error", err)
	} else {
		s.Logger.Debug("request rejected", "status", status, "error", err)
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
