package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/johnleydelgado/legacy-app-sub005/internal/domain"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/record"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/filter"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/request"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/result"
	"github.com/johnleydelgado/legacy-app-sub005/internal/logger"
	healthuc "github.com/johnleydelgado/legacy-app-sub005/internal/usecase/health"
	searchuc "github.com/johnleydelgado/legacy-app-sub005/internal/usecase/search"
)

// ErrorCode is the machine-readable error code in error responses.
type ErrorCode string

// Error codes.
const (
	CodeBadRequest        ErrorCode = "bad_request"
	CodeUnauthorized      ErrorCode = "unauthorized"
	CodeInvalidPagination ErrorCode = "invalid_pagination"
	CodeEntityNotFound    ErrorCode = "entity_not_found"
	CodeSearchFailed      ErrorCode = "search_failed"
	CodeEnrichmentFailed  ErrorCode = "enrichment_failed"
	CodeInternalError     ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// SearchResponse is the body of a successful search.
type SearchResponse struct {
	Items []record.Record `json:"items"`
	Meta  MetaResponse    `json:"meta"`
}

// MetaResponse is the pagination summary of a search response.
type MetaResponse struct {
	TotalItems   int64 `json:"totalItems"`
	ItemCount    int   `json:"itemCount"`
	ItemsPerPage int   `json:"itemsPerPage"`
	TotalPages   int   `json:"totalPages"`
	CurrentPage  int   `json:"currentPage"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the search API.
type Server struct {
	search        *searchuc.Service
	health        *healthuc.Service
	defaultLimit  int
	maxLimit      int
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. defaultLimit applies when the
// caller omits limit; maxLimit caps every entity.
func NewServer(
	search *searchuc.Service,
	health *healthuc.Service,
	defaultLimit, maxLimit int,
) *Server {
	if defaultLimit <= 0 {
		defaultLimit = request.DefaultLimit
	}
	s := &Server{
		search:       search,
		health:       health,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidPagination, http.StatusBadRequest, CodeInvalidPagination),
		sentinelHandler(domain.ErrUnknownEntity, http.StatusNotFound, CodeEntityNotFound),
		sentinelHandler(domain.ErrSearchExecution, http.StatusBadGateway, CodeSearchFailed),
		sentinelHandler(domain.ErrEnrichment, http.StatusBadGateway, CodeEnrichmentFailed),
	}
	return s
}

// Register mounts the API routes on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Get("/api/v1/{entity}/search", s.Search)
}

// Search handles GET /api/v1/{entity}/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	entityName := chi.URLParam(r, "entity")

	req, err := s.searchRequest(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	page, err := s.search.Search(r.Context(), entityName, req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResponse(page))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// searchRequest decodes query parameters. Malformed page or limit values
// are pagination errors; malformed filter JSON is a bad request.
func (s *Server) searchRequest(r *http.Request) (request.Request, error) {
	query := r.URL.Query()

	var page, limit *int
	if err := runtime.BindQueryParameter("form", true, false, "page", query, &page); err != nil {
		return request.Request{}, fmt.Errorf("%w: page: %w", domain.ErrInvalidPagination, err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", query, &limit); err != nil {
		return request.Request{}, fmt.Errorf("%w: limit: %w", domain.ErrInvalidPagination, err)
	}

	opts := []request.Option{
		request.WithFields(query.Get("fields")),
		request.WithMode(query.Get("match")),
		request.WithSort(parseSort(query.Get("sort"))),
	}
	if raw := query.Get("filter"); raw != "" {
		expr, err := parseFilter(raw)
		if err != nil {
			return request.Request{}, err
		}
		opts = append(opts, request.WithFilters(expr))
	}

	req, err := request.New(query.Get("q"), derefInt(page, request.DefaultPage), derefInt(limit, s.defaultLimit), opts...)
	if err != nil {
		return request.Request{}, err
	}
	if err := req.CheckLimit(s.maxLimit); err != nil {
		return request.Request{}, err
	}
	return req, nil
}

// errBadFilter marks a filter parameter that is not a flat JSON object.
var errBadFilter = errors.New("filter must be a JSON object of scalar values")

// parseFilter decodes {"key":"value",...}. Numbers and booleans are
// accepted and compared by their text form.
func parseFilter(raw string) (filter.Expression, error) {
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return filter.Expression{}, fmt.Errorf("%w: %w", errBadFilter, err)
	}
	values := make(map[string]string, len(m))
	for k, v := range m {
		switch v := v.(type) {
		case string:
			values[k] = v
		case float64, bool:
			values[k] = fmt.Sprint(v)
		case nil:
		default:
			return filter.Expression{}, fmt.Errorf("%w: %q", errBadFilter, k)
		}
	}
	expr, err := filter.FromMap(values)
	if err != nil {
		return filter.Expression{}, fmt.Errorf("%w: %w", errBadFilter, err)
	}
	return expr, nil
}

// parseSort accepts {"field":"ASC|DESC"} or a bare field name. With several
// keys the lexically first wins. Anything unreadable means default order.
func parseSort(raw string) request.Sort {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return request.Sort{}
	}
	if !strings.HasPrefix(raw, "{") {
		return request.NewSort(raw, "")
	}

	var m map[string]string
	if err := json.Unmarshal([]byte(raw), &m); err != nil || len(m) == 0 {
		return request.Sort{}
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return request.NewSort(keys[0], m[keys[0]])
}

func searchResponse(p result.Page) SearchResponse {
	m := p.Meta()
	return SearchResponse{
		Items: p.Items(),
		Meta: MetaResponse{
			TotalItems:   m.TotalItems,
			ItemCount:    m.ItemCount,
			ItemsPerPage: m.ItemsPerPage,
			TotalPages:   m.TotalPages,
			CurrentPage:  m.CurrentPage,
		},
	}
}

func derefInt(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-safe message without exposing internals.
func safeDomainMessage(err error) string {
	var pe *domain.InvalidPaginationError
	if errors.As(err, &pe) {
		return pe.Error()
	}
	sentinels := []error{
		domain.ErrInvalidPagination,
		domain.ErrUnknownEntity,
		domain.ErrSearchExecution,
		domain.ErrEnrichment,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	if errors.Is(err, errBadFilter) {
		log.Debug("bad filter", zap.Error(err))
		writeError(w, http.StatusBadRequest, CodeBadRequest, errBadFilter.Error())
		return
	}

	msg := safeDomainMessage(err)
	if errors.Is(err, domain.ErrSearchExecution) || errors.Is(err, domain.ErrEnrichment) {
		log.Error("search failed", zap.Error(err))
	} else {
		log.Warn("domain error", zap.Error(err))
	}
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
