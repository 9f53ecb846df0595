// Package httpapi is the chi HTTP boundary. Handlers decode requests,
// call the usecase services, and map sentinel domain errors to statuses
// through an ordered handler chain.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/chop-n-shop/pantry/internal/domain"
	groclistuc "github.com/chop-n-shop/pantry/internal/usecase/groclist"
	healthuc "github.com/chop-n-shop/pantry/internal/usecase/health"
	recipeuc "github.com/chop-n-shop/pantry/internal/usecase/recipe"
	selectionuc "github.com/chop-n-shop/pantry/internal/usecase/selection"
	useruc "github.com/chop-n-shop/pantry/internal/usecase/user"
)

// Error codes returned to clients.
const (
	codeBadRequest        = "bad_request"
	codeValidationFailed  = "validation_failed"
	codeNotFound          = "not_found"
	codeRecipeNotFound    = "recipe_not_found"
	codeListNotFound      = "list_not_found"
	codeItemNotInList     = "item_not_in_list"
	codeAlreadyExists     = "already_exists"
	codeUnauthorized      = "unauthorized"
	codeEmbeddingProvider = "embedding_provider_error"
	codeInternalError     = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the usecase services behind the HTTP surface.
type Server struct {
	users         *useruc.Service
	recipes       *recipeuc.Service
	lists         *groclistuc.Service
	selection     *selectionuc.Service
	catalog       CatalogReader
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	users *useruc.Service,
	recipes *recipeuc.Service,
	lists *groclistuc.Service,
	selection *selectionuc.Service,
	catalog CatalogReader,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		users:     users,
		recipes:   recipes,
		lists:     lists,
		selection: selection,
		catalog:   catalog,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrRecipeNotFound, http.StatusNotFound, codeRecipeNotFound),
		sentinelHandler(domain.ErrListNotFound, http.StatusNotFound, codeListNotFound),
		sentinelHandler(domain.ErrItemNotInList, http.StatusNotFound, codeItemNotInList),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusBadRequest, codeAlreadyExists),
		sentinelHandler(domain.ErrInvalidCredentials, http.StatusUnauthorized, codeUnauthorized),
		sentinelHandler(domain.ErrNoRequestTerms, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingProvider),
	}
	return s
}

// handleItems handles GET /items.
func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.catalog.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	type itemResponse struct {
		ItemName string  `json:"item_name"`
		Price    float64 `json:"price"`
		Store    string  `json:"store"`
		Category string  `json:"category,omitempty"`
	}
	out := make([]itemResponse, len(items))
	for i, item := range items {
		out[i] = itemResponse{
			ItemName: item.Name,
			Price:    item.Price,
			Store:    item.Store,
			Category: item.Category,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// handleStores handles GET /stores.
func (s *Server) handleStores(w http.ResponseWriter, r *http.Request) {
	stores, err := s.catalog.Stores(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stores": stores})
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status":     report.Status,
		"checks":     report.Checks,
		"index_size": report.IndexSize,
	})
}

// handleMetrics handles GET /metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client
// without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrRecipeNotFound,
		domain.ErrListNotFound,
		domain.ErrItemNotInList,
		domain.ErrNotFound,
		domain.ErrAlreadyExists,
		domain.ErrInvalidCredentials,
		domain.ErrNoRequestTerms,
		domain.ErrEmbeddingProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
