// Package handler exposes the JSON HTTP surface for the wrapped engine.
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"sound-rewind/internal/domain"
)

// APIHandler handles the JSON API routes
type APIHandler struct {
	wrappedService domain.WrappedService
	accountService domain.AccountService
	syncService    domain.SyncService
}

// NewAPIHandler creates a new APIHandler
func NewAPIHandler(
	wrappedService domain.WrappedService,
	accountService domain.AccountService,
	syncService domain.SyncService,
) *APIHandler {
	return &APIHandler{
		wrappedService: wrappedService,
		accountService: accountService,
		syncService:    syncService,
	}
}

// RegisterRoutes attaches the API routes to the mux.
func (h *APIHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/accounts", h.HandleListAccounts)
	mux.HandleFunc("GET /api/accounts/{id}", h.HandleGetAccount)
	mux.HandleFunc("GET /api/accounts/{id}/wrapped", h.HandleGetWrapped)
	mux.HandleFunc("POST /api/accounts/{id}/wrapped/refresh", h.HandleRefreshWrapped)
	mux.HandleFunc("POST /api/accounts/{id}/sync", h.HandleSyncAccount)
	mux.HandleFunc("GET /healthz", h.HandleHealth)
}

// HandleListAccounts lists registered accounts
// GET /api/accounts
func (h *APIHandler) HandleListAccounts(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	accounts, err := h.accountService.ListAccounts(r.Context(), limit)
	if err != nil {
		log.Printf("Error listing accounts: %v", err)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"accounts": accounts})
}

// HandleGetAccount returns one account
// GET /api/accounts/:id
func (h *APIHandler) HandleGetAccount(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "account ID is required")
		return
	}

	account, err := h.accountService.GetAccount(r.Context(), id)
	if err != nil {
		log.Printf("Error getting account %s: %v", id, err)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// HandleGetWrapped returns the wrapped summary for an account, serving a
// cached copy when one is fresh.
// GET /api/accounts/:id/wrapped
func (h *APIHandler) HandleGetWrapped(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "account ID is required")
		return
	}

	summary, err := h.wrappedService.GetWrappedSummary(r.Context(), id)
	if err != nil {
		log.Printf("Error getting wrapped summary for %s: %v", id, err)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// HandleRefreshWrapped forces recomputation of the wrapped summary
// POST /api/accounts/:id/wrapped/refresh
func (h *APIHandler) HandleRefreshWrapped(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "account ID is required")
		return
	}

	summary, err := h.wrappedService.RefreshWrappedSummary(r.Context(), id)
	if err != nil {
		log.Printf("Error refreshing wrapped summary for %s: %v", id, err)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// HandleSyncAccount pulls fresh snapshot data from the upstream platform
// POST /api/accounts/:id/sync
func (h *APIHandler) HandleSyncAccount(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "account ID is required")
		return
	}

	if err := h.syncService.SyncAccount(r.Context(), id); err != nil {
		log.Printf("Error syncing account %s: %v", id, err)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "synced"})
}

// HandleHealth is the liveness probe
// GET /healthz
func (h *APIHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeDomainError maps sentinel domain errors onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		writeError(w, http.StatusBadGateway, "upstream platform unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
