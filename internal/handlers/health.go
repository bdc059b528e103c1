package handlers

import (
	"context"
	"net/http"
	"time"

	"daylog/internal/contextutil"
	"daylog/internal/service"
)

// Check results.
const (
	checkOK            = "ok"
	checkError         = "error"
	checkNotConfigured = "not_configured"
)

// Pinger reports whether the record store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports whether the journal can serve requests.
type HealthHandler struct {
	store   Pinger
	journal service.JournalService
	timeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(store Pinger, journal service.JournalService) *HealthHandler {
	return &HealthHandler{
		store:   store,
		journal: journal,
		timeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
//
// swagger:model HealthResponse
type HealthResponse struct {
	// "healthy" or "unhealthy"
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
	Issues    []string          `json:"issues,omitempty"`
}

// ServeHTTP handles GET /api/health.
//
// The store is the only critical dependency. A missing vault or health data
// provider only disables the features that need it, so both are reported
// without failing the check.
//
// swagger:route GET /api/health healthCheck
//
// responses:
//
//	'200':
//	  schema:
//	    "$ref": "#/definitions/HealthResponse"
//	'503':
//	  schema:
//	    "$ref": "#/definitions/HealthResponse"
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	pingCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    map[string]string{"store": checkOK, "vault": checkOK},
	}
	status := http.StatusOK

	if err := h.store.Ping(pingCtx); err != nil {
		logger.WarnContext(ctx, "store health check failed", "error", err)
		resp.Checks["store"] = checkError
		resp.Issues = append(resp.Issues, "store_unavailable")
		resp.Status = "unhealthy"
		status = http.StatusServiceUnavailable
	}
	if !h.journal.VaultStatus().Configured {
		resp.Checks["vault"] = checkNotConfigured
	}

	writeJSON(w, ctx, status, resp)
}
