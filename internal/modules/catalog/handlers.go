package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler serves the curated ticker catalog.
type Handler struct {
	log zerolog.Logger
}

// NewHandler creates a new catalog handler.
func NewHandler(log zerolog.Logger) *Handler {
	return &Handler{log: log.With().Str("handler", "catalog").Logger()}
}

// RegisterRoutes registers catalog routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/catalog", func(r chi.Router) {
		r.Get("/tickers", h.handleTickers)
	})
}

// handleTickers handles GET /api/catalog/tickers
func (h *Handler) handleTickers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"groups": Groups()}); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
