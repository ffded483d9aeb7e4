package comparison

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler provides HTTP handlers for multi-ticker comparison.
type Handler struct {
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new comparison handler.
func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "comparison").Logger(),
	}
}

// RegisterRoutes registers comparison routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/comparison", func(r chi.Router) {
		r.Get("/", h.handleCompare)
	})
}

// handleCompare handles GET /api/comparison?tickers=AAPL,MSFT,SPY
func (h *Handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("tickers")
	tickers := strings.Split(raw, ",")

	result, err := h.service.Compare(r.Context(), tickers)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoTickers), errors.Is(err, ErrTooManyTickers):
			h.writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.log.Error().Err(err).Msg("Comparison failed")
			h.writeError(w, http.StatusInternalServerError, "comparison failed")
		}
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
