package historical

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/perfscope/perfscope/internal/domain"
	"github.com/perfscope/perfscope/internal/modules/performance"
)

// defaultLookbackYears is used when the request omits start_year.
const defaultLookbackYears = 10

// Handler provides HTTP handlers for historical YTD analysis.
type Handler struct {
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new historical handler.
func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "historical").Logger(),
	}
}

// RegisterRoutes registers historical analysis routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/historical", func(r chi.Router) {
		r.Get("/{ticker}", h.handleAnalyze)
	})
}

// handleAnalyze handles GET /api/historical/{ticker}?start_year=YYYY
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if ticker == "" {
		h.writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	startYear := h.service.now().Year() - defaultLookbackYears
	if raw := r.URL.Query().Get("start_year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "start_year must be a year")
			return
		}
		startYear = parsed
	}

	analysis, err := h.service.Analyze(r.Context(), ticker, startYear)
	if err != nil {
		var fetchErr *domain.FetchError
		switch {
		case errors.Is(err, ErrInvalidStartYear):
			h.writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, performance.ErrEmptySeries):
			h.writeError(w, http.StatusNotFound, "no data available")
		case errors.As(err, &fetchErr):
			h.log.Error().Err(err).Str("ticker", ticker).Msg("Provider fetch failed")
			h.writeError(w, http.StatusBadGateway, fetchErr.Error())
		default:
			h.log.Error().Err(err).Str("ticker", ticker).Msg("Analysis failed")
			h.writeError(w, http.StatusInternalServerError, "analysis failed")
		}
		return
	}

	h.writeJSON(w, http.StatusOK, analysis)
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
