package charts

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/perfscope/perfscope/internal/domain"
	"github.com/perfscope/perfscope/internal/modules/comparison"
	"github.com/perfscope/perfscope/internal/modules/historical"
	"github.com/perfscope/perfscope/internal/modules/performance"
)

// Handler serves ready-to-render chart payloads for the two analysis pages.
type Handler struct {
	charts            *Service
	historicalService *historical.Service
	comparisonService *comparison.Service
	log               zerolog.Logger
}

// NewHandler creates a new charts handler.
func NewHandler(charts *Service, hist *historical.Service, comp *comparison.Service, log zerolog.Logger) *Handler {
	return &Handler{
		charts:            charts,
		historicalService: hist,
		comparisonService: comp,
		log:               log.With().Str("handler", "charts").Logger(),
	}
}

// RegisterRoutes registers chart payload routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/charts", func(r chi.Router) {
		r.Get("/historical/{ticker}", h.handleHistoricalChart)
		r.Get("/comparison", h.handleComparisonChart)
	})
}

// handleHistoricalChart handles GET /api/charts/historical/{ticker}?start_year=YYYY
func (h *Handler) handleHistoricalChart(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	startYear := 0
	if raw := r.URL.Query().Get("start_year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "start_year must be a year")
			return
		}
		startYear = parsed
	}
	if startYear == 0 {
		startYear = h.historicalService.DefaultStartYear()
	}

	analysis, err := h.historicalService.Analyze(r.Context(), ticker, startYear)
	if err != nil {
		h.writeAnalysisError(w, ticker, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"chart":    h.charts.HistoricalChart(analysis),
		"summary":  analysis.Summary,
		"warnings": analysis.Warnings,
	})
}

// handleComparisonChart handles GET /api/charts/comparison?tickers=AAPL,MSFT
func (h *Handler) handleComparisonChart(w http.ResponseWriter, r *http.Request) {
	tickers := strings.Split(r.URL.Query().Get("tickers"), ",")

	result, err := h.comparisonService.Compare(r.Context(), tickers)
	if err != nil {
		switch {
		case errors.Is(err, comparison.ErrNoTickers), errors.Is(err, comparison.ErrTooManyTickers):
			h.writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.log.Error().Err(err).Msg("Comparison failed")
			h.writeError(w, http.StatusInternalServerError, "comparison failed")
		}
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"chart":    h.charts.ComparisonChart(result),
		"table":    result.Table,
		"warnings": result.Set.Warnings,
		"failures": result.Failures,
	})
}

func (h *Handler) writeAnalysisError(w http.ResponseWriter, ticker string, err error) {
	var fetchErr *domain.FetchError
	switch {
	case errors.Is(err, historical.ErrInvalidStartYear):
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
