package history

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ValueSource provides the current total portfolio value
type ValueSource interface {
	CurrentTotalValue() float64
}

// Handler handles history HTTP requests
type Handler struct {
	recorder *Recorder
	value    ValueSource
	log      zerolog.Logger
}

// NewHandler creates a new history handler
func NewHandler(recorder *Recorder, value ValueSource, log zerolog.Logger) *Handler {
	return &Handler{
		recorder: recorder,
		value:    value,
		log:      log.With().Str("handler", "history").Logger(),
	}
}

// RegisterRoutes mounts the history routes on the given router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Post("/snapshot", h.handleSnapshot)
	r.Get("/trend", h.handleTrend)
}

// handleList returns the full ordered snapshot sequence
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.recorder.All())
}

// handleSnapshot values the portfolio now and appends a snapshot
func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	totalValue := h.value.CurrentTotalValue()

	if err := h.recorder.Record(totalValue); err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]float64{"value": totalValue})
}

// handleTrend returns trend statistics over the snapshot sequence
func (h *Handler) handleTrend(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.recorder.Trend())
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeError writes a JSON error response
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
