package opportunities

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler handles opportunity HTTP requests
type Handler struct {
	evaluator *Evaluator
	log       zerolog.Logger
}

// NewHandler creates a new opportunities handler
func NewHandler(evaluator *Evaluator, log zerolog.Logger) *Handler {
	return &Handler{
		evaluator: evaluator,
		log:       log.With().Str("handler", "opportunities").Logger(),
	}
}

// RegisterRoutes mounts the opportunity routes on the given router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleEvaluateAll)
}

// handleEvaluateAll runs a full evaluation cycle and returns the
// classification table in canonical asset order
func (h *Handler) handleEvaluateAll(w http.ResponseWriter, r *http.Request) {
	results := h.evaluator.EvaluateAll()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(results); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}
