package portfolio

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ariel-pastor/proyecto-jubilacion/internal/domain"
	"github.com/ariel-pastor/proyecto-jubilacion/internal/events"
)

// Handler handles portfolio HTTP requests
type Handler struct {
	store      *Store
	aggregator *Aggregator
	events     *events.Manager
	log        zerolog.Logger
}

// NewHandler creates a new portfolio handler
func NewHandler(store *Store, aggregator *Aggregator, eventManager *events.Manager, log zerolog.Logger) *Handler {
	return &Handler{
		store:      store,
		aggregator: aggregator,
		events:     eventManager,
		log:        log.With().Str("handler", "portfolio").Logger(),
	}
}

// RegisterRoutes mounts the portfolio routes on the given router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/purchases", h.handleListPurchases)
	r.Post("/purchases", h.handleRegisterPurchase)
	r.Put("/purchases/{index}", h.handleUpdatePurchase)
	r.Delete("/purchases/{index}", h.handleDeletePurchase)
	r.Get("/status", h.handleStatus)
	r.Get("/summary", h.handleSummary)
}

// handleListPurchases returns all registered purchases in insertion order
func (h *Handler) handleListPurchases(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.store.Load())
}

// registerPurchaseRequest is the POST /purchases payload
type registerPurchaseRequest struct {
	Asset    string  `json:"asset"`
	Quantity float64 `json:"quantity"`
	Amount   float64 `json:"amount"`
}

// handleRegisterPurchase registers a new purchase dated today
func (h *Handler) handleRegisterPurchase(w http.ResponseWriter, r *http.Request) {
	var req registerPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	asset, err := domain.ParseAsset(req.Asset)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	purchase := Purchase{
		Date:     time.Now().Format("2006-01-02"),
		Asset:    asset,
		Quantity: req.Quantity,
		Amount:   req.Amount,
	}

	if err := purchase.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.Add(purchase); err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.events.Emit(events.PurchaseRegistered, "portfolio", map[string]interface{}{
		"asset":    string(purchase.Asset),
		"quantity": purchase.Quantity,
		"amount":   purchase.Amount,
	})

	h.writeJSON(w, http.StatusCreated, purchase)
}

// updatePurchaseRequest is the PUT /purchases/{index} payload
type updatePurchaseRequest struct {
	Quantity float64 `json:"quantity"`
	Amount   float64 `json:"amount"`
}

// handleUpdatePurchase modifies the quantity and amount of a purchase
func (h *Handler) handleUpdatePurchase(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid purchase index")
		return
	}

	var req updatePurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.store.Update(index, req.Quantity, req.Amount)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.events.Emit(events.PurchaseModified, "portfolio", map[string]interface{}{
		"index":    index,
		"asset":    string(updated.Asset),
		"quantity": updated.Quantity,
		"amount":   updated.Amount,
	})

	h.writeJSON(w, http.StatusOK, updated)
}

// handleDeletePurchase removes a purchase by index
func (h *Handler) handleDeletePurchase(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid purchase index")
		return
	}

	removed, err := h.store.Remove(index)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.events.Emit(events.PurchaseDeleted, "portfolio", map[string]interface{}{
		"index": index,
		"asset": string(removed.Asset),
		"date":  removed.Date,
	})

	h.writeJSON(w, http.StatusOK, removed)
}

// handleStatus returns the current per-asset investment metrics
func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	metrics := h.aggregator.ByAsset(h.store.Load())
	h.writeJSON(w, http.StatusOK, metrics)
}

// handleSummary returns the portfolio-level totals
func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	totals := h.aggregator.Total(h.store.Load())
	h.writeJSON(w, http.StatusOK, totals)
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
