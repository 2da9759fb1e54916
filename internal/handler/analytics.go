package handler

import (
	"fmt"
	"net/http"
	"time"

	pkgerrors "github.com/honeynil/CreatorMonetizationService/pkg/errors"
)

func (h *Handler) RevenueReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	report, err := h.analytics.RevenueReport(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

// MonthlyRevenue accepts from and to as YYYY-MM; both months are included.
func (h *Handler) MonthlyRevenue(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	from, err := queryMonth(r, "from")
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	to, err := queryMonth(r, "to")
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	months, err := h.analytics.MonthlyRevenue(r.Context(), userID, from, to)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"months": months})
}

// queryMonth returns noon on the 15th of the named month so that shifting it
// into the reporting location keeps it inside the same calendar month.
func queryMonth(r *http.Request, key string) (*time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	month, err := time.Parse("2006-01", raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM", pkgerrors.ErrInvalidInput, key)
	}
	month = month.AddDate(0, 0, 14).Add(12 * time.Hour)
	return &month, nil
}

func (h *Handler) TopDocuments(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	documents, err := h.analytics.TopDocuments(r.Context(), userID, limit)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"documents": documents})
}

func (h *Handler) RefundRate(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	rate, err := h.analytics.RefundRate(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"refund_rate": rate})
}

func (h *Handler) ConversionRate(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	metrics, err := h.analytics.ConversionRate(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, metrics)
}
