package handler

import (
	"fmt"
	"net/http"

	"github.com/honeynil/CreatorMonetizationService/internal/fees"
	"github.com/honeynil/CreatorMonetizationService/internal/models"
	service "github.com/honeynil/CreatorMonetizationService/internal/services"
	pkgerrors "github.com/honeynil/CreatorMonetizationService/pkg/errors"
)

type createSubscriptionRequest struct {
	CreatorID     int64               `json:"creator_id"`
	Price         string              `json:"price,omitempty"`
	BillingCycle  models.BillingCycle `json:"billing_cycle"`
	PaymentMethod string              `json:"payment_method"`
}

func (h *Handler) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req createSubscriptionRequest
	if !h.decode(w, r, &req) {
		return
	}

	create := service.CreateSubscriptionRequest{
		SubscriberID:     userID,
		CreatorID:        req.CreatorID,
		BillingCycle:     req.BillingCycle,
		PaymentMethodRef: req.PaymentMethod,
	}
	if req.Price != "" {
		price, err := fees.ParseAmount(req.Price)
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		create.Price = &price
	}

	sub, err := h.subscriptions.Create(r.Context(), create)
	if err != nil {
		h.writeErrorResponse(w, r, err, errorResponse{Subscription: sub})
		return
	}
	h.writeJSON(w, http.StatusCreated, sub)
}

// ListSubscriptions lists the caller's subscriptions, or with ?as=creator the
// subscriptions held on the caller.
func (h *Handler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	filter, err := subscriptionFilter(r)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	list := h.subscriptions.ListAsSubscriber
	switch r.URL.Query().Get("as") {
	case "", "subscriber":
	case "creator":
		list = h.subscriptions.ListAsCreator
	default:
		h.writeServiceError(w, r, fmt.Errorf("%w: as must be subscriber or creator", pkgerrors.ErrInvalidInput))
		return
	}

	page, err := list(r.Context(), userID, filter)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, page)
}

func subscriptionFilter(r *http.Request) (models.SubscriptionFilter, error) {
	q := r.URL.Query()
	var filter models.SubscriptionFilter

	switch raw := q.Get("status"); raw {
	case "":
	case "expired":
		filter.Expired = true
	default:
		status, ok := models.ParseSubscriptionStatus(raw)
		if !ok {
			return filter, fmt.Errorf("%w: %q", pkgerrors.ErrInvalidSubscriptionStatus, raw)
		}
		filter.Status = status
	}
	filter.SortBy = q.Get("sort")

	var err error
	if filter.Page, err = queryInt(r, "page"); err != nil {
		return filter, err
	}
	if filter.PerPage, err = queryInt(r, "per_page"); err != nil {
		return filter, err
	}
	return filter, nil
}

func (h *Handler) GetSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	subscriptionID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	view, err := h.subscriptions.Get(r.Context(), subscriptionID, userID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) UpdateBillingCycle(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	subscriptionID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		BillingCycle models.BillingCycle `json:"billing_cycle"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	sub, err := h.subscriptions.UpdateBillingCycle(r.Context(), subscriptionID, userID, req.BillingCycle)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sub)
}

func (h *Handler) CancelSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	subscriptionID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	sub, err := h.subscriptions.Cancel(r.Context(), subscriptionID, userID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sub)
}

func (h *Handler) ReactivateSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	subscriptionID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	sub, err := h.subscriptions.Reactivate(r.Context(), subscriptionID, userID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sub)
}

func (h *Handler) SubscriptionStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	stats, err := h.subscriptions.CreatorStats(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}
