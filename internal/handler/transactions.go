package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/honeynil/CreatorMonetizationService/internal/fees"
	"github.com/honeynil/CreatorMonetizationService/internal/models"
	service "github.com/honeynil/CreatorMonetizationService/internal/services"
	pkgerrors "github.com/honeynil/CreatorMonetizationService/pkg/errors"
)

type purchaseRequest struct {
	Amount         string `json:"amount"`
	IdempotencyKey string `json:"idempotency_key"`
	PaymentMethod  string `json:"payment_method"`
}

func (h *Handler) PurchaseDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	documentID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req purchaseRequest
	if !h.decode(w, r, &req) {
		return
	}
	amount, err := fees.ParseAmount(req.Amount)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	tx, err := h.ledger.InitiatePurchase(r.Context(), service.PurchaseRequest{
		BuyerID:          userID,
		DocumentID:       documentID,
		Amount:           amount,
		IdempotencyKey:   req.IdempotencyKey,
		PaymentMethodRef: req.PaymentMethod,
	})
	if err != nil {
		h.writeErrorResponse(w, r, err, errorResponse{Transaction: tx})
		return
	}
	h.writeJSON(w, http.StatusCreated, tx)
}

type tipRequest struct {
	RecipientID    int64               `json:"recipient_id"`
	Amount         string              `json:"amount"`
	IdempotencyKey string              `json:"idempotency_key"`
	PaymentMethod  string              `json:"payment_method"`
	Tippable       *models.TippableRef `json:"tippable,omitempty"`
}

func (h *Handler) SendTip(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req tipRequest
	if !h.decode(w, r, &req) {
		return
	}
	amount, err := fees.ParseAmount(req.Amount)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	tx, err := h.ledger.InitiateTip(r.Context(), service.TipRequest{
		SenderID:         userID,
		RecipientID:      req.RecipientID,
		Amount:           amount,
		IdempotencyKey:   req.IdempotencyKey,
		PaymentMethodRef: req.PaymentMethod,
		Tippable:         req.Tippable,
	})
	if err != nil {
		h.writeErrorResponse(w, r, err, errorResponse{Transaction: tx})
		return
	}
	h.writeJSON(w, http.StatusCreated, tx)
}

func (h *Handler) ResumePending(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req struct {
		PaymentMethod string `json:"payment_method"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	tx, err := h.ledger.ResumePending(r.Context(), mux.Vars(r)["ref"], userID, req.PaymentMethod)
	if err != nil {
		h.writeErrorResponse(w, r, err, errorResponse{Transaction: tx})
		return
	}
	h.writeJSON(w, http.StatusOK, tx)
}

func (h *Handler) RefundTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	transactionID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if r.ContentLength != 0 && !h.decode(w, r, &req) {
		return
	}

	tx, err := h.ledger.Refund(r.Context(), transactionID, userID, req.Reason)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, tx)
}

func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	transactionID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	tx, err := h.ledger.GetTransaction(r.Context(), transactionID, userID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, tx)
}

func (h *Handler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	h.listTransactions(w, r, h.ledger.ListPurchases)
}

func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	h.listTransactions(w, r, h.ledger.ListSales)
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request, list func(context.Context, int64, models.TransactionFilter) (*service.TransactionPage, error)) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	filter, err := transactionFilter(r)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	page, err := list(r.Context(), userID, filter)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, page)
}

// transactionFilter reads status, type, from, to (YYYY-MM-DD, inclusive),
// sort, page and per_page from the query string.
func transactionFilter(r *http.Request) (models.TransactionFilter, error) {
	q := r.URL.Query()
	var filter models.TransactionFilter

	if raw := q.Get("status"); raw != "" {
		filter.Status = models.StatusType(raw)
		if !filter.Status.IsValid() {
			return filter, fmt.Errorf("%w: %q", pkgerrors.ErrInvalidTransactionStatus, raw)
		}
	}
	if raw := q.Get("type"); raw != "" {
		filter.Type = models.TransactionType(raw)
		if !filter.Type.IsValid() {
			return filter, fmt.Errorf("%w: %q", pkgerrors.ErrInvalidTransactionType, raw)
		}
	}
	if raw := q.Get("from"); raw != "" {
		from, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return filter, fmt.Errorf("%w: from must be YYYY-MM-DD", pkgerrors.ErrInvalidInput)
		}
		filter.From = &from
	}
	if raw := q.Get("to"); raw != "" {
		to, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return filter, fmt.Errorf("%w: to must be YYYY-MM-DD", pkgerrors.ErrInvalidInput)
		}
		to = to.AddDate(0, 0, 1)
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return filter, fmt.Errorf("%w: from must not be after to", pkgerrors.ErrInvalidInput)
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
