package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/honeynil/CreatorMonetizationService/internal/gateway"
	"github.com/honeynil/CreatorMonetizationService/internal/infrastructure/auth"
	"github.com/honeynil/CreatorMonetizationService/internal/models"
	service "github.com/honeynil/CreatorMonetizationService/internal/services"
	pkgerrors "github.com/honeynil/CreatorMonetizationService/pkg/errors"
)

type Handler struct {
	ledger        service.LedgerService
	subscriptions service.SubscriptionService
	analytics     service.AnalyticsService
	events        service.ProcessorEventService
	webhooks      *gateway.WebhookVerifier
}

func NewHandler(
	ledger service.LedgerService,
	subscriptions service.SubscriptionService,
	analytics service.AnalyticsService,
	events service.ProcessorEventService,
	webhooks *gateway.WebhookVerifier,
) *Handler {
	return &Handler{
		ledger:        ledger,
		subscriptions: subscriptions,
		analytics:     analytics,
		events:        events,
		webhooks:      webhooks,
	}
}

// errorResponse carries the record a declined payment left behind, if any.
type errorResponse struct {
	Error        string               `json:"error"`
	Transaction  *models.Transaction  `json:"transaction,omitempty"`
	Subscription *models.Subscription `json:"subscription,omitempty"`
}

func (h *Handler) RegisterPublicRoutes(r *mux.Router) {
	r.HandleFunc("/webhooks/processor", h.ProcessorWebhook).Methods("POST")
}

func (h *Handler) RegisterProtectedRoutes(r *mux.Router) {
	r.HandleFunc("/documents/{id:[0-9]+}/purchase", h.PurchaseDocument).Methods("POST")
	r.HandleFunc("/tips", h.SendTip).Methods("POST")

	r.HandleFunc("/transactions/purchases", h.ListPurchases).Methods("GET")
	r.HandleFunc("/transactions/sales", h.ListSales).Methods("GET")
	r.HandleFunc("/transactions/{id:[0-9]+}", h.GetTransaction).Methods("GET")
	r.HandleFunc("/transactions/{id:[0-9]+}/refund", h.RefundTransaction).Methods("POST")
	r.HandleFunc("/transactions/pending/{ref}/resume", h.ResumePending).Methods("POST")

	r.HandleFunc("/subscriptions", h.CreateSubscription).Methods("POST")
	r.HandleFunc("/subscriptions", h.ListSubscriptions).Methods("GET")
	r.HandleFunc("/subscriptions/stats", h.SubscriptionStats).Methods("GET")
	r.HandleFunc("/subscriptions/{id:[0-9]+}", h.GetSubscription).Methods("GET")
	r.HandleFunc("/subscriptions/{id:[0-9]+}", h.UpdateBillingCycle).Methods("PATCH")
	r.HandleFunc("/subscriptions/{id:[0-9]+}/cancel", h.CancelSubscription).Methods("POST")
	r.HandleFunc("/subscriptions/{id:[0-9]+}/reactivate", h.ReactivateSubscription).Methods("POST")

	r.HandleFunc("/analytics/revenue", h.RevenueReport).Methods("GET")
	r.HandleFunc("/analytics/monthly", h.MonthlyRevenue).Methods("GET")
	r.HandleFunc("/analytics/top-documents", h.TopDocuments).Methods("GET")
	r.HandleFunc("/analytics/refund-rate", h.RefundRate).Methods("GET")
	r.HandleFunc("/analytics/conversion", h.ConversionRate).Methods("GET")
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	h.writeErrorResponse(w, r, err, errorResponse{})
}

// writeErrorResponse maps the error taxonomy onto HTTP statuses. Unknown
// errors are logged and reported without detail.
func (h *Handler) writeErrorResponse(w http.ResponseWriter, r *http.Request, err error, resp errorResponse) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		h.writeError(w, status, errors.New("internal error"))
		return
	}
	resp.Error = err.Error()
	h.writeJSON(w, status, resp)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, pkgerrors.ErrInvalidInput),
		errors.Is(err, pkgerrors.ErrInvalidBillingCycle),
		errors.Is(err, pkgerrors.ErrInvalidTransactionType),
		errors.Is(err, pkgerrors.ErrInvalidTransactionStatus),
		errors.Is(err, pkgerrors.ErrInvalidSubscriptionStatus),
		errors.Is(err, pkgerrors.ErrInvalidWebhookPayload):
		return http.StatusBadRequest
	case errors.Is(err, pkgerrors.ErrInvalidWebhookSignature):
		return http.StatusUnauthorized
	case errors.Is(err, pkgerrors.ErrPaymentDeclined):
		return http.StatusPaymentRequired
	case errors.Is(err, pkgerrors.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, pkgerrors.ErrTransactionNotFound),
		errors.Is(err, pkgerrors.ErrSubscriptionNotFound),
		errors.Is(err, pkgerrors.ErrDocumentNotFound),
		errors.Is(err, pkgerrors.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, pkgerrors.ErrDuplicateTransaction),
		errors.Is(err, pkgerrors.ErrAlreadySubscribed),
		errors.Is(err, pkgerrors.ErrAlreadyRefunded):
		return http.StatusConflict
	case errors.Is(err, pkgerrors.ErrInvalidAmount),
		errors.Is(err, pkgerrors.ErrSelfTransactionNotAllowed),
		errors.Is(err, pkgerrors.ErrNotACreator),
		errors.Is(err, pkgerrors.ErrNotRefundable),
		errors.Is(err, pkgerrors.ErrNotCancelled),
		errors.Is(err, pkgerrors.ErrInvalidStateTransition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, pkgerrors.ErrGatewayUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, errors.New("user not authenticated"))
		return 0, false
	}
	return userID, true
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("%w: invalid id", pkgerrors.ErrInvalidInput))
		return 0, false
	}
	return id, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("%w: malformed body", pkgerrors.ErrInvalidInput))
		return false
	}
	return true
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", pkgerrors.ErrInvalidInput, key)
	}
	return v, nil
}
