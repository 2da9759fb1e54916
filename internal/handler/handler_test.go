package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/honeynil/CreatorMonetizationService/internal/clock"
	"github.com/honeynil/CreatorMonetizationService/internal/gateway"
	"github.com/honeynil/CreatorMonetizationService/internal/infrastructure/auth"
	"github.com/honeynil/CreatorMonetizationService/internal/models"
	service "github.com/honeynil/CreatorMonetizationService/internal/services"
	servicemocks "github.com/honeynil/CreatorMonetizationService/internal/services/mocks"
	pkgerrors "github.com/honeynil/CreatorMonetizationService/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const webhookSecret = "whsec_test"

var fixedNow = time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC)

type handlerFixture struct {
	ledger        *servicemocks.MockLedgerService
	subscriptions *servicemocks.MockSubscriptionService
	analytics     *servicemocks.MockAnalyticsService
	events        *servicemocks.MockProcessorEventService
	router        *mux.Router
}

// newHandlerFixture mounts the protected routes behind a stub that
// authenticates every request as userID.
func newHandlerFixture(t *testing.T, userID int64) *handlerFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &handlerFixture{
		ledger:        servicemocks.NewMockLedgerService(ctrl),
		subscriptions: servicemocks.NewMockSubscriptionService(ctrl),
		analytics:     servicemocks.NewMockAnalyticsService(ctrl),
		events:        servicemocks.NewMockProcessorEventService(ctrl),
		router:        mux.NewRouter(),
	}
	h := NewHandler(
		f.ledger,
		f.subscriptions,
		f.analytics,
		f.events,
		gateway.NewWebhookVerifier(webhookSecret, time.Minute, clock.NewFakeClock(fixedNow)),
	)
	h.RegisterPublicRoutes(f.router)

	protected := f.router.PathPrefix("/api").Subrouter()
	protected.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	})
	h.RegisterProtectedRoutes(protected)
	return f
}

func (f *handlerFixture) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandler_PurchaseDocument(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		f := newHandlerFixture(t, 1)
		f.ledger.EXPECT().InitiatePurchase(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req service.PurchaseRequest) (*models.Transaction, error) {
				assert.Equal(t, int64(1), req.BuyerID)
				assert.Equal(t, int64(10), req.DocumentID)
				assert.Equal(t, "6.00", req.Amount.StringFixed(2))
				assert.Equal(t, "key-1", req.IdempotencyKey)
				assert.Equal(t, "pm_card", req.PaymentMethodRef)
				return &models.Transaction{ID: 42, Status: models.StatusSucceeded}, nil
			})

		rec := f.do(http.MethodPost, "/api/documents/10/purchase", `{"amount":"6.00","idempotency_key":"key-1","payment_method":"pm_card"}`)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, float64(42), decodeBody(t, rec)["id"])
	})

	t.Run("declined returns the failed transaction", func(t *testing.T) {
		f := newHandlerFixture(t, 1)
		f.ledger.EXPECT().InitiatePurchase(gomock.Any(), gomock.Any()).
			Return(&models.Transaction{ID: 42, Status: models.StatusFailed}, fmt.Errorf("%w: card declined", pkgerrors.ErrPaymentDeclined))

		rec := f.do(http.MethodPost, "/api/documents/10/purchase", `{"amount":"6.00","idempotency_key":"key-1"}`)
		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
		body := decodeBody(t, rec)
		require.Contains(t, body, "transaction")
		assert.Equal(t, "failed", body["transaction"].(map[string]any)["status"])
	})

	t.Run("malformed amount", func(t *testing.T) {
		f := newHandlerFixture(t, 1)

		rec := f.do(http.MethodPost, "/api/documents/10/purchase", `{"amount":"six","idempotency_key":"key-1"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		f := newHandlerFixture(t, 1)

		rec := f.do(http.MethodPost, "/api/documents/10/purchase", `{`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("storage failure hides detail", func(t *testing.T) {
		f := newHandlerFixture(t, 1)
		f.ledger.EXPECT().InitiatePurchase(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("pq: connection refused"))

		rec := f.do(http.MethodPost, "/api/documents/10/purchase", `{"amount":"6.00","idempotency_key":"key-1"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal error", decodeBody(t, rec)["error"])
		assert.NotContains(t, decodeBody(t, rec), "transaction")
	})
}

func TestHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{pkgerrors.ErrInvalidInput, http.StatusBadRequest},
		{pkgerrors.ErrInvalidWebhookSignature, http.StatusUnauthorized},
		{pkgerrors.ErrPaymentDeclined, http.StatusPaymentRequired},
		{pkgerrors.ErrUnauthorized, http.StatusForbidden},
		{pkgerrors.ErrTransactionNotFound, http.StatusNotFound},
		{pkgerrors.ErrAlreadyRefunded, http.StatusConflict},
		{pkgerrors.ErrNotRefundable, http.StatusUnprocessableEntity},
		{fmt.Errorf("wrapped: %w", pkgerrors.ErrGatewayUnavailable), http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			f := newHandlerFixture(t, 2)
			f.ledger.EXPECT().Refund(gomock.Any(), int64(42), int64(2), "").Return(nil, tc.err)

			rec := f.do(http.MethodPost, "/api/transactions/42/refund", "")
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestHandler_RefundTransaction(t *testing.T) {
	f := newHandlerFixture(t, 2)
	f.ledger.EXPECT().Refund(gomock.Any(), int64(42), int64(2), "requested_by_customer").
		Return(&models.Transaction{ID: 42, Status: models.StatusRefunded}, nil)

	rec := f.do(http.MethodPost, "/api/transactions/42/refund", `{"reason":"requested_by_customer"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "refunded", decodeBody(t, rec)["status"])
}

func TestHandler_ListSales(t *testing.T) {
	t.Run("filter from query", func(t *testing.T) {
		f := newHandlerFixture(t, 2)
		f.ledger.EXPECT().ListSales(gomock.Any(), int64(2), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, filter models.TransactionFilter) (*service.TransactionPage, error) {
				assert.Equal(t, models.StatusSucceeded, filter.Status)
				assert.Equal(t, models.TypeTip, filter.Type)
				require.NotNil(t, filter.From)
				require.NotNil(t, filter.To)
				assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), *filter.From)
				assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), *filter.To)
				assert.Equal(t, 2, filter.Page)
				assert.Equal(t, 5, filter.PerPage)
				return &service.TransactionPage{Total: 0, Page: 2, PerPage: 5}, nil
			})

		rec := f.do(http.MethodGet, "/api/transactions/sales?status=succeeded&type=tip&from=2024-01-01&to=2024-01-31&page=2&per_page=5", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newHandlerFixture(t, 2)

		rec := f.do(http.MethodGet, "/api/transactions/sales?status=settled", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("inverted dates", func(t *testing.T) {
		f := newHandlerFixture(t, 2)

		rec := f.do(http.MethodGet, "/api/transactions/sales?from=2024-02-01&to=2024-01-01", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_CreateSubscription(t *testing.T) {
	t.Run("explicit price", func(t *testing.T) {
		f := newHandlerFixture(t, 1)
		f.subscriptions.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req service.CreateSubscriptionRequest) (*models.Subscription, error) {
				assert.Equal(t, int64(1), req.SubscriberID)
				assert.Equal(t, int64(2), req.CreatorID)
				require.NotNil(t, req.Price)
				assert.Equal(t, "9.99", req.Price.StringFixed(2))
				assert.Equal(t, models.CycleYearly, req.BillingCycle)
				return &models.Subscription{ID: 5, Status: models.SubscriptionActive, MonthlyPrice: decimal.RequireFromString("9.99")}, nil
			})

		rec := f.do(http.MethodPost, "/api/subscriptions", `{"creator_id":2,"price":"9.99","billing_cycle":"yearly","payment_method":"pm_card"}`)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "active", decodeBody(t, rec)["status"])
	})

	t.Run("default price", func(t *testing.T) {
		f := newHandlerFixture(t, 1)
		f.subscriptions.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req service.CreateSubscriptionRequest) (*models.Subscription, error) {
				assert.Nil(t, req.Price)
				return nil, pkgerrors.ErrAlreadySubscribed
			})

		rec := f.do(http.MethodPost, "/api/subscriptions", `{"creator_id":2}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestHandler_ListSubscriptions(t *testing.T) {
	t.Run("as creator with expired filter", func(t *testing.T) {
		f := newHandlerFixture(t, 2)
		f.subscriptions.EXPECT().ListAsCreator(gomock.Any(), int64(2), models.SubscriptionFilter{Expired: true, SortBy: "expiring"}).
			Return(&service.SubscriptionPage{Page: 1, PerPage: 20}, nil)

		rec := f.do(http.MethodGet, "/api/subscriptions?as=creator&status=expired&sort=expiring", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("british spelling of cancelled", func(t *testing.T) {
		f := newHandlerFixture(t, 1)
		f.subscriptions.EXPECT().ListAsSubscriber(gomock.Any(), int64(1), models.SubscriptionFilter{Status: models.SubscriptionCanceled}).
			Return(&service.SubscriptionPage{Page: 1, PerPage: 20}, nil)

		rec := f.do(http.MethodGet, "/api/subscriptions?status=cancelled", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown role", func(t *testing.T) {
		f := newHandlerFixture(t, 1)

		rec := f.do(http.MethodGet, "/api/subscriptions?as=admin", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_SubscriptionLifecycle(t *testing.T) {
	t.Run("cancel", func(t *testing.T) {
		f := newHandlerFixture(t, 1)
		f.subscriptions.EXPECT().Cancel(gomock.Any(), int64(5), int64(1)).
			Return(&models.Subscription{ID: 5, Status: models.SubscriptionCanceled}, nil)

		rec := f.do(http.MethodPost, "/api/subscriptions/5/cancel", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("reactivate active", func(t *testing.T) {
		f := newHandlerFixture(t, 1)
		f.subscriptions.EXPECT().Reactivate(gomock.Any(), int64(5), int64(1)).Return(nil, pkgerrors.ErrNotCancelled)

		rec := f.do(http.MethodPost, "/api/subscriptions/5/reactivate", "")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("change billing cycle", func(t *testing.T) {
		f := newHandlerFixture(t, 1)
		f.subscriptions.EXPECT().UpdateBillingCycle(gomock.Any(), int64(5), int64(1), models.CycleQuarterly).
			Return(&models.Subscription{ID: 5, BillingCycle: models.CycleQuarterly}, nil)

		rec := f.do(http.MethodPatch, "/api/subscriptions/5", `{"billing_cycle":"quarterly"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("stats for non creator", func(t *testing.T) {
		f := newHandlerFixture(t, 1)
		f.subscriptions.EXPECT().CreatorStats(gomock.Any(), int64(1)).Return(nil, pkgerrors.ErrNotACreator)

		rec := f.do(http.MethodGet, "/api/subscriptions/stats", "")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestHandler_Analytics(t *testing.T) {
	t.Run("monthly window stays inside the named months", func(t *testing.T) {
		f := newHandlerFixture(t, 2)
		f.analytics.EXPECT().MonthlyRevenue(gomock.Any(), int64(2), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, from, to *time.Time) ([]models.MonthlyRevenue, error) {
				require.NotNil(t, from)
				require.NotNil(t, to)
				assert.Equal(t, time.November, from.Month())
				assert.Equal(t, time.January, to.Month())
				return []models.MonthlyRevenue{{Month: "2023-11", Net: decimal.Zero}}, nil
			})

		rec := f.do(http.MethodGet, "/api/analytics/monthly?from=2023-11&to=2024-01", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, decodeBody(t, rec), "months")
	})

	t.Run("malformed month", func(t *testing.T) {
		f := newHandlerFixture(t, 2)

		rec := f.do(http.MethodGet, "/api/analytics/monthly?from=2023-13", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("refund rate", func(t *testing.T) {
		f := newHandlerFixture(t, 2)
		f.analytics.EXPECT().RefundRate(gomock.Any(), int64(2)).Return(decimal.RequireFromString("33.33"), nil)

		rec := f.do(http.MethodGet, "/api/analytics/refund-rate", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "33.33", decodeBody(t, rec)["refund_rate"])
	})

	t.Run("top documents passes the limit", func(t *testing.T) {
		f := newHandlerFixture(t, 2)
		f.analytics.EXPECT().TopDocuments(gomock.Any(), int64(2), 3).Return(nil, nil)

		rec := f.do(http.MethodGet, "/api/analytics/top-documents?limit=3", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func chargePayload(t *testing.T, eventType string) []byte {
	t.Helper()
	payload, err := json.Marshal(map[string]any{
		"id":      "evt_1",
		"type":    eventType,
		"created": fixedNow.Unix(),
		"data": map[string]any{
			"object": map[string]any{
				"id":       "ch_1",
				"amount":   600,
				"metadata": map[string]string{"idempotency_key": "key-1"},
			},
		},
	})
	require.NoError(t, err)
	return payload
}

func (f *handlerFixture) deliver(payload []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/processor", strings.NewReader(string(payload)))
	req.Header.Set(gateway.SignatureHeader, signature)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_ProcessorWebhook(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		f := newHandlerFixture(t, 0)
		payload := chargePayload(t, "charge.succeeded")
		f.events.EXPECT().Publish(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, event models.ProcessorEvent) error {
				assert.Equal(t, "evt_1", event.ID)
				assert.Equal(t, models.ProcessorChargeSucceeded, event.Type)
				assert.Equal(t, "key-1", event.IdempotencyKey)
				assert.Equal(t, "6.00", event.Amount.StringFixed(2))
				return nil
			})

		rec := f.deliver(payload, gateway.SignatureHeaderValue([]byte(webhookSecret), fixedNow.Unix(), payload))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "accepted", decodeBody(t, rec)["status"])
	})

	t.Run("bad signature", func(t *testing.T) {
		f := newHandlerFixture(t, 0)
		payload := chargePayload(t, "charge.succeeded")

		rec := f.deliver(payload, gateway.SignatureHeaderValue([]byte("other"), fixedNow.Unix(), payload))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown type is ignored", func(t *testing.T) {
		f := newHandlerFixture(t, 0)
		payload := chargePayload(t, "customer.created")

		rec := f.deliver(payload, gateway.SignatureHeaderValue([]byte(webhookSecret), fixedNow.Unix(), payload))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ignored", decodeBody(t, rec)["status"])
	})

	t.Run("processor initiated charge is ignored", func(t *testing.T) {
		f := newHandlerFixture(t, 0)
		payload, err := json.Marshal(map[string]any{
			"id":      "evt_2",
			"type":    "charge.succeeded",
			"created": fixedNow.Unix(),
			"data": map[string]any{
				"object": map[string]any{"id": "ch_7", "invoice": "in_1", "amount": 999},
			},
		})
		require.NoError(t, err)

		rec := f.deliver(payload, gateway.SignatureHeaderValue([]byte(webhookSecret), fixedNow.Unix(), payload))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ignored", decodeBody(t, rec)["status"])
	})

	t.Run("queue unavailable", func(t *testing.T) {
		f := newHandlerFixture(t, 0)
		payload := chargePayload(t, "charge.failed")
		f.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(fmt.Errorf("broker down"))

		rec := f.deliver(payload, gateway.SignatureHeaderValue([]byte(webhookSecret), fixedNow.Unix(), payload))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
