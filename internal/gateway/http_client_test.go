package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/honeynil/CreatorMonetizationService/internal/models"
	pkgerrors "github.com/honeynil/CreatorMonetizationService/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewHTTPClient(server.URL+"/", "sk_test", 2*time.Second)
}

func TestHTTPClient_Charge(t *testing.T) {
	ctx := context.Background()
	req := ChargeRequest{
		IdempotencyKey:   "key-1",
		Amount:           decimal.RequireFromString("6.00"),
		PaymentMethodRef: "pm_card",
		CustomerRef:      "cus_1",
		Metadata:         map[string]string{"transaction_id": "42"},
	}

	t.Run("succeeded", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/charges", r.URL.Path)
			assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
			assert.Equal(t, "key-1", r.Header.Get("Idempotency-Key"))

			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, float64(600), body["amount"])
			assert.Equal(t, "usd", body["currency"])
			assert.Equal(t, "cus_1", body["customer"])

			w.Write([]byte(`{"id":"ch_1","status":"succeeded","payment_method_details":{"type":"card","card":{"brand":"visa","last4":"4242"}}}`))
		})

		result, err := client.Charge(ctx, req)
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "ch_1", result.ProcessorRef)
		assert.Equal(t, "Visa ending in 4242", result.MethodDescriptor)
	})

	t.Run("declined", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusPaymentRequired)
			w.Write([]byte(`{"error":{"code":"card_declined","message":"Your card was declined."}}`))
		})

		result, err := client.Charge(ctx, req)
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "Your card was declined.", result.FailureReason)
	})

	t.Run("processor error is unavailable", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		result, err := client.Charge(ctx, req)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, pkgerrors.ErrGatewayUnavailable)
	})

	t.Run("rate limited is unavailable", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := client.Charge(ctx, req)
		assert.ErrorIs(t, err, pkgerrors.ErrGatewayUnavailable)
	})

	t.Run("malformed response is unavailable", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		})

		_, err := client.Charge(ctx, req)
		assert.ErrorIs(t, err, pkgerrors.ErrGatewayUnavailable)
	})

	t.Run("unreachable is unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		server.Close()
		client := NewHTTPClient(server.URL, "sk_test", time.Second)

		_, err := client.Charge(ctx, req)
		assert.ErrorIs(t, err, pkgerrors.ErrGatewayUnavailable)
	})
}

func TestHTTPClient_Refund(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/refunds", r.URL.Path)
		assert.Equal(t, "refund-key-1", r.Header.Get("Idempotency-Key"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ch_1", body["charge"])
		assert.Equal(t, "requested_by_customer", body["reason"])

		w.Write([]byte(`{"id":"re_1","status":"pending"}`))
	})

	result, err := client.Refund(context.Background(), RefundRequest{
		IdempotencyKey: "refund-key-1",
		ChargeRef:      "ch_1",
		Reason:         "changed my mind",
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "re_1", result.ProcessorRef)
}

func TestHTTPClient_Subscriptions(t *testing.T) {
	ctx := context.Background()

	t.Run("create", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/subscriptions", r.URL.Path)

			var body struct {
				PriceData struct {
					UnitAmount int64                    `json:"unit_amount"`
					Recurring  models.RecurringInterval `json:"recurring"`
				} `json:"price_data"`
			}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, int64(999), body.PriceData.UnitAmount)
			assert.Equal(t, models.RecurringInterval{Unit: "month", Count: 3}, body.PriceData.Recurring)

			w.Write([]byte(`{"id":"sub_1","status":"active"}`))
		})

		result, err := client.CreateSubscription(ctx, SubscriptionRequest{
			IdempotencyKey: "subscription-5-1",
			Price:          decimal.RequireFromString("9.99"),
			Interval:       models.CycleQuarterly.Interval(),
		})
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "sub_1", result.SubscriptionRef)
	})

	t.Run("create incomplete", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id":"sub_1","status":"incomplete"}`))
		})

		result, err := client.CreateSubscription(ctx, SubscriptionRequest{Price: decimal.RequireFromString("9.99")})
		require.NoError(t, err)
		assert.False(t, result.Success)
	})

	t.Run("cancel", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/subscriptions/sub_1/cancel", r.URL.Path)
			w.Write([]byte(`{"id":"sub_1","status":"canceled"}`))
		})

		assert.NoError(t, client.CancelSubscription(ctx, "sub_1"))
	})

	t.Run("reactivate rejected", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/subscriptions/sub_1/resume", r.URL.Path)
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"message":"subscription already ended"}}`))
		})

		err := client.ReactivateSubscription(ctx, "sub_1")
		assert.ErrorIs(t, err, pkgerrors.ErrPaymentDeclined)
	})
}

func TestRefundReason(t *testing.T) {
	assert.Equal(t, "duplicate", RefundReason("duplicate"))
	assert.Equal(t, "fraudulent", RefundReason("fraudulent"))
	assert.Equal(t, "requested_by_customer", RefundReason(""))
}
