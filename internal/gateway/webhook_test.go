package gateway

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/honeynil/CreatorMonetizationService/internal/clock"
	"github.com/honeynil/CreatorMonetizationService/internal/models"
	pkgerrors "github.com/honeynil/CreatorMonetizationService/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_test"

var deliveredAt = time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC)

func webhookPayload(t *testing.T, eventType string, object map[string]any) []byte {
	t.Helper()
	payload, err := json.Marshal(map[string]any{
		"id":      "evt_1",
		"type":    eventType,
		"created": deliveredAt.Unix(),
		"data":    map[string]any{"object": object},
	})
	require.NoError(t, err)
	return payload
}

func signed(payload []byte, at time.Time) string {
	return SignatureHeaderValue([]byte(testSecret), at.Unix(), payload)
}

func TestWebhookVerifier_Verify(t *testing.T) {
	clk := clock.NewFakeClock(deliveredAt)
	verifier := NewWebhookVerifier(testSecret, 5*time.Minute, clk)
	payload := []byte(`{"id":"evt_1"}`)

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, verifier.Verify(payload, signed(payload, deliveredAt)))
	})

	t.Run("any of several signatures", func(t *testing.T) {
		header := signed(payload, deliveredAt) + ",v1=deadbeef"
		assert.NoError(t, verifier.Verify(payload, header))
	})

	t.Run("tampered payload", func(t *testing.T) {
		err := verifier.Verify([]byte(`{"id":"evt_2"}`), signed(payload, deliveredAt))
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidWebhookSignature)
	})

	t.Run("outside tolerance", func(t *testing.T) {
		err := verifier.Verify(payload, signed(payload, deliveredAt.Add(-10*time.Minute)))
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidWebhookSignature)
	})

	t.Run("malformed header", func(t *testing.T) {
		assert.ErrorIs(t, verifier.Verify(payload, "garbage"), pkgerrors.ErrInvalidWebhookSignature)
		assert.ErrorIs(t, verifier.Verify(payload, "t=abc,v1=00"), pkgerrors.ErrInvalidWebhookSignature)
	})

	t.Run("no secret configured", func(t *testing.T) {
		unconfigured := NewWebhookVerifier("", 0, clk)
		assert.ErrorIs(t, unconfigured.Verify(payload, signed(payload, deliveredAt)), pkgerrors.ErrInvalidWebhookSignature)
	})
}

func TestWebhookVerifier_Parse(t *testing.T) {
	verifier := NewWebhookVerifier(testSecret, 0, clock.NewFakeClock(deliveredAt))

	t.Run("charge succeeded", func(t *testing.T) {
		payload := webhookPayload(t, "charge.succeeded", map[string]any{
			"id":                     "ch_1",
			"amount":                 600,
			"metadata":               map[string]string{"idempotency_key": "key-1"},
			"payment_method_details": map[string]any{"type": "card", "card": map[string]string{"brand": "mastercard", "last4": "4444"}},
		})

		event, err := verifier.Parse(payload, signed(payload, deliveredAt))
		require.NoError(t, err)
		assert.Equal(t, models.ProcessorChargeSucceeded, event.Type)
		assert.Equal(t, "ch_1", event.ChargeRef)
		assert.Equal(t, "key-1", event.IdempotencyKey)
		assert.Equal(t, "6.00", event.Amount.StringFixed(2))
		assert.Equal(t, "Mastercard ending in 4444", event.PaymentMethod)
		assert.Equal(t, deliveredAt, event.OccurredAt)
	})

	t.Run("invoice charge without idempotency key is ignored", func(t *testing.T) {
		payload := webhookPayload(t, "charge.succeeded", map[string]any{"id": "ch_7", "invoice": "in_1", "amount": 999})

		event, err := verifier.Parse(payload, signed(payload, deliveredAt))
		assert.Nil(t, event)
		assert.ErrorIs(t, err, pkgerrors.ErrEventIgnored)
		assert.NotErrorIs(t, err, pkgerrors.ErrInvalidWebhookPayload)
	})

	t.Run("invoice paid", func(t *testing.T) {
		payload := webhookPayload(t, "invoice.paid", map[string]any{
			"id":             "in_1",
			"subscription":   "sub_1",
			"charge":         "ch_9",
			"billing_reason": "subscription_cycle",
			"amount_paid":    999,
		})

		event, err := verifier.Parse(payload, signed(payload, deliveredAt))
		require.NoError(t, err)
		assert.Equal(t, "in_1", event.InvoiceRef)
		assert.Equal(t, "sub_1", event.SubscriptionRef)
		assert.Equal(t, "subscription_cycle", event.BillingReason)
		assert.Equal(t, "9.99", event.Amount.StringFixed(2))
		assert.Zero(t, event.SubscriptionID)
	})

	t.Run("invoice carries subscription metadata", func(t *testing.T) {
		payload := webhookPayload(t, "invoice.paid", map[string]any{
			"id":                   "in_2",
			"subscription":         "sub_2",
			"billing_reason":       "subscription_create",
			"amount_paid":          499,
			"subscription_details": map[string]any{"metadata": map[string]string{"subscription_id": "9"}},
		})

		event, err := verifier.Parse(payload, signed(payload, deliveredAt))
		require.NoError(t, err)
		assert.Equal(t, int64(9), event.SubscriptionID)
	})

	t.Run("invoice with malformed subscription metadata", func(t *testing.T) {
		payload := webhookPayload(t, "invoice.paid", map[string]any{
			"id":           "in_3",
			"subscription": "sub_3",
			"metadata":     map[string]string{"subscription_id": "nine"},
		})

		_, err := verifier.Parse(payload, signed(payload, deliveredAt))
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidWebhookPayload)
	})

	t.Run("invoice without subscription", func(t *testing.T) {
		payload := webhookPayload(t, "invoice.payment_failed", map[string]any{"id": "in_1"})

		_, err := verifier.Parse(payload, signed(payload, deliveredAt))
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidWebhookPayload)
	})

	t.Run("subscription deleted", func(t *testing.T) {
		payload := webhookPayload(t, "subscription.deleted", map[string]any{"id": "sub_1"})

		event, err := verifier.Parse(payload, signed(payload, deliveredAt))
		require.NoError(t, err)
		assert.Equal(t, "sub_1", event.SubscriptionRef)
	})

	t.Run("unknown type", func(t *testing.T) {
		payload := webhookPayload(t, "customer.created", map[string]any{"id": "cus_1"})

		_, err := verifier.Parse(payload, signed(payload, deliveredAt))
		assert.ErrorIs(t, err, pkgerrors.ErrEventIgnored)
	})

	t.Run("signature checked before decoding", func(t *testing.T) {
		payload := []byte(`not json`)

		_, err := verifier.Parse(payload, "t=1,v1=00")
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidWebhookSignature)
	})

	t.Run("missing id", func(t *testing.T) {
		payload := []byte(`{"type":"charge.succeeded"}`)

		_, err := verifier.Parse(payload, signed(payload, deliveredAt))
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidWebhookPayload)
	})
}
