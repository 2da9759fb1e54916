package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/honeynil/CreatorMonetizationService/internal/clock"
	"github.com/honeynil/CreatorMonetizationService/internal/models"
	pkgerrors "github.com/honeynil/CreatorMonetizationService/pkg/errors"
	"github.com/shopspring/decimal"
)

// SignatureHeader carries "t=<unix>,v1=<hex hmac>" for every webhook delivery.
const SignatureHeader = "Processor-Signature"

const DefaultSignatureTolerance = 5 * time.Minute

// WebhookVerifier authenticates processor webhooks and normalises them into
// models.ProcessorEvent.
type WebhookVerifier struct {
	secret    []byte
	tolerance time.Duration
	clock     clock.Clock
}

func NewWebhookVerifier(secret string, tolerance time.Duration, clk clock.Clock) *WebhookVerifier {
	if tolerance <= 0 {
		tolerance = DefaultSignatureTolerance
	}
	return &WebhookVerifier{secret: []byte(secret), tolerance: tolerance, clock: clk}
}

type webhookEnvelope struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Created int64  `json:"created"`
	Data    struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

type webhookObject struct {
	ID             string               `json:"id"`
	Amount         int64                `json:"amount"`
	AmountPaid     int64                `json:"amount_paid"`
	Charge         string               `json:"charge"`
	Subscription   string               `json:"subscription"`
	BillingReason  string               `json:"billing_reason"`
	FailureMessage string               `json:"failure_message"`
	Metadata       map[string]string    `json:"metadata"`
	PaymentMethod  paymentMethodDetails `json:"payment_method_details"`

	SubscriptionDetails struct {
		Metadata map[string]string `json:"metadata"`
	} `json:"subscription_details"`
}

// Parse verifies the signature header and decodes the payload. Unknown event
// types return ErrEventIgnored after a successful verification.
func (v *WebhookVerifier) Parse(payload []byte, header string) (*models.ProcessorEvent, error) {
	if err := v.Verify(payload, header); err != nil {
		return nil, err
	}

	var env webhookEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", pkgerrors.ErrInvalidWebhookPayload, err)
	}
	if env.ID == "" || env.Type == "" {
		return nil, fmt.Errorf("%w: missing id or type", pkgerrors.ErrInvalidWebhookPayload)
	}

	eventType := models.ProcessorEventType(env.Type)
	if !eventType.IsKnown() {
		return nil, fmt.Errorf("%w: %s", pkgerrors.ErrEventIgnored, env.Type)
	}

	var obj webhookObject
	if len(env.Data.Object) > 0 {
		if err := json.Unmarshal(env.Data.Object, &obj); err != nil {
			return nil, fmt.Errorf("%w: %v", pkgerrors.ErrInvalidWebhookPayload, err)
		}
	}

	event := &models.ProcessorEvent{
		ID:         env.ID,
		Type:       eventType,
		OccurredAt: time.Unix(env.Created, 0).UTC(),
	}

	switch eventType {
	case models.ProcessorChargeSucceeded, models.ProcessorChargeFailed:
		event.ChargeRef = obj.ID
		event.IdempotencyKey = obj.Metadata["idempotency_key"]
		event.Amount = fromCents(obj.Amount)
		event.PaymentMethod = describeMethod(obj.PaymentMethod)
		event.FailureReason = obj.FailureMessage
		if event.IdempotencyKey == "" {
			// Invoice charges the processor makes on its own; invoice events cover them.
			return nil, fmt.Errorf("%w: charge %s was not initiated by the ledger", pkgerrors.ErrEventIgnored, obj.ID)
		}
	case models.ProcessorInvoicePaid, models.ProcessorInvoicePaymentFail:
		event.InvoiceRef = obj.ID
		event.SubscriptionRef = obj.Subscription
		event.ChargeRef = obj.Charge
		event.BillingReason = obj.BillingReason
		event.Amount = fromCents(obj.AmountPaid)
		event.PaymentMethod = describeMethod(obj.PaymentMethod)
		event.FailureReason = obj.FailureMessage
		if event.SubscriptionRef == "" {
			return nil, fmt.Errorf("%w: invoice %s has no subscription", pkgerrors.ErrInvalidWebhookPayload, obj.ID)
		}
		subscriptionID, err := metadataID(obj.SubscriptionDetails.Metadata, obj.Metadata)
		if err != nil {
			return nil, fmt.Errorf("%w: invoice %s: %v", pkgerrors.ErrInvalidWebhookPayload, obj.ID, err)
		}
		event.SubscriptionID = subscriptionID
	case models.ProcessorSubscriptionUnpaid, models.ProcessorSubscriptionDeleted:
		event.SubscriptionRef = obj.ID
	}
	return event, nil
}

// Verify checks the HMAC-SHA256 of "<t>.<payload>" against every v1 signature
// in the header and rejects timestamps outside the tolerance.
func (v *WebhookVerifier) Verify(payload []byte, header string) error {
	if len(v.secret) == 0 {
		return fmt.Errorf("%w: webhook secret not configured", pkgerrors.ErrInvalidWebhookSignature)
	}
	timestamp, signatures, err := parseSignatureHeader(header)
	if err != nil {
		return err
	}

	signedAt := time.Unix(timestamp, 0)
	if age := v.clock.Now().Sub(signedAt); age > v.tolerance || age < -v.tolerance {
		return fmt.Errorf("%w: timestamp outside tolerance", pkgerrors.ErrInvalidWebhookSignature)
	}

	expected := Sign(v.secret, timestamp, payload)
	for _, sig := range signatures {
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return nil
		}
	}
	return pkgerrors.ErrInvalidWebhookSignature
}

// Sign returns the hex HMAC the processor sends for payload at timestamp.
func Sign(secret []byte, timestamp int64, payload []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// SignatureHeaderValue builds a header value for payload signed at timestamp.
func SignatureHeaderValue(secret []byte, timestamp int64, payload []byte) string {
	return fmt.Sprintf("t=%d,v1=%s", timestamp, Sign(secret, timestamp, payload))
}

func parseSignatureHeader(header string) (int64, []string, error) {
	var (
		timestamp  int64
		signatures []string
	)
	for _, part := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch key {
		case "t":
			ts, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, nil, fmt.Errorf("%w: bad timestamp", pkgerrors.ErrInvalidWebhookSignature)
			}
			timestamp = ts
		case "v1":
			signatures = append(signatures, value)
		}
	}
	if timestamp == 0 || len(signatures) == 0 {
		return 0, nil, fmt.Errorf("%w: malformed header", pkgerrors.ErrInvalidWebhookSignature)
	}
	return timestamp, signatures, nil
}

// metadataID reads subscription_id from the first metadata map carrying it.
func metadataID(sources ...map[string]string) (int64, error) {
	for _, metadata := range sources {
		raw, ok := metadata["subscription_id"]
		if !ok || raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return 0, fmt.Errorf("invalid subscription_id %q", raw)
		}
		return id, nil
	}
	return 0, nil
}

func fromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
