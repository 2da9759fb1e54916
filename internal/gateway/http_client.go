package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/honeynil/CreatorMonetizationService/internal/infrastructure/observability"
	pkgerrors "github.com/honeynil/CreatorMonetizationService/pkg/errors"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const currency = "usd"

// HTTPClient talks to the processor's REST API. Amounts travel as integer cents.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type paymentMethodDetails struct {
	Type string `json:"type"`
	Card struct {
		Brand string `json:"brand"`
		Last4 string `json:"last4"`
	} `json:"card"`
}

type chargeResponse struct {
	ID            string               `json:"id"`
	Status        string               `json:"status"`
	FailureReason string               `json:"failure_message"`
	PaymentMethod paymentMethodDetails `json:"payment_method_details"`
}

type refundResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	FailureReason string `json:"failure_reason"`
}

type subscriptionResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (c *HTTPClient) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	body := map[string]any{
		"amount":         toCents(req.Amount),
		"currency":       currency,
		"payment_method": req.PaymentMethodRef,
		"customer":       req.CustomerRef,
		"confirm":        true,
		"metadata":       req.Metadata,
	}

	var resp chargeResponse
	declined, err := c.do(ctx, "charge", "/v1/charges", req.IdempotencyKey, body, &resp)
	if err != nil {
		return nil, err
	}
	if declined != "" {
		return &ChargeResult{Success: false, FailureReason: declined}, nil
	}
	if resp.Status != "succeeded" {
		reason := resp.FailureReason
		if reason == "" {
			reason = "charge " + resp.Status
		}
		return &ChargeResult{Success: false, ProcessorRef: resp.ID, FailureReason: reason}, nil
	}
	return &ChargeResult{
		Success:          true,
		ProcessorRef:     resp.ID,
		MethodDescriptor: describeMethod(resp.PaymentMethod),
	}, nil
}

func (c *HTTPClient) Refund(ctx context.Context, req RefundRequest) (*RefundResult, error) {
	body := map[string]any{
		"charge":   req.ChargeRef,
		"reason":   RefundReason(req.Reason),
		"metadata": req.Metadata,
	}

	var resp refundResponse
	declined, err := c.do(ctx, "refund", "/v1/refunds", req.IdempotencyKey, body, &resp)
	if err != nil {
		return nil, err
	}
	if declined != "" {
		return &RefundResult{Success: false, FailureReason: declined}, nil
	}
	if resp.Status != "succeeded" && resp.Status != "pending" {
		return &RefundResult{Success: false, ProcessorRef: resp.ID, FailureReason: resp.FailureReason}, nil
	}
	return &RefundResult{Success: true, ProcessorRef: resp.ID}, nil
}

func (c *HTTPClient) CreateSubscription(ctx context.Context, req SubscriptionRequest) (*SubscriptionResult, error) {
	body := map[string]any{
		"customer":       req.CustomerRef,
		"payment_method": req.PaymentMethodRef,
		"metadata":       req.Metadata,
		"price_data": map[string]any{
			"currency":    currency,
			"unit_amount": toCents(req.Price),
			"recurring":   req.Interval,
			"product_data": map[string]string{
				"name": req.Description,
			},
		},
	}

	var resp subscriptionResponse
	declined, err := c.do(ctx, "create_subscription", "/v1/subscriptions", req.IdempotencyKey, body, &resp)
	if err != nil {
		return nil, err
	}
	if declined != "" {
		return &SubscriptionResult{Success: false, FailureReason: declined}, nil
	}
	if resp.Status != "active" && resp.Status != "trialing" {
		return &SubscriptionResult{Success: false, SubscriptionRef: resp.ID, FailureReason: "subscription " + resp.Status}, nil
	}
	return &SubscriptionResult{Success: true, SubscriptionRef: resp.ID}, nil
}

func (c *HTTPClient) CancelSubscription(ctx context.Context, subscriptionRef string) error {
	return c.subscriptionAction(ctx, "cancel_subscription", subscriptionRef, "cancel")
}

func (c *HTTPClient) ReactivateSubscription(ctx context.Context, subscriptionRef string) error {
	return c.subscriptionAction(ctx, "reactivate_subscription", subscriptionRef, "resume")
}

func (c *HTTPClient) subscriptionAction(ctx context.Context, operation, subscriptionRef, action string) error {
	path := fmt.Sprintf("/v1/subscriptions/%s/%s", url.PathEscape(subscriptionRef), action)
	var resp subscriptionResponse
	declined, err := c.do(ctx, operation, path, operation+"-"+subscriptionRef, map[string]any{}, &resp)
	if err != nil {
		return err
	}
	if declined != "" {
		return fmt.Errorf("%w: %s", pkgerrors.ErrPaymentDeclined, declined)
	}
	return nil
}

// do posts body and decodes a 2xx response into out. A 4xx answer is a
// definitive rejection and is returned as the processor's message; transport
// failures, 429 and 5xx wrap ErrGatewayUnavailable.
func (c *HTTPClient) do(ctx context.Context, operation, path, idempotencyKey string, body any, out any) (declined string, err error) {
	tracer := otel.Tracer("payment-gateway")
	ctx, span := tracer.Start(ctx, "Gateway."+operation)
	span.SetAttributes(attribute.String("gateway.path", path))
	defer span.End()

	start := time.Now()
	defer func() {
		outcome := "success"
		switch {
		case err != nil:
			outcome = "unavailable"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		case declined != "":
			outcome = "declined"
		}
		observability.GatewayCalls.WithLabelValues(operation, outcome).Inc()
		observability.GatewayDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}()

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s request: %w", operation, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build %s request: %w", operation, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	if idempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		slog.Warn("payment gateway request failed", "method", operation, "error", err)
		return "", fmt.Errorf("%w: %s: %v", pkgerrors.ErrGatewayUnavailable, operation, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: %s: reading response: %v", pkgerrors.ErrGatewayUnavailable, operation, err)
	}

	switch {
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		slog.Warn("payment gateway unavailable", "method", operation, "status", resp.StatusCode)
		return "", fmt.Errorf("%w: %s: processor returned %d", pkgerrors.ErrGatewayUnavailable, operation, resp.StatusCode)
	case resp.StatusCode >= 400:
		var apiErr apiError
		if err := json.Unmarshal(raw, &apiErr); err != nil || apiErr.Error.Message == "" {
			apiErr.Error.Message = http.StatusText(resp.StatusCode)
		}
		slog.Info("payment gateway declined request", "method", operation, "status", resp.StatusCode, "code", apiErr.Error.Code)
		return apiErr.Error.Message, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return "", fmt.Errorf("%w: %s: malformed response: %v", pkgerrors.ErrGatewayUnavailable, operation, err)
	}
	return "", nil
}

func toCents(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

// describeMethod renders the display string stored on the transaction, e.g. "Visa ending in 4242".
func describeMethod(pm paymentMethodDetails) string {
	card := pm.Card
	if card.Last4 == "" {
		if pm.Type != "" {
			return pm.Type
		}
		return "card"
	}
	brand := "Card"
	if card.Brand != "" {
		brand = strings.ToUpper(card.Brand[:1]) + card.Brand[1:]
	}
	return fmt.Sprintf("%s ending in %s", brand, card.Last4)
}
