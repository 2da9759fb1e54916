package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/honeynil/CreatorMonetizationService/internal/clock"
	"github.com/honeynil/CreatorMonetizationService/internal/gateway"
	"github.com/honeynil/CreatorMonetizationService/internal/infrastructure/kafka"
	"github.com/honeynil/CreatorMonetizationService/internal/infrastructure/observability"
	"github.com/honeynil/CreatorMonetizationService/internal/models"
	pkgerrors "github.com/honeynil/CreatorMonetizationService/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=processor_event_service.go -destination=mocks/mock_processor_event_service.go -package=mocks

// ProcessorEventService moves verified processor webhooks through Kafka and
// applies them to the ledger and subscriptions.
type ProcessorEventService interface {
	Publish(ctx context.Context, event models.ProcessorEvent) error
	Handle(ctx context.Context, event models.ProcessorEvent) error
}

// UnresolvedInvoiceWindow is how long a paid invoice for a subscription not
// yet known locally keeps being redelivered before it is dropped.
const UnresolvedInvoiceWindow = 30 * time.Minute

type processorEventService struct {
	ledger        LedgerService
	subscriptions SubscriptionService
	producer      kafka.KafkaProducer
	topic         string
	clock         clock.Clock
}

func NewProcessorEventService(
	ledger LedgerService,
	subscriptions SubscriptionService,
	producer kafka.KafkaProducer,
	processorTopic string,
	clk clock.Clock,
) *processorEventService {
	return &processorEventService{
		ledger:        ledger,
		subscriptions: subscriptions,
		producer:      producer,
		topic:         processorTopic,
		clock:         clk,
	}
}

// Publish enqueues the event keyed by the entity it concerns, so events for
// one charge or subscription are applied in order.
func (s *processorEventService) Publish(ctx context.Context, event models.ProcessorEvent) error {
	tracer := otel.Tracer("processor-event-service")
	ctx, span := tracer.Start(ctx, "Publish")
	defer span.End()
	span.SetAttributes(attribute.String("event_id", event.ID), attribute.String("type", string(event.Type)))

	payload, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to marshal processor event: %w", err)
	}

	key := event.SubscriptionRef
	if key == "" {
		key = event.IdempotencyKey
	}
	if err := s.producer.Send(ctx, s.topic, key, payload); err != nil {
		span.RecordError(err)
		slog.Error("failed to enqueue processor event",
			"method", "Publish",
			"event_id", event.ID,
			"type", event.Type,
			"error", err)
		return fmt.Errorf("failed to enqueue processor event: %w", err)
	}
	return nil
}

// Handle applies one event. Events that can never apply (unknown references,
// already applied transitions) are logged and acknowledged; anything else is
// returned so the message is redelivered.
func (s *processorEventService) Handle(ctx context.Context, event models.ProcessorEvent) error {
	tracer := otel.Tracer("processor-event-service")
	ctx, span := tracer.Start(ctx, "Handle")
	defer span.End()
	span.SetAttributes(attribute.String("event_id", event.ID), attribute.String("type", string(event.Type)))

	err := s.apply(ctx, event)
	if err == nil {
		slog.Info("processor event applied",
			"method", "Handle",
			"event_id", event.ID,
			"type", event.Type)
		return nil
	}
	if s.awaitingSubscription(event, err) {
		span.RecordError(err)
		slog.Warn("paid invoice for unknown subscription, will retry",
			"method", "Handle",
			"event_id", event.ID,
			"processor_ref", event.SubscriptionRef,
			"invoice_ref", event.InvoiceRef)
		return err
	}
	if event.Type == models.ProcessorInvoicePaid && stderrors.Is(err, pkgerrors.ErrSubscriptionNotFound) {
		slog.Error("paid invoice dropped, subscription never resolved",
			"method", "Handle",
			"event_id", event.ID,
			"processor_ref", event.SubscriptionRef,
			"invoice_ref", event.InvoiceRef,
			"amount", event.Amount.StringFixed(2))
	}
	if isTerminal(err) {
		slog.Warn("processor event skipped",
			"method", "Handle",
			"event_id", event.ID,
			"type", event.Type,
			"reason", err)
		observability.ProcessorEvents.WithLabelValues(string(event.Type), "skipped").Inc()
		return nil
	}
	span.RecordError(err)
	return err
}

func (s *processorEventService) apply(ctx context.Context, event models.ProcessorEvent) error {
	switch event.Type {
	case models.ProcessorChargeSucceeded, models.ProcessorChargeFailed:
		_, err := s.ledger.FinalizeByProcessorRef(ctx, event.IdempotencyKey, gateway.ChargeResult{
			Success:          event.Type == models.ProcessorChargeSucceeded,
			ProcessorRef:     event.ChargeRef,
			MethodDescriptor: event.PaymentMethod,
			FailureReason:    event.FailureReason,
		})
		return err
	case models.ProcessorInvoicePaid:
		_, err := s.subscriptions.Renew(ctx, event)
		return err
	case models.ProcessorInvoicePaymentFail:
		sub, err := s.subscriptions.GetByProcessorRef(ctx, event.SubscriptionRef)
		if err != nil {
			return err
		}
		_, err = s.subscriptions.MarkPastDue(ctx, sub.ID)
		return err
	case models.ProcessorSubscriptionUnpaid:
		sub, err := s.subscriptions.GetByProcessorRef(ctx, event.SubscriptionRef)
		if err != nil {
			return err
		}
		_, err = s.subscriptions.MarkUnpaid(ctx, sub.ID)
		return err
	case models.ProcessorSubscriptionDeleted:
		_, err := s.subscriptions.CancelByProcessor(ctx, event.SubscriptionRef)
		return err
	default:
		return fmt.Errorf("%w: %s", pkgerrors.ErrEventIgnored, event.Type)
	}
}

// awaitingSubscription reports whether a paid invoice missed its subscription
// only because the local checkout has not recorded the processor reference yet.
func (s *processorEventService) awaitingSubscription(event models.ProcessorEvent, err error) bool {
	if event.Type != models.ProcessorInvoicePaid || !stderrors.Is(err, pkgerrors.ErrSubscriptionNotFound) {
		return false
	}
	if event.OccurredAt.IsZero() {
		return false
	}
	return s.clock.Now().Sub(event.OccurredAt) < UnresolvedInvoiceWindow
}

func isTerminal(err error) bool {
	for _, target := range []error{
		pkgerrors.ErrEventIgnored,
		pkgerrors.ErrInvalidStateTransition,
		pkgerrors.ErrTransactionNotFound,
		pkgerrors.ErrSubscriptionNotFound,
		pkgerrors.ErrInvalidAmount,
		pkgerrors.ErrInvalidTransactionType,
	} {
		if stderrors.Is(err, target) {
			return true
		}
	}
	return false
}
