package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/honeynil/CreatorMonetizationService/internal/clock"
	"github.com/honeynil/CreatorMonetizationService/internal/fees"
	"github.com/honeynil/CreatorMonetizationService/internal/gateway"
	"github.com/honeynil/CreatorMonetizationService/internal/infrastructure/kafka"
	"github.com/honeynil/CreatorMonetizationService/internal/infrastructure/observability"
	"github.com/honeynil/CreatorMonetizationService/internal/infrastructure/redis"
	"github.com/honeynil/CreatorMonetizationService/internal/models"
	"github.com/honeynil/CreatorMonetizationService/internal/repository"
	pkgerrors "github.com/honeynil/CreatorMonetizationService/pkg/errors"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=subscription_service.go -destination=mocks/mock_subscription_service.go -package=mocks

type SubscriptionService interface {
	Create(ctx context.Context, req CreateSubscriptionRequest) (*models.Subscription, error)
	Confirm(ctx context.Context, subscriptionID int64, result gateway.SubscriptionResult) (*models.Subscription, error)
	Cancel(ctx context.Context, subscriptionID, initiatorID int64) (*models.Subscription, error)
	CancelByProcessor(ctx context.Context, processorRef string) (*models.Subscription, error)
	Reactivate(ctx context.Context, subscriptionID, initiatorID int64) (*models.Subscription, error)
	UpdateBillingCycle(ctx context.Context, subscriptionID, initiatorID int64, cycle models.BillingCycle) (*models.Subscription, error)
	MarkPastDue(ctx context.Context, subscriptionID int64) (*models.Subscription, error)
	MarkActive(ctx context.Context, subscriptionID int64) (*models.Subscription, error)
	MarkUnpaid(ctx context.Context, subscriptionID int64) (*models.Subscription, error)
	Renew(ctx context.Context, event models.ProcessorEvent) (*models.Subscription, error)
	Get(ctx context.Context, subscriptionID, viewerID int64) (*SubscriptionView, error)
	GetByProcessorRef(ctx context.Context, processorRef string) (*models.Subscription, error)
	ListAsSubscriber(ctx context.Context, subscriberID int64, filter models.SubscriptionFilter) (*SubscriptionPage, error)
	ListAsCreator(ctx context.Context, creatorID int64, filter models.SubscriptionFilter) (*SubscriptionPage, error)
	CreatorStats(ctx context.Context, creatorID int64) (*models.CreatorSubscriptionStats, error)
}

// CreateSubscriptionRequest leaves Price nil to fall back to the creator's
// default subscription price.
type CreateSubscriptionRequest struct {
	SubscriberID     int64
	CreatorID        int64
	Price            *decimal.Decimal
	BillingCycle     models.BillingCycle
	PaymentMethodRef string
}

type SubscriptionView struct {
	models.Subscription
	Expired          bool `json:"expired"`
	DaysUntilRenewal int  `json:"days_until_renewal"`
}

type SubscriptionPage struct {
	Subscriptions []SubscriptionView `json:"subscriptions"`
	Total         int64              `json:"total"`
	Page          int                `json:"page"`
	PerPage       int                `json:"per_page"`
}

type subscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
	userRepo         repository.UserRepository
	gateway          gateway.PaymentGateway
	calculator       *fees.Calculator
	cache            redis.RedisClient
	events           eventPublisher
	clock            clock.Clock
}

func NewSubscriptionService(
	subscriptionRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
	paymentGateway gateway.PaymentGateway,
	calculator *fees.Calculator,
	cache redis.RedisClient,
	producer kafka.KafkaProducer,
	ledgerTopic string,
	clk clock.Clock,
) *subscriptionService {
	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		gateway:          paymentGateway,
		calculator:       calculator,
		cache:            cache,
		events:           eventPublisher{producer: producer, topic: ledgerTopic},
		clock:            clk,
	}
}

func (s *subscriptionService) Create(ctx context.Context, req CreateSubscriptionRequest) (*models.Subscription, error) {
	tracer := otel.Tracer("subscription-service")
	ctx, span := tracer.Start(ctx, "CreateSubscription")
	defer span.End()
	span.SetAttributes(attribute.Int64("subscriber_id", req.SubscriberID), attribute.Int64("creator_id", req.CreatorID))

	cycle := req.BillingCycle
	if cycle == "" {
		cycle = models.CycleMonthly
	}
	if !cycle.IsValid() {
		span.SetStatus(codes.Error, "invalid billing cycle")
		return nil, fmt.Errorf("%w: %q", pkgerrors.ErrInvalidBillingCycle, req.BillingCycle)
	}
	if req.SubscriberID == req.CreatorID {
		span.SetStatus(codes.Error, "self subscription")
		return nil, pkgerrors.ErrSelfTransactionNotAllowed
	}

	creator, err := s.userRepo.GetByID(ctx, req.CreatorID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if !creator.IsCreator {
		span.SetStatus(codes.Error, "not a creator")
		return nil, pkgerrors.ErrNotACreator
	}

	price, err := subscriptionPrice(req.Price, creator)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if _, err := s.calculator.ComputeFee(price, models.TypeSubscriptionPayment); err != nil {
		span.RecordError(err)
		return nil, err
	}

	existing, err := s.subscriptionRepo.GetByPair(ctx, req.SubscriberID, req.CreatorID)
	switch {
	case err == nil && !existing.CanRetryCheckout():
		span.SetStatus(codes.Error, "already subscribed")
		return nil, fmt.Errorf("%w: subscription %d is %s", pkgerrors.ErrAlreadySubscribed, existing.ID, existing.Status)
	case err != nil && !stderrors.Is(err, pkgerrors.ErrSubscriptionNotFound):
		span.RecordError(err)
		return nil, err
	case err != nil:
		existing = nil
	}

	subscriber, err := s.userRepo.GetByID(ctx, req.SubscriberID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	sub, err := s.openCheckout(ctx, existing, models.Subscription{
		SubscriberID: req.SubscriberID,
		CreatorID:    req.CreatorID,
		MonthlyPrice: price,
		BillingCycle: cycle,
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	result, err := s.gateway.CreateSubscription(ctx, gateway.SubscriptionRequest{
		IdempotencyKey:   checkoutKey(sub),
		CustomerRef:      subscriber.CustomerRef,
		PaymentMethodRef: req.PaymentMethodRef,
		Price:            price,
		Interval:         cycle.Interval(),
		Description:      fmt.Sprintf("Subscription to %s", creator.FullName),
		Metadata: map[string]string{
			"subscription_id": strconv.FormatInt(sub.ID, 10),
			"subscriber_id":   strconv.FormatInt(sub.SubscriberID, 10),
			"creator_id":      strconv.FormatInt(sub.CreatorID, 10),
		},
	})
	if err != nil {
		span.RecordError(err)
		slog.Warn("subscription left incomplete",
			"method", "Create",
			"subscription_id", sub.ID,
			"error", err)
		return nil, fmt.Errorf("subscription %d left incomplete: %w", sub.ID, err)
	}

	confirmed, err := s.confirm(ctx, sub, *result)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return confirmed, fmt.Errorf("%w: %s", pkgerrors.ErrPaymentDeclined, result.FailureReason)
	}
	return confirmed, nil
}

// openCheckout returns the incomplete row a gateway call will confirm. A pair
// the processor never opened is reused with a fresh attempt number, so a new
// card is not answered with the processor's cached decline.
func (s *subscriptionService) openCheckout(ctx context.Context, existing *models.Subscription, terms models.Subscription) (*models.Subscription, error) {
	now := s.clock.Now()
	if existing != nil {
		retry, err := s.transition(ctx, existing, func(next *models.Subscription) {
			next.MonthlyPrice = terms.MonthlyPrice
			next.BillingCycle = terms.BillingCycle
			next.Status = models.SubscriptionIncomplete
			next.CancelledAt = nil
			next.GatewayAttempts++
			next.SetPeriod(now)
		})
		if err != nil {
			return nil, err
		}
		slog.Info("retrying subscription checkout",
			"method", "Create",
			"subscription_id", retry.ID,
			"attempt", retry.GatewayAttempts)
		return retry, nil
	}

	sub := &terms
	sub.Status = models.SubscriptionIncomplete
	sub.GatewayAttempts = 1
	sub.SetPeriod(now)

	id, err := s.subscriptionRepo.Create(ctx, sub)
	if err != nil {
		return nil, err
	}
	sub.ID = id
	observability.SubscriptionTransitions.WithLabelValues(string(models.SubscriptionIncomplete)).Inc()
	return sub, nil
}

func checkoutKey(sub *models.Subscription) string {
	return fmt.Sprintf("subscription-%d-%d", sub.ID, sub.GatewayAttempts)
}

func subscriptionPrice(requested *decimal.Decimal, creator *models.User) (decimal.Decimal, error) {
	if requested != nil {
		if err := fees.ValidateAmount(*requested); err != nil {
			return decimal.Zero, err
		}
		return *requested, nil
	}
	if !creator.DefaultSubscriptionPrice.Valid {
		return decimal.Zero, fmt.Errorf("%w: no price given and creator %d has no default", pkgerrors.ErrInvalidAmount, creator.ID)
	}
	price := creator.DefaultSubscriptionPrice.Decimal
	if err := fees.ValidateAmount(price); err != nil {
		return decimal.Zero, err
	}
	return price, nil
}

func (s *subscriptionService) Confirm(ctx context.Context, subscriptionID int64, result gateway.SubscriptionResult) (*models.Subscription, error) {
	tracer := otel.Tracer("subscription-service")
	ctx, span := tracer.Start(ctx, "Confirm")
	defer span.End()
	span.SetAttributes(attribute.Int64("subscription_id", subscriptionID))

	sub, err := s.subscriptionRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return s.confirm(ctx, sub, result)
}

// confirm applies the processor's answer to an incomplete subscription. A
// failed result leaves it incomplete for the subscriber to retry.
func (s *subscriptionService) confirm(ctx context.Context, sub *models.Subscription, result gateway.SubscriptionResult) (*models.Subscription, error) {
	if sub.Status != models.SubscriptionIncomplete {
		return nil, fmt.Errorf("%w: subscription %d is %s", pkgerrors.ErrInvalidStateTransition, sub.ID, sub.Status)
	}
	if !result.Success {
		slog.Info("subscription not confirmed",
			"method", "Confirm",
			"subscription_id", sub.ID,
			"reason", result.FailureReason)
		return sub, nil
	}

	updated, err := s.transition(ctx, sub, func(next *models.Subscription) {
		next.Status = models.SubscriptionActive
		next.ProcessorRef = result.SubscriptionRef
	})
	if stderrors.Is(err, pkgerrors.ErrInvalidStateTransition) {
		// The first paid invoice may have activated the row already.
		current, getErr := s.subscriptionRepo.GetByID(ctx, sub.ID)
		if getErr == nil && current.ProcessorRef == result.SubscriptionRef {
			return current, nil
		}
	}
	if err != nil {
		return nil, err
	}
	s.events.publish(ctx, subscriptionEvent(models.EventSubscriptionActivated, updated, s.clock.Now()))
	return updated, nil
}

func (s *subscriptionService) Cancel(ctx context.Context, subscriptionID, initiatorID int64) (*models.Subscription, error) {
	tracer := otel.Tracer("subscription-service")
	ctx, span := tracer.Start(ctx, "Cancel")
	defer span.End()
	span.SetAttributes(attribute.Int64("subscription_id", subscriptionID), attribute.Int64("initiator_id", initiatorID))

	sub, err := s.subscriptionRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if !sub.IsParticipant(initiatorID) {
		span.SetStatus(codes.Error, "not a participant")
		return nil, pkgerrors.ErrUnauthorized
	}
	if sub.Status == models.SubscriptionCanceled {
		span.SetStatus(codes.Error, "already canceled")
		return nil, fmt.Errorf("%w: subscription %d is already canceled", pkgerrors.ErrInvalidStateTransition, sub.ID)
	}

	updated, err := s.cancelLocally(ctx, sub)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if updated.ProcessorRef != "" {
		if err := s.gateway.CancelSubscription(ctx, updated.ProcessorRef); err != nil {
			slog.Warn("processor cancellation failed, local cancel stands",
				"method", "Cancel",
				"subscription_id", updated.ID,
				"processor_ref", updated.ProcessorRef,
				"error", err)
		}
	}
	return updated, nil
}

// CancelByProcessor records a cancellation the processor already made, so it
// never calls back into the gateway. Repeated deliveries are no-ops.
func (s *subscriptionService) CancelByProcessor(ctx context.Context, processorRef string) (*models.Subscription, error) {
	tracer := otel.Tracer("subscription-service")
	ctx, span := tracer.Start(ctx, "CancelByProcessor")
	defer span.End()
	span.SetAttributes(attribute.String("processor_ref", processorRef))

	sub, err := s.subscriptionRepo.GetByProcessorRef(ctx, processorRef)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if sub.Status == models.SubscriptionCanceled {
		return sub, nil
	}
	return s.cancelLocally(ctx, sub)
}

func (s *subscriptionService) cancelLocally(ctx context.Context, sub *models.Subscription) (*models.Subscription, error) {
	now := s.clock.Now()
	updated, err := s.transition(ctx, sub, func(next *models.Subscription) {
		next.Status = models.SubscriptionCanceled
		next.CancelledAt = &now
	})
	if err != nil {
		return nil, err
	}
	s.events.publish(ctx, subscriptionEvent(models.EventSubscriptionCanceled, updated, now))
	return updated, nil
}

func (s *subscriptionService) Reactivate(ctx context.Context, subscriptionID, initiatorID int64) (*models.Subscription, error) {
	tracer := otel.Tracer("subscription-service")
	ctx, span := tracer.Start(ctx, "Reactivate")
	defer span.End()
	span.SetAttributes(attribute.Int64("subscription_id", subscriptionID), attribute.Int64("initiator_id", initiatorID))

	sub, err := s.subscriptionRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if !sub.IsParticipant(initiatorID) {
		span.SetStatus(codes.Error, "not a participant")
		return nil, pkgerrors.ErrUnauthorized
	}
	if sub.Status != models.SubscriptionCanceled {
		span.SetStatus(codes.Error, "not canceled")
		return nil, pkgerrors.ErrNotCancelled
	}
	if sub.ProcessorRef == "" {
		span.SetStatus(codes.Error, "never confirmed")
		return nil, fmt.Errorf("%w: subscription %d was never opened by the processor, subscribe again instead", pkgerrors.ErrInvalidStateTransition, sub.ID)
	}

	if err := s.gateway.ReactivateSubscription(ctx, sub.ProcessorRef); err != nil {
		span.RecordError(err)
		slog.Warn("processor reactivation failed",
			"method", "Reactivate",
			"subscription_id", sub.ID,
			"error", err)
		return nil, err
	}

	updated, err := s.transition(ctx, sub, func(next *models.Subscription) {
		next.Status = models.SubscriptionActive
		next.CancelledAt = nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	s.events.publish(ctx, subscriptionEvent(models.EventSubscriptionResumed, updated, s.clock.Now()))
	return updated, nil
}

func (s *subscriptionService) UpdateBillingCycle(ctx context.Context, subscriptionID, initiatorID int64, cycle models.BillingCycle) (*models.Subscription, error) {
	tracer := otel.Tracer("subscription-service")
	ctx, span := tracer.Start(ctx, "UpdateBillingCycle")
	defer span.End()
	span.SetAttributes(attribute.Int64("subscription_id", subscriptionID), attribute.String("billing_cycle", string(cycle)))

	if !cycle.IsValid() {
		span.SetStatus(codes.Error, "invalid billing cycle")
		return nil, fmt.Errorf("%w: %q", pkgerrors.ErrInvalidBillingCycle, cycle)
	}

	sub, err := s.subscriptionRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if !sub.IsParticipant(initiatorID) {
		span.SetStatus(codes.Error, "not a participant")
		return nil, pkgerrors.ErrUnauthorized
	}
	if sub.BillingCycle == cycle {
		return sub, nil
	}

	return s.transition(ctx, sub, func(next *models.Subscription) {
		next.BillingCycle = cycle
		next.EndDate = cycle.EndDate(next.StartDate)
	})
}

func (s *subscriptionService) MarkPastDue(ctx context.Context, subscriptionID int64) (*models.Subscription, error) {
	return s.markStatus(ctx, "MarkPastDue", subscriptionID, models.SubscriptionPastDue, models.EventSubscriptionPastDue)
}

func (s *subscriptionService) MarkActive(ctx context.Context, subscriptionID int64) (*models.Subscription, error) {
	return s.markStatus(ctx, "MarkActive", subscriptionID, models.SubscriptionActive, models.EventSubscriptionActivated)
}

func (s *subscriptionService) MarkUnpaid(ctx context.Context, subscriptionID int64) (*models.Subscription, error) {
	return s.markStatus(ctx, "MarkUnpaid", subscriptionID, models.SubscriptionUnpaid, models.EventSubscriptionUnpaid)
}

// markStatus accepts any non-canceled subscription; a subscription already in
// the target status is returned unchanged.
func (s *subscriptionService) markStatus(ctx context.Context, method string, subscriptionID int64, status models.SubscriptionStatus, eventType models.LedgerEventType) (*models.Subscription, error) {
	tracer := otel.Tracer("subscription-service")
	ctx, span := tracer.Start(ctx, method)
	defer span.End()
	span.SetAttributes(attribute.Int64("subscription_id", subscriptionID))

	sub, err := s.subscriptionRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if sub.Status == models.SubscriptionCanceled {
		span.SetStatus(codes.Error, "subscription canceled")
		return nil, fmt.Errorf("%w: subscription %d is canceled", pkgerrors.ErrInvalidStateTransition, sub.ID)
	}
	if sub.Status == status {
		return sub, nil
	}

	updated, err := s.transition(ctx, sub, func(next *models.Subscription) {
		next.Status = status
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	s.events.publish(ctx, subscriptionEvent(eventType, updated, s.clock.Now()))
	return updated, nil
}

// Renew records a paid invoice: a subscription_payment transaction, the
// period advance and the move back to active commit together. The first
// invoice of a subscription pays for the period set at creation, so it does
// not advance.
func (s *subscriptionService) Renew(ctx context.Context, event models.ProcessorEvent) (*models.Subscription, error) {
	tracer := otel.Tracer("subscription-service")
	ctx, span := tracer.Start(ctx, "Renew")
	defer span.End()
	span.SetAttributes(attribute.String("processor_ref", event.SubscriptionRef), attribute.String("invoice_ref", event.InvoiceRef))

	sub, err := s.invoiceSubscription(ctx, event)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if sub.Status == models.SubscriptionCanceled {
		span.SetStatus(codes.Error, "subscription canceled")
		return nil, fmt.Errorf("%w: subscription %d is canceled", pkgerrors.ErrInvalidStateTransition, sub.ID)
	}

	amount := event.Amount
	if !amount.IsPositive() {
		amount = sub.MonthlyPrice
	}
	fee, err := s.calculator.ComputeFee(amount, models.TypeSubscriptionPayment)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	invoiceRef := event.InvoiceRef
	if invoiceRef == "" {
		invoiceRef = event.ID
	}
	payment := &models.Transaction{
		BuyerID:       sub.SubscriberID,
		SellerID:      sub.CreatorID,
		ProcessorRef:  "invoice-" + invoiceRef,
		ChargeRef:     event.ChargeRef,
		Amount:        amount,
		PlatformFee:   fee,
		Status:        models.StatusSucceeded,
		Type:          models.TypeSubscriptionPayment,
		PaymentMethod: event.PaymentMethod,
	}

	updated := *sub
	updated.Status = models.SubscriptionActive
	updated.ProcessorRef = event.SubscriptionRef
	if event.BillingReason != models.BillingReasonCreate {
		updated.SetPeriod(sub.EndDate)
	}

	if err := s.subscriptionRepo.RecordRenewal(ctx, &updated, sub.Status, payment); err != nil {
		if stderrors.Is(err, pkgerrors.ErrDuplicateTransaction) {
			slog.Info("invoice already applied",
				"method", "Renew",
				"subscription_id", sub.ID,
				"invoice_ref", invoiceRef)
			return sub, nil
		}
		span.RecordError(err)
		return nil, err
	}

	observability.SubscriptionTransitions.WithLabelValues(string(updated.Status)).Inc()
	observability.LedgerTransactions.WithLabelValues(string(payment.Type), string(payment.Status)).Inc()
	invalidateRevenueReport(ctx, s.cache, updated.CreatorID)

	now := s.clock.Now()
	s.events.publish(ctx, subscriptionEvent(models.EventSubscriptionRenewed, &updated, now))
	s.events.publish(ctx, transactionEvent(models.EventTransactionSucceeded, payment, now))
	return &updated, nil
}

// invoiceSubscription finds the subscription an invoice bills. When the
// processor reference is not stored yet (the checkout answer is still in
// flight or timed out), the id echoed in the subscription metadata is used,
// provided that row has no other processor reference.
func (s *subscriptionService) invoiceSubscription(ctx context.Context, event models.ProcessorEvent) (*models.Subscription, error) {
	sub, err := s.subscriptionRepo.GetByProcessorRef(ctx, event.SubscriptionRef)
	if err == nil || !stderrors.Is(err, pkgerrors.ErrSubscriptionNotFound) || event.SubscriptionID == 0 {
		return sub, err
	}

	sub, err = s.subscriptionRepo.GetByID(ctx, event.SubscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.ProcessorRef != "" && sub.ProcessorRef != event.SubscriptionRef {
		slog.Error("invoice subscription does not match stored reference",
			"method", "Renew",
			"subscription_id", sub.ID,
			"stored_ref", sub.ProcessorRef,
			"invoice_ref", event.InvoiceRef,
			"event_ref", event.SubscriptionRef)
		return nil, fmt.Errorf("%w: subscription %d belongs to %s", pkgerrors.ErrSubscriptionNotFound, sub.ID, sub.ProcessorRef)
	}
	slog.Info("invoice resolved by subscription metadata",
		"method", "Renew",
		"subscription_id", sub.ID,
		"processor_ref", event.SubscriptionRef)
	return sub, nil
}

func (s *subscriptionService) Get(ctx context.Context, subscriptionID, viewerID int64) (*SubscriptionView, error) {
	tracer := otel.Tracer("subscription-service")
	ctx, span := tracer.Start(ctx, "Get")
	defer span.End()

	sub, err := s.subscriptionRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if !sub.IsParticipant(viewerID) {
		span.SetStatus(codes.Error, "not a participant")
		return nil, pkgerrors.ErrUnauthorized
	}
	view := s.view(*sub)
	return &view, nil
}

func (s *subscriptionService) GetByProcessorRef(ctx context.Context, processorRef string) (*models.Subscription, error) {
	return s.subscriptionRepo.GetByProcessorRef(ctx, processorRef)
}

func (s *subscriptionService) ListAsSubscriber(ctx context.Context, subscriberID int64, filter models.SubscriptionFilter) (*SubscriptionPage, error) {
	tracer := otel.Tracer("subscription-service")
	ctx, span := tracer.Start(ctx, "ListAsSubscriber")
	defer span.End()

	filter = filter.Normalize()
	subs, total, err := s.subscriptionRepo.ListBySubscriber(ctx, subscriberID, filter, s.clock.Now())
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return s.page(subs, total, filter), nil
}

func (s *subscriptionService) ListAsCreator(ctx context.Context, creatorID int64, filter models.SubscriptionFilter) (*SubscriptionPage, error) {
	tracer := otel.Tracer("subscription-service")
	ctx, span := tracer.Start(ctx, "ListAsCreator")
	defer span.End()

	filter = filter.Normalize()
	subs, total, err := s.subscriptionRepo.ListByCreator(ctx, creatorID, filter, s.clock.Now())
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return s.page(subs, total, filter), nil
}

func (s *subscriptionService) CreatorStats(ctx context.Context, creatorID int64) (*models.CreatorSubscriptionStats, error) {
	tracer := otel.Tracer("subscription-service")
	ctx, span := tracer.Start(ctx, "CreatorStats")
	defer span.End()

	creator, err := s.userRepo.GetByID(ctx, creatorID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if !creator.IsCreator {
		span.SetStatus(codes.Error, "not a creator")
		return nil, pkgerrors.ErrNotACreator
	}
	return s.subscriptionRepo.CreatorStats(ctx, creatorID, models.AddMonthsClamped(s.clock.Now(), -1))
}

func (s *subscriptionService) transition(ctx context.Context, sub *models.Subscription, mutate func(*models.Subscription)) (*models.Subscription, error) {
	updated := *sub
	mutate(&updated)
	if err := s.subscriptionRepo.Update(ctx, &updated, sub.Status); err != nil {
		slog.Error("failed to update subscription",
			"method", "transition",
			"subscription_id", sub.ID,
			"from", sub.Status,
			"to", updated.Status,
			"error", err)
		return nil, err
	}
	if updated.Status != sub.Status {
		observability.SubscriptionTransitions.WithLabelValues(string(updated.Status)).Inc()
	}
	return &updated, nil
}

func (s *subscriptionService) view(sub models.Subscription) SubscriptionView {
	now := s.clock.Now()
	return SubscriptionView{
		Subscription:     sub,
		Expired:          sub.IsExpired(now),
		DaysUntilRenewal: sub.DaysUntilRenewal(now),
	}
}

func (s *subscriptionService) page(subs []models.Subscription, total int64, filter models.SubscriptionFilter) *SubscriptionPage {
	views := make([]SubscriptionView, 0, len(subs))
	for _, sub := range subs {
		views = append(views, s.view(sub))
	}
	return &SubscriptionPage{Subscriptions: views, Total: total, Page: filter.Page, PerPage: filter.PerPage}
}
