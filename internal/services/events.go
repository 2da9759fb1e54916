package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/honeynil/CreatorMonetizationService/internal/infrastructure/kafka"
	"github.com/honeynil/CreatorMonetizationService/internal/infrastructure/redis"
	"github.com/honeynil/CreatorMonetizationService/internal/models"
)

// eventPublisher emits ledger events after the state change has committed.
// Delivery is best-effort: a failure is logged and never undoes the change.
type eventPublisher struct {
	producer kafka.KafkaProducer
	topic    string
}

func (p eventPublisher) publish(ctx context.Context, event models.LedgerEvent) {
	event.EventID = uuid.NewString()
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal ledger event", "type", event.Type, "error", err)
		return
	}

	key := strconv.FormatInt(event.SellerID, 10)
	if err := p.producer.Send(ctx, p.topic, key, payload); err != nil {
		slog.Warn("failed to publish ledger event", "type", event.Type, "event_id", event.EventID, "transaction_id", event.TransactionID, "subscription_id", event.SubscriptionID, "error", err)
	}
}

func transactionEvent(eventType models.LedgerEventType, tx *models.Transaction, at time.Time) models.LedgerEvent {
	amount, fee := tx.Amount, tx.PlatformFee
	return models.LedgerEvent{
		Type:          eventType,
		TransactionID: tx.ID,
		BuyerID:       tx.BuyerID,
		SellerID:      tx.SellerID,
		Amount:        &amount,
		PlatformFee:   &fee,
		Status:        string(tx.Status),
		OccurredAt:    at,
	}
}

func subscriptionEvent(eventType models.LedgerEventType, sub *models.Subscription, at time.Time) models.LedgerEvent {
	price := sub.MonthlyPrice
	return models.LedgerEvent{
		Type:           eventType,
		SubscriptionID: sub.ID,
		BuyerID:        sub.SubscriberID,
		SellerID:       sub.CreatorID,
		Amount:         &price,
		Status:         string(sub.Status),
		OccurredAt:     at,
	}
}

func revenueReportKey(creatorID int64) string {
	return "analytics:revenue:" + strconv.FormatInt(creatorID, 10)
}

// invalidateRevenueReport drops the cached report after the creator's committed
// figures changed.
func invalidateRevenueReport(ctx context.Context, cache redis.RedisClient, creatorID int64) {
	if err := cache.Del(ctx, revenueReportKey(creatorID)); err != nil {
		slog.Warn("failed to invalidate revenue report cache", "creator_id", creatorID, "error", err)
	}
}
