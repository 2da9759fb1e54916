package kafka

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"

	"github.com/honeynil/CreatorMonetizationService/internal/infrastructure/observability"
	"github.com/honeynil/CreatorMonetizationService/internal/models"
	"github.com/segmentio/kafka-go"
)

// ProcessorEventHandler applies one processor event. Returning an error leaves
// the message uncommitted so it is redelivered.
type ProcessorEventHandler interface {
	Handle(ctx context.Context, event models.ProcessorEvent) error
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Consumer struct {
	reader  messageReader
	topic   string
	handler ProcessorEventHandler
}

func NewConsumer(brokers []string, topic, groupID string, handler ProcessorEventHandler) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 10e3,
			MaxBytes: 10e6,
		}),
		topic:   topic,
		handler: handler,
	}
}

// Consume runs until ctx is cancelled. A message is committed once it was
// applied or judged unprocessable; handler failures stop the loop so the
// message is redelivered on restart instead of being skipped.
func (c *Consumer) Consume(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			slog.Error("failed to read Kafka message", "topic", c.topic, "error", err)
			return err
		}

		var event models.ProcessorEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			slog.Error("failed to unmarshal processor event, skipping", "topic", msg.Topic, "offset", msg.Offset, "error", err)
			observability.ProcessorEvents.WithLabelValues("unknown", "malformed").Inc()
			if err := c.commit(ctx, msg); err != nil {
				return err
			}
			continue
		}

		if err := c.handler.Handle(ctx, event); err != nil {
			if stderrors.Is(err, context.Canceled) {
				return nil
			}
			slog.Error("failed to handle processor event", "event_id", event.ID, "type", event.Type, "offset", msg.Offset, "error", err)
			observability.ProcessorEvents.WithLabelValues(string(event.Type), "error").Inc()
			return err
		}

		observability.ProcessorEvents.WithLabelValues(string(event.Type), "applied").Inc()
		if err := c.commit(ctx, msg); err != nil {
			return err
		}
	}
}

func (c *Consumer) commit(ctx context.Context, msg kafka.Message) error {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		slog.Error("failed to commit Kafka message", "topic", msg.Topic, "offset", msg.Offset, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
