package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/honeynil/CreatorMonetizationService/internal/gateway"
	pkgerrors "github.com/honeynil/CreatorMonetizationService/pkg/errors"
)

const maxWebhookBody = 1 << 20

// ProcessorWebhook authenticates a processor notification and queues it for
// the consumer. It answers before the event is applied.
func (h *Handler) ProcessorWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody+1))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("%w: unreadable body", pkgerrors.ErrInvalidWebhookPayload))
		return
	}
	if len(payload) > maxWebhookBody {
		h.writeError(w, http.StatusRequestEntityTooLarge, fmt.Errorf("%w: body too large", pkgerrors.ErrInvalidWebhookPayload))
		return
	}

	event, err := h.webhooks.Parse(payload, r.Header.Get(gateway.SignatureHeader))
	if errors.Is(err, pkgerrors.ErrEventIgnored) {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}
	if err != nil {
		slog.Warn("rejected processor webhook", "method", "ProcessorWebhook", "error", err)
		h.writeServiceError(w, r, err)
		return
	}

	if err := h.events.Publish(r.Context(), *event); err != nil {
		slog.Error("failed to queue processor event", "method", "ProcessorWebhook", "event_id", event.ID, "error", err)
		h.writeError(w, http.StatusServiceUnavailable, errors.New("event not accepted, retry later"))
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
}
