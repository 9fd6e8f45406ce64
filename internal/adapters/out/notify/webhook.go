// Package notify delivers driver notifications through an external messaging
// gateway webhook. Delivery is best-effort by contract: the engine calls
// this only after its own state has committed.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"dispatch/internal/core/ports"
)

const requestTimeout = 3 * time.Second

// WebhookNotifier posts notifications as JSON to a messaging gateway. The
// gateway fans out to the requested channels (whatsapp, sms); this adapter
// only hands the payload over.
type WebhookNotifier struct {
	url    string
	client *http.Client
	log    *slog.Logger
}

// NewWebhookNotifier creates a notifier posting to the given URL.
func NewWebhookNotifier(url string, log *slog.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: requestTimeout},
		log:    log,
	}
}

type webhookPayload struct {
	OrderReference string   `json:"order_reference"`
	DriverID       string   `json:"driver_id"`
	Phone          string   `json:"phone"`
	Message        string   `json:"message"`
	Channels       []string `json:"channels"`
}

// Notify posts the notification to the gateway. A non-2xx response is an
// error; the caller decides whether to count or log it, never to retry the
// state change.
func (n *WebhookNotifier) Notify(ctx context.Context, notification ports.Notification) error {
	channels := make([]string, 0, len(notification.Channels))
	for _, channel := range notification.Channels {
		channels = append(channels, string(channel))
	}

	body, err := json.Marshal(webhookPayload{
		OrderReference: notification.OrderReference,
		DriverID:       notification.DriverID.String(),
		Phone:          notification.Phone,
		Message:        notification.Message,
		Channels:       channels,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.log.Warn("notification delivery failed", "order", notification.OrderReference, "error", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err = fmt.Errorf("notification gateway returned %s", resp.Status)
		n.log.Warn("notification delivery rejected", "order", notification.OrderReference, "status", resp.Status)
		return err
	}

	return nil
}
