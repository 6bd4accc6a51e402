package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/skycast-io/skycast/internal/alerts"
)

// WebhookDispatcher POSTs notifications as JSON to a push-gateway URL.
// The gateway owns platform scheduling and permission state; a non-2xx
// response is reported as an error for logging but is otherwise
// inconsequential to the caller.
type WebhookDispatcher struct {
	client   *http.Client
	sinkURL  string
	channels map[alerts.Channel]ChannelConfig
}

// NewWebhookDispatcher builds a dispatcher for the given sink. The
// channel set is injected so deployments can override grouping and
// importance without code changes.
func NewWebhookDispatcher(client *http.Client, sinkURL string, channels map[alerts.Channel]ChannelConfig) *WebhookDispatcher {
	if channels == nil {
		channels = DefaultChannels()
	}
	return &WebhookDispatcher{
		client:   client,
		sinkURL:  sinkURL,
		channels: channels,
	}
}

func (d *WebhookDispatcher) Dispatch(ctx context.Context, decision alerts.Decision, delay time.Duration) error {
	n := newNotification(decision, delay, d.channels)

	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encoding notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.sinkURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building sink request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting notification %s: %w", n.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sink rejected notification %s: status %d", n.ID, resp.StatusCode)
	}
	return nil
}
