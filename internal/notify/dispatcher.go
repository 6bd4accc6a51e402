package notify

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/skycast-io/skycast/internal/alerts"
)

// Dispatcher schedules a notification for delivery after the given
// delay. Implementations must be safe for concurrent use. Errors are
// informational; callers log them and never retry or block on them.
type Dispatcher interface {
	Dispatch(ctx context.Context, decision alerts.Decision, delay time.Duration) error
}

// Notification is the wire form handed to a delivery sink.
type Notification struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	Body      string          `json:"body"`
	Severity  alerts.Severity `json:"severity"`
	Channel   ChannelConfig   `json:"channel"`
	DeliverAt time.Time       `json:"deliverAt"`
}

// newNotification stamps a decision into its deliverable form.
func newNotification(d alerts.Decision, delay time.Duration, channels map[alerts.Channel]ChannelConfig) Notification {
	ch, ok := channels[d.Channel]
	if !ok {
		// Unknown channel routes to general rather than dropping the alert.
		ch = DefaultChannels()[alerts.ChannelGeneral]
	}
	return Notification{
		ID:        uuid.New(),
		Title:     d.Title,
		Body:      d.Body,
		Severity:  d.Severity,
		Channel:   ch,
		DeliverAt: time.Now().UTC().Add(delay),
	}
}

// LogDispatcher writes notifications to the process log. It is the
// default sink when no webhook is configured, and doubles as the
// permission-denied fallback: delivery problems must never surface as
// hard failures to the alerting flow.
type LogDispatcher struct {
	Channels map[alerts.Channel]ChannelConfig
}

func NewLogDispatcher() *LogDispatcher {
	return &LogDispatcher{Channels: DefaultChannels()}
}

func (d *LogDispatcher) Dispatch(ctx context.Context, decision alerts.Decision, delay time.Duration) error {
	n := newNotification(decision, delay, d.Channels)
	log.Printf("notify: [%s/%s] %s: %s (deliver at %s)",
		n.Channel.ID, n.Severity, n.Title, n.Body, n.DeliverAt.Format(time.RFC3339))
	return nil
}
