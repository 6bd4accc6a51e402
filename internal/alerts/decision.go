// Package alerts contains the weather alert rule evaluator, the insight
// generator, and the daily summary builder. All of them are pure
// functions over a weather.Snapshot: no I/O, no shared state, safe to
// call concurrently.
package alerts

// Severity mirrors the notification priority the platform attaches to a
// delivered alert.
type Severity string

const (
	SeverityDefault Severity = "default"
	SeverityHigh    Severity = "high"
	SeverityMax     Severity = "max"
)

// Channel is the notification category used for platform-level grouping.
type Channel string

const (
	ChannelGeneral      Channel = "general"
	ChannelSevere       Channel = "severe"
	ChannelDailySummary Channel = "daily_summary"
)

// PlatformID returns the platform notification-channel identifier.
func (c Channel) PlatformID() string {
	switch c {
	case ChannelSevere:
		return "severe-weather"
	case ChannelDailySummary:
		return "daily-summary"
	default:
		return "weather-alerts"
	}
}

// Decision is the outcome of one evaluation: the notification to send.
// It is consumed immediately by the dispatcher and never persisted.
type Decision struct {
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Severity Severity `json:"severity"`
	Channel  Channel  `json:"channel"`
}
