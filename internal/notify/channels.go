// Package notify is the notification dispatch boundary. Dispatch is
// best-effort and fire-and-forget: callers log failures and move on, and
// nothing here can fail the alert evaluation that produced the decision.
package notify

import "github.com/skycast-io/skycast/internal/alerts"

// Importance mirrors the platform's notification-channel importance levels.
type Importance string

const (
	ImportanceDefault Importance = "default"
	ImportanceHigh    Importance = "high"
	ImportanceMax     Importance = "max"
)

// ChannelConfig describes one platform notification channel. The set of
// channels is injected configuration, not global state; the platform
// layer registers them on its side using these definitions.
type ChannelConfig struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	Importance       Importance `json:"importance"`
	VibrationPattern []int      `json:"vibrationPattern,omitempty"`
	LightColor       string     `json:"lightColor,omitempty"`
	Sound            string     `json:"sound"`
	BypassDND        bool       `json:"bypassDnd,omitempty"`
}

// DefaultChannels returns the standard channel set, keyed by the alert
// channel that routes to each.
func DefaultChannels() map[alerts.Channel]ChannelConfig {
	return map[alerts.Channel]ChannelConfig{
		alerts.ChannelGeneral: {
			ID:               alerts.ChannelGeneral.PlatformID(),
			Name:             "Weather Alerts",
			Description:      "Important weather notifications and alerts",
			Importance:       ImportanceHigh,
			VibrationPattern: []int{0, 250, 250, 250},
			LightColor:       "#FF231F7C",
			Sound:            "default",
		},
		alerts.ChannelDailySummary: {
			ID:          alerts.ChannelDailySummary.PlatformID(),
			Name:        "Daily Weather Summary",
			Description: "Daily weather updates and forecasts",
			Importance:  ImportanceDefault,
			Sound:       "default",
		},
		alerts.ChannelSevere: {
			ID:               alerts.ChannelSevere.PlatformID(),
			Name:             "Severe Weather Warnings",
			Description:      "Critical weather warnings requiring immediate attention",
			Importance:       ImportanceMax,
			VibrationPattern: []int{0, 500, 250, 500},
			LightColor:       "#FF0000",
			Sound:            "default",
			BypassDND:        true,
		},
	}
}
