package rungate

import (
	"fmt"
	"os"
	"time"

	"binchecker/config"
)

// Signals describes how this invocation was triggered, as reported by the
// automation environment
type Signals struct {
	OnAutomation bool   // running under the scheduled-automation environment
	Event        string // which trigger fired, e.g. "schedule" or "workflow_dispatch"
}

// SignalsFromEnv reads the trigger signals from the GitHub Actions environment
func SignalsFromEnv() Signals {
	return Signals{
		OnAutomation: os.Getenv("GITHUB_ACTIONS") == "true",
		Event:        os.Getenv("GITHUB_EVENT_NAME"),
	}
}

// Gate decides whether an invocation should proceed. The upstream scheduler
// may fire more often or with more jitter than wanted; the gate enforces
// "once, near a specific local evening hour" independent of its precision.
type Gate struct {
	hour    int
	minutes int
	loc     *time.Location
}

// New creates a Gate for the configured window and timezone
func New(cfg *config.Config) (*Gate, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	return &Gate{
		hour:    cfg.RunWindow.Hour,
		minutes: cfg.RunWindow.Minutes,
		loc:     loc,
	}, nil
}

// ShouldRun reports whether this invocation should proceed. Manual runs always
// proceed; scheduled runs only inside the local-time window.
func (g *Gate) ShouldRun(sig Signals, now time.Time) bool {
	if !sig.OnAutomation {
		return true
	}
	if sig.Event != "schedule" {
		return true
	}
	local := now.In(g.loc)
	return local.Hour() == g.hour && local.Minute() < g.minutes
}

// WindowDescription renders the window for log messages, e.g. "19:00-19:14"
func (g *Gate) WindowDescription() string {
	return fmt.Sprintf("%02d:00-%02d:%02d %s", g.hour, g.hour, g.minutes-1, g.loc)
}
