package commands

import (
	"context"

	dashboard "github.com/goliatone/go-shopping-dashboard/components/dashboard"
)

// Telemetry is shared with the dashboard page so one sink observes both.
type Telemetry = dashboard.Telemetry

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return dashboard.TelemetryFunc(func(context.Context, string, map[string]any) {})
	}
	return t
}
