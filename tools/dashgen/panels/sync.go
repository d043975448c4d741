package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// SyncTransitions returns a timeseries panel showing processing status
// transitions by target status.
func SyncTransitions() *timeseries.PanelBuilder {
	return timeseriesPanel("Status Transitions", "Pending submissions that moved to a final status", "short").
		WithTarget(PromQuery(`sum by (to) (increase(adposting_sync_transitions_total[1h]))`, "{{to}}", "A"))
}

// SyncErrors returns a timeseries panel comparing sync runs with the
// submissions that failed to refresh.
func SyncErrors() *timeseries.PanelBuilder {
	return timeseriesPanel("Sync Runs and Errors", "Sync runs and per-submission refresh failures", "short").
		WithTarget(PromQuery(`increase(adposting_sync_runs_total[1h])`, "runs", "A")).
		WithTarget(PromQuery(`increase(adposting_sync_errors_total[1h])`, "errors", "B"))
}

// NotificationFailures returns a timeseries panel showing failed
// notification deliveries.
func NotificationFailures() *timeseries.PanelBuilder {
	return timeseriesPanel("Notification Failures", "Status change notifications that could not be delivered", "short").
		WithTarget(PromQuery(`increase(adposting_notification_failures_total[5m])`, "failures", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds())
}

// NotificationLatency returns a timeseries panel showing webhook delivery
// latency.
func NotificationLatency() *timeseries.PanelBuilder {
	return timeseriesPanel("Notification Latency", "p95 webhook delivery duration", "s").
		WithTarget(PromQuery(`adposting:notification_duration:p95_5m`, "p95", "A"))
}
