package main

import "errors"

// KnownMetrics is the set of metric names exported by adposting plus the
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// Client metrics.
	"adposting_api_requests_total":                  true,
	"adposting_api_request_duration_seconds_bucket": true,
	"adposting_token_refreshes_total":               true,
	"adposting_quota_used":                          true,
	"adposting_rate_limit_rejections_total":         true,

	// Status sync metrics.
	"adposting_sync_runs_total":                      true,
	"adposting_sync_transitions_total":               true,
	"adposting_sync_errors_total":                    true,
	"adposting_notification_failures_total":          true,
	"adposting_notification_duration_seconds_bucket": true,

	// Mock provider metrics.
	"adposting_provider_http_requests_total":                  true,
	"adposting_provider_http_request_duration_seconds_bucket": true,

	// Recording rules.
	"adposting:api_requests:rate5m":          true,
	"adposting:api_errors:rate5m":            true,
	"adposting:sync_transitions:rate1h":      true,
	"adposting:notification_duration:p95_5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
