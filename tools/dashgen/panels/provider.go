package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// ProviderRequestRate returns a timeseries panel showing requests served by
// the mock provider per status code.
func ProviderRequestRate() *timeseries.PanelBuilder {
	return timeseriesPanel("Provider Requests", "Requests served by the mock provider", "reqps").
		WithTarget(PromQuery(
			`sum by (status) (rate(adposting_provider_http_requests_total[5m]))`,
			"{{status}}", "A",
		))
}

// ProviderLatency returns a timeseries panel showing mock provider latency
// percentiles.
func ProviderLatency() *timeseries.PanelBuilder {
	return quantiles(
		timeseriesPanel("Provider Latency", "Mock provider request duration percentiles", "s"),
		"adposting_provider_http_request_duration_seconds_bucket", "", "",
	)
}
