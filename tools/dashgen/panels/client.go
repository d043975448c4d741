package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// APIRequestRate returns a timeseries panel showing API calls per second
// split by outcome.
func APIRequestRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("API Requests").
		Description("Ad Posting API calls per second by outcome").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum by (outcome) (rate(adposting_api_requests_total[5m]))`,
			"{{outcome}}", "A",
		)).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic())
}

// APILatency returns a timeseries panel showing API call latency
// percentiles per operation.
func APILatency() *timeseries.PanelBuilder {
	return quantiles(
		timeseriesPanel("API Latency", "Ad Posting API call duration percentiles", "s"),
		"adposting_api_request_duration_seconds_bucket", "", "operation",
	)
}

// TokenRefreshes returns a timeseries panel showing OAuth token refreshes
// by result.
func TokenRefreshes() *timeseries.PanelBuilder {
	return timeseriesPanel("Token Refreshes", "OAuth token refreshes by result", "short").
		WithTarget(PromQuery(
			`sum by (result) (increase(adposting_token_refreshes_total[1h]))`,
			"{{result}}", "A",
		))
}

// RateLimitRejections returns a timeseries panel showing calls refused
// locally because the daily quota was spent.
func RateLimitRejections() *timeseries.PanelBuilder {
	return timeseriesPanel("Rate Limit Rejections", "Calls refused before sending because the daily quota was reached", "short").
		WithTarget(PromQuery(`increase(adposting_rate_limit_rejections_total[5m])`, "rejections", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 10)).
		ColorScheme(ColorSchemeThresholds())
}
