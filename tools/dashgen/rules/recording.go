package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return newPrometheusRule("adpost-recording-rules", []Rule{
		{
			Record: "adposting:api_requests:rate5m",
			Expr:   `sum(rate(adposting_api_requests_total[5m]))`,
		},
		{
			Record: "adposting:api_errors:rate5m",
			Expr:   `sum(rate(adposting_api_requests_total{outcome!~"success|not_found"}[5m]))`,
		},
		{
			Record: "adposting:sync_transitions:rate1h",
			Expr:   `sum by (to) (rate(adposting_sync_transitions_total[1h]))`,
		},
		{
			Record: "adposting:notification_duration:p95_5m",
			Expr:   `histogram_quantile(0.95, sum(rate(adposting_notification_duration_seconds_bucket[5m])) by (le))`,
		},
	})
}
