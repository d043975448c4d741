package rules

// AlertRules returns a PrometheusRule CR containing alert rules for the ad
// posting client and its status sync.
func AlertRules() PrometheusRule {
	return newPrometheusRule("adpost-alerts", []Rule{
		{
			Alert: "AdpostHighAPIErrorRate",
			Expr:  `adposting:api_errors:rate5m / adposting:api_requests:rate5m > 0.05`,
			For:   "5m",
			Labels: map[string]string{
				"severity": "warning",
			},
			Annotations: map[string]string{
				"summary":     "High Ad Posting API error rate",
				"description": "More than 5% of Ad Posting API calls failed over the last 5 minutes.",
			},
		},
		{
			Alert: "AdpostUnauthorized",
			Expr:  `increase(adposting_api_requests_total{outcome="unauthorized"}[5m]) > 0`,
			For:   "0m",
			Labels: map[string]string{
				"severity": "critical",
			},
			Annotations: map[string]string{
				"summary":     "Ad Posting API rejected the client credentials",
				"description": "Calls are failing with 401 or 403. Check the OAuth client and advertiser relationship.",
			},
		},
		{
			Alert: "AdpostTokenRefreshFailing",
			Expr:  `increase(adposting_token_refreshes_total{result="error"}[15m]) > 0`,
			For:   "5m",
			Labels: map[string]string{
				"severity": "warning",
			},
			Annotations: map[string]string{
				"summary":     "OAuth token refresh is failing",
				"description": "The token endpoint has refused or failed refresh attempts for more than 5 minutes.",
			},
		},
		{
			Alert: "AdpostQuotaHigh",
			Expr:  `adposting_quota_used > 4000`,
			For:   "5m",
			Labels: map[string]string{
				"severity": "warning",
			},
			Annotations: map[string]string{
				"summary":     "Daily request quota is above 80%",
				"description": "More than 4000 requests have been sent today (quota is 5000).",
			},
		},
		{
			Alert: "AdpostQuotaReached",
			Expr:  `increase(adposting_rate_limit_rejections_total[5m]) > 0`,
			For:   "0m",
			Labels: map[string]string{
				"severity": "critical",
			},
			Annotations: map[string]string{
				"summary":     "Daily request quota has been reached",
				"description": "Calls are refused locally until the quota window resets. Status sync is paused.",
			},
		},
		{
			Alert: "AdpostSyncErrors",
			Expr:  `increase(adposting_sync_errors_total[15m]) > 0`,
			For:   "15m",
			Labels: map[string]string{
				"severity": "warning",
			},
			Annotations: map[string]string{
				"summary":     "Status sync cannot refresh submissions",
				"description": "Pending submissions have failed to refresh for more than 15 minutes.",
			},
		},
		{
			Alert: "AdpostAdvertisementsFailing",
			Expr:  `adposting:sync_transitions:rate1h{to="Failed"} > 0`,
			For:   "0m",
			Labels: map[string]string{
				"severity": "warning",
			},
			Annotations: map[string]string{
				"summary":     "Advertisements are failing processing",
				"description": "At least one submission moved to Failed in the last hour.",
			},
		},
		{
			Alert: "AdpostNotificationFailures",
			Expr:  `increase(adposting_notification_failures_total[5m]) > 0`,
			For:   "1m",
			Labels: map[string]string{
				"severity": "warning",
			},
			Annotations: map[string]string{
				"summary":     "Notification delivery failures detected",
				"description": "One or more status change notifications (Discord webhooks) have failed to send.",
			},
		},
	})
}
