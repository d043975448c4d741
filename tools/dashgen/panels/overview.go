package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/gauge"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

// DailyQuota is the request quota QuotaGauge is drawn against.
const DailyQuota = 5000

// ProviderUpStat returns a stat panel showing whether the mock provider is
// being scraped.
func ProviderUpStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Provider").
		Description("Mock provider scrape status (1 = up, 0 = down)").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`up{job="adpost-mock-provider"}`, "", "A")).
		Thresholds(ThresholdsRedGreen(1)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone).
		TextMode(common.BigValueTextModeValue)
}

// QuotaGauge returns a gauge panel showing requests sent today as a
// percentage of the daily quota.
func QuotaGauge() *gauge.PanelBuilder {
	expr := fmt.Sprintf("adposting_quota_used / %d * 100", DailyQuota)
	return gauge.NewPanelBuilder().
		Title("Daily Quota %").
		Description("Requests sent today as percentage of the daily quota").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(expr, "", "A")).
		Unit("percent").
		Min(0).
		Max(100).
		Thresholds(ThresholdsGreenYellowRed(80, 95)).
		ColorScheme(ColorSchemeThresholds())
}

// APIErrorStat returns a stat panel showing the share of failed API calls.
func APIErrorStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("API Errors %").
		Description("Failed API calls as percentage of all calls over 5m").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			`adposting:api_errors:rate5m / adposting:api_requests:rate5m * 100`,
			"", "A",
		)).
		Unit("percent").
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeArea)
}

// TransitionsStat returns a stat panel counting status transitions seen by
// the sync in the last hour.
func TransitionsStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Transitions (1h)").
		Description("Processing status transitions recorded by the sync in the last hour").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`sum(increase(adposting_sync_transitions_total[1h]))`, "", "A")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeNone)
}
