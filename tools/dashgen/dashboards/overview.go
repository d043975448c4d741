// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/adposting/tools/dashgen/panels"
)

// BuildOverview constructs the Adpost Overview dashboard with all metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Adpost Overview").
		Uid("adpost-overview").
		Tags([]string{"adpost", "adposting"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.ProviderUpStat()).
		WithPanel(panels.QuotaGauge()).
		WithPanel(panels.APIErrorStat()).
		WithPanel(panels.TransitionsStat()))

	b.WithRow(dashboard.NewRowBuilder("Ad Posting API").
		WithPanel(panels.APIRequestRate()).
		WithPanel(panels.APILatency()).
		WithPanel(panels.TokenRefreshes()).
		WithPanel(panels.RateLimitRejections()))

	b.WithRow(dashboard.NewRowBuilder("Status Sync").
		WithPanel(panels.SyncTransitions()).
		WithPanel(panels.SyncErrors()))

	b.WithRow(dashboard.NewRowBuilder("Notifications").
		WithPanel(panels.NotificationFailures()).
		WithPanel(panels.NotificationLatency()))

	b.WithRow(dashboard.NewRowBuilder("Mock Provider").
		WithPanel(panels.ProviderRequestRate()).
		WithPanel(panels.ProviderLatency()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
