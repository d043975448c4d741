package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRule_Check(t *testing.T) {
	t.Parallel()

	summary := map[string]string{"summary": "something broke"}

	tests := []struct {
		name    string
		rule    Rule
		wantErr string
	}{
		{
			name: "recording rule",
			rule: Rule{Record: "adposting:api_requests:rate5m", Expr: "x"},
		},
		{
			name: "alert rule",
			rule: Rule{Alert: "A", Expr: "x", Labels: map[string]string{"severity": "critical"}, Annotations: summary},
		},
		{
			name:    "neither record nor alert",
			rule:    Rule{Expr: "x"},
			wantErr: "neither record nor alert",
		},
		{
			name:    "both record and alert",
			rule:    Rule{Record: "r", Alert: "A", Expr: "x"},
			wantErr: "sets both",
		},
		{
			name:    "recording rule with for",
			rule:    Rule{Record: "r", Expr: "x", For: "5m"},
			wantErr: "sets for",
		},
		{
			name:    "recording rule with annotations",
			rule:    Rule{Record: "r", Expr: "x", Annotations: summary},
			wantErr: "has annotations",
		},
		{
			name:    "alert with unknown severity",
			rule:    Rule{Alert: "A", Expr: "x", Labels: map[string]string{"severity": "page"}, Annotations: summary},
			wantErr: `severity "page"`,
		},
		{
			name:    "alert without summary",
			rule:    Rule{Alert: "A", Expr: "x", Labels: map[string]string{"severity": "info"}},
			wantErr: "no summary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.rule.Check()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPrometheusRule_AllRules(t *testing.T) {
	t.Parallel()

	cr := newPrometheusRule("adpost-test", []Rule{{Record: "a"}, {Alert: "B"}})
	cr.Spec.Groups = append(cr.Spec.Groups, RuleGroup{Name: "extra", Rules: []Rule{{Record: "c"}}})

	assert.Equal(t, apiVersion, cr.APIVersion)
	assert.Equal(t, kind, cr.Kind)
	assert.Equal(t, "adpost-test", cr.Spec.Groups[0].Name)

	var names []string
	for _, r := range cr.AllRules() {
		names = append(names, r.Name())
	}
	assert.Equal(t, []string{"a", "B", "c"}, names)
}

func TestGeneratedRulesPassCheck(t *testing.T) {
	t.Parallel()

	for _, cr := range []PrometheusRule{RecordingRules(), AlertRules()} {
		for _, r := range cr.AllRules() {
			assert.NoError(t, r.Check(), r.Name())
		}
	}
}
