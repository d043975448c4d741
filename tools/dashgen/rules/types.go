// Package rules generates the adpost Prometheus recording and alert rules
// as Prometheus Operator PrometheusRule resources.
package rules

import (
	"errors"
	"fmt"
	"slices"
)

const (
	apiVersion = "monitoring.coreos.com/v1"
	kind       = "PrometheusRule"

	// selectorLabel routes the resource to the cluster's rule-evaluating Prometheus.
	selectorLabel = "prometheus"
	selectorValue = "system-rules-prometheus"
)

// Severities accepted on alert rules.
var Severities = []string{"info", "warning", "critical"}

// PrometheusRule is the PrometheusRule custom resource written to deploy/prometheus.
type PrometheusRule struct {
	APIVersion string                 `yaml:"apiVersion"`
	Kind       string                 `yaml:"kind"`
	Metadata   PrometheusRuleMetadata `yaml:"metadata"`
	Spec       PrometheusRuleSpec     `yaml:"spec"`
}

// PrometheusRuleMetadata holds the resource name and labels.
type PrometheusRuleMetadata struct {
	Name   string            `yaml:"name"`
	Labels map[string]string `yaml:"labels,omitempty"`
}

// PrometheusRuleSpec holds the rule groups.
type PrometheusRuleSpec struct {
	Groups []RuleGroup `yaml:"groups"`
}

// RuleGroup is a named collection of recording or alerting rules.
type RuleGroup struct {
	Name     string `yaml:"name"`
	Interval string `yaml:"interval,omitempty"`
	Rules    []Rule `yaml:"rules"`
}

// Rule is a single recording rule (Record set) or alerting rule (Alert set).
type Rule struct {
	Record      string            `yaml:"record,omitempty"`
	Alert       string            `yaml:"alert,omitempty"`
	Expr        string            `yaml:"expr"`
	For         string            `yaml:"for,omitempty"`
	Labels      map[string]string `yaml:"labels,omitempty"`
	Annotations map[string]string `yaml:"annotations,omitempty"`
}

// newPrometheusRule wraps a single group of rules in a resource carrying the
// adpost selector label. The group shares the resource name.
func newPrometheusRule(name string, rules []Rule) PrometheusRule {
	return PrometheusRule{
		APIVersion: apiVersion,
		Kind:       kind,
		Metadata: PrometheusRuleMetadata{
			Name:   name,
			Labels: map[string]string{selectorLabel: selectorValue},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{{Name: name, Rules: rules}},
		},
	}
}

// AllRules returns every rule of every group in declaration order.
func (p PrometheusRule) AllRules() []Rule {
	var out []Rule
	for _, g := range p.Spec.Groups {
		out = append(out, g.Rules...)
	}
	return out
}

// Name returns the recorded series name or the alert name.
func (r Rule) Name() string {
	if r.Record != "" {
		return r.Record
	}
	return r.Alert
}

// Check reports structural problems: a rule must be exactly one of recording
// or alerting, recording rules take no For or annotations, and alerts carry a
// known severity and a summary.
func (r Rule) Check() error {
	var errs []error
	switch {
	case r.Record == "" && r.Alert == "":
		errs = append(errs, errors.New("rule has neither record nor alert"))
	case r.Record != "" && r.Alert != "":
		errs = append(errs, fmt.Errorf("rule %q sets both record and alert", r.Record))
	case r.Record != "":
		if r.For != "" {
			errs = append(errs, fmt.Errorf("recording rule %q sets for", r.Record))
		}
		if len(r.Annotations) > 0 {
			errs = append(errs, fmt.Errorf("recording rule %q has annotations", r.Record))
		}
	default:
		if sev := r.Labels["severity"]; !slices.Contains(Severities, sev) {
			errs = append(errs, fmt.Errorf("alert %q has severity %q, want one of %v", r.Alert, sev, Severities))
		}
		if r.Annotations["summary"] == "" {
			errs = append(errs, fmt.Errorf("alert %q has no summary", r.Alert))
		}
	}
	return errors.Join(errs...)
}
