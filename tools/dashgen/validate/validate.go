// Package validate checks generated dashboards and rules against the PromQL
// grammar and the set of metrics adposting exports.
package validate

import (
	"fmt"
	"sort"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/adposting/tools/dashgen/rules"
)

// Result collects validation findings. Errors fail generation; warnings
// are reported.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Dashboard parses every Prometheus target in the dashboard and checks that
// each metric it selects is known.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var res Result
	for _, p := range dash.Panels {
		switch {
		case p.Panel != nil:
			checkPanel(&res, *p.Panel, known)
		case p.RowPanel != nil:
			for _, inner := range p.RowPanel.Panels {
				checkPanel(&res, inner, known)
			}
		}
	}
	return res
}

func checkPanel(res *Result, p dashboard.Panel, known map[string]bool) {
	title := "<untitled>"
	if p.Title != nil {
		title = *p.Title
	}
	if len(p.Targets) == 0 {
		res.warnf("panel %q has no targets", title)
		return
	}
	for _, t := range p.Targets {
		q, ok := t.(*prometheus.Dataquery)
		if !ok {
			res.warnf("panel %q has a non-prometheus target", title)
			continue
		}
		checkExpr(res, "panel "+title, q.Expr, known)
	}
}

// Rules checks the structure of every rule, parses its expression and checks
// its metrics. Recording rule names must themselves be known so dashboards can
// reference them.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var res Result
	for _, r := range cr.AllRules() {
		if err := r.Check(); err != nil {
			res.errorf("%v", err)
		}
		if r.Record != "" && !known[r.Record] {
			res.errorf("recording rule %q is not a known metric", r.Record)
		}
		checkExpr(&res, "rule "+r.Name(), r.Expr, known)
	}
	return res
}

func checkExpr(res *Result, where, expr string, known map[string]bool) {
	if expr == "" {
		res.errorf("%s: empty expression", where)
		return
	}
	names, err := Metrics(expr)
	if err != nil {
		res.errorf("%s: %v", where, err)
		return
	}
	for _, n := range names {
		if !known[n] {
			res.errorf("%s: unknown metric %q", where, n)
		}
	}
}

// Metrics returns the sorted, de-duplicated metric names selected by a
// PromQL expression.
func Metrics(expr string) ([]string, error) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", expr, err)
	}

	seen := make(map[string]bool)
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		if vs, ok := n.(*parser.VectorSelector); ok && vs.Name != "" {
			seen[vs.Name] = true
		}
		return nil
	})

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}
