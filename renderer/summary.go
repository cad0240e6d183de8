package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/dashboard"
	md "github.com/nao1215/markdown"
)

// Stats are the headline numbers of a series.
type Stats struct {
	Name        string
	Kind        dashboard.ValueKind
	First, Last float64
	Min, Max    float64
}

// Change returns the variation over the chart: the return for currency
// series, the difference in points for percent ones.
func (s Stats) Change() dashboard.Pct {
	if s.Kind == dashboard.Percent {
		return dashboard.Pct(s.Last - s.First)
	}
	if s.First == 0 {
		return 0
	}
	return dashboard.Pct((s.Last - s.First) / s.First * 100)
}

// Summary returns the Stats of every non empty series of p.
func Summary(p dashboard.ChartPayload) []Stats {
	var stats []Stats
	for _, s := range p.Series {
		if len(s.Values) == 0 {
			continue
		}
		st := Stats{Name: s.Name, Kind: s.Kind, First: s.Values.First(), Last: s.Values.Last(), Min: s.Values[0], Max: s.Values[0]}
		for _, v := range s.Values[1:] {
			st.Min = min(st.Min, v)
			st.Max = max(st.Max, v)
		}
		stats = append(stats, st)
	}
	return stats
}

// SummaryMarkdown renders a compact summary of p, one line per series.
func SummaryMarkdown(title string, p dashboard.ChartPayload) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2(title)
	doc.PlainText(fmt.Sprintf("%d points from %s to %s", p.Len(), first(p.Labels), last(p.Labels)))

	table := md.TableSet{Header: []string{"Series", "Last", "Change"}}
	for _, st := range Summary(p) {
		table.Rows = append(table.Rows, []string{st.Name, st.Kind.Format(st.Last, p.Currency), st.Change().SignedString()})
	}
	doc.Table(table)

	return doc.String()
}

func first(labels []string) string {
	if len(labels) == 0 {
		return "-"
	}
	return labels[0]
}

func last(labels []string) string {
	if len(labels) == 0 {
		return "-"
	}
	return labels[len(labels)-1]
}
