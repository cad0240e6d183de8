package renderer

import "github.com/etnz/dashboard"

// Chart is the markdown view of a chart payload, all values formatted.
type Chart struct {
	Title     string       `json:"title"`
	Axis      string       `json:"axis"`
	Columns   []string     `json:"columns"`
	Rows      []ChartRow   `json:"rows"`
	Summaries []SummaryRow `json:"summaries,omitempty"`
}

// ChartRow is one label of the chart and the value of each series there.
type ChartRow struct {
	Label string   `json:"label"`
	Cells []string `json:"cells"`
}

// SummaryRow is the formatted Stats of a series.
type SummaryRow struct {
	Name   string `json:"name"`
	First  string `json:"first"`
	Last   string `json:"last"`
	Min    string `json:"min"`
	Max    string `json:"max"`
	Change string `json:"change"`
}

// NewChart formats a payload for RenderChart. Values are formatted according
// to their kind, currency amounts in p.Currency. Missing values are "-".
func NewChart(title string, p dashboard.ChartPayload) *Chart {
	c := &Chart{
		Title:   title,
		Axis:    "Date",
		Columns: make([]string, len(p.Series)),
		Rows:    make([]ChartRow, len(p.Labels)),
	}
	for j, s := range p.Series {
		c.Columns[j] = s.Name
	}
	for i, label := range p.Labels {
		row := ChartRow{Label: label, Cells: make([]string, len(p.Series))}
		for j, s := range p.Series {
			row.Cells[j] = "-"
			if i < len(s.Values) {
				row.Cells[j] = s.Kind.Format(s.Values[i], p.Currency)
			}
		}
		c.Rows[i] = row
	}
	for _, st := range Summary(p) {
		c.Summaries = append(c.Summaries, SummaryRow{
			Name:   st.Name,
			First:  st.Kind.Format(st.First, p.Currency),
			Last:   st.Kind.Format(st.Last, p.Currency),
			Min:    st.Kind.Format(st.Min, p.Currency),
			Max:    st.Kind.Format(st.Max, p.Currency),
			Change: st.Change().SignedString(),
		})
	}
	return c
}
