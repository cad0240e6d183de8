package renderer

import (
	"fmt"
	"io"

	"github.com/etnz/dashboard"
	"github.com/xuri/excelize/v2"
)

// DataSheet is the name of the sheet holding the chart values.
const DataSheet = "Chart"

// number formats of the cells, by kind.
var numFmts = map[dashboard.ValueKind]string{
	dashboard.Currency: "#,##0.00",
	dashboard.Percent:  `0.00"%"`,
}

// XLSX writes p as a workbook: one column per series on the Chart sheet and a
// native line chart of them.
//
// Every series must have one value per label, as Assemble guarantees.
func XLSX(w io.Writer, p dashboard.ChartPayload, title string) error {
	for _, s := range p.Series {
		if len(s.Values) != len(p.Labels) {
			return fmt.Errorf("%w: series %q has %d values for %d labels", dashboard.ErrSeriesLengthMismatch, s.Name, len(s.Values), len(p.Labels))
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", DataSheet); err != nil {
		return err
	}

	header := []interface{}{"Date"}
	for _, s := range p.Series {
		header = append(header, s.Name)
	}
	if err := f.SetSheetRow(DataSheet, "A1", &header); err != nil {
		return err
	}
	for i, label := range p.Labels {
		row := []interface{}{label}
		for _, s := range p.Series {
			row = append(row, s.Values[i])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(DataSheet, cell, &row); err != nil {
			return err
		}
	}

	if len(p.Labels) == 0 || len(p.Series) == 0 {
		return f.Write(w)
	}

	lastRow := len(p.Labels) + 1
	chart := &excelize.Chart{
		Type:   excelize.Line,
		Title:  []excelize.RichTextRun{{Text: title}},
		Legend: excelize.ChartLegend{Position: "bottom"},
	}
	for j, s := range p.Series {
		col, err := excelize.ColumnNumberToName(j + 2)
		if err != nil {
			return err
		}
		style, err := f.NewStyle(&excelize.Style{CustomNumFmt: ptr(numFmts[s.Kind])})
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(DataSheet, fmt.Sprintf("%s2", col), fmt.Sprintf("%s%d", col, lastRow), style); err != nil {
			return err
		}
		chart.Series = append(chart.Series, excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$%s$1", DataSheet, col),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", DataSheet, lastRow),
			Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", DataSheet, col, col, lastRow),
		})
	}
	anchor, err := excelize.CoordinatesToCellName(len(p.Series)+3, 2)
	if err != nil {
		return err
	}
	if err := f.AddChart(DataSheet, anchor, chart); err != nil {
		return fmt.Errorf("cannot add chart: %w", err)
	}
	return f.Write(w)
}

func ptr[T any](v T) *T { return &v }
