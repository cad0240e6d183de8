package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/dashboard"
	"github.com/etnz/dashboard/date"
	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"
)

type rangesCmd struct {
	asOf string
}

func (*rangesCmd) Name() string     { return "ranges" }
func (*rangesCmd) Synopsis() string { return "list the chart ranges" }
func (*rangesCmd) Usage() string {
	return `dash ranges [-d <date>]

  Lists the ranges of the charts with their number of points, label format and
  volatility, for security charts and for the portfolio performance chart.
`
}

func (c *rangesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asOf, "d", date.Today().String(), "Day the year to date range is sized from")
}

func (c *rangesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.Parse(c.asOf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	out, err := rangesMarkdown(on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing ranges: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(out)
	return subcommands.ExitSuccess
}

// rangesMarkdown renders the range tables of both profiles as of a day.
func rangesMarkdown(on date.Date) (string, error) {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	for _, p := range []dashboard.Profile{dashboard.Market, dashboard.Performance} {
		table := md.TableSet{Header: []string{"Range", "Points", "Data points", "Labels", "Volatility", "Index volatility"}}
		for _, id := range dashboard.Ranges() {
			s, err := p.ResolveAt(id, on)
			if err != nil {
				return "", err
			}
			table.Rows = append(table.Rows, []string{
				id.String(),
				strconv.Itoa(s.PointCount),
				strconv.Itoa(s.DataPoints),
				s.Format.String(),
				dashboard.Pct(s.Volatility * 100).String(),
				dashboard.Pct(s.BaselineVolatility * 100).String(),
			})
		}
		doc.H2(fmt.Sprintf("%s ranges", p))
		doc.Table(table)
	}
	return doc.String(), nil
}
