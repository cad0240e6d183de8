package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/dashboard"
	"github.com/etnz/dashboard/agent"
	"github.com/etnz/dashboard/config"
	"github.com/etnz/dashboard/date"
	"github.com/etnz/dashboard/renderer"
	"github.com/google/subcommands"
)

// chartCmd holds the flags for the 'chart' subcommand.
type chartCmd struct {
	chartFlags
	json  bool
	query string
	xlsx  string
}

// chartFlags are the flags selecting a chart, shared by the commands drawing one.
type chartFlags struct {
	rng           string
	mode          string
	symbol        string
	baseline      string
	start         float64
	baselineStart float64
	asOf          string
	seed          uint64
	live          bool
}

func (c *chartFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.rng, "r", "1W", "Range of the chart: 1D, 1W, 1M, 3M, YTD, 1Y or 5Y")
	f.StringVar(&c.mode, "m", "value", "Display mode: value, return or vsindex")
	f.StringVar(&c.symbol, "s", "", "Symbol of the security to chart instead of the portfolio")
	f.StringVar(&c.baseline, "baseline", "", "Name of the index the chart is compared to")
	f.Float64Var(&c.start, "start", 0, "First value of the chart, the source default when zero")
	f.Float64Var(&c.baselineStart, "baseline-start", 0, "First value of the index, 95% of start when zero")
	f.StringVar(&c.asOf, "d", "", "Last day of the chart, today when empty. See the user manual for supported date formats.")
	f.Uint64Var(&c.seed, "seed", 0, "Seed of the simulated paths, random when zero")
	f.BoolVar(&c.live, "live", false, "Read live market prices, like DASH_SOURCE=live")
}

// request returns the chart request of the flags.
func (c *chartFlags) request() (dashboard.Request, error) {
	var req dashboard.Request
	var err error
	if req.Range, err = dashboard.ParseRange(c.rng); err != nil {
		return req, err
	}
	if req.Mode, err = dashboard.ParseMode(c.mode); err != nil {
		return req, err
	}
	if c.asOf != "" {
		if req.AsOf, err = date.Parse(c.asOf); err != nil {
			return req, err
		}
	}
	if c.symbol != "" {
		req.Chart, req.Symbol = dashboard.SecurityChart, c.symbol
	}
	req.Baseline = c.baseline
	req.StartValue, req.BaselineStartValue = c.start, c.baselineStart
	return req, nil
}

// draw builds the chart selected by the flags.
func (c *chartFlags) draw(ctx context.Context) (dashboard.Request, dashboard.ChartPayload, error) {
	req, err := c.request()
	if err != nil {
		return req, dashboard.ChartPayload{}, err
	}
	cfg, err := loadConfig()
	if err != nil {
		return req, dashboard.ChartPayload{}, err
	}
	if c.live {
		cfg.Source = config.SourceLive
		if err := cfg.Validate(); err != nil {
			return req, dashboard.ChartPayload{}, err
		}
	}
	p, err := newService(cfg, c.seed).Chart(ctx, req)
	return req, p, err
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "draw a chart of the portfolio or of a security" }
func (*chartCmd) Usage() string {
	return `dash chart [-r <range>] [-m <mode>] [-s <symbol>] [-json | -q <jsonpath> | -xlsx <file>]

  Draws the portfolio compared to its index, or the price of a security with -s.

  The chart is printed as a table by default. -json prints the chart payload,
  -q prints the part of the payload selected by a JSONPath expression, and
  -xlsx writes a workbook with a native line chart.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	c.chartFlags.SetFlags(f)
	f.BoolVar(&c.json, "json", false, "print the chart payload as JSON")
	f.StringVar(&c.query, "q", "", "print the result of a JSONPath query on the chart payload, e.g. '$.series[0].values'")
	f.StringVar(&c.xlsx, "xlsx", "", "write the chart to this Excel file")
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	req, p, err := c.draw(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error drawing chart: %v\n", err)
		return subcommands.ExitFailure
	}
	title := agent.Title(req)

	switch {
	case c.query != "":
		out, err := query(p, c.query)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error querying chart: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(out)
	case c.json:
		if err := writeJSON(os.Stdout, p); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding chart: %v\n", err)
			return subcommands.ExitFailure
		}
	case c.xlsx != "":
		if err := writeXLSX(c.xlsx, p, title); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.xlsx, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Chart written to %s\n", c.xlsx)
	default:
		printMarkdown(renderer.SummaryMarkdown(title, p) + "\n" + renderer.RenderChart(renderer.NewChart(title, p)))
	}
	return subcommands.ExitSuccess
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// query evaluates a JSONPath expression on the JSON form of p. Strings are
// returned as is, other values as JSON.
func query(p dashboard.ChartPayload, expr string) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return "", err
	}
	res, err := jsonpath.Get(expr, v)
	if err != nil {
		return "", err
	}
	if s, ok := res.(string); ok {
		return s, nil
	}
	out, err := json.Marshal(res)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func writeXLSX(filename string, p dashboard.ChartPayload, title string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := renderer.XLSX(f, p, title); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
