package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/etnz/dashboard"
	"github.com/etnz/dashboard/renderer"
	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"
)

// portfolioCmd implements the "portfolio" command.
type portfolioCmd struct {
	json bool
}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "print the portfolio summary and holdings" }
func (*portfolioCmd) Usage() string {
	return `dash portfolio [-json]

  Prints the value, gain and dividend yield of the demo portfolio, and its
  holdings valued at the catalog prices.
`
}

func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "print the summary and holdings as JSON")
}

func (c *portfolioCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	p, err := newService(cfg, 0).Portfolio(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.json {
		out := struct {
			Summary  dashboard.Summary   `json:"summary"`
			Holdings []dashboard.Holding `json:"holdings"`
		}{p.Summary(), p.Holdings}
		if err := writeJSON(os.Stdout, out); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding portfolio: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(portfolioMarkdown(p, cfg.Currency))
	return subcommands.ExitSuccess
}

// portfolioMarkdown renders the summary and the holdings of p.
func portfolioMarkdown(p dashboard.Portfolio, currency string) string {
	money := func(v float64) string { return dashboard.FormatCurrency(v, currency) }
	s := p.Summary()

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H2("Portfolio")
	doc.Table(md.TableSet{
		Header: []string{"Value", "Gain", "Day change", "Annual dividends", "Yield", "Yield on cost"},
		Rows: [][]string{{
			money(s.Value),
			fmt.Sprintf("%s (%s)", money(s.Gain), s.GainPercent.SignedString()),
			fmt.Sprintf("%s (%s)", money(s.DayChange), s.DayChangePct.SignedString()),
			money(s.AnnualDividends),
			s.Yield.String(),
			s.YieldOnCost.String(),
		}},
	})

	doc.H2("Holdings")
	table := md.TableSet{Header: []string{"Symbol", "Name", "Shares", "Price", "Market value", "Gain", "Day"}}
	for _, h := range p.Holdings {
		table.Rows = append(table.Rows, []string{
			h.Symbol,
			h.Name,
			strconv.FormatFloat(h.Shares, 'f', -1, 64),
			money(h.Price),
			money(h.MarketValue),
			h.GainPercent.SignedString(),
			h.DayChangePct.SignedString(),
		})
	}
	table.Rows = append(table.Rows, []string{"", "Cash", "", "", money(p.Cash), "", ""})
	doc.Table(table)
	return doc.String()
}

// allocationCmd implements the "allocation" command.
type allocationCmd struct {
	by   string
	json bool
	xlsx string
}

func (*allocationCmd) Name() string     { return "allocation" }
func (*allocationCmd) Synopsis() string { return "print the asset allocation of the portfolio" }
func (*allocationCmd) Usage() string {
	return `dash allocation [-by type|sector|region] [-json | -xlsx <file>]

  Prints the share of each asset type, sector or region in the portfolio value.
  Cash is a group of its own.
`
}

func (c *allocationCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.by, "by", "type", "Grouping of the holdings: type, sector or region")
	f.BoolVar(&c.json, "json", false, "print the allocation chart payload as JSON")
	f.StringVar(&c.xlsx, "xlsx", "", "write the allocation chart to this Excel file")
}

func (c *allocationCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	by, err := dashboard.ParseBreakdown(c.by)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	p, err := newService(cfg, 0).Portfolio(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	payload, err := p.AllocationChart(by)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building allocation: %v\n", err)
		return subcommands.ExitFailure
	}
	payload.Currency = cfg.Currency
	title := fmt.Sprintf("Allocation by %s", by)

	switch {
	case c.json:
		if err := writeJSON(os.Stdout, payload); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding allocation: %v\n", err)
			return subcommands.ExitFailure
		}
	case c.xlsx != "":
		if err := writeXLSX(c.xlsx, payload, title); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.xlsx, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Allocation written to %s\n", c.xlsx)
	default:
		printMarkdown(renderer.RenderChart(renderer.NewChart(title, payload)))
	}
	return subcommands.ExitSuccess
}

// dividendsCmd implements the "dividends" command.
type dividendsCmd struct {
	year int
	json bool
}

func (*dividendsCmd) Name() string     { return "dividends" }
func (*dividendsCmd) Synopsis() string { return "print the dividend calendar of the portfolio" }
func (*dividendsCmd) Usage() string {
	return `dash dividends [-y <year>] [-json]

  Prints the dividends the holdings pay month by month. Payers pay a quarter of
  their yearly yield every three months, on the 15th or the next weekday.
`
}

func (c *dividendsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "y", time.Now().Year(), "Calendar year")
	f.BoolVar(&c.json, "json", false, "print the calendar as JSON")
}

func (c *dividendsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	p, err := newService(cfg, 0).Portfolio(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	months := p.DividendCalendar(c.year)
	if c.json {
		if err := writeJSON(os.Stdout, months); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding dividends: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(dividendsMarkdown(c.year, months, cfg.Currency))
	return subcommands.ExitSuccess
}

// dividendsMarkdown renders one row per payment, months without payments
// skipped.
func dividendsMarkdown(year int, months []dashboard.DividendMonth, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H2(fmt.Sprintf("Dividends %d", year))
	table := md.TableSet{Header: []string{"Month", "Date", "Symbol", "Per share", "Shares", "Amount"}}
	for _, m := range months {
		for _, d := range m.Dividends {
			table.Rows = append(table.Rows, []string{
				m.Month,
				d.Date.String(),
				d.Symbol,
				dashboard.FormatCurrency(d.Amount, currency),
				strconv.FormatFloat(d.Shares, 'f', -1, 64),
				dashboard.FormatCurrency(d.Total, currency),
			})
		}
	}
	doc.Table(table)
	doc.PlainText(fmt.Sprintf("Total: %s", dashboard.FormatCurrency(dashboard.DividendTotal(months), currency)))
	return doc.String()
}

// quoteCmd implements the "quote" command.
type quoteCmd struct {
	json bool
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "print the quote and key figures of securities" }
func (*quoteCmd) Usage() string {
	return `dash quote [-json] <symbol>...

  Prints the current quote of each security, and its company overview when it
  is in the demo catalog.
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "print the quotes as JSON")
}

func (c *quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a symbol is required.")
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	svc := newService(cfg, 0)

	var quotes []dashboard.Quote
	var out string
	for _, symbol := range f.Args() {
		q, err := svc.Quote(ctx, symbol)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error quoting %s: %v\n", symbol, err)
			return subcommands.ExitFailure
		}
		quotes = append(quotes, q)
		o, err := svc.Overview(ctx, symbol)
		if err != nil {
			o = dashboard.Overview{Symbol: q.Symbol}
		}
		out += quoteMarkdown(q, o, cfg.Currency)
	}
	if c.json {
		if err := writeJSON(os.Stdout, quotes); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding quotes: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(out)
	return subcommands.ExitSuccess
}

// quoteMarkdown renders a quote followed by the facts of the overview.
func quoteMarkdown(q dashboard.Quote, o dashboard.Overview, currency string) string {
	money := func(v float64) string { return dashboard.FormatCurrency(v, currency) }
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	title := q.Symbol
	if o.Name != "" {
		title = fmt.Sprintf("%s (%s)", o.Name, q.Symbol)
	}
	doc.H2(title)
	doc.Table(md.TableSet{
		Header: []string{"Price", "Change", "Open", "High", "Low", "Previous close", "Volume"},
		Rows: [][]string{{
			money(q.Price),
			fmt.Sprintf("%s (%s)", money(q.Change), q.ChangePercent.SignedString()),
			money(q.Open),
			money(q.High),
			money(q.Low),
			money(q.PreviousClose),
			strconv.FormatInt(q.Volume, 10),
		}},
	})
	if o.Description != "" {
		doc.PlainText(o.Description)
	}
	facts := o.Facts(currency)
	if len(facts) > 0 {
		table := md.TableSet{Header: []string{"Key figure", "Value"}}
		for _, f := range facts {
			table.Rows = append(table.Rows, []string{f.Name, f.Value})
		}
		doc.Table(table)
	}
	return doc.String()
}
