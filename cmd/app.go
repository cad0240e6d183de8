// Package cmd implements the dash command line: dashboard charts in the
// terminal, the chart API server, and the AI assistant.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/dashboard"
	"github.com/etnz/dashboard/config"
	"github.com/etnz/dashboard/eodhd"
	"github.com/etnz/dashboard/server"
	"github.com/google/subcommands"
)

// commands are the dash subcommands, by group.
var commands = []struct {
	group string
	cmd   subcommands.Command
}{
	{"charts", &chartCmd{}},
	{"charts", &rangesCmd{}},
	{"charts", &searchCmd{}},
	{"portfolio", &portfolioCmd{}},
	{"portfolio", &allocationCmd{}},
	{"portfolio", &dividendsCmd{}},
	{"portfolio", &quoteCmd{}},
	{"assistant", &explainCmd{}},
	{"assistant", &assistCmd{}},
	{"server", &serveCmd{}},
	{"help", &topicCmd{}},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, e := range commands {
		c.Register(e.cmd, e.group)
	}
}

// Registered reports whether name is a dash subcommand, including the
// commander's own help, flags and commands.
func Registered(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, e := range commands {
		if e.cmd.Name() == name {
			return true
		}
	}
	return false
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	sourceFlag   = flag.String("source", "", "Source of the chart values: synthetic, live or live+synthetic. Takes precedence over DASH_SOURCE")
	currencyFlag = flag.String("currency", "", "ISO code of the chart currency. Takes precedence over DASH_CURRENCY")
	Verbose      = flag.Bool("v", false, "verbose logs")
)

// loadConfig loads the configuration, the global flags taking precedence
// over the environment.
func loadConfig() (*config.Config, error) {
	for env, v := range map[string]string{"DASH_SOURCE": *sourceFlag, "DASH_CURRENCY": *currencyFlag} {
		if v == "" {
			continue
		}
		if err := os.Setenv(env, v); err != nil {
			return nil, err
		}
	}
	return config.Load()
}

// newSource returns the chart source selected by cfg. A non zero seed makes
// synthetic paths reproducible.
func newSource(cfg *config.Config, seed uint64) dashboard.Source {
	synthetic := &dashboard.Synthetic{}
	if seed != 0 {
		synthetic.Random = dashboard.NewRandom(seed)
	}
	switch cfg.Source {
	case config.SourceLive:
		return liveSource(cfg)
	case config.SourceLiveFallback:
		return dashboard.Fallback(liveSource(cfg), synthetic)
	default:
		return synthetic
	}
}

func liveSource(cfg *config.Config) *eodhd.Source {
	return &eodhd.Source{
		Client:    eodhd.NewClient(cfg.EODHDKey),
		Portfolio: cfg.Portfolio,
		Baseline:  cfg.Baseline,
	}
}

// newService returns the chart service of cfg.
func newService(cfg *config.Config, seed uint64) *server.ChartService {
	svc := &server.ChartService{Source: newSource(cfg, seed), Currency: cfg.Currency}
	if cfg.Source != config.SourceSynthetic {
		svc.Assets = eodhd.NewClient(cfg.EODHDKey)
	}
	return svc
}

// renderMarkdown formats md for the terminal, or returns it as is when it
// cannot.
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

func printMarkdown(md string) {
	fmt.Print(renderMarkdown(md))
}
