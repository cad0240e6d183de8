package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

// searchCmd implements the "search" command.
type searchCmd struct {
	limit int
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "searches for securities to chart" }
func (*searchCmd) Usage() string {
	return `dash search [-n <limit>] <search term>

  Searches the securities whose symbol or name contains the search term, in the
  demo catalog, or on EOD Historical Data with a live source.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 10, "maximum number of results")
}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a search term is required.")
		return subcommands.ExitUsageError
	}
	searchTerm := strings.Join(f.Args(), " ")

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	assets, err := newService(cfg, 0).SearchAssets(ctx, searchTerm, c.limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error searching securities: %v\n", err)
		return subcommands.ExitFailure
	}

	if len(assets) == 0 {
		fmt.Printf("No results found for '%s'.\n", searchTerm)
		return subcommands.ExitSuccess
	}

	fmt.Printf("Found %d results for '%s':\n\n", len(assets), searchTerm)
	for _, a := range assets {
		fmt.Printf("➡️   Name       : %s (%s)\n", a.Name, a.Symbol)
		fmt.Printf("    Type        : %s, Exchange: %s\n", a.Type, a.Exchange)
		if a.Price > 0 {
			fmt.Printf("    Last price  : %.2f\n", a.Price)
		}
		fmt.Printf("    $ dash chart -s %s\n\n", a.Symbol)
	}
	return subcommands.ExitSuccess
}
