package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/dashboard/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct {
	seed uint64
}

func (*assistCmd) Name() string { return "assist" }

func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }

func (*assistCmd) Usage() string {
	return `dash assist [<question>]

  Starts an interactive session with the AI assistant. It can draw the charts
  of the dashboard, search securities, and look for news.

  Requires the GEMINI_API_KEY environment variable.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.Uint64Var(&c.seed, "seed", 0, "seed of the simulated paths, random when zero")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := strings.Join(f.Args(), " ")

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	client, err := newGenaiClient(ctx, cfg.GeminiKey)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	a := agent.New(os.Stdout, os.Stdin, agent.NewTrader(), agent.NewAnalyst(newService(cfg, c.seed)))
	a.Render = renderMarkdown

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// newGenaiClient returns a Gemini client, the key being read from the
// environment when empty.
func newGenaiClient(ctx context.Context, key string) (*genai.Client, error) {
	if key == "" {
		return genai.NewClient(ctx, nil)
	}
	return genai.NewClient(ctx, &genai.ClientConfig{APIKey: key, Backend: genai.BackendGeminiAPI})
}
