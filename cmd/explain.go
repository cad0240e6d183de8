package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/dashboard/agent"
	"github.com/google/subcommands"
)

type explainCmd struct {
	chartFlags
	model  string
	prompt bool
}

func (*explainCmd) Name() string     { return "explain" }
func (*explainCmd) Synopsis() string { return "comment a chart with the AI assistant" }
func (*explainCmd) Usage() string {
	return `dash explain [-r <range>] [-m <mode>] [-s <symbol>]

  Draws a chart and asks Gemini for a short commentary of it.

  Requires the GEMINI_API_KEY environment variable.
`
}

func (c *explainCmd) SetFlags(f *flag.FlagSet) {
	c.chartFlags.SetFlags(f)
	f.StringVar(&c.model, "model", agent.Model, "Gemini model")
	f.BoolVar(&c.prompt, "prompt", false, "print the prompt instead of sending it")
}

func (c *explainCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	req, p, err := c.draw(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error drawing chart: %v\n", err)
		return subcommands.ExitFailure
	}
	title := agent.Title(req)
	if c.prompt {
		fmt.Print(agent.ExplainPrompt(title, p))
		return subcommands.ExitSuccess
	}

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
	text, err := agent.Explain(ctx, client, c.model, title, p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error explaining chart: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown("## " + title + "\n\n" + text)
	return subcommands.ExitSuccess
}
