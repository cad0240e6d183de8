package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/dashboard"
	"github.com/etnz/dashboard/renderer"
	"google.golang.org/genai"
)

// ExplainPrompt returns the prompt asking for a commentary of p.
func ExplainPrompt(title string, p dashboard.ChartPayload) string {
	var b strings.Builder
	b.WriteString("Write a short commentary, three sentences at most, of the following chart for the owner of the portfolio.\n")
	b.WriteString("Stick to the figures below, do not invent news. Percent series are in percent, other series in ")
	b.WriteString(valueOr(p.Currency, "USD"))
	b.WriteString(".\n\n")
	b.WriteString(renderer.SummaryMarkdown(title, p))
	b.WriteString("\n")
	b.WriteString(renderer.RenderChart(renderer.NewChart(title, p)))
	return b.String()
}

// Explain asks the model for a commentary of p.
func Explain(ctx context.Context, client *genai.Client, model, title string, p dashboard.ChartPayload) (string, error) {
	if model == "" {
		model = Model
	}
	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(ExplainPrompt(title, p)), nil)
	if err != nil {
		return "", fmt.Errorf("cannot explain %s: %w", title, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no explanation for %s", title)
	}
	return text(resp.Candidates[0].Content), nil
}

func valueOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
