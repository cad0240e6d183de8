package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/dashboard"
	"github.com/etnz/dashboard/docs"
	"github.com/etnz/dashboard/renderer"
	"google.golang.org/genai"
)

// Model is the Gemini model of the experts.
const Model = "gemini-2.5-pro"

// Charts produces the charts and assets the Analyst reads.
type Charts interface {
	Chart(ctx context.Context, req dashboard.Request) (dashboard.ChartPayload, error)
	SearchAssets(ctx context.Context, query string, limit int) ([]dashboard.Asset, error)
}

func instruction(s string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: s}}}
}

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: Model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: instruction(`
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is looking at a dashboard of charts: the value of their portfolio compared to a market
			index, and the price of single securities, over ranges from one day to five years.

			Devise a plan of questions to ask to each experts and come up with the best response to the user's request.
			Answer in markdown.
		`),
		},
		Library: NewLibrary(experts),
	}
}

// NewTrader returns the expert grounded on Google Search.
func NewTrader() *Expert {
	return &Expert{
		Name: "Trader",
		Description: `This is an expert trader,
		Very well aware of all the financial products and institutions,
		about the latest news about the different funds or companies.
		Ask the Trader whenever you need recent or grounding information.`,
		ModelName: Model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: instruction(`
			You are a expert in Trading, you can search and find about anything related to
			financial institutions, companies, markets, funds etc. You Leverage Google Search to
			ground your assertions in a solid truth.
			You can get the latests news too, and you know how to relate them to the user's request.
			`),
		},
	}
}

// NewAnalyst returns the expert that reads the dashboard charts.
func NewAnalyst(charts Charts) *Expert {
	lib := []Function{ChartTool(charts), AssetsTool(charts), TopicTool()}
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. It reads the dashboard charts: the portfolio against its index,
		and the price of any security, over any supported range and display mode.
		Ask the Analyst for figures, trends and comparisons seen on the dashboard.`,
		ModelName: Model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: instruction(`
			You are an analyst in charge of the user's dashboard.
			You know how to use the Tools to draw the charts and read their figures.
			Use the Topic tool to learn about the ranges and display modes before drawing a chart.
			Always quote the range and the mode of the chart your figures come from.
			`),
		},
		Library: NewLibrary(lib),
	}
}

var rangeCodes = func() []string {
	var codes []string
	for _, id := range dashboard.Ranges() {
		codes = append(codes, id.String())
	}
	return codes
}()

// ChartTool draws a chart and returns its summary and table in markdown.
func ChartTool(charts Charts) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Chart",
			Description: "Chart draws a dashboard chart and returns its headline numbers and its values as markdown tables.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"range": {
						Type:        genai.TypeString,
						Description: "The period covered by the chart, 1W when absent.",
						Enum:        rangeCodes,
					},
					"mode": {
						Type:        genai.TypeString,
						Description: "value for absolute values, return for the percent change from the first point, vsindex to compare to the index. value when absent.",
						Enum:        []string{"value", "return", "vsindex"},
					},
					"symbol": {
						Type:        genai.TypeString,
						Description: "The security to chart. The portfolio is charted when absent.",
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The markdown summary and table of the chart.",
			},
		},
		Func: func(ctx context.Context, args map[string]any) (string, error) {
			req, err := chartArgs(args)
			if err != nil {
				return "", err
			}
			p, err := charts.Chart(ctx, req)
			if err != nil {
				return "", err
			}
			return renderer.SummaryMarkdown(Title(req), p) + "\n" + renderer.RenderChart(renderer.NewChart(Title(req), p)), nil
		},
	}
}

func chartArgs(args map[string]any) (dashboard.Request, error) {
	var req dashboard.Request
	rng, err := stringArg(args, "range", "1W")
	if err != nil {
		return req, err
	}
	mode, err := stringArg(args, "mode", "value")
	if err != nil {
		return req, err
	}
	symbol, err := stringArg(args, "symbol", "")
	if err != nil {
		return req, err
	}
	if req.Range, err = dashboard.ParseRange(rng); err != nil {
		return req, err
	}
	if req.Mode, err = dashboard.ParseMode(mode); err != nil {
		return req, err
	}
	if symbol != "" {
		req.Chart, req.Symbol = dashboard.SecurityChart, symbol
	}
	return req, nil
}

// Title returns the title of the chart of req.
func Title(req dashboard.Request) string {
	subject := "Portfolio"
	if req.Chart == dashboard.SecurityChart {
		subject = strings.ToUpper(req.Symbol)
	}
	return fmt.Sprintf("%s %s (%s)", subject, req.Range, req.Mode)
}

// AssetsTool searches the assets that can be charted.
func AssetsTool(charts Charts) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "SearchAssets",
			Description: "SearchAssets lists the securities whose symbol or name contains the query.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"query": {
						Type:        genai.TypeString,
						Description: "Part of a symbol or of a company name.",
					},
				},
				Required: []string{"query"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "One line per asset: symbol, name, type and exchange.",
			},
		},
		Func: func(ctx context.Context, args map[string]any) (string, error) {
			query, err := stringArg(args, "query", "")
			if err != nil {
				return "", err
			}
			assets, err := charts.SearchAssets(ctx, query, 10)
			if err != nil {
				return "", err
			}
			if len(assets) == 0 {
				return fmt.Sprintf("no asset matches %q", query), nil
			}
			var b strings.Builder
			for _, a := range assets {
				fmt.Fprintf(&b, "* %s: %s (%s, %s)\n", a.Symbol, a.Name, a.Type, a.Exchange)
			}
			return b.String(), nil
		},
	}
}

// TopicTool reads the dashboard documentation.
func TopicTool() *Func {
	topics, _ := docs.GetAllTopics()
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Topic",
			Description: "Topic returns a documentation page of the dashboard, in markdown.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name": {
						Type:        genai.TypeString,
						Description: "The name of the topic.",
						Enum:        topics,
					},
				},
				Required: []string{"name"},
			},
		},
		Func: func(ctx context.Context, args map[string]any) (string, error) {
			name, err := stringArg(args, "name", "")
			if err != nil {
				return "", err
			}
			return docs.GetTopic(name)
		},
	}
}
