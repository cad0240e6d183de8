package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/etnz/dashboard"
)

type breakdownInput struct {
	By string `query:"by" default:"type" doc:"Grouping of the holdings: type, sector or region"`
}

func registerPortfolioHandlers(api huma.API, svc Service) {
	type summaryOutput struct {
		Body dashboard.Summary
	}
	huma.Register(api, huma.Operation{OperationID: "portfolio-summary", Method: http.MethodGet, Path: "/api/v1/portfolio/summary", Summary: "Portfolio summary", Tags: []string{"Portfolio"}},
		func(ctx context.Context, input *struct{}) (*summaryOutput, error) {
			p, err := svc.Portfolio(ctx)
			if err != nil {
				return nil, mapErr(err)
			}
			return &summaryOutput{Body: p.Summary()}, nil
		})

	type holdingsOutput struct {
		Body struct {
			Holdings []dashboard.Holding `json:"holdings"`
			Cash     float64             `json:"cash"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "portfolio-holdings", Method: http.MethodGet, Path: "/api/v1/portfolio/holdings", Summary: "Portfolio holdings", Tags: []string{"Portfolio"}},
		func(ctx context.Context, input *struct{}) (*holdingsOutput, error) {
			p, err := svc.Portfolio(ctx)
			if err != nil {
				return nil, mapErr(err)
			}
			out := &holdingsOutput{}
			out.Body.Holdings, out.Body.Cash = p.Holdings, p.Cash
			if out.Body.Holdings == nil {
				out.Body.Holdings = []dashboard.Holding{}
			}
			return out, nil
		})

	type allocationOutput struct {
		Body struct {
			By     string            `json:"by"`
			Slices []dashboard.Slice `json:"slices"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "portfolio-allocation", Method: http.MethodGet, Path: "/api/v1/portfolio/allocation", Summary: "Portfolio allocation", Tags: []string{"Portfolio"}},
		func(ctx context.Context, input *breakdownInput) (*allocationOutput, error) {
			by, err := dashboard.ParseBreakdown(input.By)
			if err != nil {
				return nil, mapErr(err)
			}
			p, err := svc.Portfolio(ctx)
			if err != nil {
				return nil, mapErr(err)
			}
			out := &allocationOutput{}
			out.Body.By, out.Body.Slices = by.String(), p.Allocation(by)
			return out, nil
		})

	huma.Register(api, huma.Operation{OperationID: "allocation-chart", Method: http.MethodGet, Path: "/api/v1/charts/allocation", Summary: "Portfolio allocation chart", Tags: []string{"Charts"}},
		func(ctx context.Context, input *breakdownInput) (*chartOutput, error) {
			by, err := dashboard.ParseBreakdown(input.By)
			if err != nil {
				return nil, mapErr(err)
			}
			p, err := svc.Portfolio(ctx)
			if err != nil {
				return nil, mapErr(err)
			}
			payload, err := p.AllocationChart(by)
			if err != nil {
				return nil, mapErr(err)
			}
			return &chartOutput{Body: payload}, nil
		})

	type dividendsInput struct {
		Year int `query:"year" minimum:"0" doc:"Calendar year, the current one when zero"`
	}
	type dividendsOutput struct {
		Body struct {
			Year   int                       `json:"year"`
			Months []dashboard.DividendMonth `json:"months"`
			Total  float64                   `json:"total"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "portfolio-dividends", Method: http.MethodGet, Path: "/api/v1/portfolio/dividends", Summary: "Dividend calendar", Tags: []string{"Portfolio"}},
		func(ctx context.Context, input *dividendsInput) (*dividendsOutput, error) {
			year := input.Year
			if year == 0 {
				year = time.Now().Year()
			}
			if year < 1900 || year > 9999 {
				return nil, mapErr(fmt.Errorf("%w: year %d", errBadRequest, year))
			}
			p, err := svc.Portfolio(ctx)
			if err != nil {
				return nil, mapErr(err)
			}
			out := &dividendsOutput{}
			out.Body.Year = year
			out.Body.Months = p.DividendCalendar(year)
			out.Body.Total = dashboard.DividendTotal(out.Body.Months)
			return out, nil
		})

	type symbolInput struct {
		Symbol string `path:"symbol" doc:"Security symbol, e.g. AAPL"`
	}
	type overviewOutput struct {
		Body dashboard.Overview
	}
	huma.Register(api, huma.Operation{OperationID: "security-overview", Method: http.MethodGet, Path: "/api/v1/securities/{symbol}/overview", Summary: "Security overview", Tags: []string{"Securities"}},
		func(ctx context.Context, input *symbolInput) (*overviewOutput, error) {
			o, err := svc.Overview(ctx, input.Symbol)
			if err != nil {
				return nil, mapErr(err)
			}
			return &overviewOutput{Body: o}, nil
		})

	type quoteOutput struct {
		Body dashboard.Quote
	}
	huma.Register(api, huma.Operation{OperationID: "security-quote", Method: http.MethodGet, Path: "/api/v1/securities/{symbol}/quote", Summary: "Security quote", Tags: []string{"Securities"}},
		func(ctx context.Context, input *symbolInput) (*quoteOutput, error) {
			q, err := svc.Quote(ctx, input.Symbol)
			if err != nil {
				return nil, mapErr(err)
			}
			return &quoteOutput{Body: q}, nil
		})
}
