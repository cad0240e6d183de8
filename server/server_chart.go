package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/etnz/dashboard"
	"github.com/etnz/dashboard/date"
)

// chartRequest converts the common chart query parameters into a request.
func chartRequest(kind dashboard.ChartKind, rng, mode, asOf string) (dashboard.Request, error) {
	r, err := dashboard.ParseRange(rng)
	if err != nil {
		return dashboard.Request{}, err
	}
	m, err := dashboard.ParseMode(mode)
	if err != nil {
		return dashboard.Request{}, err
	}
	req := dashboard.Request{Chart: kind, Range: r, Mode: m}
	if asOf != "" {
		if req.AsOf, err = date.Parse(asOf); err != nil {
			return dashboard.Request{}, fmt.Errorf("%w: as_of: %v", errBadRequest, err)
		}
	}
	return req, nil
}

type performanceInput struct {
	Range         string  `query:"range" default:"1W" doc:"Range code: 1D, 1W, 1M, 3M, YTD, 1Y or 5Y"`
	Mode          string  `query:"mode" default:"value" doc:"Display mode: value, return or vsindex"`
	AsOf          string  `query:"as_of" doc:"Last day of the chart (YYYY-MM-DD), today when empty"`
	Start         float64 `query:"start" minimum:"0" doc:"Portfolio value at the first point, 125000 when zero"`
	BaselineStart float64 `query:"baseline_start" minimum:"0" doc:"Index value at the first point, 95% of start when zero"`
}

func (in *performanceInput) request() (dashboard.Request, error) {
	req, err := chartRequest(dashboard.PerformanceChart, in.Range, in.Mode, in.AsOf)
	if err != nil {
		return req, err
	}
	req.StartValue, req.BaselineStartValue = in.Start, in.BaselineStart
	return req, nil
}

type securityInput struct {
	Symbol string `path:"symbol" doc:"Security symbol, e.g. AAPL"`
	Range  string `query:"range" default:"1W" doc:"Range code: 1D, 1W, 1M, 3M, YTD, 1Y or 5Y"`
	Mode   string `query:"mode" default:"value" doc:"Display mode: value, return or vsindex"`
	AsOf   string `query:"as_of" doc:"Last day of the chart (YYYY-MM-DD), today when empty"`
}

func (in *securityInput) request() (dashboard.Request, error) {
	req, err := chartRequest(dashboard.SecurityChart, in.Range, in.Mode, in.AsOf)
	if err != nil {
		return req, err
	}
	req.Symbol = in.Symbol
	return req, nil
}

type chartOutput struct {
	Body dashboard.ChartPayload
}

func registerChartHandlers(api huma.API, svc Service) {
	huma.Register(api, huma.Operation{OperationID: "performance-chart", Method: http.MethodGet, Path: "/api/v1/charts/performance", Summary: "Portfolio performance chart", Tags: []string{"Charts"}},
		func(ctx context.Context, input *performanceInput) (*chartOutput, error) {
			req, err := input.request()
			if err != nil {
				return nil, mapErr(err)
			}
			payload, err := svc.Chart(ctx, req)
			if err != nil {
				return nil, mapErr(err)
			}
			return &chartOutput{Body: payload}, nil
		})

	huma.Register(api, huma.Operation{OperationID: "security-chart", Method: http.MethodGet, Path: "/api/v1/charts/securities/{symbol}", Summary: "Security price chart", Tags: []string{"Charts"}},
		func(ctx context.Context, input *securityInput) (*chartOutput, error) {
			req, err := input.request()
			if err != nil {
				return nil, mapErr(err)
			}
			payload, err := svc.Chart(ctx, req)
			if err != nil {
				return nil, mapErr(err)
			}
			return &chartOutput{Body: payload}, nil
		})

	type rangeInfo struct {
		Code        string              `json:"code"`
		Market      dashboard.RangeSpec `json:"market"`
		Performance dashboard.RangeSpec `json:"performance"`
	}
	type rangesOutput struct {
		Body struct {
			Ranges []rangeInfo `json:"ranges"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "list-ranges", Method: http.MethodGet, Path: "/api/v1/ranges", Summary: "List chart ranges", Tags: []string{"Charts"}},
		func(ctx context.Context, input *struct{}) (*rangesOutput, error) {
			today := date.Today()
			out := &rangesOutput{}
			for _, id := range dashboard.Ranges() {
				m, err := dashboard.Market.ResolveAt(id, today)
				if err != nil {
					return nil, mapErr(err)
				}
				p, err := dashboard.Performance.ResolveAt(id, today)
				if err != nil {
					return nil, mapErr(err)
				}
				out.Body.Ranges = append(out.Body.Ranges, rangeInfo{Code: id.String(), Market: m, Performance: p})
			}
			return out, nil
		})
}
