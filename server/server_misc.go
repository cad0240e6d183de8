package server

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/etnz/dashboard"
	"github.com/etnz/dashboard/docs"
)

func registerMiscHandlers(api huma.API, svc Service) {
	type healthOutput struct {
		Body struct {
			Status string `json:"status"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "health", Method: http.MethodGet, Path: "/health", Summary: "Health check", Tags: []string{"Health"}},
		func(ctx context.Context, input *struct{}) (*healthOutput, error) {
			out := &healthOutput{}
			out.Body.Status = "ok"
			return out, nil
		})

	type assetsInput struct {
		Query string `query:"q" doc:"Part of a symbol or of a name"`
		Limit int    `query:"limit" default:"10" minimum:"0" maximum:"100" doc:"Maximum number of results"`
	}
	type assetsOutput struct {
		Body struct {
			Assets []dashboard.Asset `json:"assets"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "search-assets", Method: http.MethodGet, Path: "/api/v1/assets", Summary: "Search assets", Tags: []string{"Assets"}},
		func(ctx context.Context, input *assetsInput) (*assetsOutput, error) {
			assets, err := svc.SearchAssets(ctx, input.Query, input.Limit)
			if err != nil {
				return nil, mapErr(err)
			}
			out := &assetsOutput{}
			out.Body.Assets = assets
			if out.Body.Assets == nil {
				out.Body.Assets = []dashboard.Asset{}
			}
			return out, nil
		})

	type assetInput struct {
		Symbol string `path:"symbol" doc:"Security symbol, e.g. AAPL"`
	}
	type assetOutput struct {
		Body dashboard.Asset
	}
	huma.Register(api, huma.Operation{OperationID: "get-asset", Method: http.MethodGet, Path: "/api/v1/assets/{symbol}", Summary: "Get an asset", Tags: []string{"Assets"}},
		func(ctx context.Context, input *assetInput) (*assetOutput, error) {
			asset, err := svc.Asset(ctx, input.Symbol)
			if err != nil {
				return nil, mapErr(err)
			}
			return &assetOutput{Body: asset}, nil
		})

	type topicsOutput struct {
		Body struct {
			Topics []docs.Topic `json:"topics"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "list-topics", Method: http.MethodGet, Path: "/api/v1/topics", Summary: "List documentation topics", Tags: []string{"Docs"}},
		func(ctx context.Context, input *struct{}) (*topicsOutput, error) {
			topics, err := docs.List()
			if err != nil {
				return nil, mapErr(err)
			}
			out := &topicsOutput{}
			out.Body.Topics = topics
			return out, nil
		})
}
