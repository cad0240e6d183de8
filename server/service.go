package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/dashboard"
	"github.com/etnz/dashboard/eodhd"
)

// ChartService is the Service backed by a dashboard.Source.
type ChartService struct {
	Source dashboard.Source
	// Currency is used for requests without one.
	Currency string
	// Assets searches the EODHD catalog, nil searches the demo catalog only.
	Assets *eodhd.Client
	// Holdings is the served portfolio, the demo one when nil.
	Holdings *dashboard.Portfolio
}

// Chart builds the chart payload of req.
func (s *ChartService) Chart(ctx context.Context, req dashboard.Request) (dashboard.ChartPayload, error) {
	if req.Currency == "" {
		req.Currency = s.Currency
	}
	return dashboard.Build(ctx, s.Source, req)
}

// SearchAssets returns the assets matching query.
func (s *ChartService) SearchAssets(ctx context.Context, query string, limit int) ([]dashboard.Asset, error) {
	if s.Assets == nil || strings.TrimSpace(query) == "" {
		return dashboard.Search(query, limit), nil
	}
	results, err := s.Assets.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	assets := make([]dashboard.Asset, 0, len(results))
	for _, r := range results {
		assets = append(assets, r.Asset())
	}
	return assets, nil
}

// Asset returns the asset of symbol.
func (s *ChartService) Asset(ctx context.Context, symbol string) (dashboard.Asset, error) {
	a, err := dashboard.Lookup(symbol)
	if err == nil || s.Assets == nil {
		return a, err
	}
	results, serr := s.Assets.Search(ctx, symbol, 10)
	if serr != nil {
		return dashboard.Asset{}, serr
	}
	for _, r := range results {
		if strings.EqualFold(r.Code, symbol) || strings.EqualFold(r.Ticker(), symbol) {
			return r.Asset(), nil
		}
	}
	return dashboard.Asset{}, fmt.Errorf("%w: %q", dashboard.ErrUnknownAsset, symbol)
}

// Portfolio returns the served portfolio.
func (s *ChartService) Portfolio(context.Context) (dashboard.Portfolio, error) {
	if s.Holdings == nil {
		return dashboard.DemoPortfolio(), nil
	}
	return *s.Holdings, nil
}

// Overview returns the overview of the catalog asset symbol.
func (s *ChartService) Overview(_ context.Context, symbol string) (dashboard.Overview, error) {
	return dashboard.OverviewOf(symbol)
}

// Quote quotes symbol with the chart source.
func (s *ChartService) Quote(ctx context.Context, symbol string) (dashboard.Quote, error) {
	return dashboard.QuoteOf(ctx, s.Source, symbol)
}
