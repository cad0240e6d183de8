// Package server serves the dashboard charts as a JSON API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/etnz/dashboard"
	"github.com/etnz/dashboard/docs"
	"github.com/etnz/dashboard/eodhd"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Service produces the data served by the API.
type Service interface {
	Chart(ctx context.Context, req dashboard.Request) (dashboard.ChartPayload, error)
	SearchAssets(ctx context.Context, query string, limit int) ([]dashboard.Asset, error)
	Asset(ctx context.Context, symbol string) (dashboard.Asset, error)
	Portfolio(ctx context.Context) (dashboard.Portfolio, error)
	Overview(ctx context.Context, symbol string) (dashboard.Overview, error)
	Quote(ctx context.Context, symbol string) (dashboard.Quote, error)
}

// errBadRequest marks invalid query parameters.
var errBadRequest = errors.New("bad request")

// NewServer returns the API handler. refresh is the default period of the
// chart streams.
func NewServer(svc Service, refresh time.Duration) http.Handler {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(requestLogger)
	router.Use(middleware.Recoverer)

	cfg := huma.DefaultConfig("Portfolio Dashboard API", "1.0.0")
	api := humachi.New(router, cfg)

	router.Get("/docs/topics/{topic}", func(w http.ResponseWriter, r *http.Request) {
		html, err := docs.HTML(chi.URLParam(r, "topic"))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write([]byte(html)); err != nil {
			slog.Debug("topic response write failed", "error", err)
		}
	})

	s := &stream{svc: svc, refresh: refresh}
	router.Get("/ws/charts/performance", s.performance)

	registerChartHandlers(api, svc)
	registerMiscHandlers(api, svc)
	registerPortfolioHandlers(api, svc)

	return router
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, dashboard.ErrUnsupportedRange),
		errors.Is(err, dashboard.ErrUnsupportedMode),
		errors.Is(err, dashboard.ErrInvalidPath),
		errors.Is(err, dashboard.ErrUnsupportedBreakdown):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, dashboard.ErrUnknownAsset):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, eodhd.ErrUpstream), errors.Is(err, eodhd.ErrNoPortfolio):
		return huma.Error502BadGateway(err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return huma.Error504GatewayTimeout(err.Error())
	default:
		slog.Error("request failed", "error", err)
		return huma.Error500InternalServerError(err.Error())
	}
}
