package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/etnz/dashboard"
	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc := &ChartService{
		Source:   &dashboard.Synthetic{Random: dashboard.NewRandom(42)},
		Currency: "USD",
	}
	srv := httptest.NewServer(NewServer(svc, time.Second))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) (int, []byte) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	status, body := get(t, srv, "/health")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, stripSchema(t, body))
}

// stripSchema removes the $schema link huma adds to response bodies.
func stripSchema(t *testing.T, body []byte) string {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(body, &m))
	delete(m, "$schema")
	out, err := json.Marshal(m)
	require.NoError(t, err)
	return string(out)
}

func TestRanges(t *testing.T) {
	srv := newTestServer(t)
	status, body := get(t, srv, "/api/v1/ranges")
	require.Equal(t, http.StatusOK, status)

	var got struct {
		Ranges []struct {
			Code   string `json:"code"`
			Market struct {
				PointCount int `json:"pointCount"`
			} `json:"market"`
			Performance struct {
				PointCount int `json:"pointCount"`
			} `json:"performance"`
		} `json:"ranges"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got.Ranges, 7)
	assert.Equal(t, "1D", got.Ranges[0].Code)
	assert.Equal(t, 30, got.Ranges[2].Market.PointCount)
	assert.Equal(t, 4, got.Ranges[2].Performance.PointCount)
}

func TestPerformanceChart(t *testing.T) {
	srv := newTestServer(t)
	status, body := get(t, srv, "/api/v1/charts/performance?range=1W&start=1000")
	require.Equal(t, http.StatusOK, status, string(body))

	var p dashboard.ChartPayload
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, []string{"Mon", "Tue", "Wed", "Thu", "Fri"}, p.Labels)
	require.Len(t, p.Series, 1)
	assert.Equal(t, "Portfolio", p.Series[0].Name)
	assert.Equal(t, 1000.0, p.Series[0].Values[0])
	assert.Equal(t, "USD", p.Currency)
}

func TestPerformanceChartReturnMode(t *testing.T) {
	srv := newTestServer(t)
	status, body := get(t, srv, "/api/v1/charts/performance?range=1M&mode=return")
	require.Equal(t, http.StatusOK, status, string(body))

	var p dashboard.ChartPayload
	require.NoError(t, json.Unmarshal(body, &p))
	require.Len(t, p.Series, 1)
	assert.Equal(t, dashboard.Percent, p.Series[0].Kind)
	assert.Len(t, p.Series[0].Values, 4)
	assert.Zero(t, p.Series[0].Values[0])
}

func TestSecurityChart(t *testing.T) {
	srv := newTestServer(t)
	status, body := get(t, srv, "/api/v1/charts/securities/aapl?range=3M&mode=vsindex")
	require.Equal(t, http.StatusOK, status, string(body))

	var p dashboard.ChartPayload
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Len(t, p.Labels, 13)
	require.NotEmpty(t, p.Series)
	assert.Contains(t, p.Series[0].Name, "AAPL")
}

func TestChartBadRequest(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{
		"/api/v1/charts/performance?range=2W",
		"/api/v1/charts/performance?mode=log",
		"/api/v1/charts/performance?as_of=yesterday",
		"/api/v1/charts/securities/AAPL?range=10Y",
	} {
		status, body := get(t, srv, path)
		assert.Equal(t, http.StatusBadRequest, status, "GET %s: %s", path, body)
	}
}

func TestSecurityChartUnknownSymbol(t *testing.T) {
	srv := newTestServer(t)
	status, body := get(t, srv, "/api/v1/charts/securities/ZZZZ?range=1W")
	assert.Equal(t, http.StatusNotFound, status, string(body))
}

func TestPortfolioSummary(t *testing.T) {
	srv := newTestServer(t)
	status, body := get(t, srv, "/api/v1/portfolio/summary")
	require.Equal(t, http.StatusOK, status, string(body))

	var s dashboard.Summary
	require.NoError(t, json.Unmarshal(body, &s))
	assert.Equal(t, 13, s.Holdings)
	assert.InDelta(t, 37658.76, s.Value, 0.005)
	assert.Equal(t, 1963.0, s.Cash)
}

func TestPortfolioHoldings(t *testing.T) {
	srv := newTestServer(t)
	status, body := get(t, srv, "/api/v1/portfolio/holdings")
	require.Equal(t, http.StatusOK, status, string(body))

	var got struct {
		Holdings []dashboard.Holding `json:"holdings"`
		Cash     float64             `json:"cash"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got.Holdings, 13)
	assert.Equal(t, "AAPL", got.Holdings[0].Symbol)
	assert.Equal(t, 1963.0, got.Cash)
}

func TestPortfolioAllocation(t *testing.T) {
	srv := newTestServer(t)
	status, body := get(t, srv, "/api/v1/portfolio/allocation?by=region")
	require.Equal(t, http.StatusOK, status, string(body))

	var got struct {
		By     string            `json:"by"`
		Slices []dashboard.Slice `json:"slices"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "region", got.By)
	require.Len(t, got.Slices, 5)
	assert.Equal(t, dashboard.NorthAmerica, got.Slices[0].Name)

	status, body = get(t, srv, "/api/v1/charts/allocation")
	require.Equal(t, http.StatusOK, status, string(body))
	var p dashboard.ChartPayload
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, []string{"Stocks", "ETFs", "Crypto", "Bonds", "Cash"}, p.Labels)

	for _, path := range []string{"/api/v1/portfolio/allocation?by=color", "/api/v1/charts/allocation?by=color"} {
		status, body = get(t, srv, path)
		assert.Equal(t, http.StatusBadRequest, status, "GET %s: %s", path, body)
	}
}

func TestPortfolioDividends(t *testing.T) {
	srv := newTestServer(t)
	status, body := get(t, srv, "/api/v1/portfolio/dividends?year=2024")
	require.Equal(t, http.StatusOK, status, string(body))

	var got struct {
		Year   int                       `json:"year"`
		Months []dashboard.DividendMonth `json:"months"`
		Total  float64                   `json:"total"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, 2024, got.Year)
	require.Len(t, got.Months, 12)
	assert.Equal(t, "Jan", got.Months[0].Month)
	assert.Equal(t, 6.89, got.Months[0].Total)
	assert.InDelta(t, 358.32, got.Total, 0.005)

	status, _ = get(t, srv, "/api/v1/portfolio/dividends?year=12345")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSecurityOverview(t *testing.T) {
	srv := newTestServer(t)
	status, body := get(t, srv, "/api/v1/securities/aapl/overview")
	require.Equal(t, http.StatusOK, status, string(body))

	var o dashboard.Overview
	require.NoError(t, json.Unmarshal(body, &o))
	assert.Equal(t, "AAPL", o.Symbol)
	assert.Equal(t, 2.91e12, o.MarketCap)

	status, _ = get(t, srv, "/api/v1/securities/ZZZZ/overview")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSecurityQuote(t *testing.T) {
	srv := newTestServer(t)
	status, body := get(t, srv, "/api/v1/securities/msft/quote")
	require.Equal(t, http.StatusOK, status, string(body))

	var q dashboard.Quote
	require.NoError(t, json.Unmarshal(body, &q))
	assert.Equal(t, "MSFT", q.Symbol)
	assert.Equal(t, 415.86, q.PreviousClose)
	assert.NotZero(t, q.Price)

	status, _ = get(t, srv, "/api/v1/securities/ZZZZ/quote")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAssets(t *testing.T) {
	srv := newTestServer(t)

	status, body := get(t, srv, "/api/v1/assets?q=micro")
	require.Equal(t, http.StatusOK, status)
	var found struct {
		Assets []dashboard.Asset `json:"assets"`
	}
	require.NoError(t, json.Unmarshal(body, &found))
	require.Len(t, found.Assets, 1)
	assert.Equal(t, "MSFT", found.Assets[0].Symbol)

	status, body = get(t, srv, "/api/v1/assets/nvda")
	require.Equal(t, http.StatusOK, status)
	var a dashboard.Asset
	require.NoError(t, json.Unmarshal(body, &a))
	assert.Equal(t, "NVIDIA Corporation", a.Name)

	status, _ = get(t, srv, "/api/v1/assets/ZZZZ")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestTopics(t *testing.T) {
	srv := newTestServer(t)

	status, body := get(t, srv, "/docs/topics/ranges")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "<table>")

	status, _ = get(t, srv, "/docs/topics/nope")
	assert.Equal(t, http.StatusNotFound, status)

	status, body = get(t, srv, "/api/v1/topics")
	require.Equal(t, http.StatusOK, status)
	var list struct {
		Topics []struct {
			Name  string `json:"name"`
			Title string `json:"title"`
		} `json:"topics"`
	}
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list.Topics, 4)
	assert.Equal(t, "modes", list.Topics[1].Name)
	assert.Equal(t, "Display modes", list.Topics[1].Title)
}

func TestStream(t *testing.T) {
	srv := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/charts/performance?range=1W&mode=vsindex&interval=20ms"
	conn, _, _, err := ws.Dial(ctx, url)
	require.NoError(t, err)
	defer conn.Close()

	for i := 0; i < 3; i++ {
		data, err := wsutil.ReadServerText(conn)
		require.NoError(t, err)
		var p dashboard.ChartPayload
		require.NoError(t, json.Unmarshal(data, &p))
		assert.Len(t, p.Labels, 5)
		assert.NotEmpty(t, p.Series)
	}
}

func TestStreamBadRequest(t *testing.T) {
	srv := newTestServer(t)
	for _, query := range []string{"range=2W", "interval=soon", "interval=1ms", "start=-1"} {
		status, body := get(t, srv, "/ws/charts/performance?"+query)
		assert.Equal(t, http.StatusBadRequest, status, "%s: %s", query, body)
	}
}
