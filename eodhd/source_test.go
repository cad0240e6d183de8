package eodhd

import (
	"context"
	"testing"
	"time"

	"github.com/etnz/dashboard"
	"github.com/etnz/dashboard/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceAlignsSeries(t *testing.T) {
	c := fakeAPI(t, map[string]string{
		"/eod/VOO.US": `[
			{"date":"2025-09-02","close":100},
			{"date":"2025-09-03","close":101},
			{"date":"2025-09-04","close":102},
			{"date":"2025-09-05","close":103},
			{"date":"2025-09-08","close":104},
			{"date":"2025-09-09","close":105},
			{"date":"2025-09-10","close":106}
		]`,
		"/eod/GSPC.INDX": `[
			{"date":"2025-09-02","close":5000},
			{"date":"2025-09-04","close":5010},
			{"date":"2025-09-05","close":5020},
			{"date":"2025-09-08","close":5030},
			{"date":"2025-09-09","close":5040},
			{"date":"2025-09-10","close":5050}
		]`,
	})
	src := &Source{Client: c, Portfolio: "VOO"}
	req := dashboard.Request{Chart: dashboard.PerformanceChart, Range: dashboard.Week, AsOf: date.New(2025, 9, 10)}

	p, err := src.Paths(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sep 4", "Sep 5", "Sep 8", "Sep 9", "Sep 10"}, p.Labels)
	assert.Equal(t, dashboard.Series{102, 103, 104, 105, 106}, p.Subject)
	assert.Equal(t, dashboard.Series{5010, 5020, 5030, 5040, 5050}, p.Baseline)
	assert.Equal(t, dashboard.Names{Subject: "Portfolio", Baseline: DefaultBaseline}, p.Names)

	payload, err := dashboard.Build(context.Background(), src, dashboard.Request{
		Chart: dashboard.PerformanceChart, Range: dashboard.Week, Mode: dashboard.VsIndex, AsOf: date.New(2025, 9, 10),
	})
	require.NoError(t, err)
	assert.Len(t, payload.Series, 2)
	assert.Equal(t, 5, payload.Len())
}

func TestSourceRescales(t *testing.T) {
	c := fakeAPI(t, map[string]string{
		"/eod/AAPL.US":   `[{"date":"2025-09-09","close":200},{"date":"2025-09-10","close":210}]`,
		"/eod/GSPC.INDX": `[{"date":"2025-09-09","close":5000},{"date":"2025-09-10","close":5050}]`,
	})
	src := &Source{Client: c}
	p, err := src.Paths(context.Background(), dashboard.Request{
		Chart: dashboard.SecurityChart, Range: dashboard.Month, Symbol: "AAPL", StartValue: 1000, AsOf: date.New(2025, 9, 10),
	})
	require.NoError(t, err)
	assert.Equal(t, "AAPL", p.Names.Subject)
	assert.Equal(t, 1000.0, p.Subject[0])
	assert.InDelta(t, 1050.0, p.Subject[1], 1e-9)
	assert.Equal(t, dashboard.Series{5000, 5050}, p.Baseline)
}

func TestSourceIntraday(t *testing.T) {
	c := fakeAPI(t, map[string]string{
		"/intraday/AAPL.US":   `[{"timestamp":1694179800,"close":178.75},{"timestamp":1694180100,"close":178.9}]`,
		"/intraday/GSPC.INDX": `[{"timestamp":1694180100,"close":4460}]`,
	})
	src := &Source{Client: c, Now: func() time.Time { return time.Unix(1694181000, 0) }}
	p, err := src.Paths(context.Background(), dashboard.Request{Chart: dashboard.SecurityChart, Range: dashboard.Day, Symbol: "AAPL"})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:35"}, p.Labels)
	assert.Equal(t, dashboard.Series{178.9}, p.Subject)
}

// Intraday labels are in exchange time, like the simulated session from 09:30.
func TestSourceIntradayExchangeTime(t *testing.T) {
	c := fakeAPI(t, map[string]string{
		"/intraday/AAPL.US":   `[{"timestamp":1694179800,"close":178.75},{"timestamp":1694180100,"close":178.9}]`,
		"/intraday/GSPC.INDX": `[{"timestamp":1694179800,"close":4455},{"timestamp":1694180100,"close":4460}]`,
	})
	now := func() time.Time { return time.Unix(1694181000, 0) }
	req := dashboard.Request{Chart: dashboard.SecurityChart, Range: dashboard.Day, Symbol: "AAPL"}

	p, err := (&Source{Client: c, Now: now}).Paths(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:30", "09:35"}, p.Labels)

	spec, err := dashboard.Resolve(dashboard.Day)
	require.NoError(t, err)
	assert.Equal(t, spec.Labels(date.New(2023, 9, 8))[0], p.Labels[0])

	p, err = (&Source{Client: c, Now: now, Location: time.UTC}).Paths(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"13:30", "13:35"}, p.Labels)
}

func TestSourceErrors(t *testing.T) {
	c := fakeAPI(t, nil)
	src := &Source{Client: c}
	ctx := context.Background()
	asOf := date.New(2025, 9, 10)

	_, err := src.Paths(ctx, dashboard.Request{Chart: dashboard.PerformanceChart, Range: dashboard.Week, AsOf: asOf})
	assert.ErrorIs(t, err, ErrNoPortfolio)

	_, err = src.Paths(ctx, dashboard.Request{Chart: dashboard.SecurityChart, Range: dashboard.Week, Symbol: "AAPL", AsOf: asOf})
	assert.ErrorIs(t, err, ErrUpstream)

	_, err = src.Paths(ctx, dashboard.Request{Chart: dashboard.SecurityChart, Range: dashboard.RangeID(12), Symbol: "AAPL", AsOf: asOf})
	assert.ErrorIs(t, err, dashboard.ErrUnsupportedRange)
}

// A failing live source falls back to simulated paths.
func TestSourceFallback(t *testing.T) {
	src := dashboard.Fallback(&Source{Client: fakeAPI(t, nil)}, &dashboard.Synthetic{Random: dashboard.NewRandom(1)})
	p, err := dashboard.Build(context.Background(), src, dashboard.Request{
		Chart: dashboard.SecurityChart, Range: dashboard.Week, Symbol: "AAPL", AsOf: date.New(2025, 9, 10),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Mon", "Tue", "Wed", "Thu", "Fri"}, p.Labels)
}

func TestSourceQuote(t *testing.T) {
	c := fakeAPI(t, map[string]string{
		"/real-time/AAPL.US": `{"code":"AAPL.US","timestamp":1694203200,"gmtoffset":0,"open":178.35,"high":180.239,"low":177.79,"close":178.18,"volume":65551300,"previousClose":177.56,"change":0.62,"change_p":0.3492}`,
		"/real-time/NONE.US": `{"code":"NONE.US","timestamp":"NA"}`,
	})
	src := &Source{Client: c}
	var _ dashboard.Quoter = src

	q, err := dashboard.QuoteOf(context.Background(), src, "aapl")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", q.Symbol)
	assert.Equal(t, 178.18, q.Price)
	assert.Equal(t, 177.56, q.PreviousClose)
	assert.Equal(t, 0.62, q.Change)
	assert.Equal(t, "+0.35%", q.ChangePercent.SignedString())
	assert.Equal(t, 180.239, q.High)
	assert.Equal(t, int64(65551300), q.Volume)
	assert.Equal(t, "16:00", q.Time.Format("15:04"))

	_, err = src.Quote(context.Background(), "NONE")
	assert.ErrorIs(t, err, ErrUpstream)
	_, err = src.Quote(context.Background(), "MISSING")
	assert.ErrorIs(t, err, ErrUpstream)
}
