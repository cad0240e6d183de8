package eodhd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // exchange time zones on hosts without zoneinfo

	"github.com/etnz/dashboard"
	"github.com/etnz/dashboard/date"
)

// DefaultBaseline is the EODHD ticker of the S&P 500 index.
const DefaultBaseline = "GSPC.INDX"

// ErrNoPortfolio is returned for performance charts when no portfolio ticker is configured.
var ErrNoPortfolio = errors.New("no portfolio ticker configured")

// Source is a dashboard.Source of real market prices.
type Source struct {
	Client *Client
	// Portfolio is the ticker standing for the portfolio on performance charts.
	Portfolio string
	// Baseline is the ticker of the index, empty is DefaultBaseline.
	Baseline string
	// Now returns the current time, nil is time.Now.
	Now func() time.Time
	// Location is the exchange time zone of intraday labels, nil is New York.
	Location *time.Location
}

// newYork is the time zone of the US exchanges.
var newYork = loadLocation("America/New_York")

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (s *Source) location() *time.Location {
	if s.Location == nil {
		return newYork
	}
	return s.Location
}

func (s *Source) Name() string { return "eodhd" }

// Quote returns the delayed real time quote of symbol.
func (s *Source) Quote(ctx context.Context, symbol string) (dashboard.Quote, error) {
	rt, err := s.Client.RealTime(ctx, Ticker(symbol))
	if err != nil {
		return dashboard.Quote{}, err
	}
	q := dashboard.NewQuote(strings.ToUpper(strings.TrimSpace(symbol)), rt.Close, rt.PreviousClose)
	q.Open, q.High, q.Low = rt.Open, rt.High, rt.Low
	q.Volume = rt.Volume
	q.Time = rt.Time.In(s.location())
	return q, nil
}

// Paths fetches the last Spec.DataPoints bars of the subject and its baseline.
//
// Only the bars both series have are kept. The subject is rescaled to start at
// req.StartValue and the baseline at req.BaselineStartValue when they are set.
func (s *Source) Paths(ctx context.Context, req dashboard.Request) (dashboard.Paths, error) {
	spec, err := req.Spec()
	if err != nil {
		return dashboard.Paths{}, err
	}

	names := dashboard.Names{Subject: "Portfolio", Baseline: req.Baseline}
	var subject string
	switch req.Chart {
	case dashboard.PerformanceChart:
		if s.Portfolio == "" {
			return dashboard.Paths{}, ErrNoPortfolio
		}
		subject = Ticker(s.Portfolio)
	case dashboard.SecurityChart:
		if req.Symbol == "" {
			return dashboard.Paths{}, fmt.Errorf("%w: security chart without a symbol", dashboard.ErrInvalidPath)
		}
		subject = Ticker(req.Symbol)
		names.Subject = req.Symbol
	default:
		return dashboard.Paths{}, fmt.Errorf("unknown chart kind %v", req.Chart)
	}
	baseline := req.Baseline
	if baseline == "" {
		baseline = s.Baseline
	}
	if baseline == "" {
		baseline = DefaultBaseline
	}
	if names.Baseline == "" {
		names.Baseline = baseline
	}

	var (
		times []time.Time
		a, b  dashboard.Series
	)
	if spec.ID == dashboard.Day {
		times, a, b, err = s.intraday(ctx, spec, subject, baseline)
	} else {
		times, a, b, err = s.daily(ctx, req, spec, subject, baseline)
	}
	if err != nil {
		return dashboard.Paths{}, err
	}
	if len(times) == 0 {
		return dashboard.Paths{}, fmt.Errorf("%w: no common prices for %s and %s", ErrUpstream, subject, baseline)
	}

	labels := make([]string, len(times))
	for i, t := range times {
		labels[i] = spec.DateLabel(t)
	}
	return dashboard.Paths{
		Spec:     spec,
		Labels:   labels,
		Subject:  rescale(a, req.StartValue),
		Baseline: rescale(b, req.BaselineStartValue),
		Names:    names,
	}, nil
}

func (s *Source) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// daily fetches end of day bars, weekly ones for the longest range.
func (s *Source) daily(ctx context.Context, req dashboard.Request, spec dashboard.RangeSpec, subject, baseline string) ([]time.Time, dashboard.Series, dashboard.Series, error) {
	to := req.AsOf
	if to.IsZero() {
		to = date.Of(s.now())
	}
	period, from := "d", to.Add(-(spec.DataPoints*7/5 + 10))
	if spec.Bar() >= 7*date.Day {
		period, from = "w", to.Add(-(spec.DataPoints+2)*7)
	}

	ha, err := s.Client.EOD(ctx, subject, from, to, period)
	if err != nil {
		return nil, nil, nil, err
	}
	hb, err := s.Client.EOD(ctx, baseline, from, to, period)
	if err != nil {
		return nil, nil, nil, err
	}
	days, av, bv := date.Intersect(ha, hb)
	n := max(len(days)-spec.DataPoints, 0)
	times := make([]time.Time, 0, len(days)-n)
	for _, d := range days[n:] {
		times = append(times, d.Time())
	}
	return times, av[n:], bv[n:], nil
}

// intraday fetches the 5 minutes bars of the last sessions, in exchange time.
func (s *Source) intraday(ctx context.Context, spec dashboard.RangeSpec, subject, baseline string) ([]time.Time, dashboard.Series, dashboard.Series, error) {
	to := s.now()
	// enough to cover a long weekend
	from := to.Add(-4 * date.Day)
	ba, err := s.Client.Intraday(ctx, subject, "5m", from, to)
	if err != nil {
		return nil, nil, nil, err
	}
	bb, err := s.Client.Intraday(ctx, baseline, "5m", from, to)
	if err != nil {
		return nil, nil, nil, err
	}
	index := make(map[int64]float64, len(bb))
	for _, bar := range bb {
		index[bar.Time.Unix()] = bar.Close
	}
	var (
		times []time.Time
		a, b  dashboard.Series
	)
	for _, bar := range ba {
		v, ok := index[bar.Time.Unix()]
		if !ok {
			continue
		}
		times, a, b = append(times, bar.Time.In(s.location())), append(a, bar.Close), append(b, v)
	}
	n := max(len(times)-spec.DataPoints, 0)
	return times[n:], a[n:], b[n:], nil
}

// rescale returns s scaled to start at start, or s itself when start is zero.
func rescale(s dashboard.Series, start float64) dashboard.Series {
	if start == 0 || len(s) == 0 || s[0] == 0 {
		return s
	}
	ratio := start / s[0]
	scaled := make(dashboard.Series, len(s))
	for i, v := range s {
		scaled[i] = v * ratio
	}
	scaled[0] = start
	return scaled
}
