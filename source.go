package dashboard

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/etnz/dashboard/date"
)

// ChartKind identifies which chart of the dashboard is requested.
type ChartKind int

const (
	// PerformanceChart is the portfolio value compared to a market index.
	PerformanceChart ChartKind = iota
	// SecurityChart is the price of a single security.
	SecurityChart
)

func (k ChartKind) String() string {
	switch k {
	case PerformanceChart:
		return "performance"
	case SecurityChart:
		return "security"
	default:
		return fmt.Sprintf("ChartKind(%d)", int(k))
	}
}

// Profile returns the range table used by charts of kind k.
func (k ChartKind) Profile() Profile {
	if k == SecurityChart {
		return Market
	}
	return Performance
}

// Request is everything needed to produce a chart.
type Request struct {
	Chart ChartKind
	Range RangeID
	Mode  Mode
	// Symbol of the security, SecurityChart only.
	Symbol string
	// Baseline is the index the subject is compared to, empty for the source default.
	Baseline string
	// StartValue and BaselineStartValue are the first values of the paths, zero
	// for the source default.
	StartValue         float64
	BaselineStartValue float64
	// AsOf is the last day of the chart, zero means today.
	AsOf date.Date
	// Currency is the ISO code of the values, empty means USD.
	Currency string
}

// day returns the as-of day of the request.
func (r Request) day() date.Date {
	if r.AsOf.IsZero() {
		return date.Today()
	}
	return r.AsOf
}

// Spec resolves the RangeSpec of the request.
func (r Request) Spec() (RangeSpec, error) {
	return r.Chart.Profile().ResolveAt(r.Range, r.day())
}

// Paths are the absolute series of a chart before any display transform.
type Paths struct {
	Spec     RangeSpec
	Labels   []string
	Subject  Series
	Baseline Series // nil when the source has no baseline
	Names    Names
}

// Source produces the absolute paths of a chart.
type Source interface {
	// Name identifies the source in logs and payloads.
	Name() string
	Paths(ctx context.Context, req Request) (Paths, error)
}

type fallback struct {
	primary, secondary Source
}

// Fallback returns a Source that uses secondary whenever primary fails.
//
// Validation errors (unsupported range or mode) are returned as is: the
// secondary would fail the same way.
func Fallback(primary, secondary Source) Source {
	return &fallback{primary: primary, secondary: secondary}
}

func (f *fallback) Name() string {
	return strings.Join([]string{f.primary.Name(), f.secondary.Name()}, "+")
}

func (f *fallback) Paths(ctx context.Context, req Request) (Paths, error) {
	p, err := f.primary.Paths(ctx, req)
	if err == nil {
		return p, nil
	}
	if isValidation(err) || ctx.Err() != nil {
		return Paths{}, err
	}
	log.Printf("%s source failed, using %s: %v", f.primary.Name(), f.secondary.Name(), err)
	return f.secondary.Paths(ctx, req)
}

// Build runs the chart pipeline: paths from src, transform for req.Mode, and
// assembly into a payload.
func Build(ctx context.Context, src Source, req Request) (ChartPayload, error) {
	p, err := src.Paths(ctx, req)
	if err != nil {
		return ChartPayload{}, fmt.Errorf("%s paths for %s %s: %w", src.Name(), req.Chart, req.Range, err)
	}
	series, err := Transform(req.Mode, p.Subject, p.Baseline, p.Names)
	if err != nil {
		return ChartPayload{}, fmt.Errorf("%s chart in %s mode: %w", req.Chart, req.Mode, err)
	}
	payload, err := Assemble(p.Labels, series...)
	if err != nil {
		return ChartPayload{}, err
	}
	payload.Currency = req.Currency
	return payload, nil
}
