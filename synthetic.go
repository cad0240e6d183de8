package dashboard

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Default start values of synthetic paths.
const (
	DefaultPortfolioValue = 125000.0
	DefaultSecurityPrice  = 10000.0
	// baselineRatio is the baseline start relative to the subject start.
	baselineRatio = 0.95
)

// DefaultBaseline is the name of the index performance charts are compared to.
const DefaultBaseline = "S&P 500"

// Synthetic is a Source of simulated random walks, for demos and offline use.
type Synthetic struct {
	// Random draws the shocks. Nil means a fresh unseeded source per call.
	Random Random
	// Drift is the per-step bias, zero means DefaultDrift.
	Drift float64

	mu sync.Mutex // guards Random
}

func (s *Synthetic) Name() string { return "synthetic" }

// Paths generates the subject and baseline paths of req.
//
// The subject starts at req.StartValue, or at the portfolio default for
// performance charts and at the catalog price of securities. Securities
// outside the catalog need a StartValue, ErrUnknownAsset otherwise. The
// baseline starts at req.BaselineStartValue or 95% of the subject start.
func (s *Synthetic) Paths(_ context.Context, req Request) (Paths, error) {
	spec, err := req.Spec()
	if err != nil {
		return Paths{}, err
	}
	r := s.Random
	if r == nil {
		r = Unseeded()
	} else {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	drift := s.Drift
	if drift == 0 {
		drift = DefaultDrift
	}

	names := Names{Subject: "Portfolio", Baseline: req.Baseline}
	start := req.StartValue
	switch req.Chart {
	case PerformanceChart:
		if start == 0 {
			start = DefaultPortfolioValue
		}
	case SecurityChart:
		if req.Symbol == "" {
			return Paths{}, fmt.Errorf("%w: security chart without a symbol", ErrInvalidPath)
		}
		names.Subject = strings.ToUpper(req.Symbol)
		if start == 0 {
			a, err := Lookup(req.Symbol)
			if err != nil {
				return Paths{}, err
			}
			start = a.Price
			if start == 0 {
				start = DefaultSecurityPrice
			}
		}
	default:
		return Paths{}, fmt.Errorf("unknown chart kind %v", req.Chart)
	}
	if names.Baseline == "" {
		names.Baseline = DefaultBaseline
	}
	baselineStart := req.BaselineStartValue
	if baselineStart == 0 {
		baselineStart = start * baselineRatio
	}

	subject, err := GeneratePath(start, spec.PointCount, spec.Volatility, drift, r)
	if err != nil {
		return Paths{}, fmt.Errorf("subject: %w", err)
	}
	baseline, err := GeneratePath(baselineStart, spec.PointCount, spec.BaselineVolatility, drift, r)
	if err != nil {
		return Paths{}, fmt.Errorf("baseline: %w", err)
	}
	return Paths{
		Spec:     spec,
		Labels:   spec.Labels(req.day()),
		Subject:  subject,
		Baseline: baseline,
		Names:    names,
	}, nil
}
