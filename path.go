package dashboard

import "fmt"

// DefaultDrift is the per-step upward bias of synthetic paths.
const DefaultDrift = 0.0003

// Series is a chronological sequence of values, index 0 being the oldest.
type Series []float64

// SeriesPoint is an indexed value of a Series.
type SeriesPoint struct {
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

// Points returns the indexed view of s.
func (s Series) Points() []SeriesPoint {
	points := make([]SeriesPoint, len(s))
	for i, v := range s {
		points[i] = SeriesPoint{Index: i, Value: v}
	}
	return points
}

// First returns the origin of the series, or 0 if empty.
func (s Series) First() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[0]
}

// Last returns the latest value of the series, or 0 if empty.
func (s Series) Last() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

// GeneratePath simulates a multiplicative random walk of 'periods' values
// starting at 'start'.
//
// Each step applies value[i] = value[i-1] * (1 + drift + shock) where shock is
// drawn uniformly in [-volatility/2, volatility/2) from r. A step where
// drift+shock < -1 flips the sign of the path, this is not checked.
func GeneratePath(start float64, periods int, volatility, drift float64, r Random) (Series, error) {
	switch {
	case start <= 0:
		return nil, fmt.Errorf("%w: start value %v must be positive", ErrInvalidPath, start)
	case periods < 1:
		return nil, fmt.Errorf("%w: %d periods, want at least 1", ErrInvalidPath, periods)
	case volatility <= 0:
		return nil, fmt.Errorf("%w: volatility %v must be positive", ErrInvalidPath, volatility)
	}
	shocks := make([]float64, periods-1)
	for i := range shocks {
		shocks[i] = (r.Next() - 0.5) * volatility
	}
	return PathFromShocks(start, drift, shocks), nil
}

// PathFromShocks applies the random walk recurrence to already drawn shocks.
// The returned series has len(shocks)+1 values.
func PathFromShocks(start, drift float64, shocks []float64) Series {
	path := make(Series, len(shocks)+1)
	path[0] = start
	for i, shock := range shocks {
		path[i+1] = path[i] * (1 + drift + shock)
	}
	return path
}
