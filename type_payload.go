package dashboard

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// ValueKind tells the renderer how to format the values of a series.
type ValueKind int

const (
	Currency ValueKind = iota
	Percent
)

func (k ValueKind) String() string {
	switch k {
	case Currency:
		return "currency"
	case Percent:
		return "percent"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

func (k ValueKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *ValueKind) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "currency":
		*k = Currency
	case "percent":
		*k = Percent
	default:
		return fmt.Errorf("unknown value kind %q", b)
	}
	return nil
}

// NamedSeries is a series ready for display.
type NamedSeries struct {
	Name   string    `json:"name"`
	Kind   ValueKind `json:"kind"`
	Values Series    `json:"values"`
}

// places returns the number of decimals kept when marshalling values of kind k.
func (k ValueKind) places() int32 {
	if k == Percent {
		return 4
	}
	return 2
}

// minDigits is the number of significant digits kept for values below one.
const minDigits = 4

// round rounds v for display: k.places() decimals, and at least minDigits
// significant digits below one so that sub-cent prices survive.
func (k ValueKind) round(v float64) float64 {
	places := k.places()
	if a := math.Abs(v); a > 0 && a < 1 {
		// a = m × 10^e with e < 0
		e := int32(math.Floor(math.Log10(a)))
		places = max(places, minDigits-1-e)
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// MarshalJSON writes the values rounded for display.
func (s NamedSeries) MarshalJSON() ([]byte, error) {
	values := make([]float64, len(s.Values))
	for i, v := range s.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("series %q: value %v at index %d is not a number", s.Name, v, i)
		}
		values[i] = s.Kind.round(v)
	}
	var w jsonObjectWriter
	w.Append("name", s.Name)
	w.Append("kind", s.Kind)
	w.Append("values", values)
	return w.MarshalJSON()
}

// ChartPayload is the renderer-agnostic content of a chart: one label per
// point, and any number of series with one value per label.
type ChartPayload struct {
	Labels []string      `json:"labels"`
	Series []NamedSeries `json:"series"`
	// Currency is the ISO code of the Currency kind values, empty means USD.
	Currency string `json:"currency,omitempty"`
}

func (p ChartPayload) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("labels", p.Labels)
	w.Append("series", p.Series)
	w.Optional("currency", p.Currency)
	return w.MarshalJSON()
}

// Assemble combines labels and series into a ChartPayload.
//
// Every series must have exactly one value per label. The payload owns copies
// of its inputs.
func Assemble(labels []string, series ...NamedSeries) (ChartPayload, error) {
	p := ChartPayload{
		Labels: slices.Clone(labels),
		Series: make([]NamedSeries, 0, len(series)),
	}
	for _, s := range series {
		if len(s.Values) != len(labels) {
			return ChartPayload{}, fmt.Errorf("%w: series %q has %d values for %d labels", ErrSeriesLengthMismatch, s.Name, len(s.Values), len(labels))
		}
		s.Values = slices.Clone(s.Values)
		p.Series = append(p.Series, s)
	}
	return p, nil
}

// Len returns the number of points of the chart.
func (p ChartPayload) Len() int { return len(p.Labels) }

// Lookup returns the series called name.
func (p ChartPayload) Lookup(name string) (NamedSeries, bool) {
	i := slices.IndexFunc(p.Series, func(s NamedSeries) bool { return s.Name == name })
	if i < 0 {
		return NamedSeries{}, false
	}
	return p.Series[i], true
}
