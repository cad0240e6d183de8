package dashboard

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Mode selects how absolute paths are displayed.
type Mode int

const (
	// Value displays the raw values, in currency.
	Value Mode = iota
	// Return displays the percentage return since the first point.
	Return
	// VsIndex overlays the growth of the subject and of its baseline, in percent.
	VsIndex
)

func (m Mode) String() string {
	switch m {
	case Value:
		return "value"
	case Return:
		return "return"
	case VsIndex:
		return "vsindex"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a display mode name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "value", "":
		return Value, nil
	case "return":
		return Return, nil
	case "vsindex", "vs-index", "vs_index":
		return VsIndex, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedMode, s)
	}
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

var hundred = decimal.NewFromInt(100)

// decimals converts s for exact arithmetic.
func decimals(s Series) ([]decimal.Decimal, error) {
	d := make([]decimal.Decimal, len(s))
	for i, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("value %v at index %d is not a number", v, i)
		}
		d[i] = decimal.NewFromFloat(v)
	}
	if len(d) > 0 && d[0].IsZero() {
		return nil, ErrZeroOrigin
	}
	return d, nil
}

// Absolute is the pass-through transform.
func Absolute(name string, s Series) NamedSeries {
	return NamedSeries{Name: name, Values: s, Kind: Currency}
}

// ReturnFromOrigin returns the percentage change of each value relative to the first one.
// The first value is always 0.
func ReturnFromOrigin(s Series) (Series, error) {
	d, err := decimals(s)
	if err != nil {
		return nil, err
	}
	result := make(Series, len(s))
	for i := 1; i < len(d); i++ {
		result[i] = d[i].Sub(d[0]).Div(d[0]).Mul(hundred).InexactFloat64()
	}
	return result, nil
}

// growth returns (v[i]/v[0] - 1) * 100.
func growth(s Series) (Series, error) {
	d, err := decimals(s)
	if err != nil {
		return nil, err
	}
	result := make(Series, len(s))
	for i := 1; i < len(d); i++ {
		result[i] = d[i].Div(d[0]).Sub(decimal.NewFromInt(1)).Mul(hundred).InexactFloat64()
	}
	return result, nil
}

// GrowthVsBaseline normalizes a subject and its baseline to their growth in
// percent since their common origin. Both series must have the same length.
func GrowthVsBaseline(subject, baseline Series) (Series, Series, error) {
	if len(subject) != len(baseline) {
		return nil, nil, fmt.Errorf("%w: subject has %d values, baseline %d", ErrLengthMismatch, len(subject), len(baseline))
	}
	a, err := growth(subject)
	if err != nil {
		return nil, nil, fmt.Errorf("subject: %w", err)
	}
	b, err := growth(baseline)
	if err != nil {
		return nil, nil, fmt.Errorf("baseline: %w", err)
	}
	return a, b, nil
}

// Names are the display names of the subject and baseline series.
type Names struct {
	Subject, Baseline string
}

// Transform derives the series displayed for a mode.
// The baseline is only used, and required, by VsIndex.
func Transform(mode Mode, subject, baseline Series, names Names) ([]NamedSeries, error) {
	switch mode {
	case Value:
		return []NamedSeries{Absolute(names.Subject, subject)}, nil
	case Return:
		r, err := ReturnFromOrigin(subject)
		if err != nil {
			return nil, err
		}
		return []NamedSeries{{Name: names.Subject, Values: r, Kind: Percent}}, nil
	case VsIndex:
		a, b, err := GrowthVsBaseline(subject, baseline)
		if err != nil {
			return nil, err
		}
		return []NamedSeries{
			{Name: names.Subject, Values: a, Kind: Percent},
			{Name: names.Baseline, Values: b, Kind: Percent},
		}, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMode, mode)
	}
}
