package dashboard

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReturnFromOrigin(t *testing.T) {
	got, err := ReturnFromOrigin(Series{100000, 105000, 95000})
	require.NoError(t, err)
	assert.Equal(t, Series{0, 5, -5}, got)
}

func TestReturnFromOriginZero(t *testing.T) {
	_, err := ReturnFromOrigin(Series{0, 1})
	assert.ErrorIs(t, err, ErrZeroOrigin)

	_, err = ReturnFromOrigin(Series{1, math.NaN()})
	assert.Error(t, err)

	got, err := ReturnFromOrigin(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGrowthVsBaseline(t *testing.T) {
	a, b, err := GrowthVsBaseline(Series{200, 220, 180}, Series{50, 50, 55})
	require.NoError(t, err)
	assert.Equal(t, Series{0, 10, -10}, a)
	assert.Equal(t, Series{0, 0, 10}, b)
}

func TestGrowthVsBaselineMismatch(t *testing.T) {
	_, _, err := GrowthVsBaseline(Series{1, 2, 3, 4, 5}, Series{1, 2, 3, 4})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestTransform(t *testing.T) {
	subject, baseline := Series{100, 110}, Series{10, 12}
	names := Names{Subject: "Portfolio", Baseline: "S&P 500"}

	got, err := Transform(Value, subject, nil, names)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, NamedSeries{Name: "Portfolio", Kind: Currency, Values: subject}, got[0])

	got, err = Transform(Return, subject, nil, names)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, Percent, got[0].Kind)
	assert.Equal(t, Series{0, 10}, got[0].Values)

	got, err = Transform(VsIndex, subject, baseline, names)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "S&P 500", got[1].Name)
	assert.Equal(t, Series{0, 20}, got[1].Values)

	_, err = Transform(VsIndex, subject, nil, names)
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = Transform(Mode(9), subject, baseline, names)
	assert.ErrorIs(t, err, ErrUnsupportedMode)
}

func TestParseMode(t *testing.T) {
	tests := map[string]Mode{
		"":         Value,
		"value":    Value,
		"RETURN":   Return,
		"vsIndex":  VsIndex,
		"vs-index": VsIndex,
	}
	for s, want := range tests {
		got, err := ParseMode(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got)
	}
	_, err := ParseMode("log")
	assert.ErrorIs(t, err, ErrUnsupportedMode)
}
