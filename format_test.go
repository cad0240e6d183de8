package dashboard

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{1.23e12, "$1.23T"},
		{4.5e9, "$4.50B"},
		{2_500_000, "$2.50M"},
		{1e6, "$1.00M"},
		{999_999, "$999,999"},
		{999, "$999"},
		{1234.5, "$1,234.5"},
		{125000, "$125,000"},
		{0.1234, "$0.123"},
		{0, "$0"},
		{-2_500_000, "-$2.50M"},
		{-1234.5, "-$1,234.5"},
		{-0.0001, "$0"},
		{999_995_000, "$1.00B"},
		{999_994_000, "$999.99M"},
		{999_999.9996, "$1.00M"},
		{999_999_999_999_999, "$1000.00T"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCurrency(tt.amount, "USD"), "%v", tt.amount)
	}
}

func TestFormatCurrencyDefaultsToUSD(t *testing.T) {
	assert.Equal(t, "$4.50B", FormatCurrency(4.5e9, ""))
}

func TestFormatCurrencyEUR(t *testing.T) {
	assert.Equal(t, "€1.50M", FormatCurrency(1.5e6, "EUR"))
}

func TestFormatCurrencyNotANumber(t *testing.T) {
	assert.Equal(t, "-", FormatCurrency(math.NaN(), "USD"))
	assert.Equal(t, "-", FormatCurrency(math.Inf(-1), "USD"))
}

func TestValueKindFormat(t *testing.T) {
	assert.Equal(t, "12.35%", Percent.Format(12.345678, "USD"))
	assert.Equal(t, "$1,234.5", Currency.Format(1234.5, "USD"))
}

func TestPct(t *testing.T) {
	assert.Equal(t, "+5.00%", Pct(5).SignedString())
	assert.Equal(t, "-", Pct(0.001).SignedString())
	assert.Equal(t, "-2.50%", Pct(-2.5).String())
	assert.True(t, Pct(1.00001).Equal(1))
}
