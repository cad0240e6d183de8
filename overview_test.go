package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverviewOf(t *testing.T) {
	o, err := OverviewOf("aapl")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", o.Symbol)
	assert.Equal(t, "Apple Inc.", o.Name)
	assert.Equal(t, "Technology", o.Sector)
	assert.Equal(t, "Tim Cook", o.CEO)

	facts := make(map[string]string)
	for _, f := range o.Facts("USD") {
		facts[f.Name] = f.Value
	}
	assert.Equal(t, "$187.24", facts["Price"])
	assert.Equal(t, "$2.91T", facts["Market cap"])
	assert.Equal(t, "$383.29B", facts["Revenue"])
	assert.Equal(t, "29.50", facts["P/E ratio"])
	assert.Equal(t, "0.52%", facts["Dividend yield"])
	assert.Equal(t, "164,000", facts["Employees"])
}

func TestOverviewPartial(t *testing.T) {
	o, err := OverviewOf("GLD")
	require.NoError(t, err)
	assert.Equal(t, OtherRegion, o.Region)
	for _, f := range o.Facts("EUR") {
		assert.NotEqual(t, "Market cap", f.Name)
		if f.Name == "Price" {
			assert.Contains(t, f.Value, "215.3")
		}
	}

	_, err = OverviewOf("ZZZZ")
	assert.ErrorIs(t, err, ErrUnknownAsset)
}
