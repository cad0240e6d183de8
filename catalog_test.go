package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	found := Search("apple", 0)
	require.Len(t, found, 1)
	assert.Equal(t, "AAPL", found[0].Symbol)

	found = Search("usd", 0)
	assert.Len(t, found, 2)

	assert.Len(t, Search("", 3), 3)
	assert.Empty(t, Search("nothing like this", 0))
}

func TestLookup(t *testing.T) {
	a, err := Lookup("jpm")
	require.NoError(t, err)
	assert.Equal(t, "NYSE", a.Exchange)
	assert.Equal(t, 195.63, a.Price)

	_, err = Lookup("XXXX")
	assert.ErrorIs(t, err, ErrUnknownAsset)
}
