package dashboard

import (
	"fmt"
	"strings"
)

// Asset is a searchable security of the demo catalog.
type Asset struct {
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Exchange string  `json:"exchange"`
	Price    float64 `json:"price,omitempty"` // last known price, zero if unknown
}

// catalog is the set of assets served by the synthetic source.
var catalog = []Asset{
	{"AAPL", "Apple Inc.", "Stock", "NASDAQ", 187.24},
	{"MSFT", "Microsoft Corporation", "Stock", "NASDAQ", 415.86},
	{"GOOGL", "Alphabet Inc.", "Stock", "NASDAQ", 152.91},
	{"AMZN", "Amazon.com Inc.", "Stock", "NASDAQ", 178.45},
	{"TSLA", "Tesla Inc.", "Stock", "NASDAQ", 245.33},
	{"NVDA", "NVIDIA Corporation", "Stock", "NASDAQ", 950.02},
	{"META", "Meta Platforms Inc.", "Stock", "NASDAQ", 485.75},
	{"JPM", "JPMorgan Chase & Co.", "Stock", "NYSE", 195.63},
	{"NKE", "Nike Inc.", "Stock", "NYSE", 104.92},
	{"PG", "Procter & Gamble Co.", "Stock", "NYSE", 156.25},
	{"ASML", "ASML Holding N.V.", "Stock", "NASDAQ", 912.4},
	{"TCEHY", "Tencent Holdings Ltd.", "Stock", "OTC", 38.55},
	{"VOO", "Vanguard S&P 500 ETF", "ETF", "NYSE", 470.12},
	{"QQQ", "Invesco QQQ Trust", "ETF", "NASDAQ", 440.53},
	{"GLD", "SPDR Gold Shares", "ETF", "NYSE", 215.3},
	{"BTC-USD", "Bitcoin", "Crypto", "Crypto", 67250},
	{"ETH-USD", "Ethereum", "Crypto", "Crypto", 3825.5},
	{"US10Y", "10-Year Treasury Note", "Bond", "Bond", 98.25},
}

// Search returns the assets whose symbol or name contains query, case
// insensitively, in catalog order. limit <= 0 means no limit.
func Search(query string, limit int) []Asset {
	q := strings.ToLower(strings.TrimSpace(query))
	var found []Asset
	for _, a := range catalog {
		if limit > 0 && len(found) == limit {
			break
		}
		if strings.Contains(strings.ToLower(a.Symbol), q) || strings.Contains(strings.ToLower(a.Name), q) {
			found = append(found, a)
		}
	}
	return found
}

// Lookup returns the asset with that exact symbol, case insensitively.
func Lookup(symbol string) (Asset, error) {
	for _, a := range catalog {
		if strings.EqualFold(a.Symbol, symbol) {
			return a, nil
		}
	}
	return Asset{}, fmt.Errorf("%w: %q", ErrUnknownAsset, symbol)
}
