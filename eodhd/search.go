package eodhd

import (
	"context"
	"net/url"
	"strconv"

	"github.com/etnz/dashboard"
)

// SearchResult matches the structure of a single item in the EODHD search API response.
type SearchResult struct {
	Code              string  `json:"Code"`
	Exchange          string  `json:"Exchange"`
	Name              string  `json:"Name"`
	Type              string  `json:"Type"`
	Country           string  `json:"Country"`
	Currency          string  `json:"Currency"`
	ISIN              string  `json:"ISIN"`
	PreviousClose     float64 `json:"previousClose"`
	PreviousCloseDate string  `json:"previousCloseDate"`
}

// Ticker returns the EODHD ticker of the result, to be used with EOD and Intraday.
func (r SearchResult) Ticker() string { return r.Code + "." + r.Exchange }

// Asset converts the result into a dashboard asset.
func (r SearchResult) Asset() dashboard.Asset {
	return dashboard.Asset{
		Symbol:   r.Ticker(),
		Name:     r.Name,
		Type:     r.Type,
		Exchange: r.Exchange,
		Price:    r.PreviousClose,
	}
}

// Search searches for securities via EOD Historical Data API.
// limit <= 0 is the API default.
func (c *Client) Search(ctx context.Context, term string, limit int) ([]SearchResult, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var results []SearchResult
	if err := jwget(ctx, c.httpClient(), c.addr("/search/"+url.PathEscape(term), q), &results); err != nil {
		return nil, err
	}
	return results, nil
}
