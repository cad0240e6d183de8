// Package eodhd reads market prices from EOD Historical Data (https://eodhd.com)
// and exposes them as a live chart source.
package eodhd

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
)

// DefaultBaseURL is the root of the EODHD API.
const DefaultBaseURL = "https://eodhd.com/api"

// ErrUpstream is returned when the EODHD API cannot be reached or answers with
// an error.
var ErrUpstream = errors.New("eodhd request failed")

// Client is an EODHD API client.
type Client struct {
	APIKey  string
	BaseURL string // empty is DefaultBaseURL
	// HTTP is used for end of day and search requests. It is usually a caching
	// client as those responses do not change during a day.
	HTTP *http.Client
	// Live is used for intraday requests, nil is http.DefaultClient.
	Live *http.Client
}

// NewClient returns a Client caching end of day responses on disk for the day.
func NewClient(apiKey string) *Client {
	return &Client{APIKey: apiKey, HTTP: newDailyCachingClient()}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

func (c *Client) liveClient() *http.Client {
	if c.Live == nil {
		return http.DefaultClient
	}
	return c.Live
}

// addr returns the url of an API endpoint, with the api token and json format set.
func (c *Client) addr(path string, query url.Values) string {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	if query == nil {
		query = url.Values{}
	}
	query.Set("fmt", "json")
	query.Set("api_token", c.APIKey)
	return strings.TrimSuffix(base, "/") + path + "?" + query.Encode()
}

// Ticker returns the EODHD ticker of a symbol, "AAPL" being "AAPL.US".
// Symbols that already carry an exchange are returned as is.
func Ticker(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if strings.Contains(symbol, ".") {
		return symbol
	}
	return symbol + ".US"
}
