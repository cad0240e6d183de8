package eodhd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/etnz/dashboard/date"
)

// fakeAPI serves canned EODHD responses keyed by url path.
func fakeAPI(t *testing.T, responses map[string]string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_token") != "test-key" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		body, ok := responses[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return &Client{APIKey: "test-key", BaseURL: srv.URL, HTTP: srv.Client(), Live: srv.Client()}
}

func TestEOD(t *testing.T) {
	c := fakeAPI(t, map[string]string{
		"/eod/MCD.US": `[
			{"date":"2024-02-14","open":1,"close":291.5,"adjusted_close":290.1,"volume":10},
			{"date":"2024-02-13","open":1,"close":289.5,"adjusted_close":0,"volume":10}
		]`,
	})
	h, err := c.EOD(context.Background(), "MCD.US", date.New(2024, 2, 13), date.New(2024, 2, 14), "d")
	if err != nil {
		t.Fatalf("EOD() unexpected error = %v", err)
	}
	if h.Len() != 2 {
		t.Fatalf("EOD() returned %d prices, want 2", h.Len())
	}
	if v, _ := h.Get(date.New(2024, 2, 13)); v != 289.5 {
		t.Errorf("EOD() 2024-02-13 = %v, want the close 289.5", v)
	}
	if v, _ := h.Get(date.New(2024, 2, 14)); v != 290.1 {
		t.Errorf("EOD() 2024-02-14 = %v, want the adjusted close 290.1", v)
	}
}

func TestEODError(t *testing.T) {
	c := fakeAPI(t, nil)
	_, err := c.EOD(context.Background(), "NOPE.US", date.New(2024, 2, 13), date.New(2024, 2, 14), "d")
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("EOD() error = %v, want a 404 error", err)
	}
}

func TestIntraday(t *testing.T) {
	c := fakeAPI(t, map[string]string{
		"/intraday/AAPL.US": `[
			{"timestamp":1694180100,"gmtoffset":0,"datetime":"2023-09-08 13:35:00","close":178.9},
			{"timestamp":1694179800,"gmtoffset":0,"datetime":"2023-09-08 13:30:00","close":178.75},
			{"timestamp":1694180400,"gmtoffset":0,"datetime":"2023-09-08 13:40:00","close":null}
		]`,
	})
	bars, err := c.Intraday(context.Background(), "AAPL.US", "5m", time.Unix(1694179000, 0), time.Unix(1694181000, 0))
	if err != nil {
		t.Fatalf("Intraday() unexpected error = %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("Intraday() returned %d bars, want 2", len(bars))
	}
	if bars[0].Close != 178.75 || bars[0].Time.Format("15:04") != "13:30" {
		t.Errorf("Intraday() first bar = %v, want 13:30 178.75", bars[0])
	}
}

func TestSearch(t *testing.T) {
	c := fakeAPI(t, map[string]string{
		"/search/Apple": `[{"Code":"AAPL","Exchange":"US","Name":"Apple Inc","Type":"Common Stock","Country":"USA","Currency":"USD","ISIN":"US0378331005","previousClose":187.24,"previousCloseDate":"2024-02-13"}]`,
	})
	results, err := c.Search(context.Background(), "Apple", 5)
	if err != nil {
		t.Fatalf("Search() unexpected error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Search() returned %d results, want 1", len(results))
	}
	a := results[0].Asset()
	if a.Symbol != "AAPL.US" || a.Price != 187.24 {
		t.Errorf("Search() asset = %+v, want AAPL.US at 187.24", a)
	}
}

func TestTicker(t *testing.T) {
	tests := map[string]string{
		"aapl":      "AAPL.US",
		"GSPC.INDX": "GSPC.INDX",
		" nvd.f ":   "NVD.F",
	}
	for symbol, want := range tests {
		if got := Ticker(symbol); got != want {
			t.Errorf("Ticker(%q) = %q, want %q", symbol, got, want)
		}
	}
}
