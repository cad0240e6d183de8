package eodhd

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/etnz/dashboard/date"
	"github.com/shopspring/decimal"
)

// This file contains functions to access the EODHD API.

// EOD returns the closes of ticker between from and to, both included.
//
// period is "d" for daily bars, "w" for weekly and "m" for monthly ones. Closes
// are adjusted for splits and dividends when EODHD provides it.
func (c *Client) EOD(ctx context.Context, ticker string, from, to date.Date, period string) (*date.History[float64], error) {
	// https://eodhd.com/api/eod/MCD.US?api_token=demo&fmt=json
	// [
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 667.705,
	//		"volume": 0
	//	},
	// bounds are included in the response, and time is limited to 1 year with free subscription.
	q := url.Values{}
	q.Set("from", from.String())
	q.Set("to", to.String())
	if period != "" {
		q.Set("period", period)
	}
	addr := c.addr("/eod/"+url.PathEscape(ticker), q)

	type Info struct {
		Date          date.Date       `json:"date"`
		Close         decimal.Decimal `json:"close"`
		AdjustedClose decimal.Decimal `json:"adjusted_close"`
	}

	// that's the payload
	content := make([]Info, 0)
	if err := jwget(ctx, c.httpClient(), addr, &content); err != nil {
		return nil, fmt.Errorf("end of day prices of %s: %w", ticker, err)
	}

	var h date.History[float64]
	for _, info := range content {
		v := info.AdjustedClose
		if !v.IsPositive() {
			v = info.Close
		}
		h.Append(info.Date, v.InexactFloat64())
	}
	return &h, nil
}

// Bar is an intraday price.
type Bar struct {
	Time  time.Time
	Close float64
}

// Intraday returns the intraday bars of ticker between from and to.
// interval is "1m", "5m" or "1h".
func (c *Client) Intraday(ctx context.Context, ticker, interval string, from, to time.Time) ([]Bar, error) {
	// https://eodhd.com/api/intraday/AAPL.US?interval=5m&api_token=demo&fmt=json
	// [
	//	{
	//		"timestamp": 1694179800,
	//		"gmtoffset": 0,
	//		"datetime": "2023-09-08 13:30:00",
	//		"open": 178.35,
	//		"high": 179.1,
	//		"low": 177.78,
	//		"close": 178.75,
	//		"volume": 2386743
	//	},
	q := url.Values{}
	q.Set("interval", interval)
	q.Set("from", strconv.FormatInt(from.Unix(), 10))
	q.Set("to", strconv.FormatInt(to.Unix(), 10))
	addr := c.addr("/intraday/"+url.PathEscape(ticker), q)

	type Info struct {
		Timestamp int64            `json:"timestamp"`
		Close     *decimal.Decimal `json:"close"` // null for bars without trades
	}
	content := make([]Info, 0)
	if err := jwget(ctx, c.liveClient(), addr, &content); err != nil {
		return nil, fmt.Errorf("intraday prices of %s: %w", ticker, err)
	}

	bars := make([]Bar, 0, len(content))
	for _, info := range content {
		if info.Close == nil {
			continue
		}
		bars = append(bars, Bar{Time: time.Unix(info.Timestamp, 0).UTC(), Close: info.Close.InexactFloat64()})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

// RealTime is the delayed real time quote of a ticker.
type RealTime struct {
	Time          time.Time
	Open          float64
	High          float64
	Low           float64
	Close         float64
	PreviousClose float64
	Volume        int64
}

// RealTime returns the latest quote of ticker, delayed by 15 to 20 minutes.
func (c *Client) RealTime(ctx context.Context, ticker string) (RealTime, error) {
	// https://eodhd.com/api/real-time/AAPL.US?api_token=demo&fmt=json
	// {
	//	"code": "AAPL.US",
	//	"timestamp": 1694203200,
	//	"gmtoffset": 0,
	//	"open": 178.35,
	//	"high": 180.239,
	//	"low": 177.79,
	//	"close": 178.18,
	//	"volume": 65551300,
	//	"previousClose": 177.56,
	//	"change": 0.62,
	//	"change_p": 0.3492
	// }
	addr := c.addr("/real-time/"+url.PathEscape(ticker), nil)

	var info struct {
		Timestamp     int64           `json:"timestamp"`
		Open          decimal.Decimal `json:"open"`
		High          decimal.Decimal `json:"high"`
		Low           decimal.Decimal `json:"low"`
		Close         decimal.Decimal `json:"close"`
		PreviousClose decimal.Decimal `json:"previousClose"`
		Volume        int64           `json:"volume"`
	}
	if err := jwget(ctx, c.liveClient(), addr, &info); err != nil {
		return RealTime{}, fmt.Errorf("real time quote of %s: %w", ticker, err)
	}
	if info.Timestamp == 0 {
		return RealTime{}, fmt.Errorf("%w: no real time quote of %s", ErrUpstream, ticker)
	}
	return RealTime{
		Time:          time.Unix(info.Timestamp, 0).UTC(),
		Open:          info.Open.InexactFloat64(),
		High:          info.High.InexactFloat64(),
		Low:           info.Low.InexactFloat64(),
		Close:         info.Close.InexactFloat64(),
		PreviousClose: info.PreviousClose.InexactFloat64(),
		Volume:        info.Volume,
	}, nil
}
