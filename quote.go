package dashboard

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
)

// Quote is the current trading state of a security.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent Pct       `json:"change_percent"`
	Open          float64   `json:"open"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	PreviousClose float64   `json:"previous_close"`
	Volume        int64     `json:"volume"`
	Time          time.Time `json:"time"`
}

// Quoter is implemented by the sources that can quote a security.
type Quoter interface {
	Quote(ctx context.Context, symbol string) (Quote, error)
}

// QuoteOf returns the quote of symbol from src, an error when src cannot quote.
func QuoteOf(ctx context.Context, src Source, symbol string) (Quote, error) {
	q, ok := src.(Quoter)
	if !ok {
		return Quote{}, fmt.Errorf("%s source has no quotes", src.Name())
	}
	return q.Quote(ctx, symbol)
}

// NewQuote returns the quote of a security trading at price after closing
// at previousClose.
func NewQuote(symbol string, price, previousClose float64) Quote {
	q := Quote{
		Symbol:        symbol,
		Price:         cents(price),
		PreviousClose: cents(previousClose),
		Open:          cents(previousClose),
		High:          cents(max(price, previousClose)),
		Low:           cents(min(price, previousClose)),
	}
	q.Change = cents(q.Price - q.PreviousClose)
	if q.PreviousClose != 0 {
		q.ChangePercent = Pct(q.Change / q.PreviousClose * 100)
	}
	return q
}

// Quote simulates the quote of a catalog security: the catalog price is the
// previous close, and the session moves it by at most 2.5%.
func (s *Synthetic) Quote(_ context.Context, symbol string) (Quote, error) {
	a, err := Lookup(symbol)
	if err != nil {
		return Quote{}, err
	}
	base := a.Price
	if base == 0 {
		base = DefaultSecurityPrice
	}

	r := s.Random
	if r == nil {
		r = Unseeded()
	} else {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	price := base * (1 + (r.Next()-0.5)*0.05)
	q := NewQuote(a.Symbol, price, base)
	q.Open = cents(base * (1 + (r.Next()-0.5)*0.01))
	q.High = cents(max(q.Price, q.Open) * (1 + r.Next()*0.005))
	q.Low = cents(min(q.Price, q.Open) * (1 - r.Next()*0.005))
	q.Volume = 1_000_000 + int64(r.Next()*10_000_000)
	q.Time = time.Now().UTC().Truncate(time.Second)
	return q, nil
}

// Quote quotes symbol with the primary source, and with the secondary one
// when the primary fails or cannot quote.
func (f *fallback) Quote(ctx context.Context, symbol string) (Quote, error) {
	q, err := QuoteOf(ctx, f.primary, symbol)
	if err == nil {
		return q, nil
	}
	if ctx.Err() != nil {
		return Quote{}, err
	}
	log.Printf("%s source failed to quote %s, using %s: %v", f.primary.Name(), symbol, f.secondary.Name(), err)
	return QuoteOf(ctx, f.secondary, symbol)
}

// cents rounds an amount to 2 decimals.
func cents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
