package dashboard

import (
	"cmp"
	"slices"
	"time"

	"github.com/etnz/dashboard/date"
	"github.com/shopspring/decimal"
)

// Dividend is a dividend payment of a holding.
type Dividend struct {
	Symbol string    `json:"symbol"`
	Name   string    `json:"name"`
	Date   date.Date `json:"date"`
	Amount float64   `json:"amount"` // per share
	Shares float64   `json:"shares"`
	Total  float64   `json:"total"`
}

// payDay is the day of the month dividends are paid, or the next weekday.
const payDay = 15

// Dividends returns the dividend payments of p in year, by date.
//
// Dividend payers pay a quarter of their yearly yield every three months, at
// the current price.
func (p Portfolio) Dividends(year int) []Dividend {
	var divs []Dividend
	for _, h := range p.Holdings {
		if h.DividendYield <= 0 {
			continue
		}
		first := 3
		if a, err := Lookup(h.Symbol); err == nil && profiles[a.Symbol].payMonth > 0 {
			first = profiles[a.Symbol].payMonth
		}
		amount := decimal.NewFromFloat(h.Price * float64(h.DividendYield) / 100 / 4).Round(3).InexactFloat64()
		for m := first; m <= 12; m += 3 {
			on := date.New(year, time.Month(m), payDay)
			for !on.IsWeekday() {
				on = on.Add(1)
			}
			divs = append(divs, Dividend{
				Symbol: h.Symbol,
				Name:   h.Name,
				Date:   on,
				Amount: amount,
				Shares: h.Shares,
				Total:  cents(amount * h.Shares),
			})
		}
	}
	slices.SortStableFunc(divs, func(a, b Dividend) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		}
		return cmp.Compare(a.Symbol, b.Symbol)
	})
	return divs
}

// DividendMonth are the payments of a month.
type DividendMonth struct {
	Month     string     `json:"month"`
	Dividends []Dividend `json:"dividends"`
	Total     float64    `json:"total"`
}

// DividendCalendar returns the twelve months of year with their payments,
// months without payments included.
func (p Portfolio) DividendCalendar(year int) []DividendMonth {
	months := make([]DividendMonth, 12)
	for i := range months {
		months[i] = DividendMonth{Month: time.Month(i + 1).String()[:3], Dividends: []Dividend{}}
	}
	for _, d := range p.Dividends(year) {
		m := &months[d.Date.Month()-1]
		m.Dividends = append(m.Dividends, d)
		m.Total = cents(m.Total + d.Total)
	}
	return months
}

// DividendTotal returns the sum of the payments of months.
func DividendTotal(months []DividendMonth) float64 {
	var total float64
	for _, m := range months {
		total += m.Total
	}
	return cents(total)
}
