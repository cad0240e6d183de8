package dashboard

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Holding is a position of the portfolio, valued at the catalog price.
type Holding struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Sector string `json:"sector"`
	Region string `json:"region"`

	Shares        float64 `json:"shares"`
	AvgCost       float64 `json:"avg_cost"`
	Price         float64 `json:"price"`
	PreviousClose float64 `json:"previous_close"`
	DividendYield Pct     `json:"dividend_yield"`

	MarketValue  float64 `json:"market_value"`
	Cost         float64 `json:"cost"`
	Gain         float64 `json:"gain"`
	GainPercent  Pct     `json:"gain_percent"`
	DayChange    float64 `json:"day_change"`
	DayChangePct Pct     `json:"day_change_percent"`
}

// NewHolding returns the holding of shares of the catalog asset symbol,
// bought at avgCost on average.
func NewHolding(symbol string, shares, avgCost, previousClose float64) (Holding, error) {
	a, err := Lookup(symbol)
	if err != nil {
		return Holding{}, err
	}
	if shares <= 0 {
		return Holding{}, fmt.Errorf("holding %s: invalid quantity %v", a.Symbol, shares)
	}
	p := profileOf(a)
	h := Holding{
		Symbol:        a.Symbol,
		Name:          a.Name,
		Type:          a.Type,
		Sector:        p.sector,
		Region:        p.region,
		Shares:        shares,
		AvgCost:       avgCost,
		Price:         a.Price,
		PreviousClose: previousClose,
		DividendYield: p.yield,
	}
	h.MarketValue = cents(shares * a.Price)
	h.Cost = cents(shares * avgCost)
	h.Gain = cents(h.MarketValue - h.Cost)
	if h.Cost != 0 {
		h.GainPercent = Pct(h.Gain / h.Cost * 100)
	}
	h.DayChange = cents(shares * (a.Price - previousClose))
	if previousClose != 0 {
		h.DayChangePct = Pct((a.Price - previousClose) / previousClose * 100)
	}
	return h, nil
}

// AnnualDividends returns the dividends paid by h over a year at the current
// yield.
func (h Holding) AnnualDividends() float64 {
	return h.MarketValue * float64(h.DividendYield) / 100
}

// Portfolio is a set of holdings and some cash.
type Portfolio struct {
	Holdings []Holding
	Cash     float64
}

// demoPositions are the holdings of the demo portfolio: symbol, shares,
// average cost and previous close.
var demoPositions = []struct {
	symbol                  string
	shares, avgCost, before float64
}{
	{"AAPL", 15, 150, 185.9},
	{"MSFT", 2, 295.4, 410.63},
	{"NVDA", 4, 420, 962.1},
	{"TSLA", 6, 180.5, 229.66},
	{"JPM", 6, 140, 194.1},
	{"PG", 5, 145.8, 155.37},
	{"ASML", 3, 650, 905.2},
	{"TCEHY", 60, 41.2, 38.9},
	{"VOO", 20, 380, 468.4},
	{"GLD", 10, 180, 216.05},
	{"ETH-USD", 0.5, 3200, 3700.25},
	{"BTC-USD", 0.05, 42000, 66100},
	{"US10Y", 30, 97.5, 98.1},
}

// demoCash is the cash of the demo portfolio.
const demoCash = 1963

// DemoPortfolio returns the portfolio of the dashboard demo.
func DemoPortfolio() Portfolio {
	p := Portfolio{Cash: demoCash}
	for _, pos := range demoPositions {
		h, err := NewHolding(pos.symbol, pos.shares, pos.avgCost, pos.before)
		if err != nil {
			panic(err) // demo positions are catalog assets
		}
		p.Holdings = append(p.Holdings, h)
	}
	return p
}

// Holding returns the holding of symbol.
func (p Portfolio) Holding(symbol string) (Holding, error) {
	for _, h := range p.Holdings {
		if strings.EqualFold(h.Symbol, symbol) {
			return h, nil
		}
	}
	return Holding{}, fmt.Errorf("%w: %q is not held", ErrUnknownAsset, symbol)
}

// Summary is the headline of a portfolio.
type Summary struct {
	Value           float64 `json:"value"` // holdings and cash
	Cash            float64 `json:"cash"`
	Cost            float64 `json:"cost"`
	Gain            float64 `json:"gain"`
	GainPercent     Pct     `json:"gain_percent"`
	DayChange       float64 `json:"day_change"`
	DayChangePct    Pct     `json:"day_change_percent"`
	AnnualDividends float64 `json:"annual_dividends"`
	Yield           Pct     `json:"dividend_yield"`
	YieldOnCost     Pct     `json:"yield_on_cost"`
	Holdings        int     `json:"holdings"`
}

// Summary returns the headline figures of p.
func (p Portfolio) Summary() Summary {
	s := Summary{Cash: p.Cash, Holdings: len(p.Holdings)}
	var value, dividends float64
	for _, h := range p.Holdings {
		value += h.MarketValue
		s.Cost += h.Cost
		s.DayChange += h.DayChange
		dividends += h.AnnualDividends()
	}
	s.Value = cents(value + p.Cash)
	s.Cost = cents(s.Cost)
	s.Gain = cents(value - s.Cost)
	s.DayChange = cents(s.DayChange)
	s.AnnualDividends = cents(dividends)
	if s.Cost != 0 {
		s.GainPercent = Pct(s.Gain / s.Cost * 100)
		s.YieldOnCost = Pct(dividends / s.Cost * 100)
	}
	if before := s.Value - s.DayChange; before != 0 {
		s.DayChangePct = Pct(s.DayChange / before * 100)
	}
	if s.Value != 0 {
		s.Yield = Pct(dividends / s.Value * 100)
	}
	return s
}

// Breakdown is a way to group the holdings of an allocation.
type Breakdown int

const (
	ByType Breakdown = iota
	BySector
	ByRegion
)

func (b Breakdown) String() string {
	switch b {
	case ByType:
		return "type"
	case BySector:
		return "sector"
	case ByRegion:
		return "region"
	default:
		return fmt.Sprintf("Breakdown(%d)", int(b))
	}
}

// ParseBreakdown parses "type", "sector" or "region", case insensitively.
func ParseBreakdown(s string) (Breakdown, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "type", "":
		return ByType, nil
	case "sector":
		return BySector, nil
	case "region":
		return ByRegion, nil
	default:
		return 0, fmt.Errorf("%w: %q, want type, sector or region", ErrUnsupportedBreakdown, s)
	}
}

// typeGroups are the allocation groups of the asset types.
var typeGroups = map[string]string{
	"Stock":  "Stocks",
	"ETF":    "ETFs",
	"Crypto": "Crypto",
	"Bond":   "Bonds",
}

// groupOf returns the allocation group of h for b.
func (b Breakdown) groupOf(h Holding) string {
	switch b {
	case BySector:
		return h.Sector
	case ByRegion:
		return h.Region
	default:
		if g, ok := typeGroups[h.Type]; ok {
			return g
		}
		return h.Type
	}
}

// Slice is a group of an allocation.
type Slice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Share Pct     `json:"share"`
}

// Allocation returns the share of each group of holdings in the value of p,
// largest first. Cash is a group of its own.
func (p Portfolio) Allocation(by Breakdown) []Slice {
	values := make(map[string]float64)
	var total float64
	for _, h := range p.Holdings {
		values[by.groupOf(h)] += h.MarketValue
		total += h.MarketValue
	}
	if p.Cash != 0 {
		values["Cash"] += p.Cash
		total += p.Cash
	}
	groups := make([]Slice, 0, len(values))
	for name, v := range values {
		s := Slice{Name: name, Value: cents(v)}
		if total != 0 {
			s.Share = Pct(v / total * 100)
		}
		groups = append(groups, s)
	}
	sortSlices(groups)
	return groups
}

func sortSlices(s []Slice) {
	slices.SortFunc(s, func(a, b Slice) int {
		if c := cmp.Compare(b.Value, a.Value); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
}

// AllocationChart returns the allocation as a chart: one label per group, the
// share of each group as a percent series and its value as a currency one.
func (p Portfolio) AllocationChart(by Breakdown) (ChartPayload, error) {
	alloc := p.Allocation(by)
	labels := make([]string, len(alloc))
	shares := make(Series, len(alloc))
	values := make(Series, len(alloc))
	for i, s := range alloc {
		labels[i], shares[i], values[i] = s.Name, float64(s.Share), s.Value
	}
	return Assemble(labels,
		NamedSeries{Name: "Allocation", Kind: Percent, Values: shares},
		NamedSeries{Name: "Value", Kind: Currency, Values: values},
	)
}
