package dashboard

import "strings"

// Overview is the company profile and key figures of an asset.
//
// Zero figures are unknown: ETFs have no earnings and bonds no market cap.
type Overview struct {
	Symbol      string  `json:"symbol"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Exchange    string  `json:"exchange"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Country     string  `json:"country,omitempty"`
	Region      string  `json:"region"`
	Sector      string  `json:"sector"`
	Industry    string  `json:"industry,omitempty"`

	MarketCap       float64 `json:"market_cap,omitempty"`
	PERatio         float64 `json:"pe_ratio,omitempty"`
	EPS             float64 `json:"eps,omitempty"`
	Beta            float64 `json:"beta,omitempty"`
	DividendYield   Pct     `json:"dividend_yield"`
	High52          float64 `json:"week52_high,omitempty"`
	Low52           float64 `json:"week52_low,omitempty"`
	Revenue         float64 `json:"revenue,omitempty"`
	GrossProfit     float64 `json:"gross_profit,omitempty"`
	ProfitMargin    Pct     `json:"profit_margin,omitempty"`
	OperatingMargin Pct     `json:"operating_margin,omitempty"`
	ReturnOnEquity  Pct     `json:"return_on_equity,omitempty"`
	Employees       int     `json:"employees,omitempty"`
	CEO             string  `json:"ceo,omitempty"`
	Website         string  `json:"website,omitempty"`
}

// profile is the part of an Overview that is not in the catalog.
type profile struct {
	description, country, region, sector, industry string

	marketCap, pe, eps, beta              float64
	yield                                 Pct
	high52, low52                         float64
	revenue, grossProfit                  float64
	profitMargin, operatingMargin, roe    Pct
	employees                             int
	ceo, website                          string
	// payMonth is the first month of the quarterly dividends, 1 to 3.
	payMonth int
}

// Regions of the allocation breakdown.
const (
	NorthAmerica = "North America"
	Europe       = "Europe"
	AsiaPacific  = "Asia Pacific"
	OtherRegion  = "Other"
)

var profiles = map[string]profile{
	"AAPL": {
		description: "Apple Inc. designs, manufactures, and markets smartphones, personal computers, tablets, wearables, and accessories worldwide.",
		country: "USA", region: NorthAmerica, sector: "Technology", industry: "Consumer Electronics",
		marketCap: 2.91e12, pe: 29.5, eps: 6.16, beta: 1.25, yield: 0.52,
		high52: 199.62, low52: 124.17, revenue: 383.29e9, grossProfit: 169.14e9,
		profitMargin: 25.3, operatingMargin: 29.8, roe: 147.5,
		employees: 164000, ceo: "Tim Cook", website: "https://www.apple.com", payMonth: 2,
	},
	"MSFT": {
		description: "Microsoft Corporation develops, licenses, and supports software, services, devices, and solutions worldwide.",
		country: "USA", region: NorthAmerica, sector: "Technology", industry: "Software - Infrastructure",
		marketCap: 3.08e12, pe: 36.8, eps: 11.06, beta: 0.88, yield: 0.73,
		high52: 420.82, low52: 245.61, revenue: 211.92e9, grossProfit: 146.05e9,
		profitMargin: 36.4, operatingMargin: 43.0, roe: 39.3,
		employees: 221000, ceo: "Satya Nadella", website: "https://www.microsoft.com", payMonth: 3,
	},
	"NKE": {
		description: "Nike, Inc. designs, develops, markets, and sells athletic footwear, apparel, equipment, and accessories worldwide.",
		country: "USA", region: NorthAmerica, sector: "Consumer Cyclical", industry: "Footwear & Apparel",
		marketCap: 161.2e9, pe: 28.5, eps: 3.67, beta: 0.96, yield: 1.42,
		high52: 128.68, low52: 88.66, revenue: 51.22e9, grossProfit: 22.85e9,
		profitMargin: 11.2, operatingMargin: 12.4, roe: 41.8,
		employees: 83700, ceo: "John Donahoe", website: "https://www.nike.com", payMonth: 1,
	},
	"GOOGL":   {country: "USA", region: NorthAmerica, sector: "Communication Services", industry: "Internet Content & Information", marketCap: 1.89e12, pe: 26.1, eps: 5.8, beta: 1.05},
	"AMZN":    {country: "USA", region: NorthAmerica, sector: "Consumer Cyclical", industry: "Internet Retail", marketCap: 1.85e12, pe: 61.2, eps: 2.9, beta: 1.16},
	"TSLA":    {country: "USA", region: NorthAmerica, sector: "Consumer Cyclical", industry: "Auto Manufacturers", marketCap: 781.6e9, pe: 57.4, eps: 4.3, beta: 2.31},
	"NVDA":    {country: "USA", region: NorthAmerica, sector: "Technology", industry: "Semiconductors", marketCap: 2.37e12, pe: 79.5, eps: 11.93, beta: 1.68, yield: 0.02, payMonth: 3},
	"META":    {country: "USA", region: NorthAmerica, sector: "Communication Services", industry: "Internet Content & Information", marketCap: 1.23e12, pe: 32.8, eps: 14.87, beta: 1.21, yield: 0.41, payMonth: 3},
	"JPM":     {country: "USA", region: NorthAmerica, sector: "Financial Services", industry: "Banks - Diversified", marketCap: 561.8e9, pe: 11.9, eps: 16.23, beta: 1.1, yield: 2.35, payMonth: 1},
	"PG":      {country: "USA", region: NorthAmerica, sector: "Consumer Defensive", industry: "Household & Personal Products", marketCap: 368.2e9, pe: 26.4, eps: 5.9, beta: 0.42, yield: 2.42, payMonth: 2},
	"VOO":     {country: "USA", region: NorthAmerica, sector: "Diversified", industry: "Large Blend", yield: 1.33, payMonth: 3},
	"QQQ":     {country: "USA", region: NorthAmerica, sector: "Technology", industry: "Large Growth", yield: 0.56, payMonth: 3},
	"GLD":     {region: OtherRegion, sector: "Commodities", industry: "Gold"},
	"BTC-USD": {region: OtherRegion, sector: "Cryptocurrency", marketCap: 1.32e12},
	"ETH-USD": {region: OtherRegion, sector: "Cryptocurrency", marketCap: 459.6e9},
	"ASML":    {country: "Netherlands", region: Europe, sector: "Technology", industry: "Semiconductor Equipment", marketCap: 360.1e9, pe: 45.2, eps: 20.18, beta: 1.12, yield: 0.72, payMonth: 2},
	"TCEHY":   {country: "China", region: AsiaPacific, sector: "Communication Services", industry: "Internet Content & Information", marketCap: 366.4e9, pe: 18.9, eps: 2.04, beta: 0.62, yield: 0.88, payMonth: 3},
	"US10Y":   {country: "USA", region: NorthAmerica, sector: "Government", industry: "Treasury", yield: 4.25, payMonth: 2},
}

// OverviewOf returns the overview of the catalog asset symbol.
func OverviewOf(symbol string) (Overview, error) {
	a, err := Lookup(symbol)
	if err != nil {
		return Overview{}, err
	}
	p := profileOf(a)
	return Overview{
		Symbol:          a.Symbol,
		Name:            a.Name,
		Type:            a.Type,
		Exchange:        a.Exchange,
		Price:           a.Price,
		Description:     p.description,
		Country:         p.country,
		Region:          p.region,
		Sector:          p.sector,
		Industry:        p.industry,
		MarketCap:       p.marketCap,
		PERatio:         p.pe,
		EPS:             p.eps,
		Beta:            p.beta,
		DividendYield:   p.yield,
		High52:          p.high52,
		Low52:           p.low52,
		Revenue:         p.revenue,
		GrossProfit:     p.grossProfit,
		ProfitMargin:    p.profitMargin,
		OperatingMargin: p.operatingMargin,
		ReturnOnEquity:  p.roe,
		Employees:       p.employees,
		CEO:             p.ceo,
		Website:         p.website,
	}, nil
}

// profileOf returns the profile of a, with the region and sector never empty.
func profileOf(a Asset) profile {
	p := profiles[strings.ToUpper(a.Symbol)]
	if p.region == "" {
		p.region = OtherRegion
	}
	if p.sector == "" {
		p.sector = "Other"
	}
	return p
}

// Fact is a formatted figure of an overview.
type Fact struct {
	Name, Value string
}

// Facts returns the known figures of o formatted for display, amounts in
// currencyCode. Market cap, revenue and gross profit are abbreviated.
func (o Overview) Facts(currencyCode string) []Fact {
	var facts []Fact
	add := func(name string, ok bool, value func() string) {
		if ok {
			facts = append(facts, Fact{name, value()})
		}
	}
	amount := func(v float64) func() string { return func() string { return FormatCurrency(v, currencyCode) } }
	number := func(v float64) func() string { return func() string { return decimalString(v, 2) } }

	add("Price", o.Price != 0, amount(o.Price))
	add("Market cap", o.MarketCap != 0, amount(o.MarketCap))
	add("P/E ratio", o.PERatio != 0, number(o.PERatio))
	add("EPS", o.EPS != 0, amount(o.EPS))
	add("Beta", o.Beta != 0, number(o.Beta))
	add("Dividend yield", o.DividendYield != 0, o.DividendYield.String)
	add("52 week high", o.High52 != 0, amount(o.High52))
	add("52 week low", o.Low52 != 0, amount(o.Low52))
	add("Revenue", o.Revenue != 0, amount(o.Revenue))
	add("Gross profit", o.GrossProfit != 0, amount(o.GrossProfit))
	add("Profit margin", o.ProfitMargin != 0, o.ProfitMargin.String)
	add("Operating margin", o.OperatingMargin != 0, o.OperatingMargin.String)
	add("Return on equity", o.ReturnOnEquity != 0, o.ReturnOnEquity.String)
	add("Employees", o.Employees != 0, func() string { return group(decimalString(float64(o.Employees), 0), currency(currencyCode)) })
	add("CEO", o.CEO != "", func() string { return o.CEO })
	add("Website", o.Website != "", func() string { return o.Website })
	return facts
}
