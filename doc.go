// Package dashboard produces the chart data of a portfolio dashboard.
//
// A chart is built in three steps:
//   - Range resolution: a RangeID ("1D", "1W", ... "5Y") resolves to a
//     RangeSpec telling how many points to draw, how to label them and how
//     volatile a simulated path over that window is.
//   - Path production: a Source returns the absolute values of the subject
//     (a portfolio or a security) and of its baseline index. Synthetic
//     simulates them with a multiplicative random walk, the eodhd package
//     fetches them from a market data provider.
//   - Display transform: the absolute paths are displayed as values, as a
//     return since the first point, or as growth compared to the baseline,
//     and assembled into a renderer-agnostic ChartPayload.
//
// Values are formatted for display with FormatCurrency and Pct.
//
// This package has no mutable global state: every call gets its own inputs
// and returns a fresh result.
package dashboard
