package dashboard

import (
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// magnitudes used to abbreviate large amounts, smallest first.
var magnitudes = []struct {
	unit   decimal.Decimal
	suffix string
}{
	{decimal.New(1, 6), "M"},
	{decimal.New(1, 9), "B"},
	{decimal.New(1, 12), "T"},
}

var thousand = decimal.New(1, 3)

// currency returns the never nil go-money currency for code, USD when empty.
func currency(code string) money.Currency {
	if code == "" {
		code = money.USD
	}
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, code).Currency()
}

// FormatCurrency formats an amount the way charts and market caps display it.
//
// Amounts of at least a million are abbreviated with M, B or T and two
// decimals ("$4.50B"). Smaller amounts are grouped by thousands and keep up
// to three decimals ("$1,234.5", "$999").
func FormatCurrency(amount float64, code string) string {
	cur := currency(code)
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "-"
	}
	d := decimal.NewFromFloat(amount)
	abs := d.Abs()

	// values are rounded before the magnitude is picked: 999999.9996 is $1.00M
	var sa string
	if rounded := abs.Round(3); rounded.LessThan(magnitudes[0].unit) {
		sa = group(rounded.String(), cur)
	} else {
		for i, m := range magnitudes {
			scaled := abs.Div(m.unit).Round(2)
			if scaled.LessThan(thousand) || i == len(magnitudes)-1 {
				sa = strings.Replace(scaled.StringFixed(2), ".", cur.Decimal, 1) + m.suffix
				break
			}
		}
	}

	// same layout as go-money's formatter
	sa = strings.Replace(cur.Template, "1", sa, 1)
	sa = strings.Replace(sa, "$", cur.Grapheme, 1)
	if d.IsNegative() && !abs.Round(3).IsZero() {
		sa = "-" + sa
	}
	return sa
}

// group inserts the currency thousand separators in a plain decimal string.
func group(s string, cur money.Currency) string {
	integer, fraction, hasFraction := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range integer {
		if i > 0 && (len(integer)-i)%3 == 0 {
			b.WriteString(cur.Thousand)
		}
		b.WriteRune(r)
	}
	if hasFraction {
		b.WriteString(cur.Decimal)
		b.WriteString(fraction)
	}
	return b.String()
}

// Format formats v according to its kind.
func (k ValueKind) Format(v float64, currencyCode string) string {
	if k == Percent {
		return Pct(v).String()
	}
	return FormatCurrency(v, currencyCode)
}

// decimalString formats v with exactly places decimals.
func decimalString(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}
