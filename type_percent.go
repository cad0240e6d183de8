package dashboard

import "fmt"

// Pct is a percentage, 5 meaning 5%.
type Pct float64

func (p Pct) Equal(q Pct) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Pct) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

func (p Pct) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" || res == "-0.00%" {
		return "-"
	}
	return res
}
