package date

import (
	"fmt"
	"time"
)

// Period is a calendar period: a day, a week, a month, a quarter or a year.
type Period int

func (p Period) String() string {
	switch p {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Yearly:
		return "yearly"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

// StartOf returns the first day of the period containing d.
// Weeks start on Monday.
func (d Date) StartOf(p Period) Date {
	switch p {
	case Weekly:
		offset := (int(d.Weekday()) + 6) % 7
		return d.Add(-offset)
	case Monthly:
		return New(d.y, d.m, 1)
	case Quarterly:
		return New(d.y, d.m-(d.m-1)%3, 1)
	case Yearly:
		return New(d.y, time.January, 1)
	default:
		return d
	}
}

// Identifier returns a short unique name for the period containing d,
// e.g. "2025-09-08", "2025-W37", "2025-09", "2025-Q3" or "2025".
func (p Period) Identifier(d Date) string {
	switch p {
	case Weekly:
		year, week := d.StartOf(Weekly).time().ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case Monthly:
		return d.Format("2006-01")
	case Quarterly:
		return fmt.Sprintf("%d-Q%d", d.Year(), (d.Month()-1)/3+1)
	case Yearly:
		return d.Format("2006")
	default:
		return d.String()
	}
}
