package dashboard

import (
	"fmt"
	"strconv"
	"time"

	"github.com/etnz/dashboard/date"
)

// market session opening, intraday labels start there.
const (
	openHour   = 9
	openMinute = 30
	tick       = 5 * time.Minute
)

var weekdays = [...]string{"Mon", "Tue", "Wed", "Thu", "Fri"}

// Labels returns the PointCount display labels of the range.
//
// asOf anchors the calendar based formats: the last month of YearToDate and
// the last year of FiveYear.
func (s RangeSpec) Labels(asOf date.Date) []string {
	labels := make([]string, s.PointCount)
	for i := range labels {
		labels[i] = s.label(i, asOf)
	}
	return labels
}

func (s RangeSpec) label(i int, asOf date.Date) string {
	switch s.Format {
	case TimeOfDay:
		open := time.Date(0, 1, 1, openHour, openMinute, 0, 0, time.UTC)
		return open.Add(time.Duration(i) * tick).Format("15:04")
	case Weekday:
		return weekdays[i%len(weekdays)]
	case DayOrdinal:
		return fmt.Sprintf("Day %d", i+1)
	case WeekOrdinal:
		return fmt.Sprintf("Week %d", i+1)
	case MonthName:
		return time.Month(i%12 + 1).String()[:3]
	case MonthYear:
		// trailing months, the last one being asOf's
		return asOf.StartOf(date.Monthly).AddMonth(i - s.PointCount + 1).Format("Jan 2006")
	case CalendarYear:
		return strconv.Itoa(asOf.Year() - s.PointCount + 1 + i)
	default:
		return strconv.Itoa(i + 1)
	}
}

// DateLabel returns the label of a live bar at t.
func (s RangeSpec) DateLabel(t time.Time) string {
	switch s.ID {
	case Day:
		return t.Format("15:04")
	case Week, Month, Quarter:
		return t.Format("Jan 2")
	default:
		return t.Format("Jan 2006")
	}
}
