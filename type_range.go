package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/etnz/dashboard/date"
)

// RangeID identifies a chart display window.
type RangeID int

const (
	Day RangeID = iota
	Week
	Month
	Quarter
	YearToDate
	Year
	FiveYear
)

// Ranges returns all the supported range identifiers, shortest first.
func Ranges() []RangeID {
	return []RangeID{Day, Week, Month, Quarter, YearToDate, Year, FiveYear}
}

// String returns the short code of the range, as displayed on the range selector.
func (id RangeID) String() string {
	switch id {
	case Day:
		return "1D"
	case Week:
		return "1W"
	case Month:
		return "1M"
	case Quarter:
		return "3M"
	case YearToDate:
		return "YTD"
	case Year:
		return "1Y"
	case FiveYear:
		return "5Y"
	default:
		return fmt.Sprintf("RangeID(%d)", int(id))
	}
}

// ParseRange parses a range code such as "1W", "week", "YTD" or "max".
// Unknown codes are an error, there is no default range.
func ParseRange(s string) (RangeID, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "1D", "DAY", "DAILY":
		return Day, nil
	case "1W", "WEEK", "WEEKLY":
		return Week, nil
	case "1M", "MONTH", "MONTHLY":
		return Month, nil
	case "3M", "QUARTER", "QUARTERLY":
		return Quarter, nil
	case "YTD", "YEAR_TO_DATE":
		return YearToDate, nil
	case "1Y", "YEAR", "YEARLY":
		return Year, nil
	case "5Y", "FIVE_YEAR", "MAX", "ALL":
		return FiveYear, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedRange, s)
	}
}

func (id RangeID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *RangeID) UnmarshalText(b []byte) error {
	r, err := ParseRange(string(b))
	if err != nil {
		return err
	}
	*id = r
	return nil
}

// LabelFormat is the semantic of the labels of a range.
type LabelFormat int

const (
	TimeOfDay   LabelFormat = iota // "09:30", 5 minutes apart
	Weekday                        // "Mon" .. "Fri"
	DayOrdinal                     // "Day 1" ..
	WeekOrdinal                    // "Week 1" ..
	MonthName                      // "Jan" ..
	MonthYear                      // "Jan 2024"
	CalendarYear                   // "2024"
)

func (f LabelFormat) String() string {
	switch f {
	case TimeOfDay:
		return "time"
	case Weekday:
		return "weekday"
	case DayOrdinal:
		return "day"
	case WeekOrdinal:
		return "week"
	case MonthName:
		return "month"
	case MonthYear:
		return "month-year"
	case CalendarYear:
		return "year"
	default:
		return "unknown"
	}
}

func (f LabelFormat) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// RangeSpec describes how a range is charted.
//
// PointCount is the number of labels, and of values, of a synthetic chart.
// DataPoints is the number of bars requested from a live provider for the
// same range: intraday bars, trading days or weeks. The two differ for the
// longer ranges where the display buckets are coarser than the data.
type RangeSpec struct {
	ID                 RangeID     `json:"range"`
	PointCount         int         `json:"pointCount"`
	DataPoints         int         `json:"dataPoints"`
	Format             LabelFormat `json:"labelFormat"`
	Volatility         float64     `json:"volatility"`
	BaselineVolatility float64     `json:"baselineVolatility"`
}

// Profile is the range table of a chart call site.
type Profile int

const (
	// Market is used by the single-security market-detail chart.
	Market Profile = iota
	// Performance is used by the portfolio performance chart, with its index overlay.
	Performance
)

func (p Profile) String() string {
	switch p {
	case Market:
		return "market"
	case Performance:
		return "performance"
	default:
		return "unknown"
	}
}

// Resolve returns the RangeSpec of the market profile for a fixed-size range.
func Resolve(id RangeID) (RangeSpec, error) { return Market.Resolve(id) }

// ResolveAt returns the RangeSpec of the market profile as of a given day.
func ResolveAt(id RangeID, asOf date.Date) (RangeSpec, error) { return Market.ResolveAt(id, asOf) }

// Resolve returns the RangeSpec for id.
//
// YearToDate is rejected because its size depends on the current day, use
// ResolveAt instead.
func (p Profile) Resolve(id RangeID) (RangeSpec, error) {
	if id == YearToDate {
		return RangeSpec{}, fmt.Errorf("%w: %s depends on an as-of date", ErrUnsupportedRange, id)
	}
	return p.resolve(id, date.Date{})
}

// ResolveAt returns the RangeSpec for id, YearToDate being sized from asOf.
func (p Profile) ResolveAt(id RangeID, asOf date.Date) (RangeSpec, error) {
	return p.resolve(id, asOf)
}

func (p Profile) resolve(id RangeID, asOf date.Date) (RangeSpec, error) {
	var s RangeSpec
	switch p {
	case Market:
		s = marketSpec(id)
	case Performance:
		s = performanceSpec(id)
	default:
		return RangeSpec{}, fmt.Errorf("unknown chart profile %d", int(p))
	}
	if s.PointCount == 0 {
		return RangeSpec{}, fmt.Errorf("%w: %s", ErrUnsupportedRange, id)
	}
	if id == YearToDate {
		s.PointCount = int(asOf.Month())
		s.DataPoints = max(date.Weekdays(asOf.StartOf(date.Yearly), asOf), 1)
	}
	return s, nil
}

// marketSpec is the single-security table. A zero PointCount means unsupported.
func marketSpec(id RangeID) RangeSpec {
	switch id {
	case Day:
		return RangeSpec{ID: Day, PointCount: 78, DataPoints: 78, Format: TimeOfDay, Volatility: 0.01, BaselineVolatility: 0.01}
	case Week:
		return RangeSpec{ID: Week, PointCount: 5, DataPoints: 5, Format: Weekday, Volatility: 0.02, BaselineVolatility: 0.02}
	case Month:
		return RangeSpec{ID: Month, PointCount: 30, DataPoints: 30, Format: DayOrdinal, Volatility: 0.05, BaselineVolatility: 0.05}
	case Quarter:
		return RangeSpec{ID: Quarter, PointCount: 13, DataPoints: 63, Format: WeekOrdinal, Volatility: 0.05, BaselineVolatility: 0.05}
	case YearToDate:
		// sized by resolve
		return RangeSpec{ID: YearToDate, PointCount: 1, DataPoints: 1, Format: MonthName, Volatility: 0.15, BaselineVolatility: 0.15}
	case Year:
		return RangeSpec{ID: Year, PointCount: 12, DataPoints: 252, Format: MonthName, Volatility: 0.15, BaselineVolatility: 0.15}
	case FiveYear:
		return RangeSpec{ID: FiveYear, PointCount: 6, DataPoints: 260, Format: CalendarYear, Volatility: 0.25, BaselineVolatility: 0.25}
	}
	return RangeSpec{}
}

// performanceSpec is the portfolio-vs-index table.
func performanceSpec(id RangeID) RangeSpec {
	switch id {
	case Day:
		return RangeSpec{ID: Day, PointCount: 78, DataPoints: 78, Format: TimeOfDay, Volatility: 0.008, BaselineVolatility: 0.007}
	case Week:
		return RangeSpec{ID: Week, PointCount: 5, DataPoints: 5, Format: Weekday, Volatility: 0.02, BaselineVolatility: 0.018}
	case Month:
		return RangeSpec{ID: Month, PointCount: 4, DataPoints: 21, Format: WeekOrdinal, Volatility: 0.04, BaselineVolatility: 0.035}
	case Quarter:
		return RangeSpec{ID: Quarter, PointCount: 13, DataPoints: 63, Format: WeekOrdinal, Volatility: 0.06, BaselineVolatility: 0.05}
	case YearToDate:
		return RangeSpec{ID: YearToDate, PointCount: 1, DataPoints: 1, Format: MonthName, Volatility: 0.12, BaselineVolatility: 0.10}
	case Year:
		return RangeSpec{ID: Year, PointCount: 12, DataPoints: 252, Format: MonthName, Volatility: 0.15, BaselineVolatility: 0.12}
	case FiveYear:
		return RangeSpec{ID: FiveYear, PointCount: 6, DataPoints: 260, Format: CalendarYear, Volatility: 0.25, BaselineVolatility: 0.22}
	}
	return RangeSpec{}
}

// Bar returns the granularity of the live bars for this range.
func (s RangeSpec) Bar() time.Duration {
	switch s.ID {
	case Day:
		return 5 * time.Minute
	case FiveYear:
		return 7 * date.Day
	default:
		return date.Day
	}
}
