package dateutil

import (
	"fmt"
	"time"
)

// DateLayout is the display layout for projection dates
const DateLayout = "2006-01-02"

// DayToDate returns the calendar date of simulated day n counted from start
func DayToDate(start time.Time, day int) time.Time {
	return start.AddDate(0, 0, day)
}

// DayLabel labels simulated day n. Without a start date the label is the day
// number itself.
func DayLabel(start time.Time, day int) string {
	if start.IsZero() {
		return fmt.Sprintf("Day %d", day)
	}
	return DayToDate(start, day).Format(DateLayout)
}

// YearsToDays converts a horizon in years to simulated days
func YearsToDays(years, daysPerYear int) int {
	return years * daysPerYear
}

// DaysToYears converts simulated days to fractional years
func DaysToYears(days, daysPerYear int) float64 {
	if daysPerYear <= 0 {
		return 0
	}
	return float64(days) / float64(daysPerYear)
}

// BeginningOfYear returns the first day of the year for a given date
func BeginningOfYear(date time.Time) time.Time {
	return time.Date(date.Year(), 1, 1, 0, 0, 0, 0, date.Location())
}
