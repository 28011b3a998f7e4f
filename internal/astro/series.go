package astro

import "time"

// Generate computes the daylight event set for every day of the given
// calendar year at p, January 1 through December 31 ascending, one entry per
// day (365, or 366 in leap years). The year is an explicit input; this
// package never consults the wall clock.
func Generate(p Point, year int) []DaylightTimes {
	days := 365
	if isLeapYear(year) {
		days = 366
	}

	series := make([]DaylightTimes, 0, days)
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	for t := start; t.Year() == year; t = t.AddDate(0, 0, 1) {
		series = append(series, Compute(p, Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}))
	}
	return series
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
