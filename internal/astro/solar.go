package astro

import (
	"math"
	"time"
)

// Kind classifies a day at a location by its sunrise/sunset status.
type Kind string

const (
	KindNormal     Kind = "normal"
	KindPolarDay   Kind = "polar_day"   // sun never sets
	KindPolarNight Kind = "polar_night" // sun never rises
)

// Solar altitude thresholds in degrees, negative below the horizon.
const (
	altSunrise      = 0.0
	altCivil        = -6.0
	altNautical     = -12.0
	altAstronomical = -18.0
)

const (
	j2000        = 2451545.0
	unixEpochJD  = 2440587.5
	obliquity    = 23.4397 // mean obliquity of the ecliptic, degrees
	secondsOfDay = 86400
)

// DaylightTimes is the set of daylight events for one location and calendar
// date, in UTC, rounded to whole seconds. An event pair is nil when the sun
// never crosses its altitude threshold that day; each threshold nulls
// independently (civil twilight can exist while astronomical does not).
// Transit is well-defined on every day and is always set.
type DaylightTimes struct {
	Date string `json:"date"`
	Kind Kind   `json:"kind"`

	AstronomicalTwilightBegin *time.Time `json:"astronomical_twilight_begin"`
	NauticalTwilightBegin     *time.Time `json:"nautical_twilight_begin"`
	CivilTwilightBegin        *time.Time `json:"civil_twilight_begin"`
	Sunrise                   *time.Time `json:"sunrise"`
	Transit                   time.Time  `json:"transit"`
	Sunset                    *time.Time `json:"sunset"`
	CivilTwilightEnd          *time.Time `json:"civil_twilight_end"`
	NauticalTwilightEnd       *time.Time `json:"nautical_twilight_end"`
	AstronomicalTwilightEnd   *time.Time `json:"astronomical_twilight_end"`

	DayLengthSeconds int64 `json:"day_length_seconds"`
}

// crossing reports whether the sun crosses a given altitude threshold during
// a day, or stays on one side of it.
type crossing int

const (
	crosses crossing = iota
	alwaysAbove
	alwaysBelow
)

// Compute returns the daylight event set for the given point and date using
// the standard solar-position method: Julian day count since J2000, solar
// mean anomaly, equation of center, ecliptic longitude, declination, and the
// cosine hour-angle formula per altitude threshold. Pure and deterministic.
func Compute(p Point, d Date) DaylightTimes {
	// Mean solar noon cycle at the observer's meridian.
	n := float64(julianDayNumber(d)) - j2000 + 0.0008 - p.Longitude/360

	// Solar mean anomaly and equation of center, degrees.
	m := normDeg(357.5291 + 0.98560028*n)
	c := 1.9148*sinDeg(m) + 0.0200*sinDeg(2*m) + 0.0003*sinDeg(3*m)

	// Ecliptic longitude and declination.
	lambda := normDeg(m + c + 180 + 102.9372)
	sinDec := sinDeg(lambda) * sinDeg(obliquity)
	cosDec := math.Cos(math.Asin(sinDec))

	// Solar transit; the sine terms fold in the equation of time.
	transit := j2000 + n + 0.0053*sinDeg(m) - 0.0069*sinDeg(2*lambda)

	out := DaylightTimes{
		Date:    d.String(),
		Transit: julianToTime(transit),
	}

	out.Sunrise, out.Sunset, out.Kind, out.DayLengthSeconds =
		sunEvents(p.Latitude, sinDec, cosDec, transit)
	out.CivilTwilightBegin, out.CivilTwilightEnd =
		eventPair(p.Latitude, sinDec, cosDec, transit, altCivil)
	out.NauticalTwilightBegin, out.NauticalTwilightEnd =
		eventPair(p.Latitude, sinDec, cosDec, transit, altNautical)
	out.AstronomicalTwilightBegin, out.AstronomicalTwilightEnd =
		eventPair(p.Latitude, sinDec, cosDec, transit, altAstronomical)

	return out
}

// sunEvents resolves the 0-degree threshold, which also determines Kind and
// day length: a full day for polar day, zero for polar night.
func sunEvents(lat, sinDec, cosDec, transit float64) (rise, set *time.Time, kind Kind, lengthSec int64) {
	h, state := hourAngle(lat, sinDec, cosDec, altSunrise)
	switch state {
	case alwaysAbove:
		return nil, nil, KindPolarDay, secondsOfDay
	case alwaysBelow:
		return nil, nil, KindPolarNight, 0
	}
	r := julianToTime(transit - h/360)
	s := julianToTime(transit + h/360)
	return &r, &s, KindNormal, int64(s.Sub(r) / time.Second)
}

// eventPair returns the rise-side and set-side crossing times for one
// twilight threshold, or nils when the sun stays on one side of it all day.
func eventPair(lat, sinDec, cosDec, transit, altDeg float64) (begin, end *time.Time) {
	h, state := hourAngle(lat, sinDec, cosDec, altDeg)
	if state != crosses {
		return nil, nil
	}
	b := julianToTime(transit - h/360)
	e := julianToTime(transit + h/360)
	return &b, &e
}

// hourAngle solves cos(H) = (sin(alt) - sin(lat)sin(dec)) / (cos(lat)cos(dec))
// and returns H in degrees. An argument below -1 means the sun never descends
// to the threshold (always above); above +1 means it never climbs to it.
func hourAngle(lat, sinDec, cosDec, altDeg float64) (float64, crossing) {
	cosH := (sinDeg(altDeg) - sinDeg(lat)*sinDec) / (cosDeg(lat) * cosDec)
	switch {
	case cosH < -1:
		return 0, alwaysAbove
	case cosH > 1:
		return 0, alwaysBelow
	}
	return math.Acos(cosH) * 180 / math.Pi, crosses
}

// julianDayNumber converts a proleptic Gregorian date to the (noon-based)
// Julian day number.
func julianDayNumber(d Date) int64 {
	a := int64(14-int(d.Month)) / 12
	y := int64(d.Year) + 4800 - a
	m := int64(d.Month) + 12*a - 3
	return int64(d.Day) + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

// julianToTime converts a fractional Julian date to UTC, rounded to the
// nearest whole second.
func julianToTime(jd float64) time.Time {
	sec := math.Round((jd - unixEpochJD) * secondsOfDay)
	return time.Unix(int64(sec), 0).UTC()
}

func sinDeg(deg float64) float64 { return math.Sin(deg * math.Pi / 180) }

func cosDeg(deg float64) float64 { return math.Cos(deg * math.Pi / 180) }

func normDeg(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}
