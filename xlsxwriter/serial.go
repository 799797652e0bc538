package xlsxwriter

import "time"

// The 1900 date system epoch. Serial 1 is 1900-01-01, but the format
// inherits the Lotus 1-2-3 artifact of treating 1900 as a leap year, so
// dates from 1900-03-01 onward are counted from the phantom 1899-12-30.
var serialEpoch1900 = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// serialLeapCutover is the day count of 1900-03-01 from the epoch, the
// first date unaffected by the phantom leap day.
const serialLeapCutover = 61

// DatetimeToSerial converts a point in time to a 1900-system serial number:
// whole days in the integer part, the time of day in the fraction. The
// location of t is ignored; the wall-clock fields are taken as given.
func DatetimeToSerial(t time.Time) float64 {
	u := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	serial := float64(u.Sub(serialEpoch1900)) / float64(24*time.Hour)
	if serial < serialLeapCutover {
		serial -= 1
	}
	return serial
}

// TimeToSerial converts a time of day to the fractional part of a serial
// number.
func TimeToSerial(hour, minute, second int) float64 {
	return (float64(hour)*3600 + float64(minute)*60 + float64(second)) / 86400
}

// DurationToSerial converts a duration to a serial day count.
func DurationToSerial(d time.Duration) float64 {
	return d.Seconds() / 86400
}
