package xlview

import (
	"fmt"
	"math"
)

// Serial date conversion for both Excel epoch systems.
//
// 1900 system: serial 1 = 1900-01-01 (JDN 2415021). Excel treats 1900 as a
// leap year, so serial 60 is the non-existent 1900-02-29; serials above 60
// shift down one day to compensate. The bug is preserved for compatibility.
// 1904 system: serial 0 = 1904-01-01 (JDN 2416481), no leap bug.

const (
	jdn1900Epoch   = 2415020 // 1899-12-31
	jdn1900Shifted = 2415019 // after the phantom leap day
	jdn1904Epoch   = 2416481 // 1904-01-01
)

// XLDateError is the base type for serial date conversion errors.
type XLDateError struct {
	Message string
}

func (e *XLDateError) Error() string {
	return e.Message
}

// XLDateNegative indicates a serial below zero.
type XLDateNegative struct {
	XLDateError
}

// NewXLDateNegative creates a new XLDateNegative error.
func NewXLDateNegative(serial float64) *XLDateNegative {
	return &XLDateNegative{XLDateError{Message: fmt.Sprintf("serial date < 0: %f", serial)}}
}

// DateComponents is a broken-down calendar timestamp.
type DateComponents struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

// SerialToDate converts an Excel serial number to calendar components under
// the given epoch system. Serials in [0, 1) are pure times and yield zero
// Y/M/D. Negative serials are an error; callers fall back to numeric
// formatting.
func SerialToDate(serial float64, date1904 bool) (DateComponents, error) {
	if serial < 0 {
		return DateComponents{}, NewXLDateNegative(serial)
	}

	days := int(math.Floor(serial))
	frac := serial - math.Floor(serial)

	totalSeconds := int(math.Round(frac * 86400.0))
	if totalSeconds >= 86400 {
		days++
		totalSeconds = 0
	}
	hour := totalSeconds / 3600
	minute := (totalSeconds % 3600) / 60
	second := totalSeconds % 60

	if days == 0 && !date1904 {
		return DateComponents{Hour: hour, Minute: minute, Second: second}, nil
	}

	if !date1904 && days == 60 {
		// The phantom leap day itself.
		return DateComponents{Year: 1900, Month: 2, Day: 29, Hour: hour, Minute: minute, Second: second}, nil
	}

	var jdn int
	switch {
	case date1904:
		jdn = days + jdn1904Epoch
	case days <= 60:
		jdn = days + jdn1900Epoch
	default:
		jdn = days + jdn1900Shifted
	}

	year, month, day := jdnToYMD(jdn)
	return DateComponents{Year: year, Month: month, Day: day, Hour: hour, Minute: minute, Second: second}, nil
}

// jdnToYMD converts a Julian Day Number to a proleptic Gregorian date.
func jdnToYMD(jdn int) (int, int, int) {
	const (
		y = 4716
		j = 1401
		m = 2
		n = 12
		r = 4
		p = 1461
		v = 3
		u = 5
		s = 153
		w = 2
		b = 274277
		c = -38
	)

	f := int64(jdn) + j + ((4*int64(jdn)+b)/146097)*3/4 + c
	e := r*f + v
	g := (e % p) / r
	h := u*g + w

	day := int((h%s)/u + 1)
	month := int((h/s+m)%n + 1)
	year := int(e/p - y + (int64(n)+int64(m)-int64(month))/n)
	return year, month, day
}

// ElapsedHours returns the whole elapsed hours a serial represents, for the
// [h] duration token.
func ElapsedHours(serial float64) int {
	return int(serial * 24)
}

// ElapsedMinutes returns the whole elapsed minutes for the [m] token.
func ElapsedMinutes(serial float64) int {
	return int(serial * 24 * 60)
}

// ElapsedSeconds returns the whole elapsed seconds for the [s] token.
func ElapsedSeconds(serial float64) int {
	return int(math.Round(serial * 86400))
}
