// Package date represents treatment and invoice dates the way the practice
// writes them: day granularity, German short form "dd.mm.yy".
package date

import (
	"errors"
	"fmt"
	"time"
)

// Format is the on-disk and on-screen form of a date.
const Format = "02.01.06"

// ErrInvalid reports a date that does not match the strict "dd.mm.yy"
// form. It is a soft error: callers report it and let the user retype.
var ErrInvalid = errors.New("invalid date")

// Date represents a date with no lower than day granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Today returns the current date.
func Today() Date { return New(time.Now().Date()) }

// Year returns the full (four digit) year.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool { return d == Date{} }

// String formats the date in its standard "dd.mm.yy" form.
func (d Date) String() string { return d.time().Format(Format) }

// Digits returns the date as its six digit "ddmmyy" form, the one used
// inside invoice numbers.
func (d Date) Digits() string { return d.time().Format("020106") }

// Parse parses a Date from its "dd.mm.yy" form. It is strict: both day and
// month must have two digits, and the parsed value must round-trip (so
// "31.02.24" is rejected, not normalized).
func Parse(str string) (Date, error) {
	on, err := time.Parse(Format, str)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q want format %q", ErrInvalid, str, "dd.mm.yy")
	}
	d := New(on.Date())
	if d.String() != str {
		return Date{}, fmt.Errorf("%w: %q want format %q", ErrInvalid, str, "dd.mm.yy")
	}
	return d, nil
}

// FromDigits parses a Date from its six digit "ddmmyy" form, as found in
// invoice numbers.
func FromDigits(str string) (Date, error) {
	if len(str) != 6 {
		return Date{}, fmt.Errorf("%w: digits %q want 6 digits", ErrInvalid, str)
	}
	return Parse(str[0:2] + "." + str[2:4] + "." + str[4:6])
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}
