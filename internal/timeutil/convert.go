// Package timeutil converts between the call API's UTC timestamps and the
// fixed display time zone used throughout the report.
package timeutil

import (
	"fmt"
	"time"
)

// Unknown is the sentinel carried for absent timestamps. It survives the
// display conversion unchanged and sorts after every real ISO-8601 value.
const Unknown = "Unknown"

const (
	// utcLayout also accepts fractional seconds; time.Parse consumes a
	// fractional part after the seconds field even when the layout has none.
	utcLayout = "2006-01-02T15:04:05Z"

	// DisplayLayout is the wall-clock layout of converted timestamps.
	DisplayLayout = "2006-01-02 15:04:05"

	clockLayout      = "03:04:05 PM"
	clockShortLayout = "03:04 PM"
)

// The display zone is a fixed UTC-5 offset, deliberately not DST-aware.
var displayZone = time.FixedZone("UTC-5", -5*60*60)

// ParseError reports a timestamp that matches neither accepted format.
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse timestamp %q: %v", e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ToDisplay converts a UTC timestamp to the display zone, formatted as
// DisplayLayout. Empty or Unknown input passes through as Unknown.
func ToDisplay(utc string) (string, error) {
	if utc == "" || utc == Unknown {
		return Unknown, nil
	}
	t, err := time.Parse(utcLayout, utc)
	if err != nil {
		return "", &ParseError{Value: utc, Err: err}
	}
	return t.In(displayZone).Format(DisplayLayout), nil
}

// ParseDisplay parses a DisplayLayout string back into a wall-clock time.
func ParseDisplay(s string) (time.Time, error) {
	t, err := time.Parse(DisplayLayout, s)
	if err != nil {
		return time.Time{}, &ParseError{Value: s, Err: err}
	}
	return t, nil
}

// Clock12 reformats a DisplayLayout string as a 12-hour clock time.
func Clock12(s string) (string, error) {
	t, err := ParseDisplay(s)
	if err != nil {
		return "", err
	}
	return t.Format(clockLayout), nil
}

// ParseClock12 parses a 12-hour clock string, with or without seconds, as a
// pure time of day.
func ParseClock12(s string) (time.Time, error) {
	t, err := time.Parse(clockLayout, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse(clockShortLayout, s)
	if err != nil {
		return time.Time{}, &ParseError{Value: s, Err: err}
	}
	return t, nil
}

// ClockRange renders an idle gap as "hh:mm AM - hh:mm PM".
func ClockRange(from, to time.Time) string {
	return from.Format(clockShortLayout) + " - " + to.Format(clockShortLayout)
}
