// Package timeutil parses and formats the timestamps exchanged with Cloud
// Foundry tooling: Unix millisecond values and ISO-8601 date-times that
// carry an explicit UTC offset.
package timeutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ISOUTCLayout formats a UTC time with millisecond precision, for example
// 2016-09-02T09:15:00.000Z.
const ISOUTCLayout = "2006-01-02T15:04:05.000Z07:00"

var (
	// ErrInvalidUnixTime means a value has no leading integer.
	ErrInvalidUnixTime = errors.New("invalid unix time")
	// ErrInvalidISO means a value is not an ISO-8601 date-time with a UTC
	// offset.
	ErrInvalidISO = errors.New("invalid ISO-8601 date-time")
)

// FromUnixMillis returns the UTC time ms milliseconds after the Unix epoch.
func FromUnixMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// ParseUnixTime reads Unix milliseconds from the leading integer of s.
// Leading whitespace and a sign are accepted and anything after the digits
// is ignored, so "1318781876406.62 milliseconds" parses as 1318781876406.
func ParseUnixTime(s string) (time.Time, error) {
	rest := strings.TrimLeft(s, " \t\n\r\v\f")
	end := 0
	if end < len(rest) && (rest[end] == '-' || rest[end] == '+') {
		end++
	}
	digits := end
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	if end == digits {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidUnixTime, s)
	}

	ms, err := strconv.ParseInt(rest[:end], 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidUnixTime, s, err)
	}
	return FromUnixMillis(ms), nil
}

// isoPattern matches the extended calendar form. The time may stop after
// the hour or minute, fractions go up to nanoseconds, and the offset is
// required.
var isoPattern = regexp.MustCompile(
	`^(\d{4})-(\d{2})-(\d{2})T(\d{2})(?::(\d{2})(?::(\d{2})(?:[.,](\d{1,9}))?)?)?(Z|[+-]\d{2}(?::?\d{2})?)$`)

// ParseISO parses an ISO-8601 date-time that names its UTC offset, such as
// "1996-07-14T00Z" or "2008-01-14T13:21:13.451+06:00". The result keeps the
// parsed offset. Out of range fields are rejected rather than normalized.
func ParseISO(s string) (time.Time, error) {
	m := isoPattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidISO, s)
	}

	year, month, day := atoi(m[1]), atoi(m[2]), atoi(m[3])
	hour, minute, sec := atoi(m[4]), atoi(m[5]), atoi(m[6])
	nsec := 0
	if frac := m[7]; frac != "" {
		nsec = atoi(frac + strings.Repeat("0", 9-len(frac)))
	}

	loc, err := zone(m[8])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidISO, s, err)
	}

	t := time.Date(year, time.Month(month), day, hour, minute, sec, nsec, loc)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute || t.Second() != sec {
		return time.Time{}, fmt.Errorf("%w: %q: field out of range", ErrInvalidISO, s)
	}
	return t, nil
}

// IsISOUTC reports whether s is a valid ISO-8601 date-time with a zero UTC
// offset.
func IsISOUTC(s string) bool {
	t, err := ParseISO(s)
	if err != nil {
		return false
	}
	_, offset := t.Zone()
	return offset == 0
}

// FormatISOUTC formats t in UTC using ISOUTCLayout. The zero time formats
// as the empty string.
func FormatISOUTC(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(ISOUTCLayout)
}

// NowISOUTC returns the current time formatted by FormatISOUTC.
func NowISOUTC() string {
	return FormatISOUTC(time.Now())
}

func zone(offset string) (*time.Location, error) {
	if offset == "Z" {
		return time.UTC, nil
	}

	sign := 1
	if offset[0] == '-' {
		sign = -1
	}
	digits := strings.ReplaceAll(offset[1:], ":", "")
	hours := atoi(digits[:2])
	minutes := 0
	if len(digits) == 4 {
		minutes = atoi(digits[2:])
	}
	if hours > 23 || minutes > 59 {
		return nil, fmt.Errorf("offset %s out of range", offset)
	}
	return time.FixedZone("", sign*(hours*3600+minutes*60)), nil
}

// atoi converts a string the pattern already restricted to digits.
func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}
