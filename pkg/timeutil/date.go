package timeutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// LayoutDate is the ISO calendar date used for scheduled dates and
	// habit completion keys.
	LayoutDate = "2006-01-02"
	// LayoutClock is the 24-hour wall clock used for scheduled times.
	LayoutClock = "15:04"
	// LayoutMonth is the month key that scopes habits.
	LayoutMonth = "2006-01"

	layoutDisplayDate = "Jan 2, 2006"
)

var errBadClock = errors.New("timeutil: invalid clock")

// Midnight truncates t to the start of its day in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Today is Midnight(now); kept separate so call sites read naturally.
func Today(now time.Time) time.Time {
	return Midnight(now)
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(LayoutDate)
}

// FormatClock renders t as HH:MM.
func FormatClock(t time.Time) string {
	return t.Format(LayoutClock)
}

// ParseDate parses a YYYY-MM-DD string in loc (UTC when nil).
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(LayoutDate, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("timeutil: parse date %q: %w", s, err)
	}
	return t, nil
}

// ParseClock parses HH:MM into hour and minute. Single digit hours are
// accepted ("9:30") since that is how people type them.
func ParseClock(s string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 || len(parts[1]) != 2 || len(parts[0]) == 0 || len(parts[0]) > 2 {
		return 0, 0, fmt.Errorf("%w %q", errBadClock, s)
	}
	if !digits(parts[0]) || !digits(parts[1]) {
		return 0, 0, fmt.Errorf("%w %q", errBadClock, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, fmt.Errorf("%w %q", errBadClock, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("%w %q", errBadClock, s)
	}
	return h, m, nil
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// Clock builds a canonical HH:MM string.
func Clock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// MonthKey renders t as YYYY-MM.
func MonthKey(t time.Time) string {
	return t.Format(LayoutMonth)
}

// ParseMonthKey parses YYYY-MM into the first day of that month.
func ParseMonthKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(LayoutMonth, strings.TrimSpace(key), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("timeutil: parse month %q: %w", key, err)
	}
	return t, nil
}

// StartOfMonth returns the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last day of t's month.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, -1)
}

// DaysIn returns the number of days in a month.
func DaysIn(month time.Time) int {
	return EndOfMonth(month).Day()
}

// MonthDays lists every date in the month of t.
func MonthDays(t time.Time) []time.Time {
	first := StartOfMonth(t)
	n := DaysIn(first)
	days := make([]time.Time, n)
	for i := 0; i < n; i++ {
		days[i] = first.AddDate(0, 0, i)
	}
	return days
}

// StartOfWeek returns the Sunday that begins the week containing t.
func StartOfWeek(t time.Time) time.Time {
	d := Midnight(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// EndOfWeek returns the Saturday that ends the week containing t.
func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 6)
}

// WeekDays returns the seven days, Sunday first, of the week containing t.
func WeekDays(t time.Time) []time.Time {
	start := StartOfWeek(t)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// AddMonths moves t by n calendar months keeping the day of month where
// the target month has it and clamping to the last day otherwise.
func AddMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	day := t.Day()
	if last := DaysIn(first); day > last {
		day = last
	}
	return first.AddDate(0, 0, day-1)
}

// AddYears moves t by n years, clamping Feb 29 to Feb 28.
func AddYears(t time.Time, n int) time.Time {
	return AddMonths(t, 12*n)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsOverdue reports whether date is strictly before today.
func IsOverdue(date string, now time.Time) bool {
	if date == "" {
		return false
	}
	return date < FormatDate(now)
}

// IsDueWithin reports whether date is on or before today plus days.
func IsDueWithin(date string, now time.Time, days int) bool {
	if date == "" {
		return false
	}
	return date <= FormatDate(now.AddDate(0, 0, days))
}

// FormatDisplayDate renders "2024-03-14" as "Mar 14, 2024". Unparseable
// input is returned unchanged.
func FormatDisplayDate(date string) string {
	t, err := ParseDate(date, nil)
	if err != nil {
		return date
	}
	return t.Format(layoutDisplayDate)
}

// FormatDisplayTime renders "13:05" as "1:05 PM".
func FormatDisplayTime(clock string) string {
	h, m, err := ParseClock(clock)
	if err != nil {
		return clock
	}
	ampm := "AM"
	if h >= 12 {
		ampm = "PM"
	}
	display := h
	switch {
	case h == 0:
		display = 12
	case h > 12:
		display = h - 12
	}
	return fmt.Sprintf("%d:%02d %s", display, m, ampm)
}
