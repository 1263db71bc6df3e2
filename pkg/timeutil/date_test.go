package timeutil

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := ParseDate(s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func TestStartOfWeekIsSunday(t *testing.T) {
	cases := map[string]string{
		"2024-03-14": "2024-03-10",
		"2024-03-10": "2024-03-10",
		"2024-03-16": "2024-03-10",
		"2024-03-01": "2024-02-25",
	}
	for in, want := range cases {
		if got := FormatDate(StartOfWeek(day(in))); got != want {
			t.Errorf("StartOfWeek(%s) = %s, want %s", in, got, want)
		}
	}
	if got := FormatDate(EndOfWeek(day("2024-03-14"))); got != "2024-03-16" {
		t.Errorf("EndOfWeek = %s", got)
	}
}

func TestAddMonthsClamps(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"2024-01-31", 1, "2024-02-29"},
		{"2023-01-31", 1, "2023-02-28"},
		{"2024-03-31", -1, "2024-02-29"},
		{"2024-03-14", 1, "2024-04-14"},
		{"2024-12-15", 1, "2025-01-15"},
	}
	for _, tc := range cases {
		if got := FormatDate(AddMonths(day(tc.in), tc.n)); got != tc.want {
			t.Errorf("AddMonths(%s, %d) = %s, want %s", tc.in, tc.n, got, tc.want)
		}
	}
	if got := FormatDate(AddYears(day("2024-02-29"), 1)); got != "2025-02-28" {
		t.Errorf("AddYears leap = %s", got)
	}
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("9:30")
	if err != nil || h != 9 || m != 30 {
		t.Fatalf("ParseClock(9:30) = %d %d %v", h, m, err)
	}
	for _, bad := range []string{"", "24:00", "12:60", "12:5", "noon", "1:2:3", "+9:30", "9:+5", "-1:30", " 9: 30"} {
		if _, _, err := ParseClock(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestDaysInAndMonthDays(t *testing.T) {
	if got := DaysIn(day("2024-02-10")); got != 29 {
		t.Fatalf("DaysIn feb 2024 = %d", got)
	}
	days := MonthDays(day("2024-04-20"))
	if len(days) != 30 || FormatDate(days[0]) != "2024-04-01" || FormatDate(days[29]) != "2024-04-30" {
		t.Fatalf("unexpected month days: %v..%v (%d)", days[0], days[len(days)-1], len(days))
	}
}

func TestOverdueAndDueWithin(t *testing.T) {
	now := time.Date(2024, 3, 14, 15, 0, 0, 0, time.UTC)
	if !IsOverdue("2024-03-13", now) {
		t.Error("yesterday should be overdue")
	}
	if IsOverdue("2024-03-14", now) {
		t.Error("today is not overdue")
	}
	if IsOverdue("", now) {
		t.Error("unscheduled is not overdue")
	}
	if !IsDueWithin("2024-03-21", now, 7) {
		t.Error("+7d should be within a week")
	}
	if IsDueWithin("2024-03-22", now, 7) {
		t.Error("+8d should not be within a week")
	}
}

func TestDisplayFormatting(t *testing.T) {
	if got := FormatDisplayDate("2024-03-14"); got != "Mar 14, 2024" {
		t.Errorf("FormatDisplayDate = %q", got)
	}
	cases := map[string]string{
		"00:15": "12:15 AM",
		"09:00": "9:00 AM",
		"12:30": "12:30 PM",
		"13:05": "1:05 PM",
	}
	for in, want := range cases {
		if got := FormatDisplayTime(in); got != want {
			t.Errorf("FormatDisplayTime(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestMonthKeyRoundTrip(t *testing.T) {
	first, err := ParseMonthKey("2024-03", time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if MonthKey(first) != "2024-03" || first.Day() != 1 {
		t.Fatalf("unexpected month start %v", first)
	}
	if _, err := ParseMonthKey("2024-13", nil); err == nil {
		t.Fatal("expected error for month 13")
	}
}
