package options

import (
	"testing"
	"time"
)

func TestParseOn(t *testing.T) {
	now := time.Date(2024, time.December, 5, 15, 4, 0, 0, time.UTC)

	tests := map[string]struct {
		in      string
		want    string
		wantErr bool
	}{
		"empty":       {in: "", want: ""},
		"today":       {in: "Today", want: "2024-12-05"},
		"tomorrow":    {in: "tomorrow", want: "2024-12-06"},
		"yesterday":   {in: "yesterday", want: "2024-12-04"},
		"iso":         {in: "2024-3-20", want: "2024-03-20"},
		"this year":   {in: "12/25", want: "2024-12-25"},
		"next year":   {in: "1/3", want: "2025-01-03"},
		"same day":    {in: "12/5", want: "2024-12-05"},
		"garbage":     {in: "someday", wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			o := &OnOptions{OnString: tc.in}
			got, err := o.Date(now)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMonthKey(t *testing.T) {
	now := time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)

	if got, _ := (&MonthOptions{}).Key(now); got != "2024-03" {
		t.Fatalf("default month = %q", got)
	}
	if got, err := (&MonthOptions{Month: "2023-11"}).Key(now); err != nil || got != "2023-11" {
		t.Fatalf("explicit month = %q, %v", got, err)
	}
	if _, err := (&MonthOptions{Month: "March"}).Key(now); err == nil {
		t.Fatalf("expected an error for a month name")
	}
}

func TestWrap(t *testing.T) {
	got := Wrap("one two three four", 9)
	if got != "one two\nthree\nfour" {
		t.Fatalf("wrap = %q", got)
	}
	if got := Wrap("  spaced\n\tout  ", 80); got != "spaced out" {
		t.Fatalf("wrap = %q", got)
	}
}
