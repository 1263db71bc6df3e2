package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/timeutil"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2020-2-28", --on="2/28", --on=today or --on=tomorrow.`)
}

// GetOn parses the date relative to now. It returns the zero time when no
// date was given.
func (o *OnOptions) GetOn(now time.Time) (time.Time, error) {
	return ParseOn(o.OnString, now)
}

// Date is GetOn formatted as YYYY-MM-DD, or empty.
func (o *OnOptions) Date(now time.Time) (string, error) {
	t, err := o.GetOn(now)
	if err != nil || t.IsZero() {
		return "", err
	}
	return timeutil.FormatDate(t), nil
}

// ParseOn reads the --on forms.
func ParseOn(raw string, now time.Time) (time.Time, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	switch raw {
	case "":
		return time.Time{}, nil
	case "today":
		return timeutil.Midnight(now), nil
	case "tomorrow":
		return timeutil.Midnight(now).AddDate(0, 0, 1), nil
	case "yesterday":
		return timeutil.Midnight(now).AddDate(0, 0, -1), nil
	}
	t, err := time.ParseInLocation(layoutISO, raw, now.Location())
	if err == nil {
		return t, nil
	}
	// Let the year be the same.
	t, err = time.ParseInLocation(layoutISOShort, raw, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD or M/D", raw)
	}
	t = t.AddDate(now.Year(), 0, 0)
	// I am gonna assume if you said 1/3 on 12/5, you meant next year, not 11 months ago.
	if t.Before(timeutil.Midnight(now)) {
		t = t.AddDate(1, 0, 0)
	}
	return t, nil
}
