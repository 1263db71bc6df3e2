package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/timeutil"
)

// MonthOptions selects a habit month.
type MonthOptions struct {
	Month string
}

func AddMonthArgs(cmd *cobra.Command, o *MonthOptions) {
	cmd.Flags().StringVar(&o.Month, "month", "",
		`Month as YYYY-MM; defaults to the current month.`)
}

// Key returns the month key, defaulting to now's month.
func (o *MonthOptions) Key(now time.Time) (string, error) {
	if o.Month == "" {
		return timeutil.MonthKey(now), nil
	}
	if _, err := timeutil.ParseMonthKey(o.Month, nil); err != nil {
		return "", fmt.Errorf("invalid month %q, want YYYY-MM", o.Month)
	}
	return o.Month, nil
}
