// Package habits computes completion percentages for a month of habits.
//
// Every percentage is an integer in [0, 100], rounded half up. Days after
// today are excluded, and with no habits or no past days the result is 0.
package habits

import (
	"fmt"
	"time"

	"tableflip.dev/planner/pkg/entity"
	"tableflip.dev/planner/pkg/timeutil"
)

// DaysPerWeek sizes the weekly chunks, which start on the 1st of the month
// rather than on a weekday.
const DaysPerWeek = 7

// percent returns round(100 * num / den), rounding halves up. den == 0
// yields 0.
func percent(num, den int) int {
	if den <= 0 || num <= 0 {
		return 0
	}
	p := (200*num + den) / (2 * den)
	if p > 100 {
		p = 100
	}
	return p
}

// InMonth keeps the habits scoped to monthKey.
func InMonth(habits []entity.Habit, monthKey string) []entity.Habit {
	out := make([]entity.Habit, 0, len(habits))
	for _, h := range habits {
		if h.MonthKey == monthKey {
			out = append(out, h)
		}
	}
	return out
}

func completedOn(habits []entity.Habit, date string) int {
	n := 0
	for _, h := range habits {
		if h.Done(date) {
			n++
		}
	}
	return n
}

// pastDays lists the dates of monthKey up to and including today.
func pastDays(monthKey string, today time.Time) []string {
	first, err := timeutil.ParseMonthKey(monthKey, nil)
	if err != nil {
		return nil
	}
	limit := timeutil.FormatDate(today)
	out := make([]string, 0, 31)
	for _, d := range timeutil.MonthDays(first) {
		key := timeutil.FormatDate(d)
		if key > limit {
			break
		}
		out = append(out, key)
	}
	return out
}

// Daily is the share of date's habits completed on date. ok is false for
// dates after today.
func Daily(habits []entity.Habit, date string, today time.Time) (int, bool) {
	if date > timeutil.FormatDate(today) {
		return 0, false
	}
	if len(date) < len(timeutil.LayoutMonth) {
		return 0, false
	}
	scoped := InMonth(habits, date[:len(timeutil.LayoutMonth)])
	return percent(completedOn(scoped, date), len(scoped)), true
}

// Week is one seven-day chunk of the month.
type Week struct {
	Index   int    `json:"index"`
	Label   string `json:"label"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Days    int    `json:"days"`
	Percent int    `json:"percent"`
}

// Weekly is the mean daily percentage over the past days of chunk week
// (0 based). ok is false when the chunk has no past days.
func Weekly(habits []entity.Habit, monthKey string, week int, today time.Time) (int, bool) {
	for _, w := range Weeks(habits, monthKey, today) {
		if w.Index == week {
			return w.Percent, true
		}
	}
	return 0, false
}

// Weeks reports every chunk of the month that has at least one past day.
func Weeks(habits []entity.Habit, monthKey string, today time.Time) []Week {
	scoped := InMonth(habits, monthKey)
	days := pastDays(monthKey, today)
	out := make([]Week, 0, 5)
	for i := 0; i < len(days); i += DaysPerWeek {
		end := i + DaysPerWeek
		if end > len(days) {
			end = len(days)
		}
		chunk := days[i:end]
		done := 0
		for _, d := range chunk {
			done += completedOn(scoped, d)
		}
		out = append(out, Week{
			Index:   i / DaysPerWeek,
			Label:   fmt.Sprintf("Week %d", i/DaysPerWeek+1),
			Start:   chunk[0],
			End:     chunk[len(chunk)-1],
			Days:    len(chunk),
			Percent: percent(done, len(chunk)*len(scoped)),
		})
	}
	return out
}

// Overall is completions over possible completions for the past days of
// the month.
func Overall(habits []entity.Habit, monthKey string, today time.Time) int {
	scoped := InMonth(habits, monthKey)
	days := pastDays(monthKey, today)
	done := 0
	for _, d := range days {
		done += completedOn(scoped, d)
	}
	return percent(done, len(days)*len(scoped))
}

// Point is one day of the daily series.
type Point struct {
	Day     int    `json:"day"`
	Date    string `json:"date"`
	Percent int    `json:"percent"`
}

// DailySeries is the daily percentage for each past day of the month.
func DailySeries(habits []entity.Habit, monthKey string, today time.Time) []Point {
	scoped := InMonth(habits, monthKey)
	days := pastDays(monthKey, today)
	out := make([]Point, len(days))
	for i, d := range days {
		out[i] = Point{Day: i + 1, Date: d, Percent: percent(completedOn(scoped, d), len(scoped))}
	}
	return out
}

// HabitStat is one habit's record over the past days of its month.
type HabitStat struct {
	Habit     entity.Habit `json:"habit"`
	Completed int          `json:"completed"`
	Days      int          `json:"days"`
	Percent   int          `json:"percent"`
	Streak    int          `json:"streak"`
}

// PerHabit reports each habit of the month on its own. Streak counts the
// consecutive completed days ending today, or yesterday when today is not
// yet checked off.
func PerHabit(habits []entity.Habit, monthKey string, today time.Time) []HabitStat {
	scoped := InMonth(habits, monthKey)
	days := pastDays(monthKey, today)
	out := make([]HabitStat, len(scoped))
	for i, h := range scoped {
		done := 0
		for _, d := range days {
			if h.Done(d) {
				done++
			}
		}
		out[i] = HabitStat{
			Habit:     h,
			Completed: done,
			Days:      len(days),
			Percent:   percent(done, len(days)),
			Streak:    streak(h, days),
		}
	}
	return out
}

func streak(h entity.Habit, days []string) int {
	i := len(days) - 1
	if i >= 0 && !h.Done(days[i]) {
		i--
	}
	n := 0
	for ; i >= 0 && h.Done(days[i]); i-- {
		n++
	}
	return n
}

// Summary bundles every aggregate for one month.
type Summary struct {
	MonthKey string      `json:"monthKey"`
	Habits   int         `json:"habits"`
	Overall  int         `json:"overall"`
	Weeks    []Week      `json:"weeks"`
	Series   []Point     `json:"series"`
	PerHabit []HabitStat `json:"perHabit"`
}

// Summarize computes the Summary for monthKey.
func Summarize(habits []entity.Habit, monthKey string, today time.Time) Summary {
	return Summary{
		MonthKey: monthKey,
		Habits:   len(InMonth(habits, monthKey)),
		Overall:  Overall(habits, monthKey, today),
		Weeks:    Weeks(habits, monthKey, today),
		Series:   DailySeries(habits, monthKey, today),
		PerHabit: PerHabit(habits, monthKey, today),
	}
}
