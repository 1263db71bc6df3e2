package printers

import (
	"fmt"
	"time"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/entity"
	"tableflip.dev/planner/pkg/habits"
	"tableflip.dev/planner/pkg/timeutil"
)

// Dashboard is everything the today screen shows.
type Dashboard struct {
	Today    time.Time
	Schedule []entity.Task
	Upcoming []entity.Task
	Overdue  []entity.Task
	Projects []app.ProjectStat
	Habits   habits.Summary
	Month    calendar.Month
}

// Dashboard prints the today screen: a mini month, the day's timed tasks,
// overdue and upcoming work, and habit progress.
func (pp *PrettyPrint) Dashboard(d Dashboard, colorFor func(string) string) {
	pp.Title(d.Today.Format("Monday, January 2, 2006"))
	pp.NewLine()
	_, _ = fmt.Fprintln(pp.out(), calendar.RenderMini(d.Month, timeutil.FormatDate(d.Today), calendar.DefaultMiniStyle()))
	pp.NewLine()

	pp.TitleWithCount("Schedule", len(d.Schedule), "task")
	pp.Tasks(d.Schedule, colorFor)

	if len(d.Overdue) > 0 {
		pp.TitleWithCount("Overdue", len(d.Overdue), "task")
		pp.Tasks(d.Overdue, colorFor)
	}

	pp.TitleWithCount("Up next", len(d.Upcoming), "task")
	pp.Tasks(d.Upcoming, colorFor)

	pp.Title("Projects")
	pp.Projects(d.Projects)

	if d.Habits.Habits > 0 {
		pp.Title("Habits " + d.Habits.MonthKey)
		pp.HabitSummary(d.Habits)
	}
}
