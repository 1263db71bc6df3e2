package teaui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/dnd"
	"tableflip.dev/planner/pkg/entity"
	"tableflip.dev/planner/pkg/timer"
	"tableflip.dev/planner/pkg/timeutil"
)

const (
	sidebarWidth = 30
	defaultWidth = 110
	labelWidth   = 6
	minCellWidth = 8
)

// View renders the calendar, the unscheduled sidebar and the status lines.
func (m Model) View() string {
	v := m.view()

	var body string
	switch {
	case v.Day != nil:
		body = m.renderColumns([]calendar.Column{v.Day.Column})
	case v.Week != nil:
		body = m.renderColumns(v.Week.Columns)
	case v.Year != nil:
		body = m.renderYear(*v.Year)
	case v.Month != nil:
		body = m.renderMonth(*v.Month)
	}

	cal := lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(v), body)
	frame := m.styles.Panel.Frame
	if m.focus == focusCalendar {
		frame = m.styles.Panel.ActiveFrame
	}
	side := m.styles.Panel.Frame
	if m.focus == focusSidebar {
		side = m.styles.Panel.ActiveFrame
	}
	if m.drag != nil && m.drag.IsCandidate(dnd.SidebarTarget()) {
		side = side.BorderForeground(m.styles.Calendar.Candidate.GetBackground())
	}
	layout := lipgloss.JoinHorizontal(lipgloss.Top, frame.Render(cal), side.Render(m.sidebar.View()))

	return layout + "\n" + m.renderFooter()
}

func (m Model) calendarWidth() int {
	w := m.termWidth
	if w == 0 {
		w = defaultWidth
	}
	return w - sidebarWidth - 6
}

func (m Model) renderHeader(v calendar.View) string {
	tabs := make([]string, 0, 4)
	for _, g := range calendar.Granularities() {
		label := strings.ToUpper(string(g)[:1]) + string(g)[1:]
		if g == v.Granularity {
			tabs = append(tabs, m.styles.Panel.Title.Render("["+label+"]"))
		} else {
			tabs = append(tabs, m.styles.Panel.Muted.Render(" "+label+" "))
		}
	}
	return m.styles.Panel.Title.Render(v.Title) + "  " + strings.Join(tabs, " ")
}

// renderColumns draws the slot grid for the day and week views, showing
// windowSlots rows from m.top.
func (m Model) renderColumns(cols []calendar.Column) string {
	width := (m.calendarWidth() - labelWidth) / len(cols)
	if width < minCellWidth {
		width = minCellWidth
	}
	cursorKey := timeutil.FormatDate(m.cursor)

	lines := make([]string, 0, windowSlots+1)
	if len(cols) > 1 {
		head := []string{strings.Repeat(" ", labelWidth)}
		for _, c := range cols {
			label := fmt.Sprintf("%s %d", c.Date.Format("Mon"), c.Date.Day())
			style := m.styles.Calendar.Header
			if c.IsToday {
				style = m.styles.Calendar.Today
			}
			head = append(head, style.Width(width).Render(label))
		}
		lines = append(lines, strings.Join(head, ""))
	}

	for i := m.top; i < m.top+windowSlots && i < calendar.SlotsPerDay; i++ {
		row := []string{m.styles.Calendar.SlotLabel.Width(labelWidth).Render(calendar.SlotTime(i))}
		for _, c := range cols {
			text, style := m.slotCell(c, i, width)
			if c.Key == cursorKey && i == m.slot && m.focus == focusCalendar {
				style = style.Inherit(m.styles.Calendar.Cursor).Bold(true)
			}
			if m.drag != nil && m.drag.IsCandidate(dnd.SlotTarget(c.Key, i)) {
				style = m.styles.Calendar.Candidate
			}
			row = append(row, style.Width(width).Render(text))
		}
		lines = append(lines, strings.Join(row, ""))
	}
	return strings.Join(lines, "\n")
}

// slotCell is what slot i of c shows: the name of a task starting there, a
// bar for slots covered by a longer task, or nothing.
func (m Model) slotCell(c calendar.Column, i, width int) (string, lipgloss.Style) {
	for _, t := range c.Slots[i].Tasks {
		name := t.Name
		if extra := len(c.Slots[i].Tasks) - 1; extra > 0 {
			name = fmt.Sprintf("%s +%d", name, extra)
		}
		return fit(name, width), m.taskStyle(t)
	}
	for _, b := range c.Blocks {
		if b.Covers(i) {
			return "│", m.taskStyle(b.Task)
		}
	}
	return "", m.styles.Calendar.Cell
}

func (m Model) taskStyle(t entity.Task) lipgloss.Style {
	if t.Completed {
		return m.styles.Calendar.Done
	}
	color := entity.DefaultColor
	if m.svc != nil {
		color = m.svc.ColorFor(t.ProjectID)
	}
	return m.styles.Task(color)
}

// renderMonth draws the whole-week grid. Each cell lists up to the cap's
// worth of tasks and a "+K more" line.
func (m Model) renderMonth(mv calendar.Month) string {
	width := m.calendarWidth() / 7
	if width < minCellWidth {
		width = minCellWidth
	}
	// day number, the capped tasks and the overflow line
	height := mv.Cap + 2

	head := make([]string, 0, 7)
	for _, d := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		head = append(head, m.styles.Calendar.Header.Width(width).Render(d))
	}
	rows := []string{strings.Join(head, "")}

	cursorKey := timeutil.FormatDate(m.cursor)
	for _, week := range mv.Weeks {
		cells := make([]string, 0, len(week))
		for _, c := range week {
			cells = append(cells, m.monthCell(c, width, height, c.Key == cursorKey))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func (m Model) monthCell(c calendar.Cell, width, height int, selected bool) string {
	number := m.styles.Calendar.Cell
	if !c.InMonth {
		number = m.styles.Calendar.Outside
	}
	if c.IsToday {
		number = m.styles.Calendar.Today
	}
	lines := []string{number.Render(fmt.Sprintf("%2d", c.Date.Day()))}
	for _, t := range c.Tasks {
		lines = append(lines, m.taskStyle(t).Render(fit(t.Name, width-1)))
	}
	if c.More > 0 {
		lines = append(lines, m.styles.Calendar.More.Render(fmt.Sprintf("+%d more", c.More)))
	}

	box := lipgloss.NewStyle().Width(width).Height(height)
	switch {
	case m.drag != nil && m.drag.IsCandidate(dnd.CellTarget(c.Key)):
		box = box.Inherit(m.styles.Calendar.Candidate)
	case selected && m.focus == focusCalendar:
		box = box.Inherit(m.styles.Calendar.Cursor)
	}
	return box.Render(strings.Join(lines, "\n"))
}

// renderYear draws twelve months in a four by three grid with task counts.
func (m Model) renderYear(y calendar.Year) string {
	width := m.calendarWidth() / 3
	rows := make([]string, 0, 4)
	for r := 0; r < 4; r++ {
		cells := make([]string, 0, 3)
		for c := 0; c < 3; c++ {
			mc := y.Months[r*3+c]
			label := fmt.Sprintf("%-9s %3d", mc.Month.String(), mc.Count)
			style := m.styles.Calendar.Cell
			if mc.Count == 0 {
				style = m.styles.Calendar.Outside
			}
			if mc.Month == m.cursor.Month() && m.focus == focusCalendar {
				style = style.Inherit(m.styles.Calendar.Cursor)
			}
			cells = append(cells, style.Width(width).Render(label))
		}
		rows = append(rows, strings.Join(cells, ""))
	}
	return strings.Join(rows, "\n\n")
}

func (m Model) renderFooter() string {
	lines := make([]string, 0, 3)
	if m.err != nil {
		lines = append(lines, m.styles.Footer.Error.Render("ERR: "+m.err.Error()))
	} else {
		lines = append(lines, m.styles.Footer.Status.Render(m.status))
	}
	lines = append(lines, m.styles.Footer.Help.Render(timerLine(m.timer.Status(m.now()))))
	return strings.Join(lines, "\n")
}

func timerLine(s timer.Status) string {
	line := fmt.Sprintf("⏱ %s %s", timeutil.FormatClockDown(s.Remaining), s.Name)
	if s.State == timer.Running || s.State == timer.Paused {
		line += fmt.Sprintf(" %d%%", s.Progress)
	}
	return line + " · p start/pause · r reset"
}

func fit(s string, width int) string {
	if width <= 1 {
		return ""
	}
	return truncate.StringWithTail(s, uint(width), "…")
}
