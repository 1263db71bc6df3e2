package calendar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
)

// MiniStyle controls the compact month grid used by the year view and the
// dashboard.
type MiniStyle struct {
	Header     lipgloss.Style
	Empty      lipgloss.Style
	Busy       lipgloss.Style
	Outside    lipgloss.Style
	Today      lipgloss.Style
	Selected   lipgloss.Style
	ShowHeader bool
}

// DefaultMiniStyle returns the styling used when no theme is supplied.
func DefaultMiniStyle() MiniStyle {
	return MiniStyle{
		Header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
		Empty:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Busy:       lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
		Outside:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Today:      lipgloss.NewStyle().Underline(true),
		Selected:   lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0")),
		ShowHeader: true,
	}
}

// WeekdayHeader labels the Sunday-first columns.
const WeekdayHeader = "Su Mo Tu We Th Fr Sa"

// RenderMini draws m as a compact grid, one two-character cell per day.
// Days outside the month are blank. selected is a YYYY-MM-DD key or empty.
func RenderMini(m Month, selected string, style MiniStyle) string {
	lines := make([]string, 0, len(m.Weeks)+1)
	if style.ShowHeader {
		lines = append(lines, style.Header.Render(WeekdayHeader))
	}
	for _, week := range m.Weeks {
		cells := make([]string, 0, len(week))
		for _, c := range week {
			cells = append(cells, renderMiniCell(c, selected, style))
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return strings.Join(lines, "\n")
}

func renderMiniCell(c Cell, selected string, style MiniStyle) string {
	if !c.InMonth {
		return style.Outside.Render("  ")
	}
	text := fmt.Sprintf("%2d", c.Date.Day())
	s := style.Empty
	if c.Total > 0 {
		s = style.Busy
	}
	if c.IsToday {
		s = s.Inherit(style.Today)
	}
	if selected != "" && c.Key == selected {
		s = s.Inherit(style.Selected)
	}
	return s.Render(text)
}
