package theme

import (
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/planner/pkg/entity"
)

// Styles centralizes Lip Gloss styles for the terminal UI.
type Styles struct {
	Mode     Mode
	Footer   FooterStyles
	Panel    PanelStyles
	Calendar CalendarStyles
}

// FooterStyles groups styles used by the bottom status bar.
type FooterStyles struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// PanelStyles style framed panels and headings.
type PanelStyles struct {
	Frame       lipgloss.Style
	ActiveFrame lipgloss.Style
	Title       lipgloss.Style
	Body        lipgloss.Style
	Muted       lipgloss.Style
}

// CalendarStyles style the calendar grid.
type CalendarStyles struct {
	Header    lipgloss.Style
	Cell      lipgloss.Style
	Outside   lipgloss.Style
	Today     lipgloss.Style
	Cursor    lipgloss.Style
	Candidate lipgloss.Style
	SlotLabel lipgloss.Style
	More      lipgloss.Style
	Done      lipgloss.Style
}

type palette struct {
	text, muted, faint, accent, cursor, candidate, danger string
}

var palettes = map[Mode]palette{
	Dark:  {text: "#E5E7EB", muted: "#9CA3AF", faint: "#4B5563", accent: "#3B82F6", cursor: "#374151", candidate: "#10B981", danger: "#EF4444"},
	Light: {text: "#111827", muted: "#6B7280", faint: "#D1D5DB", accent: "#2563EB", cursor: "#E5E7EB", candidate: "#059669", danger: "#DC2626"},
}

// For returns the styles for mode.
func For(mode Mode) Styles {
	p, ok := palettes[mode]
	if !ok {
		mode, p = Dark, palettes[Dark]
	}
	text := lipgloss.Color(p.text)
	muted := lipgloss.Color(p.muted)

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(p.faint)).
		Padding(0, 1)

	return Styles{
		Mode: mode,
		Footer: FooterStyles{
			Help:   lipgloss.NewStyle().Foreground(muted),
			Status: lipgloss.NewStyle().Foreground(text),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.danger)).Bold(true),
		},
		Panel: PanelStyles{
			Frame:       frame,
			ActiveFrame: frame.BorderForeground(lipgloss.Color(p.accent)),
			Title:       lipgloss.NewStyle().Bold(true).Foreground(text),
			Body:        lipgloss.NewStyle().Foreground(text),
			Muted:       lipgloss.NewStyle().Foreground(muted),
		},
		Calendar: CalendarStyles{
			Header:    lipgloss.NewStyle().Bold(true).Foreground(muted),
			Cell:      lipgloss.NewStyle().Foreground(text),
			Outside:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.faint)),
			Today:     lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color(p.accent)),
			Cursor:    lipgloss.NewStyle().Background(lipgloss.Color(p.cursor)),
			Candidate: lipgloss.NewStyle().Background(lipgloss.Color(p.candidate)).Foreground(lipgloss.Color("#FFFFFF")),
			SlotLabel: lipgloss.NewStyle().Foreground(muted),
			More:      lipgloss.NewStyle().Italic(true).Foreground(muted),
			Done:      lipgloss.NewStyle().Strikethrough(true).Foreground(muted),
		},
	}
}

// Task styles a task chip in its project color with readable text.
func (s Styles) Task(projectColor string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(projectColor)).
		Foreground(lipgloss.Color(entity.ContrastText(projectColor)))
}
