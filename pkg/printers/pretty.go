// Package printers renders planner data for the terminal.
package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/entity"
	"tableflip.dev/planner/pkg/timeutil"
)

// DefaultWidth is used when the terminal width is unknown.
const DefaultWidth = 80

// PrettyPrint writes colored, aligned output.
type PrettyPrint struct {
	// Out defaults to color.Output.
	Out io.Writer
	// ShowID prefixes rows with entity ids.
	ShowID bool
	// Width bounds names and wrapped notes.
	Width int
	// NoteStyle is the glamour style for task notes; empty means "dark".
	NoteStyle string
	// Profile colors swatches and bars; termenv.Ascii disables color.
	Profile termenv.Profile
}

// New returns a PrettyPrint on color.Output using the environment's color
// profile.
func New() *PrettyPrint {
	return &PrettyPrint{
		Out:     color.Output,
		Width:   DefaultWidth,
		Profile: termenv.EnvColorProfile(),
	}
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return DefaultWidth
	}
	return pp.Width
}

// Printf writes plain text.
func (pp *PrettyPrint) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(pp.out(), format, a...)
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d %s", count, noun)
	if count != 1 {
		_, _ = c.Fprint(pp.out(), "s")
	}
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Swatch draws a small block in a project color.
func (pp *PrettyPrint) Swatch(hex string) string {
	if _, err := entity.ParseColor(hex); err != nil {
		hex = entity.FallbackColor
	}
	return termenv.String("■").Foreground(pp.Profile.Color(hex)).String()
}

func checkbox(done bool) string {
	if done {
		return "✓"
	}
	return "○"
}

// When renders a task's schedule for lists.
func When(t entity.Task) string {
	if t.ScheduledDate == "" {
		return "unscheduled"
	}
	when := timeutil.FormatDisplayDate(t.ScheduledDate)
	if t.ScheduledTime != "" {
		when += " " + timeutil.FormatDisplayTime(t.ScheduledTime)
	}
	return when
}

// Tasks prints a task table. colorFor resolves project colors and may be
// nil.
func (pp *PrettyPrint) Tasks(tasks []entity.Task, colorFor func(projectID string) string) {
	if len(tasks) == 0 {
		pp.none()
		return
	}
	done := color.New(color.Faint, color.CrossedOut)
	level := map[entity.Level]*color.Color{
		entity.High:   color.New(color.FgRed, color.Bold),
		entity.Medium: color.New(color.FgYellow),
		entity.Low:    color.New(color.Faint),
	}
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	nameWidth := pp.width() / 2
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, t := range tasks {
		swatch := " "
		if colorFor != nil {
			swatch = pp.Swatch(colorFor(t.ProjectID))
		}
		name := truncate.StringWithTail(t.Name, uint(nameWidth), "…")
		if t.Completed {
			name = done.Sprint(name)
		}
		lv := level[t.Priority]
		if lv == nil {
			lv = color.New()
		}
		row := []interface{}{swatch + " " + checkbox(t.Completed), name, lv.Sprint(t.Priority), When(t), timeutil.FormatDuration(t.Estimate())}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(t.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Task prints one task in full, rendering its notes as markdown.
func (pp *PrettyPrint) Task(t entity.Task, project entity.Project) {
	pp.Title(t.Name)
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("id"), t.ID)
	tbl.AddRow(bold.Sprint("project"), pp.Swatch(project.Color)+" "+project.Name)
	tbl.AddRow(bold.Sprint("status"), checkbox(t.Completed)+" "+map[bool]string{true: "done", false: "open"}[t.Completed])
	tbl.AddRow(bold.Sprint("priority"), t.Priority)
	tbl.AddRow(bold.Sprint("urgency"), t.Urgency)
	tbl.AddRow(bold.Sprint("estimate"), timeutil.FormatDuration(t.Estimate()))
	tbl.AddRow(bold.Sprint("scheduled"), When(t))
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)

	if strings.TrimSpace(t.Notes) != "" {
		pp.NewLine()
		_, _ = fmt.Fprint(pp.out(), pp.Markdown(t.Notes))
	}
	pp.NewLine()
}

// Markdown renders md with glamour, falling back to plain word wrapping.
func (pp *PrettyPrint) Markdown(md string) string {
	style := pp.NoteStyle
	if style == "" {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(pp.width()),
	)
	if err == nil {
		if out, err := r.Render(strings.TrimSpace(md)); err == nil {
			return out
		}
	}
	return wordwrap.String(strings.TrimSpace(md), pp.width()) + "\n"
}

// Projects prints per-project task counts.
func (pp *PrettyPrint) Projects(stats []app.ProjectStat) {
	if len(stats) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = uint(pp.width() / 2)
	for _, s := range stats {
		row := []interface{}{
			pp.Swatch(s.Project.Color) + " " + bold.Sprint(s.Project.Name),
			fmt.Sprintf("%d/%d", s.Completed, s.Total),
			pp.Bar(s.Percent, 10),
			s.Project.Description,
		}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(s.Project.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Report prints completed tasks grouped by project.
func (pp *PrettyPrint) Report(r app.ReportResult) {
	pp.TitleWithCount(fmt.Sprintf("Completed %s to %s", timeutil.FormatDisplayDate(r.Since), timeutil.FormatDisplayDate(r.Until)), r.Total, "task")
	pp.NewLine()
	if len(r.Sections) == 0 {
		pp.none()
		return
	}
	for _, s := range r.Sections {
		_, _ = color.New(color.Bold).Fprintf(pp.out(), "%s %s\n", pp.Swatch(s.Project.Color), s.Project.Name)
		tbl := uitable.New()
		tbl.Separator = "  "
		for _, t := range s.Tasks {
			tbl.AddRow("  "+checkbox(true), truncate.StringWithTail(t.Name, uint(pp.width()/2), "…"), When(t))
		}
		_, _ = fmt.Fprintln(pp.out(), tbl)
		pp.NewLine()
	}
}

// JSON writes v as indented JSON.
func (pp *PrettyPrint) JSON(v any) error {
	b, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(pp.out(), string(b))
	return err
}
