package teaui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/v2/list"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/dnd"
	"tableflip.dev/planner/pkg/entity"
	"tableflip.dev/planner/pkg/theme"
	"tableflip.dev/planner/pkg/timer"
	"tableflip.dev/planner/pkg/timeutil"
)

// focus is the pane receiving movement keys.
type focus int

const (
	focusCalendar focus = iota
	focusSidebar
)

// windowSlots is how many half-hour slots the day and week grids show at
// once: six hours.
const windowSlots = 12

// taskItem is a row of the unscheduled sidebar.
type taskItem struct{ t entity.Task }

func (it taskItem) Title() string { return it.t.Name }
func (it taskItem) Description() string {
	return fmt.Sprintf("%s · %s", it.t.Priority, timeutil.FormatDuration(it.t.Estimate()))
}
func (it taskItem) FilterValue() string { return it.t.Name }

// Model contains UI state
type Model struct {
	svc    *app.Service
	ctx    context.Context
	now    func() time.Time
	themes *theme.Manager
	styles theme.Styles
	timer  *timer.Timer
	drag   *dnd.Controller

	nav      calendar.Navigator
	cursor   time.Time // selected day
	slot     int       // selected slot in day and week views
	top      int       // first visible slot
	pick     int       // task picked within the selected month cell
	monthCap int

	focus   focus
	sidebar list.Model
	tasks   []entity.Task

	status  string
	err     error
	ringing bool

	termWidth  int
	termHeight int
}

// Options configures New.
type Options struct {
	Theme    *theme.Manager
	Timer    *timer.Timer
	MonthCap int
	Now      func() time.Time
}

// New creates a new UI model backed by the Service.
func New(svc *app.Service, opts Options) Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	themes := opts.Theme
	if themes == nil {
		themes = theme.NewManager(theme.Auto)
	}
	t := opts.Timer
	if t == nil {
		t = timer.New(timer.DefaultMinutes)
	}

	d := list.NewDefaultDelegate()
	d.SetSpacing(0)
	sidebar := list.New([]list.Item{}, d, 28, 20)
	sidebar.Title = "Unscheduled"
	sidebar.SetShowHelp(false)
	sidebar.SetShowStatusBar(false)
	sidebar.SetFilteringEnabled(false)

	today := timeutil.Midnight(now())
	m := Model{
		svc:      svc,
		ctx:      context.Background(),
		now:      now,
		themes:   themes,
		styles:   theme.For(themes.Mode()),
		timer:    t,
		nav:      calendar.NewNavigator(calendar.GranularityMonth, today),
		cursor:   today,
		slot:     calendar.DefaultSlot,
		top:      calendar.DefaultSlot - 1,
		monthCap: opts.MonthCap,
		sidebar:  sidebar,
		status:   "d/w/m/y views · h/l prev/next · t today · space pick up · enter drop · ? help",
	}
	if svc != nil {
		m.drag = dnd.New(svc)
	}
	m.refresh()
	return m
}

// messages
type errMsg struct{ err error }
type changedMsg struct{}
type themeMsg struct{ mode theme.Mode }
type tickMsg time.Time

// Init starts the timer clock.
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// refresh reloads tasks and the sidebar from the service.
func (m *Model) refresh() {
	if m.svc == nil {
		return
	}
	m.tasks = m.svc.Tasks()
	open := m.svc.Unscheduled(app.AllProjects)
	items := make([]list.Item, 0, len(open))
	for _, t := range open {
		items = append(items, taskItem{t: t})
	}
	m.sidebar.SetItems(items)
}

func (m Model) view() calendar.View {
	return calendar.Derive(m.nav, m.tasks, calendar.Options{Now: m.now(), MonthCap: m.monthCap})
}

// Update handles messages and keybindings
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case errMsg:
		m.err = msg.err
	case changedMsg:
		m.refresh()
	case themeMsg:
		m.styles = theme.For(msg.mode)
	case tickMsg:
		if m.timer.Tick(time.Time(msg)) == timer.Alarm && !m.ringing {
			m.ringing = true
			m.status = "Time's up! Press any key."
		}
		cmds = append(cmds, tick())
	case tea.KeyPressMsg:
		if m.ringing {
			m.ringing = false
			_ = m.timer.Acknowledge()
			m.status = "Timer reset"
			break
		}
		m.err = nil
		if cmd := m.handleKey(msg.String()); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(key string) tea.Cmd {
	switch key {
	case "q", "ctrl+c":
		return tea.Quit
	case "?":
		m.status = "arrows move · tab sidebar · n next task · u drop to sidebar · esc cancel · p/r timer · T theme · q quit"
	case "d":
		m.selectView(calendar.GranularityDay)
	case "w":
		m.selectView(calendar.GranularityWeek)
	case "m":
		m.selectView(calendar.GranularityMonth)
	case "y":
		m.selectView(calendar.GranularityYear)
	case "h":
		m.step(calendar.Prev)
	case "l":
		m.step(calendar.Next)
	case "t":
		m.nav = m.nav.Today(m.now())
		m.cursor = m.nav.Anchor
		m.afterMove()
	case "tab":
		if m.focus == focusCalendar {
			m.focus = focusSidebar
		} else {
			m.focus = focusCalendar
		}
		m.afterMove()
	case "up", "k":
		m.move(0, -1)
	case "down", "j":
		m.move(0, 1)
	case "left":
		m.move(-1, 0)
	case "right":
		m.move(1, 0)
	case "n":
		m.pick++
	case "space", " ":
		m.pickUp()
	case "enter":
		m.enter()
	case "u":
		m.drop(dnd.SidebarTarget())
	case "esc":
		if m.drag != nil {
			if _, ok := m.drag.Dragging(); ok {
				m.drag.Cancel()
				m.status = "Drag cancelled"
			}
		}
	case "T":
		m.styles = theme.For(m.themes.Toggle())
		m.status = fmt.Sprintf("Theme: %s", m.styles.Mode)
	case "p":
		if err := m.timer.Toggle(); err != nil {
			m.err = err
		}
	case "r":
		m.timer.Reset()
	}
	return nil
}

func (m *Model) selectView(g calendar.Granularity) {
	m.nav = calendar.NewNavigator(g, m.cursor)
	m.afterMove()
}

func (m *Model) step(dir calendar.Direction) {
	m.nav = m.nav.Navigate(dir)
	m.cursor = m.nav.Anchor
	m.afterMove()
}

// move shifts the cursor. dx moves by day (by month in the year view); dy
// moves by slot in the day and week views, by week in the month view and by
// a row of three months in the year view.
func (m *Model) move(dx, dy int) {
	if m.focus == focusSidebar {
		switch {
		case dy < 0:
			m.sidebar.CursorUp()
		case dy > 0:
			m.sidebar.CursorDown()
		}
		return
	}
	switch m.nav.Granularity {
	case calendar.GranularityDay, calendar.GranularityWeek:
		m.cursor = m.cursor.AddDate(0, 0, dx)
		m.slot = clamp(m.slot+dy, 0, calendar.SlotsPerDay-1)
	case calendar.GranularityMonth:
		m.cursor = m.cursor.AddDate(0, 0, dx+7*dy)
	case calendar.GranularityYear:
		m.cursor = timeutil.AddMonths(m.cursor, dx+3*dy)
	}
	if first, last := m.nav.Range(); m.cursor.Before(first) || m.cursor.After(last) {
		m.nav = calendar.NewNavigator(m.nav.Granularity, m.cursor)
	} else if m.nav.Granularity == calendar.GranularityMonth && m.cursor.Month() != m.nav.Anchor.Month() {
		m.nav = calendar.NewNavigator(m.nav.Granularity, m.cursor)
	}
	m.afterMove()
}

// afterMove keeps the slot window around the cursor and updates the drop
// candidate.
func (m *Model) afterMove() {
	m.pick = 0
	if m.slot < m.top {
		m.top = m.slot
	}
	if m.slot >= m.top+windowSlots {
		m.top = m.slot - windowSlots + 1
	}
	m.top = clamp(m.top, 0, calendar.SlotsPerDay-windowSlots)
	if m.drag == nil {
		return
	}
	if target, ok := m.target(); ok {
		m.drag.Hover(target)
	}
}

// target is the drop target under the cursor. The year view has none.
func (m Model) target() (dnd.Target, bool) {
	if m.focus == focusSidebar {
		return dnd.SidebarTarget(), true
	}
	date := timeutil.FormatDate(m.cursor)
	switch m.nav.Granularity {
	case calendar.GranularityDay, calendar.GranularityWeek:
		return dnd.SlotTarget(date, m.slot), true
	case calendar.GranularityMonth:
		return dnd.CellTarget(date), true
	}
	return dnd.Target{}, false
}

// selected is the task under the cursor, if any.
func (m Model) selected() (entity.Task, bool) {
	if m.focus == focusSidebar {
		it, ok := m.sidebar.SelectedItem().(taskItem)
		return it.t, ok
	}
	date := timeutil.FormatDate(m.cursor)
	var here []entity.Task
	switch m.nav.Granularity {
	case calendar.GranularityDay, calendar.GranularityWeek:
		col := calendar.DayView(m.cursor, m.tasks, calendar.Options{Now: m.now()})
		for _, b := range col.Blocks {
			if b.Covers(m.slot) {
				here = append(here, b.Task)
			}
		}
	case calendar.GranularityMonth:
		for _, t := range m.tasks {
			if t.ScheduledDate == date {
				here = append(here, t)
			}
		}
	}
	if len(here) == 0 {
		return entity.Task{}, false
	}
	return here[m.pick%len(here)], true
}

func (m *Model) pickUp() {
	if m.drag == nil {
		return
	}
	t, ok := m.selected()
	if !ok {
		m.status = "Nothing to pick up here"
		return
	}
	m.drag.Start(t.ID)
	if target, ok := m.target(); ok {
		m.drag.Hover(target)
	}
	m.status = fmt.Sprintf("Moving %q: pick a cell and press enter", t.Name)
}

func (m *Model) enter() {
	if m.drag != nil {
		if _, ok := m.drag.Dragging(); ok {
			target, ok := m.target()
			if !ok {
				m.status = "Drill into a month to drop"
				return
			}
			m.drop(target)
			return
		}
	}
	if m.nav.Granularity == calendar.GranularityYear {
		m.nav = m.nav.DrillFromYear(m.cursor.Month())
		m.cursor = m.nav.Anchor
		m.afterMove()
	}
}

func (m *Model) drop(target dnd.Target) {
	if m.drag == nil {
		return
	}
	if _, ok := m.drag.Dragging(); !ok {
		return
	}
	t, err := m.drag.Drop(m.ctx, target)
	if err != nil {
		m.err = err
		return
	}
	m.status = fmt.Sprintf("Moved %q to %s", t.Name, target)
	m.refresh()
}

// applySizes recalculates the sidebar size based on current terminal size.
func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	height := m.termHeight - 6
	if height < 5 {
		height = 5
	}
	m.sidebar.SetSize(sidebarWidth, height)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Run launches the calendar UI. Store changes made elsewhere and theme
// changes are pushed into the running program.
func Run(ctx context.Context, svc *app.Service, opts Options) error {
	m := New(svc, opts)
	m.ctx = ctx
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	unsubscribe := svc.Subscribe(func(app.Change) { p.Send(changedMsg{}) })
	defer unsubscribe()
	untheme := m.themes.Subscribe(func(mode theme.Mode) { p.Send(themeMsg{mode: mode}) })
	defer untheme()

	_, err := p.Run()
	return err
}
