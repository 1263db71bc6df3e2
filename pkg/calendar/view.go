package calendar

import (
	"time"

	"tableflip.dev/planner/pkg/entity"
	"tableflip.dev/planner/pkg/timeutil"
)

const (
	// SlotMinutes is the length of one time slot.
	SlotMinutes = 30
	// SlotsPerDay partitions a day into SlotMinutes slots.
	SlotsPerDay = 24 * 60 / SlotMinutes
	// DefaultSlot (09:00) holds dated tasks that have no time.
	DefaultSlot = 9 * 60 / SlotMinutes

	// SlotHeight is the pixel height of one slot in the day and week grids.
	SlotHeight = 64
	// MinBlockHeight is the smallest pixel height of a task block.
	MinBlockHeight = 48

	// DefaultMonthCap is how many tasks a month cell lists before "+K more".
	DefaultMonthCap = 3
)

// SlotTime renders the start of slot i as HH:MM.
func SlotTime(i int) string {
	m := i * SlotMinutes
	return timeutil.Clock(m/60, m%60)
}

// SlotFor returns the slot holding a clock of hour:minute.
func SlotFor(hour, minute int) int {
	return (hour*60 + minute) / SlotMinutes
}

// placement resolves where a task lands. ok is false for unscheduled tasks
// and for tasks whose date or time does not parse.
func placement(t entity.Task) (date string, slot int, ok bool) {
	if t.ScheduledDate == "" {
		return "", 0, false
	}
	d, err := timeutil.ParseDate(t.ScheduledDate, nil)
	if err != nil {
		return "", 0, false
	}
	date = timeutil.FormatDate(d)
	if t.ScheduledTime == "" {
		return date, DefaultSlot, true
	}
	h, m, err := timeutil.ParseClock(t.ScheduledTime)
	if err != nil {
		return "", 0, false
	}
	return date, SlotFor(h, m), true
}

// Span is the number of slots a task covers: its estimate rounded up to
// whole slots, at least one.
func Span(estimatedMinutes int) int {
	span := (estimatedMinutes + SlotMinutes - 1) / SlotMinutes
	if span < 1 {
		span = 1
	}
	return span
}

// Slot is one 30 minute bucket of a day. Tasks holds the tasks that start
// in it.
type Slot struct {
	Index int           `json:"index"`
	Time  string        `json:"time"`
	Tasks []entity.Task `json:"tasks"`
}

// Block positions a task over the slot grid. Blocks may overlap; they are
// drawn on top of each other rather than stacked.
type Block struct {
	Task   entity.Task `json:"task"`
	Slot   int         `json:"slot"`
	Span   int         `json:"span"`
	Top    int         `json:"top"`
	Height int         `json:"height"`
}

// Covers reports whether the block occupies slot i.
func (b Block) Covers(i int) bool {
	return i >= b.Slot && i < b.Slot+b.Span
}

// Covered lists the slots a block occupies, clipped to the day.
func (b Block) Covered() []int {
	out := make([]int, 0, b.Span)
	for i := b.Slot; i < b.Slot+b.Span && i < SlotsPerDay; i++ {
		out = append(out, i)
	}
	return out
}

func newBlock(t entity.Task, slot int) Block {
	span := Span(t.EstimatedMinutes)
	height := span * SlotHeight
	if height < MinBlockHeight {
		height = MinBlockHeight
	}
	return Block{Task: t, Slot: slot, Span: span, Top: slot * SlotHeight, Height: height}
}

// Column is a single day of slots, the body of the day view and one column
// of the week view.
type Column struct {
	Date    time.Time `json:"date"`
	Key     string    `json:"key"`
	IsToday bool      `json:"isToday"`
	Slots   []Slot    `json:"slots"`
	Blocks  []Block   `json:"blocks"`
}

// Day is the day view.
type Day struct {
	Column
}

// Week is the week view: seven columns starting on Sunday.
type Week struct {
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Columns []Column  `json:"columns"`
}

// Cell is a day in the month grid.
type Cell struct {
	Date    time.Time     `json:"date"`
	Key     string        `json:"key"`
	InMonth bool          `json:"inMonth"`
	IsToday bool          `json:"isToday"`
	Tasks   []entity.Task `json:"tasks"`
	Total   int           `json:"total"`
	More    int           `json:"more"`
}

// Month is the month view: whole weeks from the Sunday on or before the
// first through the Saturday on or after the last.
type Month struct {
	Month time.Time `json:"month"`
	Key   string    `json:"key"`
	Cap   int       `json:"cap"`
	Weeks [][]Cell  `json:"weeks"`
}

// Days flattens the grid.
func (m Month) Days() []Cell {
	out := make([]Cell, 0, len(m.Weeks)*7)
	for _, w := range m.Weeks {
		out = append(out, w...)
	}
	return out
}

// MonthCell is one month in the year view.
type MonthCell struct {
	Month time.Month `json:"month"`
	Key   string     `json:"key"`
	Count int        `json:"count"`
}

// Year is the year view.
type Year struct {
	Year   int         `json:"year"`
	Months []MonthCell `json:"months"`
}

// Options tune view derivation.
type Options struct {
	// Now marks today's cells. Zero means time.Now.
	Now time.Time
	// MonthCap limits tasks per month cell; zero means DefaultMonthCap.
	MonthCap int
}

func (o Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

func (o Options) monthCap() int {
	if o.MonthCap <= 0 {
		return DefaultMonthCap
	}
	return o.MonthCap
}

// View is the derived data for whatever granularity is in view. Exactly
// one of Day, Week, Month and Year is set.
type View struct {
	Navigator
	Title string `json:"title"`
	Day   *Day   `json:"day,omitempty"`
	Week  *Week  `json:"week,omitempty"`
	Month *Month `json:"month,omitempty"`
	Year  *Year  `json:"year,omitempty"`
}

// Derive builds the view for nav over tasks.
func Derive(nav Navigator, tasks []entity.Task, opts Options) View {
	v := View{Navigator: nav, Title: nav.Title()}
	switch nav.Granularity {
	case GranularityDay:
		d := DayView(nav.Anchor, tasks, opts)
		v.Day = &d
	case GranularityWeek:
		w := WeekView(nav.Anchor, tasks, opts)
		v.Week = &w
	case GranularityYear:
		y := YearView(nav.Anchor, tasks)
		v.Year = &y
	default:
		m := MonthView(nav.Anchor, tasks, opts)
		v.Month = &m
	}
	return v
}

// byDate buckets placeable tasks by scheduled date, keeping input order.
func byDate(tasks []entity.Task) map[string][]entity.Task {
	out := make(map[string][]entity.Task)
	for _, t := range tasks {
		if date, _, ok := placement(t); ok {
			out[date] = append(out[date], t)
		}
	}
	return out
}

func column(date time.Time, tasks []entity.Task, now time.Time) Column {
	c := Column{
		Date:    date,
		Key:     timeutil.FormatDate(date),
		IsToday: timeutil.SameDay(date, now),
		Slots:   make([]Slot, SlotsPerDay),
		Blocks:  make([]Block, 0),
	}
	for i := range c.Slots {
		c.Slots[i] = Slot{Index: i, Time: SlotTime(i), Tasks: make([]entity.Task, 0)}
	}
	for _, t := range tasks {
		date, slot, ok := placement(t)
		if !ok || date != c.Key {
			continue
		}
		c.Slots[slot].Tasks = append(c.Slots[slot].Tasks, t)
		c.Blocks = append(c.Blocks, newBlock(t, slot))
	}
	return c
}

// DayView lays out the tasks scheduled on date.
func DayView(date time.Time, tasks []entity.Task, opts Options) Day {
	return Day{Column: column(timeutil.Midnight(date), tasks, opts.now())}
}

// WeekView lays out the Sunday-first week containing anchor.
func WeekView(anchor time.Time, tasks []entity.Task, opts Options) Week {
	now := opts.now()
	buckets := byDate(tasks)
	days := timeutil.WeekDays(anchor)
	w := Week{Start: days[0], End: days[6], Columns: make([]Column, len(days))}
	for i, d := range days {
		w.Columns[i] = column(d, buckets[timeutil.FormatDate(d)], now)
	}
	return w
}

// MonthView builds the whole-week grid for anchor's month. Each cell lists
// at most the cap's worth of tasks and counts the rest in More.
func MonthView(anchor time.Time, tasks []entity.Task, opts Options) Month {
	now := opts.now()
	limit := opts.monthCap()
	first := timeutil.StartOfMonth(timeutil.Midnight(anchor))
	start := timeutil.StartOfWeek(first)
	end := timeutil.EndOfWeek(timeutil.EndOfMonth(first))
	buckets := byDate(tasks)

	m := Month{Month: first, Key: timeutil.MonthKey(first), Cap: limit}
	var week []Cell
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := timeutil.FormatDate(d)
		all := buckets[key]
		shown := all
		if len(shown) > limit {
			shown = shown[:limit]
		}
		cell := Cell{
			Date:    d,
			Key:     key,
			InMonth: d.Month() == first.Month() && d.Year() == first.Year(),
			IsToday: timeutil.SameDay(d, now),
			Tasks:   append(make([]entity.Task, 0, len(shown)), shown...),
			Total:   len(all),
			More:    len(all) - len(shown),
		}
		week = append(week, cell)
		if len(week) == 7 {
			m.Weeks = append(m.Weeks, week)
			week = nil
		}
	}
	return m
}

// YearView counts tasks per month of anchor's year.
func YearView(anchor time.Time, tasks []entity.Task) Year {
	y := Year{Year: anchor.Year(), Months: make([]MonthCell, 12)}
	for i := range y.Months {
		month := time.Month(i + 1)
		y.Months[i] = MonthCell{
			Month: month,
			Key:   timeutil.MonthKey(time.Date(y.Year, month, 1, 0, 0, 0, 0, time.UTC)),
		}
	}
	for _, t := range tasks {
		date, _, ok := placement(t)
		if !ok {
			continue
		}
		d, _ := timeutil.ParseDate(date, nil)
		if d.Year() == y.Year {
			y.Months[d.Month()-1].Count++
		}
	}
	return y
}
