package calendar

import (
	"strings"
	"testing"
	"time"

	"tableflip.dev/planner/pkg/entity"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func task(id, date, clock string, minutes int) entity.Task {
	return entity.Task{ID: id, Name: id, EstimatedMinutes: minutes, ScheduledDate: date, ScheduledTime: clock}
}

var now = day("2024-03-14")

func TestNavigate(t *testing.T) {
	cases := []struct {
		g    Granularity
		from string
		dir  Direction
		want string
	}{
		{GranularityDay, "2024-03-14", Next, "2024-03-15"},
		{GranularityDay, "2024-03-01", Prev, "2024-02-29"},
		{GranularityWeek, "2024-03-14", Next, "2024-03-21"},
		{GranularityWeek, "2024-03-14", Prev, "2024-03-07"},
		{GranularityMonth, "2024-01-31", Next, "2024-02-29"},
		{GranularityMonth, "2023-01-31", Next, "2023-02-28"},
		{GranularityMonth, "2024-03-31", Prev, "2024-02-29"},
		{GranularityMonth, "2024-03-14", Next, "2024-04-14"},
		{GranularityMonth, "2024-12-15", Next, "2025-01-15"},
		{GranularityYear, "2024-02-29", Next, "2025-02-28"},
		{GranularityYear, "2024-03-14", Prev, "2023-03-14"},
	}
	for _, tc := range cases {
		got := NewNavigator(tc.g, day(tc.from)).Navigate(tc.dir)
		if got.Anchor.Format("2006-01-02") != tc.want {
			t.Errorf("%s %s %+d: got %s, want %s", tc.g, tc.from, tc.dir, got.Anchor.Format("2006-01-02"), tc.want)
		}
		if got.Granularity != tc.g {
			t.Errorf("navigation changed granularity")
		}
	}
}

func TestSelectTodayAndDrill(t *testing.T) {
	nav := NewNavigator(GranularityMonth, day("2024-03-14"))
	if got := nav.Select(GranularityDay); got.Anchor != nav.Anchor || got.Granularity != GranularityDay {
		t.Fatalf("select should keep the anchor, got %+v", got)
	}
	back := nav.Step(-5).Today(now.Add(15 * time.Hour))
	if back.Anchor != now || back.Granularity != GranularityMonth {
		t.Fatalf("today: got %+v", back)
	}
	drilled := NewNavigator(GranularityYear, day("2023-08-20")).DrillFromYear(time.February)
	if drilled.Granularity != GranularityMonth || drilled.Anchor != day("2023-02-01") {
		t.Fatalf("drill: got %+v", drilled)
	}
}

func TestParseGranularity(t *testing.T) {
	for raw, want := range map[string]Granularity{"": GranularityMonth, "d": GranularityDay, "Week": GranularityWeek, "y": GranularityYear} {
		got, err := ParseGranularity(raw)
		if err != nil || got != want {
			t.Errorf("%q: got %s %v", raw, got, err)
		}
	}
	if _, err := ParseGranularity("decade"); err == nil {
		t.Fatal("expected error")
	}
}

func TestTitle(t *testing.T) {
	cases := map[Navigator]string{
		NewNavigator(GranularityDay, day("2024-03-14")):   "Thursday, March 14, 2024",
		NewNavigator(GranularityWeek, day("2024-03-14")):  "Mar 10 - 16, 2024",
		NewNavigator(GranularityWeek, day("2024-03-01")):  "Feb 25 - Mar 2, 2024",
		NewNavigator(GranularityWeek, day("2024-12-31")):  "Dec 29, 2024 - Jan 4, 2025",
		NewNavigator(GranularityMonth, day("2024-03-14")): "March 2024",
		NewNavigator(GranularityYear, day("2024-03-14")):  "2024",
	}
	for nav, want := range cases {
		if got := nav.Title(); got != want {
			t.Errorf("%s: got %q, want %q", nav.Granularity, got, want)
		}
	}
}

func TestMonthViewIsWholeWeeks(t *testing.T) {
	anchor := day("2020-01-01")
	for i := 0; i < 60; i++ {
		a := anchor.AddDate(0, i, 13)
		m := MonthView(a, nil, Options{Now: now})
		days := m.Days()
		if days[0].Date.Weekday() != time.Sunday {
			t.Fatalf("%s: grid starts on %s", m.Key, days[0].Date.Weekday())
		}
		if days[len(days)-1].Date.Weekday() != time.Saturday {
			t.Fatalf("%s: grid ends on %s", m.Key, days[len(days)-1].Date.Weekday())
		}
		if len(days)%7 != 0 {
			t.Fatalf("%s: %d days is not whole weeks", m.Key, len(days))
		}
		inMonth := 0
		for _, c := range days {
			if c.InMonth {
				inMonth++
			}
		}
		if len(days) < inMonth || inMonth != len(monthDays(m.Month)) {
			t.Fatalf("%s: %d in-month days", m.Key, inMonth)
		}
	}
}

func monthDays(first time.Time) []time.Time {
	var out []time.Time
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

func TestMonthViewCapsCells(t *testing.T) {
	var tasks []entity.Task
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		tasks = append(tasks, task(id, "2024-03-20", "", 30))
	}
	tasks = append(tasks, task("spill", "2024-02-27", "", 30))
	m := MonthView(day("2024-03-14"), tasks, Options{Now: now})

	var cell, spill Cell
	for _, c := range m.Days() {
		switch c.Key {
		case "2024-03-20":
			cell = c
		case "2024-02-27":
			spill = c
		}
	}
	if len(cell.Tasks) != DefaultMonthCap || cell.More != 2 || cell.Total != 5 {
		t.Fatalf("expected 3 shown and +2 more, got %d shown, %d more", len(cell.Tasks), cell.More)
	}
	if cell.Tasks[0].ID != "a" {
		t.Fatal("cell should keep task order")
	}
	if spill.InMonth || spill.Total != 1 {
		t.Fatalf("overflow day should still carry tasks, got %+v", spill)
	}

	m = MonthView(day("2024-03-14"), tasks, Options{Now: now, MonthCap: 4})
	for _, c := range m.Days() {
		if c.Key == "2024-03-20" && (len(c.Tasks) != 4 || c.More != 1) {
			t.Fatalf("cap 4: got %d shown, %d more", len(c.Tasks), c.More)
		}
		if c.Key == "2024-03-14" && !c.IsToday {
			t.Fatal("today not marked")
		}
	}
}

func TestDayViewScenario(t *testing.T) {
	report := task("Write report", "2024-03-14", "09:00", 90)
	d := DayView(day("2024-03-14"), []entity.Task{report}, Options{Now: now})
	if len(d.Slots) != SlotsPerDay || len(d.Blocks) != 1 {
		t.Fatalf("expected 48 slots and one block, got %d and %d", len(d.Slots), len(d.Blocks))
	}
	b := d.Blocks[0]
	covered := b.Covered()
	var times []string
	for _, i := range covered {
		times = append(times, d.Slots[i].Time)
	}
	if strings.Join(times, ",") != "09:00,09:30,10:00" {
		t.Fatalf("expected 09:00,09:30,10:00, got %v", times)
	}
	if b.Top != DefaultSlot*SlotHeight || b.Height != 3*SlotHeight {
		t.Fatalf("unexpected geometry %+v", b)
	}
}

func TestBlockGeometry(t *testing.T) {
	cases := []struct {
		minutes, span, height int
	}{
		{0, 1, 64},
		{10, 1, 64},
		{30, 1, 64},
		{31, 2, 128},
		{120, 4, 256},
	}
	for _, tc := range cases {
		b := newBlock(task("x", "2024-03-14", "23:30", tc.minutes), SlotFor(23, 30))
		if b.Span != tc.span || b.Height != tc.height {
			t.Errorf("%d minutes: got span %d height %d", tc.minutes, b.Span, b.Height)
		}
	}
	late := newBlock(task("late", "2024-03-14", "23:30", 120), SlotFor(23, 30))
	if got := late.Covered(); len(got) != 1 || got[0] != 47 {
		t.Fatalf("covered slots should clip to the day, got %v", got)
	}
}

func TestWeekBucketingPartitionsTasks(t *testing.T) {
	tasks := []entity.Task{
		task("sun-untimed", "2024-03-10", "", 30),
		task("mon-0915", "2024-03-11", "09:15", 30),
		task("mon-0900", "2024-03-11", "9:00", 60),
		task("sat-late", "2024-03-16", "23:59", 30),
		task("next-week", "2024-03-17", "10:00", 30),
		task("bad-date", "2024-13-40", "10:00", 30),
		task("bad-time", "2024-03-12", "25:00", 30),
		task("unscheduled", "", "", 30),
	}
	w := WeekView(day("2024-03-14"), tasks, Options{Now: now})
	if len(w.Columns) != 7 || w.Start != day("2024-03-10") || w.End != day("2024-03-16") {
		t.Fatalf("unexpected week range %s..%s", w.Start, w.End)
	}
	seen := map[string]int{}
	where := map[string]string{}
	for _, c := range w.Columns {
		for _, s := range c.Slots {
			for _, tk := range s.Tasks {
				seen[tk.ID]++
				where[tk.ID] = c.Key + " " + s.Time
			}
		}
	}
	want := map[string]string{
		"sun-untimed": "2024-03-10 09:00",
		"mon-0915":    "2024-03-11 09:00",
		"mon-0900":    "2024-03-11 09:00",
		"sat-late":    "2024-03-16 23:30",
	}
	if len(seen) != len(want) {
		t.Fatalf("unexpected tasks in view: %v", where)
	}
	for id, at := range want {
		if seen[id] != 1 {
			t.Errorf("%s appears %d times", id, seen[id])
		}
		if where[id] != at {
			t.Errorf("%s at %s, want %s", id, where[id], at)
		}
	}
}

func TestMalformedTasksAreSkipped(t *testing.T) {
	tasks := []entity.Task{
		task("bad-date", "14/03/2024", "", 30),
		task("bad-time", "2024-03-14", "noon", 30),
		task("good", "2024-03-14", "", 30),
	}
	d := DayView(day("2024-03-14"), tasks, Options{Now: now})
	if len(d.Blocks) != 1 || d.Blocks[0].Task.ID != "good" {
		t.Fatalf("expected only good task, got %+v", d.Blocks)
	}
	y := YearView(day("2024-03-14"), tasks)
	if y.Months[2].Count != 1 {
		t.Fatalf("year view should skip malformed tasks, got %d", y.Months[2].Count)
	}
}

func TestYearView(t *testing.T) {
	tasks := []entity.Task{
		task("a", "2024-01-05", "", 30),
		task("b", "2024-01-31", "08:00", 30),
		task("c", "2024-12-01", "", 30),
		task("other-year", "2023-01-05", "", 30),
	}
	y := YearView(day("2024-06-01"), tasks)
	if y.Year != 2024 || len(y.Months) != 12 {
		t.Fatalf("unexpected year %+v", y)
	}
	if y.Months[0].Count != 2 || y.Months[11].Count != 1 || y.Months[5].Count != 0 {
		t.Fatalf("unexpected counts %+v", y.Months)
	}
	if y.Months[0].Key != "2024-01" {
		t.Fatalf("unexpected key %s", y.Months[0].Key)
	}
}

func TestDerive(t *testing.T) {
	tasks := []entity.Task{task("a", "2024-03-14", "", 30)}
	for _, g := range Granularities() {
		v := Derive(NewNavigator(g, now), tasks, Options{Now: now})
		set := 0
		for _, ok := range []bool{v.Day != nil, v.Week != nil, v.Month != nil, v.Year != nil} {
			if ok {
				set++
			}
		}
		if set != 1 {
			t.Fatalf("%s: expected exactly one view, got %d", g, set)
		}
		if v.Title == "" {
			t.Fatalf("%s: missing title", g)
		}
	}
}

func TestRenderMini(t *testing.T) {
	m := MonthView(day("2024-03-14"), []entity.Task{task("a", "2024-03-20", "", 30)}, Options{Now: now})
	out := RenderMini(m, "2024-03-20", DefaultMiniStyle())
	lines := strings.Split(out, "\n")
	if len(lines) != len(m.Weeks)+1 {
		t.Fatalf("expected header plus %d weeks, got %d lines", len(m.Weeks), len(lines))
	}
	if !strings.Contains(lines[0], "Su Mo") || !strings.Contains(out, "31") {
		t.Fatalf("unexpected render:\n%s", out)
	}
}
