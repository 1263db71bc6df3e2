package teaui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/theme"
	"tableflip.dev/planner/pkg/timer"
)

// Thursday.
var fixedNow = time.Date(2024, time.March, 14, 10, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T) (Model, *app.Service) {
	t.Helper()
	svc, err := app.Open(context.Background(), store.NewMemory())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	svc.Now = func() time.Time { return fixedNow }
	svc.Strict = true
	tm := timer.New(1)
	tm.Now = func() time.Time { return fixedNow }
	m := New(svc, Options{
		Theme:    theme.NewManager(theme.Dark),
		Timer:    tm,
		MonthCap: 2,
		Now:      func() time.Time { return fixedNow },
	})
	return m, svc
}

func keyMsg(k string) tea.KeyPressMsg {
	switch k {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	}
	r := []rune(k)[0]
	return tea.KeyPressMsg{Code: r, Text: k}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m
}

func TestGranularityKeys(t *testing.T) {
	m, _ := newTestModel(t)
	if m.nav.Granularity != calendar.GranularityMonth {
		t.Fatalf("expected month view on start, got %s", m.nav.Granularity)
	}

	tests := []struct {
		key  string
		want calendar.Granularity
	}{
		{"d", calendar.GranularityDay},
		{"w", calendar.GranularityWeek},
		{"y", calendar.GranularityYear},
		{"m", calendar.GranularityMonth},
	}
	for _, tc := range tests {
		m = press(t, m, tc.key)
		if m.nav.Granularity != tc.want {
			t.Fatalf("after %q: granularity = %s, want %s", tc.key, m.nav.Granularity, tc.want)
		}
	}
}

func TestPrevNextAndToday(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "h")
	if got := m.nav.Anchor.Month(); got != time.February {
		t.Fatalf("after h: month = %s, want February", got)
	}
	m = press(t, m, "l", "l")
	if got := m.nav.Anchor.Month(); got != time.April {
		t.Fatalf("after l l: month = %s, want April", got)
	}
	m = press(t, m, "t")
	if !m.nav.Anchor.Equal(time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("after t: anchor = %s", m.nav.Anchor)
	}

	m = press(t, m, "w", "l")
	if got := m.cursor.Format("2006-01-02"); got != "2024-03-21" {
		t.Fatalf("next week cursor = %s", got)
	}
}

func TestMonthCursorFollowsIntoNextMonth(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "down", "down", "down")
	if got := m.cursor.Format("2006-01-02"); got != "2024-04-04" {
		t.Fatalf("cursor = %s, want 2024-04-04", got)
	}
	if m.nav.Anchor.Month() != time.April {
		t.Fatalf("expected the view to follow into April, anchor %s", m.nav.Anchor)
	}
}

func TestYearDrillsIntoMonth(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "y", "right", "down", "enter")
	if m.nav.Granularity != calendar.GranularityMonth {
		t.Fatalf("expected drill into month, got %s", m.nav.Granularity)
	}
	if want := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC); !m.nav.Anchor.Equal(want) {
		t.Fatalf("anchor = %s, want %s", m.nav.Anchor, want)
	}
}

func TestDaySlotWindowFollowsCursor(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "d")

	for i := 0; i < windowSlots+2; i++ {
		m = press(t, m, "down")
	}
	if m.slot != calendar.DefaultSlot+windowSlots+2 {
		t.Fatalf("slot = %d", m.slot)
	}
	if m.slot < m.top || m.slot >= m.top+windowSlots {
		t.Fatalf("cursor slot %d outside window starting at %d", m.slot, m.top)
	}

	for i := 0; i < calendar.SlotsPerDay; i++ {
		m = press(t, m, "up")
	}
	if m.slot != 0 || m.top != 0 {
		t.Fatalf("expected to stop at midnight, slot %d top %d", m.slot, m.top)
	}
}

func TestThemeToggle(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "T")
	if m.styles.Mode != theme.Light || m.themes.Mode() != theme.Light {
		t.Fatalf("expected light after toggle, styles %s manager %s", m.styles.Mode, m.themes.Mode())
	}

	next, _ := m.Update(themeMsg{mode: theme.Dark})
	m = next.(Model)
	if m.styles.Mode != theme.Dark {
		t.Fatalf("expected pushed theme change to apply, got %s", m.styles.Mode)
	}
}

func TestTimerAlarmSwallowsNextKey(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "p")
	if m.timer.State() != timer.Running {
		t.Fatalf("expected running timer, got %s", m.timer.State())
	}

	next, cmd := m.Update(tickMsg(fixedNow.Add(61 * time.Second)))
	m = next.(Model)
	if cmd == nil {
		t.Fatalf("expected the clock to keep ticking")
	}
	if !m.ringing || m.timer.State() != timer.Alarm {
		t.Fatalf("expected alarm, ringing=%v state=%s", m.ringing, m.timer.State())
	}

	m = press(t, m, "d")
	if m.timer.State() != timer.Idle || m.ringing {
		t.Fatalf("expected acknowledged timer, state %s", m.timer.State())
	}
	if m.nav.Granularity != calendar.GranularityMonth {
		t.Fatalf("acknowledging key should not switch views")
	}
}
