// Package theme holds the light/dark mode shared by every surface and the
// Lip Gloss styles derived from it.
package theme

import (
	"fmt"
	"strings"
	"sync"

	"github.com/muesli/termenv"
)

// Mode is the color scheme.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
	// Auto asks the terminal; it is only accepted as a setting and never
	// reported by Manager.Mode.
	Auto Mode = "auto"
)

// ParseMode accepts light, dark or auto; empty means auto.
func ParseMode(raw string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(raw))); m {
	case "":
		return Auto, nil
	case Light, Dark, Auto:
		return m, nil
	}
	return Auto, fmt.Errorf("theme: unknown mode %q (want light, dark or auto)", raw)
}

// Opposite returns the other mode.
func (m Mode) Opposite() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// Detect resolves Auto from the terminal background.
var Detect = func() Mode {
	if termenv.HasDarkBackground() {
		return Dark
	}
	return Light
}

// Resolve turns a setting into a concrete mode.
func Resolve(m Mode) Mode {
	if m == Light || m == Dark {
		return m
	}
	return Detect()
}

// Manager is the process-wide theme switch.
type Manager struct {
	mu      sync.Mutex
	mode    Mode
	subs    map[int]func(Mode)
	nextSub int
}

// NewManager starts in setting, resolving Auto.
func NewManager(setting Mode) *Manager {
	return &Manager{mode: Resolve(setting), subs: make(map[int]func(Mode))}
}

// Mode returns the current mode.
func (m *Manager) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// Set switches to mode and notifies subscribers when it changed.
func (m *Manager) Set(mode Mode) Mode {
	mode = Resolve(mode)
	m.mu.Lock()
	if m.mode == mode {
		m.mu.Unlock()
		return mode
	}
	m.mode = mode
	fns := m.snapshot()
	m.mu.Unlock()
	for _, fn := range fns {
		fn(mode)
	}
	return mode
}

// Toggle flips between light and dark and returns the new mode.
func (m *Manager) Toggle() Mode {
	return m.Set(m.Mode().Opposite())
}

// Subscribe calls fn after every change and returns an unsubscribe func.
func (m *Manager) Subscribe(fn func(Mode)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

func (m *Manager) snapshot() []func(Mode) {
	fns := make([]func(Mode), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	return fns
}

// GlamourStyle names the glamour standard style for mode.
func GlamourStyle(m Mode) string {
	if m == Light {
		return "light"
	}
	return "dark"
}
