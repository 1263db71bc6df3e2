package commands

import (
	"context"
	"fmt"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/config"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/theme"
)

// openService loads settings and opens the configured store. One-shot
// commands run strict so a failed save fails the command.
func openService(ctx context.Context) (*app.Service, *config.Settings, error) {
	s, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	backend, err := store.Open(ctx, s.Store)
	if err != nil {
		return nil, nil, err
	}
	svc, err := app.Open(ctx, backend)
	if err != nil {
		return nil, nil, err
	}
	svc.Strict = true
	return svc, s, nil
}

// themeManager resolves the configured theme.
func themeManager(s *config.Settings) (*theme.Manager, error) {
	mode, err := theme.ParseMode(s.Theme)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return theme.NewManager(mode), nil
}

// newPrinter builds the terminal printer, rendering notes for the theme.
func newPrinter(s *config.Settings, showID bool) *printers.PrettyPrint {
	pp := printers.New()
	pp.ShowID = showID
	if tm, err := themeManager(s); err == nil {
		pp.NoteStyle = theme.GlamourStyle(tm.Mode())
	}
	return pp
}
