package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/entity"
	"tableflip.dev/planner/pkg/habits"
	"tableflip.dev/planner/pkg/timeutil"
)

type habitRequest struct {
	Name     string `json:"name"`
	MonthKey string `json:"monthKey"`
}

type renameRequest struct {
	Name string `json:"name"`
}

type toggleHabitRequest struct {
	Date string `json:"date"`
}

type copyHabitsRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// month reads ?month=, defaulting to the current month.
func (s *Server) month(c echo.Context) (string, error) {
	key := c.QueryParam("month")
	if key == "" {
		return timeutil.MonthKey(s.now()), nil
	}
	if _, err := timeutil.ParseMonthKey(key, nil); err != nil {
		return "", fmt.Errorf("server: %w: month must be YYYY-MM", app.ErrValidation)
	}
	return key, nil
}

func (s *Server) listHabits(c echo.Context) error {
	key, err := s.month(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.svc.HabitsForMonth(key))
}

func (s *Server) createHabit(c echo.Context) error {
	var req habitRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	h, err := s.svc.AddHabit(c.Request().Context(), entity.HabitDraft{Name: req.Name, MonthKey: req.MonthKey})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, h)
}

func (s *Server) renameHabit(c echo.Context) error {
	var req renameRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	h, err := s.svc.UpdateHabitName(c.Request().Context(), c.Param("id"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h)
}

func (s *Server) deleteHabit(c echo.Context) error {
	if err := s.svc.DeleteHabit(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) toggleHabit(c echo.Context) error {
	var req toggleHabitRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	h, err := s.svc.ToggleHabitCompletion(c.Request().Context(), c.Param("id"), req.Date)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h)
}

func (s *Server) copyHabits(c echo.Context) error {
	var req copyHabitsRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	created, err := s.svc.CopyHabitsToMonth(c.Request().Context(), req.From, req.To)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, created)
}

func (s *Server) habitProgress(c echo.Context) error {
	key, err := s.month(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, habits.Summarize(s.svc.Habits(), key, s.now()))
}
