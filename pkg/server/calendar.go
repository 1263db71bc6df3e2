package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/dnd"
	"tableflip.dev/planner/pkg/entity"
	"tableflip.dev/planner/pkg/habits"
	"tableflip.dev/planner/pkg/timeutil"
)

type dropRequest struct {
	ID     string     `json:"id"`
	Target dnd.Target `json:"target"`
}

type dashboardResponse struct {
	Today    string            `json:"today"`
	Schedule []entity.Task     `json:"schedule"`
	Upcoming []entity.Task     `json:"upcoming"`
	Overdue  []entity.Task     `json:"overdue"`
	Projects []app.ProjectStat `json:"projects"`
	Habits   habits.Summary    `json:"habits"`
}

func (s *Server) calendarView(c echo.Context) error {
	g, err := calendar.ParseGranularity(c.Param("granularity"))
	if err != nil {
		return err
	}
	anchor := s.now()
	if on := c.QueryParam("on"); on != "" {
		anchor, err = timeutil.ParseDate(on, s.now().Location())
		if err != nil {
			return fmt.Errorf("server: %w: on must be YYYY-MM-DD", app.ErrValidation)
		}
	}
	nav := calendar.NewNavigator(g, anchor)
	view := calendar.Derive(nav, s.svc.Tasks(), calendar.Options{Now: s.now(), MonthCap: s.opts.MonthCap})
	return c.JSON(http.StatusOK, view)
}

func (s *Server) drop(c echo.Context) error {
	var req dropRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	id, err := dnd.DecodePayload(req.ID)
	if err != nil {
		return fmt.Errorf("server: %w: %v", app.ErrValidation, err)
	}
	t, err := dnd.Apply(c.Request().Context(), s.svc, id, req.Target)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

func (s *Server) dashboard(c echo.Context) error {
	f, err := app.ParseTaskFilter(c.QueryParam("filter"))
	if err != nil {
		return err
	}
	now := s.now()
	return c.JSON(http.StatusOK, dashboardResponse{
		Today:    timeutil.FormatDate(now),
		Schedule: s.svc.TodaysSchedule(),
		Upcoming: s.svc.Widget(f, app.DefaultWidgetLimit),
		Overdue:  s.svc.OverdueTasks(),
		Projects: s.svc.ProjectStats(),
		Habits:   habits.Summarize(s.svc.Habits(), timeutil.MonthKey(now), now),
	})
}
