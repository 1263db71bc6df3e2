package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/entity"
)

type taskRequest struct {
	Name             string       `json:"name"`
	Notes            string       `json:"notes"`
	Priority         entity.Level `json:"priority"`
	Urgency          entity.Level `json:"urgency"`
	EstimatedMinutes int          `json:"estimatedMinutes"`
	ProjectID        string       `json:"projectId"`
	ScheduledDate    string       `json:"scheduledDate"`
	ScheduledTime    string       `json:"scheduledTime"`
}

func (r taskRequest) draft() entity.TaskDraft {
	return entity.TaskDraft{
		Name:             r.Name,
		Notes:            r.Notes,
		Priority:         r.Priority,
		Urgency:          r.Urgency,
		EstimatedMinutes: r.EstimatedMinutes,
		ProjectID:        r.ProjectID,
		ScheduledDate:    r.ScheduledDate,
		ScheduledTime:    r.ScheduledTime,
	}
}

type scheduleRequest struct {
	Date string  `json:"date"`
	Time *string `json:"time"`
}

func (s *Server) listTasks(c echo.Context) error {
	f, err := app.ParseTaskFilter(c.QueryParam("filter"))
	if err != nil {
		return err
	}
	tasks := s.svc.FilterTasks(f)
	if project := c.QueryParam("project"); project != "" {
		out := make([]entity.Task, 0, len(tasks))
		for _, t := range tasks {
			if t.ProjectID == project {
				out = append(out, t)
			}
		}
		tasks = out
	}
	return c.JSON(http.StatusOK, tasks)
}

func (s *Server) createTask(c echo.Context) error {
	var req taskRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	t, err := s.svc.AddTask(c.Request().Context(), req.draft())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, t)
}

func (s *Server) getTask(c echo.Context) error {
	t, err := s.svc.Task(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

func (s *Server) updateTask(c echo.Context) error {
	var patch entity.TaskPatch
	if err := bind(c, &patch); err != nil {
		return err
	}
	t, err := s.svc.UpdateTask(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

func (s *Server) deleteTask(c echo.Context) error {
	if err := s.svc.DeleteTask(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) toggleTask(c echo.Context) error {
	t, err := s.svc.ToggleTaskCompletion(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

func (s *Server) scheduleTask(c echo.Context) error {
	var req scheduleRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	t, err := s.svc.RescheduleTask(c.Request().Context(), c.Param("id"), req.Date, req.Time)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

func (s *Server) unscheduleTask(c echo.Context) error {
	t, err := s.svc.UnscheduleTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

func (s *Server) rollOverdue(c echo.Context) error {
	moved, err := s.svc.RollOverdue(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, moved)
}
