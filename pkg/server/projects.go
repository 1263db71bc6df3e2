package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tableflip.dev/planner/pkg/entity"
)

type projectRequest struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

type deleteProjectResponse struct {
	ID           string `json:"id"`
	TasksRemoved int    `json:"tasksRemoved"`
}

func (s *Server) listProjects(c echo.Context) error {
	return c.JSON(http.StatusOK, s.svc.Projects())
}

func (s *Server) projectStats(c echo.Context) error {
	return c.JSON(http.StatusOK, s.svc.ProjectStats())
}

func (s *Server) createProject(c echo.Context) error {
	var req projectRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	p, err := s.svc.AddProject(c.Request().Context(), entity.ProjectDraft{
		Name:        req.Name,
		Color:       req.Color,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

func (s *Server) updateProject(c echo.Context) error {
	var patch entity.ProjectPatch
	if err := bind(c, &patch); err != nil {
		return err
	}
	p, err := s.svc.UpdateProject(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) deleteProject(c echo.Context) error {
	id := c.Param("id")
	n, err := s.svc.DeleteProject(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteProjectResponse{ID: id, TasksRemoved: n})
}
