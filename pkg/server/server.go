// Package server exposes the planner over a local JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/gcal"
)

// Options configure a Server.
type Options struct {
	// JWTSecret enables HS256 bearer auth on /api when set.
	JWTSecret string
	// Google serves POST /api/google-calendar; nil answers every action
	// with an integration error.
	Google *gcal.Client
	// MonthCap limits tasks per month cell in calendar responses.
	MonthCap int
	// Now is the clock; defaults to time.Now.
	Now func() time.Time
	// Logger receives request logs; defaults to the logrus standard logger.
	Logger *log.Logger
}

// Server is the HTTP front of an app.Service.
type Server struct {
	Echo *echo.Echo

	svc    *app.Service
	opts   Options
	logger *log.Logger
}

// New builds the Echo instance and registers every route.
func New(svc *app.Service, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = sonicSerializer{}
	e.HTTPErrorHandler = errorHandler(logger)
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(requestLogger(logger))

	s := &Server{Echo: e, svc: svc, opts: opts, logger: logger}
	s.register()
	return s
}

func (s *Server) now() time.Time {
	if s.opts.Now != nil {
		return s.opts.Now()
	}
	return time.Now()
}

func (s *Server) register() {
	e := s.Echo
	e.GET("/healthz", s.healthz)

	api := e.Group("/api")
	if s.opts.JWTSecret != "" {
		api.Use(bearerAuth(NewAuth([]byte(s.opts.JWTSecret))))
	}

	api.GET("/tasks", s.listTasks)
	api.POST("/tasks", s.createTask)
	api.POST("/tasks/rollover", s.rollOverdue)
	api.GET("/tasks/:id", s.getTask)
	api.PATCH("/tasks/:id", s.updateTask)
	api.DELETE("/tasks/:id", s.deleteTask)
	api.POST("/tasks/:id/toggle", s.toggleTask)
	api.POST("/tasks/:id/schedule", s.scheduleTask)
	api.POST("/tasks/:id/unschedule", s.unscheduleTask)

	api.GET("/projects", s.listProjects)
	api.POST("/projects", s.createProject)
	api.GET("/projects/stats", s.projectStats)
	api.PATCH("/projects/:id", s.updateProject)
	api.DELETE("/projects/:id", s.deleteProject)

	api.GET("/habits", s.listHabits)
	api.POST("/habits", s.createHabit)
	api.POST("/habits/copy", s.copyHabits)
	api.GET("/habits/progress", s.habitProgress)
	api.PATCH("/habits/:id", s.renameHabit)
	api.DELETE("/habits/:id", s.deleteHabit)
	api.POST("/habits/:id/toggle", s.toggleHabit)

	api.GET("/calendar/:granularity", s.calendarView)
	api.POST("/dnd/drop", s.drop)
	api.GET("/dashboard", s.dashboard)

	api.POST("/google-calendar", s.googleCalendar)
}

func (s *Server) healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("server: listening")
		errCh <- s.Echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func requestLogger(logger *log.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			req := c.Request()
			logger.WithFields(log.Fields{
				"method":  req.Method,
				"path":    req.URL.Path,
				"status":  c.Response().Status,
				"latency": time.Since(start).String(),
			}).Debug("server: request")
			return nil
		}
	}
}
