package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"google.golang.org/api/calendar/v3"
)

// Calendar boundary actions.
const (
	actionAuthURL     = "getAuthUrl"
	actionListEvents  = "listEvents"
	actionCreateEvent = "createEvent"
)

var errGoogleDisabled = errors.New("google calendar is not configured")

type googleRequest struct {
	Action      string          `json:"action"`
	AccessToken string          `json:"accessToken"`
	CalendarID  string          `json:"calendarId"`
	Event       *calendar.Event `json:"event"`
}

type authURLResponse struct {
	AuthURL string `json:"authUrl"`
}

type eventsResponse struct {
	Items []*calendar.Event `json:"items"`
}

// googleCalendar multiplexes the calendar boundary on the action field.
// Unknown actions are a 400; any failure talking to Google is a 500.
func (s *Server) googleCalendar(c echo.Context) error {
	var req googleRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	switch req.Action {
	case actionAuthURL, actionListEvents, actionCreateEvent:
	default:
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid action"})
	}
	s.logger.WithField("action", req.Action).WithField("calendarId", req.CalendarID).Info("server: google calendar request")

	if s.opts.Google == nil {
		return s.googleFailure(c, errGoogleDisabled)
	}
	ctx := c.Request().Context()

	switch req.Action {
	case actionAuthURL:
		return c.JSON(http.StatusOK, authURLResponse{AuthURL: s.opts.Google.AuthURL("")})

	case actionListEvents:
		events, err := s.opts.Google.ListEvents(ctx, req.AccessToken, req.CalendarID)
		if err != nil {
			return s.googleFailure(c, err)
		}
		return c.JSON(http.StatusOK, eventsResponse{Items: events})

	default:
		if req.Event == nil {
			return s.googleFailure(c, errors.New("createEvent needs an event"))
		}
		created, err := s.opts.Google.CreateEvent(ctx, req.AccessToken, req.CalendarID, req.Event)
		if err != nil {
			return s.googleFailure(c, err)
		}
		return c.JSON(http.StatusOK, created)
	}
}

func (s *Server) googleFailure(c echo.Context, err error) error {
	s.logger.WithError(err).Error("server: google calendar request failed")
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
}

