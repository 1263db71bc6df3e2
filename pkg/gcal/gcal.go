// Package gcal is the Google Calendar boundary: building the consent URL,
// listing upcoming events and creating events from tasks. Nothing here
// touches the entity store, and every failure is reported as
// ErrIntegration so callers can degrade to "not connected".
package gcal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"tableflip.dev/planner/pkg/entity"
	"tableflip.dev/planner/pkg/timeutil"
)

const (
	// DefaultRedirectURI receives the OAuth callback when none is configured.
	DefaultRedirectURI = "http://localhost:8080/auth/callback"
	// DefaultCalendarID is the signed-in user's main calendar.
	DefaultCalendarID = "primary"
	// MaxResults caps ListEvents.
	MaxResults = 50
	// TaskIDProperty is the private extended property carrying a task id.
	TaskIDProperty = "plannerTaskId"
)

var (
	// ErrIntegration wraps every failure of the calendar boundary.
	ErrIntegration = errors.New("gcal: calendar integration failed")

	errNoToken    = errors.New("no access token")
	errUnschedule = errors.New("task has no scheduled date")
)

// Config holds the OAuth client credentials.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// Client talks to Google Calendar on behalf of whoever holds the access
// token passed to each call.
type Client struct {
	oauth *oauth2.Config
	opts  []option.ClientOption

	// Now is the clock used for timeMin; defaults to time.Now.
	Now func() time.Time
}

// New builds a Client. opts are passed to the calendar service, which is
// how tests point it at a fake endpoint.
func New(cfg Config, opts ...option.ClientOption) *Client {
	redirect := cfg.RedirectURI
	if redirect == "" {
		redirect = DefaultRedirectURI
	}
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  redirect,
			Scopes:       []string{calendar.CalendarScope},
			Endpoint:     google.Endpoint,
		},
		opts: opts,
	}
}

func (c *Client) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func wrap(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrIntegration, op, err)
}

// AuthURL is the consent page asking for offline calendar access.
func (c *Client) AuthURL(state string) string {
	return c.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
}

// Exchange trades an authorization code for a token.
func (c *Client) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, wrap("exchange code", err)
	}
	return tok, nil
}

func (c *Client) service(ctx context.Context, accessToken string) (*calendar.Service, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, wrap("connect", errNoToken)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	opts := append([]option.ClientOption{option.WithTokenSource(ts)}, c.opts...)
	srv, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, wrap("connect", err)
	}
	return srv, nil
}

func calendarOrDefault(id string) string {
	if id == "" {
		return DefaultCalendarID
	}
	return id
}

// ListEvents returns up to MaxResults upcoming single events ordered by
// start time.
func (c *Client) ListEvents(ctx context.Context, accessToken, calendarID string) ([]*calendar.Event, error) {
	srv, err := c.service(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	events, err := srv.Events.List(calendarOrDefault(calendarID)).
		TimeMin(c.now().Format(time.RFC3339)).
		MaxResults(MaxResults).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrap("list events", err)
	}
	return events.Items, nil
}

// CreateEvent inserts event into the calendar.
func (c *Client) CreateEvent(ctx context.Context, accessToken, calendarID string, event *calendar.Event) (*calendar.Event, error) {
	if event == nil {
		return nil, wrap("create event", errors.New("no event"))
	}
	srv, err := c.service(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	created, err := srv.Events.Insert(calendarOrDefault(calendarID), event).Context(ctx).Do()
	if err != nil {
		return nil, wrap("create event", err)
	}
	return created, nil
}

// EventFromTask converts a scheduled task into an event in loc. Timed
// tasks last their estimate; untimed tasks become all-day events.
func EventFromTask(t entity.Task, loc *time.Location) (*calendar.Event, error) {
	if loc == nil {
		loc = time.Local
	}
	day, ok := t.Date(loc)
	if !ok {
		return nil, wrap("convert task", errUnschedule)
	}
	ev := &calendar.Event{
		Summary:     t.Name,
		Description: t.Notes,
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{TaskIDProperty: t.ID},
		},
	}
	if t.Completed {
		ev.Summary = "✓ " + t.Name
	}
	h, m, timed := t.Clock()
	if !timed {
		ev.Start = &calendar.EventDateTime{Date: timeutil.FormatDate(day)}
		ev.End = &calendar.EventDateTime{Date: timeutil.FormatDate(day.AddDate(0, 0, 1))}
		return ev, nil
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, loc)
	end := start.Add(time.Duration(t.EstimatedMinutes) * time.Minute)
	zone := loc.String()
	ev.Start = &calendar.EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: zone}
	ev.End = &calendar.EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: zone}
	return ev, nil
}

// TaskID reads the task id back out of an event created by EventFromTask.
func TaskID(ev *calendar.Event) (string, bool) {
	if ev == nil || ev.ExtendedProperties == nil {
		return "", false
	}
	id, ok := ev.ExtendedProperties.Private[TaskIDProperty]
	return id, ok && id != ""
}

// Connection pairs a Client with the current user's token.
type Connection struct {
	Client     *Client
	Token      string
	CalendarID string
	Location   *time.Location
}

// Connected reports whether calls can be attempted at all.
func (c *Connection) Connected() bool {
	return c != nil && c.Client != nil && strings.TrimSpace(c.Token) != ""
}

// Upcoming lists upcoming events, or ErrIntegration when not connected.
func (c *Connection) Upcoming(ctx context.Context) ([]*calendar.Event, error) {
	if !c.Connected() {
		return nil, wrap("list events", errNoToken)
	}
	return c.Client.ListEvents(ctx, c.Token, c.CalendarID)
}

// Push creates an event for a scheduled task.
func (c *Connection) Push(ctx context.Context, t entity.Task) (*calendar.Event, error) {
	if !c.Connected() {
		return nil, wrap("create event", errNoToken)
	}
	ev, err := EventFromTask(t, c.Location)
	if err != nil {
		return nil, err
	}
	return c.Client.CreateEvent(ctx, c.Token, c.CalendarID, ev)
}
