package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/teemow/cadence/internal/instrumentation"
	"github.com/teemow/cadence/internal/logging"
	"github.com/teemow/cadence/internal/model"
)

// PrimaryCalendar is the calendar ID of the authenticated user's own calendar.
const PrimaryCalendar = "primary"

// sendUpdatesAll notifies every attendee when an event is created.
const sendUpdatesAll = "all"

// ErrCalendarNotFound is returned when no calendar matches a name.
var ErrCalendarNotFound = errors.New("calendar not found")

// Client wraps the Google Calendar service
type Client struct {
	svc     *calendar.Service
	account string // The account this client is associated with
	metrics *instrumentation.Metrics
	logger  *slog.Logger
}

// Options configures a Client.
type Options struct {
	Account string
	Metrics *instrumentation.Metrics
	Logger  *slog.Logger
}

// NewClient creates a Calendar client using an authenticated HTTP client.
func NewClient(ctx context.Context, httpClient *http.Client, opts Options) (*Client, error) {
	return NewClientWithOptions(ctx, opts, option.WithHTTPClient(httpClient))
}

// NewClientWithOptions creates a Calendar client from raw API client options.
func NewClientWithOptions(ctx context.Context, opts Options, clientOpts ...option.ClientOption) (*Client, error) {
	svc, err := calendar.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Account != "" {
		logger = logging.WithAccount(logger, opts.Account)
	}

	return &Client{
		svc:     svc,
		account: opts.Account,
		metrics: opts.Metrics,
		logger:  logger,
	}, nil
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// Search returns the events on calendarID that overlap [start, end], expanded
// into single instances and ordered by start time. An empty query matches
// every event. Cancelled events are dropped.
func (c *Client) Search(ctx context.Context, query string, start, end time.Time, calendarID string) (events []model.Event, err error) {
	ctx, span := instrumentation.StartCalendarSpan(ctx, instrumentation.OperationSearch, calendarID)
	defer span.End()
	defer c.observe(ctx, instrumentation.OperationSearch, time.Now(), &err)

	call := c.svc.Events.List(calendarID).
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime")
	if query != "" {
		call = call.Q(query)
	}

	err = call.Pages(ctx, func(page *calendar.Events) error {
		for _, item := range page.Items {
			if item == nil || item.Status == "cancelled" {
				continue
			}
			events = append(events, toEvent(item))
		}
		return nil
	})
	if err != nil {
		instrumentation.RecordSpanError(span, err)
		return nil, fmt.Errorf("failed to list events on %s: %w", calendarID, err)
	}

	span.SetAttributes(attributeEventCount(len(events)))
	c.logger.Debug("calendar search",
		logging.Calendar(calendarID),
		"query", query,
		"events", len(events))
	return events, nil
}

// Create books an event on the primary calendar and sends invitations to
// every attendee.
func (c *Client) Create(ctx context.Context, attendees []string, start, end time.Time, title string) (ev model.Event, err error) {
	ctx, span := instrumentation.StartCalendarSpan(ctx, instrumentation.OperationCreate, PrimaryCalendar)
	defer span.End()
	defer c.observe(ctx, instrumentation.OperationCreate, time.Now(), &err)

	event := &calendar.Event{
		Summary: title,
		Start: &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
		},
	}
	for _, email := range attendees {
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{Email: email})
	}

	created, err := c.svc.Events.Insert(PrimaryCalendar, event).
		SendUpdates(sendUpdatesAll).
		Context(ctx).
		Do()
	if err != nil {
		instrumentation.RecordSpanError(span, err)
		return model.Event{}, fmt.Errorf("failed to create event: %w", err)
	}

	instrumentation.SetSpanSuccess(span)
	return toEvent(created), nil
}

// ListCalendars lists all calendars accessible to the user
func (c *Client) ListCalendars(ctx context.Context) (calendars []CalendarInfo, err error) {
	defer c.observe(ctx, instrumentation.OperationListCalendars, time.Now(), &err)

	err = c.svc.CalendarList.List().Pages(ctx, func(list *calendar.CalendarList) error {
		for _, entry := range list.Items {
			calendars = append(calendars, toCalendarInfo(entry))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}
	return calendars, nil
}

// CalendarIDByName returns the ID of the calendar whose summary equals name.
// An empty name or "primary" resolves to the primary calendar.
func (c *Client) CalendarIDByName(ctx context.Context, name string) (string, error) {
	if name == "" || name == PrimaryCalendar {
		return PrimaryCalendar, nil
	}
	calendars, err := c.ListCalendars(ctx)
	if err != nil {
		return "", err
	}
	for _, cal := range calendars {
		if cal.Summary == name {
			return cal.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrCalendarNotFound, name)
}

// AccessResult is the outcome of probing one calendar.
type AccessResult struct {
	CalendarID string
	Err        error
}

// OK reports whether the calendar could be read.
func (r AccessResult) OK() bool {
	return r.Err == nil
}

// ValidateAccess probes each calendar by listing its events over the day
// starting at from. It never fails as a whole; per-calendar errors are
// reported in the results, which keep the input order.
func (c *Client) ValidateAccess(ctx context.Context, calendarIDs []string, from time.Time) []AccessResult {
	results := make([]AccessResult, 0, len(calendarIDs))
	for _, id := range calendarIDs {
		if err := ctx.Err(); err != nil {
			results = append(results, AccessResult{CalendarID: id, Err: err})
			continue
		}
		_, err := c.Search(ctx, "", from, from.Add(24*time.Hour), id)
		if err != nil {
			c.logger.Warn("calendar not readable", logging.Calendar(id), logging.Err(err))
		}
		results = append(results, AccessResult{CalendarID: id, Err: err})
	}
	return results
}

func (c *Client) observe(ctx context.Context, operation string, started time.Time, err *error) {
	status := instrumentation.StatusSuccess
	if *err != nil {
		status = instrumentation.StatusError
	}
	elapsed := time.Since(started)
	c.metrics.RecordCalendarOperation(ctx, operation, status, elapsed)
	c.logger.Debug("calendar call",
		logging.Operation(operation),
		logging.Status(status),
		logging.Duration(elapsed),
	)
}
