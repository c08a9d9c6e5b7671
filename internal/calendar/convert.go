package calendar

import (
	"time"

	"go.opentelemetry.io/otel/attribute"
	calendar "google.golang.org/api/calendar/v3"

	"github.com/teemow/cadence/internal/instrumentation"
	"github.com/teemow/cadence/internal/model"
)

// CalendarInfo represents information about a calendar
type CalendarInfo struct {
	ID         string
	Summary    string
	TimeZone   string
	Primary    bool
	AccessRole string // "owner", "writer", "reader", "freeBusyReader"
}

// toEvent converts a Google Calendar event to a model.Event.
func toEvent(event *calendar.Event) model.Event {
	if event == nil {
		return model.Event{}
	}

	ev := model.Event{
		ID:    event.Id,
		Title: event.Summary,
		Start: parseEventTime(event.Start),
		End:   parseEventTime(event.End),
	}

	for _, att := range event.Attendees {
		if att == nil {
			continue
		}
		ev.Attendees = append(ev.Attendees, model.Attendee{
			Name:           att.DisplayName,
			Email:          att.Email,
			ResponseStatus: att.ResponseStatus,
		})
	}

	if event.Organizer != nil {
		org := model.Attendee{
			Name:  event.Organizer.DisplayName,
			Email: event.Organizer.Email,
		}
		for _, att := range ev.Attendees {
			if att.Email == org.Email {
				org.ResponseStatus = att.ResponseStatus
				if org.Name == "" {
					org.Name = att.Name
				}
				break
			}
		}
		ev.Organizer = &org
	}

	return ev
}

// parseEventTime returns the instant of a timed event, or midnight in the
// event's timezone (UTC if unknown) for an all-day event.
func parseEventTime(dt *calendar.EventDateTime) time.Time {
	if dt == nil {
		return time.Time{}
	}
	if dt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, dt.DateTime); err == nil {
			return t
		}
		return time.Time{}
	}
	if dt.Date != "" {
		loc := time.UTC
		if dt.TimeZone != "" {
			if l, err := time.LoadLocation(dt.TimeZone); err == nil {
				loc = l
			}
		}
		if t, err := time.ParseInLocation(model.DateLayout, dt.Date, loc); err == nil {
			return t
		}
	}
	return time.Time{}
}

// toCalendarInfo converts a Google Calendar list entry to CalendarInfo
func toCalendarInfo(entry *calendar.CalendarListEntry) CalendarInfo {
	if entry == nil {
		return CalendarInfo{}
	}
	return CalendarInfo{
		ID:         entry.Id,
		Summary:    entry.Summary,
		TimeZone:   entry.TimeZone,
		Primary:    entry.Primary,
		AccessRole: entry.AccessRole,
	}
}

func attributeEventCount(n int) attribute.KeyValue {
	return attribute.Int(instrumentation.SpanAttrEventCount, n)
}
