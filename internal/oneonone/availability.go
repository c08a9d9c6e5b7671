package oneonone

import (
	"context"
	"strings"
	"time"

	"github.com/teemow/cadence/internal/instrumentation"
	"github.com/teemow/cadence/internal/logging"
	"github.com/teemow/cadence/internal/model"
)

// Local business day boundaries, in hours.
const (
	workdayStartHour = 9
	workdayEndHour   = 17
	lunchStartHour   = 12
	lunchEndHour     = 13
)

// focusMarker in an event title protects a person's own calendar.
const focusMarker = "Focus"

// IsAvailable reports whether the person identified by email can take a
// 30-minute 1:1 starting at meetingTime.
//
// The slot must lie within 09:00 to 17:00 in the person's timezone, must not
// touch the 12:00 to 13:00 lunch hour, and must not overlap any event on
// their calendar with more than one attendee or with "Focus" in the title.
func (e *Engine) IsAvailable(ctx context.Context, meetingTime time.Time, email string) (bool, error) {
	p, err := e.Person(email)
	if err != nil {
		return false, err
	}
	ok, reason, err := e.isAvailable(ctx, meetingTime, p)
	if err != nil {
		return false, err
	}
	e.metrics.RecordAvailabilityCheck(ctx, reason)
	if !ok {
		e.logger.Debug("person unavailable",
			logging.UserHash(p.Email),
			logging.Slot(meetingTime),
			"reason", reason)
	}
	return ok, nil
}

func (e *Engine) isAvailable(ctx context.Context, meetingTime time.Time, p model.Person) (bool, string, error) {
	loc, err := personLocation(p)
	if err != nil {
		return false, "", err
	}

	start := meetingTime.In(loc)
	end := start.Add(SlotDuration)

	if !withinWorkday(start, end) {
		return false, instrumentation.AvailabilityOutsideHours, nil
	}
	if overlapsLunch(start, end) {
		return false, instrumentation.AvailabilityLunch, nil
	}

	events, err := e.cal.Search(ctx, "", start, end, p.Email)
	if err != nil {
		return false, "", transport("search", err)
	}
	for _, ev := range events {
		if len(ev.Attendees) > 1 || strings.Contains(ev.Title, focusMarker) {
			return false, instrumentation.AvailabilityConflict, nil
		}
	}
	return true, instrumentation.AvailabilityFree, nil
}

func personLocation(p model.Person) (*time.Location, error) {
	zone, err := ResolveTimezone(p)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, &MappingError{Kind: KindTimezone, Table: "iana", Key: zone}
	}
	return loc, nil
}

func clock(t time.Time, hour int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, hour, 0, 0, 0, t.Location())
}

func withinWorkday(start, end time.Time) bool {
	return !start.Before(clock(start, workdayStartHour)) && !end.After(clock(start, workdayEndHour))
}

func overlapsLunch(start, end time.Time) bool {
	return start.Before(clock(start, lunchEndHour)) && end.After(clock(start, lunchStartHour))
}
