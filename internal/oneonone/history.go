package oneonone

import (
	"context"
	"sort"
	"time"

	"github.com/teemow/cadence/internal/logging"
	"github.com/teemow/cadence/internal/model"
)

// LastOneOnOne returns the most recent 1:1 with the person identified by
// email within the last daysBack days, or nil when there is none. Events
// every attendee declined are ignored.
func (e *Engine) LastOneOnOne(ctx context.Context, email string, daysBack int) (*model.Event, error) {
	p, err := e.Person(email)
	if err != nil {
		return nil, err
	}
	return e.lastOneOnOne(ctx, p, daysBack)
}

func (e *Engine) lastOneOnOne(ctx context.Context, p model.Person, daysBack int) (*model.Event, error) {
	end := e.now()
	start := end.AddDate(0, 0, -daysBack)

	events, err := e.cal.Search(ctx, p.FirstName(), start, end, PrimaryCalendar)
	if err != nil {
		return nil, transport("search", err)
	}

	organizerFirst := e.cfg.Organizer().FirstName()
	matches := make([]model.Event, 0, len(events))
	for _, ev := range events {
		if !IsOneOnOne(ev, p, organizerFirst) || ev.AllDeclined() {
			continue
		}
		matches = append(matches, ev)
	}
	if len(matches) == 0 {
		e.logger.Debug("no recent 1:1 found",
			logging.UserHash(p.Email),
			"days_back", daysBack)
		return nil, nil
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Start.After(matches[j].Start)
	})
	last := matches[0]
	return &last, nil
}

// lookbackBase is the clock used for people without a recent 1:1.
func (e *Engine) lookbackBase(daysBack int) time.Time {
	return e.now().AddDate(0, 0, -daysBack)
}
