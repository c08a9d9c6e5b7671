package oneonone

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/teemow/cadence/internal/logging"
	"github.com/teemow/cadence/internal/model"
)

// FreeSlots returns the start of every bookable 30-minute slot inside the
// organizer's slot blocks between start and end, ascending and without
// duplicates.
//
// A slot is taken only by a primary-calendar event with more than one
// attendee that the organizer has not declined. Single-attendee events such
// as focus blocks never take a slot.
func (e *Engine) FreeSlots(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	org := e.cfg.Organizer()
	logger := logging.WithOperation(e.logger, "free_slots")

	events, err := e.cal.Search(ctx, org.SlotTitle, start, end, e.slotCalendarID)
	if err != nil {
		return nil, transport("search", err)
	}
	blocks := make([]model.Event, 0, len(events))
	for _, ev := range events {
		if strings.Contains(strings.ToLower(ev.Title), strings.ToLower(org.SlotTitle)) {
			blocks = append(blocks, ev)
		}
	}
	if len(blocks) == 0 {
		logger.Info("no slot blocks found", "slot_title", org.SlotTitle)
		return []time.Time{}, nil
	}

	seen := make(map[int64]struct{})
	free := make([]time.Time, 0)
	for _, block := range blocks {
		for step := block.Start; step.Before(block.End); step = step.Add(SlotDuration) {
			if _, ok := seen[step.Unix()]; ok {
				continue
			}
			seen[step.Unix()] = struct{}{}

			taken, err := e.slotTaken(ctx, step, org.Email)
			if err != nil {
				return nil, err
			}
			if taken {
				logger.Debug("slot taken", logging.Slot(step))
				continue
			}
			free = append(free, step)
		}
	}

	sort.Slice(free, func(i, j int) bool { return free[i].Before(free[j]) })
	return free, nil
}

func (e *Engine) slotTaken(ctx context.Context, step time.Time, organizerEmail string) (bool, error) {
	events, err := e.cal.Search(ctx, "", step, step.Add(SlotDuration), PrimaryCalendar)
	if err != nil {
		return false, transport("search", err)
	}
	for _, ev := range events {
		if len(ev.Attendees) > 1 && !ev.Declined(organizerEmail) {
			return true, nil
		}
	}
	return false, nil
}
