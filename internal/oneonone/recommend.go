package oneonone

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/teemow/cadence/internal/instrumentation"
	"github.com/teemow/cadence/internal/logging"
	"github.com/teemow/cadence/internal/model"
)

// State is a step of the recommendation loop.
type State int

const (
	StateScanningSlots State = iota
	StateEvaluatingCandidate
	StateAwaitingConfirmation
	StateBooked
	StateSkipped
	StateStopped
	StateDone
)

func (s State) String() string {
	switch s {
	case StateScanningSlots:
		return "scanning_slots"
	case StateEvaluatingCandidate:
		return "evaluating_candidate"
	case StateAwaitingConfirmation:
		return "awaiting_confirmation"
	case StateBooked:
		return "booked"
	case StateSkipped:
		return "skipped"
	case StateStopped:
		return "stopped"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Decision is the operator's answer to a proposed match.
type Decision int

const (
	// DecisionConfirm books the match and moves to the next slot.
	DecisionConfirm Decision = iota
	// DecisionDecline tries the next candidate for the same slot.
	DecisionDecline
	// DecisionStop ends the run immediately.
	DecisionStop
)

func (d Decision) String() string {
	switch d {
	case DecisionConfirm:
		return "confirm"
	case DecisionDecline:
		return "decline"
	case DecisionStop:
		return "stop"
	default:
		return "unknown"
	}
}

// Match is a proposed pairing of a free slot and a due person.
type Match struct {
	Slot   time.Time
	Person model.Person
	Due    time.Time
}

// Decider solicits a decision for a proposed match.
type Decider interface {
	Decide(ctx context.Context, m Match) (Decision, error)
}

// DeciderFunc adapts a function to the Decider interface.
type DeciderFunc func(ctx context.Context, m Match) (Decision, error)

// Decide calls f.
func (f DeciderFunc) Decide(ctx context.Context, m Match) (Decision, error) {
	return f(ctx, m)
}

// Booking is a confirmed match and the event created for it. Event is the
// zero value in dry-run mode.
type Booking struct {
	Match
	Event model.Event
}

// RecommendResult summarizes one run of the recommendation loop.
type RecommendResult struct {
	Booked []Booking

	// Remaining lists the due people who were not booked, ascending by due
	// date. This is the run's deficit.
	Remaining []model.DueEntry

	Stopped bool
}

// Recommender pairs free slots with due people in priority order.
type Recommender struct {
	engine  *Engine
	decider Decider
	dryRun  bool
	logger  *slog.Logger
	state   State
}

// NewRecommender creates a Recommender. With dryRun set, confirmed matches
// are reported but not booked.
func NewRecommender(engine *Engine, decider Decider, dryRun bool) *Recommender {
	return &Recommender{
		engine:  engine,
		decider: decider,
		dryRun:  dryRun,
		logger:  logging.WithOperation(engine.logger, "recommend"),
		state:   StateScanningSlots,
	}
}

// State returns the state the loop is currently in, or ended in.
func (r *Recommender) State() State {
	return r.state
}

func (r *Recommender) enter(s State) {
	r.logger.Debug("state transition", "from", r.state.String(), "to", s.String())
	r.state = s
}

// Run walks slots in ascending order and, for each, offers the due people
// whose due date falls on or before rangeEnd, earliest first. Each slot is
// booked at most once and each person at most once per run.
//
// People whose availability cannot be determined (unknown person, no
// timezone mapping, unreadable calendar) are skipped with a warning. Booking
// failures and cancellation end the run.
func (r *Recommender) Run(ctx context.Context, rangeEnd time.Time, due []model.DueEntry, slots []time.Time) (*RecommendResult, error) {
	ctx, span := instrumentation.StartSpan(ctx, "oneonone.recommend",
		attribute.Bool(instrumentation.SpanAttrDryRun, r.dryRun))
	defer span.End()

	r.logger.Debug("recommendation started",
		"slots", len(slots),
		"due", len(due),
		"trace_id", instrumentation.GetTraceID(ctx),
	)

	pending := append([]model.DueEntry(nil), due...)
	cutoff := model.DateOnly(rangeEnd)
	result := &RecommendResult{}

	finish := func() *RecommendResult {
		result.Remaining = pending
		return result
	}

	for _, slot := range slots {
		if len(pending) == 0 {
			break
		}
		r.enter(StateScanningSlots)

		for i := 0; i < len(pending); i++ {
			entry := pending[i]
			if entry.Due.After(cutoff) {
				continue
			}
			r.enter(StateEvaluatingCandidate)

			p, err := r.engine.Person(entry.Email)
			if err != nil {
				r.logger.Warn("skipping unknown person", logging.UserHash(entry.Email), logging.Err(err))
				r.enter(StateSkipped)
				continue
			}
			ok, reason, err := r.engine.isAvailable(ctx, slot, p)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					instrumentation.RecordSpanError(span, ctxErr)
					return finish(), ctxErr
				}
				// Unmapped people and calendars we cannot read only cost
				// this candidate.
				r.logger.Warn("skipping person", logging.UserHash(p.Email), logging.Err(err))
				r.enter(StateSkipped)
				continue
			}
			r.engine.metrics.RecordAvailabilityCheck(ctx, reason)
			if !ok {
				continue
			}

			match := Match{Slot: slot, Person: p, Due: entry.Due}
			r.enter(StateAwaitingConfirmation)
			decision, err := r.decider.Decide(ctx, match)
			if err != nil {
				return finish(), fmt.Errorf("failed to get decision: %w", err)
			}

			switch decision {
			case DecisionConfirm:
				booking, err := r.book(ctx, match)
				if err != nil {
					r.engine.metrics.RecordBooking(ctx, instrumentation.StatusError)
					instrumentation.RecordSpanError(span, err)
					return finish(), err
				}
				r.engine.metrics.RecordBooking(ctx, instrumentation.StatusSuccess)
				result.Booked = append(result.Booked, booking)
				pending = append(pending[:i], pending[i+1:]...)
				r.enter(StateBooked)
			case DecisionDecline:
				r.enter(StateSkipped)
				continue
			case DecisionStop:
				r.enter(StateStopped)
				result.Stopped = true
				return finish(), nil
			default:
				return finish(), errors.New("unknown decision")
			}
			break
		}
	}

	r.enter(StateDone)
	return finish(), nil
}

func (r *Recommender) book(ctx context.Context, m Match) (Booking, error) {
	org := r.engine.cfg.Organizer()
	title := OneOnOneTitle(m.Person, org.FirstName())
	attendees := []string{m.Person.Email, org.Email}

	if r.dryRun {
		r.logger.Info("dry run, not booking",
			logging.UserHash(m.Person.Email),
			logging.Slot(m.Slot),
			"title", title)
		return Booking{Match: m}, nil
	}

	ev, err := r.engine.cal.Create(ctx, attendees, m.Slot, m.Slot.Add(SlotDuration), title)
	if err != nil {
		return Booking{}, transport("create", err)
	}
	r.logger.Info("booked 1:1",
		logging.UserHash(m.Person.Email),
		logging.Slot(m.Slot),
		"event_id", ev.ID)
	return Booking{Match: m, Event: ev}, nil
}
