package oneonone

import (
	"context"
	"fmt"
	"time"

	"github.com/teemow/cadence/internal/instrumentation"
	"github.com/teemow/cadence/internal/logging"
	"github.com/teemow/cadence/internal/model"
)

// NextDue returns when the next 1:1 with the person identified by email is
// owed: the last qualifying 1:1 plus the person's cadence, or, without a
// recent 1:1, daysBack days ago plus the cadence.
func (e *Engine) NextDue(ctx context.Context, email string, daysBack int) (time.Time, error) {
	p, err := e.Person(email)
	if err != nil {
		return time.Time{}, err
	}
	return e.nextDue(ctx, p, daysBack)
}

func (e *Engine) nextDue(ctx context.Context, p model.Person, daysBack int) (time.Time, error) {
	weeks, err := CadenceWeeks(p, e.cfg)
	if err != nil {
		return time.Time{}, err
	}

	last, err := e.lastOneOnOne(ctx, p, daysBack)
	if err != nil {
		return time.Time{}, err
	}

	base := e.lookbackBase(daysBack)
	if last != nil {
		base = last.Start
	}
	return base.AddDate(0, 0, weeks*7), nil
}

// RefreshDueDates recomputes the due date of every eligible person and
// replaces the stored snapshot with the result. People without a cadence
// mapping are skipped. Calendar failures abort the refresh before anything
// is written.
func (e *Engine) RefreshDueDates(ctx context.Context, daysBack int, store SnapshotStore) (model.DueDates, error) {
	ctx, span := instrumentation.StartSpan(ctx, "oneonone.refresh")
	defer span.End()

	logger := logging.WithOperation(e.logger, "refresh")
	now := e.now()

	due := model.DueDates{}
	var ineligible, unmapped int
	for _, p := range e.dir.All() {
		if !IsEligible(p, e.cfg, now) {
			ineligible++
			logger.Debug("skipping ineligible person", logging.UserHash(p.Email))
			continue
		}

		next, err := e.nextDue(ctx, p, daysBack)
		if err != nil {
			if IsMapping(err) {
				unmapped++
				logger.Warn("skipping person without cadence", logging.UserHash(p.Email), logging.Err(err))
				continue
			}
			instrumentation.RecordSpanError(span, err)
			return nil, fmt.Errorf("failed to compute due date for %s: %w", p.Email, err)
		}
		due[p.Email] = model.DateOnly(next)
	}

	if err := store.Save(ctx, due); err != nil {
		instrumentation.RecordSpanError(span, err)
		return nil, fmt.Errorf("failed to save due dates: %w", err)
	}

	e.metrics.RecordDueRefresh(ctx, instrumentation.OutcomeScheduled, len(due))
	e.metrics.RecordDueRefresh(ctx, instrumentation.OutcomeIneligible, ineligible)
	e.metrics.RecordDueRefresh(ctx, instrumentation.OutcomeUnmapped, unmapped)
	logger.Info("refreshed due dates",
		"scheduled", len(due),
		"ineligible", ineligible,
		"unmapped", unmapped)
	return due, nil
}
