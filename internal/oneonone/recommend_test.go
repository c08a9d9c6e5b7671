package oneonone

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/teemow/cadence/internal/instrumentation"
	"github.com/teemow/cadence/internal/model"
)

// scriptedDecider answers with decisions in order and records every match.
type scriptedDecider struct {
	answers []Decision
	seen    []Match
}

func (d *scriptedDecider) Decide(_ context.Context, m Match) (Decision, error) {
	d.seen = append(d.seen, m)
	if len(d.answers) == 0 {
		return DecisionConfirm, nil
	}
	next := d.answers[0]
	d.answers = d.answers[1:]
	return next, nil
}

func due(email string, y int, m time.Month, d int) model.DueEntry {
	return model.DueEntry{Email: email, Due: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func TestRecommend_EndToEnd(t *testing.T) {
	ctx := context.Background()
	ny := mustLocation(t, "America/New_York")

	cal := newFakeCalendar()
	alice := person("Alice", "alice@x.com", "Engineer", "New York, NY, US")
	dana := person("Dana", "dana@x.com", "Staff Engineer", "New York, NY, US")
	e := newTestEngine(t, cal, alice, dana)

	lastMeeting := testNow.AddDate(0, 0, -21)
	cal.add(PrimaryCalendar, oneOnOne("Alice / Bob", lastMeeting, accepted("alice@x.com"), accepted(organizerEmail)))

	tomorrow10 := time.Date(2024, 3, 5, 10, 0, 0, 0, ny)
	cal.add(slotCalendar, slotBlock(tomorrow10, tomorrow10.Add(30*time.Minute)))

	store := &memStore{}
	_, err := e.RefreshDueDates(ctx, 30, store)
	require.NoError(t, err)
	assert.True(t, store.due["alice@x.com"].Equal(model.DateOnly(lastMeeting.AddDate(0, 0, 7))))
	assert.True(t, store.due["alice@x.com"].Before(testNow))

	rangeEnd := testNow.AddDate(0, 0, 7)
	slots, err := e.FreeSlots(ctx, testNow, rangeEnd)
	require.NoError(t, err)
	require.Len(t, slots, 1)

	snapshot, err := store.Load(ctx)
	require.NoError(t, err)

	decider := &scriptedDecider{}
	r := NewRecommender(e, decider, false)
	result, err := r.Run(ctx, rangeEnd, snapshot.Sorted(), slots)
	require.NoError(t, err)

	require.NotEmpty(t, decider.seen)
	assert.Equal(t, "alice@x.com", decider.seen[0].Person.Email)
	assert.True(t, decider.seen[0].Slot.Equal(tomorrow10))

	require.Len(t, cal.created, 1)
	booked := cal.created[0]
	assert.Equal(t, []string{"alice@x.com", organizerEmail}, booked.attendees)
	assert.Equal(t, "Alice / Bob", booked.title)
	assert.True(t, booked.start.Equal(tomorrow10))
	assert.True(t, booked.end.Equal(tomorrow10.Add(SlotDuration)))

	require.Len(t, result.Booked, 1)
	assert.Equal(t, "booked-1", result.Booked[0].Event.ID)
	require.Len(t, result.Remaining, 1)
	assert.Equal(t, "dana@x.com", result.Remaining[0].Email)
	assert.False(t, result.Stopped)
	assert.Equal(t, StateDone, r.State())
}

func recommendFixture(t *testing.T) (*Engine, *fakeCalendar, []time.Time) {
	t.Helper()
	ny := mustLocation(t, "America/New_York")
	cal := newFakeCalendar()
	e := newTestEngine(t, cal,
		person("Alice", "alice@x.com", "Engineer", "New York, NY, US"),
		person("Dana", "dana@x.com", "Engineer", "New York, NY, US"),
		person("Sam", "sam@x.com", "Engineer", "San Francisco, CA, US"),
	)
	slots := []time.Time{
		time.Date(2024, 3, 5, 10, 0, 0, 0, ny),
		time.Date(2024, 3, 5, 14, 0, 0, 0, ny),
	}
	return e, cal, slots
}

func TestRecommend_DeclineOffersNextCandidate(t *testing.T) {
	e, cal, slots := recommendFixture(t)
	entries := []model.DueEntry{
		due("alice@x.com", 2024, 2, 1),
		due("dana@x.com", 2024, 2, 2),
	}

	decider := &scriptedDecider{answers: []Decision{DecisionDecline, DecisionConfirm, DecisionConfirm}}
	result, err := NewRecommender(e, decider, false).Run(context.Background(), testNow.AddDate(0, 0, 7), entries, slots[:1])
	require.NoError(t, err)

	require.Len(t, decider.seen, 2)
	assert.Equal(t, "alice@x.com", decider.seen[0].Person.Email)
	assert.Equal(t, "dana@x.com", decider.seen[1].Person.Email)
	require.Len(t, cal.created, 1)
	assert.Equal(t, "Dana / Bob", cal.created[0].title)
	assert.Equal(t, []model.DueEntry{entries[0]}, result.Remaining)
}

func TestRecommend_EachPersonAndSlotBookedOnce(t *testing.T) {
	e, cal, slots := recommendFixture(t)
	entries := []model.DueEntry{
		due("alice@x.com", 2024, 2, 1),
		due("dana@x.com", 2024, 2, 2),
	}

	result, err := NewRecommender(e, &scriptedDecider{}, false).Run(context.Background(), testNow.AddDate(0, 0, 7), entries, slots)
	require.NoError(t, err)

	require.Len(t, cal.created, 2)
	assert.True(t, cal.created[0].start.Equal(slots[0]))
	assert.Equal(t, "Alice / Bob", cal.created[0].title)
	assert.True(t, cal.created[1].start.Equal(slots[1]))
	assert.Equal(t, "Dana / Bob", cal.created[1].title)
	assert.Empty(t, result.Remaining)
}

func TestRecommend_SkipsUnavailableAndFutureDue(t *testing.T) {
	e, cal, slots := recommendFixture(t)
	entries := []model.DueEntry{
		// 10:00 in New York is 07:00 in San Francisco.
		due("sam@x.com", 2024, 1, 1),
		due("alice@x.com", 2024, 2, 1),
		due("dana@x.com", 2024, 4, 1),
	}

	decider := &scriptedDecider{}
	result, err := NewRecommender(e, decider, false).Run(context.Background(), testNow.AddDate(0, 0, 7), entries, slots[:1])
	require.NoError(t, err)

	require.Len(t, decider.seen, 1)
	assert.Equal(t, "alice@x.com", decider.seen[0].Person.Email)
	require.Len(t, cal.created, 1)

	var remaining []string
	for _, r := range result.Remaining {
		remaining = append(remaining, r.Email)
	}
	assert.Equal(t, []string{"sam@x.com", "dana@x.com"}, remaining)
}

func TestRecommend_Stop(t *testing.T) {
	e, cal, slots := recommendFixture(t)
	entries := []model.DueEntry{due("alice@x.com", 2024, 2, 1)}

	r := NewRecommender(e, &scriptedDecider{answers: []Decision{DecisionStop}}, false)
	result, err := r.Run(context.Background(), testNow.AddDate(0, 0, 7), entries, slots)
	require.NoError(t, err)

	assert.True(t, result.Stopped)
	assert.Empty(t, result.Booked)
	assert.Empty(t, cal.created)
	assert.Len(t, result.Remaining, 1)
	assert.Equal(t, StateStopped, r.State())
}

func TestRecommend_DryRun(t *testing.T) {
	e, cal, slots := recommendFixture(t)
	entries := []model.DueEntry{due("alice@x.com", 2024, 2, 1)}

	result, err := NewRecommender(e, &scriptedDecider{}, true).Run(context.Background(), testNow.AddDate(0, 0, 7), entries, slots)
	require.NoError(t, err)

	assert.Empty(t, cal.created)
	require.Len(t, result.Booked, 1)
	assert.Empty(t, result.Booked[0].Event.ID)
	assert.Empty(t, result.Remaining)
}

func TestRecommend_SpanMarksDryRun(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(previous)

	for _, dryRun := range []bool{true, false} {
		e, _, slots := recommendFixture(t)
		entries := []model.DueEntry{due("alice@x.com", 2024, 2, 1)}
		_, err := NewRecommender(e, &scriptedDecider{}, dryRun).Run(context.Background(), testNow.AddDate(0, 0, 7), entries, slots)
		require.NoError(t, err)
	}

	var marks []bool
	for _, span := range recorder.Ended() {
		if span.Name() != "oneonone.recommend" {
			continue
		}
		for _, kv := range span.Attributes() {
			if string(kv.Key) == instrumentation.SpanAttrDryRun {
				marks = append(marks, kv.Value.AsBool())
			}
		}
	}
	assert.Equal(t, []bool{true, false}, marks)
}

func TestRecommend_SkipsUnknownPeople(t *testing.T) {
	e, cal, slots := recommendFixture(t)
	entries := []model.DueEntry{
		due("gone@x.com", 2024, 1, 1),
		due("alice@x.com", 2024, 2, 1),
	}

	result, err := NewRecommender(e, &scriptedDecider{}, false).Run(context.Background(), testNow.AddDate(0, 0, 7), entries, slots[:1])
	require.NoError(t, err)
	require.Len(t, cal.created, 1)
	assert.Equal(t, "gone@x.com", result.Remaining[0].Email)
}

func TestRecommend_SkipsUnreadableCalendar(t *testing.T) {
	e, cal, slots := recommendFixture(t)
	cal.calendarErrs = map[string]error{"alice@x.com": errors.New("404 notFound")}
	entries := []model.DueEntry{
		due("alice@x.com", 2024, 2, 1),
		due("dana@x.com", 2024, 2, 2),
	}

	decider := &scriptedDecider{}
	result, err := NewRecommender(e, decider, false).Run(context.Background(), testNow.AddDate(0, 0, 7), entries, slots[:1])
	require.NoError(t, err)

	require.Len(t, decider.seen, 1)
	assert.Equal(t, "dana@x.com", decider.seen[0].Person.Email)
	require.Len(t, cal.created, 1)
	assert.Equal(t, "Dana / Bob", cal.created[0].title)
	assert.Equal(t, []model.DueEntry{entries[0]}, result.Remaining)
}

func TestRecommend_Errors(t *testing.T) {
	entries := []model.DueEntry{due("alice@x.com", 2024, 2, 1)}
	rangeEnd := testNow.AddDate(0, 0, 7)

	t.Run("cancelled context", func(t *testing.T) {
		e, cal, slots := recommendFixture(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		cal.searchErr = ctx.Err()
		result, err := NewRecommender(e, &scriptedDecider{}, false).Run(ctx, rangeEnd, entries, slots)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Len(t, result.Remaining, 1)
	})

	t.Run("booking failure", func(t *testing.T) {
		e, cal, slots := recommendFixture(t)
		cal.createErr = errors.New("forbidden")
		result, err := NewRecommender(e, &scriptedDecider{}, false).Run(context.Background(), rangeEnd, entries, slots)
		assert.True(t, IsTransport(err))
		assert.Len(t, result.Remaining, 1)
	})

	t.Run("decider failure", func(t *testing.T) {
		e, _, slots := recommendFixture(t)
		decider := DeciderFunc(func(context.Context, Match) (Decision, error) {
			return DecisionStop, errors.New("stdin closed")
		})
		_, err := NewRecommender(e, decider, false).Run(context.Background(), rangeEnd, entries, slots)
		assert.ErrorContains(t, err, "stdin closed")
	})
}

func TestStateAndDecisionStrings(t *testing.T) {
	assert.Equal(t, "awaiting_confirmation", StateAwaitingConfirmation.String())
	assert.Equal(t, "unknown", State(99).String())
	assert.Equal(t, "decline", DecisionDecline.String())
}
