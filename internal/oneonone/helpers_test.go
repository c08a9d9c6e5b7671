package oneonone

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/teemow/cadence/internal/config"
	"github.com/teemow/cadence/internal/model"
)

// testNow is a Monday morning.
var testNow = time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)

const (
	organizerName  = "Bob Jones"
	organizerEmail = "bob@x.com"
	slotCalendar   = "slots@group.calendar.google.com"
)

type searchCall struct {
	query      string
	start, end time.Time
	calendarID string
}

type createCall struct {
	attendees  []string
	start, end time.Time
	title      string
}

// fakeCalendar filters its events the way the Calendar API does: by overlap
// with the window and by a case-insensitive title match on the query.
type fakeCalendar struct {
	mu        sync.Mutex
	events    map[string][]model.Event
	searchErr error
	createErr error
	// calendarErrs fails searches of individual calendars.
	calendarErrs map[string]error
	searches  []searchCall
	created   []createCall
}

func newFakeCalendar() *fakeCalendar {
	return &fakeCalendar{events: map[string][]model.Event{}}
}

func (f *fakeCalendar) add(calendarID string, events ...model.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events[calendarID] = append(f.events[calendarID], events...)
}

func (f *fakeCalendar) Search(_ context.Context, query string, start, end time.Time, calendarID string) ([]model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, searchCall{query: query, start: start, end: end, calendarID: calendarID})
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if err := f.calendarErrs[calendarID]; err != nil {
		return nil, err
	}

	var out []model.Event
	for _, ev := range f.events[calendarID] {
		if !ev.Overlaps(start, end) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(ev.Title), strings.ToLower(query)) {
			continue
		}
		out = append(out, ev)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (f *fakeCalendar) Create(_ context.Context, attendees []string, start, end time.Time, title string) (model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return model.Event{}, f.createErr
	}
	f.created = append(f.created, createCall{attendees: attendees, start: start, end: end, title: title})

	ev := model.Event{
		ID:    fmt.Sprintf("booked-%d", len(f.created)),
		Title: title,
		Start: start,
		End:   end,
	}
	for _, email := range attendees {
		ev.Attendees = append(ev.Attendees, model.Attendee{Email: email, ResponseStatus: model.ResponseNeedsAction})
	}
	f.events[PrimaryCalendar] = append(f.events[PrimaryCalendar], ev)
	return ev, nil
}

type fakeDirectory map[string]model.Person

func (d fakeDirectory) ByEmail(email string) (model.Person, bool) {
	p, ok := d[email]
	return p, ok
}

func (d fakeDirectory) All() []model.Person {
	out := make([]model.Person, 0, len(d))
	for _, p := range d {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out
}

type memStore struct {
	due   model.DueDates
	saves int
	err   error
}

func (s *memStore) Save(_ context.Context, due model.DueDates) error {
	if s.err != nil {
		return s.err
	}
	s.saves++
	s.due = make(model.DueDates, len(due))
	for k, v := range due {
		s.due[k] = v
	}
	return nil
}

func (s *memStore) Load(_ context.Context) (model.DueDates, error) {
	if s.due == nil {
		return nil, &NotFoundError{Kind: KindSnapshot, Key: "memory"}
	}
	return s.due, nil
}

func testConfig(t *testing.T) *config.MeetingFrequencyConfig {
	t.Helper()
	cfg, err := config.NewMeetingFrequencyConfig(
		config.Organizer{Name: organizerName, Email: organizerEmail},
		"x.com",
		map[string]int{"tech-lead": 1},
		map[string]int{
			"Engineer":        1,
			"Senior Engineer": 2,
			"Staff Engineer":  4,
			"Designer":        3,
		},
		[]string{"ignored@x.com"},
	)
	require.NoError(t, err)
	return cfg
}

func person(first, email, title, location string) model.Person {
	return model.Person{
		Name:      first + " Example",
		Email:     email,
		Title:     title,
		StartDate: "2020-01-15",
		Metro:     "NYC",
		Location:  location,
		Manager:   "Carol King",
	}
}

func newTestEngine(t *testing.T, cal Calendar, people ...model.Person) *Engine {
	t.Helper()
	dir := fakeDirectory{}
	for _, p := range people {
		dir[p.Email] = p
	}
	e, err := New(Options{
		Calendar:       cal,
		Directory:      dir,
		Config:         testConfig(t),
		SlotCalendarID: slotCalendar,
		Now:            func() time.Time { return testNow },
	})
	require.NoError(t, err)
	return e
}

func mustLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func oneOnOne(title string, start time.Time, attendees ...model.Attendee) model.Event {
	return model.Event{
		ID:        title + "@" + start.Format(time.RFC3339),
		Title:     title,
		Start:     start,
		End:       start.Add(30 * time.Minute),
		Attendees: attendees,
	}
}

func accepted(email string) model.Attendee {
	return model.Attendee{Email: email, ResponseStatus: model.ResponseAccepted}
}

func declined(email string) model.Attendee {
	return model.Attendee{Email: email, ResponseStatus: model.ResponseDeclined}
}
