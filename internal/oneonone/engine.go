package oneonone

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/teemow/cadence/internal/config"
	"github.com/teemow/cadence/internal/instrumentation"
	"github.com/teemow/cadence/internal/model"
)

// PrimaryCalendar is the calendar ID of the operator's own calendar.
const PrimaryCalendar = "primary"

// SlotDuration is the length of every bookable 1:1.
const SlotDuration = 30 * time.Minute

// Calendar is the calendar backend the engine queries and books against.
type Calendar interface {
	// Search returns events overlapping [start, end] on calendarID. An empty
	// query matches every event.
	Search(ctx context.Context, query string, start, end time.Time, calendarID string) ([]model.Event, error)

	// Create books an event on the primary calendar and notifies attendees.
	Create(ctx context.Context, attendees []string, start, end time.Time, title string) (model.Event, error)
}

// Directory is the read-only organization directory.
type Directory interface {
	ByEmail(email string) (model.Person, bool)
	All() []model.Person
}

// SnapshotStore persists the due-date snapshot.
type SnapshotStore interface {
	Save(ctx context.Context, due model.DueDates) error
	Load(ctx context.Context) (model.DueDates, error)
}

// Options configures an Engine.
type Options struct {
	Calendar  Calendar
	Directory Directory
	Config    *config.MeetingFrequencyConfig

	// SlotCalendarID is the calendar holding the organizer's slot blocks.
	// Defaults to PrimaryCalendar.
	SlotCalendarID string

	Logger  *slog.Logger
	Metrics *instrumentation.Metrics

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Engine computes due dates, free slots and availability.
type Engine struct {
	cal            Calendar
	dir            Directory
	cfg            *config.MeetingFrequencyConfig
	slotCalendarID string
	logger         *slog.Logger
	metrics        *instrumentation.Metrics
	now            func() time.Time
}

// New creates an Engine from opts.
func New(opts Options) (*Engine, error) {
	if opts.Calendar == nil {
		return nil, errors.New("calendar is required")
	}
	if opts.Directory == nil {
		return nil, errors.New("directory is required")
	}
	if opts.Config == nil {
		return nil, errors.New("meeting frequency config is required")
	}

	e := &Engine{
		cal:            opts.Calendar,
		dir:            opts.Directory,
		cfg:            opts.Config,
		slotCalendarID: opts.SlotCalendarID,
		logger:         opts.Logger,
		metrics:        opts.Metrics,
		now:            opts.Now,
	}
	if e.slotCalendarID == "" {
		e.slotCalendarID = PrimaryCalendar
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e, nil
}

// Config returns the engine's meeting frequency config.
func (e *Engine) Config() *config.MeetingFrequencyConfig {
	return e.cfg
}

// Person looks up a directory entry or returns a NotFoundError.
func (e *Engine) Person(email string) (model.Person, error) {
	p, ok := e.dir.ByEmail(email)
	if !ok {
		return model.Person{}, personNotFound(email)
	}
	return p, nil
}
