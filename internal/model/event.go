package model

import "time"

// Attendee response statuses as reported by the calendar backend.
const (
	ResponseNeedsAction = "needsAction"
	ResponseDeclined    = "declined"
	ResponseTentative   = "tentative"
	ResponseAccepted    = "accepted"
)

// Attendee is a participant reference on an event.
type Attendee struct {
	Name           string
	Email          string
	ResponseStatus string // one of the Response* constants
}

// FirstName returns the first whitespace-delimited token of the attendee's name.
func (a Attendee) FirstName() string {
	return firstToken(a.Name)
}

// HasDeclined reports whether the attendee declined the event.
func (a Attendee) HasDeclined() bool {
	return a.ResponseStatus == ResponseDeclined
}

// Event is a read-only snapshot of a calendar entry. Start and End are
// always timezone-aware instants.
type Event struct {
	ID        string
	Title     string
	Start     time.Time
	End       time.Time
	Attendees []Attendee
	Organizer *Attendee
}

// HasAttendee reports whether email is among the event's attendees.
func (e Event) HasAttendee(email string) bool {
	for _, a := range e.Attendees {
		if a.Email == email {
			return true
		}
	}
	return false
}

// AllDeclined reports whether every attendee declined. An event without
// attendees is not considered declined.
func (e Event) AllDeclined() bool {
	if len(e.Attendees) == 0 {
		return false
	}
	for _, a := range e.Attendees {
		if !a.HasDeclined() {
			return false
		}
	}
	return true
}

// Declined reports whether the attendee with the given email declined.
func (e Event) Declined(email string) bool {
	for _, a := range e.Attendees {
		if a.Email == email {
			return a.HasDeclined()
		}
	}
	return false
}

// Overlaps reports whether the event intersects the half-open window [start, end).
func (e Event) Overlaps(start, end time.Time) bool {
	return e.Start.Before(end) && e.End.After(start)
}
