package model

import (
	"sort"
	"time"
)

// DateLayout is the wire format of a due date.
const DateLayout = "2006-01-02"

// DueDates maps a person's email to the date their next 1:1 is owed.
// Values are date-only: midnight UTC of the calendar date.
type DueDates map[string]time.Time

// DueEntry is one element of a due list.
type DueEntry struct {
	Email string
	Due   time.Time
}

// DateOnly returns midnight UTC of t's calendar date in t's own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date into its date-only form.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// Sorted returns the entries ordered ascending by due date. Equal dates
// are ordered by email so the result is deterministic.
func (d DueDates) Sorted() []DueEntry {
	entries := make([]DueEntry, 0, len(d))
	for email, due := range d {
		entries = append(entries, DueEntry{Email: email, Due: due})
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Due.Equal(entries[j].Due) {
			return entries[i].Due.Before(entries[j].Due)
		}
		return entries[i].Email < entries[j].Email
	})
	return entries
}
