package oneonone

import (
	"strings"

	"github.com/teemow/cadence/internal/model"
)

// titleSeparator separates the two first names in a 1:1 title.
const titleSeparator = "/"

// IsOneOnOne reports whether ev is a 1:1 between the organizer and p.
//
// The title must contain both first names and the "/" separator, and p must
// be on the attendee list. Name matching is by substring.
func IsOneOnOne(ev model.Event, p model.Person, organizerFirstName string) bool {
	return strings.Contains(ev.Title, p.FirstName()) &&
		strings.Contains(ev.Title, organizerFirstName) &&
		strings.Contains(ev.Title, titleSeparator) &&
		ev.HasAttendee(p.Email)
}

// OneOnOneTitle is the title given to a booked 1:1.
func OneOnOneTitle(p model.Person, organizerFirstName string) string {
	return p.FirstName() + " " + titleSeparator + " " + organizerFirstName
}
