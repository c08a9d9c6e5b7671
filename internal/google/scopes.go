package google

import calendar "google.golang.org/api/calendar/v3"

// DefaultOAuthScopes are the Google OAuth scopes cadence requests.
//
// Full calendar access is needed to search other people's calendars and to
// book events with attendees.
var DefaultOAuthScopes = []string{
	calendar.CalendarScope,
}
