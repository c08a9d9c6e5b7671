// Package calendar adapts the Google Calendar API to the event model used by
// the scheduling engine.
//
// The Client searches calendars for events in a time window, books events
// with invitations sent to all attendees, and resolves calendars by name.
// Every API call is counted and timed through the instrumentation package.
//
// Example usage:
//
//	httpClient, err := google.GetHTTPClient(ctx, conf, store, "default")
//	if err != nil {
//	    return err
//	}
//	client, err := calendar.NewClient(ctx, httpClient, calendar.Options{Account: "default"})
//	if err != nil {
//	    return err
//	}
//
//	events, err := client.Search(ctx, "1:1 Slot", start, end, calendar.PrimaryCalendar)
package calendar
