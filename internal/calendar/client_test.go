package calendar

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// fakeAPI is a minimal Calendar API backend for tests.
type fakeAPI struct {
	mu       sync.Mutex
	pages    map[string][]*calendar.Events // by calendar ID
	lists    []*calendar.CalendarListEntry
	inserted []*calendar.Event
	queries  []map[string]string
	failFor  map[string]bool
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := r.URL.Path
	switch {
	case strings.HasSuffix(path, "/users/me/calendarList"):
		writeJSON(w, &calendar.CalendarList{Items: f.lists})

	case strings.Contains(path, "/calendars/") && strings.HasSuffix(path, "/events"):
		id := calendarIDFromPath(path)
		if f.failFor[id] {
			http.Error(w, `{"error":{"code":403,"message":"forbidden"}}`, http.StatusForbidden)
			return
		}

		if r.Method == http.MethodPost {
			body, _ := io.ReadAll(r.Body)
			var ev calendar.Event
			_ = json.Unmarshal(body, &ev)
			f.inserted = append(f.inserted, &ev)
			f.queries = append(f.queries, map[string]string{"sendUpdates": r.URL.Query().Get("sendUpdates")})
			ev.Id = "created-1"
			writeJSON(w, &ev)
			return
		}

		q := r.URL.Query()
		f.queries = append(f.queries, map[string]string{
			"q":            q.Get("q"),
			"timeMin":      q.Get("timeMin"),
			"timeMax":      q.Get("timeMax"),
			"singleEvents": q.Get("singleEvents"),
			"pageToken":    q.Get("pageToken"),
		})
		pages := f.pages[id]
		if len(pages) == 0 {
			writeJSON(w, &calendar.Events{})
			return
		}
		idx := 0
		if tok := q.Get("pageToken"); tok != "" {
			idx = int(tok[0] - '0')
		}
		writeJSON(w, pages[idx])

	default:
		http.NotFound(w, r)
	}
}

func calendarIDFromPath(path string) string {
	rest := path[strings.Index(path, "/calendars/")+len("/calendars/"):]
	return strings.TrimSuffix(rest, "/events")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, api *fakeAPI) *Client {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	client, err := NewClientWithOptions(context.Background(), Options{Account: "test"},
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	return client
}

func TestClient_Search(t *testing.T) {
	api := &fakeAPI{
		pages: map[string][]*calendar.Events{
			"primary": {
				{
					Items: []*calendar.Event{
						{
							Id:      "e1",
							Summary: "Alice / Bob",
							Start:   &calendar.EventDateTime{DateTime: "2024-03-04T09:00:00-08:00"},
							End:     &calendar.EventDateTime{DateTime: "2024-03-04T09:30:00-08:00"},
							Attendees: []*calendar.EventAttendee{
								{Email: "alice@example.com", DisplayName: "Alice Smith", ResponseStatus: "accepted"},
								{Email: "bob@example.com", DisplayName: "Bob Jones", ResponseStatus: "declined"},
							},
							Organizer: &calendar.EventOrganizer{Email: "bob@example.com"},
						},
						{Id: "gone", Status: "cancelled"},
					},
					NextPageToken: "1",
				},
				{
					Items: []*calendar.Event{
						{
							Id:      "e2",
							Summary: "Offsite",
							Start:   &calendar.EventDateTime{Date: "2024-03-05"},
							End:     &calendar.EventDateTime{Date: "2024-03-06"},
						},
					},
				},
			},
		},
	}
	client := newTestClient(t, api)

	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)
	events, err := client.Search(context.Background(), "Alice", start, end, PrimaryCalendar)
	require.NoError(t, err)
	require.Len(t, events, 2)

	first := events[0]
	assert.Equal(t, "e1", first.ID)
	assert.Equal(t, "Alice / Bob", first.Title)
	assert.True(t, first.Start.Equal(time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC)))
	assert.Equal(t, 30*time.Minute, first.End.Sub(first.Start))
	require.Len(t, first.Attendees, 2)
	assert.Equal(t, "Alice", first.Attendees[0].FirstName())
	require.NotNil(t, first.Organizer)
	assert.Equal(t, "Bob Jones", first.Organizer.Name)
	assert.True(t, first.Organizer.HasDeclined())

	allDay := events[1]
	assert.True(t, allDay.Start.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))
	assert.Nil(t, allDay.Organizer)

	require.Len(t, api.queries, 2)
	assert.Equal(t, "Alice", api.queries[0]["q"])
	assert.Equal(t, "true", api.queries[0]["singleEvents"])
	assert.Equal(t, start.Format(time.RFC3339), api.queries[0]["timeMin"])
	assert.Equal(t, "1", api.queries[1]["pageToken"])
}

func TestClient_SearchError(t *testing.T) {
	api := &fakeAPI{failFor: map[string]bool{"x@example.com": true}}
	client := newTestClient(t, api)

	now := time.Now()
	_, err := client.Search(context.Background(), "", now, now.Add(time.Hour), "x@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "x@example.com")
}

func TestClient_Create(t *testing.T) {
	api := &fakeAPI{}
	client := newTestClient(t, api)

	start := time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)
	ev, err := client.Create(context.Background(),
		[]string{"alice@example.com", "bob@example.com"},
		start, start.Add(30*time.Minute), "Alice / Bob")
	require.NoError(t, err)

	assert.Equal(t, "created-1", ev.ID)
	assert.Equal(t, "Alice / Bob", ev.Title)
	assert.True(t, ev.Start.Equal(start))

	require.Len(t, api.inserted, 1)
	inserted := api.inserted[0]
	assert.Equal(t, "2024-03-04T09:30:00Z", inserted.Start.DateTime)
	assert.Equal(t, "2024-03-04T10:00:00Z", inserted.End.DateTime)
	require.Len(t, inserted.Attendees, 2)
	assert.Equal(t, "alice@example.com", inserted.Attendees[0].Email)
	assert.Equal(t, "all", api.queries[0]["sendUpdates"])
}

func TestClient_CalendarIDByName(t *testing.T) {
	api := &fakeAPI{
		lists: []*calendar.CalendarListEntry{
			{Id: "me@example.com", Summary: "Me", Primary: true},
			{Id: "slots123@group.calendar.google.com", Summary: "1:1 Slots"},
		},
	}
	client := newTestClient(t, api)
	ctx := context.Background()

	id, err := client.CalendarIDByName(ctx, "1:1 Slots")
	require.NoError(t, err)
	assert.Equal(t, "slots123@group.calendar.google.com", id)

	id, err = client.CalendarIDByName(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, PrimaryCalendar, id)

	_, err = client.CalendarIDByName(ctx, "Nope")
	assert.ErrorIs(t, err, ErrCalendarNotFound)
}

func TestClient_ValidateAccess(t *testing.T) {
	api := &fakeAPI{failFor: map[string]bool{"locked@example.com": true}}
	client := newTestClient(t, api)

	results := client.ValidateAccess(context.Background(),
		[]string{"open@example.com", "locked@example.com"}, time.Now())
	require.Len(t, results, 2)
	assert.Equal(t, "open@example.com", results[0].CalendarID)
	assert.True(t, results[0].OK())
	assert.False(t, results[1].OK())
}

func TestToEvent_Nil(t *testing.T) {
	ev := toEvent(nil)
	assert.Empty(t, ev.ID)
	assert.Empty(t, toCalendarInfo(nil).ID)
}

func TestParseEventTime(t *testing.T) {
	tests := []struct {
		name string
		in   *calendar.EventDateTime
		want time.Time
	}{
		{name: "nil", in: nil, want: time.Time{}},
		{name: "datetime", in: &calendar.EventDateTime{DateTime: "2024-03-04T09:00:00Z"}, want: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)},
		{name: "bad datetime", in: &calendar.EventDateTime{DateTime: "yesterday"}, want: time.Time{}},
		{name: "date", in: &calendar.EventDateTime{Date: "2024-03-04"}, want: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(parseEventTime(tt.in)))
		})
	}
}
