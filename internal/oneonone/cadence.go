package oneonone

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/teemow/cadence/internal/config"
	"github.com/teemow/cadence/internal/model"
)

// CadenceWeeks returns the number of weeks between 1:1s for a person.
// A configured role wins over a configured title. There is no default.
func CadenceWeeks(p model.Person, cfg *config.MeetingFrequencyConfig) (int, error) {
	if p.Role != "" {
		if weeks, ok := cfg.RoleWeeks(p.Role); ok {
			return weeks, nil
		}
	}
	if weeks, ok := cfg.TitleWeeks(p.Title); ok {
		return weeks, nil
	}
	key := p.Title
	if p.Role != "" {
		key = p.Role + "/" + p.Title
	}
	return 0, &MappingError{Kind: KindCadence, Table: "role/title", Key: key}
}

// startDateLayouts are tried in order when parsing a directory start date.
var startDateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2-Jan-2006",
}

// parseStartDate parses a start date in loc. ok is false when no layout matches.
func parseStartDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range startDateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsEligible reports whether a person should receive recurring 1:1s.
//
// A person is excluded when their start date lies in the future, when they
// report to the organizer (compared by manager name), or when their email is
// on the ignore list. Start dates that do not parse never exclude anyone.
func IsEligible(p model.Person, cfg *config.MeetingFrequencyConfig, now time.Time) bool {
	if start, ok := parseStartDate(p.StartDate, now.Location()); ok && start.After(now) {
		return false
	}
	if p.Manager == cfg.Organizer().Name {
		return false
	}
	if cfg.Ignored(p.Email) {
		return false
	}
	return true
}

// Forecast returns count successive due dates spaced weeks apart, starting
// with next.
func Forecast(next time.Time, weeks, count int) ([]time.Time, error) {
	if weeks <= 0 || count <= 0 {
		return nil, &ValidationError{Field: "forecast", Value: fmt.Sprintf("weeks=%d count=%d", weeks, count)}
	}
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:     rrule.WEEKLY,
		Interval: weeks,
		Count:    count,
		Dtstart:  next,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build cadence rule: %w", err)
	}
	return r.All(), nil
}
