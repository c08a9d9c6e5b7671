package cmd

import (
	"errors"
	"time"

	"github.com/teemow/cadence/internal/model"
	"github.com/teemow/cadence/internal/oneonone"
)

var errEndBeforeStart = errors.New("end must be after start")

// parseRangeStart parses a YYYY-MM-DD date as the start of that day in loc,
// or an RFC3339 instant as is.
func parseRangeStart(field, s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(model.DateLayout, s, loc); err == nil {
		return t, nil
	}
	return parseInstant(field, s)
}

// parseRangeEnd parses a YYYY-MM-DD date as the last second of that day in
// loc, or an RFC3339 instant as is.
func parseRangeEnd(field, s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(model.DateLayout, s, loc); err == nil {
		return t.AddDate(0, 0, 1).Add(-time.Second), nil
	}
	return parseInstant(field, s)
}

// parseInstant parses an RFC3339 timestamp.
func parseInstant(field, s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, &oneonone.ValidationError{Field: field, Value: s, Err: err}
	}
	return t, nil
}

// parseRange parses a start and end flag pair and checks their order.
func parseRange(start, end string, loc *time.Location) (time.Time, time.Time, error) {
	from, err := parseRangeStart("start", start, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseRangeEnd("end", end, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, &oneonone.ValidationError{Field: "end", Value: end, Err: errEndBeforeStart}
	}
	return from, to, nil
}
