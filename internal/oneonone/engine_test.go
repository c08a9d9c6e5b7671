package oneonone

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/cadence/internal/config"
)

func TestNew(t *testing.T) {
	cfg := testConfig(t)
	cal := newFakeCalendar()
	dir := fakeDirectory{}

	tests := []struct {
		name    string
		opts    Options
		wantErr string
	}{
		{name: "missing calendar", opts: Options{Directory: dir, Config: cfg}, wantErr: "calendar"},
		{name: "missing directory", opts: Options{Calendar: cal, Config: cfg}, wantErr: "directory"},
		{name: "missing config", opts: Options{Calendar: cal, Directory: dir}, wantErr: "config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}

	e, err := New(Options{Calendar: cal, Directory: dir, Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, PrimaryCalendar, e.slotCalendarID)
	assert.NotNil(t, e.logger)
	assert.NotNil(t, e.now)
	assert.Same(t, cfg, e.Config())
}

func TestErrorPredicates(t *testing.T) {
	assert.True(t, IsNotFound(personNotFound("a@x.com")))
	assert.False(t, IsNotFound(&MappingError{}))
	assert.True(t, IsValidation(&ValidationError{Field: "date", Value: "tomorrow"}))
	assert.Contains(t, (&MappingError{Kind: KindTimezone, Table: TableMetro, Key: "XYZ"}).Error(), "XYZ")
	assert.Nil(t, transport("search", nil))
}

func TestIsNotFound_MissingFrequencyConfig(t *testing.T) {
	_, err := config.LoadMeetingFrequency(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsMapping(err))
}
