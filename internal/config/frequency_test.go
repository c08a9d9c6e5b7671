package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFrequency = `
organizer:
  name: Bob Builder
  email: bob@example.com
  slot_calendar_name: 1:1 Slots
domain: "@example.com"
roles:
  tech-lead: 2
titles:
  Software Engineer: 4
ignore:
  - ceo@example.com
`

func TestParseMeetingFrequency(t *testing.T) {
	cfg, err := ParseMeetingFrequency([]byte(sampleFrequency))
	require.NoError(t, err)

	org := cfg.Organizer()
	assert.Equal(t, "Bob Builder", org.Name)
	assert.Equal(t, "Bob", org.FirstName())
	assert.Equal(t, "1:1 Slots", org.SlotCalendarName)
	assert.Equal(t, DefaultSlotTitle, org.SlotTitle)
	assert.Equal(t, "example.com", cfg.Domain())

	weeks, ok := cfg.RoleWeeks("tech-lead")
	assert.True(t, ok)
	assert.Equal(t, 2, weeks)

	weeks, ok = cfg.TitleWeeks("Software Engineer")
	assert.True(t, ok)
	assert.Equal(t, 4, weeks)

	_, ok = cfg.TitleWeeks("Designer")
	assert.False(t, ok)

	assert.True(t, cfg.Ignored("ceo@example.com"))
	assert.False(t, cfg.Ignored("alice@example.com"))
}

func TestParseMeetingFrequency_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing organizer name", "organizer:\n  email: bob@example.com\n"},
		{"missing organizer email", "organizer:\n  name: Bob\n"},
		{"zero cadence", "organizer:\n  name: Bob\n  email: b@x.com\ntitles:\n  Engineer: 0\n"},
		{"negative role cadence", "organizer:\n  name: Bob\n  email: b@x.com\nroles:\n  lead: -1\n"},
		{"malformed yaml", "organizer: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMeetingFrequency([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestNewMeetingFrequencyConfig_CopiesTables(t *testing.T) {
	titles := map[string]int{"Engineer": 2}
	cfg, err := NewMeetingFrequencyConfig(Organizer{Name: "Bob", Email: "b@x.com"}, "x.com", nil, titles, nil)
	require.NoError(t, err)

	titles["Engineer"] = 8
	weeks, _ := cfg.TitleWeeks("Engineer")
	assert.Equal(t, 2, weeks)
}

func TestQualifyEmail(t *testing.T) {
	cfg, err := NewMeetingFrequencyConfig(Organizer{Name: "Bob", Email: "b@x.com"}, "example.com", nil, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", cfg.QualifyEmail("alice"))
	assert.Equal(t, "alice@other.com", cfg.QualifyEmail("alice@other.com"))
}

func TestLoadMeetingFrequency(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cadence.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleFrequency), 0o600))

	cfg, err := LoadMeetingFrequency(path)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", cfg.Organizer().Email)

	missing := filepath.Join(t.TempDir(), "missing.yaml")
	_, err = LoadMeetingFrequency(missing)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorContains(t, err, missing)

	_, err = LoadMeetingFrequency("")
	assert.Error(t, err)
}
