package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when the frequency config file does not exist.
var ErrNotFound = errors.New("frequency config not found")

// DefaultSlotTitle is used when the frequency file does not name a slot marker.
const DefaultSlotTitle = "1:1 Slot"

// Organizer identifies the person booking the 1:1s.
type Organizer struct {
	Name             string `yaml:"name"`
	Email            string `yaml:"email"`
	SlotCalendarName string `yaml:"slot_calendar_name"`
	SlotTitle        string `yaml:"slot_title"`
}

// FirstName returns the first whitespace-delimited token of the organizer's name.
func (o Organizer) FirstName() string {
	fields := strings.Fields(o.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// frequencyFile is the on-disk YAML shape.
type frequencyFile struct {
	Organizer Organizer      `yaml:"organizer"`
	Domain    string         `yaml:"domain"`
	Roles     map[string]int `yaml:"roles"`
	Titles    map[string]int `yaml:"titles"`
	Ignore    []string       `yaml:"ignore"`
}

// MeetingFrequencyConfig is the process-wide scheduling configuration.
// It is constructed once and never mutated; share it by pointer.
type MeetingFrequencyConfig struct {
	organizer Organizer
	domain    string
	roles     map[string]int
	titles    map[string]int
	ignore    map[string]struct{}
}

// NewMeetingFrequencyConfig validates its inputs and returns a config that
// owns private copies of the given tables.
func NewMeetingFrequencyConfig(org Organizer, domain string, roles, titles map[string]int, ignore []string) (*MeetingFrequencyConfig, error) {
	if strings.TrimSpace(org.Name) == "" {
		return nil, errors.New("organizer name is required")
	}
	if strings.TrimSpace(org.Email) == "" {
		return nil, errors.New("organizer email is required")
	}
	if org.SlotTitle == "" {
		org.SlotTitle = DefaultSlotTitle
	}

	c := &MeetingFrequencyConfig{
		organizer: org,
		domain:    strings.TrimPrefix(strings.TrimSpace(domain), "@"),
		roles:     make(map[string]int, len(roles)),
		titles:    make(map[string]int, len(titles)),
		ignore:    make(map[string]struct{}, len(ignore)),
	}
	for role, weeks := range roles {
		if weeks <= 0 {
			return nil, fmt.Errorf("role %q: cadence must be a positive number of weeks, got %d", role, weeks)
		}
		c.roles[role] = weeks
	}
	for title, weeks := range titles {
		if weeks <= 0 {
			return nil, fmt.Errorf("title %q: cadence must be a positive number of weeks, got %d", title, weeks)
		}
		c.titles[title] = weeks
	}
	for _, email := range ignore {
		c.ignore[strings.TrimSpace(email)] = struct{}{}
	}
	return c, nil
}

// LoadMeetingFrequency reads and validates a frequency YAML file.
func LoadMeetingFrequency(path string) (*MeetingFrequencyConfig, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read frequency config: %w", err)
	}
	return ParseMeetingFrequency(data)
}

// ParseMeetingFrequency decodes a frequency YAML document.
func ParseMeetingFrequency(data []byte) (*MeetingFrequencyConfig, error) {
	var f frequencyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse frequency config: %w", err)
	}
	return NewMeetingFrequencyConfig(f.Organizer, f.Domain, f.Roles, f.Titles, f.Ignore)
}

// Organizer returns the organizer identity.
func (c *MeetingFrequencyConfig) Organizer() Organizer {
	return c.organizer
}

// Domain returns the organization email domain without a leading "@".
func (c *MeetingFrequencyConfig) Domain() string {
	return c.domain
}

// RoleWeeks returns the cadence configured for a role.
func (c *MeetingFrequencyConfig) RoleWeeks(role string) (int, bool) {
	weeks, ok := c.roles[role]
	return weeks, ok
}

// TitleWeeks returns the cadence configured for a title.
func (c *MeetingFrequencyConfig) TitleWeeks(title string) (int, bool) {
	weeks, ok := c.titles[title]
	return weeks, ok
}

// Ignored reports whether email is on the ignore list.
func (c *MeetingFrequencyConfig) Ignored(email string) bool {
	_, ok := c.ignore[email]
	return ok
}

// QualifyEmail turns a bare username into an address in the configured
// domain. Inputs that already contain "@" are returned unchanged.
func (c *MeetingFrequencyConfig) QualifyEmail(username string) string {
	username = strings.TrimSpace(username)
	if strings.Contains(username, "@") || c.domain == "" {
		return username
	}
	return username + "@" + c.domain
}
