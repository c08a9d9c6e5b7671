package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Snapshot backends.
const (
	SnapshotBackendFile   = "file"
	SnapshotBackendSQLite = "sqlite"
)

// Settings holds runtime paths and switches. Values come from the
// environment and may be overridden by command-line flags.
type Settings struct {
	ConfigPath      string `env:"CADENCE_CONFIG" envDefault:"cadence.yaml"`
	OrgFile         string `env:"CADENCE_ORG_FILE" envDefault:"org.csv"`
	RolesFile       string `env:"CADENCE_ROLES_FILE"`
	SnapshotPath    string `env:"CADENCE_SNAPSHOT" envDefault:"due_dates.yaml"`
	SnapshotBackend string `env:"CADENCE_SNAPSHOT_BACKEND" envDefault:"file"`
	Account         string `env:"CADENCE_ACCOUNT" envDefault:"default"`
	DaysBack        int    `env:"CADENCE_DAYS_BACK" envDefault:"30"`
	LogLevel        string `env:"CADENCE_LOG_LEVEL" envDefault:"info"`
	LogFormat       string `env:"CADENCE_LOG_FORMAT" envDefault:"text"`

	CredentialsFile    string `env:"CADENCE_CREDENTIALS"`
	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
}

// LoadSettings parses Settings from the environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks the settings for obviously invalid values.
func (s Settings) Validate() error {
	if s.DaysBack <= 0 {
		return fmt.Errorf("days back must be positive, got %d", s.DaysBack)
	}
	switch s.SnapshotBackend {
	case SnapshotBackendFile, SnapshotBackendSQLite:
	default:
		return fmt.Errorf("invalid snapshot backend %q, must be one of: file, sqlite", s.SnapshotBackend)
	}
	return nil
}
