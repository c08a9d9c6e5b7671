package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// RoleOverrides maps a person's email to an explicit role.
type RoleOverrides map[string]string

// LoadRoleOverrides reads a YAML map of email to role. An empty path or a
// missing file yields an empty set of overrides.
func LoadRoleOverrides(path string) (RoleOverrides, error) {
	if path == "" {
		return RoleOverrides{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return RoleOverrides{}, nil
		}
		return nil, fmt.Errorf("failed to read role overrides: %w", err)
	}

	overrides := RoleOverrides{}
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse role overrides: %w", err)
	}
	return overrides, nil
}

// Role returns the override for email, if any.
func (r RoleOverrides) Role(email string) (string, bool) {
	role, ok := r[email]
	return role, ok && role != ""
}
