// Package directory loads the organization directory from a CSV export.
//
// The export must carry a header row with the columns Name, Email, Title,
// Level, Start date, Tenure, Metro, Location and Manager. An optional Role
// column is honored; role overrides supplied by the caller take precedence.
package directory

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/teemow/cadence/internal/config"
	"github.com/teemow/cadence/internal/model"
)

var requiredColumns = []string{
	"Name", "Email", "Title", "Level", "Start date", "Tenure", "Metro", "Location", "Manager",
}

// Directory is an in-memory view of the organization keyed by email.
type Directory struct {
	path      string
	overrides config.RoleOverrides

	mu      sync.RWMutex
	byEmail map[string]model.Person
}

// Open loads the directory at path.
func Open(path string, overrides config.RoleOverrides) (*Directory, error) {
	d := &Directory{path: path, overrides: overrides}
	if err := d.Reload(); err != nil {
		return nil, err
	}
	return d, nil
}

// Reload re-reads the CSV file and replaces the in-memory view.
func (d *Directory) Reload() error {
	f, err := os.Open(d.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("organization file not found: %s", d.path)
		}
		return fmt.Errorf("failed to open organization file: %w", err)
	}
	defer f.Close()

	people, err := Parse(f, d.overrides)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", d.path, err)
	}

	d.mu.Lock()
	d.byEmail = people
	d.mu.Unlock()
	return nil
}

// ByEmail looks up a person by email.
func (d *Directory) ByEmail(email string) (model.Person, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.byEmail[email]
	return p, ok
}

// All returns every person ordered by email.
func (d *Directory) All() []model.Person {
	d.mu.RLock()
	defer d.mu.RUnlock()
	people := make([]model.Person, 0, len(d.byEmail))
	for _, p := range d.byEmail {
		people = append(people, p)
	}
	sort.Slice(people, func(i, j int) bool { return people[i].Email < people[j].Email })
	return people
}

// Len returns the number of people in the directory.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.byEmail)
}

// Parse reads directory records from r. Later rows win when an email repeats.
func Parse(r io.Reader, overrides config.RoleOverrides) (map[string]model.Person, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty organization file")
		}
		return nil, err
	}
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	field := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	people := make(map[string]model.Person)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		p := model.Person{
			Name:      field(row, "Name"),
			Email:     field(row, "Email"),
			Title:     field(row, "Title"),
			Level:     field(row, "Level"),
			StartDate: field(row, "Start date"),
			Tenure:    field(row, "Tenure"),
			Metro:     field(row, "Metro"),
			Location:  field(row, "Location"),
			Manager:   field(row, "Manager"),
			Role:      field(row, "Role"),
		}
		if p.Email == "" {
			continue
		}
		if role, ok := overrides.Role(p.Email); ok {
			p.Role = role
		}
		people[p.Email] = p
	}
	return people, nil
}
