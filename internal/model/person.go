package model

import "strings"

// Person is a member of the organization as listed in the directory.
// Email is the unique key within a directory snapshot.
type Person struct {
	Name      string
	Email     string
	Title     string
	Level     string
	StartDate string // free-form, parsed best-effort
	Tenure    string
	Metro     string // billing/region code, e.g. "SFO"
	Location  string // "City, Region, Country"
	Manager   string // manager's display name
	Role      string // optional, set from role overrides
}

// FirstName returns the first whitespace-delimited token of the name.
func (p Person) FirstName() string {
	return firstToken(p.Name)
}

func firstToken(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
