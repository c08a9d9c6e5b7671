package oneonone

import (
	"strings"

	"github.com/teemow/cadence/internal/model"
)

// Lookup table names reported in MappingError.Table.
const (
	TableMetro    = "metro"
	TableUSState  = "us_state"
	TableProvince = "ca_province"
)

// ResolveTimezone returns the IANA timezone for a person.
//
// The location is parsed as "City, Region, Country". US regions resolve
// through the state table and Canadian regions through the province table.
// Any other country, or a location that does not parse, falls back to the
// metro table.
func ResolveTimezone(p model.Person) (string, error) {
	_, region, country, ok := parseLocation(p.Location)
	if !ok {
		return lookupZone(metroZones, TableMetro, strings.TrimSpace(p.Metro))
	}

	switch country {
	case "US":
		return lookupZone(usStateZones, TableUSState, region)
	case "CA":
		return lookupZone(caProvinceZones, TableProvince, region)
	default:
		return lookupZone(metroZones, TableMetro, strings.TrimSpace(p.Metro))
	}
}

func lookupZone(table map[string]string, name, key string) (string, error) {
	if zone, ok := table[key]; ok {
		return zone, nil
	}
	return "", &MappingError{Kind: KindTimezone, Table: name, Key: key}
}

// parseLocation splits "City, Region, Country" into its three parts.
// Region and country are upper-cased.
func parseLocation(location string) (city, region, country string, ok bool) {
	parts := strings.Split(location, ",")
	if len(parts) != 3 {
		return "", "", "", false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if parts[i] == "" {
			return "", "", "", false
		}
	}
	return parts[0], strings.ToUpper(parts[1]), strings.ToUpper(parts[2]), true
}
