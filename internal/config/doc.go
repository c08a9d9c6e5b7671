// Package config loads the scheduler's configuration.
//
// Three sources are supported:
//
//   - MeetingFrequencyConfig: the organizer identity, the slot marker, the
//     organization email domain, role and title cadence tables and the
//     ignore list. Loaded once from YAML and read-only afterwards.
//   - RoleOverrides: an optional YAML map of email to role, applied to
//     directory records so role-based cadence can be assigned per person.
//   - Settings: runtime paths and switches read from the environment.
//
// Example frequency file:
//
//	organizer:
//	  name: Bob Builder
//	  email: bob@example.com
//	  slot_calendar_name: 1:1 Slots
//	  slot_title: 1:1 Slot
//	domain: example.com
//	roles:
//	  tech-lead: 2
//	titles:
//	  Software Engineer: 4
//	  Engineering Manager: 2
//	ignore:
//	  - ceo@example.com
package config
