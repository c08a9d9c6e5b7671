// Package cmd implements the command-line interface for cadence.
//
// This package provides the following commands:
//   - auth: Authorize a Google account and store its token
//   - validate-access: Check that the primary and slot calendars are readable
//   - last: Show the most recent 1:1 with a person
//   - due: Show when a person's next 1:1 is due
//   - refresh: Recompute and save the due-date snapshot
//   - slots: List free 1:1 slots in a date range
//   - available: Check whether a person can meet at a given time
//   - recommend: Match free slots to people who are due and book them
//   - version: Display version information
package cmd
