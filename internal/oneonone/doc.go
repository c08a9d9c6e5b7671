// Package oneonone is the scheduling and availability engine for recurring
// one-on-one meetings.
//
// The package is organized leaf-first:
//
//   - ResolveTimezone maps a person's location or metro to an IANA zone.
//   - CadenceWeeks maps a person's role or title to a meeting interval.
//   - IsEligible decides whether a person is tracked at all.
//   - IsOneOnOne classifies a calendar event as a 1:1 with a person.
//   - Engine.LastOneOnOne, Engine.NextDue and Engine.RefreshDueDates compute
//     and persist due dates.
//   - Engine.FreeSlots scans the organizer's slot blocks for bookable times.
//   - Engine.IsAvailable validates a candidate time for one person.
//   - Recommender pairs free slots with due people and books confirmed
//     matches.
//
// All calendar round-trips happen sequentially in program order. The engine
// holds no state between calls other than the persisted due-date snapshot.
package oneonone
