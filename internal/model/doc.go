// Package model defines the shared vocabulary of the scheduler: people from
// the organization directory, calendar events and their attendees, and the
// persisted due-date snapshot.
//
// Values in this package are plain data. They carry no references to the
// calendar backend or the directory that produced them.
package model
