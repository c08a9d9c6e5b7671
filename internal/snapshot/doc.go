// Package snapshot persists the due-date snapshot: the map from each
// eligible person's email to the date their next 1:1 is owed.
//
// Two backends are provided. FileStore writes a YAML document and replaces it
// with a rename, SQLiteStore replaces all rows inside one transaction. Both
// report a snapshot that was never saved as a oneonone.NotFoundError.
package snapshot
