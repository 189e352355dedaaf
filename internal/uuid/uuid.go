// Package uuid generates time-ordered identifiers for database keys.
package uuid

import googleuuid "github.com/google/uuid"

// New returns a UUIDv7 string. Version 7 identifiers sort by creation
// time, which keeps primary key inserts append-mostly on btree indexes.
// Falls back to a random v4 if entropy for the v7 suffix is unavailable.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.New().String()
	}
	return id.String()
}
