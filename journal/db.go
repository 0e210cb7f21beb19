// Package journal stores mint attempts and network definitions in Postgres.
package journal

import (
	_ "github.com/lib/pq"
)

const driverName = "postgres"

type Store struct {
	dbConnStr string
	driver    string
}

// NewStore creates a new Store instance with the provided connection string.
//
// Parameters:
// - connStr: the database connection string.
//
// Returns:
// - *Store: a pointer to the newly created Store instance.
// - error: an error if the connection string is empty.
func NewStore(connStr string) (*Store, error) {
	if connStr == "" {
		return nil, ErrEmptyDSN
	}
	return &Store{
		dbConnStr: connStr,
		driver:    driverName,
	}, nil
}
