package journal

import "github.com/pkg/errors"

var (
	ErrEmptyDSN        = errors.New("empty database connection string")
	ErrInvalidAttempt  = errors.New("invalid mint attempt")
	ErrDatabaseConnect = errors.New("failed to connect to database")
)
