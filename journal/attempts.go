package journal

import (
	"context"
	"database/sql"

	"github.com/ClipFinance/xchain-mint/common/types"
	"github.com/ClipFinance/xchain-mint/journal/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// InsertAttempt records a mint attempt. A zero ID is replaced by a new UUID.
//
// Parameters:
// - ctx: the context for managing the request.
// - attempt: the attempt to record.
//
// Returns:
// - uuid.UUID: the attempt ID.
// - error: an error if the attempt is invalid or the database operation fails.
func (s *Store) InsertAttempt(ctx context.Context, attempt *models.Attempt) (uuid.UUID, error) {
	if attempt == nil || attempt.Owner == "" {
		return uuid.Nil, ErrInvalidAttempt
	}
	if attempt.Status != types.AttemptSubmitted && attempt.Status != types.AttemptFailed {
		return uuid.Nil, errors.Wrapf(ErrInvalidAttempt, "status %q", attempt.Status)
	}
	if attempt.ID == uuid.Nil {
		attempt.ID = uuid.New()
	}

	db, err := sql.Open(s.driver, s.dbConnStr)
	if err != nil {
		return uuid.Nil, ErrDatabaseConnect
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `
		INSERT INTO mint_attempts (
			id,
			owner_address,
			account_address,
			intent_hash,
			execution_hash,
			status,
			error
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		attempt.ID.String(),
		attempt.Owner,
		attempt.Account,
		nullString(attempt.IntentHash),
		nullString(attempt.ExecutionHash),
		string(attempt.Status),
		nullString(attempt.Error),
	)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to insert mint attempt")
	}

	return attempt.ID, nil
}

// GetAttemptsByOwner returns the newest attempts of owner first.
//
// Parameters:
// - ctx: the context for managing the request.
// - owner: the owner address.
// - limit: the maximum number of rows.
//
// Returns:
// - []models.Attempt: the attempts.
// - error: an error if the database operation fails.
func (s *Store) GetAttemptsByOwner(ctx context.Context, owner string, limit int) ([]models.Attempt, error) {
	if limit <= 0 {
		limit = 20
	}

	db, err := sql.Open(s.driver, s.dbConnStr)
	if err != nil {
		return nil, ErrDatabaseConnect
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT
			id,
			owner_address,
			account_address,
			intent_hash,
			execution_hash,
			status,
			error,
			created_at
		FROM mint_attempts
		WHERE owner_address = $1
		ORDER BY created_at DESC
		LIMIT $2`, owner, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query mint attempts")
	}
	defer rows.Close()

	var attempts []models.Attempt
	for rows.Next() {
		var attempt models.Attempt
		var id, status string
		var intentHash, executionHash, errText sql.NullString

		err := rows.Scan(
			&id,
			&attempt.Owner,
			&attempt.Account,
			&intentHash,
			&executionHash,
			&status,
			&errText,
			&attempt.CreatedAt,
		)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan mint attempt")
		}

		attempt.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid attempt id %q", id)
		}
		attempt.Status = types.AttemptStatus(status)
		attempt.IntentHash = intentHash.String
		attempt.ExecutionHash = executionHash.String
		attempt.Error = errText.String

		attempts = append(attempts, attempt)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate mint attempts")
	}

	return attempts, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
