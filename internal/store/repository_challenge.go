package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/passkeys"
	"github.com/MKhiriev/go-pass-vault/models"
)

// challengeRepository is the PostgreSQL-backed implementation of
// [passkeys.ChallengeStore]. The table holds at most one row per account
// (user_id is the primary key); an upsert gives last-writer-wins semantics
// and DELETE ... RETURNING makes consumption atomic without explicit locks.
type challengeRepository struct {
	*DB
	logger *logger.Logger

	// now is swappable in tests.
	now func() time.Time
}

// NewChallengeRepository constructs a [passkeys.ChallengeStore] backed by the
// provided database connection and logger.
func NewChallengeRepository(db *DB, logger *logger.Logger) passkeys.ChallengeStore {
	logger.Debug().Msg("creating challenge repository")
	return &challengeRepository{
		DB:     db,
		logger: logger,
		now:    time.Now,
	}
}

// Save upserts the account's outstanding challenge, replacing any prior one.
func (c *challengeRepository) Save(ctx context.Context, challenge models.PasskeyChallenge) error {
	log := logger.FromContext(ctx)

	_, err := c.DB.ExecContext(ctx, saveChallenge,
		challenge.UserID, challenge.Challenge, challenge.Session, challenge.ExpiresAt)
	if err != nil {
		log.Err(err).
			Str("func", "challengeRepository.Save").
			Int64("user_id", challenge.UserID).
			Msg("failed to save challenge")
		return c.classify(fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}

	return nil
}

// Consume deletes and returns the account's challenge in one statement.
// An expired row is still deleted but reported as not found.
func (c *challengeRepository) Consume(ctx context.Context, userID int64) (models.PasskeyChallenge, error) {
	log := logger.FromContext(ctx)

	var challenge models.PasskeyChallenge
	row := c.DB.QueryRowContext(ctx, consumeChallenge, userID)

	err := row.Scan(&challenge.UserID, &challenge.Challenge, &challenge.Session, &challenge.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PasskeyChallenge{}, passkeys.ErrChallengeNotFound
		}

		log.Err(err).
			Str("func", "challengeRepository.Consume").
			Int64("user_id", userID).
			Msg("failed to consume challenge")
		return models.PasskeyChallenge{}, c.classify(fmt.Errorf("%w: %w", ErrExecutingQuery, err))
	}

	if challenge.Expired(c.now()) {
		return models.PasskeyChallenge{}, passkeys.ErrChallengeNotFound
	}

	return challenge, nil
}

// PurgeExpired deletes every challenge whose deadline has passed and reports
// how many rows were removed. Run periodically by the janitor worker so
// abandoned ceremonies do not accumulate rows.
func (c *challengeRepository) PurgeExpired(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := c.DB.ExecContext(ctx, purgeExpiredChallenges, c.now())
	if err != nil {
		log.Err(err).
			Str("func", "challengeRepository.PurgeExpired").
			Msg("failed to purge expired challenges")
		return 0, c.classify(fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}

	purged, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return purged, nil
}
