package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/passkeys"
	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/jackc/pgerrcode"
)

// passkeyRepository is the PostgreSQL-backed implementation of
// [passkeys.CredentialRegistry]. Credential ids are stored in canonical
// base64url form; normalization happens here so rows written by older
// clients with padded or standard-alphabet ids still match.
//
// Transports are stored as a JSON-encoded text column.
type passkeyRepository struct {
	*DB
	logger *logger.Logger
}

// NewPasskeyRepository constructs a [passkeys.CredentialRegistry] backed by
// the provided database connection and logger.
func NewPasskeyRepository(db *DB, logger *logger.Logger) passkeys.CredentialRegistry {
	logger.Debug().Msg("creating passkey repository")
	return &passkeyRepository{
		DB:     db,
		logger: logger,
	}
}

// Register stores a new credential. A unique index on credential_id makes
// duplicates across all accounts impossible; the violation maps to
// [passkeys.ErrDuplicateCredential].
func (p *passkeyRepository) Register(ctx context.Context, passkey models.Passkey) (models.Passkey, error) {
	log := logger.FromContext(ctx)

	passkey.CredentialID = passkeys.NormalizeCredentialID(passkey.CredentialID)

	transports, err := json.Marshal(passkey.Transports)
	if err != nil {
		return models.Passkey{}, fmt.Errorf("encoding transports: %w", err)
	}

	row := p.DB.QueryRowContext(ctx, createPasskey,
		passkey.UserID, passkey.CredentialID, passkey.PublicKey, passkey.SignCount, transports)

	if err := row.Scan(&passkey.ID, &passkey.CreatedAt); err != nil {
		log.Err(err).
			Str("func", "passkeyRepository.Register").
			Int64("user_id", passkey.UserID).
			Msg("failed to insert passkey")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Passkey{}, passkeys.ErrDuplicateCredential
		default:
			return models.Passkey{}, p.classify(fmt.Errorf("%w: %w", ErrExecutingStatement, err))
		}
	}

	return passkey, nil
}

// ListFor returns every credential registered for the account.
func (p *passkeyRepository) ListFor(ctx context.Context, userID int64) ([]models.Passkey, error) {
	log := logger.FromContext(ctx)

	rows, err := p.DB.QueryContext(ctx, listPasskeys, userID)
	if err != nil {
		log.Err(err).
			Str("func", "passkeyRepository.ListFor").
			Int64("user_id", userID).
			Msg("failed to query passkeys")
		return nil, p.classify(fmt.Errorf("%w: %w", ErrExecutingQuery, err))
	}
	defer rows.Close()

	results := make([]models.Passkey, 0, 4)

	for rows.Next() {
		passkey, scanErr := scanPasskey(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "passkeyRepository.ListFor").
				Int64("user_id", userID).
				Msg("failed to scan passkey row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}

		results = append(results, passkey)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, p.classify(fmt.Errorf("%w: %w", ErrExecutingQuery, rowsErr))
	}

	return results, nil
}

// Find returns the account's credential with the given id, normalizing the
// id before the lookup. Returns [passkeys.ErrCredentialNotFound] when no
// matching row exists.
func (p *passkeyRepository) Find(ctx context.Context, userID int64, credentialID string) (models.Passkey, error) {
	log := logger.FromContext(ctx)

	canonical := passkeys.NormalizeCredentialID(credentialID)

	passkey, err := scanPasskey(p.DB.QueryRowContext(ctx, findPasskey, userID, canonical))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Passkey{}, passkeys.ErrCredentialNotFound
		}

		log.Err(err).
			Str("func", "passkeyRepository.Find").
			Int64("user_id", userID).
			Msg("failed to query passkey")
		return models.Passkey{}, p.classify(fmt.Errorf("%w: %w", ErrExecutingQuery, err))
	}

	return passkey, nil
}

// UpdateCounter advances the signature counter. The UPDATE only touches rows
// whose stored counter is strictly below newCount, so monotonicity holds even
// under concurrent assertions; a zero-row result is disambiguated with a
// follow-up lookup.
func (p *passkeyRepository) UpdateCounter(ctx context.Context, userID int64, credentialID string, newCount uint32) error {
	log := logger.FromContext(ctx)

	canonical := passkeys.NormalizeCredentialID(credentialID)

	result, err := p.DB.ExecContext(ctx, advancePasskeyCounter, userID, canonical, newCount)
	if err != nil {
		log.Err(err).
			Str("func", "passkeyRepository.UpdateCounter").
			Int64("user_id", userID).
			Msg("failed to update sign count")
		return p.classify(fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		if _, findErr := p.Find(ctx, userID, canonical); findErr != nil {
			return findErr
		}
		return passkeys.ErrStaleCounter
	}

	return nil
}

func scanPasskey(row rowScanner) (models.Passkey, error) {
	var (
		passkey    models.Passkey
		transports []byte
	)

	err := row.Scan(
		&passkey.ID,
		&passkey.UserID,
		&passkey.CredentialID,
		&passkey.PublicKey,
		&passkey.SignCount,
		&transports,
		&passkey.CreatedAt,
		&passkey.LastUsedAt,
	)
	if err != nil {
		return models.Passkey{}, err
	}

	if len(transports) > 0 {
		if err := json.Unmarshal(transports, &passkey.Transports); err != nil {
			return models.Passkey{}, fmt.Errorf("decoding transports: %w", err)
		}
	}

	return passkey, nil
}
