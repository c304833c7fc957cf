package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
)

// vaultRepository is the PostgreSQL-backed implementation of
// [VaultRepository]. It executes all vault-entry CRUD operations against the
// "vault_entries" table using the embedded [*DB] connection.
//
// The envelope produced by the client is stored as two bytea columns
// (secret_nonce, secret_ciphertext); the server never holds a key that could
// open it.
type vaultRepository struct {
	*DB
	logger *logger.Logger
}

// NewVaultRepository constructs a [VaultRepository] backed by the provided
// database connection and logger.
func NewVaultRepository(db *DB, logger *logger.Logger) VaultRepository {
	logger.Debug().Msg("creating vault repository")
	return &vaultRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateEntry persists a new vault entry and returns it with server-assigned
// fields (ID, CreatedAt, UpdatedAt) populated from the RETURNING clause.
func (p *vaultRepository) CreateEntry(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateEntryQuery(entry)
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.CreateEntry").
			Int64("user_id", entry.UserID).
			Msg("failed to build insert query")
		return models.VaultEntry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := p.DB.QueryRowContext(ctx, query, args...)

	saved, err := scanVaultEntry(row)
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.CreateEntry").
			Int64("user_id", entry.UserID).
			Msg("failed to insert vault entry")
		return models.VaultEntry{}, p.classify(fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}

	return saved, nil
}

// GetEntries retrieves every vault entry belonging to userID, ordered by ID.
func (p *vaultRepository) GetEntries(ctx context.Context, userID int64) ([]models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetEntriesQuery(userID)
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.GetEntries").
			Int64("user_id", userID).
			Msg("failed to build select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.GetEntries").
			Int64("user_id", userID).
			Msg("failed to execute query for vault entries")
		return nil, p.classify(fmt.Errorf("%w: %w", ErrExecutingQuery, err))
	}
	defer rows.Close()

	results := make([]models.VaultEntry, 0, 50)

	for rows.Next() {
		entry, scanErr := scanVaultEntry(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "vaultRepository.GetEntries").
				Int64("user_id", userID).
				Msg("failed to scan vault entry row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}

		results = append(results, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "vaultRepository.GetEntries").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, p.classify(fmt.Errorf("%w: %w", ErrExecutingQuery, rowsErr))
	}

	return results, nil
}

// GetEntry retrieves a single vault entry scoped to its owner.
// Returns [ErrEntryNotFound] when no matching row exists.
func (p *vaultRepository) GetEntry(ctx context.Context, userID, entryID int64) (models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetEntryQuery(userID, entryID)
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.GetEntry").
			Int64("user_id", userID).
			Msg("failed to build select query")
		return models.VaultEntry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	entry, err := scanVaultEntry(p.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.VaultEntry{}, ErrEntryNotFound
		}

		log.Err(err).
			Str("func", "vaultRepository.GetEntry").
			Int64("user_id", userID).
			Int64("entry_id", entryID).
			Msg("failed to query vault entry")
		return models.VaultEntry{}, p.classify(fmt.Errorf("%w: %w", ErrExecutingQuery, err))
	}

	return entry, nil
}

// UpdateEntry overwrites a vault entry's mutable fields and bumps updated_at.
// The WHERE clause is scoped by owner, so a user can never touch another
// user's rows. Returns [ErrEntryNotFound] when no matching row exists.
func (p *vaultRepository) UpdateEntry(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateEntryQuery(entry)
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.UpdateEntry").
			Int64("user_id", entry.UserID).
			Msg("failed to build update query")
		return models.VaultEntry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanVaultEntry(p.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.VaultEntry{}, ErrEntryNotFound
		}

		log.Err(err).
			Str("func", "vaultRepository.UpdateEntry").
			Int64("user_id", entry.UserID).
			Int64("entry_id", entry.ID).
			Msg("failed to update vault entry")
		return models.VaultEntry{}, p.classify(fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}

	return updated, nil
}

// DeleteEntry removes a vault entry scoped to its owner.
// Returns [ErrEntryNotFound] when no matching row exists.
func (p *vaultRepository) DeleteEntry(ctx context.Context, userID, entryID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteEntryQuery(userID, entryID)
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.DeleteEntry").
			Int64("user_id", userID).
			Msg("failed to build delete query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := p.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.DeleteEntry").
			Int64("user_id", userID).
			Int64("entry_id", entryID).
			Msg("failed to delete vault entry")
		return p.classify(fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanVaultEntry(row rowScanner) (models.VaultEntry, error) {
	var entry models.VaultEntry

	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Title,
		&entry.Username,
		&entry.Secret.Nonce,
		&entry.Secret.Ciphertext,
		&entry.Website,
		&entry.Category,
		&entry.Notes,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return models.VaultEntry{}, err
	}

	return entry, nil
}
