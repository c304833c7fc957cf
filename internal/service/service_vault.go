package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/internal/validators"
	"github.com/MKhiriev/go-pass-vault/models"
)

// vaultService is the concrete implementation of VaultService.
// Entries arrive with their secret already sealed client-side; this layer
// only validates shape and ownership before delegating to the repository.
type vaultService struct {
	vaultRepository store.VaultRepository
	validator       validators.VaultEntryValidator
	logger          *logger.Logger
}

// NewVaultService constructs a VaultService backed by the given repository.
func NewVaultService(vaultRepository store.VaultRepository, logger *logger.Logger) VaultService {
	return &vaultService{
		vaultRepository: vaultRepository,
		validator:       validators.NewVaultEntryValidator(),
		logger:          logger,
	}
}

// CreateEntry persists a new vault entry for its owner.
//
// A title and a non-empty cipher envelope are required; everything else is
// optional. The envelope is stored as received, it is never opened here.
func (v *vaultService) CreateEntry(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	if err := v.validator.ValidateNew(entry); err != nil {
		log.Error().Err(err).Int64("user_id", entry.UserID).Msg("invalid vault entry provided")
		return models.VaultEntry{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	saved, err := v.vaultRepository.CreateEntry(ctx, entry)
	if err != nil {
		log.Err(err).Int64("user_id", entry.UserID).Msg("vault entry creation failed")
		return models.VaultEntry{}, fmt.Errorf("vault entry creation failed: %w", err)
	}

	return saved, nil
}

// GetEntries returns every entry of the account.
func (v *vaultService) GetEntries(ctx context.Context, userID int64) ([]models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	if userID <= 0 {
		return nil, ErrInvalidDataProvided
	}

	entries, err := v.vaultRepository.GetEntries(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("vault entries lookup failed")
		return nil, fmt.Errorf("vault entries lookup failed: %w", err)
	}

	return entries, nil
}

// GetEntry returns one entry scoped to its owner.
func (v *vaultService) GetEntry(ctx context.Context, userID, entryID int64) (models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	if err := v.validator.ValidateRef(userID, entryID); err != nil {
		return models.VaultEntry{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	entry, err := v.vaultRepository.GetEntry(ctx, userID, entryID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Int64("entry_id", entryID).Msg("vault entry lookup failed")
		return models.VaultEntry{}, fmt.Errorf("vault entry lookup failed: %w", err)
	}

	return entry, nil
}

// UpdateEntry overwrites an entry's mutable fields, keeping ownership fixed.
func (v *vaultService) UpdateEntry(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	if err := v.validator.ValidateUpdate(entry); err != nil {
		log.Error().Err(err).Int64("user_id", entry.UserID).Msg("invalid vault entry provided")
		return models.VaultEntry{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	updated, err := v.vaultRepository.UpdateEntry(ctx, entry)
	if err != nil {
		log.Err(err).Int64("user_id", entry.UserID).Int64("entry_id", entry.ID).Msg("vault entry update failed")
		return models.VaultEntry{}, fmt.Errorf("vault entry update failed: %w", err)
	}

	return updated, nil
}

// DeleteEntry removes an entry scoped to its owner.
func (v *vaultService) DeleteEntry(ctx context.Context, userID, entryID int64) error {
	log := logger.FromContext(ctx)

	if err := v.validator.ValidateRef(userID, entryID); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err := v.vaultRepository.DeleteEntry(ctx, userID, entryID); err != nil {
		log.Err(err).Int64("user_id", userID).Int64("entry_id", entryID).Msg("vault entry deletion failed")
		return fmt.Errorf("vault entry deletion failed: %w", err)
	}

	return nil
}
