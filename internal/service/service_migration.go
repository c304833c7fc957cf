package service

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/models"
)

// migrationService is the concrete implementation of MigrationService.
//
// Earlier deployments encrypted vault secrets server-side with a single
// static key. This service decrypts those records with the retired key so
// the web client can re-encrypt them under the user's derived key. It only
// ever decrypts records that belong to the requesting account, and it is
// disabled entirely unless the legacy key is configured.
type migrationService struct {
	vaultRepository store.VaultRepository
	keyService      crypto.VaultKeyService

	// legacyKey is the decoded retired server-side key, nil when migration
	// support is switched off.
	legacyKey []byte

	logger *logger.Logger
}

// NewMigrationService constructs a MigrationService. An empty
// cfg.LegacyEncryptionKey yields a service whose ExportLegacyEntries always
// returns ErrMigrationDisabled; a malformed key is rejected outright.
func NewMigrationService(vaultRepository store.VaultRepository, keyService crypto.VaultKeyService, cfg config.App, logger *logger.Logger) (MigrationService, error) {
	var legacyKey []byte
	if cfg.LegacyEncryptionKey != "" {
		decoded, err := hex.DecodeString(cfg.LegacyEncryptionKey)
		if err != nil {
			return nil, fmt.Errorf("decoding legacy encryption key: %w", err)
		}
		legacyKey = decoded
	}

	return &migrationService{
		vaultRepository: vaultRepository,
		keyService:      keyService,
		legacyKey:       legacyKey,
		logger:          logger,
	}, nil
}

// ExportLegacyEntries decrypts the account's vault secrets with the retired
// server-side key and returns them in plaintext, one item per record that
// the key still opens.
//
// Records already re-encrypted client-side fail the GCM authentication check
// under the legacy key; those are skipped rather than failing the whole
// export, so the endpoint stays usable mid-migration.
func (s *migrationService) ExportLegacyEntries(ctx context.Context, userID int64) ([]models.MigrationItem, error) {
	log := logger.FromContext(ctx)

	if len(s.legacyKey) == 0 {
		return nil, ErrMigrationDisabled
	}

	entries, err := s.vaultRepository.GetEntries(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("vault entries lookup failed")
		return nil, fmt.Errorf("vault entries lookup failed: %w", err)
	}

	items := make([]models.MigrationItem, 0, len(entries))
	for _, entry := range entries {
		if entry.Secret.IsZero() {
			continue
		}

		plaintext, err := s.keyService.Decrypt(entry.Secret, s.legacyKey)
		if err != nil {
			// Not a legacy record anymore. The secret is the user's own
			// client-side ciphertext, which the server cannot and must
			// not open.
			log.Debug().
				Int64("user_id", userID).
				Int64("entry_id", entry.ID).
				Msg("entry not decryptable with legacy key, skipping")
			continue
		}

		items = append(items, models.MigrationItem{
			ID:          entry.ID,
			Title:       entry.Title,
			Username:    entry.Username,
			SecretPlain: string(plaintext),
			Website:     entry.Website,
			Category:    entry.Category,
			Notes:       entry.Notes,
		})
	}

	log.Info().
		Int64("user_id", userID).
		Int("exported", len(items)).
		Msg("legacy entries exported")

	return items, nil
}
