package service

import (
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/passkeys"
	"github.com/MKhiriev/go-pass-vault/internal/store"
)

// Services bundles every application service behind its interface, ready to
// be handed to the HTTP handler layer.
type Services struct {
	AuthService      AuthService
	VaultService     VaultService
	PasskeyService   PasskeyService
	MigrationService MigrationService
	AppInfoService   AppInfoService
}

// NewServices wires the full service layer: the key service backs both
// registration salts and legacy-record decryption, and the passkey ceremony
// is built from its storage-backed challenge store and credential registry.
func NewServices(storages store.Storages, keyService crypto.VaultKeyService, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	ceremony, err := passkeys.NewCeremony(passkeys.Config{
		RPID:          cfg.Passkey.RPID,
		RPDisplayName: cfg.Passkey.RPDisplayName,
		RPOrigins:     cfg.Passkey.RPOrigins,
		ChallengeTTL:  cfg.Passkey.ChallengeTTL,
		VerifyTimeout: cfg.Passkey.VerifyTimeout,
	}, storages.ChallengeStore, storages.CredentialRegistry, logger)
	if err != nil {
		return nil, fmt.Errorf("creating passkey ceremony: %w", err)
	}

	migrationService, err := NewMigrationService(storages.VaultRepository, keyService, cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("creating migration service: %w", err)
	}

	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("creating app info service: %w", err)
	}

	return &Services{
		AuthService:      NewAuthService(storages.UserRepository, keyService, cfg.App, logger),
		VaultService:     NewVaultService(storages.VaultRepository, logger),
		PasskeyService:   NewPasskeyService(ceremony, storages.UserRepository, logger),
		MigrationService: migrationService,
		AppInfoService:   appInfoService,
	}, nil
}
