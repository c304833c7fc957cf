package store

import (
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/passkeys"
)

// Storages bundles every repository the service layer depends on.
type Storages struct {
	UserRepository     UserRepository
	VaultRepository    VaultRepository
	CredentialRegistry passkeys.CredentialRegistry
	ChallengeStore     passkeys.ChallengeStore
}

// NewStorages wires all PostgreSQL-backed repositories to the given
// database connection.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:     NewUserRepository(db, log),
		VaultRepository:    NewVaultRepository(db, log),
		CredentialRegistry: NewPasskeyRepository(db, log),
		ChallengeStore:     NewChallengeRepository(db, log),
	}
}
