package service

import (
	"context"

	"github.com/go-webauthn/webauthn/protocol"

	"github.com/MKhiriev/go-pass-vault/models"
)

type VaultService interface {
	CreateEntry(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error)
	GetEntries(ctx context.Context, userID int64) ([]models.VaultEntry, error)
	GetEntry(ctx context.Context, userID, entryID int64) (models.VaultEntry, error)
	UpdateEntry(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error)
	DeleteEntry(ctx context.Context, userID, entryID int64) error
}

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	Params(ctx context.Context, email string) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// PasskeyService runs WebAuthn registration and authentication ceremonies.
// Registration requires an authenticated account; authentication starts from
// an email because no token exists yet.
type PasskeyService interface {
	BeginRegistration(ctx context.Context, userID int64) (*protocol.CredentialCreation, error)
	FinishRegistration(ctx context.Context, userID int64, response *protocol.ParsedCredentialCreationData) (models.Passkey, error)
	BeginAuthentication(ctx context.Context, email string) (*protocol.CredentialAssertion, error)
	FinishAuthentication(ctx context.Context, email string, response *protocol.ParsedCredentialAssertionData) (models.User, error)
}

// MigrationService exports vault entries that are still encrypted with the
// retired server-side key, decrypted for the client to re-encrypt under its
// own derived key.
type MigrationService interface {
	ExportLegacyEntries(ctx context.Context, userID int64) ([]models.MigrationItem, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
