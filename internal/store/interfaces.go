package store

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

// UserRepository persists user accounts and their credential-verification
// material (HMAC auth hash and encryption salt).
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// VaultRepository persists encrypted vault entries. The server never sees
// entry plaintext: the Secret field holds the client-produced envelope.
type VaultRepository interface {
	CreateEntry(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error)
	GetEntries(ctx context.Context, userID int64) ([]models.VaultEntry, error)
	GetEntry(ctx context.Context, userID, entryID int64) (models.VaultEntry, error)
	UpdateEntry(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error)
	DeleteEntry(ctx context.Context, userID, entryID int64) error
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying. Implemented for PostgreSQL by [PostgresErrorClassifier].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
