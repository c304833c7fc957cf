package passkeys

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

// ChallengeStore keeps the outstanding ceremony challenge per account.
//
// Invariants the implementations must uphold under concurrent requests for
// the same account (via per-account mutual exclusion or atomic SQL):
//   - at most one live challenge per account; Save overwrites and thereby
//     invalidates any previous challenge (last writer wins, acceptable for
//     a single legitimate user per account);
//   - a challenge is consumed exactly once: Consume returns it and deletes
//     it atomically.
type ChallengeStore interface {
	// Save stores the challenge for its account, replacing any prior one.
	Save(ctx context.Context, challenge models.PasskeyChallenge) error

	// Consume returns and deletes the current challenge for the account.
	// Returns ErrChallengeNotFound if none exists or it has expired.
	Consume(ctx context.Context, userID int64) (models.PasskeyChallenge, error)

	// PurgeExpired removes every challenge whose deadline has passed and
	// reports how many were removed. Expired rows are already invisible to
	// Consume; purging only reclaims storage.
	PurgeExpired(ctx context.Context) (int64, error)
}

// CredentialRegistry is the per-account set of registered passkeys.
// Deletion is an account-management concern handled elsewhere; this
// interface only creates credentials and advances their counters.
type CredentialRegistry interface {
	// Register stores a new credential. Returns ErrDuplicateCredential if
	// the credential id already exists for any account.
	Register(ctx context.Context, passkey models.Passkey) (models.Passkey, error)

	// ListFor returns all credentials of the account, in no particular order.
	ListFor(ctx context.Context, userID int64) ([]models.Passkey, error)

	// Find returns the credential with the given canonical credential id,
	// or ErrCredentialNotFound.
	Find(ctx context.Context, userID int64, credentialID string) (models.Passkey, error)

	// UpdateCounter advances the signature counter. Returns ErrStaleCounter
	// unless newCount is strictly greater than the stored value.
	UpdateCounter(ctx context.Context, userID int64, credentialID string, newCount uint32) error
}
