package validators

import "github.com/MKhiriev/go-pass-vault/models"

type vaultEntryValidator struct{}

// NewVaultEntryValidator returns the stateless [VaultEntryValidator]
// implementation.
func NewVaultEntryValidator() VaultEntryValidator {
	return vaultEntryValidator{}
}

// ValidateNew implements [VaultEntryValidator].
func (vaultEntryValidator) ValidateNew(entry models.VaultEntry) error {
	if entry.UserID <= 0 {
		return ErrInvalidUserID
	}
	if entry.Title == "" {
		return ErrEmptyTitle
	}
	if entry.Secret.IsZero() {
		return ErrEmptySecret
	}

	return nil
}

// ValidateUpdate implements [VaultEntryValidator].
func (v vaultEntryValidator) ValidateUpdate(entry models.VaultEntry) error {
	if entry.ID <= 0 {
		return ErrInvalidEntryID
	}

	return v.ValidateNew(entry)
}

// ValidateRef implements [VaultEntryValidator].
func (vaultEntryValidator) ValidateRef(userID, entryID int64) error {
	if userID <= 0 {
		return ErrInvalidUserID
	}
	if entryID <= 0 {
		return ErrInvalidEntryID
	}

	return nil
}
