package validators

import (
	"testing"

	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/stretchr/testify/assert"
)

func validEntry() models.VaultEntry {
	return models.VaultEntry{
		UserID: 1,
		Title:  "example.com",
		Secret: models.CipherEnvelope{Nonce: []byte("0123456789ab"), Ciphertext: []byte("opaque")},
	}
}

func TestValidateNew(t *testing.T) {
	v := NewVaultEntryValidator()

	assert.NoError(t, v.ValidateNew(validEntry()))

	missingOwner := validEntry()
	missingOwner.UserID = 0
	assert.ErrorIs(t, v.ValidateNew(missingOwner), ErrInvalidUserID)

	missingTitle := validEntry()
	missingTitle.Title = ""
	assert.ErrorIs(t, v.ValidateNew(missingTitle), ErrEmptyTitle)

	missingSecret := validEntry()
	missingSecret.Secret = models.CipherEnvelope{}
	assert.ErrorIs(t, v.ValidateNew(missingSecret), ErrEmptySecret)
}

func TestValidateUpdate(t *testing.T) {
	v := NewVaultEntryValidator()

	entry := validEntry()
	entry.ID = 42
	assert.NoError(t, v.ValidateUpdate(entry))

	entry.ID = 0
	assert.ErrorIs(t, v.ValidateUpdate(entry), ErrInvalidEntryID)
}

func TestValidateRef(t *testing.T) {
	v := NewVaultEntryValidator()

	assert.NoError(t, v.ValidateRef(1, 42))
	assert.ErrorIs(t, v.ValidateRef(0, 42), ErrInvalidUserID)
	assert.ErrorIs(t, v.ValidateRef(1, 0), ErrInvalidEntryID)
	assert.ErrorIs(t, v.ValidateRef(1, -5), ErrInvalidEntryID)
}
