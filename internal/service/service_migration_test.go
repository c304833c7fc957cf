// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
)

// legacyTestKey is a fixed 32-byte key standing in for the retired
// server-side encryption key.
var legacyTestKey = bytes.Repeat([]byte{0x42}, 32)

func newTestMigrationService(t *testing.T, repo *mockVaultRepository, legacyKeyHex string) MigrationService {
	t.Helper()

	svc, err := NewMigrationService(repo, crypto.NewVaultKeyService(), config.App{
		LegacyEncryptionKey: legacyKeyHex,
	}, logger.Nop())
	require.NoError(t, err)
	return svc
}

func TestMigrationService_ExportLegacyEntries(t *testing.T) {
	keyService := crypto.NewVaultKeyService()

	legacySecret, err := keyService.Encrypt([]byte("hunter2"), legacyTestKey)
	require.NoError(t, err)

	// A record the user already re-encrypted client-side: the legacy key
	// must not open it.
	clientKey := bytes.Repeat([]byte{0x07}, 32)
	clientSecret, err := keyService.Encrypt([]byte("already migrated"), clientKey)
	require.NoError(t, err)

	repo := &mockVaultRepository{
		entriesFn: func(_ context.Context, userID int64) ([]models.VaultEntry, error) {
			return []models.VaultEntry{
				{ID: 1, UserID: userID, Title: "GitHub", Username: "john", Secret: legacySecret},
				{ID: 2, UserID: userID, Title: "Bank", Secret: clientSecret},
				{ID: 3, UserID: userID, Title: "Empty"},
			}, nil
		},
	}
	svc := newTestMigrationService(t, repo, hex.EncodeToString(legacyTestKey))

	items, err := svc.ExportLegacyEntries(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, "GitHub", items[0].Title)
	assert.Equal(t, "hunter2", items[0].SecretPlain)
}

func TestMigrationService_Disabled(t *testing.T) {
	svc := newTestMigrationService(t, &mockVaultRepository{}, "")

	_, err := svc.ExportLegacyEntries(context.Background(), 7)

	assert.ErrorIs(t, err, ErrMigrationDisabled)
}

func TestMigrationService_MalformedKeyRejected(t *testing.T) {
	_, err := NewMigrationService(&mockVaultRepository{}, crypto.NewVaultKeyService(), config.App{
		LegacyEncryptionKey: "not hex at all",
	}, logger.Nop())

	assert.Error(t, err)
}

func TestMigrationService_RepositoryError(t *testing.T) {
	repo := &mockVaultRepository{
		entriesFn: func(_ context.Context, _ int64) ([]models.VaultEntry, error) {
			return nil, errRepository
		},
	}
	svc := newTestMigrationService(t, repo, hex.EncodeToString(legacyTestKey))

	_, err := svc.ExportLegacyEntries(context.Background(), 7)

	assert.ErrorIs(t, err, errRepository)
}
