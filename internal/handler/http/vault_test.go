// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/models"
)

// ─────────────────────────────────────────────
// Mock: VaultService (per-test overrides)
// ─────────────────────────────────────────────

type mockVaultService struct {
	createFn  func(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error)
	entriesFn func(ctx context.Context, userID int64) ([]models.VaultEntry, error)
	entryFn   func(ctx context.Context, userID, entryID int64) (models.VaultEntry, error)
	updateFn  func(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error)
	deleteFn  func(ctx context.Context, userID, entryID int64) error
}

func (m *mockVaultService) CreateEntry(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error) {
	return m.createFn(ctx, entry)
}

func (m *mockVaultService) GetEntries(ctx context.Context, userID int64) ([]models.VaultEntry, error) {
	return m.entriesFn(ctx, userID)
}

func (m *mockVaultService) GetEntry(ctx context.Context, userID, entryID int64) (models.VaultEntry, error) {
	return m.entryFn(ctx, userID, entryID)
}

func (m *mockVaultService) UpdateEntry(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error) {
	return m.updateFn(ctx, entry)
}

func (m *mockVaultService) DeleteEntry(ctx context.Context, userID, entryID int64) error {
	return m.deleteFn(ctx, userID, entryID)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func newVaultRouter(t *testing.T, vault service.VaultService) http.Handler {
	t.Helper()
	h := &Handler{
		logger: logger.Nop(),
		services: &service.Services{
			AuthService:  &mockAuthSvc{},
			VaultService: vault,
		},
	}
	return h.Init()
}

func vaultRequest(t *testing.T, method, path string, body string) *http.Request {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	req.Header.Set("Authorization", validAuthHeader())
	return req
}

func entryBody(t *testing.T, entry models.VaultEntry) string {
	t.Helper()
	b, err := json.Marshal(entry)
	require.NoError(t, err)
	return string(b)
}

func sampleVaultEntry() models.VaultEntry {
	return models.VaultEntry{
		Title: "GitHub",
		Secret: models.CipherEnvelope{
			Nonce:      []byte("0123456789ab"),
			Ciphertext: []byte("opaque"),
		},
	}
}

// ─────────────────────────────────────────────
// createEntry
// ─────────────────────────────────────────────

func TestCreateEntry_Success(t *testing.T) {
	var gotOwner int64
	vault := &mockVaultService{
		createFn: func(_ context.Context, entry models.VaultEntry) (models.VaultEntry, error) {
			gotOwner = entry.UserID
			entry.ID = 11
			return entry, nil
		},
	}
	router := newVaultRouter(t, vault)

	req := vaultRequest(t, http.MethodPost, "/api/passwords/", entryBody(t, sampleVaultEntry()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	// Owner must come from the verified token, not from the body.
	assert.Equal(t, int64(1), gotOwner)

	var created models.VaultEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(11), created.ID)
}

func TestCreateEntry_OwnerFromTokenOverridesBody(t *testing.T) {
	var gotOwner int64
	vault := &mockVaultService{
		createFn: func(_ context.Context, entry models.VaultEntry) (models.VaultEntry, error) {
			gotOwner = entry.UserID
			return entry, nil
		},
	}
	router := newVaultRouter(t, vault)

	// Body claims user 999; the token says user 1.
	body := `{"title":"GitHub","password":{"iv":"MDEyMzQ1Njc4OWFi","ciphertext":"b3BhcXVl"},"user_id":999}`
	req := vaultRequest(t, http.MethodPost, "/api/passwords/", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(1), gotOwner)
}

func TestCreateEntry_InvalidJSON(t *testing.T) {
	router := newVaultRouter(t, &mockVaultService{})

	req := vaultRequest(t, http.MethodPost, "/api/passwords/", "{broken")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateEntry_ServiceError(t *testing.T) {
	vault := &mockVaultService{
		createFn: func(_ context.Context, _ models.VaultEntry) (models.VaultEntry, error) {
			return models.VaultEntry{}, service.ErrInvalidDataProvided
		},
	}
	router := newVaultRouter(t, vault)

	req := vaultRequest(t, http.MethodPost, "/api/passwords/", entryBody(t, sampleVaultEntry()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// listEntries / getEntry
// ─────────────────────────────────────────────

func TestListEntries_EmptyIsJSONArray(t *testing.T) {
	vault := &mockVaultService{
		entriesFn: func(_ context.Context, _ int64) ([]models.VaultEntry, error) {
			return nil, nil
		},
	}
	router := newVaultRouter(t, vault)

	req := vaultRequest(t, http.MethodGet, "/api/passwords/", "")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestGetEntry_Success(t *testing.T) {
	vault := &mockVaultService{
		entryFn: func(_ context.Context, userID, entryID int64) (models.VaultEntry, error) {
			return models.VaultEntry{ID: entryID, UserID: userID, Title: "GitHub"}, nil
		},
	}
	router := newVaultRouter(t, vault)

	req := vaultRequest(t, http.MethodGet, "/api/passwords/42", "")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got models.VaultEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(42), got.ID)
}

func TestGetEntry_NotFound(t *testing.T) {
	vault := &mockVaultService{
		entryFn: func(_ context.Context, _, _ int64) (models.VaultEntry, error) {
			return models.VaultEntry{}, store.ErrEntryNotFound
		},
	}
	router := newVaultRouter(t, vault)

	req := vaultRequest(t, http.MethodGet, "/api/passwords/42", "")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetEntry_NonNumericID(t *testing.T) {
	router := newVaultRouter(t, &mockVaultService{})

	req := vaultRequest(t, http.MethodGet, "/api/passwords/abc", "")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// updateEntry / deleteEntry
// ─────────────────────────────────────────────

func TestUpdateEntry_IDFromURL(t *testing.T) {
	var gotID int64
	vault := &mockVaultService{
		updateFn: func(_ context.Context, entry models.VaultEntry) (models.VaultEntry, error) {
			gotID = entry.ID
			return entry, nil
		},
	}
	router := newVaultRouter(t, vault)

	req := vaultRequest(t, http.MethodPut, "/api/passwords/7", entryBody(t, sampleVaultEntry()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), gotID)
}

func TestDeleteEntry_Success(t *testing.T) {
	var gotEntryID int64
	vault := &mockVaultService{
		deleteFn: func(_ context.Context, _, entryID int64) error {
			gotEntryID = entryID
			return nil
		},
	}
	router := newVaultRouter(t, vault)

	req := vaultRequest(t, http.MethodDelete, "/api/passwords/7", "")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(7), gotEntryID)
}

func TestDeleteEntry_NotFound(t *testing.T) {
	vault := &mockVaultService{
		deleteFn: func(_ context.Context, _, _ int64) error {
			return store.ErrEntryNotFound
		},
	}
	router := newVaultRouter(t, vault)

	req := vaultRequest(t, http.MethodDelete, "/api/passwords/7", "")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// direct handler call without user in context
// ─────────────────────────────────────────────

func TestCreateEntry_NoUserInContext(t *testing.T) {
	h := &Handler{logger: logger.Nop(), services: &service.Services{}}

	req := httptest.NewRequest(http.MethodPost, "/api/passwords/", strings.NewReader("{}"))
	rec := httptest.NewRecorder()

	h.createEntry(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
