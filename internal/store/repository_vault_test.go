package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
)

func newTestVaultRepo(t *testing.T) (*vaultRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &vaultRepository{
		DB:     &DB{DB: db, logger: l, errorClassificator: NewPostgresErrorClassifier()},
		logger: l,
	}
	return repo, mock, db
}

func vaultEntryRows(entries ...models.VaultEntry) *sqlmock.Rows {
	rows := sqlmock.NewRows(vaultEntryColumns)
	for _, e := range entries {
		rows.AddRow(e.ID, e.UserID, e.Title, e.Username,
			e.Secret.Nonce, e.Secret.Ciphertext,
			e.Website, e.Category, e.Notes, e.CreatedAt, e.UpdatedAt)
	}
	return rows
}

func sampleEntry() models.VaultEntry {
	now := time.Now()
	return models.VaultEntry{
		ID:       10,
		UserID:   1,
		Title:    "github",
		Username: "alice",
		Secret: models.CipherEnvelope{
			Nonce:      []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
			Ciphertext: []byte("opaque blob"),
		},
		Website:   "https://github.com",
		Category:  "work",
		Notes:     "2fa enabled",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateEntry_Success(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	entry := sampleEntry()

	mock.ExpectQuery("INSERT INTO vault_entries").
		WithArgs(entry.UserID, entry.Title, entry.Username,
			entry.Secret.Nonce, entry.Secret.Ciphertext,
			entry.Website, entry.Category, entry.Notes).
		WillReturnRows(vaultEntryRows(entry))

	saved, err := repo.CreateEntry(context.Background(), entry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.ID != entry.ID {
		t.Errorf("expected ID=%d, got %d", entry.ID, saved.ID)
	}
	if string(saved.Secret.Ciphertext) != string(entry.Secret.Ciphertext) {
		t.Error("ciphertext must round-trip through the repository unchanged")
	}
}

func TestGetEntries_Success(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	first := sampleEntry()
	second := sampleEntry()
	second.ID = 11
	second.Title = "gitlab"

	mock.ExpectQuery("SELECT (.+) FROM vault_entries").
		WithArgs(int64(1)).
		WillReturnRows(vaultEntryRows(first, second))

	entries, err := repo.GetEntries(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1].Title != "gitlab" {
		t.Errorf("expected second entry title 'gitlab', got %q", entries[1].Title)
	}
}

func TestGetEntries_Empty(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM vault_entries").
		WithArgs(int64(99)).
		WillReturnRows(vaultEntryRows())

	entries, err := repo.GetEntries(context.Background(), 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestGetEntry_NotFound(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM vault_entries").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetEntry(context.Background(), 1, 404)
	if !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestUpdateEntry_Success(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	entry := sampleEntry()
	entry.Title = "github (renamed)"

	mock.ExpectQuery("UPDATE vault_entries").
		WillReturnRows(vaultEntryRows(entry))

	updated, err := repo.UpdateEntry(context.Background(), entry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != entry.Title {
		t.Errorf("expected title %q, got %q", entry.Title, updated.Title)
	}
}

func TestUpdateEntry_NotFound(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	mock.ExpectQuery("UPDATE vault_entries").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateEntry(context.Background(), sampleEntry())
	if !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestDeleteEntry_Success(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM vault_entries").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteEntry(context.Background(), 1, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteEntry_NotFound(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM vault_entries").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteEntry(context.Background(), 1, 404)
	if !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}
