// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer used by the CLI client to talk
// to the vault server.
//
// The primary abstraction is [ServerAdapter], which decouples the client
// commands from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

// ServerAdapter defines transport-agnostic communication with the vault
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. It is called automatically after a
	// successful Register or Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates a new account with the provided email and password.
	// On success it stores the returned bearer token via SetToken.
	Register(ctx context.Context, user models.User) (models.User, error)

	// RequestSalt fetches the per-account encryption salt stored for
	// user.Email during registration. The salt is needed to derive the vault
	// key before any secret can be encrypted or decrypted. Returns a partial
	// [models.User] containing only Email and EncryptionSalt.
	RequestSalt(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates with email and password. On success it stores the
	// returned bearer token via SetToken.
	Login(ctx context.Context, user models.User) error

	// CreateEntry uploads a new vault entry. The entry's secret must already
	// be encrypted client-side. Returns the stored entry with its
	// server-assigned ID.
	CreateEntry(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error)

	// ListEntries fetches all vault entries owned by the authenticated user.
	// Secrets remain encrypted.
	ListEntries(ctx context.Context) ([]models.VaultEntry, error)

	// GetEntry fetches a single vault entry by its server-assigned ID.
	// Returns [ErrNotFound] (wrapped) if the entry does not exist or belongs
	// to another account.
	GetEntry(ctx context.Context, entryID int64) (models.VaultEntry, error)

	// UpdateEntry replaces the stored entry identified by entry.ID.
	UpdateEntry(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error)

	// DeleteEntry removes the entry identified by entryID.
	DeleteEntry(ctx context.Context, entryID int64) error

	// ExportLegacyEntries fetches vault records still encrypted with the
	// legacy server-side key, decrypted for one-time re-encryption under the
	// user's derived key. Returns [ErrNotFound] (wrapped) when the server has
	// migration disabled.
	ExportLegacyEntries(ctx context.Context) ([]models.MigrationItem, error)
}
