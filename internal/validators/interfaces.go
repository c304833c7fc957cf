// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides input validation for vault entries, decoupled
// from transport layers and storage so the rules are reusable and testable
// on their own.
package validators

import "github.com/MKhiriev/go-pass-vault/models"

// VaultEntryValidator encodes the shape rules a vault entry must satisfy
// before it reaches the repository. The secret envelope is checked for
// presence only; it is never opened.
type VaultEntryValidator interface {
	// ValidateNew checks an entry about to be created: owner, title, and a
	// non-empty cipher envelope are required.
	ValidateNew(entry models.VaultEntry) error

	// ValidateUpdate checks an entry about to be overwritten: the same rules
	// as ValidateNew plus a server-assigned entry ID.
	ValidateUpdate(entry models.VaultEntry) error

	// ValidateRef checks a bare (owner, entry) reference used by lookups and
	// deletions.
	ValidateRef(userID, entryID int64) error
}
