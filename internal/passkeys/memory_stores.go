// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package passkeys

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-pass-vault/models"
)

// MemoryChallengeStore is an in-memory implementation of [ChallengeStore]
// backed by a mutex-guarded map. Suitable for tests and single-instance
// deployments; multi-instance servers should use the SQL-backed store so
// any instance can finish a ceremony another instance began.
type MemoryChallengeStore struct {
	mu  sync.Mutex
	m   map[int64]models.PasskeyChallenge
	now func() time.Time
}

// NewMemoryChallengeStore creates an empty in-memory challenge store.
func NewMemoryChallengeStore() *MemoryChallengeStore {
	return &MemoryChallengeStore{
		m:   make(map[int64]models.PasskeyChallenge),
		now: time.Now,
	}
}

// Save implements [ChallengeStore]. Overwrites any prior challenge for the
// same account (last-writer-wins).
func (s *MemoryChallengeStore) Save(_ context.Context, challenge models.PasskeyChallenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.m[challenge.UserID] = challenge
	return nil
}

// Consume implements [ChallengeStore]. It deletes the challenge under the
// same lock that reads it, so two concurrent consumers can never both
// succeed with the same challenge.
func (s *MemoryChallengeStore) Consume(_ context.Context, userID int64) (models.PasskeyChallenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	challenge, ok := s.m[userID]
	if !ok {
		return models.PasskeyChallenge{}, ErrChallengeNotFound
	}
	delete(s.m, userID)

	if challenge.Expired(s.now()) {
		return models.PasskeyChallenge{}, ErrChallengeNotFound
	}

	return challenge, nil
}

// PurgeExpired implements [ChallengeStore].
func (s *MemoryChallengeStore) PurgeExpired(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var purged int64
	for userID, challenge := range s.m {
		if challenge.Expired(now) {
			delete(s.m, userID)
			purged++
		}
	}

	return purged, nil
}

// MemoryCredentialRegistry is an in-memory implementation of
// [CredentialRegistry] backed by mutex-guarded maps. Intended for tests and
// development.
type MemoryCredentialRegistry struct {
	mu     sync.RWMutex
	byID   map[string]models.Passkey // canonical credential id -> passkey
	byUser map[int64][]string        // account -> canonical credential ids
	nextID int64
}

// NewMemoryCredentialRegistry creates an empty in-memory credential registry.
func NewMemoryCredentialRegistry() *MemoryCredentialRegistry {
	return &MemoryCredentialRegistry{
		byID:   make(map[string]models.Passkey),
		byUser: make(map[int64][]string),
	}
}

// Register implements [CredentialRegistry]. Credential ids are normalized
// before use and checked for global uniqueness.
func (r *MemoryCredentialRegistry) Register(_ context.Context, passkey models.Passkey) (models.Passkey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	passkey.CredentialID = NormalizeCredentialID(passkey.CredentialID)
	if _, exists := r.byID[passkey.CredentialID]; exists {
		return models.Passkey{}, ErrDuplicateCredential
	}

	r.nextID++
	passkey.ID = r.nextID
	if passkey.CreatedAt.IsZero() {
		passkey.CreatedAt = time.Now()
	}

	r.byID[passkey.CredentialID] = passkey
	r.byUser[passkey.UserID] = append(r.byUser[passkey.UserID], passkey.CredentialID)

	return passkey, nil
}

// ListFor implements [CredentialRegistry].
func (r *MemoryCredentialRegistry) ListFor(_ context.Context, userID int64) ([]models.Passkey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byUser[userID]
	passkeys := make([]models.Passkey, 0, len(ids))
	for _, id := range ids {
		passkeys = append(passkeys, r.byID[id])
	}

	return passkeys, nil
}

// Find implements [CredentialRegistry]. The supplied credential id is
// normalized before lookup.
func (r *MemoryCredentialRegistry) Find(_ context.Context, userID int64, credentialID string) (models.Passkey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	passkey, ok := r.byID[NormalizeCredentialID(credentialID)]
	if !ok || passkey.UserID != userID {
		return models.Passkey{}, ErrCredentialNotFound
	}

	return passkey, nil
}

// UpdateCounter implements [CredentialRegistry]. The read-compare-write runs
// under one lock, which gives the strict monotonicity guarantee under
// concurrent authentications for the same credential.
func (r *MemoryCredentialRegistry) UpdateCounter(_ context.Context, userID int64, credentialID string, newCount uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := NormalizeCredentialID(credentialID)
	passkey, ok := r.byID[id]
	if !ok || passkey.UserID != userID {
		return ErrCredentialNotFound
	}

	if newCount <= passkey.SignCount {
		return ErrStaleCounter
	}

	passkey.SignCount = newCount
	passkey.LastUsedAt = time.Now()
	r.byID[id] = passkey

	return nil
}
