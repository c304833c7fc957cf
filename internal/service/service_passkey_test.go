// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/passkeys"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/models"
)

// The protocol-level registration and authentication flows are covered in
// the passkeys package with a virtual authenticator; here we test the
// account-resolution layer on top of the ceremony.

func newTestPasskeyService(t *testing.T, repo *mockUserRepository) PasskeyService {
	t.Helper()

	ceremony, err := passkeys.NewCeremony(passkeys.Config{
		RPID:          "vault.example.com",
		RPDisplayName: "Vault",
		RPOrigins:     []string{"https://vault.example.com"},
	}, passkeys.NewMemoryChallengeStore(), passkeys.NewMemoryCredentialRegistry(), logger.Nop())
	require.NoError(t, err)

	return NewPasskeyService(ceremony, repo, logger.Nop())
}

func knownUserRepo() *mockUserRepository {
	return &mockUserRepository{
		findByIDFn: func(_ context.Context, userID int64) (models.User, error) {
			return models.User{UserID: userID, Email: "john@example.com"}, nil
		},
		findByEmailFn: func(_ context.Context, email string) (models.User, error) {
			return models.User{UserID: 7, Email: email}, nil
		},
	}
}

func TestPasskeyService_BeginRegistration_IssuesOptions(t *testing.T) {
	svc := newTestPasskeyService(t, knownUserRepo())

	options, err := svc.BeginRegistration(context.Background(), 7)

	require.NoError(t, err)
	require.NotNil(t, options)
	assert.Equal(t, "vault.example.com", options.Response.RelyingParty.ID)
	assert.NotEmpty(t, options.Response.Challenge)
}

func TestPasskeyService_BeginRegistration_UnknownUser(t *testing.T) {
	svc := newTestPasskeyService(t, &mockUserRepository{})

	_, err := svc.BeginRegistration(context.Background(), 404)

	assert.ErrorIs(t, err, store.ErrNoUserWasFound)
}

func TestPasskeyService_BeginAuthentication_EmptyEmail(t *testing.T) {
	svc := newTestPasskeyService(t, knownUserRepo())

	_, err := svc.BeginAuthentication(context.Background(), "")

	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestPasskeyService_BeginAuthentication_UnknownEmail(t *testing.T) {
	svc := newTestPasskeyService(t, &mockUserRepository{})

	_, err := svc.BeginAuthentication(context.Background(), "nobody@example.com")

	assert.ErrorIs(t, err, store.ErrNoUserWasFound)
}

func TestPasskeyService_BeginAuthentication_NoPasskeys(t *testing.T) {
	svc := newTestPasskeyService(t, knownUserRepo())

	_, err := svc.BeginAuthentication(context.Background(), "john@example.com")

	assert.ErrorIs(t, err, passkeys.ErrNoCredentialsRegistered)
}

func TestPasskeyService_FinishAuthentication_EmptyEmail(t *testing.T) {
	svc := newTestPasskeyService(t, knownUserRepo())

	_, err := svc.FinishAuthentication(context.Background(), "", nil)

	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestPasskeyService_FinishRegistration_NoChallenge(t *testing.T) {
	svc := newTestPasskeyService(t, knownUserRepo())

	_, err := svc.FinishRegistration(context.Background(), 7, nil)

	assert.ErrorIs(t, err, passkeys.ErrChallengeNotFound)
}
