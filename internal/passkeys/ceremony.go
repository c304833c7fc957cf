// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package passkeys

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
)

// Config holds the relying-party parameters of the WebAuthn ceremonies.
// All values are read once at process start.
type Config struct {
	// RPID is the relying-party identifier, typically the bare domain name.
	RPID string

	// RPDisplayName is the human-readable relying-party name shown by
	// browsers during the ceremony.
	RPDisplayName string

	// RPOrigins are the web origins allowed to answer a challenge.
	RPOrigins []string

	// ChallengeTTL bounds how long an issued challenge stays valid.
	// Defaults to 5 minutes.
	ChallengeTTL time.Duration

	// VerifyTimeout bounds a single attestation/assertion verification.
	// A verification that exceeds it fails the ceremony instead of hanging
	// the request. Defaults to 5 seconds.
	VerifyTimeout time.Duration
}

func (c *Config) setDefaults() {
	if c.ChallengeTTL == 0 {
		c.ChallengeTTL = 5 * time.Minute
	}
	if c.VerifyTimeout == 0 {
		c.VerifyTimeout = 5 * time.Second
	}
}

// Ceremony orchestrates passkey registration and authentication for vault
// accounts. Each ceremony runs Idle -> ChallengeIssued (Begin*) ->
// Verified/Failed (Finish*); the state between the two halves lives
// entirely in the injected [ChallengeStore], so any server instance can
// finish a ceremony another instance began.
//
// Ceremony is stateless after construction and safe for concurrent use.
type Ceremony struct {
	webauthn   *webauthn.WebAuthn
	challenges ChallengeStore
	registry   CredentialRegistry
	cfg        Config
	logger     *logger.Logger
}

// NewCeremony constructs a [Ceremony] with the given relying-party
// configuration and stores. Returns an error if the configuration is
// rejected by the underlying WebAuthn library.
func NewCeremony(cfg Config, challenges ChallengeStore, registry CredentialRegistry, log *logger.Logger) (*Ceremony, error) {
	cfg.setDefaults()

	wa, err := webauthn.New(&webauthn.Config{
		RPID:                  cfg.RPID,
		RPDisplayName:         cfg.RPDisplayName,
		RPOrigins:             cfg.RPOrigins,
		AttestationPreference: protocol.PreferNoAttestation,
		AuthenticatorSelection: protocol.AuthenticatorSelection{
			ResidentKey:      protocol.ResidentKeyRequirementPreferred,
			UserVerification: protocol.VerificationPreferred,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating webauthn relying party: %w", err)
	}

	return &Ceremony{
		webauthn:   wa,
		challenges: challenges,
		registry:   registry,
		cfg:        cfg,
		logger:     log,
	}, nil
}

// BeginRegistration starts a registration ceremony for the account: issues
// a fresh challenge (replacing any outstanding one) and returns the
// credential-creation options for the browser, with every already-registered
// credential in the exclusion list so one authenticator cannot enroll twice.
func (c *Ceremony) BeginRegistration(ctx context.Context, user models.User) (*protocol.CredentialCreation, error) {
	log := logger.FromContext(ctx)

	existing, err := c.registry.ListFor(ctx, user.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing passkeys for exclusion: %w", err)
	}

	cu := newCeremonyUser(user, existing)
	options, session, err := c.webauthn.BeginRegistration(cu, webauthn.WithExclusions(cu.descriptors()))
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("begin registration failed")
		return nil, fmt.Errorf("begin registration: %w", err)
	}

	if err := c.saveChallenge(ctx, user.UserID, options.Response.Challenge.String(), session); err != nil {
		return nil, err
	}

	return options, nil
}

// FinishRegistration completes a registration ceremony: consumes the
// account's outstanding challenge, verifies the attestation response
// against it, and registers the new credential with the client-reported
// initial counter.
func (c *Ceremony) FinishRegistration(ctx context.Context, user models.User, response *protocol.ParsedCredentialCreationData) (models.Passkey, error) {
	log := logger.FromContext(ctx)

	session, err := c.consumeSession(ctx, user.UserID)
	if err != nil {
		return models.Passkey{}, err
	}

	existing, err := c.registry.ListFor(ctx, user.UserID)
	if err != nil {
		return models.Passkey{}, fmt.Errorf("listing passkeys: %w", err)
	}
	cu := newCeremonyUser(user, existing)

	var credential *webauthn.Credential
	err = c.withVerifyTimeout(ctx, func() error {
		var verifyErr error
		credential, verifyErr = c.webauthn.CreateCredential(cu, session, response)
		return verifyErr
	})
	if err != nil {
		if err == ErrVerificationTimeout {
			return models.Passkey{}, err
		}
		// Log the library detail; surface only the sentinel.
		log.Err(err).Int64("user_id", user.UserID).Msg("attestation verification failed")
		return models.Passkey{}, ErrVerificationFailed
	}

	passkey := models.Passkey{
		UserID:       user.UserID,
		CredentialID: EncodeCredentialID(credential.ID),
		PublicKey:    credential.PublicKey,
		SignCount:    credential.Authenticator.SignCount,
		Transports:   transportStrings(credential.Transport),
	}

	registered, err := c.registry.Register(ctx, passkey)
	if err != nil {
		return models.Passkey{}, err
	}

	log.Info().
		Int64("user_id", user.UserID).
		Str("credential_id", registered.CredentialID).
		Msg("passkey registered")

	return registered, nil
}

// BeginAuthentication starts an authentication ceremony: issues a fresh
// challenge and returns the assertion options carrying the account's allowed
// credential ids. Fails with ErrNoCredentialsRegistered when the account has
// no passkeys.
func (c *Ceremony) BeginAuthentication(ctx context.Context, user models.User) (*protocol.CredentialAssertion, error) {
	log := logger.FromContext(ctx)

	existing, err := c.registry.ListFor(ctx, user.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing passkeys: %w", err)
	}
	if len(existing) == 0 {
		return nil, ErrNoCredentialsRegistered
	}

	cu := newCeremonyUser(user, existing)
	options, session, err := c.webauthn.BeginLogin(cu)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("begin authentication failed")
		return nil, fmt.Errorf("begin authentication: %w", err)
	}

	if err := c.saveChallenge(ctx, user.UserID, options.Response.Challenge.String(), session); err != nil {
		return nil, err
	}

	return options, nil
}

// FinishAuthentication completes an authentication ceremony: consumes the
// challenge, looks the credential up by its normalized id, verifies the
// assertion signature, enforces counter monotonicity, and persists the new
// counter. On success the caller is responsible for issuing a session token.
func (c *Ceremony) FinishAuthentication(ctx context.Context, user models.User, response *protocol.ParsedCredentialAssertionData) (models.Passkey, error) {
	log := logger.FromContext(ctx)

	session, err := c.consumeSession(ctx, user.UserID)
	if err != nil {
		return models.Passkey{}, err
	}

	// Look up by the raw credential id from the parsed response, encoded to
	// the canonical form. The textual id field is attacker-controlled and
	// historically arrived in three different encodings.
	lookupID := EncodeCredentialID(response.RawID)
	stored, err := c.registry.Find(ctx, user.UserID, lookupID)
	if err != nil {
		return models.Passkey{}, err
	}

	existing, err := c.registry.ListFor(ctx, user.UserID)
	if err != nil {
		return models.Passkey{}, fmt.Errorf("listing passkeys: %w", err)
	}
	cu := newCeremonyUser(user, existing)

	var credential *webauthn.Credential
	err = c.withVerifyTimeout(ctx, func() error {
		var verifyErr error
		credential, verifyErr = c.webauthn.ValidateLogin(cu, session, response)
		return verifyErr
	})
	if err != nil {
		if err == ErrVerificationTimeout {
			return models.Passkey{}, err
		}
		log.Err(err).Int64("user_id", user.UserID).Msg("assertion verification failed")
		return models.Passkey{}, ErrVerificationFailed
	}

	newCount := credential.Authenticator.SignCount
	switch {
	case newCount == 0 && stored.SignCount == 0:
		// The authenticator does not implement a signature counter
		// (both values pinned at zero, WebAuthn §6.1.1). Nothing to update.
	case newCount <= stored.SignCount:
		log.Warn().
			Int64("user_id", user.UserID).
			Str("credential_id", stored.CredentialID).
			Uint32("stored", stored.SignCount).
			Uint32("reported", newCount).
			Msg("stale signature counter: possible cloned authenticator")
		return models.Passkey{}, ErrStaleCounter
	default:
		if err := c.registry.UpdateCounter(ctx, user.UserID, stored.CredentialID, newCount); err != nil {
			return models.Passkey{}, err
		}
		stored.SignCount = newCount
	}

	log.Info().
		Int64("user_id", user.UserID).
		Str("credential_id", stored.CredentialID).
		Msg("passkey authentication verified")

	return stored, nil
}

// saveChallenge serializes the library session state and stores it as the
// account's single outstanding challenge.
func (c *Ceremony) saveChallenge(ctx context.Context, userID int64, challenge string, session *webauthn.SessionData) error {
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal ceremony session: %w", err)
	}

	return c.challenges.Save(ctx, models.PasskeyChallenge{
		UserID:    userID,
		Challenge: challenge,
		Session:   sessionJSON,
		ExpiresAt: time.Now().Add(c.cfg.ChallengeTTL),
	})
}

// consumeSession consumes the account's challenge and deserializes the
// ceremony session it carries.
func (c *Ceremony) consumeSession(ctx context.Context, userID int64) (webauthn.SessionData, error) {
	challenge, err := c.challenges.Consume(ctx, userID)
	if err != nil {
		return webauthn.SessionData{}, err
	}

	var session webauthn.SessionData
	if err := json.Unmarshal(challenge.Session, &session); err != nil {
		return webauthn.SessionData{}, fmt.Errorf("unmarshal ceremony session: %w", err)
	}

	return session, nil
}

// withVerifyTimeout runs fn under the configured verification bound. The
// verification itself is CPU-local today, but the bound also covers future
// attestation-chain fetches; a stuck verification must fail the ceremony,
// not the server.
func (c *Ceremony) withVerifyTimeout(ctx context.Context, fn func() error) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.VerifyTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- fn() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ErrVerificationTimeout
	}
}

// ceremonyUser adapts a vault account and its passkeys to the webauthn.User
// interface the verification library expects.
type ceremonyUser struct {
	user     models.User
	passkeys []models.Passkey
}

func newCeremonyUser(user models.User, passkeys []models.Passkey) *ceremonyUser {
	return &ceremonyUser{user: user, passkeys: passkeys}
}

// WebAuthnID returns the user handle: the decimal account id as bytes.
// The web client registered credentials under this handle, so it must stay
// stable for the lifetime of the account.
func (u *ceremonyUser) WebAuthnID() []byte {
	return []byte(strconv.FormatInt(u.user.UserID, 10))
}

func (u *ceremonyUser) WebAuthnName() string { return u.user.Email }

func (u *ceremonyUser) WebAuthnDisplayName() string { return u.user.Email }

// WebAuthnCredentials converts the stored passkeys to the library's
// credential type. Credential ids are decoded from their canonical base64url
// form; an id that does not decode was corrupted in storage and is skipped.
func (u *ceremonyUser) WebAuthnCredentials() []webauthn.Credential {
	credentials := make([]webauthn.Credential, 0, len(u.passkeys))
	for _, pk := range u.passkeys {
		rawID, err := DecodeCredentialID(pk.CredentialID)
		if err != nil {
			continue
		}

		credentials = append(credentials, webauthn.Credential{
			ID:        rawID,
			PublicKey: pk.PublicKey,
			Transport: transportValues(pk.Transports),
			Authenticator: webauthn.Authenticator{
				SignCount: pk.SignCount,
			},
		})
	}

	return credentials
}

// descriptors returns the exclusion descriptors for the user's passkeys,
// used during registration so an enrolled authenticator is not offered again.
func (u *ceremonyUser) descriptors() []protocol.CredentialDescriptor {
	descriptors := make([]protocol.CredentialDescriptor, 0, len(u.passkeys))
	for _, credential := range u.WebAuthnCredentials() {
		descriptors = append(descriptors, protocol.CredentialDescriptor{
			Type:         protocol.PublicKeyCredentialType,
			CredentialID: credential.ID,
			Transport:    credential.Transport,
		})
	}

	return descriptors
}

func transportStrings(transports []protocol.AuthenticatorTransport) []string {
	if len(transports) == 0 {
		return nil
	}
	out := make([]string, len(transports))
	for i, t := range transports {
		out[i] = string(t)
	}
	return out
}

func transportValues(transports []string) []protocol.AuthenticatorTransport {
	if len(transports) == 0 {
		return nil
	}
	out := make([]protocol.AuthenticatorTransport, len(transports))
	for i, t := range transports {
		out[i] = protocol.AuthenticatorTransport(t)
	}
	return out
}
