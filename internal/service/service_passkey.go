package service

import (
	"context"
	"fmt"

	"github.com/go-webauthn/webauthn/protocol"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/passkeys"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/models"
)

// passkeyService is the concrete implementation of PasskeyService.
//
// It resolves accounts through the UserRepository and hands the actual
// WebAuthn protocol work to a passkeys.Ceremony. Registration calls arrive
// with a user id taken from a verified session token; authentication calls
// arrive with an email, because the whole point is that no token exists yet.
type passkeyService struct {
	ceremony       *passkeys.Ceremony
	userRepository store.UserRepository
	logger         *logger.Logger
}

// NewPasskeyService constructs a PasskeyService on top of the given ceremony
// and user repository.
func NewPasskeyService(ceremony *passkeys.Ceremony, userRepository store.UserRepository, logger *logger.Logger) PasskeyService {
	return &passkeyService{
		ceremony:       ceremony,
		userRepository: userRepository,
		logger:         logger,
	}
}

// BeginRegistration starts a passkey registration ceremony for the
// authenticated account identified by userID and returns the
// credential-creation options for the browser.
func (s *passkeyService) BeginRegistration(ctx context.Context, userID int64) (*protocol.CredentialCreation, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("user search by id failed")
		return nil, fmt.Errorf("user search by id failed: %w", err)
	}

	return s.ceremony.BeginRegistration(ctx, user)
}

// FinishRegistration completes a passkey registration ceremony and returns
// the newly stored credential.
func (s *passkeyService) FinishRegistration(ctx context.Context, userID int64, response *protocol.ParsedCredentialCreationData) (models.Passkey, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("user search by id failed")
		return models.Passkey{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return s.ceremony.FinishRegistration(ctx, user, response)
}

// BeginAuthentication starts a passkey login ceremony for the account with
// the given email and returns the assertion options for the browser.
//
// Returns ErrInvalidDataProvided on an empty email; an unknown email
// surfaces store.ErrNoUserWasFound from the repository.
func (s *passkeyService) BeginAuthentication(ctx context.Context, email string) (*protocol.CredentialAssertion, error) {
	log := logger.FromContext(ctx)

	if email == "" {
		log.Error().Msg("invalid user data provided")
		return nil, ErrInvalidDataProvided
	}

	user, err := s.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return nil, fmt.Errorf("user search by email failed: %w", err)
	}

	return s.ceremony.BeginAuthentication(ctx, user)
}

// FinishAuthentication verifies the browser's assertion response and, on
// success, returns the account so the caller can issue a session token.
func (s *passkeyService) FinishAuthentication(ctx context.Context, email string, response *protocol.ParsedCredentialAssertionData) (models.User, error) {
	log := logger.FromContext(ctx)

	if email == "" {
		log.Error().Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	user, err := s.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if _, err := s.ceremony.FinishAuthentication(ctx, user, response); err != nil {
		return models.User{}, err
	}

	return user, nil
}
