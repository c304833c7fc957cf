package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-webauthn/webauthn/protocol"

	"github.com/MKhiriev/go-pass-vault/internal/app"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/passkeys"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
)

// Passkey ceremony handlers. Registration runs behind the auth middleware;
// login runs without it and identifies the account by email, carried next
// to the WebAuthn payload in the finish request.

// passkeyLoginRequest is the body of both passkey login routes. Begin only
// reads the email; finish also reads the browser's assertion response.
type passkeyLoginRequest struct {
	Email     string          `json:"email"`
	Assertion json.RawMessage `json:"assertion,omitempty"`
}

func (h *Handler) beginPasskeyRegistration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.beginPasskeyRegistration").Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	options, err := h.services.PasskeyService.BeginRegistration(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.beginPasskeyRegistration").Msg("error starting passkey registration")
		http.Error(w, "error starting passkey registration", statusFromError(err))
		return
	}

	utils.WriteJSON(w, options, http.StatusOK)
}

func (h *Handler) finishPasskeyRegistration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.finishPasskeyRegistration").Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	response, err := protocol.ParseCredentialCreationResponseBody(r.Body)
	if err != nil {
		log.Err(err).Str("func", "*Handler.finishPasskeyRegistration").Msg("invalid attestation response")
		http.Error(w, app.MsgInvalidAttestation, http.StatusBadRequest)
		return
	}

	passkey, err := h.services.PasskeyService.FinishRegistration(ctx, userID, response)
	if err != nil {
		log.Err(err).Str("func", "*Handler.finishPasskeyRegistration").Msg("error finishing passkey registration")
		http.Error(w, "error finishing passkey registration", statusFromError(err))
		return
	}

	utils.WriteJSON(w, passkey, http.StatusCreated)
}

func (h *Handler) beginPasskeyLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req passkeyLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.beginPasskeyLogin").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	options, err := h.services.PasskeyService.BeginAuthentication(ctx, req.Email)
	if err != nil {
		// An unknown email and an account without passkeys answer the
		// same way so the route does not leak which accounts exist.
		if isUnknownAccountError(err) {
			log.Err(err).Str("func", "*Handler.beginPasskeyLogin").Msg("passkey login unavailable for account")
			http.Error(w, app.MsgPasskeyLoginUnavailable, http.StatusUnauthorized)
			return
		}
		log.Err(err).Str("func", "*Handler.beginPasskeyLogin").Msg("error starting passkey login")
		http.Error(w, "error starting passkey login", statusFromError(err))
		return
	}

	utils.WriteJSON(w, options, http.StatusOK)
}

func (h *Handler) finishPasskeyLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req passkeyLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.finishPasskeyLogin").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	response, err := protocol.ParseCredentialRequestResponseBody(bytes.NewReader(req.Assertion))
	if err != nil {
		log.Err(err).Str("func", "*Handler.finishPasskeyLogin").Msg("invalid assertion response")
		http.Error(w, app.MsgInvalidAssertion, http.StatusBadRequest)
		return
	}

	user, err := h.services.PasskeyService.FinishAuthentication(ctx, req.Email, response)
	if err != nil {
		log.Err(err).Str("func", "*Handler.finishPasskeyLogin").Msg("passkey login failed")
		http.Error(w, "passkey login failed", statusFromError(err))
		return
	}

	h.writeToken(w, r, user)
}

// isUnknownAccountError reports whether the passkey login failure should be
// masked as a generic 401 to avoid account enumeration.
func isUnknownAccountError(err error) bool {
	return errors.Is(err, passkeys.ErrNoCredentialsRegistered) ||
		errors.Is(err, store.ErrNoUserWasFound)
}
