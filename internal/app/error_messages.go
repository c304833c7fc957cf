// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-pass-vault server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "Invalid JSON was passed"

	// MsgInvalidDataProvided is returned when a decoded request fails basic
	// validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidEmailPassword is returned when the supplied email/password
	// combination does not match any existing user record. The same wording
	// covers unknown accounts and wrong passwords so responses do not reveal
	// which accounts exist.
	MsgInvalidEmailPassword = "invalid email/password"

	// MsgEmailAlreadyExists is returned when a registration attempt is
	// rejected because the requested email is already in use.
	MsgEmailAlreadyExists = "email already exists"

	// MsgNoUserWasFound is returned by the key-derivation parameters endpoint
	// when the requested account does not exist.
	MsgNoUserWasFound = "no user was found"

	// MsgNoUserIDProvided is returned when a handler requires a user ID (e.g.
	// extracted from the JWT claim) but none is present in the request
	// context.
	MsgNoUserIDProvided = "no user ID was given"

	// MsgInvalidEntryID is returned when the entry id in the URL is not a
	// number.
	MsgInvalidEntryID = "invalid entry id"

	// MsgPasskeyLoginUnavailable is returned when a passkey login cannot
	// start, whether the account is unknown or has no registered passkeys.
	// One wording for both cases avoids confirming account existence.
	MsgPasskeyLoginUnavailable = "passkey login unavailable"

	// MsgInvalidAttestation is returned when a registration ceremony response
	// cannot be parsed.
	MsgInvalidAttestation = "invalid attestation response"

	// MsgInvalidAssertion is returned when an authentication ceremony
	// response cannot be parsed.
	MsgInvalidAssertion = "invalid assertion response"

	// MsgMigrationNotConfigured is returned when the legacy export endpoint
	// is called on a server without a legacy decryption key.
	MsgMigrationNotConfigured = "legacy migration is not configured"
)
