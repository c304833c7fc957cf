// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package passkeys implements WebAuthn public-key login for vault accounts:
// challenge issuance, registration and authentication ceremonies, and the
// bookkeeping invariants around them (single-use challenges, globally unique
// credential ids, strictly increasing signature counters).
//
// Attestation and assertion verification itself is delegated to
// github.com/go-webauthn/webauthn; this package never re-derives the
// underlying public-key cryptography.
//
// Credential ids cross the package boundary only in one canonical encoding,
// base64url without padding. Client-supplied ids are normalized with
// [NormalizeCredentialID] before any comparison or storage; historically,
// mixed raw/base64/base64url encodings at different call sites were a real
// source of spurious "credential not found" failures.
package passkeys
