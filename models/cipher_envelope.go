// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// CipherEnvelope is a self-contained AES-256-GCM ciphertext produced by the
// vault crypto service. One envelope is created per encrypted field.
//
// The JSON shape {iv, ciphertext} with standard base64 values is the wire
// format the browser client produces with the Web Crypto API, so envelopes
// round-trip between Go and JavaScript without conversion.
type CipherEnvelope struct {
	// Nonce is the random 96-bit GCM nonce generated fresh for every
	// encryption. A (key, nonce) pair must never repeat.
	Nonce []byte `json:"iv"`

	// Ciphertext is the GCM output including the 16-byte authentication tag.
	Ciphertext []byte `json:"ciphertext"`
}

// IsZero reports whether the envelope carries no data at all.
// Used by validation to reject vault entries with missing secret material.
func (e CipherEnvelope) IsZero() bool {
	return len(e.Nonce) == 0 && len(e.Ciphertext) == 0
}
