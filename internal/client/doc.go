// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive command-line client runtime.
//
// It wires the server adapter, client-side key derivation, and vault
// encryption into a single session: secrets are encrypted before upload and
// decrypted after download, so the server only ever sees ciphertext.
package client
