// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "encoding/hex"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.PasswordHashKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.App.LegacyEncryptionKey != "" {
		key, err := hex.DecodeString(cfg.App.LegacyEncryptionKey)
		if err != nil || len(key) != 32 {
			return ErrInvalidLegacyKey
		}
	}

	if cfg.Passkey.RPID == "" || len(cfg.Passkey.RPOrigins) == 0 {
		return ErrInvalidPasskeyConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.ServerAddress == "" || cfg.RequestTimeout == 0 {
		return ErrInvalidClientConfigs
	}

	return nil
}
