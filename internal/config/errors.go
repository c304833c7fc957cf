package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a missing token sign key or password hash key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidPasskeyConfigs indicates incomplete relying-party settings
	// (for example, a missing RP ID or empty origin list).
	ErrInvalidPasskeyConfigs = errors.New("invalid passkey configuration")
	// ErrInvalidLegacyKey indicates the legacy encryption key is not a
	// hex-encoded 32-byte value.
	ErrInvalidLegacyKey = errors.New("invalid legacy encryption key")
	// ErrInvalidClientConfigs indicates invalid CLI client settings
	// (for example, a missing server address or zero request timeout).
	ErrInvalidClientConfigs = errors.New("invalid client configuration")
)
