package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrMigrationDisabled is returned when legacy export is requested but no
	// legacy encryption key is configured.
	ErrMigrationDisabled = errors.New("legacy migration is not configured")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
