package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-pass-vault/internal/passkeys"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrMigrationDisabled:       http.StatusNotFound,

	store.ErrEmailAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:     http.StatusNotFound,
	store.ErrEntryNotSaved:      http.StatusInternalServerError,
	store.ErrEntryNotFound:      http.StatusNotFound,
	store.ErrStorageUnavailable: http.StatusServiceUnavailable,

	passkeys.ErrChallengeNotFound:        http.StatusUnauthorized,
	passkeys.ErrNoCredentialsRegistered:  http.StatusUnauthorized,
	passkeys.ErrDuplicateCredential:      http.StatusConflict,
	passkeys.ErrCredentialNotFound:       http.StatusUnauthorized,
	passkeys.ErrStaleCounter:             http.StatusUnauthorized,
	passkeys.ErrVerificationFailed:       http.StatusUnauthorized,
	passkeys.ErrVerificationTimeout:      http.StatusGatewayTimeout,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
