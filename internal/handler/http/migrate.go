package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-pass-vault/internal/app"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

// exportLegacyEntries returns the caller's vault records that are still
// sealed with the retired server-side key, decrypted so the web client can
// re-encrypt them under the user's own derived key. Plaintext leaves the
// server only here, only over an authenticated request, and only for rows
// the legacy key actually opens.
func (h *Handler) exportLegacyEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.exportLegacyEntries").Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	items, err := h.services.MigrationService.ExportLegacyEntries(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrMigrationDisabled) {
			log.Err(err).Str("func", "*Handler.exportLegacyEntries").Msg("legacy migration is not configured")
			http.Error(w, app.MsgMigrationNotConfigured, http.StatusNotFound)
			return
		}
		log.Err(err).Str("func", "*Handler.exportLegacyEntries").Msg("error exporting legacy entries")
		http.Error(w, "error exporting legacy entries", statusFromError(err))
		return
	}

	if items == nil {
		items = []models.MigrationItem{}
	}

	utils.WriteJSON(w, items, http.StatusOK)
}
