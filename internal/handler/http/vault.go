package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-pass-vault/internal/app"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

// Vault-entry handlers. Every route here sits behind the auth middleware,
// so the owner id always comes from the verified token, never from the body.

func (h *Handler) createEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.createEntry").Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	var entry models.VaultEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Err(err).Str("func", "*Handler.createEntry").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}
	entry.UserID = userID

	created, err := h.services.VaultService.CreateEntry(ctx, entry)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createEntry").Msg("error creating vault entry")
		http.Error(w, "error creating vault entry", statusFromError(err))
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.listEntries").Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	entries, err := h.services.VaultService.GetEntries(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listEntries").Msg("error listing vault entries")
		http.Error(w, "error listing vault entries", statusFromError(err))
		return
	}

	if entries == nil {
		entries = []models.VaultEntry{}
	}

	utils.WriteJSON(w, entries, http.StatusOK)
}

func (h *Handler) getEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.getEntry").Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	entryID, err := entryIDFromURL(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getEntry").Msg("invalid entry id")
		http.Error(w, app.MsgInvalidEntryID, http.StatusBadRequest)
		return
	}

	entry, err := h.services.VaultService.GetEntry(ctx, userID, entryID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getEntry").Msg("error getting vault entry")
		http.Error(w, "error getting vault entry", statusFromError(err))
		return
	}

	utils.WriteJSON(w, entry, http.StatusOK)
}

func (h *Handler) updateEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.updateEntry").Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	entryID, err := entryIDFromURL(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateEntry").Msg("invalid entry id")
		http.Error(w, app.MsgInvalidEntryID, http.StatusBadRequest)
		return
	}

	var entry models.VaultEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Err(err).Str("func", "*Handler.updateEntry").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}
	entry.ID = entryID
	entry.UserID = userID

	updated, err := h.services.VaultService.UpdateEntry(ctx, entry)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateEntry").Msg("error updating vault entry")
		http.Error(w, "error updating vault entry", statusFromError(err))
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.deleteEntry").Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	entryID, err := entryIDFromURL(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.deleteEntry").Msg("invalid entry id")
		http.Error(w, app.MsgInvalidEntryID, http.StatusBadRequest)
		return
	}

	if err := h.services.VaultService.DeleteEntry(ctx, userID, entryID); err != nil {
		log.Err(err).Str("func", "*Handler.deleteEntry").Msg("error deleting vault entry")
		http.Error(w, "error deleting vault entry", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func entryIDFromURL(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "entryID"), 10, 64)
}
