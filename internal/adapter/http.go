package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// cfg.ServerAddress and configures the underlying HTTP client with the
// resolved base URL and request timeout.
//
// Returns an error if cfg.ServerAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(cfg config.ClientConfig, logger *logger.Logger) (ServerAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(cfg.ServerAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent authenticated
// requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter]. It returns the bearer token currently
// held by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	return h.token
}

// Register implements [ServerAdapter]. It POSTs the account credentials to
// POST /api/user/register. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken. Returns an error if
// the request fails, the server returns a non-2xx status, or the token cannot
// be parsed.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.User, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/user/register")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("register parse bearer token: %w", err)
	}

	h.SetToken(token)
	return user, nil
}

// RequestSalt implements [ServerAdapter]. It POSTs user.Email to
// POST /api/user/params and returns a partial [models.User] containing only
// Email and EncryptionSalt. The salt is required to derive the vault key
// before secrets can be encrypted or decrypted. Returns an error if the
// request or response mapping fails.
func (h *httpServerAdapter) RequestSalt(ctx context.Context, user models.User) (models.User, error) {
	var foundUser models.User // only email and encryption salt

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.User{Email: user.Email}).
		SetResult(&foundUser).
		Post("/api/user/params")

	if err != nil {
		return user, fmt.Errorf("params request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return user, err
	}

	return models.User{Email: user.Email, EncryptionSalt: foundUser.EncryptionSalt}, nil
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /api/user/login. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken. Returns an error if
// the request fails, the server returns a non-2xx status, or the token cannot
// be parsed.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/user/login")

	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return fmt.Errorf("login parse bearer token: %w", err)
	}

	h.SetToken(token)
	return nil
}

// CreateEntry implements [ServerAdapter]. It POSTs the entry to
// POST /api/passwords/ and returns the stored record with its server-assigned
// ID. Requires a valid bearer token.
func (h *httpServerAdapter) CreateEntry(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error) {
	var created models.VaultEntry

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(entry).
		SetResult(&created).
		Post("/api/passwords/")
	if err != nil {
		return models.VaultEntry{}, fmt.Errorf("create entry request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultEntry{}, err
	}

	return created, nil
}

// ListEntries implements [ServerAdapter]. It GETs GET /api/passwords/ and
// decodes the response into a slice of [models.VaultEntry]. Requires a valid
// bearer token.
func (h *httpServerAdapter) ListEntries(ctx context.Context) ([]models.VaultEntry, error) {
	resp, err := h.authedRequest(ctx).Get("/api/passwords/")
	if err != nil {
		return nil, fmt.Errorf("list entries request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var entries []models.VaultEntry
	if err = json.Unmarshal(resp.Body(), &entries); err != nil {
		return nil, fmt.Errorf("decode entries response: %w", err)
	}

	return entries, nil
}

// GetEntry implements [ServerAdapter]. It GETs GET /api/passwords/{entryID}.
// Returns [ErrNotFound] (wrapped) on HTTP 404. Requires a valid bearer token.
func (h *httpServerAdapter) GetEntry(ctx context.Context, entryID int64) (models.VaultEntry, error) {
	var entry models.VaultEntry

	resp, err := h.authedRequest(ctx).
		SetResult(&entry).
		Get("/api/passwords/" + strconv.FormatInt(entryID, 10))
	if err != nil {
		return models.VaultEntry{}, fmt.Errorf("get entry request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultEntry{}, err
	}

	return entry, nil
}

// UpdateEntry implements [ServerAdapter]. It PUTs the entry to
// PUT /api/passwords/{entry.ID}. Requires a valid bearer token.
func (h *httpServerAdapter) UpdateEntry(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error) {
	var updated models.VaultEntry

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(entry).
		SetResult(&updated).
		Put("/api/passwords/" + strconv.FormatInt(entry.ID, 10))
	if err != nil {
		return models.VaultEntry{}, fmt.Errorf("update entry request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultEntry{}, err
	}

	return updated, nil
}

// DeleteEntry implements [ServerAdapter]. It sends a DELETE request to
// DELETE /api/passwords/{entryID}. Requires a valid bearer token.
func (h *httpServerAdapter) DeleteEntry(ctx context.Context, entryID int64) error {
	resp, err := h.authedRequest(ctx).
		Delete("/api/passwords/" + strconv.FormatInt(entryID, 10))
	if err != nil {
		return fmt.Errorf("delete entry request: %w", err)
	}

	return mapHTTPError(resp)
}

// ExportLegacyEntries implements [ServerAdapter]. It GETs GET /api/migrate and
// decodes the response into a slice of [models.MigrationItem]. Returns
// [ErrNotFound] (wrapped) when the server has migration disabled. Requires a
// valid bearer token.
func (h *httpServerAdapter) ExportLegacyEntries(ctx context.Context) ([]models.MigrationItem, error) {
	resp, err := h.authedRequest(ctx).Get("/api/migrate")
	if err != nil {
		return nil, fmt.Errorf("export legacy entries request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var items []models.MigrationItem
	if err = json.Unmarshal(resp.Body(), &items); err != nil {
		return nil, fmt.Errorf("decode migration response: %w", err)
	}

	return items, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
