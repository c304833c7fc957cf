package passkeys

import (
	"encoding/base64"
	"strings"
)

// NormalizeCredentialID converts a credential id received in any base64
// flavour (standard, standard padded, base64url padded) to the canonical
// form used everywhere in this application: base64url without padding.
//
// Clients are not trusted to be consistent here: browsers send base64url,
// older clients sent standard base64. This function is applied at every
// boundary before a credential id is compared or stored.
func NormalizeCredentialID(id string) string {
	id = strings.TrimSpace(id)
	id = strings.ReplaceAll(id, "+", "-")
	id = strings.ReplaceAll(id, "/", "_")
	return strings.TrimRight(id, "=")
}

// EncodeCredentialID encodes raw credential id bytes to the canonical
// base64url form.
func EncodeCredentialID(raw []byte) string {
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCredentialID decodes a credential id in any supported encoding back
// to raw bytes.
func DecodeCredentialID(id string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(NormalizeCredentialID(id))
}
