package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-pass-vault/models"
)

const (
	createUser = `INSERT INTO users (email, auth_hash, encryption_salt) 
    VALUES ($1, $2, $3) 
    RETURNING user_id, email, auth_hash, encryption_salt, created_at;`

	findUserByEmail = `SELECT user_id, email, auth_hash, encryption_salt, created_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT user_id, email, auth_hash, encryption_salt, created_at
    FROM users
    WHERE user_id = $1;`

	createPasskey = `INSERT INTO passkeys (user_id, credential_id, public_key, sign_count, transports) 
    VALUES ($1, $2, $3, $4, $5) 
    RETURNING id, created_at;`

	findPasskey = `SELECT id, user_id, credential_id, public_key, sign_count, transports, created_at, last_used_at 
    FROM passkeys 
    WHERE user_id = $1 AND credential_id = $2;`

	listPasskeys = `SELECT id, user_id, credential_id, public_key, sign_count, transports, created_at, last_used_at 
    FROM passkeys 
    WHERE user_id = $1 
    ORDER BY id;`

	// Monotonicity is enforced in SQL: the row is touched only when the new
	// counter is strictly greater than the stored one.
	advancePasskeyCounter = `UPDATE passkeys 
    SET sign_count = $3, last_used_at = NOW() 
    WHERE user_id = $1 AND credential_id = $2 AND sign_count < $3;`

	// ON CONFLICT keeps one outstanding challenge per account: a new Save
	// replaces whatever was pending.
	saveChallenge = `INSERT INTO passkey_challenges (user_id, challenge, session, expires_at) 
    VALUES ($1, $2, $3, $4) 
    ON CONFLICT (user_id) DO UPDATE 
    SET challenge = EXCLUDED.challenge, session = EXCLUDED.session, expires_at = EXCLUDED.expires_at;`

	// DELETE ... RETURNING consumes atomically: concurrent finishers race for
	// the row and exactly one wins.
	consumeChallenge = `DELETE FROM passkey_challenges
    WHERE user_id = $1
    RETURNING user_id, challenge, session, expires_at;`

	purgeExpiredChallenges = `DELETE FROM passkey_challenges
    WHERE expires_at <= $1;`
)

// psql builds queries with PostgreSQL-style $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// vaultEntryColumns is the canonical column order for vault entry scans.
var vaultEntryColumns = []string{
	"id", "user_id", "title", "username",
	"secret_nonce", "secret_ciphertext",
	"website", "category", "notes",
	"created_at", "updated_at",
}

func buildCreateEntryQuery(entry models.VaultEntry) (string, []any, error) {
	return psql.Insert(entry.TableName()).
		Columns("user_id", "title", "username", "secret_nonce", "secret_ciphertext", "website", "category", "notes").
		Values(entry.UserID, entry.Title, entry.Username, entry.Secret.Nonce, entry.Secret.Ciphertext, entry.Website, entry.Category, entry.Notes).
		Suffix("RETURNING " + joinColumns(vaultEntryColumns)).
		ToSql()
}

func buildGetEntriesQuery(userID int64) (string, []any, error) {
	return psql.Select(vaultEntryColumns...).
		From(models.VaultEntry{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("id").
		ToSql()
}

func buildGetEntryQuery(userID, entryID int64) (string, []any, error) {
	return psql.Select(vaultEntryColumns...).
		From(models.VaultEntry{}.TableName()).
		Where(sq.Eq{"user_id": userID, "id": entryID}).
		ToSql()
}

func buildUpdateEntryQuery(entry models.VaultEntry) (string, []any, error) {
	return psql.Update(entry.TableName()).
		Set("title", entry.Title).
		Set("username", entry.Username).
		Set("secret_nonce", entry.Secret.Nonce).
		Set("secret_ciphertext", entry.Secret.Ciphertext).
		Set("website", entry.Website).
		Set("category", entry.Category).
		Set("notes", entry.Notes).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"user_id": entry.UserID, "id": entry.ID}).
		Suffix("RETURNING " + joinColumns(vaultEntryColumns)).
		ToSql()
}

func buildDeleteEntryQuery(userID, entryID int64) (string, []any, error) {
	return psql.Delete(models.VaultEntry{}.TableName()).
		Where(sq.Eq{"user_id": userID, "id": entryID}).
		ToSql()
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}
