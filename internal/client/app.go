package client

import (
	"bufio"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-pass-vault/internal/adapter"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/atotto/clipboard"
)

// App is the interactive CLI session. It holds the vault key derived from the
// master password for the lifetime of the session; the key never leaves the
// process.
type App struct {
	server adapter.ServerAdapter
	keys   crypto.VaultKeyService

	key []byte

	in  *bufio.Reader
	out io.Writer

	logger *logger.Logger
}

// NewApp wires the CLI session from its dependencies. in and out are the
// terminal streams, normally os.Stdin and os.Stdout.
func NewApp(server adapter.ServerAdapter, keys crypto.VaultKeyService, in io.Reader, out io.Writer, logger *logger.Logger) *App {
	return &App{
		server: server,
		keys:   keys,
		in:     bufio.NewReader(in),
		out:    out,
		logger: logger,
	}
}

// Run implements [Client]. It authenticates the user, derives the vault key,
// and enters the command loop until quit or EOF.
func (a *App) Run() error {
	ctx := context.Background()

	if err := a.authenticate(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, `type "help" for the command list`)

	for {
		fmt.Fprint(a.out, "> ")
		line, err := a.in.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read command: %w", err)
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		command, args := fields[0], fields[1:]
		if command == "quit" || command == "exit" {
			return nil
		}

		if err = a.dispatch(ctx, command, args); err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
		}
	}
}

func (a *App) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "help":
		a.printHelp()
		return nil
	case "list":
		return a.listEntries(ctx)
	case "show":
		return a.showEntry(ctx, args)
	case "add":
		return a.addEntry(ctx)
	case "edit":
		return a.editEntry(ctx, args)
	case "rm":
		return a.deleteEntry(ctx, args)
	case "migrate":
		return a.migrateLegacyEntries(ctx)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *App) printHelp() {
	fmt.Fprint(a.out, `commands:
  list          list vault entries
  show <id>     decrypt an entry and copy its password to the clipboard
  add           create a new entry
  edit <id>     update an entry (blank input keeps the current value)
  rm <id>       delete an entry
  migrate       re-encrypt legacy server-side records under your vault key
  quit          exit
`)
}

// authenticate runs the register-or-login flow and derives the vault key
// from the master password and the account's encryption salt.
func (a *App) authenticate(ctx context.Context) error {
	action := a.prompt("register or login? ")
	email := a.prompt("email: ")
	password := a.prompt("master password: ")

	user := models.User{Email: email, Password: password}

	switch action {
	case "register":
		if _, err := a.server.Register(ctx, user); err != nil {
			return fmt.Errorf("register: %w", err)
		}
	case "login":
		if err := a.server.Login(ctx, user); err != nil {
			return fmt.Errorf("login: %w", err)
		}
	default:
		return fmt.Errorf("unknown action %q", action)
	}

	// The salt is generated server-side at registration, so both flows
	// fetch it the same way.
	withSalt, err := a.server.RequestSalt(ctx, models.User{Email: email})
	if err != nil {
		return fmt.Errorf("fetch encryption salt: %w", err)
	}

	salt, err := hex.DecodeString(withSalt.EncryptionSalt)
	if err != nil {
		return fmt.Errorf("decode encryption salt: %w", err)
	}

	a.key, err = a.keys.DeriveKey(password, salt)
	if err != nil {
		return fmt.Errorf("derive vault key: %w", err)
	}

	fmt.Fprintln(a.out, "vault unlocked")
	return nil
}

func (a *App) listEntries(ctx context.Context) error {
	entries, err := a.server.ListEntries(ctx)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "vault is empty")
		return nil
	}

	for _, entry := range entries {
		fmt.Fprintf(a.out, "%6d  %-24s %-20s %s\n", entry.ID, entry.Title, entry.Username, entry.Website)
	}
	return nil
}

func (a *App) showEntry(ctx context.Context, args []string) error {
	entryID, err := parseEntryID(args)
	if err != nil {
		return err
	}

	entry, err := a.server.GetEntry(ctx, entryID)
	if err != nil {
		return err
	}

	secret, err := a.keys.Decrypt(entry.Secret, a.key)
	if err != nil {
		return fmt.Errorf("decrypt secret: %w", err)
	}

	fmt.Fprintf(a.out, "title:    %s\n", entry.Title)
	fmt.Fprintf(a.out, "username: %s\n", entry.Username)
	fmt.Fprintf(a.out, "website:  %s\n", entry.Website)
	fmt.Fprintf(a.out, "category: %s\n", entry.Category)
	if entry.Notes != "" {
		fmt.Fprintf(a.out, "notes:    %s\n", entry.Notes)
	}

	if err = clipboard.WriteAll(string(secret)); err != nil {
		a.logger.Debug().Err(err).Msg("clipboard unavailable")
		fmt.Fprintf(a.out, "password: %s\n", secret)
		return nil
	}

	fmt.Fprintln(a.out, "password copied to clipboard")
	return nil
}

func (a *App) addEntry(ctx context.Context) error {
	entry := models.VaultEntry{
		Title:    a.prompt("title: "),
		Username: a.prompt("username: "),
	}
	secret := a.prompt("password: ")
	entry.Website = a.prompt("website: ")
	entry.Category = a.prompt("category: ")
	entry.Notes = a.prompt("notes: ")

	envelope, err := a.keys.Encrypt([]byte(secret), a.key)
	if err != nil {
		return fmt.Errorf("encrypt secret: %w", err)
	}
	entry.Secret = envelope

	created, err := a.server.CreateEntry(ctx, entry)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "saved entry %d\n", created.ID)
	return nil
}

func (a *App) editEntry(ctx context.Context, args []string) error {
	entryID, err := parseEntryID(args)
	if err != nil {
		return err
	}

	entry, err := a.server.GetEntry(ctx, entryID)
	if err != nil {
		return err
	}

	entry.Title = a.promptDefault("title", entry.Title)
	entry.Username = a.promptDefault("username", entry.Username)
	secret := a.prompt("password (blank keeps current): ")
	entry.Website = a.promptDefault("website", entry.Website)
	entry.Category = a.promptDefault("category", entry.Category)
	entry.Notes = a.promptDefault("notes", entry.Notes)

	if secret != "" {
		envelope, err := a.keys.Encrypt([]byte(secret), a.key)
		if err != nil {
			return fmt.Errorf("encrypt secret: %w", err)
		}
		entry.Secret = envelope
	}

	if _, err = a.server.UpdateEntry(ctx, entry); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "updated entry %d\n", entryID)
	return nil
}

func (a *App) deleteEntry(ctx context.Context, args []string) error {
	entryID, err := parseEntryID(args)
	if err != nil {
		return err
	}

	if err = a.server.DeleteEntry(ctx, entryID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "deleted entry %d\n", entryID)
	return nil
}

// migrateLegacyEntries pulls records still encrypted with the legacy
// server-side key and re-uploads each one encrypted under the session's
// vault key. After the sweep the server holds no recoverable secrets for
// this account.
func (a *App) migrateLegacyEntries(ctx context.Context) error {
	items, err := a.server.ExportLegacyEntries(ctx)
	if err != nil {
		if errors.Is(err, adapter.ErrNotFound) {
			fmt.Fprintln(a.out, "migration is not enabled on this server")
			return nil
		}
		return err
	}

	if len(items) == 0 {
		fmt.Fprintln(a.out, "no legacy entries to migrate")
		return nil
	}

	var migrated int
	for _, item := range items {
		envelope, err := a.keys.Encrypt([]byte(item.SecretPlain), a.key)
		if err != nil {
			return fmt.Errorf("encrypt entry %d: %w", item.ID, err)
		}

		entry := models.VaultEntry{
			ID:       item.ID,
			Title:    item.Title,
			Username: item.Username,
			Secret:   envelope,
			Website:  item.Website,
			Category: item.Category,
			Notes:    item.Notes,
		}

		if _, err = a.server.UpdateEntry(ctx, entry); err != nil {
			return fmt.Errorf("upload entry %d: %w", item.ID, err)
		}
		migrated++
	}

	fmt.Fprintf(a.out, "migrated %d entries\n", migrated)
	return nil
}

func (a *App) prompt(label string) string {
	fmt.Fprint(a.out, label)
	line, _ := a.in.ReadString('\n')
	return strings.TrimSpace(line)
}

func (a *App) promptDefault(label, current string) string {
	answer := a.prompt(fmt.Sprintf("%s [%s]: ", label, current))
	if answer == "" {
		return current
	}
	return answer
}

func parseEntryID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.New("expected exactly one entry id")
	}

	entryID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid entry id %q", args[0])
	}

	return entryID, nil
}
