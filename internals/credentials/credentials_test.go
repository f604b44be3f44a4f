package credentials

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shardmc/shard/internals/minecraft"
	"github.com/zalando/go-keyring"
)

type brokenKeyring struct{}

var errNoDBus = errors.New("dbus not available")

func (brokenKeyring) Get(string, string) (string, error) { return "", errNoDBus }
func (brokenKeyring) Set(string, string, string) error { return errNoDBus }
func (brokenKeyring) Delete(string, string) error { return errNoDBus }

func TestStore_keyring(t *testing.T) {
	keyring.MockInit()
	dir := t.TempDir()

	store, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.LaunchAccount(); !errors.Is(err, ErrNoAccount) {
		t.Fatalf("expected no account, got %v", err)
	}

	account := &minecraft.LaunchAccount{UUID: "069a79f4", Username: "Steve", AccessToken: "secret"}
	if err := store.SetLaunchAccount(account); err != nil {
		t.Fatal(err)
	}

	reopened, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	got, err := reopened.LaunchAccount()
	if err != nil {
		t.Fatal(err)
	}
	if *got != *account {
		t.Errorf("got %+v, want %+v", got, account)
	}
	if _, err := os.Stat(filepath.Join(dir, accountFile)); !os.IsNotExist(err) {
		t.Error("account should not be written to a file when a keyring exists")
	}

	if err := reopened.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, err := keyring.Get(accountService, accountUser); err != keyring.ErrNotFound {
		t.Errorf("account should be deleted, got %v", err)
	}
}

func TestStore_fileFallback(t *testing.T) {
	dir := t.TempDir()
	store, err := NewWithKeyring(dir, brokenKeyring{})
	if err != nil {
		t.Fatal(err)
	}
	if !store.NoKeyRingMode {
		t.Fatal("store should fall back to files")
	}

	account := &minecraft.LaunchAccount{UUID: "069a79f4", Username: "Alex", AccessToken: "token", XUID: "2535"}
	if err := store.SetLaunchAccount(account); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(filepath.Join(dir, accountFile))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0077 != 0 {
		t.Errorf("account file should only be readable by the owner, got %v", info.Mode().Perm())
	}

	reopened, err := NewWithKeyring(dir, brokenKeyring{})
	if err != nil {
		t.Fatal(err)
	}
	if reopened.Account == nil || reopened.Account.Username != "Alex" || reopened.Account.XUID != "2535" {
		t.Errorf("unexpected account %+v", reopened.Account)
	}

	if err := reopened.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, accountFile)); !os.IsNotExist(err) {
		t.Error("account file should be removed")
	}
}
