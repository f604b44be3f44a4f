// Package credentials stores the account that is passed to the game
package credentials

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/shardmc/shard/internals/minecraft"
	"github.com/zalando/go-keyring"
)

var (
	accountService = "shard"
	accountUser    = "launch_account"
	accountFile    = "account.json"
)

// ErrNoAccount is returned when no account has been stored yet
var ErrNoAccount = errors.New("no account set. run `shard account set` first")

// Keyring is the part of the OS keyring the store needs
type Keyring interface {
	Get(service string, user string) (string, error)
	Set(service string, user string, secret string) error
	Delete(service string, user string) error
}

type systemKeyring struct{}

func (systemKeyring) Get(service string, user string) (string, error) {
	return keyring.Get(service, user)
}

func (systemKeyring) Set(service string, user string, secret string) error {
	return keyring.Set(service, user, secret)
}

func (systemKeyring) Delete(service string, user string) error {
	return keyring.Delete(service, user)
}

// Store stores the launch account in the OS keyring. If there is no
// usable keyring it falls back to a file in the config dir
type Store struct {
	globalDir     string
	ring          Keyring
	NoKeyRingMode bool
	Account       *minecraft.LaunchAccount
}

// New creates a store using the OS keyring and reads existing credentials
func New(globalDir string) (*Store, error) {
	return NewWithKeyring(globalDir, systemKeyring{})
}

// NewWithKeyring is [New] with a custom keyring
func NewWithKeyring(globalDir string, ring Keyring) (*Store, error) {
	store := &Store{globalDir: globalDir, ring: ring}
	if err := store.Find(); err != nil {
		return nil, err
	}
	return store, nil
}

// Find tries to find existing credentials
func (s *Store) Find() error {
	raw, err := s.ring.Get(accountService, accountUser)
	switch err {
	case nil:
		account := &minecraft.LaunchAccount{}
		if err := json.Unmarshal([]byte(raw), account); err != nil {
			return errors.Wrap(err, "stored account is invalid")
		}
		s.Account = account
		return nil
	case keyring.ErrNotFound:
		// no credentials (yet) is fine
		return nil
	default:
		s.NoKeyRingMode = true
		return s.findFromFiles()
	}
}

// findFromFiles is the same as Find but reads from plain files instead
func (s *Store) findFromFiles() error {
	account := &minecraft.LaunchAccount{}
	found, err := s.readCredentialFile(accountFile, account)
	if err != nil {
		return err
	}
	if found {
		s.Account = account
	}
	return nil
}

// LaunchAccount returns the stored account or [ErrNoAccount]
func (s *Store) LaunchAccount() (*minecraft.LaunchAccount, error) {
	if s.Account == nil {
		return nil, ErrNoAccount
	}
	return s.Account, nil
}

// SetLaunchAccount sets `Account` and persists it
func (s *Store) SetLaunchAccount(account *minecraft.LaunchAccount) error {
	s.Account = account

	blob, err := json.Marshal(account)
	if err != nil {
		return err
	}
	if s.NoKeyRingMode {
		return s.writeCredentialFile(accountFile, blob)
	}
	return s.ring.Set(accountService, accountUser, string(blob))
}

// Clear removes the stored account
func (s *Store) Clear() error {
	s.Account = nil
	if s.NoKeyRingMode {
		err := os.Remove(filepath.Join(s.globalDir, accountFile))
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := s.ring.Delete(accountService, accountUser); err != nil && err != keyring.ErrNotFound {
		return err
	}
	return nil
}

// readCredentialFile is a helper that reads a file from the config dir
func (s *Store) readCredentialFile(location string, v interface{}) (bool, error) {
	file := filepath.Join(s.globalDir, location)
	rawCreds, err := os.ReadFile(file)
	switch {
	case err == nil:
		// parse json as expected
		return true, json.Unmarshal(rawCreds, v)
	case os.IsNotExist(err):
		// no file is fine
		return false, nil
	default:
		// everything else is not
		return false, err
	}
}

// writeCredentialFile is a helper that writes a file to the config dir
func (s *Store) writeCredentialFile(location string, content []byte) error {
	if err := os.MkdirAll(s.globalDir, os.ModePerm); err != nil {
		return err
	}
	credFile := filepath.Join(s.globalDir, location)
	return os.WriteFile(credFile, content, 0600)
}
