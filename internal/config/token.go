package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "taskboard-cli"
	keyringUser    = "session-token"
	fallbackFile   = ".session"
)

// StoreToken saves the session token in the system keyring, falling
// back to a permission-restricted file on headless systems.
func StoreToken(token string) error {
	if err := keyring.Set(keyringService, keyringUser, token); err == nil {
		return nil
	}
	return storeFallbackToken(token)
}

// Token retrieves the stored session token from the keyring or the
// fallback file.
func Token() (string, error) {
	if token, err := keyring.Get(keyringService, keyringUser); err == nil {
		return token, nil
	}

	token, err := retrieveFallbackToken()
	if err != nil {
		return "", fmt.Errorf("no stored session, run 'taskctl setup login' first: %w", err)
	}
	return token, nil
}

// DeleteToken removes the session token from both storage locations.
func DeleteToken() error {
	keyringErr := keyring.Delete(keyringService, keyringUser)
	fallbackErr := deleteFallbackToken()

	if keyringErr != nil && fallbackErr != nil {
		return fmt.Errorf("failed to delete stored session")
	}
	return nil
}

func fallbackPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDir, fallbackFile), nil
}

func storeFallbackToken(token string) error {
	path, err := fallbackPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Owner read/write only
	if err := os.WriteFile(path, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write fallback token: %w", err)
	}
	return nil
}

func retrieveFallbackToken() (string, error) {
	path, err := fallbackPath()
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func deleteFallbackToken() error {
	path, err := fallbackPath()
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
