package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"

	"github.com/ragar/ragarctl/internal/cli/types"
	appconfig "github.com/ragar/ragarctl/internal/config"
)

// Credential store keys
const (
	TokenKey    = "ragar-auth-token"
	UsernameKey = "ragar-username"
	ServerKey   = "ragar-server"
)

// CredentialStore is the local key-value store holding the operator's token
type CredentialStore struct {
	path    string
	entries map[string]string
}

// GetCredentialsPath returns the credential file path (~/.ragarctl/credentials.json)
func GetCredentialsPath() (string, error) {
	dir, err := appconfig.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "credentials.json"), nil
}

// Load loads the credential store from file
func Load() (*CredentialStore, error) {
	path, err := GetCredentialsPath()
	if err != nil {
		return nil, err
	}

	store := &CredentialStore{path: path, entries: map[string]string{}}

	// If the file doesn't exist, nobody has logged in yet
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	if err := sonic.Unmarshal(data, &store.entries); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}
	if store.entries == nil {
		store.entries = map[string]string{}
	}

	return store, nil
}

// Save saves the store to file
func (s *CredentialStore) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := sonic.ConfigStd.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	// 0600: user read/write only
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}

	return nil
}

// Path returns the backing file
func (s *CredentialStore) Path() string {
	return s.path
}

// Get returns the raw entry for key
func (s *CredentialStore) Get(key string) string {
	return s.entries[key]
}

// SetLogin records a successful login
func (s *CredentialStore) SetLogin(server, username, token string) {
	s.entries[ServerKey] = server
	s.entries[UsernameKey] = username
	s.entries[TokenKey] = token
}

// Clear forgets every entry
func (s *CredentialStore) Clear() {
	s.entries = map[string]string{}
}

// Credentials returns the bearer credential for API clients
func (s *CredentialStore) Credentials() types.Credentials {
	return types.Credentials{Token: s.entries[TokenKey]}
}

// IsAuthenticated checks if user is logged in
func (s *CredentialStore) IsAuthenticated() bool {
	return s.entries[TokenKey] != ""
}
