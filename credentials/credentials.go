// Package credentials stores Scribe API tokens at rest and acquires them
// from the Scribe desktop application's local storage.
//
// Stored tokens live in ~/.scribe/credentials.yaml with the sensitive fields
// encrypted (AES-GCM). The encryption key is held in the system keyring:
//   - macOS: Keychain
//   - Windows: Credential Manager
//   - Linux: Secret Service (libsecret)
//
// For CI/testing environments, set SCRIBE_ENCRYPTION_KEY to a 64-character
// hex string (32 bytes).
package credentials

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	scerrors "github.com/scribelabs/scribe-cli/pkg/errors"
)

// Credential storage constants.
const (
	DefaultCredentialsDir  = ".scribe"
	DefaultCredentialsFile = "credentials.yaml"

	// SourceDesktop marks tokens extracted from the desktop app.
	SourceDesktop = "desktop"
	// SourceManual marks tokens entered by hand.
	SourceManual = "manual"
)

// ErrEncryptionFailed is returned when encryption or decryption fails.
var ErrEncryptionFailed = errors.New("encryption failed")

// Credentials holds the stored Scribe tokens.
type Credentials struct {
	// AccessToken is the bearer token sent to the API (encrypted at rest).
	AccessToken string `yaml:"access_token"`
	// RefreshToken renews the access token (encrypted at rest).
	RefreshToken string `yaml:"refresh_token,omitempty"`
	// Source records how the tokens were obtained.
	Source string `yaml:"source,omitempty"`
	// ExpiresAt is the access token expiration time, if known.
	ExpiresAt time.Time `yaml:"expires_at,omitempty"`
	// LastUpdated is when the credentials were last written.
	LastUpdated time.Time `yaml:"last_updated"`
}

// Expired reports whether the access token is known to be expired.
func (c *Credentials) Expired() bool {
	return !c.ExpiresAt.IsZero() && time.Now().After(c.ExpiresAt)
}

// Store manages credential storage operations.
type Store struct {
	credentialsDir string
	encryptionKey  []byte
	keyProvider    KeyProvider
}

// NewStore creates a credential store using the default key provider
// (SCRIBE_ENCRYPTION_KEY when set, otherwise the system keyring).
func NewStore() (*Store, error) {
	keyProvider, err := GetDefaultKeyProvider()
	if err != nil {
		return nil, fmt.Errorf("initializing key provider: %w", err)
	}
	return NewStoreWithKeyProvider(keyProvider)
}

// NewStoreWithKeyProvider creates a credential store with a custom key
// provider. Primarily used for testing.
func NewStoreWithKeyProvider(keyProvider KeyProvider) (*Store, error) {
	dir, err := CredentialsDir()
	if err != nil {
		return nil, fmt.Errorf("getting credentials directory: %w", err)
	}

	key, err := keyProvider.GetKey()
	if err != nil {
		return nil, fmt.Errorf("getting encryption key: %w", err)
	}

	return &Store{
		credentialsDir: dir,
		encryptionKey:  key,
		keyProvider:    keyProvider,
	}, nil
}

// CredentialsDir returns the credentials directory path.
// Uses $SCRIBE_CONFIG_DIR if set, otherwise ~/.scribe.
func CredentialsDir() (string, error) {
	if dir := os.Getenv("SCRIBE_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	return filepath.Join(home, DefaultCredentialsDir), nil
}

// CredentialsPath returns the full path to the credentials file.
func CredentialsPath() (string, error) {
	dir, err := CredentialsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultCredentialsFile), nil
}

// Save encrypts the token fields and writes the credentials file with
// restrictive permissions.
func (s *Store) Save(creds *Credentials) error {
	if err := os.MkdirAll(s.credentialsDir, 0700); err != nil {
		return fmt.Errorf("creating credentials directory: %w", err)
	}

	storageCreds := *creds
	storageCreds.LastUpdated = time.Now()

	if storageCreds.AccessToken != "" {
		encrypted, err := s.encrypt(storageCreds.AccessToken)
		if err != nil {
			return fmt.Errorf("encrypting access token: %w", err)
		}
		storageCreds.AccessToken = encrypted
	}

	if storageCreds.RefreshToken != "" {
		encrypted, err := s.encrypt(storageCreds.RefreshToken)
		if err != nil {
			return fmt.Errorf("encrypting refresh token: %w", err)
		}
		storageCreds.RefreshToken = encrypted
	}

	data, err := yaml.Marshal(&storageCreds)
	if err != nil {
		return fmt.Errorf("marshaling credentials: %w", err)
	}

	credPath := filepath.Join(s.credentialsDir, DefaultCredentialsFile)
	if err := os.WriteFile(credPath, data, 0600); err != nil {
		return fmt.Errorf("writing credentials file: %w", err)
	}

	return nil
}

// Load reads and decrypts the credentials file. A missing file is
// ErrNoCredentials.
func (s *Store) Load() (*Credentials, error) {
	credPath := filepath.Join(s.credentialsDir, DefaultCredentialsFile)

	data, err := os.ReadFile(credPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, scerrors.ErrNoCredentials
		}
		return nil, fmt.Errorf("reading credentials file: %w", err)
	}

	var creds Credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parsing credentials: %w", err)
	}

	if creds.AccessToken != "" {
		decrypted, err := s.decrypt(creds.AccessToken)
		if err != nil {
			return nil, fmt.Errorf("decrypting access token: %w", err)
		}
		creds.AccessToken = decrypted
	}

	if creds.RefreshToken != "" {
		decrypted, err := s.decrypt(creds.RefreshToken)
		if err != nil {
			return nil, fmt.Errorf("decrypting refresh token: %w", err)
		}
		creds.RefreshToken = decrypted
	}

	return &creds, nil
}

// Delete removes stored credentials. Deleting nothing is not an error.
func (s *Store) Delete() error {
	credPath := filepath.Join(s.credentialsDir, DefaultCredentialsFile)

	if err := os.Remove(credPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("removing credentials file: %w", err)
	}

	return nil
}

// Exists checks whether a credentials file is present.
func (s *Store) Exists() bool {
	credPath := filepath.Join(s.credentialsDir, DefaultCredentialsFile)
	_, err := os.Stat(credPath)
	return err == nil
}

// ActiveToken returns the access token to use, checking the SCRIBE_TOKEN
// environment variable before the stored credentials.
func (s *Store) ActiveToken() (string, error) {
	if token := os.Getenv("SCRIBE_TOKEN"); token != "" {
		return token, nil
	}

	creds, err := s.Load()
	if err != nil {
		return "", err
	}
	if creds.Expired() {
		return "", fmt.Errorf("%w: stored token expired", scerrors.ErrAuthRequired)
	}
	return creds.AccessToken, nil
}

// encrypt encrypts a string using AES-GCM.
func (s *Store) encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(s.encryptionKey)
	if err != nil {
		return "", fmt.Errorf("%w: creating cipher: %v", ErrEncryptionFailed, err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("%w: creating GCM: %v", ErrEncryptionFailed, err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("%w: generating nonce: %v", ErrEncryptionFailed, err)
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt decrypts an AES-GCM encrypted string.
func (s *Store) decrypt(ciphertext string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: decoding base64: %v", ErrEncryptionFailed, err)
	}

	block, err := aes.NewCipher(s.encryptionKey)
	if err != nil {
		return "", fmt.Errorf("%w: creating cipher: %v", ErrEncryptionFailed, err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("%w: creating GCM: %v", ErrEncryptionFailed, err)
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", fmt.Errorf("%w: ciphertext too short", ErrEncryptionFailed)
	}

	nonce, ciphertextBytes := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertextBytes, nil)
	if err != nil {
		return "", fmt.Errorf("%w: decryption failed: %v", ErrEncryptionFailed, err)
	}

	return string(plaintext), nil
}

// MaskToken returns a masked token with the first and last few characters
// visible, for status output.
func MaskToken(token string) string {
	if len(token) <= 20 {
		return strings.Repeat("*", len(token))
	}
	return token[:8] + "..." + token[len(token)-8:]
}

// FormatExpiry formats a token expiry time for display.
func FormatExpiry(expiresAt time.Time) string {
	if expiresAt.IsZero() {
		return "unknown"
	}

	remaining := time.Until(expiresAt)
	if remaining < 0 {
		return "expired"
	}

	if remaining < time.Hour {
		return fmt.Sprintf("%d minutes", int(remaining.Minutes()))
	}
	if remaining < 24*time.Hour {
		return fmt.Sprintf("%d hours", int(remaining.Hours()))
	}
	return fmt.Sprintf("%d days", int(remaining.Hours()/24))
}
