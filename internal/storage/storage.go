// Package storage persists client session state (yp token and cookie
// snapshot) between CLI invocations so a fresh process can skip the
// login bootstrap while the session is still accepted.
package storage

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/yopmail-tools/go-yopmail-cli/internal/platform/yopmail"
)

const (
	SessionDir = ".local/go-yopmail-cli/db"
	KeyFile    = ".key"

	// SessionMaxAge bounds how long a stored yp token is trusted before
	// a new bootstrap is forced.
	SessionMaxAge = 12 * time.Hour
)

func NewSessionStorage() (*Storage, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	basePath := filepath.Join(homeDir, SessionDir)

	if err := os.MkdirAll(basePath, 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	s := &Storage{
		basePath: basePath,
	}

	if err := s.loadOrGenerateKey(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Storage) loadOrGenerateKey() error {
	keyPath := filepath.Join(s.basePath, KeyFile)

	keyData, err := os.ReadFile(keyPath)
	if err == nil && len(keyData) == 32 {
		s.key = keyData
		return nil
	}

	s.key = make([]byte, 32)
	if _, err := rand.Read(s.key); err != nil {
		return fmt.Errorf("failed to generate encryption key: %w", err)
	}

	if err := os.WriteFile(keyPath, s.key, 0600); err != nil {
		return fmt.Errorf("failed to save encryption key: %w", err)
	}

	return nil
}

func (s *Storage) encrypt(plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func (s *Storage) decrypt(ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

func (s *Storage) sessionPath(mailbox string) string {
	return filepath.Join(s.basePath, "session-"+mailbox+".enc")
}

// SaveSession stores one mailbox's session state, encrypted at rest.
func (s *Storage) SaveSession(state *yopmail.SessionState) error {
	if state == nil || state.Mailbox == "" {
		return errors.New("nothing to save: empty session state")
	}

	jsonData, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	encrypted, err := s.encrypt(jsonData)
	if err != nil {
		return fmt.Errorf("failed to encrypt session: %w", err)
	}

	if err := os.WriteFile(s.sessionPath(state.Mailbox), encrypted, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// LoadSession returns a mailbox's stored session, or nil when none
// exists.
func (s *Storage) LoadSession(mailbox string) (*yopmail.SessionState, error) {
	encrypted, err := os.ReadFile(s.sessionPath(mailbox))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	decrypted, err := s.decrypt(encrypted)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt session: %w", err)
	}

	var state yopmail.SessionState
	if err := json.Unmarshal(decrypted, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &state, nil
}

// LoadFreshSession is LoadSession plus an age check: stale sessions come
// back as nil so the caller bootstraps again.
func (s *Storage) LoadFreshSession(mailbox string) (*yopmail.SessionState, error) {
	state, err := s.LoadSession(mailbox)
	if err != nil || state == nil {
		return nil, err
	}
	if time.Since(time.Unix(state.LastLogin, 0)) > SessionMaxAge {
		return nil, nil
	}
	return state, nil
}

func (s *Storage) HasSession(mailbox string) bool {
	_, err := os.Stat(s.sessionPath(mailbox))
	return err == nil
}

func (s *Storage) DeleteSession(mailbox string) error {
	err := os.Remove(s.sessionPath(mailbox))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *Storage) GetBasePath() string {
	return s.basePath
}
