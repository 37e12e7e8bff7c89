// Package storage provides the device-local persistence used by the client
// core: an encrypted file store for session credentials and a plain JSON
// store for preferences.
package storage

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"github.com/habitek/propmobile/internal/core/ports"
)

const (
	credentialsFile = "credentials.enc"

	keyToken    = "auth_token"
	keyUserData = "user_data"

	saltLen = 16
)

// SecureStore persists the session keys in a single file sealed with
// XChaCha20-Poly1305 under a scrypt-derived key. It stands in for the
// platform keychain: each read and write is atomic (write-to-temp then
// rename) and a missing file simply means an empty store.
type SecureStore struct {
	path   string
	secret []byte

	mu sync.Mutex
}

var _ ports.CredentialStore = (*SecureStore)(nil)

// NewSecureStore opens (or lazily creates) the credential file under dir.
// secret is the device secret the sealing key is derived from.
func NewSecureStore(dir, secret string) (*SecureStore, error) {
	if secret == "" {
		return nil, errors.New("securestore: empty device secret")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &SecureStore{
		path:   filepath.Join(dir, credentialsFile),
		secret: []byte(secret),
	}, nil
}

func (s *SecureStore) Token() (string, bool, error) {
	return s.get(keyToken)
}

func (s *SecureStore) SetToken(token string) error {
	return s.set(keyToken, token)
}

func (s *SecureStore) DeleteToken() error {
	return s.delete(keyToken)
}

func (s *SecureStore) UserData() ([]byte, bool, error) {
	v, ok, err := s.get(keyUserData)
	if !ok || err != nil {
		return nil, ok, err
	}
	return []byte(v), true, nil
}

func (s *SecureStore) SetUserData(data []byte) error {
	return s.set(keyUserData, string(data))
}

func (s *SecureStore) DeleteUserData() error {
	return s.delete(keyUserData)
}

func (s *SecureStore) get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := m[key]
	return v, ok, nil
}

func (s *SecureStore) set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	m[key] = value
	return s.save(m)
}

func (s *SecureStore) delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		// A store we cannot read must still be clearable: fail closed by
		// dropping the whole file.
		return os.Remove(s.path)
	}
	if _, ok := m[key]; !ok {
		return nil
	}
	delete(m, key)
	return s.save(m)
}

// load reads and opens the sealed file. Layout: salt | nonce | ciphertext.
func (s *SecureStore) load() (map[string]string, error) {
	blob, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	if len(blob) < saltLen+chacha20poly1305.NonceSizeX {
		return nil, errors.New("credentials file truncated")
	}

	salt := blob[:saltLen]
	nonce := blob[saltLen : saltLen+chacha20poly1305.NonceSizeX]
	ciphertext := blob[saltLen+chacha20poly1305.NonceSizeX:]

	aead, err := s.aead(salt)
	if err != nil {
		return nil, err
	}
	plain, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("open credentials: %w", err)
	}

	var m map[string]string
	if err := json.Unmarshal(plain, &m); err != nil {
		return nil, fmt.Errorf("decode credentials: %w", err)
	}
	return m, nil
}

func (s *SecureStore) save(m map[string]string) error {
	plain, err := json.Marshal(m)
	if err != nil {
		return err
	}

	buf := make([]byte, saltLen+chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("generate salt: %w", err)
	}
	salt := buf[:saltLen]
	nonce := buf[saltLen:]

	aead, err := s.aead(salt)
	if err != nil {
		return err
	}
	blob := append(buf, aead.Seal(nil, nonce, plain, nil)...)

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func (s *SecureStore) aead(salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(s.secret, salt, 1<<14, 8, 1, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return chacha20poly1305.NewX(key)
}
