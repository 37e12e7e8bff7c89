package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/habitek/propmobile/internal/core/ports"
)

const prefsFile = "preferences.json"

// PrefStore is plain (non-secure) JSON key/value persistence for user
// preferences. The locale choice lives here; nothing sensitive does.
type PrefStore struct {
	path string

	mu sync.Mutex
}

var _ ports.PreferenceStore = (*PrefStore)(nil)

func NewPrefStore(dir string) (*PrefStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &PrefStore{path: filepath.Join(dir, prefsFile)}, nil
}

func (p *PrefStore) Get(key string) (string, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, err := p.load()
	if err != nil {
		return "", false, err
	}
	v, ok := m[key]
	return v, ok, nil
}

func (p *PrefStore) Set(key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, err := p.load()
	if err != nil {
		// Preferences are droppable; start over rather than brick the store.
		m = make(map[string]string)
	}
	m[key] = value

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return os.Rename(tmp, p.path)
}

func (p *PrefStore) load() (map[string]string, error) {
	data, err := os.ReadFile(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read preferences: %w", err)
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}
	return m, nil
}
