package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Credentials are the three persisted session fields. All three being
// present means "logged in"; they are always written and cleared
// together, never partially.
type Credentials struct {
	AccessToken string `json:"access_token"`
	Email       string `json:"user_email"`
	Nickname    string `json:"user_nickname"`
}

// LoggedIn reports whether every field is populated.
func (c Credentials) LoggedIn() bool {
	return c.AccessToken != "" && c.Email != "" && c.Nickname != ""
}

// Store persists Credentials. Save and Clear are full overwrites;
// no partial field updates.
type Store interface {
	Load() (Credentials, error)
	Save(Credentials) error
	Clear() error
}

// MemoryStore keeps credentials in process memory. 주로 테스트 용도.
type MemoryStore struct {
	mu    sync.Mutex
	creds Credentials
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Load() (Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creds, nil
}

func (m *MemoryStore) Save(creds Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = creds
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = Credentials{}
	return nil
}

// FileStore persists credentials as a single JSON document, the CLI
// counterpart of the browser's three localStorage keys. Writes go
// through a temp file + rename so readers never observe a torn state.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore stores credentials at path, creating parent
// directories on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load() (Credentials, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Credentials{}, nil
	}
	if err != nil {
		return Credentials{}, err
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

func (f *FileStore) Save(creds Credentials) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}

	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
