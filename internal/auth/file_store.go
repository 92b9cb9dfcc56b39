package auth

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/hkdf"
	"gopkg.in/yaml.v3"

	"github.com/R3E-Network/wallet_layer/internal/api"
)

var (
	sessionKeySalt = []byte("wallet-layer-sessions")
	sessionKeyInfo = []byte("session-file-v1")
)

// FileStore keeps sessions in a YAML file readable only by the owner. With a
// secret the file content is sealed with AES-256-GCM.
type FileStore struct {
	mu   sync.Mutex
	path string
	aead cipher.AEAD
}

// FileStoreOption configures a FileStore.
type FileStoreOption func(*FileStore) error

// WithSecret encrypts the session file with a key derived from secret.
// An empty secret leaves the file in plain text.
func WithSecret(secret string) FileStoreOption {
	return func(f *FileStore) error {
		if secret == "" {
			return nil
		}
		aead, err := deriveSessionCipher([]byte(secret))
		if err != nil {
			return err
		}
		f.aead = aead
		return nil
	}
}

// NewFileStore creates a store backed by path. The file is created on first Put.
func NewFileStore(path string, opts ...FileStoreOption) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("auth: session file path is required")
	}
	f := &FileStore{path: filepath.Clean(path)}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func deriveSessionCipher(secret []byte) (cipher.AEAD, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, sessionKeySalt, sessionKeyInfo), key); err != nil {
		return nil, fmt.Errorf("auth: derive session key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("auth: session cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("auth: session cipher: %w", err)
	}
	return aead, nil
}

// Encrypted reports whether the file content is sealed.
func (f *FileStore) Encrypted() bool {
	return f.aead != nil
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// Get returns the stored session.
func (f *FileStore) Get(_ context.Context, domain api.Domain) (api.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	sessions, err := f.load()
	if err != nil {
		return api.Session{}, err
	}
	s, ok := sessions[domain.String()]
	if !ok {
		return api.Session{}, ErrSessionNotFound
	}
	return s, nil
}

// Put stores session for domain.
func (f *FileStore) Put(_ context.Context, domain api.Domain, session api.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	sessions, err := f.load()
	if err != nil {
		return err
	}
	sessions[domain.String()] = session
	return f.save(sessions)
}

// Delete removes the session for domain.
func (f *FileStore) Delete(_ context.Context, domain api.Domain) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	sessions, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := sessions[domain.String()]; !ok {
		return nil
	}
	delete(sessions, domain.String())
	return f.save(sessions)
}

// DeleteAll removes the session file.
func (f *FileStore) DeleteAll(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("auth: remove session file: %w", err)
	}
	return nil
}

func (f *FileStore) load() (map[string]api.Session, error) {
	sessions := make(map[string]api.Session)
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return sessions, nil
	}
	if err != nil {
		return nil, fmt.Errorf("auth: read session file: %w", err)
	}
	if data, err = f.open(data); err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("auth: parse session file: %w", err)
	}
	if sessions == nil {
		sessions = make(map[string]api.Session)
	}
	return sessions, nil
}

// save writes through a temp file so a crash never leaves a torn file.
func (f *FileStore) save(sessions map[string]api.Session) error {
	data, err := yaml.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("auth: encode sessions: %w", err)
	}
	if data, err = f.seal(data); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("auth: create session dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".sessions-*")
	if err != nil {
		return fmt.Errorf("auth: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("auth: write sessions: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("auth: chmod sessions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("auth: close sessions: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("auth: replace session file: %w", err)
	}
	return nil
}

// seal prefixes the ciphertext with its nonce.
func (f *FileStore) seal(plain []byte) ([]byte, error) {
	if f.aead == nil {
		return plain, nil
	}
	nonce := make([]byte, f.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("auth: session nonce: %w", err)
	}
	return f.aead.Seal(nonce, nonce, plain, nil), nil
}

func (f *FileStore) open(data []byte) ([]byte, error) {
	if f.aead == nil {
		return data, nil
	}
	n := f.aead.NonceSize()
	if len(data) < n {
		return nil, fmt.Errorf("auth: session file is not encrypted")
	}
	plain, err := f.aead.Open(nil, data[:n], data[n:], nil)
	if err != nil {
		return nil, fmt.Errorf("auth: decrypt session file: %w", err)
	}
	return plain, nil
}
