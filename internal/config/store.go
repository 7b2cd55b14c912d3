package config

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/96-neko-96/ploterAI/internal/docstore"
	"go.uber.org/zap"
)

// DocumentStore is the persistence the settings file goes through.
type DocumentStore interface {
	Save(path string, v any, opts ...docstore.SaveOption) error
	LoadInto(path string, v any) (bool, error)
}

// Store reads and writes the settings document under one directory.
// Reads never fail: an unreadable document yields the defaults.
type Store struct {
	mu   sync.Mutex
	path string
	keys keyring
	docs DocumentStore
	log  *zap.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithRandom overrides the entropy source used for keys and nonces.
func WithRandom(r io.Reader) StoreOption {
	return func(s *Store) { s.keys.rand = r }
}

// NewStore returns a Store for dir/config.json and dir/secret.key.
func NewStore(dir string, docs DocumentStore, log *zap.Logger, opts ...StoreOption) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		path: filepath.Join(dir, SettingsFile),
		keys: keyring{path: filepath.Join(dir, KeyFile), rand: rand.Reader},
		docs: docs,
		log:  log.Named("config"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the settings file path.
func (s *Store) Path() string { return s.path }

// Load returns the stored settings with defaults for absent sections.
func (s *Store) Load() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() Settings {
	st := DefaultSettings()
	found, err := s.docs.LoadInto(s.path, &st)
	if err != nil {
		s.log.Warn("settings unreadable, using defaults", zap.String("path", s.path), zap.Error(err))
		return DefaultSettings()
	}
	if !found {
		return DefaultSettings()
	}
	return st
}

// update applies fn to the current settings and persists the result.
func (s *Store) update(fn func(st *Settings) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.loadLocked()
	if err := fn(&st); err != nil {
		return err
	}
	if err := s.docs.Save(s.path, st, docstore.WithPerm(0o600)); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}

// SetAPIKey encrypts key and stores it. An empty key clears the stored one.
func (s *Store) SetAPIKey(key string) error {
	if key == "" {
		return s.update(func(st *Settings) error {
			st.API.EncryptedKey = nil
			return nil
		})
	}
	sealed, err := s.keys.seal(key)
	if err != nil {
		return fmt.Errorf("encrypting api key: %w", err)
	}
	return s.update(func(st *Settings) error {
		st.API.EncryptedKey = &sealed
		return nil
	})
}

// APIKey returns the decrypted key. It reports false when no key is stored
// or when the stored value cannot be decrypted with the current key file.
func (s *Store) APIKey() (string, bool) {
	cfg := s.APIConfig()
	if !cfg.HasKey() {
		return "", false
	}
	plain, err := s.keys.open(*cfg.EncryptedKey)
	if err != nil {
		if !errors.Is(err, errNoKey) {
			s.log.Warn("stored api key could not be decrypted", zap.Error(err))
		}
		return "", false
	}
	return plain, true
}

// SetAPIConfig validates and stores provider parameters. The encrypted key
// already on disk is kept regardless of cfg.EncryptedKey.
func (s *Store) SetAPIConfig(cfg APIConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return s.update(func(st *Settings) error {
		cfg.EncryptedKey = st.API.EncryptedKey
		st.API = cfg
		return nil
	})
}

// APIConfig returns the stored provider parameters.
func (s *Store) APIConfig() APIConfig {
	return s.Load().API
}

// SetUITheme validates and stores display preferences.
func (s *Store) SetUITheme(ui UIConfig) error {
	if err := ui.Validate(); err != nil {
		return err
	}
	return s.update(func(st *Settings) error {
		st.UI = ui
		return nil
	})
}

// UITheme returns the stored display preferences.
func (s *Store) UITheme() UIConfig {
	return s.Load().UI
}

// SetLastProject remembers the most recently opened project. An empty path
// forgets it.
func (s *Store) SetLastProject(path string) error {
	return s.update(func(st *Settings) error {
		if path == "" {
			st.LastProject = nil
			return nil
		}
		st.LastProject = &path
		return nil
	})
}

// LastProject returns the most recently opened project path.
func (s *Store) LastProject() (string, bool) {
	st := s.Load()
	if st.LastProject == nil || *st.LastProject == "" {
		return "", false
	}
	return *st.LastProject, true
}
