// Package template stores named writing-style presets, one JSON file per
// preset, in a dedicated directory.
package template

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/96-neko-96/ploterAI/internal/docstore"
	"github.com/96-neko-96/ploterAI/internal/domain"
	"go.uber.org/zap"
)

const maxNameRunes = 100

// DocumentStore is the persistence template files go through.
type DocumentStore interface {
	Save(path string, v any, opts ...docstore.SaveOption) error
	LoadInto(path string, v any) (bool, error)
}

// Store manages the template directory. Save and Delete report a boolean
// and log failures; List skips files it cannot read.
type Store struct {
	dir  string
	docs DocumentStore
	log  *zap.Logger
}

// NewStore returns a Store rooted at dir. A nil logger disables logging.
func NewStore(dir string, docs DocumentStore, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{dir: dir, docs: docs, log: log.Named("template")}
}

// Dir returns the template directory.
func (s *Store) Dir() string { return s.dir }

var invalidNameChars = strings.NewReplacer(
	"<", "_", ">", "_", ":", "_", `"`, "_",
	"/", "_", `\`, "_", "|", "_", "?", "_", "*", "_",
)

// SanitizeName maps a template name to its file stem: characters that are
// invalid in file names become "_" and the result is cut to 100 runes.
// Distinct names can share a stem; the later save wins.
func SanitizeName(name string) string {
	out := invalidNameChars.Replace(name)
	if r := []rune(out); len(r) > maxNameRunes {
		out = string(r[:maxNameRunes])
	}
	return out
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, SanitizeName(name)+".json")
}

// Save writes the preset, replacing any file with the same sanitized name.
func (s *Store) Save(name string, style domain.Style) bool {
	t := domain.Template{Name: name, Style: style}
	if err := domain.Validate(t); err != nil {
		s.log.Warn("template rejected", zap.String("name", name), zap.Error(err))
		return false
	}
	if err := s.docs.Save(s.path(name), t, docstore.WithoutBackup()); err != nil {
		s.log.Error("template save failed", zap.String("name", name), zap.Error(err))
		return false
	}
	return true
}

// Load returns the stored style for name.
func (s *Store) Load(name string) (domain.Style, bool) {
	var t domain.Template
	found, err := s.docs.LoadInto(s.path(name), &t)
	if err != nil {
		s.log.Warn("template unreadable", zap.String("name", name), zap.Error(err))
		return domain.Style{}, false
	}
	if !found {
		return domain.Style{}, false
	}
	return t.Style, true
}

// Delete removes the preset file and reports whether one was removed.
func (s *Store) Delete(name string) bool {
	err := os.Remove(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return false
	}
	if err != nil {
		s.log.Error("template delete failed", zap.String("name", name), zap.Error(err))
		return false
	}
	return true
}

// List returns the stored template names in lexical order. A file whose
// name field is empty is listed under its file stem.
func (s *Store) List() []string {
	files, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		s.log.Error("template scan failed", zap.String("dir", s.dir), zap.Error(err))
		return []string{}
	}

	names := make([]string, 0, len(files))
	for _, file := range files {
		var t domain.Template
		found, err := s.docs.LoadInto(file, &t)
		if err != nil || !found {
			continue // skip unreadable templates
		}
		stem := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		names = append(names, domain.CoalesceStr(t.Name, stem))
	}
	sort.Strings(names)
	return names
}

// All returns every readable template with its style, ordered by name.
func (s *Store) All() []domain.Template {
	names := s.List()
	out := make([]domain.Template, 0, len(names))
	for _, name := range names {
		if style, ok := s.Load(name); ok {
			out = append(out, domain.Template{Name: name, Style: style})
		}
	}
	return out
}

// EnsureDefaults writes each built-in preset whose file does not exist yet.
// It returns the names that were written.
func (s *Store) EnsureDefaults() []string {
	var written []string
	for _, t := range DefaultTemplates() {
		if _, err := os.Stat(s.path(t.Name)); err == nil {
			continue
		}
		if s.Save(t.Name, t.Style) {
			written = append(written, t.Name)
		}
	}
	if len(written) > 0 {
		s.log.Info("default templates written", zap.Strings("names", written))
	}
	return written
}
