// Package docstore persists one JSON document per file path. Writes go
// through a sibling temp file and an atomic rename; the previous content is
// kept as a single-generation ".bak" copy that Load falls back to when the
// primary file no longer parses.
package docstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const (
	BackupSuffix = ".bak"
	TempSuffix   = ".tmp"

	defaultPerm = 0o644
	dirPerm     = 0o755
)

var (
	// ErrRead wraps I/O failures while loading.
	ErrRead = errors.New("document read failed")

	// ErrWrite wraps I/O or encoding failures while saving.
	ErrWrite = errors.New("document write failed")

	// ErrParse is returned when neither the document nor its backup is valid JSON.
	ErrParse = errors.New("document is not valid JSON")
)

// Store reads and writes JSON documents on the local filesystem.
type Store struct {
	log *zap.Logger
}

// New returns a Store. A nil logger disables logging.
func New(log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{log: log.Named("docstore")}
}

type saveOptions struct {
	perm   fs.FileMode
	backup bool
}

// SaveOption adjusts a single Save call.
type SaveOption func(*saveOptions)

// WithPerm sets the mode of the written file.
func WithPerm(perm fs.FileMode) SaveOption {
	return func(o *saveOptions) { o.perm = perm }
}

// WithoutBackup skips copying the previous content to the ".bak" sibling.
func WithoutBackup() SaveOption {
	return func(o *saveOptions) { o.backup = false }
}

// BackupPath returns the backup sibling of path.
func BackupPath(path string) string { return path + BackupSuffix }

// TempPath returns the transient sibling used while saving path.
func TempPath(path string) string { return path + TempSuffix }

// Save encodes v as indented UTF-8 JSON and replaces path with it.
// The target is only touched by the final rename.
func (s *Store) Save(path string, v any, opts ...SaveOption) error {
	o := saveOptions{perm: defaultPerm, backup: true}
	for _, opt := range opts {
		opt(&o)
	}

	data, err := encode(v)
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %v", ErrWrite, path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("%w: creating directory for %s: %v", ErrWrite, path, err)
	}

	if o.backup {
		if err := copyFile(path, BackupPath(path)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: backing up %s: %v", ErrWrite, path, err)
		}
	}

	tmp := TempPath(path)
	if err := writeSynced(tmp, data, o.perm); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: writing %s: %v", ErrWrite, tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: replacing %s: %v", ErrWrite, path, err)
	}

	s.log.Debug("document saved", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}

// Load returns the raw JSON stored at path. found is false, with a nil
// error, when path does not exist. When the primary file does not parse the
// backup is returned instead; the primary is left as is.
func (s *Store) Load(path string) (raw json.RawMessage, found bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s: %v", ErrRead, path, err)
	}
	if json.Valid(data) {
		return json.RawMessage(data), true, nil
	}

	bak := BackupPath(path)
	bakData, bakErr := os.ReadFile(bak)
	if bakErr == nil && json.Valid(bakData) {
		s.log.Warn("document corrupt, recovered from backup",
			zap.String("path", path), zap.String("backup", bak))
		return json.RawMessage(bakData), true, nil
	}
	if bakErr != nil && !errors.Is(bakErr, fs.ErrNotExist) {
		return nil, false, fmt.Errorf("%w: %s: %v", ErrRead, bak, bakErr)
	}
	return nil, false, fmt.Errorf("%w: %s", ErrParse, path)
}

// LoadInto decodes the document at path into v.
func (s *Store) LoadInto(path string, v any) (found bool, err error) {
	raw, found, err := s.Load(path)
	if err != nil || !found {
		return found, err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}
	return true, nil
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSynced(path string, data []byte, perm fs.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// OpenFile only applies perm on creation and is subject to umask.
	return os.Chmod(path, perm)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
