// Package export renders a project as plain text, Markdown or PDF.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/96-neko-96/ploterAI/internal/domain"
)

// ErrUnknownFormat is returned when no exporter matches the requested format.
var ErrUnknownFormat = errors.New("unknown export format")

const (
	rule          = "============================================================"
	createdLayout = "2006-01-02 15:04:05"
	untitledScene = "Untitled"
	unknownField  = "unknown"
)

// Document is the part of a project that gets exported.
type Document struct {
	ProjectName string
	Characters  []domain.Character
	World       domain.WorldSettings
	Scenes      []domain.Scene
}

// Options toggles the optional front matter.
type Options struct {
	IncludeTitle      bool
	IncludeCharacters bool
	IncludeWorld      bool
}

// DefaultOptions includes the title only.
func DefaultOptions() Options {
	return Options{IncludeTitle: true}
}

// NewDocument builds a Document from p. Scenes are kept in project order;
// a non-empty sceneIDs keeps only those scenes.
func NewDocument(p *domain.Project, sceneIDs []string) Document {
	doc := Document{
		ProjectName: p.Name,
		Characters:  append([]domain.Character{}, p.Characters...),
		World:       p.WorldSettings,
	}
	want := make(map[string]bool, len(sceneIDs))
	for _, id := range sceneIDs {
		want[id] = true
	}
	for _, sc := range p.Scenes {
		if len(want) == 0 || want[sc.ID] {
			doc.Scenes = append(doc.Scenes, sc.Clone())
		}
	}
	return doc
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (domain.ExportFormat, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "txt", "text":
		return domain.FormatText, nil
	case "md", "markdown":
		return domain.FormatMarkdown, nil
	case "pdf":
		return domain.FormatPDF, nil
	}
	return "", fmt.Errorf("%w: extension %q", ErrUnknownFormat, ext)
}

// ExportFile writes doc to path in format. An empty format is inferred from
// the extension. Parent directories are created and the file only appears
// once it is complete.
func ExportFile(path string, format domain.ExportFormat, doc Document, opts Options, now time.Time, fontPath string) error {
	if format == "" {
		var err error
		if format, err = FormatFromPath(path); err != nil {
			return err
		}
	}
	if !domain.ValidExportFormats[string(format)] {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer os.Remove(tmp.Name())

	switch format {
	case domain.FormatText:
		err = WriteText(tmp, doc, opts, now)
	case domain.FormatMarkdown:
		err = WriteMarkdown(tmp, doc, opts, now)
	case domain.FormatPDF:
		err = WritePDF(tmp, doc, opts, now, fontPath)
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("exporting %s: %w", format, err)
	}

	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("exporting %s: %w", format, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("exporting %s: %w", format, err)
	}
	return nil
}

func sceneTitle(sc domain.Scene) string {
	return domain.CoalesceStr(strings.TrimSpace(sc.Title), untitledScene)
}

func orUnknown(s string) string {
	return domain.CoalesceStr(s, unknownField)
}
