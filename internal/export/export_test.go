package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/96-neko-96/ploterAI/internal/domain"
	"github.com/96-neko-96/ploterAI/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exportTime = time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)

func sampleDocument() Document {
	p := testutil.NewSampleProject("Demo")
	p.Scenes[0].Content = "First paragraph.\n\nSecond paragraph."
	p.Scenes = append(p.Scenes, domain.Scene{ID: "s2", Title: "", Content: "The end."})
	return NewDocument(p, nil)
}

func TestNewDocument_FiltersScenesInProjectOrder(t *testing.T) {
	p := testutil.NewSampleProject("Demo")
	p.Scenes = append(p.Scenes, domain.Scene{ID: "s2", Title: "Ch2"}, domain.Scene{ID: "s3", Title: "Ch3"})

	doc := NewDocument(p, []string{"s3", "s1"})
	require.Len(t, doc.Scenes, 2)
	assert.Equal(t, "s1", doc.Scenes[0].ID)
	assert.Equal(t, "s3", doc.Scenes[1].ID)

	assert.Len(t, NewDocument(p, nil).Scenes, 3)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{IncludeTitle: true, IncludeCharacters: true, IncludeWorld: true}
	require.NoError(t, WriteText(&buf, sampleDocument(), opts, exportTime))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, rule+"\nDemo\n"+rule+"\n"))
	assert.Contains(t, out, "[Characters]")
	assert.Contains(t, out, "* Aria\nPersonality: curious\nAppearance: unknown")
	assert.Contains(t, out, "Name: Saltmere\nEra: age of sail\nOverview: unknown")
	assert.Contains(t, out, "[Chapter 1: Ch1]\n\nFirst paragraph.\n\nSecond paragraph.\n")
	assert.Contains(t, out, "[Chapter 2: Untitled]")
	assert.True(t, strings.HasSuffix(out, "Created: 2026-02-03 04:05:06"))
}

func TestWriteText_DefaultOptionsOmitFrontMatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleDocument(), DefaultOptions(), exportTime))

	out := buf.String()
	assert.Contains(t, out, "Demo")
	assert.NotContains(t, out, "[Characters]")
	assert.NotContains(t, out, "[World]")
}

func TestWriteText_NoTitleWithoutName(t *testing.T) {
	doc := sampleDocument()
	doc.ProjectName = ""

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, doc, DefaultOptions(), exportTime))
	assert.True(t, strings.HasPrefix(buf.String(), "[Chapter 1: Ch1]"))
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{IncludeTitle: true, IncludeCharacters: true, IncludeWorld: true}
	require.NoError(t, WriteMarkdown(&buf, sampleDocument(), opts, exportTime))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# Demo\n\n"))
	assert.Contains(t, out, "## Characters\n\n### Aria\n\n**Personality**: curious")
	assert.Contains(t, out, "**Background**: unknown")
	assert.Contains(t, out, "## World\n\n**Name**: Saltmere")
	assert.Contains(t, out, "## Chapter 1: Ch1\n\nFirst paragraph.")
	assert.Contains(t, out, "---\n\n## Chapter 2: Untitled")
	assert.True(t, strings.HasSuffix(out, "*Created: 2026-02-03 04:05:06*"))
}

func TestWritePDF_CoreFont(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{IncludeTitle: true, IncludeCharacters: true, IncludeWorld: true}
	require.NoError(t, WritePDF(&buf, sampleDocument(), opts, exportTime, ""))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 500)
}

func TestWritePDF_MissingFont(t *testing.T) {
	var buf bytes.Buffer
	err := WritePDF(&buf, sampleDocument(), DefaultOptions(), exportTime, filepath.Join(t.TempDir(), "nope.ttf"))
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]domain.ExportFormat{
		"a/story.txt":      domain.FormatText,
		"story.MD":         domain.FormatMarkdown,
		"story.markdown":   domain.FormatMarkdown,
		"/tmp/x/novel.pdf": domain.FormatPDF,
	} {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatFromPath("story.docx")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestExportFile_InfersFormatAndCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "demo.md")

	require.NoError(t, ExportFile(path, "", sampleDocument(), DefaultOptions(), exportTime, ""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Demo"))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")
}

func TestExportFile_ExplicitFormatWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.out")

	require.NoError(t, ExportFile(path, domain.FormatText, sampleDocument(), DefaultOptions(), exportTime, ""))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), rule))
}

func TestExportFile_UnknownFormat(t *testing.T) {
	dir := t.TempDir()

	err := ExportFile(filepath.Join(dir, "demo.docx"), "", sampleDocument(), DefaultOptions(), exportTime, "")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	err = ExportFile(filepath.Join(dir, "demo.txt"), "rtf", sampleDocument(), DefaultOptions(), exportTime, "")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestExportFile_FailedRenderLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.pdf")

	err := ExportFile(path, "", sampleDocument(), DefaultOptions(), exportTime, filepath.Join(dir, "missing.ttf"))
	require.Error(t, err)
	assert.NoFileExists(t, path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
