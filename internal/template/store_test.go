package template

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/96-neko-96/ploterAI/internal/docstore"
	"github.com/96-neko-96/ploterAI/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "templates")
	return NewStore(dir, docstore.New(nil), nil), dir
}

var noir = domain.Style{
	Perspective: "first person", Tense: "past", Tone: "noir",
	DescriptionLevel: "sparse", DialogueStyle: "clipped",
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "a_b_c_d_e_f_g_h_i_", SanitizeName(`a<b>c:d"e/f\g|h?i*`))
	assert.Equal(t, "Mystery & Suspense", SanitizeName("Mystery & Suspense"))

	long := strings.Repeat("文", 150)
	got := SanitizeName(long)
	assert.Equal(t, 100, len([]rune(got)))
}

func TestStore_SaveLoad(t *testing.T) {
	s, dir := setupStore(t)

	require.True(t, s.Save("Noir", noir))
	assert.FileExists(t, filepath.Join(dir, "Noir.json"))
	assert.NoFileExists(t, filepath.Join(dir, "Noir.json.bak"))

	got, ok := s.Load("Noir")
	require.True(t, ok)
	assert.Equal(t, noir, got)
}

func TestStore_SaveRejectsBlankName(t *testing.T) {
	s, _ := setupStore(t)
	assert.False(t, s.Save("  ", noir))
	assert.Empty(t, s.List())
}

func TestStore_SaveFailureReturnsFalse(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	s := NewStore(filepath.Join(blocker, "templates"), docstore.New(nil), nil)

	assert.False(t, s.Save("Noir", noir))
}

func TestStore_LoadMissingOrCorrupt(t *testing.T) {
	s, dir := setupStore(t)

	_, ok := s.Load("ghost")
	assert.False(t, ok)

	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{"name":`), 0o644))
	_, ok = s.Load("bad")
	assert.False(t, ok)
}

func TestStore_Delete(t *testing.T) {
	s, _ := setupStore(t)
	require.True(t, s.Save("Noir", noir))

	assert.True(t, s.Delete("Noir"))
	assert.False(t, s.Delete("Noir"), "second delete has nothing to remove")
	_, ok := s.Load("Noir")
	assert.False(t, ok)
}

func TestStore_ListSortedAndSkipsUnreadable(t *testing.T) {
	s, dir := setupStore(t)
	require.True(t, s.Save("zeta", noir))
	require.True(t, s.Save("Alpha", noir))
	require.True(t, s.Save("a/b", noir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"name": "bro`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nameless.json"), []byte(`{"style":{}}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0o755))

	assert.Equal(t, []string{"Alpha", "a/b", "nameless", "zeta"}, s.List())
}

func TestStore_ListMissingDirectory(t *testing.T) {
	s := NewStore("/nonexistent/templates/path", docstore.New(nil), nil)
	assert.Empty(t, s.List())
}

func TestStore_SanitizedNamesCollide(t *testing.T) {
	s, _ := setupStore(t)
	first := domain.Style{Tone: "first"}
	second := domain.Style{Tone: "second"}

	require.True(t, s.Save("a/b", first))
	require.True(t, s.Save(`a\b`, second))

	assert.Equal(t, []string{`a\b`}, s.List())
	got, ok := s.Load("a/b")
	require.True(t, ok)
	assert.Equal(t, "second", got.Tone, "the later save overwrites the earlier one")
}

func TestStore_EnsureDefaultsNeverOverwrites(t *testing.T) {
	s, _ := setupStore(t)
	custom := domain.Style{Tone: "mine"}
	require.True(t, s.Save("Comedy", custom))

	written := s.EnsureDefaults()
	assert.Len(t, written, 4)
	assert.NotContains(t, written, "Comedy")

	got, ok := s.Load("Comedy")
	require.True(t, ok)
	assert.Equal(t, custom, got)

	assert.Len(t, s.List(), 5)
	assert.Empty(t, s.EnsureDefaults(), "second run writes nothing")
}

func TestStore_All(t *testing.T) {
	s, _ := setupStore(t)
	s.EnsureDefaults()

	all := s.All()
	require.Len(t, all, 5)
	assert.Equal(t, "Comedy", all[0].Name)
	assert.Equal(t, "comedic", all[0].Style.Tone)
}
