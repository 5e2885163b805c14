package journal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "journal.mp")
	j := New(path, WithSource("lsp"))
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	j.now = func() time.Time { return fixed }

	require.NoError(t, j.RecordWord("teh", "/w/.cspell.json", true))
	require.NoError(t, j.RecordWord("teh", "/w/.cspell.json", false))

	entries, err := j.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "teh", entries[0].Word)
	assert.Equal(t, "/w/.cspell.json", entries[0].Path)
	assert.Equal(t, "lsp", entries[0].Source)
	assert.True(t, entries[0].Added)
	assert.False(t, entries[1].Added)
	assert.True(t, fixed.Equal(entries[0].At))
	assert.NotEmpty(t, entries[0].ID)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
}

func TestRecordTrimsToLimit(t *testing.T) {
	j := New(filepath.Join(t.TempDir(), "journal.mp"), WithLimit(3))
	for _, w := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, j.RecordWord(w, "p", true))
	}
	entries, err := j.Entries()
	require.NoError(t, err)
	words := make([]string, 0, len(entries))
	for _, e := range entries {
		words = append(words, e.Word)
	}
	assert.Equal(t, []string{"c", "d", "e"}, words)
}

func TestEntriesMissingJournal(t *testing.T) {
	entries, err := New(filepath.Join(t.TempDir(), "none.mp")).Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRecordReplacesCorruptJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.mp")
	require.NoError(t, os.WriteFile(path, []byte("not msgpack at all"), 0o644))
	j := New(path)

	_, err := j.Entries()
	require.Error(t, err)

	require.NoError(t, j.RecordWord("teh", "p", true))
	entries, err := j.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "teh", entries[0].Word)
}

func TestDefaultPathHonorsXDGStateHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)
	path, err := DefaultPath("spellesp")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "spellesp", "journal.mp"), path)
}
