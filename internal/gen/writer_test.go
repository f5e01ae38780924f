package gen

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timedata-generator/internal/diagnostic"
)

func TestWriter_WriteIfDifferent(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root)

	const rel = "timedata/color/ColorRGB.pyx"

	full := filepath.Join(root, filepath.FromSlash(rel))

	status, err := w.WriteIfDifferent(rel, []byte("X"))
	require.NoError(t, err)
	assert.Equal(t, StatusCreated, status)

	// Push the mtime into the past so a rewrite would be visible.
	past := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(full, past, past))

	status, err = w.WriteIfDifferent(rel, []byte("X"))
	require.NoError(t, err)
	assert.Equal(t, StatusUnchanged, status)

	info, err := os.Stat(full)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(past), "unchanged content must not touch the file")

	status, err = w.WriteIfDifferent(rel, []byte("Y"))
	require.NoError(t, err)
	assert.Equal(t, StatusUpdated, status)

	data, err := os.ReadFile(full)
	require.NoError(t, err)
	assert.Equal(t, "Y", string(data))

	assert.Equal(t, map[WriteStatus]int{
		StatusCreated:   1,
		StatusUnchanged: 1,
		StatusUpdated:   1,
	}, w.Stats())
}

func TestWriter_NoTempFilesLeft(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root)

	_, err := w.WriteIfDifferent("a.pyx", []byte("one"))
	require.NoError(t, err)
	_, err = w.WriteIfDifferent("a.pyx", []byte("two"))
	require.NoError(t, err)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.pyx", entries[0].Name())

	info, err := entries[0].Info()
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(filePerm), info.Mode().Perm())
}

func TestWriter_DryRun(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root, WithDryRun())

	status, err := w.WriteIfDifferent("timedata/genfiles.pyx", []byte("include \"a\"\n"))
	require.NoError(t, err)
	assert.Equal(t, StatusCreated, status)

	_, err = os.Stat(filepath.Join(root, "timedata"))
	assert.True(t, os.IsNotExist(err), "dry run must not create directories")

	require.NoError(t, os.WriteFile(filepath.Join(root, "b.pyx"), []byte("old"), 0o644))

	status, err = w.WriteIfDifferent("b.pyx", []byte("new"))
	require.NoError(t, err)
	assert.Equal(t, StatusUpdated, status)

	data, err := os.ReadFile(filepath.Join(root, "b.pyx"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

func TestWriter_WriteFailure(t *testing.T) {
	root := t.TempDir()

	// A directory where the file should be cannot be read or replaced.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "timedata", "genfiles.pyx"), 0o755))

	w := NewWriter(root)

	_, err := w.WriteIfDifferent("timedata/genfiles.pyx", []byte("x"))
	require.ErrorIs(t, err, diagnostic.ErrWriteFailure)

	var failure *diagnostic.WriteFailureError
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "timedata/genfiles.pyx", failure.Path)
	assert.Contains(t, err.Error(), "timedata/genfiles.pyx")
}

func TestWriter_ParentIsFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "timedata"), []byte("not a dir"), 0o644))

	w := NewWriter(root)

	_, err := w.WriteIfDifferent("timedata/color/ColorRGB.pyx", []byte("x"))
	require.ErrorIs(t, err, diagnostic.ErrWriteFailure)
}

func TestWriteStatus_String(t *testing.T) {
	assert.Equal(t, "Unchanged", StatusUnchanged.String())
	assert.Equal(t, "Created", StatusCreated.String())
	assert.Equal(t, "Updated", StatusUpdated.String())
	assert.Equal(t, "WriteStatus(9)", WriteStatus(9).String())
}
