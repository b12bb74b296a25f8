package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "out.json")

	require.NoError(t, WriteFileAtomic(path, []byte("hello"), FileModeDefault))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestWriteFileAtomic_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), FileModeDefault))

	require.NoError(t, WriteFileAtomic(path, []byte("new"), FileModeDefault))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestWriteFileAtomic_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteFileAtomic(filepath.Join(dir, "out.json"), []byte("x"), FileModeDefault))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.json", entries[0].Name())
}

func TestListSubdirs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "a"), DirModeDefault))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "b"), DirModeDefault))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte("x"), FileModeDefault))

	names, err := ListSubdirs(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, names)
}

func TestListSubdirs_MissingDir(t *testing.T) {
	names, err := ListSubdirs(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestMove_File(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "nested", "dst.txt")
	require.NoError(t, os.WriteFile(src, []byte("content"), FileModeDefault))

	require.NoError(t, Move(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err))
}

func TestMove_Directory(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "srcdir")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "inner"), DirModeDefault))
	require.NoError(t, os.WriteFile(filepath.Join(src, "inner", "f.txt"), []byte("x"), FileModeDefault))

	dst := filepath.Join(dir, "dstdir")
	require.NoError(t, Move(src, dst))

	data, err := os.ReadFile(filepath.Join(dst, "inner", "f.txt"))
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestMove_EmptyPaths(t *testing.T) {
	assert.Error(t, Move("", "x"))
	assert.Error(t, Move("x", ""))
}
