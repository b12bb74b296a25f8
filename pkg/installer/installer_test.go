package installer

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/glorpus-work/addonreg/pkg/errors"
	"github.com/glorpus-work/addonreg/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, dir string, files map[string]string) string {
	t.Helper()
	path := filepath.Join(dir, "addon.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()

	w := zip.NewWriter(f)
	for name, content := range files {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return path
}

func TestInstallFromArchive(t *testing.T) {
	base := t.TempDir()
	archive := writeZip(t, t.TempDir(), map[string]string{
		"FooBar/addon.yaml":     "name: Foo Bar\nversion: 1.2.0\npriority: 3\n",
		"FooBar/src/main.tengo": "fmt := import(\"fmt\")\n",
	})

	inst := New(base, nil)
	d, err := inst.InstallFromArchive(context.Background(), archive, "addons", model.TypeAddon)
	require.NoError(t, err)

	assert.Equal(t, "foobar", d.Key)
	assert.Equal(t, "1.2.0", d.Version)
	assert.Equal(t, "addons/FooBar", d.Subdir)
	assert.FileExists(t, filepath.Join(base, "addons", "FooBar", "addon.yaml"))
	assert.FileExists(t, filepath.Join(base, "addons", "FooBar", "src", "main.tengo"))

	// The staging directory must not survive the install.
	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "addons", entries[0].Name())
}

func TestInstallFromArchive_ReplacesExisting(t *testing.T) {
	base := t.TempDir()
	old := filepath.Join(base, "addons", "foo")
	require.NoError(t, os.MkdirAll(old, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(old, "addon.yaml"), []byte("version: 0.1.0\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(old, "stale.txt"), []byte("x"), 0o644))

	archive := writeZip(t, t.TempDir(), map[string]string{
		"foo/addon.yaml": "version: 2.0.0\n",
	})

	inst := New(base, nil)
	d, err := inst.InstallFromArchive(context.Background(), archive, "addons", model.TypeAddon)
	require.NoError(t, err)

	assert.Equal(t, "2.0.0", d.Version)
	assert.NoFileExists(t, filepath.Join(old, "stale.txt"))
}

func TestInstallFromArchive_RejectsMultipleTopLevelDirs(t *testing.T) {
	base := t.TempDir()
	archive := writeZip(t, t.TempDir(), map[string]string{
		"one/addon.yaml": "version: 1.0.0\n",
		"two/addon.yaml": "version: 1.0.0\n",
	})

	inst := New(base, nil)
	_, err := inst.InstallFromArchive(context.Background(), archive, "addons", model.TypeAddon)
	assert.ErrorIs(t, err, errors.ErrArchiveInvalid)
}

func TestInstallFromArchive_RejectsMissingManifest(t *testing.T) {
	base := t.TempDir()
	archive := writeZip(t, t.TempDir(), map[string]string{
		"foo/readme.txt": "no manifest here",
	})

	inst := New(base, nil)
	_, err := inst.InstallFromArchive(context.Background(), archive, "addons", model.TypeAddon)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrArchiveInvalid)
	assert.NoDirExists(t, filepath.Join(base, "addons", "foo"))
}

func TestInstallFromArchive_BadArchiveFile(t *testing.T) {
	base := t.TempDir()
	bogus := filepath.Join(t.TempDir(), "bogus.zip")
	require.NoError(t, os.WriteFile(bogus, []byte("not an archive"), 0o644))

	inst := New(base, nil)
	_, err := inst.InstallFromArchive(context.Background(), bogus, "addons", model.TypeAddon)
	assert.Error(t, err)
}
