package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/glorpus-work/addonreg/pkg/errors"
	"github.com/glorpus-work/addonreg/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRoots = map[model.AddonType][]string{
	model.TypeAddon:  {"addons"},
	model.TypeTheme:  {"themes"},
	model.TypeLocale: {"locales"},
}

func writeAddonDir(t *testing.T, base, root, name, version string, priority int) {
	t.Helper()
	writeManifest(t, base, root+"/"+name, fmt.Sprintf("name: %s\nversion: %s\npriority: %d\n", name, version, priority))
}

func TestManager_Scan_SkipsInvalidDirs(t *testing.T) {
	base := t.TempDir()
	writeAddonDir(t, base, "addons", "good", "1.0.0", 0)
	require.NoError(t, os.MkdirAll(filepath.Join(base, "addons", "broken"), 0o755))

	m := NewManager(base, "", testRoots, nil)
	found, err := m.Scan(model.TypeAddon, false)
	require.NoError(t, err)

	require.Len(t, found, 1)
	assert.Equal(t, "1.0.0", found["good"].Version)
}

func TestManager_Scan_PersistWithoutCacheDir(t *testing.T) {
	m := NewManager(t.TempDir(), "", testRoots, nil)
	_, err := m.Scan(model.TypeAddon, true)
	assert.ErrorIs(t, err, errors.ErrNoCacheDir)
}

func TestManager_LookupAddon_CaseInsensitive(t *testing.T) {
	base := t.TempDir()
	writeAddonDir(t, base, "addons", "FooBar", "1.0.0", 5)

	m := NewManager(base, "", testRoots, nil)
	d := m.LookupAddon("FOOBAR")
	require.NotNil(t, d)
	assert.Equal(t, "foobar", d.Key)
	assert.Nil(t, m.LookupAddon("nope"))
}

func TestManager_RoundTrip_ColdLookup(t *testing.T) {
	base := t.TempDir()
	cache := t.TempDir()
	writeAddonDir(t, base, "addons", "alpha", "1.2.0", 3)
	writeAddonDir(t, base, "addons", "beta", "0.9.1", 7)

	m := NewManager(base, cache, testRoots, nil)
	fresh, err := m.Scan(model.TypeAddon, true)
	require.NoError(t, err)
	require.Len(t, fresh, 2)

	// Simulate a new process: empty in-memory cache, loader that refuses to
	// scan so only the disk cache can answer.
	failing := func(_, _ string, _ model.AddonType) (*model.Descriptor, error) {
		return nil, errors.ErrAddonInvalid
	}
	cold := NewManager(base, cache, testRoots, failing)
	for key, want := range fresh {
		got := cold.LookupAddon(key)
		require.NotNil(t, got, "missing %s after cold lookup", key)
		assert.Equal(t, want.Key, got.Key)
		assert.Equal(t, want.Version, got.Version)
		assert.Equal(t, want.Priority, got.Priority)
	}
}

func TestManager_SingleCache_RoundTrip(t *testing.T) {
	base := t.TempDir()
	cache := t.TempDir()
	writeManifest(t, base, "themes/dark", "version: 2.0.0\npriority: 1\ninfo:\n  parentTheme: base\n")
	writeManifest(t, base, "themes/base", "version: 1.0.0\n")

	m := NewManager(base, cache, testRoots, nil)
	_, err := m.Scan(model.TypeTheme, true)
	require.NoError(t, err)

	cold := NewManager(base, cache, testRoots, nil)
	d := cold.LookupByType("Dark", model.TypeTheme)
	require.NotNil(t, d)
	assert.Equal(t, "dark", d.Key)
	assert.Equal(t, "base", d.InfoValue("parentTheme"))

	all := cold.LookupAllByType(model.TypeTheme)
	assert.Len(t, all, 2)
}

func TestManager_LookupByType_RebuildsUnreadableItem(t *testing.T) {
	base := t.TempDir()
	cache := t.TempDir()
	writeManifest(t, base, "themes/dark", "version: 2.0.0\n")

	m := NewManager(base, cache, testRoots, nil)
	_, err := m.Scan(model.TypeTheme, true)
	require.NoError(t, err)

	// Corrupt the item cache; the directory itself stays valid.
	itemPath := filepath.Join(cache, "theme", "dark.json")
	require.NoError(t, os.WriteFile(itemPath, []byte("corrupt"), 0o644))

	cold := NewManager(base, cache, testRoots, nil)
	d := cold.LookupByType("dark", model.TypeTheme)
	require.NotNil(t, d)
	assert.Equal(t, "2.0.0", d.Version)
}

func TestManager_LookupAllByType_SelfHealingIndex(t *testing.T) {
	base := t.TempDir()
	cache := t.TempDir()
	writeManifest(t, base, "locales/de_de", "version: 1.0.0\n")
	writeManifest(t, base, "locales/fr_fr", "version: 1.0.0\n")

	m := NewManager(base, cache, testRoots, nil)
	_, err := m.Scan(model.TypeLocale, true)
	require.NoError(t, err)

	// Break one entry completely: corrupt cache file and remove the source
	// directory so it cannot be rebuilt.
	require.NoError(t, os.WriteFile(filepath.Join(cache, "locale", "fr_fr.json"), []byte("corrupt"), 0o644))
	require.NoError(t, os.RemoveAll(filepath.Join(base, "locales", "fr_fr")))

	cold := NewManager(base, cache, testRoots, nil)
	all := cold.LookupAllByType(model.TypeLocale)
	require.Len(t, all, 1)
	assert.Contains(t, all, "de_de")

	// The on-disk index must have been rewritten without the bad entry.
	data, err := os.ReadFile(filepath.Join(cache, "locale-index.json"))
	require.NoError(t, err)
	var idx struct {
		Entries map[string]string `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(data, &idx))
	assert.NotContains(t, idx.Entries, "fr_fr")
	assert.Contains(t, idx.Entries, "de_de")
}

func TestManager_ClearCache(t *testing.T) {
	base := t.TempDir()
	cache := t.TempDir()
	writeAddonDir(t, base, "addons", "alpha", "1.0.0", 0)

	m := NewManager(base, cache, testRoots, nil)
	_, err := m.Scan(model.TypeAddon, true)
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(cache, "addon.json"))

	require.NoError(t, m.ClearCache())
	assert.NoFileExists(t, filepath.Join(cache, "addon.json"))

	// Lookups rescan and repopulate the cache.
	d := m.LookupAddon("alpha")
	require.NotNil(t, d)
	assert.FileExists(t, filepath.Join(cache, "addon.json"))
}

func TestManager_Invalidate_PicksUpNewAddons(t *testing.T) {
	base := t.TempDir()
	writeAddonDir(t, base, "addons", "alpha", "1.0.0", 0)

	m := NewManager(base, "", testRoots, nil)
	require.NotNil(t, m.LookupAddon("alpha"))
	assert.Nil(t, m.LookupAddon("beta"))

	writeAddonDir(t, base, "addons", "beta", "1.0.0", 0)
	assert.Nil(t, m.LookupAddon("beta"), "stale view before invalidation")

	m.Invalidate()
	assert.NotNil(t, m.LookupAddon("beta"))
}
