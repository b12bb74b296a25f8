// Package catalog discovers addons on disk and maintains their metadata
// cache. Addons (plugins and applications) are numerous and queried as a
// whole set during startup, so they share one bulk cache file; themes and
// locales are looked up individually far more often than enumerated, so they
// get one file per item plus a small key->subdir index.
package catalog

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/addonreg/internal/logger"
	"github.com/glorpus-work/addonreg/pkg/errors"
	"github.com/glorpus-work/addonreg/pkg/fsutil"
	"github.com/glorpus-work/addonreg/pkg/model"
)

// Manager owns the scan roots per addon type and materializes descriptors on
// demand, from the disk cache when possible and by scanning otherwise.
// A Manager is not safe for concurrent use; each logical session gets its own
// instance. The on-disk cache itself is safe under concurrent writers.
type Manager struct {
	baseDir string
	roots   map[model.AddonType][]string
	store   *store
	load    DescriptorLoader
	addons  map[string]*model.Descriptor
	indexes map[model.AddonType]map[string]string
	items   map[model.AddonType]map[string]*model.Descriptor
}

// NewManager creates a catalog over baseDir. roots maps each addon type to
// its scan roots, relative to baseDir. cacheDir may be empty, in which case
// every lookup scans. A nil loader falls back to LoadDescriptor.
func NewManager(baseDir, cacheDir string, roots map[model.AddonType][]string, loader DescriptorLoader) *Manager {
	if loader == nil {
		loader = LoadDescriptor
	}
	return &Manager{
		baseDir: baseDir,
		roots:   roots,
		store:   &store{cacheDir: cacheDir},
		load:    loader,
		indexes: make(map[model.AddonType]map[string]string),
		items:   make(map[model.AddonType]map[string]*model.Descriptor),
	}
}

// BaseDir returns the directory all subdirs are relative to.
func (m *Manager) BaseDir() string {
	return m.baseDir
}

// Roots returns the scan roots configured for the given type.
func (m *Manager) Roots(typ model.AddonType) []string {
	return m.roots[typ]
}

// Scan lists the immediate subdirectories under every scan root for typ and
// constructs a descriptor for each. A directory that fails to load is logged
// and skipped, never fatal. When persist is set the result is written to the
// cache store; a failed write is logged but the in-memory result is still
// returned.
func (m *Manager) Scan(typ model.AddonType, persist bool) (map[string]*model.Descriptor, error) {
	if persist && m.store.cacheDir == "" {
		return nil, errors.ErrNoCacheDir
	}

	found := make(map[string]*model.Descriptor)
	for _, root := range m.roots[typ] {
		names, err := fsutil.ListSubdirs(filepath.Join(m.baseDir, root))
		if err != nil {
			logger.Warn("cannot list scan root", logger.Fields{"root": root, "error": err})
			continue
		}
		for _, name := range names {
			subdir := path.Join(filepath.ToSlash(root), name)
			d, err := m.load(m.baseDir, subdir, typ)
			if err != nil {
				logger.Warn("skipping invalid addon directory", logger.Fields{"dir": subdir, "error": err})
				continue
			}
			if _, dup := found[d.Key]; dup {
				logger.Debug("duplicate addon key, keeping first", logger.Fields{"key": d.Key, "dir": subdir})
				continue
			}
			found[d.Key] = d
		}
	}

	if typ.MultiCached() {
		m.addons = found
	} else {
		index := make(map[string]string, len(found))
		for key, d := range found {
			index[key] = d.Subdir
		}
		m.indexes[typ] = index
		m.items[typ] = copyDescriptors(found)
	}

	if persist {
		m.persistScan(typ, found)
	}

	return found, nil
}

func (m *Manager) persistScan(typ model.AddonType, found map[string]*model.Descriptor) {
	if typ.MultiCached() {
		if err := m.store.writeBulk(typ, found); err != nil {
			logger.Warn("cache write failed", logger.Fields{"type": typ, "error": err})
		}
		return
	}
	for _, d := range found {
		if err := m.store.writeItem(d); err != nil {
			logger.Warn("cache write failed", logger.Fields{"key": d.Key, "error": err})
		}
	}
	if err := m.store.writeIndex(typ, m.indexes[typ]); err != nil {
		logger.Warn("index write failed", logger.Fields{"type": typ, "error": err})
	}
}

// LookupAddon resolves an addon-typed descriptor by key, case-insensitively.
// The bulk cache is materialized on first use: loaded from disk when present,
// rebuilt by a scan otherwise. Returns nil when the key is unknown.
func (m *Manager) LookupAddon(key string) *model.Descriptor {
	m.ensureAddons()
	return m.addons[strings.ToLower(key)]
}

// LookupByType resolves a descriptor by key and type, dispatching to the bulk
// or per-item cache path. Returns nil when the key is unknown.
func (m *Manager) LookupByType(key string, typ model.AddonType) *model.Descriptor {
	if typ.MultiCached() {
		return m.LookupAddon(key)
	}

	m.ensureIndex(typ)
	key = strings.ToLower(key)
	subdir, ok := m.indexes[typ][key]
	if !ok {
		return nil
	}
	if d, ok := m.items[typ][key]; ok {
		return d
	}

	d, err := m.store.readItem(typ, key)
	if err != nil {
		d = m.reloadItem(typ, key, subdir)
		if d == nil {
			return nil
		}
	}
	m.items[typ][key] = d
	return d
}

// LookupAllByType returns every descriptor of the given type. For bulk-cached
// types this is the materialized cache; for per-item types the on-disk index
// is walked and each entry loaded individually. An entry whose load fails is
// dropped from the index and the index file rewritten without it.
func (m *Manager) LookupAllByType(typ model.AddonType) map[string]*model.Descriptor {
	if typ.MultiCached() {
		m.ensureAddons()
		return m.addons
	}

	m.ensureIndex(typ)
	result := make(map[string]*model.Descriptor, len(m.indexes[typ]))
	var dropped []string
	for key, subdir := range m.indexes[typ] {
		d, ok := m.items[typ][key]
		if !ok {
			var err error
			d, err = m.store.readItem(typ, key)
			if err != nil {
				d = m.reloadItem(typ, key, subdir)
			}
			if d == nil {
				dropped = append(dropped, key)
				continue
			}
			m.items[typ][key] = d
		}
		result[key] = d
	}

	// Self-healing index: forget entries that no longer load.
	if len(dropped) > 0 {
		for _, key := range dropped {
			delete(m.indexes[typ], key)
		}
		m.rewriteIndex(typ)
	}

	return result
}

// ClearCache deletes every cache file and resets the in-memory state so
// subsequent lookups force a rescan.
func (m *Manager) ClearCache() error {
	m.addons = nil
	m.indexes = make(map[model.AddonType]map[string]string)
	m.items = make(map[model.AddonType]map[string]*model.Descriptor)
	if m.store.cacheDir == "" {
		return nil
	}
	return m.store.clear()
}

// Invalidate drops the in-memory state without touching the disk cache. Used
// by the watcher when a scan root changes.
func (m *Manager) Invalidate() {
	m.addons = nil
	m.indexes = make(map[model.AddonType]map[string]string)
	m.items = make(map[model.AddonType]map[string]*model.Descriptor)
}

func (m *Manager) ensureAddons() {
	if m.addons != nil {
		return
	}
	if m.store.cacheDir != "" {
		if addons, err := m.store.readBulk(model.TypeAddon); err == nil {
			m.addons = addons
			return
		}
	}
	if _, err := m.Scan(model.TypeAddon, m.store.cacheDir != ""); err != nil {
		logger.Warn("addon scan failed", logger.Fields{"error": err})
		m.addons = make(map[string]*model.Descriptor)
	}
}

func (m *Manager) ensureIndex(typ model.AddonType) {
	if m.indexes[typ] != nil {
		return
	}
	if m.items[typ] == nil {
		m.items[typ] = make(map[string]*model.Descriptor)
	}
	if m.store.cacheDir != "" {
		if index, err := m.store.readIndex(typ); err == nil {
			m.indexes[typ] = index
			return
		}
	}
	if _, err := m.Scan(typ, m.store.cacheDir != ""); err != nil {
		logger.Warn("scan failed", logger.Fields{"type": typ, "error": err})
		m.indexes[typ] = make(map[string]string)
	}
}

// reloadItem rebuilds a single descriptor from its directory after its cache
// file turned out unreadable. On success the item cache is refreshed; on
// failure the stale index entry is dropped and the index rewritten.
func (m *Manager) reloadItem(typ model.AddonType, key, subdir string) *model.Descriptor {
	d, err := m.load(m.baseDir, subdir, typ)
	if err != nil {
		logger.Warn("dropping stale index entry", logger.Fields{"key": key, "dir": subdir, "error": err})
		delete(m.indexes[typ], key)
		m.rewriteIndex(typ)
		return nil
	}
	if m.store.cacheDir != "" {
		if err := m.store.writeItem(d); err != nil {
			logger.Warn("cache write failed", logger.Fields{"key": d.Key, "error": err})
		}
	}
	return d
}

func (m *Manager) rewriteIndex(typ model.AddonType) {
	if m.store.cacheDir == "" {
		return
	}
	if err := m.store.writeIndex(typ, m.indexes[typ]); err != nil {
		logger.Warn("index rewrite failed", logger.Fields{"type": typ, "error": err})
	}
}

func copyDescriptors(in map[string]*model.Descriptor) map[string]*model.Descriptor {
	out := make(map[string]*model.Descriptor, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
