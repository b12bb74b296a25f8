// Package theme resolves theme inheritance chains for layered asset lookup.
package theme

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/addonreg/pkg/model"
)

// ParentInfoKey is the descriptor info field naming a theme's parent theme.
const ParentInfoKey = "parentTheme"

// ThemeSource is the subset of the runtime registry used by the resolver.
type ThemeSource interface {
	CurrentTheme() *model.Descriptor
}

// Catalog is the subset of the catalog used by the resolver.
type Catalog interface {
	LookupByType(key string, typ model.AddonType) *model.Descriptor
}

// Resolver walks a started theme's parent pointers to build the ordered list
// of asset search directories. The chain is cached per current theme key;
// descriptors are immutable per session, so switching themes is the only
// event that invalidates it.
type Resolver struct {
	enabled ThemeSource
	catalog Catalog
	baseDir string

	cachedKey string
	cached    []string
}

// NewResolver creates a resolver over the given collaborators. baseDir is the
// directory theme subdirs are relative to.
func NewResolver(enabled ThemeSource, catalog Catalog, baseDir string) *Resolver {
	return &Resolver{enabled: enabled, catalog: catalog, baseDir: baseDir}
}

// Subdirs returns the subdirectories of the current theme and its ancestors,
// most-specific first. The walk stops when a theme declares no parent, the
// parent is not catalogued, or a key repeats (the repeating theme is excluded
// and the walk stops). Returns nil when no theme is active.
func (r *Resolver) Subdirs() []string {
	current := r.enabled.CurrentTheme()
	if current == nil {
		r.cachedKey = ""
		r.cached = nil
		return nil
	}
	if current.Key == r.cachedKey && r.cached != nil {
		return r.cached
	}

	seen := map[string]bool{}
	var subdirs []string
	for theme := current; theme != nil; {
		if seen[theme.Key] {
			break
		}
		seen[theme.Key] = true
		subdirs = append(subdirs, theme.Subdir)

		parent := theme.InfoValue(ParentInfoKey)
		if parent == "" {
			break
		}
		theme = r.catalog.LookupByType(strings.ToLower(parent), model.TypeTheme)
	}

	r.cachedKey = current.Key
	r.cached = subdirs
	return subdirs
}

// LookupAsset resolves subpath against the theme chain (most-specific theme
// first) and then against the supplied addon's own subdirectory. When
// mustExist is set, a candidate only matches if the file is present on disk;
// "" is returned when nothing matches. With mustExist unset the first
// candidate is returned without touching the filesystem.
func (r *Resolver) LookupAsset(subpath string, addon *model.Descriptor, mustExist bool) string {
	var candidates []string
	for _, subdir := range r.Subdirs() {
		candidates = append(candidates, filepath.Join(r.baseDir, filepath.FromSlash(subdir), filepath.FromSlash(subpath)))
	}
	if addon != nil {
		candidates = append(candidates, filepath.Join(r.baseDir, filepath.FromSlash(addon.Subdir), filepath.FromSlash(subpath)))
	}

	for _, candidate := range candidates {
		if !mustExist {
			return candidate
		}
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
