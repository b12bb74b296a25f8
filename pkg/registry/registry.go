package registry

import (
	"sort"
	"strings"

	"github.com/glorpus-work/addonreg/internal/logger"
	"github.com/glorpus-work/addonreg/pkg/model"
)

// Start inserts the addon into the enabled set and registers its declared
// classes. Starting a theme stops the previously active theme first; at most
// one theme is enabled at a time. A nil addon is a logged no-op.
func (r *Registry) Start(d *model.Descriptor) {
	if d == nil {
		logger.Info("start requested for absent addon, ignoring")
		return
	}

	key := d.EnabledKey()
	if _, exists := r.entries[key]; exists {
		logger.Debug("addon already enabled", logger.Fields{"addon": key})
		return
	}

	if d.Type == model.TypeTheme && r.theme != nil {
		r.Stop(r.theme)
	}

	// A set of one element is trivially sorted.
	if len(r.entries) >= 1 {
		r.sorted = false
	}
	r.entries[key] = d
	r.ordered = append(r.ordered, d)

	if d.Type == model.TypeTheme {
		r.theme = d
	}

	for class, file := range d.Classes {
		r.registerClass(class, registration{file: d.Subdir + "/" + file, owner: d})
	}
}

// Stop removes the addon from the enabled set and deregisters its classes,
// promoting the highest-priority shadowed registration for each class it
// owned. A nil addon is a logged no-op.
func (r *Registry) Stop(d *model.Descriptor) {
	if d == nil {
		logger.Info("stop requested for absent addon, ignoring")
		return
	}

	key := d.EnabledKey()
	if _, exists := r.entries[key]; !exists {
		logger.Debug("addon not enabled", logger.Fields{"addon": key})
		return
	}

	delete(r.entries, key)
	for i, enabled := range r.ordered {
		if enabled.EnabledKey() == key {
			r.ordered = append(r.ordered[:i], r.ordered[i+1:]...)
			break
		}
	}

	if d.Type == model.TypeTheme && r.theme != nil && r.theme.Key == d.Key {
		r.theme = nil
	}

	for class := range d.Classes {
		r.deregisterClass(class, key)
	}
}

// StartByKeys bulk-enables addons of the given type. Map values are the
// catalog lookup keys; an empty value means the map key itself. Unresolved
// keys are logged and skipped. Returns the count actually started.
func (r *Registry) StartByKeys(keys map[string]string, typ model.AddonType) int {
	count := 0
	for key, alias := range keys {
		d := r.lookupForBulk(key, alias, typ)
		if d == nil {
			continue
		}
		r.Start(d)
		count++
	}
	return count
}

// StopByKeys bulk-disables addons of the given type, symmetric to
// StartByKeys. Returns the count actually stopped.
func (r *Registry) StopByKeys(keys map[string]string, typ model.AddonType) int {
	count := 0
	for key, alias := range keys {
		d := r.lookupForBulk(key, alias, typ)
		if d == nil {
			continue
		}
		if !r.IsEnabled(d.Key, d.Type) {
			continue
		}
		r.Stop(d)
		count++
	}
	return count
}

func (r *Registry) lookupForBulk(key, alias string, typ model.AddonType) *model.Descriptor {
	lookupKey := alias
	if lookupKey == "" {
		lookupKey = key
	}
	d := r.catalog.LookupByType(lookupKey, typ)
	if d == nil {
		logger.Warn("cannot resolve addon key, skipping", logger.Fields{"key": lookupKey, "type": typ})
	}
	return d
}

// Enabled returns the enabled addons sorted by descending priority. The sort
// is lazy: it runs only when the set grew since the last sort, and a set of
// at most one element is never sorted.
func (r *Registry) Enabled() []*model.Descriptor {
	if !r.sorted && len(r.ordered) > 1 {
		sort.SliceStable(r.ordered, func(i, j int) bool {
			return r.ordered[i].Priority > r.ordered[j].Priority
		})
	}
	r.sorted = true

	out := make([]*model.Descriptor, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// IsEnabled reports whether the addon with the given key and type is enabled.
func (r *Registry) IsEnabled(key string, typ model.AddonType) bool {
	_, ok := r.entries[string(typ)+"/"+strings.ToLower(key)]
	return ok
}

// CurrentTheme returns the active theme, or nil when none is enabled.
func (r *Registry) CurrentTheme() *model.Descriptor {
	return r.theme
}

// TranslationPaths returns the translation file paths of every enabled addon
// for the given locale, in enabled-set priority order.
func (r *Registry) TranslationPaths(locale string) []string {
	var paths []string
	for _, d := range r.Enabled() {
		paths = append(paths, d.TranslationPaths(locale)...)
	}
	return paths
}
