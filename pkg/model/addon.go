// Package model provides the data structures for representing addons, their
// declared requirements and related metadata in the addonreg registry.
package model

import (
	"strings"

	"github.com/hashicorp/go-version"
)

// AddonType determines an addon's caching strategy and scan roots.
type AddonType string

const (
	// TypeAddon covers plugins and applications, cached in one bulk file.
	TypeAddon AddonType = "addon"
	// TypeTheme covers themes, cached per item with a separate index.
	TypeTheme AddonType = "theme"
	// TypeLocale covers locale packs, cached per item with a separate index.
	TypeLocale AddonType = "locale"
)

// AllTypes lists every addon type.
var AllTypes = []AddonType{TypeAddon, TypeTheme, TypeLocale}

// MultiCached reports whether this type stores all descriptors in one bulk
// cache file. Single-cached types use one file per item plus an index.
func (t AddonType) MultiCached() bool {
	return t == TypeAddon
}

// LocalePlaceholder is the token replaced by the locale code when expanding
// translation path templates.
const LocalePlaceholder = "{locale}"

// Special file pointer names a descriptor may carry.
const (
	SpecialConfig    = "config"
	SpecialBootstrap = "bootstrap"
)

// Descriptor is the immutable metadata of one addon. Descriptors are
// constructed by the catalog (from a manifest or a cache file) and never
// mutated afterwards; rescanning produces a new descriptor.
type Descriptor struct {
	// Key is the case-insensitive unique identifier, equal to the lower-cased
	// basename of the addon's source directory.
	Key string `json:"key"`
	// DisplayName preserves the manifest's name for output.
	DisplayName string    `json:"display_name,omitempty"`
	Type        AddonType `json:"type"`
	Version     string    `json:"version"`
	// Priority breaks class ownership ties; higher wins.
	Priority int `json:"priority"`
	// Subdir is the addon's directory relative to the configured base.
	Subdir string `json:"subdir"`
	// Classes maps lower-cased class name to the providing file, relative to
	// Subdir.
	Classes map[string]string `json:"classes,omitempty"`
	// Requirements maps a required addon key to a version constraint string.
	// Key case is preserved for display; matching is case-insensitive.
	Requirements map[string]string `json:"requirements,omitempty"`
	// Specials points to optional named files such as "config" and "bootstrap".
	Specials map[string]string `json:"specials,omitempty"`
	// Info carries free-form metadata, e.g. "parentTheme" for themes.
	Info map[string]string `json:"info,omitempty"`
	// Translations are ordered path templates containing "{locale}".
	Translations []string `json:"translations,omitempty"`
}

// EnabledKey returns the "type/key" identifier used by the enabled set.
func (d *Descriptor) EnabledKey() string {
	return string(d.Type) + "/" + d.Key
}

// InfoValue returns the named metadata value, or "" when absent.
func (d *Descriptor) InfoValue(name string) string {
	return d.Info[name]
}

// Special returns the named special file pointer, or "" when absent.
func (d *Descriptor) Special(name string) string {
	return d.Specials[name]
}

// GetVersion returns the parsed version of this addon, or nil if the version
// string does not parse.
func (d *Descriptor) GetVersion() *version.Version {
	v, err := version.NewVersion(d.Version)
	if err != nil {
		return nil
	}
	return v
}

// MatchVersion checks whether this addon's version satisfies the given
// constraint string.
func (d *Descriptor) MatchVersion(constraint string) bool {
	c, err := version.NewConstraint(constraint)
	if err != nil {
		return false
	}
	v := d.GetVersion()
	if v == nil {
		return false
	}
	return c.Check(v)
}

// Requires reports whether this addon declares a requirement on the given
// key, matched case-insensitively.
func (d *Descriptor) Requires(key string) bool {
	key = strings.ToLower(key)
	for declared := range d.Requirements {
		if strings.ToLower(declared) == key {
			return true
		}
	}
	return false
}

// ClassFile returns the file providing the given class, relative to Subdir,
// or "" when the addon does not declare the class.
func (d *Descriptor) ClassFile(class string) string {
	return d.Classes[strings.ToLower(class)]
}

// TranslationPaths expands the addon's translation templates for the given
// locale, in declaration order. Paths are relative to the configured base.
func (d *Descriptor) TranslationPaths(locale string) []string {
	if len(d.Translations) == 0 {
		return nil
	}
	paths := make([]string, 0, len(d.Translations))
	for _, tpl := range d.Translations {
		rel := strings.ReplaceAll(tpl, LocalePlaceholder, locale)
		paths = append(paths, d.Subdir+"/"+rel)
	}
	return paths
}
