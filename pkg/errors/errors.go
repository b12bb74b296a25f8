// Package errors defines the sentinel errors shared across addonreg and small
// helpers for wrapping them with context.
package errors

import (
	"fmt"
	"sort"
	"strings"
)

// Common error types used throughout the application.
var (
	// Catalog errors.

	// ErrAddonInvalid is returned when a directory cannot be loaded as an addon.
	ErrAddonInvalid = fmt.Errorf("invalid addon")

	// ErrAddonNotFound is returned when an addon key cannot be resolved.
	ErrAddonNotFound = fmt.Errorf("addon not found")

	// ErrNoCacheDir is returned when a cache operation is requested but no
	// cache directory is configured.
	ErrNoCacheDir = fmt.Errorf("no cache directory configured")

	// ErrCacheWrite is returned when a cache file cannot be written.
	ErrCacheWrite = fmt.Errorf("failed to write cache file")

	// Dependency errors.

	// ErrRequirementUnmet is returned when an addon has missing or
	// version-mismatched requirements.
	ErrRequirementUnmet = fmt.Errorf("unmet requirements")

	// ErrDependantsBlocking is returned when enabled addons depend on an addon
	// that is about to be disabled.
	ErrDependantsBlocking = fmt.Errorf("enabled addons depend on this addon")

	// Registry errors.

	// ErrClassNotRegistered is returned when autoloading a class that no
	// enabled addon provides.
	ErrClassNotRegistered = fmt.Errorf("class not registered")

	// Config errors.

	// ErrConfigParse is returned when the config file cannot be parsed.
	ErrConfigParse = fmt.Errorf("failed to parse config")

	// ErrConfigValidation is returned when configuration values fail validation.
	ErrConfigValidation = fmt.Errorf("invalid configuration")

	// Installer errors.

	// ErrArchiveInvalid is returned when an archive does not contain a valid addon.
	ErrArchiveInvalid = fmt.Errorf("archive does not contain a valid addon")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// ErrAddonNotFoundWithKey creates an error for an unresolvable addon key.
func ErrAddonNotFoundWithKey(key string) error {
	return fmt.Errorf("%w: %s", ErrAddonNotFound, key)
}

// ErrRequirementUnmetWithDetails creates an aggregate error naming every unmet
// requirement of an addon. The details map requirement key to a short reason
// ("missing" or "requires <constraint>, found <version>").
func ErrRequirementUnmetWithDetails(addonKey string, details map[string]string) error {
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s (%s)", k, details[k]))
	}
	return fmt.Errorf("%w for %s: %s", ErrRequirementUnmet, addonKey, strings.Join(parts, ", "))
}

// ErrDependantsBlockingWithNames creates an aggregate error listing the
// enabled addons that depend on the given addon.
func ErrDependantsBlockingWithNames(addonKey string, dependants []string) error {
	sorted := make([]string, len(dependants))
	copy(sorted, dependants)
	sort.Strings(sorted)
	return fmt.Errorf("%w: %s is required by %s", ErrDependantsBlocking, addonKey, strings.Join(sorted, ", "))
}

// ErrClassNotRegisteredWithName creates an error for an unregistered class name.
func ErrClassNotRegisteredWithName(class string) error {
	return fmt.Errorf("%w: %s", ErrClassNotRegistered, class)
}
