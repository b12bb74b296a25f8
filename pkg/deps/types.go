//go:generate mockgen -destination=./mocks/deps.go . CatalogLookup,EnabledSet

// Package deps classifies an addon's declared requirements against the
// catalog and the enabled set, and resolves reverse dependencies.
package deps

import (
	"github.com/glorpus-work/addonreg/pkg/model"
)

// CatalogLookup is the subset of the catalog used by the resolver.
type CatalogLookup interface {
	LookupAddon(key string) *model.Descriptor
}

// EnabledSet is the subset of the runtime registry used by the resolver.
type EnabledSet interface {
	IsEnabled(key string, typ model.AddonType) bool
	Enabled() []*model.Descriptor
}

// Requirement is one classified entry of a requirement walk.
type Requirement struct {
	// Key preserves the declaring addon's spelling for display.
	Key string
	// Constraint is the declared version constraint.
	Constraint string
	// Status classifies the requirement against catalog and enabled state.
	Status model.RequirementStatus
	// Resolved is the catalogued descriptor, nil when Status is missing.
	Resolved *model.Descriptor
}

// Resolver walks requirement graphs. The zero value is not usable; both
// collaborators must be set.
type Resolver struct {
	Catalog CatalogLookup
	Enabled EnabledSet
}

// NewResolver creates a resolver over the given collaborators.
func NewResolver(catalog CatalogLookup, enabled EnabledSet) *Resolver {
	return &Resolver{Catalog: catalog, Enabled: enabled}
}
