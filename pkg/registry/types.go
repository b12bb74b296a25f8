// Package registry holds the live runtime state: which addons are enabled, in
// what priority order, and which addon currently owns each class name.
package registry

import (
	"github.com/glorpus-work/addonreg/pkg/model"
)

// ClassCatalog is the subset of the catalog used by the registry.
type ClassCatalog interface {
	LookupByType(key string, typ model.AddonType) *model.Descriptor
	LookupAllByType(typ model.AddonType) map[string]*model.Descriptor
}

// ScriptRunner executes a class or bootstrap file.
type ScriptRunner interface {
	RunFile(path string, vars map[string]interface{}) error
}

// registration is one class ownership record: the providing file (relative to
// the catalog base) and the owning descriptor.
type registration struct {
	file  string
	owner *model.Descriptor
}

// Registry is the enabled set plus the class autoload table. It is owned by a
// single logical session and is not safe for concurrent use.
type Registry struct {
	catalog ClassCatalog
	runner  ScriptRunner
	baseDir string

	entries map[string]*model.Descriptor // "type/key" -> descriptor
	ordered []*model.Descriptor
	sorted  bool

	classes map[string]registration
	// shadows keeps losing registrations per class so the next-highest
	// priority owner can be restored when the current owner stops.
	shadows map[string][]registration

	theme *model.Descriptor

	// loaded guards autoloading: a file is run at most once per session,
	// even if the run failed.
	loaded map[string]bool
}

// New creates an empty registry. baseDir is the directory class file paths
// are relative to; runner may be nil when autoloading is not used.
func New(catalog ClassCatalog, runner ScriptRunner, baseDir string) *Registry {
	return &Registry{
		catalog: catalog,
		runner:  runner,
		baseDir: baseDir,
		entries: make(map[string]*model.Descriptor),
		classes: make(map[string]registration),
		shadows: make(map[string][]registration),
		loaded:  make(map[string]bool),
		sorted:  true,
	}
}
