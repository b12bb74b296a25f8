package registry

import (
	"path/filepath"
	"strings"

	"github.com/glorpus-work/addonreg/pkg/errors"
	"github.com/glorpus-work/addonreg/pkg/model"
)

// registerClass makes incoming a candidate owner of class. The
// higher-priority descriptor becomes (or remains) the registered owner; the
// loser is pushed onto the class's shadow stack for later restoration. Equal
// priority favors the incumbent.
func (r *Registry) registerClass(class string, incoming registration) {
	incumbent, exists := r.classes[class]
	if !exists {
		r.classes[class] = incoming
		return
	}

	if incoming.owner.Priority > incumbent.owner.Priority {
		r.classes[class] = incoming
		r.shadows[class] = append(r.shadows[class], incumbent)
	} else {
		r.shadows[class] = append(r.shadows[class], incoming)
	}
}

// deregisterClass removes the stopping addon's stake in class: its shadow
// entry when it lost the registration, or the registration itself, in which
// case the highest-priority shadowed candidate is promoted. Only the promoted
// entry leaves the stack; the rest stay available for the next stop.
func (r *Registry) deregisterClass(class, enabledKey string) {
	reg, ok := r.classes[class]
	if !ok {
		return
	}

	if reg.owner.EnabledKey() != enabledKey {
		stack := r.shadows[class]
		for i, shadowed := range stack {
			if shadowed.owner.EnabledKey() == enabledKey {
				r.shadows[class] = append(stack[:i], stack[i+1:]...)
				break
			}
		}
		if len(r.shadows[class]) == 0 {
			delete(r.shadows, class)
		}
		return
	}

	delete(r.classes, class)

	stack := r.shadows[class]
	if len(stack) == 0 {
		delete(r.shadows, class)
		return
	}
	best := 0
	for i := 1; i < len(stack); i++ {
		if stack[i].owner.Priority > stack[best].owner.Priority {
			best = i
		}
	}
	r.classes[class] = stack[best]
	r.shadows[class] = append(stack[:best], stack[best+1:]...)
	if len(r.shadows[class]) == 0 {
		delete(r.shadows, class)
	}
}

// LookupByClassname returns the enabled addon currently owning the class.
// With searchAll set it additionally linear-scans every catalogued
// addon-typed descriptor's declared class map; that path is expensive and
// intended for diagnostics only.
func (r *Registry) LookupByClassname(class string, searchAll bool) *model.Descriptor {
	class = strings.ToLower(class)
	if reg, ok := r.classes[class]; ok {
		return reg.owner
	}
	if !searchAll {
		return nil
	}
	for _, d := range r.catalog.LookupAllByType(model.TypeAddon) {
		if d.ClassFile(class) != "" {
			return d
		}
	}
	return nil
}

// Autoload runs the file providing the given class. Each file is run at most
// once per session, even when the run failed; subsequent calls are no-ops.
func (r *Registry) Autoload(class string) error {
	lower := strings.ToLower(class)
	reg, ok := r.classes[lower]
	if !ok {
		return errors.ErrClassNotRegisteredWithName(class)
	}

	if r.loaded[reg.file] {
		return nil
	}
	r.loaded[reg.file] = true

	vars := map[string]interface{}{
		"class":        class,
		"addonKey":     reg.owner.Key,
		"addonVersion": reg.owner.Version,
	}
	if err := r.runner.RunFile(filepath.Join(r.baseDir, filepath.FromSlash(reg.file)), vars); err != nil {
		return errors.Wrapf(err, "failed to autoload class %s", class)
	}
	return nil
}

// Bootstrap runs the addon's "bootstrap" special, if declared. Like class
// files, each bootstrap file is run at most once per session.
func (r *Registry) Bootstrap(d *model.Descriptor) error {
	file := d.Special(model.SpecialBootstrap)
	if file == "" {
		return nil
	}
	rel := d.Subdir + "/" + file
	if r.loaded[rel] {
		return nil
	}
	r.loaded[rel] = true

	vars := map[string]interface{}{
		"addonKey":     d.Key,
		"addonVersion": d.Version,
	}
	if err := r.runner.RunFile(filepath.Join(r.baseDir, filepath.FromSlash(rel)), vars); err != nil {
		return errors.Wrapf(err, "failed to bootstrap addon %s", d.Key)
	}
	return nil
}
