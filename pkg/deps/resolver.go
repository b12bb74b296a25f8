package deps

import (
	"fmt"
	"strings"

	"github.com/glorpus-work/addonreg/pkg/errors"
	"github.com/glorpus-work/addonreg/pkg/model"
)

// anyVersion matches every parseable version. Declared requirements with no
// constraint are normalized to it.
const anyVersion = ">= 0.0.0"

// Requirements expands addon's declared requirements transitively and
// classifies each reached key. An enabled dependency stops recursion on its
// branch (its own dependencies are assumed satisfied); disabled and
// version-mismatched dependencies are recursed into, since the caller needs
// the full graph if the addon were enabled. A key is never visited twice,
// which also terminates requirement cycles; when two branches would classify
// the same transitive key differently, the first-visited status wins.
// A non-zero mask restricts the result to matching statuses.
func (r *Resolver) Requirements(addon *model.Descriptor, mask model.RequirementStatus) map[string]Requirement {
	type item struct {
		key        string
		constraint string
	}

	result := make(map[string]Requirement)
	worklist := make([]item, 0, len(addon.Requirements))
	for key, constraint := range addon.Requirements {
		worklist = append(worklist, item{key: key, constraint: constraint})
	}

	for len(worklist) > 0 {
		next := worklist[0]
		worklist = worklist[1:]

		lower := strings.ToLower(next.key)
		if _, visited := result[lower]; visited {
			continue
		}

		constraint := next.constraint
		if constraint == "" {
			constraint = anyVersion
		}

		req := Requirement{Key: next.key, Constraint: next.constraint}
		req.Resolved = r.Catalog.LookupAddon(lower)
		switch {
		case req.Resolved == nil:
			req.Status = model.StatusMissing
		case r.Enabled.IsEnabled(lower, model.TypeAddon):
			req.Status = model.StatusEnabled
		default:
			if req.Resolved.MatchVersion(constraint) {
				req.Status = model.StatusDisabled
			} else {
				req.Status = model.StatusVersionMismatch
			}
			for key, c := range req.Resolved.Requirements {
				worklist = append(worklist, item{key: key, constraint: c})
			}
		}
		result[lower] = req
	}

	if mask != 0 && mask != model.StatusAny {
		for key, req := range result {
			if !req.Status.Matches(mask) {
				delete(result, key)
			}
		}
	}

	return result
}

// CheckRequirements returns nil iff none of addon's transitive requirements
// are missing or version-mismatched. Otherwise it returns an aggregate error
// naming every unmet requirement.
func (r *Resolver) CheckRequirements(addon *model.Descriptor) error {
	problems := r.Requirements(addon, model.StatusProblems)
	if len(problems) == 0 {
		return nil
	}

	details := make(map[string]string, len(problems))
	for _, req := range problems {
		if req.Status == model.StatusMissing {
			details[req.Key] = "missing"
			continue
		}
		details[req.Key] = fmt.Sprintf("requires %s, found %s", req.Constraint, req.Resolved.Version)
	}
	return errors.ErrRequirementUnmetWithDetails(addon.Key, details)
}

// Dependants returns every currently enabled addon that lists addon's key
// among its own requirements, matched case-insensitively.
func (r *Resolver) Dependants(addon *model.Descriptor) map[string]*model.Descriptor {
	dependants := make(map[string]*model.Descriptor)
	for _, enabled := range r.Enabled.Enabled() {
		if enabled.Key == addon.Key && enabled.Type == addon.Type {
			continue
		}
		if enabled.Requires(addon.Key) {
			dependants[enabled.Key] = enabled
		}
	}
	return dependants
}

// CheckDependants returns nil iff no enabled addon depends on addon. Callers
// run this before disabling an addon to avoid breaking active dependants.
func (r *Resolver) CheckDependants(addon *model.Descriptor) error {
	dependants := r.Dependants(addon)
	if len(dependants) == 0 {
		return nil
	}
	names := make([]string, 0, len(dependants))
	for key := range dependants {
		names = append(names, key)
	}
	return errors.ErrDependantsBlockingWithNames(addon.Key, names)
}
