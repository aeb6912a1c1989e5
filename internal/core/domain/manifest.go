// Package domain contains the core domain models for requirement manifests.
package domain

import (
	"go.trai.ch/zerr"
)

// Manifest is an ordered list of requirement declarations, possibly merged
// from -r includes. Declaration order is preserved.
type Manifest struct {
	// Path is the top-level manifest file the declarations were loaded from.
	Path InternedString

	// Sources lists every file that contributed declarations, the top-level
	// manifest first and -r includes in visit order.
	Sources []InternedString

	// Requirements holds the declarations in authored order.
	Requirements []Requirement
}

// Add appends a declaration to the manifest.
func (m *Manifest) Add(r *Requirement) {
	m.Requirements = append(m.Requirements, *r)
}

// Get returns the first declaration with the given canonical name.
func (m *Manifest) Get(canonical string) (*Requirement, bool) {
	key := NewInternedString(canonical)
	for i := range m.Requirements {
		if m.Requirements[i].Canonical == key {
			return &m.Requirements[i], true
		}
	}
	return nil, false
}

// Validate enforces the manifest invariant that each canonical name appears
// at most once. It returns one error per duplicated name, carrying both
// offending locations, so callers can report all violations at once.
func (m *Manifest) Validate() []error {
	var errs []error
	seen := make(map[InternedString]*Requirement, len(m.Requirements))

	for i := range m.Requirements {
		r := &m.Requirements[i]
		first, dup := seen[r.Canonical]
		if !dup {
			seen[r.Canonical] = r
			continue
		}
		err := zerr.With(zerr.Wrap(ErrDuplicateRequirement, "name declared more than once"), "name", r.Canonical.String())
		err = zerr.With(err, "first", first.File.String())
		err = zerr.With(err, "first_line", first.Line)
		err = zerr.With(err, "second", r.File.String())
		err = zerr.With(err, "second_line", r.Line)
		errs = append(errs, err)
	}

	return errs
}

// Applicable returns the declarations that apply in the given environment,
// in authored order.
func (m *Manifest) Applicable(env Environment) []Requirement {
	var out []Requirement
	for i := range m.Requirements {
		if m.Requirements[i].AppliesTo(env) {
			out = append(out, m.Requirements[i])
		}
	}
	return out
}
