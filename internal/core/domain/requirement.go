package domain

import (
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

// namePattern is the valid shape of a package name: letters and digits,
// with single runs of separators in between.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)

var nameSeparators = regexp.MustCompile(`[-_.]+`)

// CanonicalName normalizes a package name for identity checks: lowercase,
// with runs of '-', '_' and '.' collapsed to a single '-'.
func CanonicalName(name string) string {
	return strings.ToLower(nameSeparators.ReplaceAllString(name, "-"))
}

// ValidateName checks that a package name is non-empty and well formed.
func ValidateName(name string) error {
	if name == "" {
		return ErrEmptyRequirementName
	}
	if !namePattern.MatchString(name) {
		return zerr.With(zerr.Wrap(ErrInvalidRequirement, "malformed package name"), "name", name)
	}
	return nil
}

// Requirement is a single dependency declaration from a manifest.
type Requirement struct {
	// Name is the package name as authored.
	Name InternedString

	// Canonical is the normalized name used for identity and index lookups.
	Canonical InternedString

	// Extras are the requested optional feature sets, in authored order.
	Extras []InternedString

	// Specifiers is the version constraint; empty means unconstrained.
	Specifiers SpecifierSet

	// Marker is the environment marker gating applicability; nil means always.
	Marker *Marker

	// File is the manifest file the declaration came from.
	File InternedString

	// Line is the 1-based line number of the declaration.
	Line int
}

// NewRequirement builds a Requirement after validating the name.
func NewRequirement(name string) (*Requirement, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	return &Requirement{
		Name:      NewInternedString(name),
		Canonical: NewInternedString(CanonicalName(name)),
	}, nil
}

// AppliesTo reports whether the declaration applies in the given environment.
// A requirement without a marker always applies.
func (r *Requirement) AppliesTo(env Environment) bool {
	if r.Marker == nil {
		return true
	}
	return r.Marker.Eval(env)
}

// Unconstrained reports whether the declaration has no version constraint.
func (r *Requirement) Unconstrained() bool {
	return len(r.Specifiers) == 0
}

// String renders the declaration in canonical single-line form.
func (r *Requirement) String() string {
	var b strings.Builder
	b.WriteString(r.Name.String())

	if len(r.Extras) > 0 {
		b.WriteByte('[')
		for i, e := range r.Extras {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(e.String())
		}
		b.WriteByte(']')
	}

	if len(r.Specifiers) > 0 {
		b.WriteString(r.Specifiers.String())
	}

	if r.Marker != nil {
		b.WriteString("; ")
		b.WriteString(r.Marker.String())
	}

	return b.String()
}
