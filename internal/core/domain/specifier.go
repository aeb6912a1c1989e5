package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Operator is a version comparison operator in a specifier clause.
type Operator string

const (
	// OpEqual matches versions equal to the clause version (or its prefix form).
	OpEqual Operator = "=="
	// OpNotEqual is the negation of OpEqual.
	OpNotEqual Operator = "!="
	// OpGreaterEqual matches versions ordered at or after the clause version.
	OpGreaterEqual Operator = ">="
	// OpLessEqual matches versions ordered at or before the clause version.
	OpLessEqual Operator = "<="
	// OpGreater matches versions strictly after the clause version.
	OpGreater Operator = ">"
	// OpLess matches versions strictly before the clause version.
	OpLess Operator = "<"
	// OpCompatible is the compatible-release operator (~=).
	OpCompatible Operator = "~="
	// OpArbitrary is the arbitrary string equality operator (===).
	OpArbitrary Operator = "==="
)

// specifierOps lists operators longest-first so that the clause scanner
// never splits "===" into "==" + "=".
var specifierOps = []Operator{
	OpArbitrary, OpEqual, OpNotEqual, OpGreaterEqual, OpLessEqual,
	OpCompatible, OpGreater, OpLess,
}

// Specifier is a single version constraint clause such as ">=1.4" or "==2.*".
type Specifier struct {
	Op      Operator
	Raw     string
	version *Version
	prefix  bool
}

// SpecifierSet is the conjunction of zero or more specifier clauses.
// An empty set matches every version (an unconstrained declaration).
type SpecifierSet []Specifier

// ParseSpecifierSet parses a comma-separated list of specifier clauses.
// The empty string yields an empty (unconstrained) set.
func ParseSpecifierSet(s string) (SpecifierSet, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, nil
	}

	var set SpecifierSet
	for clause := range strings.SplitSeq(trimmed, ",") {
		spec, err := parseSpecifier(strings.TrimSpace(clause))
		if err != nil {
			return nil, err
		}
		set = append(set, spec)
	}
	return set, nil
}

func parseSpecifier(clause string) (Specifier, error) {
	if clause == "" {
		return Specifier{}, zerr.With(zerr.Wrap(ErrInvalidSpecifier, "empty clause"), "clause", clause)
	}

	var op Operator
	for _, candidate := range specifierOps {
		if strings.HasPrefix(clause, string(candidate)) {
			op = candidate
			break
		}
	}
	if op == "" {
		return Specifier{}, zerr.With(zerr.Wrap(ErrInvalidSpecifier, "missing comparison operator"), "clause", clause)
	}

	raw := strings.TrimSpace(strings.TrimPrefix(clause, string(op)))
	if raw == "" {
		return Specifier{}, zerr.With(zerr.Wrap(ErrInvalidSpecifier, "missing version operand"), "clause", clause)
	}

	spec := Specifier{Op: op, Raw: raw}

	// === compares raw strings and never parses its operand.
	if op == OpArbitrary {
		return spec, nil
	}

	versionPart := raw
	if strings.HasSuffix(raw, ".*") {
		if op != OpEqual && op != OpNotEqual {
			return Specifier{}, zerr.With(
				zerr.Wrap(ErrInvalidSpecifier, "prefix match is only valid with == and !="),
				"clause", clause)
		}
		spec.prefix = true
		versionPart = strings.TrimSuffix(raw, ".*")
	}

	v, err := ParseVersion(versionPart)
	if err != nil {
		return Specifier{}, zerr.With(zerr.Wrap(err, ErrInvalidSpecifier.Error()), "clause", clause)
	}
	spec.version = v

	if op == OpCompatible && len(v.Release) < 2 {
		return Specifier{}, zerr.With(
			zerr.Wrap(ErrInvalidSpecifier, "~= requires at least two release segments"),
			"clause", clause)
	}

	return spec, nil
}

// Match reports whether the candidate version satisfies the clause.
func (s Specifier) Match(v *Version) bool {
	switch s.Op {
	case OpArbitrary:
		return strings.EqualFold(v.Original(), s.Raw)
	case OpEqual:
		if s.prefix {
			return matchPrefix(v, s.version)
		}
		return matchEqual(v, s.version)
	case OpNotEqual:
		if s.prefix {
			return !matchPrefix(v, s.version)
		}
		return !matchEqual(v, s.version)
	case OpGreaterEqual:
		return v.Compare(s.version) >= 0
	case OpLessEqual:
		return v.Compare(s.version) <= 0
	case OpGreater:
		return matchGreater(v, s.version)
	case OpLess:
		return matchLess(v, s.version)
	case OpCompatible:
		return matchCompatible(v, s.version)
	default:
		return false
	}
}

// matchEqual implements ==. A clause version without a local label matches
// any local variant; one with a label requires an exact label match.
func matchEqual(v, spec *Version) bool {
	if !v.Equal(spec) {
		return false
	}
	if spec.Local != "" {
		return v.Local == spec.Local
	}
	return true
}

// matchLess implements <. A pre-release of the clause's own release never
// matches unless the clause version is itself a pre-release.
func matchLess(v, spec *Version) bool {
	if v.Compare(spec) >= 0 {
		return false
	}
	if !spec.IsPreRelease() && v.IsPreRelease() && sameBase(v, spec) {
		return false
	}
	return true
}

// matchGreater implements >. Post-releases and local variants of the
// clause's own release are excluded, matching pip.
func matchGreater(v, spec *Version) bool {
	if v.Compare(spec) <= 0 {
		return false
	}
	if spec.Post == nil && v.Post != nil && sameBase(v, spec) {
		return false
	}
	if v.Local != "" && sameBase(v, spec) {
		return false
	}
	return true
}

// sameBase reports whether two versions share an epoch and release,
// ignoring pre, post, dev and local segments.
func sameBase(a, b *Version) bool {
	return a.Epoch == b.Epoch && cmpRelease(a.Release, b.Release) == 0
}

// matchPrefix reports whether v's release starts with the spec's release
// segments, with matching epoch and pre/post/dev ignored beyond the prefix.
func matchPrefix(v, spec *Version) bool {
	if v.Epoch != spec.Epoch {
		return false
	}
	release := v.Release
	if len(release) < len(spec.Release) {
		padded := make([]int, len(spec.Release))
		copy(padded, release)
		release = padded
	}
	for i, n := range spec.Release {
		if release[i] != n {
			return false
		}
	}
	return true
}

// matchCompatible implements ~=: at least the given version, staying within
// the series formed by dropping its final release segment.
func matchCompatible(v, spec *Version) bool {
	if v.Compare(spec) < 0 {
		return false
	}
	series := &Version{Epoch: spec.Epoch, Release: spec.Release[:len(spec.Release)-1]}
	return matchPrefix(v, series)
}

// Match reports whether the candidate satisfies every clause in the set.
func (set SpecifierSet) Match(v *Version) bool {
	for _, s := range set {
		if !s.Match(v) {
			return false
		}
	}
	return true
}

// AllowsPreReleases reports whether any clause mentions a pre-release or dev
// version, which opts the requirement into pre-release candidates.
func (set SpecifierSet) AllowsPreReleases() bool {
	for _, s := range set {
		if s.version != nil && s.version.IsPreRelease() {
			return true
		}
	}
	return false
}

// String renders the set in canonical comma-space separated form.
func (set SpecifierSet) String() string {
	parts := make([]string, len(set))
	for i, s := range set {
		parts[i] = string(s.Op) + s.Raw
	}
	return strings.Join(parts, ", ")
}

// ExactPin returns the pinned version when the set is a single == clause
// without a prefix wildcard. The second return is false otherwise.
func (set SpecifierSet) ExactPin() (*Version, bool) {
	if len(set) != 1 {
		return nil, false
	}
	s := set[0]
	if s.Op != OpEqual || s.prefix {
		return nil, false
	}
	return s.version, true
}

// String renders the clause verbatim, operator included.
func (s Specifier) String() string {
	return string(s.Op) + s.Raw
}
