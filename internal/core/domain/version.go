package domain

import (
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// versionPattern accepts the pip version grammar subset pinset understands:
// optional epoch, dotted release, optional pre/post/dev segments, optional
// local label. Input is normalized to lowercase before matching.
var versionPattern = regexp.MustCompile(
	`^v?(?:(\d+)!)?(\d+(?:\.\d+)*)` +
		`(?:[._-]?(a|alpha|b|beta|rc|c|pre|preview)[._-]?(\d*))?` +
		`(?:[._-]?(post|rev|r)[._-]?(\d*)|-(\d+))?` +
		`(?:[._-]?(dev)[._-]?(\d*))?` +
		`(?:\+([a-z0-9]+(?:[._-][a-z0-9]+)*))?$`,
)

// prePhase is a pre-release phase in ascending precedence order.
type prePhase int

const (
	phaseAlpha prePhase = iota
	phaseBeta
	phaseRC
)

// preSegment is a pre-release marker such as "rc1".
type preSegment struct {
	Phase  prePhase
	Number int
}

// Version is a parsed package version with pip's ordering semantics.
// The zero value is not a valid version; use ParseVersion.
type Version struct {
	Epoch   int
	Release []int
	Pre     *preSegment
	Post    *int
	Dev     *int
	Local   string

	original string
}

// ParseVersion parses a version string.
// Returns ErrInvalidVersion (with the offending input attached) on failure.
func ParseVersion(s string) (*Version, error) {
	trimmed := strings.TrimSpace(strings.ToLower(s))
	m := versionPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return nil, zerr.With(zerr.Wrap(ErrInvalidVersion, "malformed version string"), "version", s)
	}

	v := &Version{original: strings.TrimSpace(s)}

	if m[1] != "" {
		v.Epoch, _ = strconv.Atoi(m[1])
	}

	for _, part := range strings.Split(m[2], ".") {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(ErrInvalidVersion, "release segment out of range"), "version", s)
		}
		v.Release = append(v.Release, n)
	}

	if m[3] != "" {
		phase, ok := normalizePrePhase(m[3])
		if !ok {
			return nil, zerr.With(zerr.Wrap(ErrInvalidVersion, "unknown pre-release phase"), "version", s)
		}
		v.Pre = &preSegment{Phase: phase, Number: atoiOrZero(m[4])}
	}

	switch {
	case m[5] != "":
		n := atoiOrZero(m[6])
		v.Post = &n
	case m[7] != "":
		n := atoiOrZero(m[7])
		v.Post = &n
	}

	if m[8] != "" {
		n := atoiOrZero(m[9])
		v.Dev = &n
	}

	v.Local = m[10]

	return v, nil
}

// MustParseVersion parses a version string and panics on failure.
// Intended for tests and compile-time constants.
func MustParseVersion(s string) *Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

func normalizePrePhase(s string) (prePhase, bool) {
	switch s {
	case "a", "alpha":
		return phaseAlpha, true
	case "b", "beta":
		return phaseBeta, true
	case "rc", "c", "pre", "preview":
		return phaseRC, true
	default:
		return 0, false
	}
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}

// String returns the normalized form of the version.
func (v *Version) String() string {
	var b strings.Builder

	if v.Epoch != 0 {
		b.WriteString(strconv.Itoa(v.Epoch))
		b.WriteByte('!')
	}

	parts := make([]string, len(v.Release))
	for i, n := range v.Release {
		parts[i] = strconv.Itoa(n)
	}
	b.WriteString(strings.Join(parts, "."))

	if v.Pre != nil {
		switch v.Pre.Phase {
		case phaseAlpha:
			b.WriteByte('a')
		case phaseBeta:
			b.WriteByte('b')
		case phaseRC:
			b.WriteString("rc")
		}
		b.WriteString(strconv.Itoa(v.Pre.Number))
	}
	if v.Post != nil {
		b.WriteString(".post")
		b.WriteString(strconv.Itoa(*v.Post))
	}
	if v.Dev != nil {
		b.WriteString(".dev")
		b.WriteString(strconv.Itoa(*v.Dev))
	}
	if v.Local != "" {
		b.WriteByte('+')
		b.WriteString(v.Local)
	}

	return b.String()
}

// Original returns the version exactly as it was authored.
func (v *Version) Original() string {
	return v.original
}

// IsPreRelease reports whether the version carries a pre-release or dev segment.
func (v *Version) IsPreRelease() bool {
	return v.Pre != nil || v.Dev != nil
}

// Compare returns -1, 0, or 1 ordering v against other per pip's rules:
// epoch, then zero-padded release, then dev < pre < final < post,
// with local labels breaking remaining ties.
func (v *Version) Compare(other *Version) int {
	if c := cmpInt(v.Epoch, other.Epoch); c != 0 {
		return c
	}
	if c := cmpRelease(v.Release, other.Release); c != 0 {
		return c
	}
	if c := cmpPreKey(v, other); c != 0 {
		return c
	}
	if c := cmpPostKey(v.Post, other.Post); c != 0 {
		return c
	}
	if c := cmpDevKey(v.Dev, other.Dev); c != 0 {
		return c
	}
	return cmpLocal(v.Local, other.Local)
}

// Equal reports whether two versions compare equal, ignoring local labels.
func (v *Version) Equal(other *Version) bool {
	a, b := *v, *other
	a.Local, b.Local = "", ""
	return a.Compare(&b) == 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpRelease(a, b []int) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := range n {
		av, bv := 0, 0
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		if c := cmpInt(av, bv); c != 0 {
			return c
		}
	}
	return 0
}

// preRank flattens the pre/dev/post interplay into a comparable pair.
// Dev-only releases sort before any pre-release, which sorts before the
// final release and anything after it.
func preRank(v *Version) (int, int, int) {
	switch {
	case v.Pre != nil:
		return 1, int(v.Pre.Phase), v.Pre.Number
	case v.Dev != nil && v.Post == nil:
		return 0, 0, 0
	default:
		return 2, 0, 0
	}
}

func cmpPreKey(a, b *Version) int {
	ar, ap, an := preRank(a)
	br, bp, bn := preRank(b)
	if c := cmpInt(ar, br); c != 0 {
		return c
	}
	if c := cmpInt(ap, bp); c != 0 {
		return c
	}
	return cmpInt(an, bn)
}

func cmpPostKey(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return cmpInt(*a, *b)
	}
}

func cmpDevKey(a, b *int) int {
	// A dev segment sorts before the same version without one.
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return cmpInt(*a, *b)
	}
}

func cmpLocal(a, b string) int {
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return -1
	case b == "":
		return 1
	}

	as := strings.FieldsFunc(a, isLocalSep)
	bs := strings.FieldsFunc(b, isLocalSep)
	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := range n {
		if i >= len(as) {
			return -1
		}
		if i >= len(bs) {
			return 1
		}
		if c := cmpLocalSegment(as[i], bs[i]); c != 0 {
			return c
		}
	}
	return 0
}

func isLocalSep(r rune) bool {
	return r == '.' || r == '-' || r == '_'
}

// cmpLocalSegment orders numeric segments numerically and before
// alphanumeric ones, matching pip's local version ordering.
func cmpLocalSegment(a, b string) int {
	an, aerr := strconv.Atoi(a)
	bn, berr := strconv.Atoi(b)
	switch {
	case aerr == nil && berr == nil:
		return cmpInt(an, bn)
	case aerr == nil:
		return 1
	case berr == nil:
		return -1
	default:
		return strings.Compare(a, b)
	}
}
