// Package reqfile parses requirement manifests in the pip requirements.txt
// dialect: one declaration per line, # comments, backslash continuations,
// bracketed extras, semicolon-separated environment markers, -r includes.
package reqfile

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/pinset/internal/core/domain"
	"go.trai.ch/pinset/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestLoader = (*Parser)(nil)

// Parser implements ports.ManifestLoader for requirements.txt files.
type Parser struct{}

// NewParser creates a new manifest parser.
func NewParser() *Parser {
	return &Parser{}
}

// Load parses the manifest at path, following -r includes relative to the
// including file. The merged manifest preserves declaration order.
func (p *Parser) Load(path string) (*domain.Manifest, error) {
	manifest := &domain.Manifest{Path: domain.NewInternedString(path)}
	visited := make(map[string]bool)
	if err := p.loadInto(manifest, path, visited); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (p *Parser) loadInto(manifest *domain.Manifest, path string, visited map[string]bool) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to resolve manifest path"), "path", path)
	}
	if visited[abs] {
		return zerr.With(zerr.Wrap(domain.ErrIncludeCycle, "manifest already on the include path"), "path", path)
	}
	visited[abs] = true
	manifest.Sources = append(manifest.Sources, domain.NewInternedString(path))

	data, err := os.ReadFile(abs) //nolint:gosec // path is provided by user
	if err != nil {
		if os.IsNotExist(err) {
			return zerr.With(zerr.Wrap(domain.ErrManifestNotFound, "no such file"), "path", path)
		}
		return zerr.With(zerr.Wrap(err, "failed to read manifest"), "path", path)
	}

	for line := range logicalLines(string(data)) {
		text := stripComment(line.text)
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		if include, ok := includeTarget(text); ok {
			target := include
			if !filepath.IsAbs(target) {
				target = filepath.Join(filepath.Dir(abs), target)
			}
			if err := p.loadInto(manifest, target, visited); err != nil {
				return err
			}
			continue
		}

		req, err := ParseLine(text)
		if err != nil {
			locErr := zerr.With(err, "file", path)
			return zerr.With(locErr, "line", line.number)
		}
		req.File = domain.NewInternedString(path)
		req.Line = line.number
		manifest.Add(req)
	}

	return nil
}

// logicalLine is a physical line, or several joined by trailing backslashes.
type logicalLine struct {
	text   string
	number int // 1-based number of the first physical line
}

// logicalLines yields the manifest's logical lines with continuations folded.
func logicalLines(content string) func(yield func(logicalLine) bool) {
	return func(yield func(logicalLine) bool) {
		physical := strings.Split(content, "\n")
		var pending strings.Builder
		start := 0

		for i, raw := range physical {
			raw = strings.TrimSuffix(raw, "\r")
			if pending.Len() == 0 {
				start = i + 1
			}

			if trimmed, cont := strings.CutSuffix(raw, `\`); cont {
				pending.WriteString(trimmed)
				continue
			}

			pending.WriteString(raw)
			line := logicalLine{text: pending.String(), number: start}
			pending.Reset()
			if !yield(line) {
				return
			}
		}

		if pending.Len() > 0 {
			yield(logicalLine{text: pending.String(), number: start})
		}
	}
}

// stripComment removes a trailing # comment. A hash starts a comment at the
// beginning of the line or when preceded by whitespace, and never inside a
// quoted marker string.
func stripComment(line string) string {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '#':
			if i == 0 || line[i-1] == ' ' || line[i-1] == '\t' {
				return line[:i]
			}
		}
	}
	return line
}

// includeTarget recognizes -r and --requirement include lines.
func includeTarget(line string) (string, bool) {
	for _, prefix := range []string{"-r ", "--requirement "} {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix)), true
		}
	}
	if rest, ok := strings.CutPrefix(line, "--requirement="); ok {
		return strings.TrimSpace(rest), true
	}
	return "", false
}

// ParseLine parses a single declaration in PEP 508 form:
//
//	name[extra1,extra2]==1.2.3,<2.0; marker
func ParseLine(text string) (*domain.Requirement, error) {
	if strings.HasPrefix(text, "-") {
		return nil, zerr.With(
			zerr.Wrap(domain.ErrInvalidRequirement, "unsupported requirement option"),
			"input", text)
	}

	spec, markerText := splitMarker(text)

	name, rest := scanName(spec)
	req, err := domain.NewRequirement(strings.TrimSpace(name))
	if err != nil {
		return nil, zerr.With(err, "input", text)
	}

	rest = strings.TrimSpace(rest)
	if extras, remainder, ok, extrasErr := scanExtras(rest); ok {
		if extrasErr != nil {
			return nil, zerr.With(extrasErr, "input", text)
		}
		req.Extras = domain.InternStrings(extras)
		rest = strings.TrimSpace(remainder)
	}

	// requires_dist metadata wraps the specifier list in parentheses,
	// e.g. "idna (<4,>=2.5)".
	if strings.HasPrefix(rest, "(") && strings.HasSuffix(rest, ")") {
		rest = strings.TrimSpace(rest[1 : len(rest)-1])
	}

	specifiers, err := domain.ParseSpecifierSet(rest)
	if err != nil {
		return nil, zerr.With(err, "input", text)
	}
	req.Specifiers = specifiers

	if markerText != "" {
		marker, err := domain.ParseMarker(markerText)
		if err != nil {
			return nil, zerr.With(err, "input", text)
		}
		req.Marker = marker
	}

	return req, nil
}

// splitMarker splits at the first semicolon outside quotes.
func splitMarker(text string) (spec, marker string) {
	var quote byte
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == ';':
			return strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+1:])
		}
	}
	return strings.TrimSpace(text), ""
}

// scanName splits the leading package name from the remainder of the line.
func scanName(text string) (name, rest string) {
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
			c == '-' || c == '_' || c == '.' {
			continue
		}
		return text[:i], text[i:]
	}
	return text, ""
}

// scanExtras parses a leading [extra1,extra2] clause.
// ok reports whether the text begins with a bracket at all.
func scanExtras(text string) (extras []string, rest string, ok bool, err error) {
	if !strings.HasPrefix(text, "[") {
		return nil, text, false, nil
	}

	end := strings.IndexByte(text, ']')
	if end < 0 {
		return nil, "", true, zerr.Wrap(domain.ErrInvalidRequirement, "unterminated extras clause")
	}

	for part := range strings.SplitSeq(text[1:end], ",") {
		extra := strings.TrimSpace(part)
		if extra == "" {
			return nil, "", true, zerr.Wrap(domain.ErrInvalidRequirement, "empty extra name")
		}
		if verr := domain.ValidateName(extra); verr != nil {
			return nil, "", true, zerr.Wrap(domain.ErrInvalidRequirement, "malformed extra name")
		}
		extras = append(extras, extra)
	}

	return extras, text[end+1:], true, nil
}
