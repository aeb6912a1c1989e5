// Package report renders command results as styled line output.
package report

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/pinset/internal/core/domain"
	"go.trai.ch/pinset/internal/ui/output"
	"go.trai.ch/pinset/internal/ui/style"
	"go.trai.ch/zerr"
)

// Writer renders reports for the check, list, lock, diff and graph commands.
type Writer struct {
	out *termenv.Output
}

// NewWriter creates a report writer. A nil writer defaults to stdout.
func NewWriter(w io.Writer) *Writer {
	if w == nil {
		w = os.Stdout
	}
	return &Writer{out: output.New(w)}
}

// Declarations renders every declaration of a manifest, marking the ones the
// environment filters out.
func (r *Writer) Declarations(m *domain.Manifest, env domain.Environment) {
	for i := range m.Requirements {
		req := &m.Requirements[i]

		icon := r.paint(style.Teal, style.Dot)
		if !req.AppliesTo(env) {
			icon = r.paint(style.Slate, style.Skip)
		}

		location := r.paint(style.Slate, fmt.Sprintf("(%s:%d)", req.File.String(), req.Line))
		r.println(fmt.Sprintf("%s %s %s", icon, req.String(), location))
	}
}

// Diagnostics renders validation errors, one per line. Structured metadata
// carried on the chain, such as the offending file and line, follows the
// message as key=value pairs.
func (r *Writer) Diagnostics(errs []error) {
	for _, err := range errs {
		line := r.paint(style.Red, style.Cross+" "+err.Error())
		if meta := formatMetadata(err); meta != "" {
			line += " " + r.paint(style.Slate, meta)
		}
		r.println(line)
	}
}

// formatMetadata flattens the metadata of an error chain into sorted
// key=value pairs. The first occurrence of a key wins.
func formatMetadata(err error) string {
	merged := make(map[string]any)
	for e := err; e != nil; e = errors.Unwrap(e) {
		z, ok := e.(*zerr.Error)
		if !ok {
			continue
		}
		for k, v := range z.Metadata() {
			if _, seen := merged[k]; !seen {
				merged[k] = v
			}
		}
	}
	if len(merged) == 0 {
		return ""
	}

	keys := slices.Sorted(maps.Keys(merged))
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, merged[k])
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Summary renders the closing line of a check run.
func (r *Writer) Summary(path string, declarations, problems int) {
	if problems == 0 {
		r.println(r.paint(style.Green,
			fmt.Sprintf("%s %s: %d declarations", style.Check, path, declarations)))
		return
	}
	r.println(r.paint(style.Red,
		fmt.Sprintf("%s %s: %s", style.Cross, path, plural(problems, "problem"))))
}

// LockSummary renders the outcome of writing a lockfile.
func (r *Writer) LockSummary(packages int, digest string) {
	r.println(r.paint(style.Green,
		fmt.Sprintf("%s locked %s", style.Check, plural(packages, "package"))) +
		" " + r.paint(style.Slate, "(digest "+digest+")"))
}

// Drift renders the differences between lockfile and manifests.
func (r *Writer) Drift(drift []domain.Drift) {
	if len(drift) == 0 {
		r.println(r.paint(style.Green, style.Check+" lockfile matches manifests"))
		return
	}

	for _, d := range drift {
		switch d.Kind {
		case domain.DriftAdded:
			r.println(r.paint(style.Green, "+ "+d.Name) +
				" " + r.paint(style.Slate, "(wanted "+d.Wanted+")"))
		case domain.DriftRemoved:
			r.println(r.paint(style.Red, "- "+d.Name) +
				" " + r.paint(style.Slate, "(locked "+d.Locked+")"))
		case domain.DriftChanged:
			line := fmt.Sprintf("~ %s %s %s %s", d.Name, d.Locked, style.Arrow, d.Wanted)
			if d.Invalid {
				line += " (locked version does not parse)"
			}
			r.println(r.paint(style.Yellow, line))
		}
	}
}

// Canonical writes an already formatted manifest rendering verbatim.
func (r *Writer) Canonical(text string) {
	_, _ = r.out.WriteString(text)
}

// Graph renders pinned packages in dependency-first order with their edges.
func (r *Writer) Graph(g *domain.Graph) {
	for node := range g.Walk() {
		r.println(node.Name.String() + "==" + node.Version.String())
		for _, dep := range node.Requires {
			r.println("  " + r.paint(style.Slate, style.Arrow+" "+dep.String()))
		}
	}
}

func (r *Writer) paint(c lipgloss.Color, s string) string {
	return r.out.String(s).Foreground(termenv.RGBColor(string(c))).String()
}

func (r *Writer) println(s string) {
	_, _ = r.out.WriteString(s + "\n")
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
