// Package resolver picks exact versions for declared requirements and
// assembles the dependency graph among them.
package resolver

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.trai.ch/pinset/internal/core/domain"
	"go.trai.ch/pinset/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// LineParser parses one dependency declaration line. It matches the manifest
// grammar so requires_dist entries from the index reuse the same parsing.
type LineParser func(text string) (*domain.Requirement, error)

// Resolver resolves declared requirements against a package index.
type Resolver struct {
	index     ports.PackageIndex
	log       ports.Logger
	parseLine LineParser
}

// Options tune a single resolution run.
type Options struct {
	// Parallelism bounds concurrent index requests. Zero means the default.
	Parallelism int
}

// Resolution is the outcome of resolving one manifest.
type Resolution struct {
	// Pins maps canonical package names to their exact pins.
	Pins map[string]domain.LockedPackage

	// Graph holds the dependency edges among the pinned packages.
	// Edges to packages outside the manifest are not represented.
	Graph *domain.Graph
}

// NewResolver creates a new Resolver.
func NewResolver(index ports.PackageIndex, log ports.Logger, parseLine LineParser) *Resolver {
	return &Resolver{
		index:     index,
		log:       log,
		parseLine: parseLine,
	}
}

type resolvedReq struct {
	req     domain.Requirement
	version *domain.Version
	meta    *domain.ReleaseMetadata
}

// Resolve picks the highest satisfying version for every applicable
// declaration and builds the dependency graph among them.
func (r *Resolver) Resolve(ctx context.Context, m *domain.Manifest, env domain.Environment, opts Options) (*Resolution, error) {
	applicable := m.Applicable(env)

	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = domain.DefaultParallelism
	}

	results := make([]resolvedReq, len(applicable))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i, req := range applicable {
		g.Go(func() error {
			res, err := r.resolveOne(gctx, req)
			if err != nil {
				return err
			}
			results[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return r.assemble(results, env)
}

// resolveOne resolves a single declaration to an exact release.
func (r *Resolver) resolveOne(ctx context.Context, req domain.Requirement) (*resolvedReq, error) {
	name := req.Canonical.String()

	versions, err := r.index.Versions(ctx, name)
	if err != nil {
		return nil, err
	}

	chosen, err := chooseVersion(versions, req.Specifiers)
	if err != nil {
		notFoundErr := zerr.With(err, "package", name)
		return nil, zerr.With(notFoundErr, "specifier", req.Specifiers.String())
	}

	meta, err := r.index.Metadata(ctx, name, chosen.String())
	if err != nil {
		return nil, err
	}

	return &resolvedReq{req: req, version: chosen, meta: meta}, nil
}

// assemble turns per-requirement resolutions into pins and a graph.
func (r *Resolver) assemble(results []resolvedReq, env domain.Environment) (*Resolution, error) {
	pins := make(map[string]domain.LockedPackage, len(results))
	for _, res := range results {
		pins[res.req.Canonical.String()] = domain.LockedPackage{
			Version:     res.version.String(),
			Requirement: res.req.String(),
			Manifest:    res.req.File.String(),
			Line:        res.req.Line,
		}
	}

	graph := domain.NewGraph()
	for _, res := range results {
		node := domain.PackageNode{
			Name:    res.req.Canonical,
			Version: domain.NewInternedString(res.version.String()),
		}
		for _, line := range res.meta.RequiresDist {
			dep, err := r.parseLine(line)
			if err != nil {
				r.log.Warn(fmt.Sprintf("%s: skipping unparsable dependency declaration %q",
					res.req.Canonical.String(), line))
				continue
			}
			if _, declared := pins[dep.Canonical.String()]; !declared {
				continue
			}
			if !dependencyApplies(dep, env, res.req.Extras) {
				continue
			}
			node.Requires = append(node.Requires, dep.Canonical)
		}
		slices.SortFunc(node.Requires, func(a, b domain.InternedString) int {
			return strings.Compare(a.String(), b.String())
		})
		node.Requires = slices.Compact(node.Requires)

		if err := graph.AddPackage(&node); err != nil {
			return nil, err
		}
	}

	if err := graph.Validate(); err != nil {
		return nil, err
	}

	return &Resolution{Pins: pins, Graph: graph}, nil
}

// dependencyApplies evaluates a requires_dist marker for the base environment
// and for each requested extra of the parent declaration.
func dependencyApplies(dep *domain.Requirement, env domain.Environment, extras []domain.InternedString) bool {
	if dep.Marker == nil {
		return true
	}

	base := maps.Clone(env)
	if base == nil {
		base = domain.Environment{}
	}
	base["extra"] = ""
	if dep.Marker.Eval(base) {
		return true
	}

	for _, extra := range extras {
		withExtra := maps.Clone(base)
		withExtra["extra"] = extra.String()
		if dep.Marker.Eval(withExtra) {
			return true
		}
	}
	return false
}

// chooseVersion picks the highest release satisfying the specifier set.
// Final releases win over pre-releases unless the set opts into them or
// nothing else matches.
func chooseVersion(versions []*domain.Version, set domain.SpecifierSet) (*domain.Version, error) {
	var bestFinal, bestPre *domain.Version
	for _, v := range versions {
		if !set.Match(v) {
			continue
		}
		if v.IsPreRelease() {
			if bestPre == nil || v.Compare(bestPre) > 0 {
				bestPre = v
			}
		} else {
			if bestFinal == nil || v.Compare(bestFinal) > 0 {
				bestFinal = v
			}
		}
	}

	if set.AllowsPreReleases() && bestPre != nil {
		if bestFinal == nil || bestPre.Compare(bestFinal) > 0 {
			return bestPre, nil
		}
	}
	if bestFinal != nil {
		return bestFinal, nil
	}
	if bestPre != nil {
		return bestPre, nil
	}
	return nil, domain.ErrNoSatisfyingVersion
}
