// Package app implements the application layer for pinset.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.trai.ch/pinset/internal/core/domain"
	"go.trai.ch/pinset/internal/core/ports"
	"go.trai.ch/pinset/internal/engine/resolver"
	"go.trai.ch/pinset/internal/ui/report"
	"go.trai.ch/zerr"
)

// workspaceRoot is where the lockfile and cache live, relative to the
// invocation directory.
const workspaceRoot = "."

// App represents the main application logic.
type App struct {
	configLoader   ports.ConfigLoader
	manifestLoader ports.ManifestLoader
	manifestWriter ports.ManifestWriter
	lockStore      ports.LockStore
	hasher         ports.Hasher
	envProber      ports.EnvProber
	watcher        ports.Watcher
	resolver       *resolver.Resolver
	logger         ports.Logger

	report *report.Writer
}

// New creates a new App instance.
func New(
	configLoader ports.ConfigLoader,
	manifestLoader ports.ManifestLoader,
	manifestWriter ports.ManifestWriter,
	lockStore ports.LockStore,
	hasher ports.Hasher,
	envProber ports.EnvProber,
	fileWatcher ports.Watcher,
	res *resolver.Resolver,
	log ports.Logger,
) *App {
	return &App{
		configLoader:   configLoader,
		manifestLoader: manifestLoader,
		manifestWriter: manifestWriter,
		lockStore:      lockStore,
		hasher:         hasher,
		envProber:      envProber,
		watcher:        fileWatcher,
		resolver:       res,
		logger:         log,
		report:         report.NewWriter(os.Stdout),
	}
}

// WithOutput redirects report output. This is primarily used for testing.
func (a *App) WithOutput(w io.Writer) *App {
	a.report = report.NewWriter(w)
	return a
}

// workspace is the resolved context of one command invocation.
type workspace struct {
	cfg   *domain.Config
	env   domain.Environment
	paths []string
}

// loadWorkspace loads configuration and derives the marker environment.
// Explicit paths from the command line win over configured manifests.
func (a *App) loadWorkspace(paths []string) (*workspace, error) {
	cfg, err := a.configLoader.Load(workspaceRoot)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if len(paths) == 0 {
		paths = cfg.Manifests
	}

	return &workspace{
		cfg:   cfg,
		env:   a.envProber.Probe(cfg.Environment),
		paths: paths,
	}, nil
}

// loadMerged loads all manifests of the workspace into a single manifest and
// enforces the no-duplicates invariant across them.
func (a *App) loadMerged(ws *workspace) (*domain.Manifest, error) {
	merged := &domain.Manifest{Path: domain.NewInternedString(ws.paths[0])}
	for _, path := range ws.paths {
		m, err := a.manifestLoader.Load(path)
		if err != nil {
			return nil, err
		}
		merged.Sources = append(merged.Sources, m.Sources...)
		merged.Requirements = append(merged.Requirements, m.Requirements...)
	}

	if errs := merged.Validate(); len(errs) > 0 {
		a.report.Diagnostics(errs)
		return nil, domain.ErrCheckFailed
	}
	return merged, nil
}

// sourcePaths lists every file a merged manifest was loaded from, includes
// included. The lock digest must cover all of them.
func sourcePaths(m *domain.Manifest) []string {
	paths := make([]string, len(m.Sources))
	for i, s := range m.Sources {
		paths[i] = s.String()
	}
	return paths
}

// CheckOptions configuration for the Check method.
type CheckOptions struct {
	// Paths overrides the configured manifests.
	Paths []string

	// Watch keeps checking on every manifest change until canceled.
	Watch bool
}

// Check validates the manifests and reports diagnostics.
// It returns ErrCheckFailed when any diagnostic was reported.
func (a *App) Check(ctx context.Context, opts CheckOptions) error {
	ws, err := a.loadWorkspace(opts.Paths)
	if err != nil {
		return err
	}

	problems := a.checkManifests(ws)

	if !opts.Watch {
		if problems > 0 {
			return domain.ErrCheckFailed
		}
		return nil
	}

	if err := a.watcher.Start(ctx, ws.paths, func(changed []string) {
		a.logger.Info(fmt.Sprintf("manifest changed: %s", strings.Join(changed, ", ")))
		a.checkManifests(ws)
	}); err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	<-ctx.Done()
	return nil
}

// checkManifests validates each manifest and returns the problem count.
func (a *App) checkManifests(ws *workspace) int {
	problems := 0
	for _, path := range ws.paths {
		m, err := a.manifestLoader.Load(path)
		if err != nil {
			a.report.Diagnostics([]error{err})
			a.report.Summary(path, 0, 1)
			problems++
			continue
		}

		errs := m.Validate()
		a.report.Diagnostics(errs)
		a.report.Summary(path, len(m.Requirements), len(errs))
		problems += len(errs)
	}
	return problems
}

// ListOptions configuration for the List method.
type ListOptions struct {
	Paths []string
}

// List renders every declaration, marking the ones the current environment
// filters out.
func (a *App) List(_ context.Context, opts ListOptions) error {
	ws, err := a.loadWorkspace(opts.Paths)
	if err != nil {
		return err
	}

	for _, path := range ws.paths {
		m, err := a.manifestLoader.Load(path)
		if err != nil {
			return err
		}
		a.report.Declarations(m, ws.env)
	}
	return nil
}

// LockOptions configuration for the Lock method.
type LockOptions struct {
	Paths []string
}

// Lock resolves all applicable declarations to exact pins and writes the
// lockfile.
func (a *App) Lock(ctx context.Context, opts LockOptions) error {
	ws, err := a.loadWorkspace(opts.Paths)
	if err != nil {
		return err
	}

	merged, err := a.loadMerged(ws)
	if err != nil {
		return err
	}

	res, err := a.resolver.Resolve(ctx, merged, ws.env, resolver.Options{
		Parallelism: ws.cfg.Parallelism,
	})
	if err != nil {
		return zerr.Wrap(err, "failed to resolve manifests")
	}

	digest, err := a.hasher.DigestFiles(sourcePaths(merged))
	if err != nil {
		return err
	}

	lock := &domain.Lockfile{
		Version:  domain.LockfileFormatVersion,
		Digest:   digest,
		Packages: res.Pins,
	}
	if err := a.lockStore.Write(workspaceRoot, lock); err != nil {
		return err
	}

	a.report.LockSummary(len(res.Pins), digest)
	return nil
}

// DiffOptions configuration for the Diff method.
type DiffOptions struct {
	Paths []string
}

// Diff compares the lockfile against the manifests and reports drift.
// It returns ErrCheckFailed when drift was found.
func (a *App) Diff(_ context.Context, opts DiffOptions) error {
	ws, err := a.loadWorkspace(opts.Paths)
	if err != nil {
		return err
	}

	lock, err := a.lockStore.Read(workspaceRoot)
	if err != nil {
		return err
	}

	merged, err := a.loadMerged(ws)
	if err != nil {
		return err
	}

	digest, err := a.hasher.DigestFiles(sourcePaths(merged))
	if err != nil {
		return err
	}
	stale := digest != lock.Digest
	if stale {
		a.report.Diagnostics([]error{zerr.Wrap(domain.ErrLockDigestMismatch,
			"manifest content changed since the lockfile was written")})
	}

	drift := lock.Diff(merged, ws.env)
	if len(drift) > 0 || !stale {
		a.report.Drift(drift)
	}

	if stale || len(drift) > 0 {
		return domain.ErrCheckFailed
	}
	return nil
}

// FmtOptions configuration for the Fmt method.
type FmtOptions struct {
	Paths []string

	// Write rewrites the manifests in place instead of printing them.
	Write bool
}

// Fmt renders each manifest in canonical form. Includes are expanded into
// the manifest that declares them.
func (a *App) Fmt(_ context.Context, opts FmtOptions) error {
	ws, err := a.loadWorkspace(opts.Paths)
	if err != nil {
		return err
	}

	for _, path := range ws.paths {
		m, err := a.manifestLoader.Load(path)
		if err != nil {
			return err
		}
		if opts.Write {
			if err := a.manifestWriter.WriteFile(path, m); err != nil {
				return err
			}
			a.logger.Info(fmt.Sprintf("rewrote %s", path))
			continue
		}
		a.report.Canonical(a.manifestWriter.Format(m))
	}
	return nil
}

// GraphOptions configuration for the Graph method.
type GraphOptions struct {
	Paths []string
}

// Graph resolves the manifests and renders the dependency graph among the
// declared packages in dependency-first order.
func (a *App) Graph(ctx context.Context, opts GraphOptions) error {
	ws, err := a.loadWorkspace(opts.Paths)
	if err != nil {
		return err
	}

	merged, err := a.loadMerged(ws)
	if err != nil {
		return err
	}

	res, err := a.resolver.Resolve(ctx, merged, ws.env, resolver.Options{
		Parallelism: ws.cfg.Parallelism,
	})
	if err != nil {
		return zerr.Wrap(err, "failed to resolve manifests")
	}

	a.report.Graph(res.Graph)
	return nil
}
