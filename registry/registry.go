package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/hashicorp/go-hclog"
)

// HostVersion is the flatlint version checked against source constraints.
const HostVersion = "0.1.0"

// ErrMissingDependency is matched by errors reporting an unregistered source.
var ErrMissingDependency = errors.New("missing rule source")

// MissingDependencyError reports that an enabled feature needs a rule source
// that is not registered.
type MissingDependencyError struct {
	// Package is the package that could not be found.
	Package string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("rule source %q is not registered; install it or disable the feature that needs it", e.Package)
}

// Is reports whether target is ErrMissingDependency.
func (e *MissingDependencyError) Is(target error) bool {
	return target == ErrMissingDependency
}

// Loader produces a rule source on first use.
type Loader func(ctx context.Context) (RuleSource, error)

// Registry maps package names to rule sources.
//
// Sources registered through RegisterLoader are loaded on the first Load
// for their package and kept once loaded. A failed load is not kept, so
// the next Load retries. A Registry is safe for concurrent use.
type Registry struct {
	logger hclog.Logger
	host   *semver.Version

	mu      sync.Mutex
	entries map[string]*entry
	closers []func()
}

type entry struct {
	load Loader

	mu  sync.Mutex
	src RuleSource
}

// New returns an empty registry. A nil logger discards output.
func New(logger hclog.Logger) *Registry {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Registry{
		logger:  logger.Named("registry"),
		host:    semver.MustParse(HostVersion),
		entries: make(map[string]*entry),
	}
}

// Register adds in-process sources, replacing any previous registration
// for the same package.
func (r *Registry) Register(sources ...RuleSource) {
	for _, src := range sources {
		src := src
		r.RegisterLoader(src.PackageName(), func(context.Context) (RuleSource, error) {
			return src, nil
		})
	}
}

// RegisterLoader adds a lazily loaded source for pkg.
func (r *Registry) RegisterLoader(pkg string, load Loader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[pkg] = &entry{load: load}
}

// OnClose registers fn to run when the registry is closed.
func (r *Registry) OnClose(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closers = append(r.closers, fn)
}

// Has reports whether a source is registered for pkg.
func (r *Registry) Has(pkg string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[pkg]
	return ok
}

// Packages returns the registered package names in sorted order.
func (r *Registry) Packages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load returns the source for pkg, loading it on first use. Concurrent
// loads of one package wait for each other.
//
// An unregistered package yields a *MissingDependencyError. A source whose
// version constraint excludes HostVersion is rejected.
func (r *Registry) Load(ctx context.Context, pkg string) (RuleSource, error) {
	r.mu.Lock()
	e, ok := r.entries[pkg]
	r.mu.Unlock()
	if !ok {
		return nil, &MissingDependencyError{Package: pkg}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.src != nil {
		return e.src, nil
	}

	r.logger.Debug("loading rule source", "package", pkg)
	src, err := e.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", pkg, err)
	}
	if src.PackageName() != pkg {
		return nil, fmt.Errorf("loading %s: source reports package %q", pkg, src.PackageName())
	}
	if err := r.checkConstraint(src); err != nil {
		return nil, err
	}
	e.src = src
	return src, nil
}

// Close runs every function registered with OnClose, in reverse order.
func (r *Registry) Close() {
	r.mu.Lock()
	closers := r.closers
	r.closers = nil
	r.mu.Unlock()

	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
}

func (r *Registry) checkConstraint(src RuleSource) error {
	raw := src.VersionConstraint()
	if raw == "" {
		return nil
	}
	c, err := semver.NewConstraint(raw)
	if err != nil {
		return fmt.Errorf("%s: invalid version constraint %q: %w", src.PackageName(), raw, err)
	}
	if !c.Check(r.host) {
		return fmt.Errorf("%s requires flatlint %s, running %s", src.PackageName(), raw, r.host)
	}
	return nil
}

// Default is the process-wide registry used by package-level helpers.
var Default = New(nil)

// Register adds sources to the Default registry.
func Register(sources ...RuleSource) {
	Default.Register(sources...)
}
