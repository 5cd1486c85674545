// Package lintconfig builds a composed flat lint configuration from
// feature options.
//
// Build resolves every feature toggle, runs the providers of the enabled
// features concurrently and composes their fragments in a fixed order:
//
//	ignores, js, unicorn, ts, import, react, vitest globals, jsx-a11y, vue,
//	caller extras..., prettier
//
// The prettier fragment only disables rules, and coming last lets it win
// over every earlier fragment. Any provider failure aborts the build.
package lintconfig

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/jokarl/flatlint/flatconfig"
	"github.com/jokarl/flatlint/options"
	"github.com/jokarl/flatlint/probe"
	"github.com/jokarl/flatlint/providers"
	"github.com/jokarl/flatlint/registry"
)

// Builder composes configurations. The zero value uses the default
// registry and probes the working directory.
type Builder struct {
	// Sources loads rule sources. Defaults to registry.Default.
	Sources providers.Loader
	// Probe computes feature defaults. Defaults to probe.Detect on the
	// working directory.
	Probe probe.Probe
	// Logger receives debug output. Defaults to a null logger.
	Logger hclog.Logger
}

// Build builds a configuration with a zero Builder.
func Build(ctx context.Context, opts *options.Options, extra ...flatconfig.Source) (*flatconfig.Config, error) {
	return (&Builder{}).Build(ctx, opts, extra...)
}

// step is one provider invocation.
type step struct {
	feature string
	run     func(ctx context.Context) (*flatconfig.Fragment, error)
}

// Build resolves opts, runs the enabled providers and composes the result.
// extra sources are placed after the built-in fragments and before the
// prettier fragment.
func (b *Builder) Build(ctx context.Context, opts *options.Options, extra ...flatconfig.Source) (*flatconfig.Config, error) {
	logger := b.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	sources := b.Sources
	if sources == nil {
		sources = registry.Default
	}
	p := b.Probe
	if p == nil {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("probing dependencies: %w", err)
		}
		p = probe.Detect(wd)
	}

	r, err := opts.Resolve(p)
	if err != nil {
		return nil, err
	}
	logger.Debug("resolved features", "enabled", r.Enabled())

	steps, last := plan(r, sources)

	frags := make([]*flatconfig.Fragment, len(steps))
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range steps {
		if s.run == nil {
			continue
		}
		g.Go(func() error {
			f, err := s.run(gctx)
			if err != nil {
				return fmt.Errorf("%s: %w", s.feature, err)
			}
			logger.Debug("built fragment", "feature", s.feature, "rules", len(f.Rules))
			frags[i] = f
			return nil
		})
	}

	var final *flatconfig.Fragment
	if last.run != nil {
		g.Go(func() error {
			f, err := last.run(gctx)
			if err != nil {
				return fmt.Errorf("%s: %w", last.feature, err)
			}
			final = f
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	builtins := append([]*flatconfig.Fragment{ignores(r.Ignores)}, frags...)
	return flatconfig.Compose(ctx, builtins, extra, final)
}

// plan lists the provider steps in composition order. Disabled features
// keep their slot with a nil run. The prettier step is returned separately
// because it is composed after the caller's extras.
func plan(r *options.ResolvedOptions, l providers.Loader) ([]step, step) {
	var tsExts, tsFiles []string
	if r.Vue.Enabled {
		tsExts = append(tsExts, ".vue")
		tsFiles = append(tsFiles, providers.VueFiles...)
	}

	when := func(on bool, feature string, run func(ctx context.Context) (*flatconfig.Fragment, error)) step {
		if !on {
			return step{feature: feature}
		}
		return step{feature: feature, run: run}
	}

	steps := []step{
		when(r.JS.Enabled, options.FeatureJS, func(ctx context.Context) (*flatconfig.Fragment, error) {
			return providers.JS(ctx, l, providers.BaseOptions{Overrides: r.JS.Overrides})
		}),
		when(r.Unicorn.Enabled, options.FeatureUnicorn, func(ctx context.Context) (*flatconfig.Fragment, error) {
			return providers.Unicorn(ctx, l, providers.BaseOptions{Overrides: r.Unicorn.Overrides})
		}),
		when(r.TS.Enabled, options.FeatureTS, func(ctx context.Context) (*flatconfig.Fragment, error) {
			return providers.TS(ctx, l, providers.TSOptions{
				BaseOptions:  providers.BaseOptions{Overrides: r.TS.Overrides},
				Exts:         tsExts,
				Files:        tsFiles,
				ParseOptions: r.TS.Fields.ParseOptions,
			})
		}),
		when(r.Import.Enabled, options.FeatureImport, func(ctx context.Context) (*flatconfig.Fragment, error) {
			return providers.Import(ctx, l, providers.ImportOptions{
				BaseOptions: providers.BaseOptions{Overrides: r.Import.Overrides},
				EnableTS:    r.TS.Enabled,
			})
		}),
		when(r.React.Enabled, options.FeatureReact, func(ctx context.Context) (*flatconfig.Fragment, error) {
			return providers.React(ctx, l, providers.ReactOptions{
				BaseOptions: providers.BaseOptions{Overrides: r.React.Overrides},
				Version:     r.React.Fields.Version,
				Compiler:    r.React.Fields.Compiler,
			})
		}),
		when(r.VitestGlobals.Enabled, options.FeatureVitestGlobals, func(ctx context.Context) (*flatconfig.Fragment, error) {
			return providers.VitestGlobals(ctx, l, providers.BaseOptions{Overrides: r.VitestGlobals.Overrides})
		}),
		when(r.JSXA11y.Enabled, options.FeatureJSXA11y, func(ctx context.Context) (*flatconfig.Fragment, error) {
			return providers.JSXA11y(ctx, l, providers.BaseOptions{Overrides: r.JSXA11y.Overrides})
		}),
		when(r.Vue.Enabled, options.FeatureVue, func(ctx context.Context) (*flatconfig.Fragment, error) {
			return providers.Vue(ctx, l, providers.VueOptions{
				BaseOptions: providers.BaseOptions{Overrides: r.Vue.Overrides},
				Version:     r.Vue.Fields.Version,
				EnableTS:    r.TS.Enabled,
			})
		}),
	}

	last := when(r.Prettier.Enabled, options.FeaturePrettier, func(ctx context.Context) (*flatconfig.Fragment, error) {
		return providers.Prettier(ctx, l, providers.BaseOptions{Overrides: r.Prettier.Overrides})
	})
	return steps, last
}

func ignores(globs []string) *flatconfig.Fragment {
	return &flatconfig.Fragment{
		Name:    providers.NameIgnores,
		Ignores: append([]string(nil), globs...),
	}
}
