package lintconfig

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-hclog"

	"github.com/jokarl/flatlint/flatconfig"
	"github.com/jokarl/flatlint/helper"
	"github.com/jokarl/flatlint/options"
	"github.com/jokarl/flatlint/probe"
	"github.com/jokarl/flatlint/providers"
	"github.com/jokarl/flatlint/registry"
)

func newBuilder(t *testing.T, p probe.Probe, without ...string) *Builder {
	t.Helper()
	return &Builder{
		Sources: helper.TestRegistry(t, without...),
		Probe:   p,
		Logger:  hclog.NewNullLogger(),
	}
}

func allInstalled() probe.Probe {
	return probe.Packages("typescript", "react", "vue", "prettier", "vitest")
}

func TestBuild_OnlyJS(t *testing.T) {
	opts := &options.Options{
		TS:            options.Bool[options.TSFields](false),
		React:         options.Bool[options.ReactFields](false),
		Prettier:      options.Bool[options.None](false),
		Unicorn:       options.Bool[options.None](false),
		Import:        options.Bool[options.None](false),
		VitestGlobals: options.Bool[options.None](false),
		Vue:           options.Bool[options.VueFields](false),
	}

	cfg, err := newBuilder(t, allInstalled()).Build(context.Background(), opts)
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}

	helper.AssertFragmentNames(t, []string{providers.NameIgnores, providers.NameJS}, cfg)
	ignores := helper.MustFragment(t, cfg, providers.NameIgnores)
	if diff := cmp.Diff(options.BaseIgnores, ignores.Ignores); diff != "" {
		t.Errorf("ignores mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_DefaultsFollowProbe(t *testing.T) {
	tests := []struct {
		name  string
		probe probe.Probe
		want  []string
	}{
		{
			name:  "nothing installed",
			probe: probe.None,
			want: []string{
				providers.NameIgnores,
				providers.NameJS,
				providers.NameUnicorn,
				providers.NameImport,
			},
		},
		{
			name:  "everything installed",
			probe: allInstalled(),
			want: []string{
				providers.NameIgnores,
				providers.NameJS,
				providers.NameUnicorn,
				providers.NameTS,
				providers.NameImport,
				providers.NameReact,
				providers.NameVitestGlobals,
				providers.NameVue,
				providers.NamePrettier,
			},
		},
		{
			name:  "react project",
			probe: probe.Packages("react", "typescript"),
			want: []string{
				providers.NameIgnores,
				providers.NameJS,
				providers.NameUnicorn,
				providers.NameTS,
				providers.NameImport,
				providers.NameReact,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := newBuilder(t, tt.probe).Build(context.Background(), nil)
			if err != nil {
				t.Fatalf("Build() = %v", err)
			}
			helper.AssertFragmentNames(t, tt.want, cfg)
		})
	}
}

func TestBuild_DisabledFeaturesAbsent(t *testing.T) {
	features := []struct {
		name string
		frag string
		set  func(o *options.Options)
	}{
		{options.FeatureJS, providers.NameJS, func(o *options.Options) { o.JS = options.Disabled[options.None]() }},
		{options.FeatureTS, providers.NameTS, func(o *options.Options) { o.TS = options.Disabled[options.TSFields]() }},
		{options.FeatureReact, providers.NameReact, func(o *options.Options) { o.React = options.Disabled[options.ReactFields]() }},
		{options.FeatureVue, providers.NameVue, func(o *options.Options) { o.Vue = options.Disabled[options.VueFields]() }},
		{options.FeaturePrettier, providers.NamePrettier, func(o *options.Options) { o.Prettier = options.Disabled[options.None]() }},
		{options.FeatureUnicorn, providers.NameUnicorn, func(o *options.Options) { o.Unicorn = options.Disabled[options.None]() }},
		{options.FeatureVitestGlobals, providers.NameVitestGlobals, func(o *options.Options) { o.VitestGlobals = options.Disabled[options.None]() }},
		{options.FeatureJSXA11y, providers.NameJSXA11y, func(o *options.Options) { o.JSXA11y = options.Disabled[options.None]() }},
		{options.FeatureImport, providers.NameImport, func(o *options.Options) { o.Import = options.Disabled[options.None]() }},
	}

	for _, tt := range features {
		t.Run(tt.name, func(t *testing.T) {
			opts := &options.Options{JSXA11y: options.Bool[options.None](true)}
			tt.set(opts)

			cfg, err := newBuilder(t, allInstalled()).Build(context.Background(), opts)
			if err != nil {
				t.Fatalf("Build() = %v", err)
			}
			if _, ok := cfg.Fragment(tt.frag); ok {
				t.Errorf("fragment %q present with %s disabled", tt.frag, tt.name)
			}
		})
	}
}

func TestBuild_PrettierAlwaysLast(t *testing.T) {
	extra := flatconfig.Fragment{
		Name:  "app/extra",
		Rules: flatconfig.Rules{"quotes": flatconfig.Error("single")},
	}
	nested := flatconfig.NewComposer(flatconfig.Fragment{Name: "app/nested"})

	for _, opts := range []*options.Options{
		nil,
		{JSXA11y: options.Bool[options.None](true)},
		{JS: options.Bool[options.None](false), Vue: options.Bool[options.VueFields](false)},
	} {
		cfg, err := newBuilder(t, allInstalled()).Build(context.Background(), opts, extra, nested)
		if err != nil {
			t.Fatalf("Build() = %v", err)
		}

		names := cfg.Names()
		if got := names[len(names)-1]; got != providers.NamePrettier {
			t.Errorf("last fragment = %q, want %q (all: %v)", got, providers.NamePrettier, names)
		}
		if got := names[len(names)-3]; got != "app/extra" {
			t.Errorf("extra fragment at %q, want before nested and prettier (all: %v)", got, names)
		}
		if got := names[len(names)-2]; got != "app/nested" {
			t.Errorf("nested fragment at %q, want just before prettier (all: %v)", got, names)
		}
	}
}

func TestBuild_ExtrasWithoutPrettier(t *testing.T) {
	opts := &options.Options{Prettier: options.Bool[options.None](false)}
	extra := flatconfig.Fragment{Name: "app/extra"}

	cfg, err := newBuilder(t, probe.None).Build(context.Background(), opts, extra)
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}

	names := cfg.Names()
	if got := names[len(names)-1]; got != "app/extra" {
		t.Errorf("last fragment = %q, want app/extra", got)
	}
}

func TestBuild_VueAddsFilesToTS(t *testing.T) {
	opts := &options.Options{
		Vue: options.Enabled(options.VueFields{Version: 3}),
		TS:  options.Bool[options.TSFields](true),
	}

	cfg, err := newBuilder(t, probe.None).Build(context.Background(), opts)
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}

	ts := helper.MustFragment(t, cfg, providers.NameTS)
	if !containsString(ts.Files, "**/*.vue") {
		t.Errorf("ts files = %v, want **/*.vue included", ts.Files)
	}
	if diff := cmp.Diff([]any{".vue"}, ts.LanguageOptions.ParserOptions["extraFileExtensions"]); diff != "" {
		t.Errorf("extraFileExtensions mismatch (-want +got):\n%s", diff)
	}

	vue := helper.MustFragment(t, cfg, providers.NameVue)
	want := map[string]any{"vue": map[string]any{"version": 3}}
	if diff := cmp.Diff(want, vue.Settings); diff != "" {
		t.Errorf("vue settings mismatch (-want +got):\n%s", diff)
	}
	if vue.LanguageOptions.ParserOptions["parser"] != providers.PackageTSParser {
		t.Error("vue fragment does not parse scripts as typescript")
	}
}

func TestBuild_TSWithoutVue(t *testing.T) {
	opts := &options.Options{
		Vue: options.Bool[options.VueFields](false),
		TS:  options.Bool[options.TSFields](true),
	}

	cfg, err := newBuilder(t, probe.None).Build(context.Background(), opts)
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}

	ts := helper.MustFragment(t, cfg, providers.NameTS)
	if containsString(ts.Files, "**/*.vue") {
		t.Errorf("ts files = %v, want no vue glob", ts.Files)
	}
}

func TestBuild_ImportKnowsAboutTS(t *testing.T) {
	for _, enableTS := range []bool{true, false} {
		opts := &options.Options{TS: options.Bool[options.TSFields](enableTS)}
		cfg, err := newBuilder(t, probe.None).Build(context.Background(), opts)
		if err != nil {
			t.Fatalf("Build() = %v", err)
		}

		imp := helper.MustFragment(t, cfg, providers.NameImport)
		if _, ok := imp.Settings["import-x/resolver"]; ok != enableTS {
			t.Errorf("ts=%v: import resolver settings present = %v", enableTS, ok)
		}
	}
}

func TestBuild_ReactOverride(t *testing.T) {
	opts := &options.Options{
		React: options.Feature[options.ReactFields]{}.WithOverrides(flatconfig.Rules{
			"react/jsx-key": flatconfig.Off(),
		}),
	}

	cfg, err := newBuilder(t, probe.None).Build(context.Background(), opts)
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}

	react := helper.MustFragment(t, cfg, providers.NameReact)
	if got := react.Rules["react/jsx-key"]; got.Level != flatconfig.OFF {
		t.Errorf("react/jsx-key = %v, want off", got.Level)
	}
}

func TestBuild_OverridesWinForEveryFeature(t *testing.T) {
	const rule = "custom/override-probe"
	o := flatconfig.Rules{rule: flatconfig.Warn("marker")}

	opts := &options.Options{
		JS:            options.Bool[options.None](true).WithOverrides(o),
		TS:            options.Bool[options.TSFields](true).WithOverrides(o),
		React:         options.Bool[options.ReactFields](true).WithOverrides(o),
		Vue:           options.Bool[options.VueFields](true).WithOverrides(o),
		Prettier:      options.Bool[options.None](true).WithOverrides(o),
		Unicorn:       options.Bool[options.None](true).WithOverrides(o),
		VitestGlobals: options.Bool[options.None](true).WithOverrides(o),
		JSXA11y:       options.Bool[options.None](true).WithOverrides(o),
		Import:        options.Bool[options.None](true).WithOverrides(o),
	}

	cfg, err := newBuilder(t, probe.None).Build(context.Background(), opts)
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}

	for _, f := range cfg.Fragments {
		if f.Name == providers.NameIgnores {
			continue
		}
		helper.AssertRules(t, o, f.Rules)
	}
}

func TestBuild_PrettierOverridesEarlierSettings(t *testing.T) {
	cfg, err := newBuilder(t, probe.Packages("prettier")).Build(context.Background(), nil)
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}

	// Cascade rules the way the engine does: later fragments win.
	effective := flatconfig.Rules{}
	for _, f := range cfg.Fragments {
		for name, s := range f.Rules {
			effective[name] = s
		}
	}
	if got := effective["quotes"]; got.Level != flatconfig.OFF {
		t.Errorf("effective quotes = %v, want off", got.Level)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	opts := &options.Options{
		JSXA11y: options.Bool[options.None](true),
		React:   options.Enabled(options.ReactFields{Version: "18.2.0", Compiler: true}),
	}
	b := newBuilder(t, allInstalled())

	first, err := b.Build(context.Background(), opts)
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}
	second, err := b.Build(context.Background(), opts)
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}

	helper.AssertConfigEqual(t, first, second)
}

func TestBuild_MissingSourceIsFatal(t *testing.T) {
	opts := &options.Options{JSXA11y: options.Bool[options.None](true)}

	cfg, err := newBuilder(t, probe.None, providers.PackageJSXA11y).Build(context.Background(), opts)
	if !errors.Is(err, registry.ErrMissingDependency) {
		t.Fatalf("Build() error = %v, want ErrMissingDependency", err)
	}
	if cfg != nil {
		t.Error("Build() returned a partial config")
	}
}

func TestBuild_FailedBuildDoesNotPoisonRegistry(t *testing.T) {
	var js registry.RuleSource
	for _, src := range helper.Sources() {
		if src.PackageName() == providers.PackageJS {
			js = src
		}
	}

	reg := helper.TestRegistry(t, providers.PackageReactCompiler, providers.PackageJS)
	var calls atomic.Int32
	reg.RegisterLoader(providers.PackageJS, func(ctx context.Context) (registry.RuleSource, error) {
		if calls.Add(1) == 1 {
			// Still loading when a sibling provider fails.
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return js, nil
	})
	b := &Builder{Sources: reg, Probe: probe.None, Logger: hclog.NewNullLogger()}

	failing := &options.Options{React: options.Enabled(options.ReactFields{Compiler: true})}
	if _, err := b.Build(context.Background(), failing); !errors.Is(err, registry.ErrMissingDependency) {
		t.Fatalf("first Build() error = %v, want ErrMissingDependency", err)
	}

	cfg, err := b.Build(context.Background(), &options.Options{})
	if err != nil {
		t.Fatalf("second Build() = %v", err)
	}
	helper.MustFragment(t, cfg, providers.NameJS)
}

func TestBuild_MissingSourceOfDisabledFeatureIsFine(t *testing.T) {
	opts := &options.Options{JSXA11y: options.Bool[options.None](false)}

	if _, err := newBuilder(t, probe.None, providers.PackageJSXA11y).Build(context.Background(), opts); err != nil {
		t.Fatalf("Build() = %v", err)
	}
}

func TestBuild_InvalidOptions(t *testing.T) {
	opts := &options.Options{Vue: options.Enabled(options.VueFields{Version: 4})}

	if _, err := newBuilder(t, probe.None).Build(context.Background(), opts); err == nil {
		t.Fatal("Build() = nil error for vue version 4")
	}
}

func TestBuild_ExtraSourceError(t *testing.T) {
	boom := errors.New("boom")
	failing := flatconfig.SourceFunc(func(context.Context) ([]flatconfig.Fragment, error) {
		return nil, boom
	})

	if _, err := newBuilder(t, probe.None).Build(context.Background(), nil, failing); !errors.Is(err, boom) {
		t.Fatalf("Build() error = %v, want %v", err, boom)
	}
}

func TestBuild_CustomIgnores(t *testing.T) {
	opts := &options.Options{Ignores: []string{"**/build"}}

	cfg, err := newBuilder(t, probe.None).Build(context.Background(), opts)
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}

	ignores := helper.MustFragment(t, cfg, providers.NameIgnores)
	if diff := cmp.Diff([]string{"**/build"}, ignores.Ignores); diff != "" {
		t.Errorf("ignores mismatch (-want +got):\n%s", diff)
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
