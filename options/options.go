package options

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/jokarl/flatlint/probe"
)

// Feature names, as used in option files and log output.
const (
	FeatureJS            = "js"
	FeatureTS            = "ts"
	FeatureReact         = "react"
	FeatureVue           = "vue"
	FeaturePrettier      = "prettier"
	FeatureUnicorn       = "unicorn"
	FeatureVitestGlobals = "vitest_globals"
	FeatureJSXA11y       = "jsx_a11y"
	FeatureImport        = "import"
)

// ReactVersionDetect asks the react plugin to read the installed version.
const ReactVersionDetect = "detect"

// BaseIgnores is the global ignore list used when none is configured.
var BaseIgnores = []string{
	"**/node_modules",
	"**/dist",
	"**/package-lock.json",
	"**/yarn.lock",
	"**/pnpm-lock.yaml",
	"**/CHANGELOG.md",
	"**/LICENSE",
}

// None is the field set of features without feature-specific fields.
type None struct{}

// TSFields are the typescript feature fields.
type TSFields struct {
	// ParseOptions are merged over the default parser options.
	ParseOptions map[string]any
}

// ReactFields are the react feature fields.
type ReactFields struct {
	// Version is "detect" or an explicit react version.
	Version string
	// Compiler enables the react-compiler plugin.
	Compiler bool
}

// VueFields are the vue feature fields.
type VueFields struct {
	// Version is the vue major version, 2 or 3.
	Version int
}

// Options is the caller-supplied configuration. The zero value selects
// every default.
type Options struct {
	// Ignores replaces BaseIgnores when non-nil.
	Ignores []string

	JS            Feature[None]
	TS            Feature[TSFields]
	React         Feature[ReactFields]
	Vue           Feature[VueFields]
	Prettier      Feature[None]
	Unicorn       Feature[None]
	VitestGlobals Feature[None]
	JSXA11y       Feature[None]
	Import        Feature[None]
}

// Default describes how a feature's enabled flag is computed when unset.
type Default struct {
	// Enabled is used when Package is empty.
	Enabled bool
	// Package, when set, enables the feature iff the probe finds it.
	Package string
}

// Eval computes the default against p.
func (d Default) Eval(p probe.Probe) bool {
	if d.Package == "" {
		return d.Enabled
	}
	return p != nil && p.Exists(d.Package)
}

// Defaults lists the default of every feature.
var Defaults = map[string]Default{
	FeatureJS:            {Enabled: true},
	FeatureTS:            {Package: "typescript"},
	FeatureReact:         {Package: "react"},
	FeatureVue:           {Package: "vue"},
	FeaturePrettier:      {Package: "prettier"},
	FeatureUnicorn:       {Enabled: true},
	FeatureVitestGlobals: {Package: "vitest"},
	FeatureJSXA11y:       {Enabled: false},
	FeatureImport:        {Enabled: true},
}

// ResolvedOptions holds every feature after resolution.
type ResolvedOptions struct {
	Ignores []string

	JS            ResolvedOption[None]
	TS            ResolvedOption[TSFields]
	React         ResolvedOption[ReactFields]
	Vue           ResolvedOption[VueFields]
	Prettier      ResolvedOption[None]
	Unicorn       ResolvedOption[None]
	VitestGlobals ResolvedOption[None]
	JSXA11y       ResolvedOption[None]
	Import        ResolvedOption[None]
}

// Enabled returns the names of enabled features in a fixed order.
func (r *ResolvedOptions) Enabled() []string {
	var names []string
	for _, f := range []struct {
		name string
		on   bool
	}{
		{FeatureJS, r.JS.Enabled},
		{FeatureUnicorn, r.Unicorn.Enabled},
		{FeatureTS, r.TS.Enabled},
		{FeatureImport, r.Import.Enabled},
		{FeatureReact, r.React.Enabled},
		{FeatureVitestGlobals, r.VitestGlobals.Enabled},
		{FeatureJSXA11y, r.JSXA11y.Enabled},
		{FeatureVue, r.Vue.Enabled},
		{FeaturePrettier, r.Prettier.Enabled},
	} {
		if f.on {
			names = append(names, f.name)
		}
	}
	return names
}

// Resolve resolves every feature. Unset features take their default from
// p. A nil receiver is treated as the zero Options.
//
// Feature fields are defaulted: react version to "detect", vue version
// to 3. Fields of enabled features are validated: react version must be
// "detect" or a semantic version and vue version must be 2 or 3.
func (o *Options) Resolve(p probe.Probe) (*ResolvedOptions, error) {
	if o == nil {
		o = &Options{}
	}
	if p == nil {
		p = probe.None
	}
	def := func(name string) bool { return Defaults[name].Eval(p) }

	r := &ResolvedOptions{
		Ignores:       o.Ignores,
		JS:            Resolve(o.JS, def(FeatureJS)),
		TS:            Resolve(o.TS, def(FeatureTS)),
		React:         Resolve(o.React, def(FeatureReact)),
		Vue:           Resolve(o.Vue, def(FeatureVue)),
		Prettier:      Resolve(o.Prettier, def(FeaturePrettier)),
		Unicorn:       Resolve(o.Unicorn, def(FeatureUnicorn)),
		VitestGlobals: Resolve(o.VitestGlobals, def(FeatureVitestGlobals)),
		JSXA11y:       Resolve(o.JSXA11y, def(FeatureJSXA11y)),
		Import:        Resolve(o.Import, def(FeatureImport)),
	}
	if r.Ignores == nil {
		r.Ignores = append([]string(nil), BaseIgnores...)
	}

	if r.React.Fields.Version == "" {
		r.React.Fields.Version = ReactVersionDetect
	}
	if v := r.React.Fields.Version; r.React.Enabled && v != ReactVersionDetect {
		if _, err := semver.NewVersion(v); err != nil {
			return nil, fmt.Errorf("%s: version must be %q or a semantic version, got %q", FeatureReact, ReactVersionDetect, v)
		}
	}

	if r.Vue.Fields.Version == 0 {
		r.Vue.Fields.Version = 3
	}
	if v := r.Vue.Fields.Version; r.Vue.Enabled && v != 2 && v != 3 {
		return nil, fmt.Errorf("%s: version must be 2 or 3, got %d", FeatureVue, v)
	}

	return r, nil
}
