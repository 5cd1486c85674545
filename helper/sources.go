// Package helper provides testing utilities for flatlint.
// Use TestRegistry to build configurations without real rule sources.
//
// Example:
//
//	func TestMyConfig(t *testing.T) {
//	    b := &lintconfig.Builder{
//	        Sources: helper.TestRegistry(t),
//	        Probe:   probe.Packages("react"),
//	    }
//	    cfg, err := b.Build(ctx, nil)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    helper.AssertFragmentNames(t, []string{...}, cfg)
//	}
package helper

import (
	"testing"

	"github.com/jokarl/flatlint/flatconfig"
	"github.com/jokarl/flatlint/providers"
	"github.com/jokarl/flatlint/registry"
)

// StubVersion is the version every stub source reports.
const StubVersion = "0.0.0-test"

// Sources returns stub rule sources for every package the providers load.
//
// Each stub publishes a small recommended preset; notably
// "react/jsx-key" is an error in eslint-plugin-react's recommended preset
// and "quotes" and "indent" are turned off by eslint-config-prettier.
func Sources() []registry.RuleSource {
	return []registry.RuleSource{
		&registry.BuiltinSource{
			Package: providers.PackageJS,
			Version: StubVersion,
			Rules: []registry.Rule{
				registry.Def{ID: "no-undef", Severity: flatconfig.ERROR},
				registry.Def{ID: "no-unused-vars", Severity: flatconfig.ERROR},
				registry.Def{ID: "quotes", Severity: flatconfig.WARN},
			},
		},
		&registry.BuiltinSource{
			Package: providers.PackageUnicorn,
			Version: StubVersion,
			Prefix:  "unicorn",
			Rules: []registry.Rule{
				registry.Def{ID: "filename-case", Severity: flatconfig.ERROR},
				registry.Def{ID: "no-null", Severity: flatconfig.ERROR},
				registry.Def{ID: "prefer-node-protocol", Severity: flatconfig.ERROR},
			},
		},
		&registry.BuiltinSource{
			Package: providers.PackageTS,
			Version: StubVersion,
			Prefix:  "@typescript-eslint",
			Rules: []registry.Rule{
				registry.Def{ID: "no-explicit-any", Severity: flatconfig.ERROR},
				registry.Def{ID: "no-unused-vars", Severity: flatconfig.ERROR},
			},
		},
		&registry.BuiltinSource{
			Package: providers.PackageImport,
			Version: StubVersion,
			Prefix:  "import-x",
			Rules: []registry.Rule{
				registry.Def{ID: "no-unresolved", Severity: flatconfig.ERROR},
				registry.Def{ID: "named", Severity: flatconfig.ERROR},
			},
			Presets: map[string]*flatconfig.Preset{
				providers.ImportTSConfig: {Rules: flatconfig.Rules{"import-x/named": flatconfig.Off()}},
			},
		},
		&registry.BuiltinSource{
			Package: providers.PackageReact,
			Version: StubVersion,
			Prefix:  "react",
			Rules: []registry.Rule{
				registry.Def{ID: "jsx-key", Severity: flatconfig.ERROR},
				registry.Def{ID: "prop-types", Severity: flatconfig.ERROR},
				registry.Def{ID: "react-in-jsx-scope", Severity: flatconfig.ERROR},
			},
			Presets: map[string]*flatconfig.Preset{
				providers.ReactJSXRuntimeConfig: {Rules: flatconfig.Rules{
					"react/react-in-jsx-scope": flatconfig.Off(),
					"react/jsx-uses-react":     flatconfig.Off(),
				}},
			},
		},
		&registry.BuiltinSource{
			Package: providers.PackageReactHooks,
			Version: StubVersion,
			Prefix:  "react-hooks",
			Rules: []registry.Rule{
				registry.Def{ID: "rules-of-hooks", Severity: flatconfig.ERROR},
				registry.Def{ID: "exhaustive-deps", Severity: flatconfig.WARN},
			},
		},
		&registry.BuiltinSource{
			Package: providers.PackageReactRefresh,
			Version: StubVersion,
			Prefix:  "react-refresh",
			Rules: []registry.Rule{
				registry.Def{ID: "only-export-components"},
			},
		},
		&registry.BuiltinSource{
			Package: providers.PackageReactCompiler,
			Version: StubVersion,
			Prefix:  "react-compiler",
			Rules: []registry.Rule{
				registry.Def{ID: "react-compiler"},
			},
		},
		&registry.BuiltinSource{
			Package: providers.PackageVitest,
			Version: StubVersion,
			Prefix:  "vitest",
			Presets: map[string]*flatconfig.Preset{
				providers.VitestEnvConfig: {Globals: map[string]flatconfig.GlobalAccess{
					"describe": flatconfig.Readonly,
					"it":       flatconfig.Readonly,
					"expect":   flatconfig.Readonly,
					"vi":       flatconfig.Readonly,
				}},
			},
		},
		&registry.BuiltinSource{
			Package: providers.PackageJSXA11y,
			Version: StubVersion,
			Prefix:  "jsx-a11y",
			Rules: []registry.Rule{
				registry.Def{ID: "alt-text", Severity: flatconfig.ERROR},
				registry.Def{ID: "no-autofocus", Severity: flatconfig.ERROR},
			},
		},
		&registry.BuiltinSource{
			Package: providers.PackageVue,
			Version: StubVersion,
			Prefix:  "vue",
			Presets: map[string]*flatconfig.Preset{
				providers.VueRecommendedConfig: {Rules: flatconfig.Rules{
					"vue/multi-word-component-names": flatconfig.Error(),
					"vue/no-v-html":                  flatconfig.Warn(),
				}},
				providers.Vue2RecommendedConfig: {Rules: flatconfig.Rules{
					"vue/no-deprecated-filter": flatconfig.Off(),
				}},
			},
		},
		&registry.BuiltinSource{
			Package: providers.PackagePrettier,
			Version: StubVersion,
			Presets: map[string]*flatconfig.Preset{
				registry.RecommendedConfig: {Rules: flatconfig.Rules{
					"quotes":                      flatconfig.Off(),
					"indent":                      flatconfig.Off(),
					"unicorn/number-literal-case": flatconfig.Off(),
					"vue/html-indent":             flatconfig.Off(),
				}},
			},
		},
	}
}

// TestRegistry returns a registry holding Sources, closed when t ends.
// Packages listed in without are left out, to exercise missing sources.
func TestRegistry(t *testing.T, without ...string) *registry.Registry {
	t.Helper()

	skip := make(map[string]bool, len(without))
	for _, pkg := range without {
		skip[pkg] = true
	}

	r := registry.New(nil)
	for _, src := range Sources() {
		if !skip[src.PackageName()] {
			r.Register(src)
		}
	}
	t.Cleanup(r.Close)
	return r
}
