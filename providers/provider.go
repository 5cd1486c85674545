// Package providers builds one configuration fragment per feature.
//
// Every provider loads the rule sources it needs from a Loader, starts from
// the sources' recommended presets, layers the curated local rules on top
// and applies the caller's overrides last. Providers are independent of
// each other: anything one needs to know about another feature arrives as
// an explicit field of its options.
package providers

import (
	"context"
	"fmt"

	"github.com/jokarl/flatlint/flatconfig"
	"github.com/jokarl/flatlint/registry"
)

// Rule source packages loaded by the providers.
const (
	PackageJS            = "@eslint/js"
	PackageUnicorn       = "eslint-plugin-unicorn"
	PackageTS            = "typescript-eslint"
	PackageTSParser      = "@typescript-eslint/parser"
	PackageImport        = "eslint-plugin-import-x"
	PackageReact         = "eslint-plugin-react"
	PackageReactHooks    = "eslint-plugin-react-hooks"
	PackageReactRefresh  = "eslint-plugin-react-refresh"
	PackageReactCompiler = "eslint-plugin-react-compiler"
	PackageVitest        = "@vitest/eslint-plugin"
	PackageJSXA11y       = "eslint-plugin-jsx-a11y"
	PackageVue           = "eslint-plugin-vue"
	PackageVueParser     = "vue-eslint-parser"
	PackagePrettier      = "eslint-config-prettier"
)

// Fragment names.
const (
	NameIgnores       = "flatlint/ignores"
	NameJS            = "flatlint/js"
	NameUnicorn       = "flatlint/unicorn"
	NameTS            = "flatlint/ts"
	NameImport        = "flatlint/import"
	NameReact         = "flatlint/react"
	NameVitestGlobals = "flatlint/vitest-globals"
	NameJSXA11y       = "flatlint/jsx-a11y"
	NameVue           = "flatlint/vue"
	NamePrettier      = "flatlint/prettier"
)

// File globs.
var (
	// ScriptFiles matches every javascript and typescript module.
	ScriptFiles = []string{"**/*.?([cm])[jt]s?(x)"}
	// TSFiles matches typescript modules.
	TSFiles = []string{"**/*.?([cm])ts", "**/*.?([cm])tsx"}
	// JSXFiles matches files that may contain JSX.
	JSXFiles = []string{"**/*.?([cm])[jt]sx"}
	// VueFiles matches single-file components.
	VueFiles = []string{"**/*.vue"}
)

// Loader loads rule sources by package name. *registry.Registry implements it.
type Loader interface {
	Load(ctx context.Context, pkg string) (registry.RuleSource, error)
}

// BaseOptions are the options shared by every provider.
type BaseOptions struct {
	// Overrides are applied after every other rule layer.
	Overrides flatconfig.Rules
}

// preset loads pkg and returns its named preset.
func preset(ctx context.Context, l Loader, pkg, name string) (registry.RuleSource, *flatconfig.Preset, error) {
	src, err := l.Load(ctx, pkg)
	if err != nil {
		return nil, nil, err
	}
	p, err := src.Config(ctx, name)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", pkg, err)
	}
	return src, p, nil
}

// plugin returns the namespace and handle under which src is registered
// in a fragment's plugin map.
func plugin(src registry.RuleSource) (string, flatconfig.PluginHandle) {
	return src.Namespace(), registry.Handle(src)
}

func copyStrings(s []string) []string {
	return append([]string(nil), s...)
}
