// Package registry provides the rule-source capability and the registry
// that features use to load them.
//
// A rule source stands in for an external lint plugin package: it knows
// its package name and version, the rule namespace it defines, and the
// named presets (such as "recommended") it publishes. Sources are either
// registered in-process or loaded lazily, for example from a plugin binary.
//
// Key types:
//   - RuleSource: Interface each rule-definition package implements
//   - Rule: A single rule definition with its recommended level
//   - DefaultRule: Embeddable struct providing default Rule methods
//   - BuiltinSource: Embeddable struct providing a static RuleSource
//   - Registry: Package name to source lookup with lazy loading
package registry

import (
	"context"

	"github.com/jokarl/flatlint/flatconfig"
)

// RuleSource is implemented by every rule-definition package.
//
// Sources typically embed BuiltinSource and override methods as needed.
//
// Example:
//
//	src := &registry.BuiltinSource{
//	    Package:   "eslint-plugin-react",
//	    Version:   "7.37.0",
//	    Namespace: "react",
//	    Rules:     []registry.Rule{&JSXKeyRule{}},
//	}
type RuleSource interface {
	// PackageName returns the package this source stands for.
	PackageName() string

	// PackageVersion returns the version of that package.
	PackageVersion() string

	// Namespace returns the rule prefix the plugin registers under
	// (e.g. "react"). Core rule sources return "".
	Namespace() string

	// VersionConstraint returns the flatlint version constraint (e.g. ">= 0.1.0").
	VersionConstraint() string

	// RuleNames returns the qualified names of all rules in this source.
	RuleNames() []string

	// ConfigNames returns the names of the presets this source publishes.
	ConfigNames() []string

	// Config returns the named preset.
	Config(ctx context.Context, name string) (*flatconfig.Preset, error)
}

// Rule is a single rule definition published by a source.
//
// Definitions typically embed DefaultRule to get Recommended() and Level().
type Rule interface {
	// Name returns the unqualified rule name (e.g. "jsx-key").
	Name() string

	// Recommended reports whether the rule belongs to the "recommended" preset.
	Recommended() bool

	// Level returns the level the rule has in the "recommended" preset.
	Level() flatconfig.Level

	// Link returns a URL to documentation about the rule.
	Link() string
}

// DefaultRule provides default implementations for optional Rule methods.
//
// With DefaultRule embedded, a rule is recommended at ERROR level.
type DefaultRule struct{}

// Recommended returns true.
func (DefaultRule) Recommended() bool {
	return true
}

// Level returns ERROR.
func (DefaultRule) Level() flatconfig.Level {
	return flatconfig.ERROR
}

// Link returns an empty link.
func (DefaultRule) Link() string {
	return ""
}

// Handle returns the plugin handle for a source.
func Handle(src RuleSource) flatconfig.PluginHandle {
	return flatconfig.PluginHandle{
		Package: src.PackageName(),
		Version: src.PackageVersion(),
	}
}

// Qualify prefixes a rule name with a namespace.
func Qualify(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "/" + name
}

// Def is a Rule defined as plain data. A Def is recommended when its
// Severity is above OFF.
type Def struct {
	// ID is the unqualified rule name.
	ID string
	// Severity is the level in the "recommended" preset.
	Severity flatconfig.Level
	// Docs is the documentation URL.
	Docs string
}

// Name returns the unqualified rule name.
func (d Def) Name() string { return d.ID }

// Recommended reports whether Severity is above OFF.
func (d Def) Recommended() bool { return d.Severity > flatconfig.OFF }

// Level returns Severity.
func (d Def) Level() flatconfig.Level { return d.Severity }

// Link returns Docs.
func (d Def) Link() string { return d.Docs }
