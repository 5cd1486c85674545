package registry

import (
	"context"
	"fmt"
	"sort"

	"github.com/jokarl/flatlint/flatconfig"
)

// RecommendedConfig is the preset every source publishes.
const RecommendedConfig = "recommended"

// BuiltinSource provides a static RuleSource.
//
// The "recommended" preset is derived from Rules unless Presets defines it
// explicitly. Other presets come from Presets.
type BuiltinSource struct {
	// Package is the package name (e.g. "eslint-plugin-react").
	Package string
	// Version is the package version.
	Version string
	// Prefix is the rule namespace (e.g. "react").
	Prefix string
	// Constraint is the flatlint version constraint (e.g. ">= 0.1.0").
	Constraint string
	// Rules is the list of rule definitions.
	Rules []Rule
	// Presets are additional named presets, keyed by name.
	Presets map[string]*flatconfig.Preset
}

// PackageName returns the package name.
func (s *BuiltinSource) PackageName() string {
	return s.Package
}

// PackageVersion returns the package version.
func (s *BuiltinSource) PackageVersion() string {
	return s.Version
}

// Namespace returns the rule prefix.
func (s *BuiltinSource) Namespace() string {
	return s.Prefix
}

// VersionConstraint returns the flatlint version constraint.
func (s *BuiltinSource) VersionConstraint() string {
	if s.Constraint == "" {
		return ">= 0.1.0"
	}
	return s.Constraint
}

// RuleNames returns the qualified names of all rules.
func (s *BuiltinSource) RuleNames() []string {
	names := make([]string, len(s.Rules))
	for i, rule := range s.Rules {
		names[i] = Qualify(s.Prefix, rule.Name())
	}
	return names
}

// ConfigNames returns the preset names in sorted order.
func (s *BuiltinSource) ConfigNames() []string {
	names := []string{RecommendedConfig}
	for name := range s.Presets {
		if name != RecommendedConfig {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Config returns the named preset. The result is a copy the caller may modify.
func (s *BuiltinSource) Config(_ context.Context, name string) (*flatconfig.Preset, error) {
	if p, ok := s.Presets[name]; ok {
		return clonePreset(p), nil
	}
	if name != RecommendedConfig {
		return nil, fmt.Errorf("%s: unknown config %q", s.Package, name)
	}

	rules := make(flatconfig.Rules)
	for _, rule := range s.Rules {
		if rule.Recommended() {
			rules[Qualify(s.Prefix, rule.Name())] = flatconfig.Setting{Level: rule.Level()}
		}
	}
	return &flatconfig.Preset{Rules: rules}, nil
}

// GetRule returns a rule by unqualified name, or nil if not found.
func (s *BuiltinSource) GetRule(name string) Rule {
	for _, rule := range s.Rules {
		if rule.Name() == name {
			return rule
		}
	}
	return nil
}

func clonePreset(p *flatconfig.Preset) *flatconfig.Preset {
	out := &flatconfig.Preset{Rules: flatconfig.MergeRules(p.Rules)}
	if p.Globals != nil {
		out.Globals = make(map[string]flatconfig.GlobalAccess, len(p.Globals))
		for k, v := range p.Globals {
			out.Globals[k] = v
		}
	}
	return out
}
