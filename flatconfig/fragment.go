package flatconfig

import "context"

// GlobalAccess declares whether a global variable may be reassigned.
type GlobalAccess string

const (
	// Readonly globals may be read but not assigned.
	Readonly GlobalAccess = "readonly"
	// Writable globals may be reassigned.
	Writable GlobalAccess = "writable"
)

// PluginHandle identifies a lint plugin or parser package the engine loads.
type PluginHandle struct {
	// Package is the package the engine imports (e.g. "eslint-plugin-react").
	Package string `json:"package" yaml:"package"`
	// Version is the package version the rule source was built from.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

// LanguageOptions configures parsing for the files a fragment matches.
type LanguageOptions struct {
	// EcmaVersion is the syntax version ("latest" or a year).
	EcmaVersion string `json:"ecmaVersion,omitempty" yaml:"ecmaVersion,omitempty"`
	// SourceType is "module", "script" or "commonjs".
	SourceType string `json:"sourceType,omitempty" yaml:"sourceType,omitempty"`
	// Parser is the custom parser package, if any.
	Parser *PluginHandle `json:"parser,omitempty" yaml:"parser,omitempty"`
	// ParserOptions are passed through to the parser.
	ParserOptions map[string]any `json:"parserOptions,omitempty" yaml:"parserOptions,omitempty"`
	// Globals declares predefined global variables.
	Globals map[string]GlobalAccess `json:"globals,omitempty" yaml:"globals,omitempty"`
}

// Fragment is one named slice of configuration contributed by one feature.
type Fragment struct {
	// Name identifies the fragment.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Files are the globs the fragment applies to. Empty means all files.
	Files []string `json:"files,omitempty" yaml:"files,omitempty"`
	// Ignores are globs excluded from linting. A fragment carrying only
	// Ignores acts as a global ignore list.
	Ignores []string `json:"ignores,omitempty" yaml:"ignores,omitempty"`
	// LanguageOptions configures parsing.
	LanguageOptions *LanguageOptions `json:"languageOptions,omitempty" yaml:"languageOptions,omitempty"`
	// Plugins maps rule namespaces to the plugin packages defining them.
	Plugins map[string]PluginHandle `json:"plugins,omitempty" yaml:"plugins,omitempty"`
	// Settings are shared settings read by plugins (e.g. react.version).
	Settings map[string]any `json:"settings,omitempty" yaml:"settings,omitempty"`
	// Rules are the rule settings.
	Rules Rules `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// Resolve returns the fragment itself, so a Fragment can be appended
// wherever a Source is expected.
func (f Fragment) Resolve(_ context.Context) ([]Fragment, error) {
	return []Fragment{f}, nil
}

// Clone returns a copy of f whose slices and maps can be modified without
// affecting f. Values nested inside Settings and parser options are shared.
func (f Fragment) Clone() Fragment {
	f.Files = cloneSlice(f.Files)
	f.Ignores = cloneSlice(f.Ignores)
	f.Plugins = cloneMap(f.Plugins)
	f.Settings = cloneMap(f.Settings)
	f.Rules = f.Rules.Clone()
	if f.LanguageOptions != nil {
		lo := *f.LanguageOptions
		if lo.Parser != nil {
			parser := *lo.Parser
			lo.Parser = &parser
		}
		lo.ParserOptions = cloneMap(lo.ParserOptions)
		lo.Globals = cloneMap(lo.Globals)
		f.LanguageOptions = &lo
	}
	return f
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append([]T(nil), s...)
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Preset is a named rule table published by a rule source, such as a
// plugin's "recommended" configuration.
type Preset struct {
	// Rules are the preset's rule settings.
	Rules Rules
	// Globals are globals the preset declares.
	Globals map[string]GlobalAccess
}
