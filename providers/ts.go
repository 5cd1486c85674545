package providers

import (
	"context"

	"github.com/jokarl/flatlint/flatconfig"
	"github.com/jokarl/flatlint/registry"
)

var tsRules = flatconfig.Rules{
	"no-unused-vars":                            flatconfig.Off(),
	"@typescript-eslint/no-unused-vars":         flatconfig.Warn(map[string]any{"ignoreRestSiblings": true}),
	"@typescript-eslint/consistent-type-imports": flatconfig.Error(),
	"@typescript-eslint/no-explicit-any":        flatconfig.Warn(),
}

// TSOptions configure the typescript provider.
type TSOptions struct {
	BaseOptions
	// Exts are extra file extensions the parser must accept (e.g. ".vue").
	Exts []string
	// Files are extra globs the fragment applies to (e.g. "**/*.vue").
	Files []string
	// ParseOptions are merged over the default parser options, key by key.
	ParseOptions map[string]any
}

// TS builds the typescript fragment.
func TS(ctx context.Context, l Loader, opts TSOptions) (*flatconfig.Fragment, error) {
	src, rec, err := preset(ctx, l, PackageTS, registry.RecommendedConfig)
	if err != nil {
		return nil, err
	}
	ns, handle := plugin(src)

	parserOptions := map[string]any{
		"sourceType": "module",
	}
	if len(opts.Exts) > 0 {
		exts := make([]any, len(opts.Exts))
		for i, ext := range opts.Exts {
			exts[i] = ext
		}
		parserOptions["extraFileExtensions"] = exts
	}
	for k, v := range opts.ParseOptions {
		parserOptions[k] = v
	}

	return &flatconfig.Fragment{
		Name:  NameTS,
		Files: append(copyStrings(TSFiles), opts.Files...),
		LanguageOptions: &flatconfig.LanguageOptions{
			Parser:        &flatconfig.PluginHandle{Package: PackageTSParser, Version: src.PackageVersion()},
			ParserOptions: parserOptions,
		},
		Plugins: map[string]flatconfig.PluginHandle{ns: handle},
		Rules:   flatconfig.MergeRules(rec.Rules, tsRules, opts.Overrides),
	}, nil
}
