package providers

import (
	"context"

	"github.com/jokarl/flatlint/flatconfig"
	"github.com/jokarl/flatlint/registry"
)

var jsxA11yRules = flatconfig.Rules{
	"jsx-a11y/no-autofocus": flatconfig.Warn(map[string]any{"ignoreNonDOM": true}),
}

// JSXA11y builds the accessibility fragment for JSX files.
func JSXA11y(ctx context.Context, l Loader, opts BaseOptions) (*flatconfig.Fragment, error) {
	src, rec, err := preset(ctx, l, PackageJSXA11y, registry.RecommendedConfig)
	if err != nil {
		return nil, err
	}
	ns, handle := plugin(src)

	return &flatconfig.Fragment{
		Name:    NameJSXA11y,
		Files:   copyStrings(JSXFiles),
		Plugins: map[string]flatconfig.PluginHandle{ns: handle},
		LanguageOptions: &flatconfig.LanguageOptions{
			ParserOptions: map[string]any{
				"ecmaFeatures": map[string]any{"jsx": true},
			},
		},
		Rules: flatconfig.MergeRules(rec.Rules, jsxA11yRules, opts.Overrides),
	}, nil
}
