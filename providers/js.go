package providers

import (
	"context"

	"github.com/jokarl/flatlint/flatconfig"
	"github.com/jokarl/flatlint/registry"
)

var jsRules = flatconfig.Rules{
	"eqeqeq":           flatconfig.Error("smart"),
	"no-var":           flatconfig.Error(),
	"prefer-const":     flatconfig.Error(),
	"no-unused-vars":   flatconfig.Warn(map[string]any{"ignoreRestSiblings": true}),
	"object-shorthand": flatconfig.Warn("always"),
}

// JS builds the core javascript fragment.
func JS(ctx context.Context, l Loader, opts BaseOptions) (*flatconfig.Fragment, error) {
	_, rec, err := preset(ctx, l, PackageJS, registry.RecommendedConfig)
	if err != nil {
		return nil, err
	}

	return &flatconfig.Fragment{
		Name:  NameJS,
		Files: copyStrings(ScriptFiles),
		LanguageOptions: &flatconfig.LanguageOptions{
			EcmaVersion: "latest",
			SourceType:  "module",
		},
		Rules: flatconfig.MergeRules(rec.Rules, jsRules, opts.Overrides),
	}, nil
}
