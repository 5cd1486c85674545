package providers

import (
	"context"

	"github.com/jokarl/flatlint/flatconfig"
	"github.com/jokarl/flatlint/registry"
)

var unicornRules = flatconfig.Rules{
	"unicorn/filename-case":          flatconfig.Off(),
	"unicorn/prevent-abbreviations":  flatconfig.Off(),
	"unicorn/no-null":                flatconfig.Off(),
	"unicorn/no-array-reduce":        flatconfig.Off(),
	"unicorn/prefer-top-level-await": flatconfig.Warn(),
}

// Unicorn builds the unicorn fragment.
func Unicorn(ctx context.Context, l Loader, opts BaseOptions) (*flatconfig.Fragment, error) {
	src, rec, err := preset(ctx, l, PackageUnicorn, registry.RecommendedConfig)
	if err != nil {
		return nil, err
	}
	ns, handle := plugin(src)

	return &flatconfig.Fragment{
		Name:    NameUnicorn,
		Files:   copyStrings(ScriptFiles),
		Plugins: map[string]flatconfig.PluginHandle{ns: handle},
		Rules:   flatconfig.MergeRules(rec.Rules, unicornRules, opts.Overrides),
	}, nil
}
