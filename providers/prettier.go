package providers

import (
	"context"

	"github.com/jokarl/flatlint/flatconfig"
	"github.com/jokarl/flatlint/registry"
)

// Prettier builds the fragment that turns off every stylistic rule an
// auto-formatter would conflict with. It must be composed last.
func Prettier(ctx context.Context, l Loader, opts BaseOptions) (*flatconfig.Fragment, error) {
	_, rec, err := preset(ctx, l, PackagePrettier, registry.RecommendedConfig)
	if err != nil {
		return nil, err
	}

	return &flatconfig.Fragment{
		Name:  NamePrettier,
		Rules: flatconfig.MergeRules(rec.Rules, opts.Overrides),
	}, nil
}
