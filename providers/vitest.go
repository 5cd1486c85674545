package providers

import (
	"context"

	"github.com/jokarl/flatlint/flatconfig"
)

// VitestEnvConfig is the vitest preset declaring the test globals.
const VitestEnvConfig = "env"

// VitestGlobals builds the fragment declaring vitest's global test API.
func VitestGlobals(ctx context.Context, l Loader, opts BaseOptions) (*flatconfig.Fragment, error) {
	_, env, err := preset(ctx, l, PackageVitest, VitestEnvConfig)
	if err != nil {
		return nil, err
	}

	return &flatconfig.Fragment{
		Name: NameVitestGlobals,
		LanguageOptions: &flatconfig.LanguageOptions{
			Globals: env.Globals,
		},
		Rules: flatconfig.MergeRules(env.Rules, opts.Overrides),
	}, nil
}
