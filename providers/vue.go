package providers

import (
	"context"
	"fmt"

	"github.com/jokarl/flatlint/flatconfig"
)

// Vue presets by major version.
const (
	VueRecommendedConfig  = "flat/recommended"
	Vue2RecommendedConfig = "flat/vue2-recommended"
)

var vueRules = flatconfig.Rules{
	"vue/multi-word-component-names": flatconfig.Off(),
	"vue/block-order":                flatconfig.Warn(map[string]any{"order": []any{"script", "template", "style"}}),
}

// VueOptions configure the vue provider.
type VueOptions struct {
	BaseOptions
	// Version is the vue major version, 2 or 3. Zero means 3.
	Version int
	// EnableTS reports whether the typescript feature is enabled, so
	// script blocks are parsed as typescript.
	EnableTS bool
}

// Vue builds the single-file-component fragment.
func Vue(ctx context.Context, l Loader, opts VueOptions) (*flatconfig.Fragment, error) {
	version := opts.Version
	if version == 0 {
		version = 3
	}
	var name string
	switch version {
	case 2:
		name = Vue2RecommendedConfig
	case 3:
		name = VueRecommendedConfig
	default:
		return nil, fmt.Errorf("vue: unsupported version %d", version)
	}

	src, rec, err := preset(ctx, l, PackageVue, name)
	if err != nil {
		return nil, err
	}
	ns, handle := plugin(src)

	parserOptions := map[string]any{
		"sourceType":   "module",
		"ecmaFeatures": map[string]any{"jsx": true},
	}
	if opts.EnableTS {
		parserOptions["parser"] = PackageTSParser
		parserOptions["extraFileExtensions"] = []any{".vue"}
	}

	return &flatconfig.Fragment{
		Name:    NameVue,
		Files:   copyStrings(VueFiles),
		Plugins: map[string]flatconfig.PluginHandle{ns: handle},
		Settings: map[string]any{
			"vue": map[string]any{"version": version},
		},
		LanguageOptions: &flatconfig.LanguageOptions{
			Parser:        &flatconfig.PluginHandle{Package: PackageVueParser},
			ParserOptions: parserOptions,
		},
		Rules: flatconfig.MergeRules(rec.Rules, vueRules, opts.Overrides),
	}, nil
}
