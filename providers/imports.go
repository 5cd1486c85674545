package providers

import (
	"context"

	"github.com/jokarl/flatlint/flatconfig"
	"github.com/jokarl/flatlint/registry"
)

// ImportTSConfig is the import plugin preset for typescript projects.
const ImportTSConfig = "typescript"

var importRules = flatconfig.Rules{
	"import-x/no-duplicates": flatconfig.Error(),
	"import-x/first":         flatconfig.Error(),
	"import-x/order":         flatconfig.Warn(map[string]any{"newlines-between": "never"}),
}

// ImportOptions configure the import provider.
type ImportOptions struct {
	BaseOptions
	// EnableTS reports whether the typescript feature is enabled, so module
	// resolution understands typescript files.
	EnableTS bool
}

// Import builds the import hygiene fragment.
func Import(ctx context.Context, l Loader, opts ImportOptions) (*flatconfig.Fragment, error) {
	src, rec, err := preset(ctx, l, PackageImport, registry.RecommendedConfig)
	if err != nil {
		return nil, err
	}
	ns, handle := plugin(src)

	layers := []flatconfig.Rules{rec.Rules}
	var settings map[string]any
	if opts.EnableTS {
		tsPreset, err := src.Config(ctx, ImportTSConfig)
		if err != nil {
			return nil, err
		}
		layers = append(layers, tsPreset.Rules)
		settings = map[string]any{
			ns + "/resolver": map[string]any{
				"typescript": true,
				"node":       true,
			},
			ns + "/extensions": []any{".js", ".jsx", ".ts", ".tsx"},
		}
	}
	layers = append(layers, importRules, opts.Overrides)

	return &flatconfig.Fragment{
		Name:     NameImport,
		Files:    copyStrings(ScriptFiles),
		Plugins:  map[string]flatconfig.PluginHandle{ns: handle},
		Settings: settings,
		Rules:    flatconfig.MergeRules(layers...),
	}, nil
}
