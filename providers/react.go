package providers

import (
	"context"

	"github.com/jokarl/flatlint/flatconfig"
	"github.com/jokarl/flatlint/registry"
)

// ReactJSXRuntimeConfig is the react preset for the automatic JSX runtime.
const ReactJSXRuntimeConfig = "jsx-runtime"

var reactRules = flatconfig.Rules{
	"react/prop-types":                     flatconfig.Off(),
	"react/react-in-jsx-scope":             flatconfig.Off(),
	"react/self-closing-comp":              flatconfig.Warn(),
	"react-refresh/only-export-components": flatconfig.Warn(map[string]any{"allowConstantExport": true}),
}

// ReactOptions configure the react provider.
type ReactOptions struct {
	BaseOptions
	// Version is written to settings.react.version. "detect" lets the
	// plugin read the installed react version.
	Version string
	// Compiler adds the react-compiler plugin and its rule.
	Compiler bool
}

// React builds the react fragment. The hooks and refresh plugins are
// bundled into the same fragment.
func React(ctx context.Context, l Loader, opts ReactOptions) (*flatconfig.Fragment, error) {
	react, rec, err := preset(ctx, l, PackageReact, registry.RecommendedConfig)
	if err != nil {
		return nil, err
	}
	runtime, err := react.Config(ctx, ReactJSXRuntimeConfig)
	if err != nil {
		return nil, err
	}
	hooks, hooksRec, err := preset(ctx, l, PackageReactHooks, registry.RecommendedConfig)
	if err != nil {
		return nil, err
	}
	refresh, err := l.Load(ctx, PackageReactRefresh)
	if err != nil {
		return nil, err
	}

	plugins := make(map[string]flatconfig.PluginHandle)
	for _, src := range []registry.RuleSource{react, hooks, refresh} {
		ns, handle := plugin(src)
		plugins[ns] = handle
	}

	layers := []flatconfig.Rules{rec.Rules, runtime.Rules, hooksRec.Rules, reactRules}
	if opts.Compiler {
		compiler, err := l.Load(ctx, PackageReactCompiler)
		if err != nil {
			return nil, err
		}
		ns, handle := plugin(compiler)
		plugins[ns] = handle
		layers = append(layers, flatconfig.Rules{
			registry.Qualify(ns, "react-compiler"): flatconfig.Error(),
		})
	}
	layers = append(layers, opts.Overrides)

	version := opts.Version
	if version == "" {
		version = "detect"
	}

	return &flatconfig.Fragment{
		Name:    NameReact,
		Files:   copyStrings(ScriptFiles),
		Plugins: plugins,
		Settings: map[string]any{
			"react": map[string]any{"version": version},
		},
		LanguageOptions: &flatconfig.LanguageOptions{
			EcmaVersion: "latest",
			SourceType:  "module",
			ParserOptions: map[string]any{
				"ecmaFeatures": map[string]any{"jsx": true},
			},
		},
		Rules: flatconfig.MergeRules(layers...),
	}, nil
}
