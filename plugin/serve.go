// Package plugin serves and loads rule sources that run out of process.
//
// Plugins use this package to publish a RuleSource to flatlint. The Serve
// function is called from main() and handles all communication with the
// flatlint host process using gRPC via HashiCorp's go-plugin library.
//
// Example plugin main.go:
//
//	package main
//
//	import (
//	    "github.com/jokarl/flatlint/plugin"
//	    "github.com/jokarl/flatlint/registry"
//	)
//
//	func main() {
//	    plugin.Serve(&plugin.ServeOpts{
//	        Source: &registry.BuiltinSource{
//	            Package: "eslint-plugin-acme",
//	            Version: "1.2.0",
//	            Prefix:  "acme",
//	            Rules:   rules.Rules,
//	        },
//	    })
//	}
//
// The binary must be named after the package with the SourcePrefix, with
// "/" in scoped package names written as "__", for Discover to find it.
package plugin

import (
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	"github.com/jokarl/flatlint/registry"
)

// ServeOpts contains options for serving the plugin.
type ServeOpts struct {
	// Source is the plugin's rule source implementation.
	Source registry.RuleSource
}

// Serve starts the plugin server.
//
// The function blocks until the host disconnects. When invoked directly
// (outside of flatlint), the plugin prints a description and returns.
func Serve(opts *ServeOpts) {
	if opts == nil || opts.Source == nil {
		return
	}

	if os.Getenv(MagicCookieKey) != MagicCookieValue {
		printDirectInvocationMessage(opts.Source)
		return
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "plugin",
		Level:  hclog.Warn,
		Output: os.Stderr,
	})

	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins: map[string]plugin.Plugin{
			PluginName: &RuleSourcePlugin{Impl: opts.Source},
		},
		GRPCServer: plugin.DefaultGRPCServer,
		Logger:     logger,
	})
}

// printDirectInvocationMessage describes the source when the plugin is
// invoked directly instead of via flatlint.
func printDirectInvocationMessage(src registry.RuleSource) {
	os.Stderr.WriteString("This is a flatlint rule source plugin.\n\n")
	os.Stderr.WriteString("Package: " + src.PackageName() + "\n")
	os.Stderr.WriteString("Version: " + src.PackageVersion() + "\n")
	os.Stderr.WriteString("Presets:\n")
	for _, name := range src.ConfigNames() {
		os.Stderr.WriteString("  - " + name + "\n")
	}
	os.Stderr.WriteString("Rules:\n")
	for _, name := range src.RuleNames() {
		os.Stderr.WriteString("  - " + name + "\n")
	}
	os.Stderr.WriteString("\nInstall it next to other " + SourcePrefix + "* binaries in the flatlint plugin directory.\n")
}
