// Package plugin serves and loads rule sources that run out of process.
//
// This file finds rule source plugin binaries and registers them with a
// registry.Registry as lazy loaders. A plugin process is only started when
// a provider first loads its package.

package plugin

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	"github.com/jokarl/flatlint/registry"
)

// SourcePrefix is the file name prefix of rule source plugin binaries.
const SourcePrefix = "flatlint-source-"

// PackageName returns the package a plugin binary stands for, or "" when
// file is not a plugin binary name. "__" maps to "/", so
// "flatlint-source-@vitest__eslint-plugin" serves "@vitest/eslint-plugin".
func PackageName(file string) string {
	name := strings.TrimSuffix(filepath.Base(file), ".exe")
	if !strings.HasPrefix(name, SourcePrefix) {
		return ""
	}
	return strings.ReplaceAll(strings.TrimPrefix(name, SourcePrefix), "__", "/")
}

// Discover registers a lazy loader with reg for every plugin binary in dir
// and returns the discovered package names in sorted order. A missing dir
// is not an error. Started plugin processes are killed by reg.Close.
func Discover(dir string, reg *registry.Registry, logger hclog.Logger) ([]string, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading plugin dir: %w", err)
	}

	var found []string
	for _, e := range entries {
		pkg := PackageName(e.Name())
		if pkg == "" || e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("reading plugin dir: %w", err)
		}
		if info.Mode()&0o111 == 0 {
			logger.Warn("skipping non-executable plugin", "path", e.Name())
			continue
		}

		path := filepath.Join(dir, e.Name())
		logger.Debug("discovered rule source plugin", "package", pkg, "path", path)
		reg.RegisterLoader(pkg, launcher(path, reg, logger))
		found = append(found, pkg)
	}
	sort.Strings(found)
	return found, nil
}

// launcher returns a loader that starts the plugin at path and dispenses
// its rule source.
func launcher(path string, reg *registry.Registry, logger hclog.Logger) registry.Loader {
	return func(ctx context.Context) (registry.RuleSource, error) {
		client := plugin.NewClient(&plugin.ClientConfig{
			HandshakeConfig:  Handshake,
			Plugins:          PluginMap,
			Cmd:              exec.Command(path),
			AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
			Logger:           logger.Named("plugin"),
		})

		src, err := dispense(ctx, client, path)
		if err != nil {
			// The registry retries failed loads with a fresh process.
			client.Kill()
			return nil, err
		}
		reg.OnClose(client.Kill)
		return src, nil
	}
}

func dispense(ctx context.Context, client *plugin.Client, path string) (registry.RuleSource, error) {
	rpc, err := client.Client()
	if err != nil {
		return nil, fmt.Errorf("starting %s: %w", path, err)
	}
	raw, err := rpc.Dispense(PluginName)
	if err != nil {
		return nil, fmt.Errorf("dispensing %s: %w", path, err)
	}
	c, ok := raw.(*GRPCRuleSourceClient)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected plugin type %T", path, raw)
	}
	return c.Source(ctx)
}
