// Package probe answers whether an optional package is present in the host
// project. Feature defaults are computed from these answers.
package probe

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Probe reports whether a package is present.
type Probe interface {
	Exists(name string) bool
}

// Func adapts a function to a Probe.
type Func func(name string) bool

// Exists calls f.
func (f Func) Exists(name string) bool { return f(name) }

// Static is a fixed set of present packages.
type Static map[string]bool

// Exists reports whether name is in the set.
func (s Static) Exists(name string) bool { return s[name] }

// Packages returns a Static probe containing names.
func Packages(names ...string) Static {
	s := make(Static, len(names))
	for _, name := range names {
		s[name] = true
	}
	return s
}

// None is a probe that finds nothing.
var None Probe = Static(nil)

// Any reports a package present if any of probes does.
func Any(probes ...Probe) Probe {
	return Func(func(name string) bool {
		for _, p := range probes {
			if p != nil && p.Exists(name) {
				return true
			}
		}
		return false
	})
}

// NodeModules resolves packages the way the node module loader does:
// starting at Dir and walking up to the filesystem root, a package is
// present if node_modules/<name>/package.json exists in any ancestor.
type NodeModules struct {
	// Dir is the directory resolution starts from.
	Dir string
}

// Exists reports whether name resolves from Dir.
func (n NodeModules) Exists(name string) bool {
	dir, err := filepath.Abs(n.Dir)
	if err != nil {
		return false
	}
	for {
		manifest := filepath.Join(dir, "node_modules", filepath.FromSlash(name), "package.json")
		if info, err := os.Stat(manifest); err == nil && !info.IsDir() {
			return true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		dir = parent
	}
}

// Manifest is a probe over the dependency sections of a package.json.
type Manifest struct {
	deps map[string]string
}

type manifestFile struct {
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	PeerDependencies     map[string]string `json:"peerDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
}

// LoadManifest reads the package.json at path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseManifest(data)
}

// ParseManifest parses package.json content.
func ParseManifest(data []byte) (*Manifest, error) {
	var f manifestFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing package.json: %w", err)
	}

	m := &Manifest{deps: make(map[string]string)}
	for _, section := range []map[string]string{
		f.OptionalDependencies,
		f.PeerDependencies,
		f.DevDependencies,
		f.Dependencies,
	} {
		for name, version := range section {
			m.deps[name] = version
		}
	}
	return m, nil
}

// Exists reports whether name is declared in any dependency section.
func (m *Manifest) Exists(name string) bool {
	_, ok := m.deps[name]
	return ok
}

// Version returns the declared version range for name.
func (m *Manifest) Version(name string) (string, bool) {
	v, ok := m.deps[name]
	return v, ok
}

// Detect returns the probe used when none is configured: packages
// installed under dir, or declared in dir/package.json.
func Detect(dir string) Probe {
	probes := []Probe{NodeModules{Dir: dir}}
	if m, err := LoadManifest(filepath.Join(dir, "package.json")); err == nil {
		probes = append(probes, m)
	}
	return Any(probes...)
}
