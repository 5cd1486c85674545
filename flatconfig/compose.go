package flatconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Source produces fragments to be appended to a configuration.
// Fragment, *Config, *Composer and SourceFunc implement it.
type Source interface {
	Resolve(ctx context.Context) ([]Fragment, error)
}

// SourceFunc adapts a function to a Source. Use it for fragments that are
// only available once some deferred work completes.
type SourceFunc func(ctx context.Context) ([]Fragment, error)

// Resolve calls f.
func (f SourceFunc) Resolve(ctx context.Context) ([]Fragment, error) {
	return f(ctx)
}

// Config is the composed, ordered configuration handed to the lint engine.
type Config struct {
	Fragments []Fragment
}

// Resolve returns the config's fragments so a Config can be nested into
// another composition.
func (c *Config) Resolve(_ context.Context) ([]Fragment, error) {
	if c == nil {
		return nil, nil
	}
	return append([]Fragment(nil), c.Fragments...), nil
}

// Names returns the fragment names in order.
func (c *Config) Names() []string {
	names := make([]string, len(c.Fragments))
	for i, f := range c.Fragments {
		names[i] = f.Name
	}
	return names
}

// Fragment returns the first fragment with the given name.
func (c *Config) Fragment(name string) (Fragment, bool) {
	for _, f := range c.Fragments {
		if f.Name == name {
			return f, true
		}
	}
	return Fragment{}, false
}

// MarshalJSON renders the config as a JSON array of fragments.
func (c *Config) MarshalJSON() ([]byte, error) {
	if c.Fragments == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.Fragments)
}

// MarshalYAML renders the config as a YAML sequence of fragments.
func (c *Config) MarshalYAML() (any, error) {
	if c.Fragments == nil {
		return []Fragment{}, nil
	}
	return c.Fragments, nil
}

// WriteJSON writes the config as indented JSON.
func (c *Config) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

// WriteYAML writes the config as YAML.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// Composer collects sources in order and flattens them into a Config.
// The zero value is ready to use.
type Composer struct {
	sources   []Source
	overrides []override
	removed   map[string]bool
}

type override struct {
	name string
	fn   func(*Fragment)
}

// NewComposer returns a Composer seeded with sources.
func NewComposer(sources ...Source) *Composer {
	c := &Composer{}
	return c.Append(sources...)
}

// Append adds sources after the existing ones. Nil sources are skipped.
func (c *Composer) Append(sources ...Source) *Composer {
	for _, s := range sources {
		if s == nil {
			continue
		}
		c.sources = append(c.sources, s)
	}
	return c
}

// Prepend adds sources before the existing ones.
func (c *Composer) Prepend(sources ...Source) *Composer {
	var head []Source
	for _, s := range sources {
		if s != nil {
			head = append(head, s)
		}
	}
	c.sources = append(head, c.sources...)
	return c
}

// Override registers fn to edit every fragment named name once resolved.
// Overrides run in registration order on a clone of the fragment, so fn
// may modify its slices and maps without touching the source. Rules is
// never nil inside fn.
func (c *Composer) Override(name string, fn func(*Fragment)) *Composer {
	c.overrides = append(c.overrides, override{name: name, fn: fn})
	return c
}

// Remove drops every fragment named name from the result.
func (c *Composer) Remove(name string) *Composer {
	if c.removed == nil {
		c.removed = make(map[string]bool)
	}
	c.removed[name] = true
	return c
}

// Resolve flattens the composer into fragments, so composers nest.
func (c *Composer) Resolve(ctx context.Context) ([]Fragment, error) {
	var out []Fragment
	for i, s := range c.sources {
		frags, err := s.Resolve(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolving source %d: %w", i, err)
		}
		for _, f := range frags {
			if c.removed[f.Name] {
				continue
			}
			cloned := false
			for _, o := range c.overrides {
				if o.name != f.Name {
					continue
				}
				if !cloned {
					f = f.Clone()
					if f.Rules == nil {
						f.Rules = Rules{}
					}
					cloned = true
				}
				o.fn(&f)
			}
			out = append(out, f)
		}
	}
	return out, nil
}

// Config resolves every source and returns the composed Config.
func (c *Composer) Config(ctx context.Context) (*Config, error) {
	frags, err := c.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	return &Config{Fragments: frags}, nil
}

// Compose builds a Config from built-in fragments, caller extras and a
// final fragment.
//
// Nil entries in builtins stand for disabled features and are dropped;
// the remaining order is preserved. Extras follow in the order given.
// last, when non-nil, is placed after everything else so its rule
// settings take precedence.
func Compose(ctx context.Context, builtins []*Fragment, extras []Source, last *Fragment) (*Config, error) {
	c := &Composer{}
	for _, f := range builtins {
		if f != nil {
			c.Append(*f)
		}
	}
	c.Append(extras...)
	if last != nil {
		c.Append(*last)
	}
	return c.Config(ctx)
}
