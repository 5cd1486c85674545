package flatconfig

import (
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Setting is the configured state of a single rule.
//
// A Setting without Options renders as the bare level ("error"); with
// Options it renders in array form (["error", {...}]).
type Setting struct {
	// Level is the rule severity.
	Level Level
	// Options are rule-specific options following the level.
	Options []any
}

// Off returns a Setting that disables a rule.
func Off() Setting { return Setting{Level: OFF} }

// Warn returns a warning Setting with optional rule options.
func Warn(opts ...any) Setting { return Setting{Level: WARN, Options: opts} }

// Error returns an error Setting with optional rule options.
func Error(opts ...any) Setting { return Setting{Level: ERROR, Options: opts} }

// ParseSetting parses a rule setting from its loosely typed form: a level
// ("off", "warn", "error", 0, 1, 2) or a list whose first element is a level.
func ParseSetting(v any) (Setting, error) {
	switch t := v.(type) {
	case Setting:
		return t, nil
	case []any:
		if len(t) == 0 {
			return Setting{}, fmt.Errorf("empty rule setting")
		}
		level, err := ParseLevel(t[0])
		if err != nil {
			return Setting{}, err
		}
		s := Setting{Level: level}
		if len(t) > 1 {
			s.Options = append([]any(nil), t[1:]...)
		}
		return s, nil
	default:
		level, err := ParseLevel(v)
		if err != nil {
			return Setting{}, err
		}
		return Setting{Level: level}, nil
	}
}

// Value returns the loosely typed form of the setting.
func (s Setting) Value() any {
	if len(s.Options) == 0 {
		return s.Level.String()
	}
	out := make([]any, 0, len(s.Options)+1)
	out = append(out, s.Level.String())
	return append(out, s.Options...)
}

// MarshalJSON implements json.Marshaler.
func (s Setting) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Value())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Setting) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := ParseSetting(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (s Setting) MarshalYAML() (any, error) {
	return s.Value(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Setting) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	parsed, err := ParseSetting(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Rules maps qualified rule names (e.g. "react/jsx-key") to settings.
type Rules map[string]Setting

// ParseRules converts a loosely typed rule table into Rules.
func ParseRules(m map[string]any) (Rules, error) {
	rules := make(Rules, len(m))
	for name, v := range m {
		s, err := ParseSetting(v)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", name, err)
		}
		rules[name] = s
	}
	return rules, nil
}

// MergeRules merges rule tables into a new table. Later tables overwrite
// earlier ones key by key; settings are never merged recursively.
func MergeRules(layers ...Rules) Rules {
	total := 0
	for _, layer := range layers {
		total += len(layer)
	}

	out := make(Rules, total)
	for _, layer := range layers {
		for name, s := range layer {
			out[name] = s
		}
	}
	return out
}

// Names returns the rule names in sorted order.
func (r Rules) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a shallow copy of the table.
func (r Rules) Clone() Rules {
	if r == nil {
		return nil
	}
	return MergeRules(r)
}
