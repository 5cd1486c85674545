// Package options resolves the caller's feature toggles into fully
// populated per-feature options.
//
// Every feature is toggled by a Feature value, which is either unset (the
// feature default applies), disabled, or enabled with feature-specific
// fields and rule overrides. Resolve turns a Feature into a
// ResolvedOption whose Overrides is never nil.
package options

import "github.com/jokarl/flatlint/flatconfig"

type state uint8

const (
	stateUnset state = iota
	stateDisabled
	stateEnabled
)

// Feature toggles one feature. The zero value is unset.
type Feature[T any] struct {
	state     state
	fields    T
	overrides flatconfig.Rules
}

// Enabled returns an enabled feature carrying fields.
func Enabled[T any](fields T) Feature[T] {
	return Feature[T]{state: stateEnabled, fields: fields}
}

// Disabled returns a disabled feature.
func Disabled[T any]() Feature[T] {
	return Feature[T]{state: stateDisabled}
}

// Bool returns an enabled feature with zero fields, or a disabled one.
func Bool[T any](enable bool) Feature[T] {
	if enable {
		return Feature[T]{state: stateEnabled}
	}
	return Disabled[T]()
}

// Record returns a feature built from an explicit options record.
func Record[T any](enable bool, fields T, overrides flatconfig.Rules) Feature[T] {
	f := Bool[T](enable)
	f.fields = fields
	f.overrides = overrides
	return f
}

// WithOverrides returns f with caller rule overrides attached. An unset
// feature becomes enabled, as a record without an explicit enable flag is.
func (f Feature[T]) WithOverrides(overrides flatconfig.Rules) Feature[T] {
	if f.state == stateUnset {
		f.state = stateEnabled
	}
	f.overrides = overrides
	return f
}

// IsSet reports whether the caller configured the feature.
func (f Feature[T]) IsSet() bool {
	return f.state != stateUnset
}

// Fields returns the feature-specific fields.
func (f Feature[T]) Fields() T {
	return f.fields
}

// ResolvedOption is a feature toggle with every field populated.
type ResolvedOption[T any] struct {
	// Enabled reports whether the feature contributes a fragment.
	Enabled bool
	// Overrides are caller rule settings applied last. Never nil.
	Overrides flatconfig.Rules
	// Fields are the feature-specific fields.
	Fields T
}

// Resolve normalizes f. An unset feature resolves to defaultEnabled.
func Resolve[T any](f Feature[T], defaultEnabled bool) ResolvedOption[T] {
	r := ResolvedOption[T]{
		Enabled:   defaultEnabled,
		Overrides: flatconfig.MergeRules(f.overrides),
		Fields:    f.fields,
	}
	switch f.state {
	case stateEnabled:
		r.Enabled = true
	case stateDisabled:
		r.Enabled = false
	}
	return r
}
