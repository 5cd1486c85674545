// Package flatconfig provides the types that make up a composed flat lint
// configuration.
//
// A configuration is an ordered list of named fragments. Each fragment
// carries the file globs it applies to, the plugins it needs, parser
// settings and a rule table. The consuming lint engine cascades fragments
// in order, so a later fragment's rule setting wins over an earlier one for
// the same rule name.
//
// Key types:
//   - Level: Rule severity levels (OFF, WARN, ERROR)
//   - Setting: A rule's level plus optional rule options
//   - Rules: Rule name to Setting table with shallow merge semantics
//   - Fragment: One named slice of configuration contributed by a feature
//   - Config: The ordered, composed result
//   - Composer: Builder for Config from fragments and nested sources
package flatconfig

import (
	"fmt"
	"strings"
)

// Level represents the severity level of a rule.
// Numeric values align with the lint engine's 0/1/2 shorthand.
type Level int

const (
	// OFF disables the rule.
	OFF Level = iota
	// WARN reports findings without failing the run.
	WARN
	// ERROR reports findings and fails the run.
	ERROR
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case OFF:
		return "off"
	case WARN:
		return "warn"
	case ERROR:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel parses a level from its string or numeric form.
func ParseLevel(v any) (Level, error) {
	switch t := v.(type) {
	case Level:
		return checkLevel(int(t))
	case string:
		switch strings.ToLower(t) {
		case "off":
			return OFF, nil
		case "warn":
			return WARN, nil
		case "error":
			return ERROR, nil
		}
		return OFF, fmt.Errorf("invalid rule level %q", t)
	case int:
		return checkLevel(t)
	case int64:
		return checkLevel(int(t))
	case float64:
		if t != float64(int(t)) {
			return OFF, fmt.Errorf("invalid rule level %v", t)
		}
		return checkLevel(int(t))
	default:
		return OFF, fmt.Errorf("invalid rule level of type %T", v)
	}
}

func checkLevel(n int) (Level, error) {
	if n < int(OFF) || n > int(ERROR) {
		return OFF, fmt.Errorf("invalid rule level %d", n)
	}
	return Level(n), nil
}
