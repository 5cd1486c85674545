package helper

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/jokarl/flatlint/flatconfig"
)

// AssertFragmentNames compares the fragment names of cfg, in order.
//
// Example:
//
//	helper.AssertFragmentNames(t, []string{
//	    providers.NameIgnores,
//	    providers.NameJS,
//	}, cfg)
func AssertFragmentNames(t *testing.T, want []string, cfg *flatconfig.Config) {
	t.Helper()

	if diff := cmp.Diff(want, cfg.Names(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("fragment names mismatch (-want +got):\n%s", diff)
	}
}

// AssertRules checks that every rule in want is present in got with an
// equal setting. Rules in got that are not in want are ignored.
func AssertRules(t *testing.T, want, got flatconfig.Rules) {
	t.Helper()

	subset := make(flatconfig.Rules, len(want))
	for name := range want {
		if s, ok := got[name]; ok {
			subset[name] = s
		}
	}
	if diff := cmp.Diff(want, subset, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("rules mismatch (-want +got):\n%s", diff)
	}
}

// AssertConfigEqual compares two configurations structurally.
func AssertConfigEqual(t *testing.T, want, got *flatconfig.Config) {
	t.Helper()

	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

// MustFragment returns the fragment named name, failing the test if absent.
func MustFragment(t *testing.T, cfg *flatconfig.Config, name string) flatconfig.Fragment {
	t.Helper()

	f, ok := cfg.Fragment(name)
	if !ok {
		t.Fatalf("fragment %q not found in %v", name, cfg.Names())
	}
	return f
}
