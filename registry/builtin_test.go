package registry

import (
	"context"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jokarl/flatlint/flatconfig"
)

// testRule is a minimal rule for testing.
type testRule struct {
	DefaultRule
	name string
}

func (r *testRule) Name() string { return r.name }

func newTestSource() *BuiltinSource {
	return &BuiltinSource{
		Package: "eslint-plugin-test",
		Version: "1.2.3",
		Prefix:  "test",
		Rules: []Rule{
			&testRule{name: "rule-a"},
			Def{ID: "rule-b", Severity: flatconfig.WARN},
			Def{ID: "rule-c"},
		},
		Presets: map[string]*flatconfig.Preset{
			"strict": {Rules: flatconfig.Rules{"test/rule-c": flatconfig.Error()}},
		},
	}
}

func TestBuiltinSource_Metadata(t *testing.T) {
	src := newTestSource()
	if got := src.PackageName(); got != "eslint-plugin-test" {
		t.Errorf("PackageName() = %q", got)
	}
	if got := src.PackageVersion(); got != "1.2.3" {
		t.Errorf("PackageVersion() = %q", got)
	}
	if got := src.Namespace(); got != "test" {
		t.Errorf("Namespace() = %q", got)
	}
	want := flatconfig.PluginHandle{Package: "eslint-plugin-test", Version: "1.2.3"}
	if got := Handle(src); got != want {
		t.Errorf("Handle() = %v, want %v", got, want)
	}
}

func TestBuiltinSource_VersionConstraint_Default(t *testing.T) {
	src := &BuiltinSource{}
	if got := src.VersionConstraint(); got != ">= 0.1.0" {
		t.Errorf("VersionConstraint() = %q, want %q", got, ">= 0.1.0")
	}
}

func TestBuiltinSource_RuleNames(t *testing.T) {
	got := newTestSource().RuleNames()
	want := []string{"test/rule-a", "test/rule-b", "test/rule-c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RuleNames() = %v, want %v", got, want)
	}
}

func TestBuiltinSource_ConfigNames(t *testing.T) {
	got := newTestSource().ConfigNames()
	want := []string{"recommended", "strict"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ConfigNames() = %v, want %v", got, want)
	}
}

func TestBuiltinSource_RecommendedFromRules(t *testing.T) {
	p, err := newTestSource().Config(context.Background(), RecommendedConfig)
	if err != nil {
		t.Fatalf("Config() = %v", err)
	}

	want := flatconfig.Rules{
		"test/rule-a": flatconfig.Error(),
		"test/rule-b": flatconfig.Warn(),
	}
	if diff := cmp.Diff(want, p.Rules); diff != "" {
		t.Errorf("recommended mismatch (-want +got):\n%s", diff)
	}
}

func TestBuiltinSource_PresetIsCopy(t *testing.T) {
	src := newTestSource()
	p, err := src.Config(context.Background(), "strict")
	if err != nil {
		t.Fatalf("Config() = %v", err)
	}
	p.Rules["test/rule-c"] = flatconfig.Off()

	again, _ := src.Config(context.Background(), "strict")
	if again.Rules["test/rule-c"].Level != flatconfig.ERROR {
		t.Error("Config() returned a preset sharing state with the source")
	}
}

func TestBuiltinSource_UnknownConfig(t *testing.T) {
	if _, err := newTestSource().Config(context.Background(), "nope"); err == nil {
		t.Error("Config(nope) = nil error, want error")
	}
}

func TestBuiltinSource_GetRule(t *testing.T) {
	src := newTestSource()
	if r := src.GetRule("rule-b"); r == nil || r.Level() != flatconfig.WARN {
		t.Errorf("GetRule(rule-b) = %v", r)
	}
	if r := src.GetRule("missing"); r != nil {
		t.Errorf("GetRule(missing) = %v, want nil", r)
	}
}

func TestQualify(t *testing.T) {
	if got := Qualify("", "eqeqeq"); got != "eqeqeq" {
		t.Errorf("Qualify() = %q", got)
	}
	if got := Qualify("react", "jsx-key"); got != "react/jsx-key" {
		t.Errorf("Qualify() = %q", got)
	}
}
