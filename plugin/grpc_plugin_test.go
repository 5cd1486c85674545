package plugin

import (
	"context"
	"net"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/jokarl/flatlint/flatconfig"
	"github.com/jokarl/flatlint/registry"
)

func acmeSource() *registry.BuiltinSource {
	return &registry.BuiltinSource{
		Package: "eslint-plugin-acme",
		Version: "1.2.0",
		Prefix:  "acme",
		Rules: []registry.Rule{
			registry.Def{ID: "no-foo", Severity: flatconfig.ERROR},
			registry.Def{ID: "no-bar", Severity: flatconfig.WARN},
			registry.Def{ID: "prefer-baz"},
		},
		Presets: map[string]*flatconfig.Preset{
			"flat/strict": {
				Rules: flatconfig.Rules{
					"acme/no-foo":     flatconfig.Error(map[string]any{"allow": []any{"foo"}}),
					"acme/prefer-baz": flatconfig.Warn(2),
				},
				Globals: map[string]flatconfig.GlobalAccess{"acme": flatconfig.Readonly},
			},
		},
	}
}

// dialSource serves src over an in-memory connection and returns a client.
func dialSource(t *testing.T, src registry.RuleSource) *GRPCRuleSourceClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	if err := (&RuleSourcePlugin{Impl: src}).GRPCServer(nil, s); err != nil {
		t.Fatalf("GRPCServer() = %v", err)
	}
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("NewClient() = %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	raw, err := (&RuleSourcePlugin{}).GRPCClient(context.Background(), nil, conn)
	if err != nil {
		t.Fatalf("GRPCClient() = %v", err)
	}
	return raw.(*GRPCRuleSourceClient)
}

func TestGRPCServer_NoImpl(t *testing.T) {
	if err := (&RuleSourcePlugin{}).GRPCServer(nil, grpc.NewServer()); err == nil {
		t.Fatal("GRPCServer() = nil error without a source")
	}
}

func TestGRPCRuleSourceClient_Describe(t *testing.T) {
	client := dialSource(t, acmeSource())

	got, err := client.Describe(context.Background())
	if err != nil {
		t.Fatalf("Describe() = %v", err)
	}

	want := &Description{
		Package:    "eslint-plugin-acme",
		Version:    "1.2.0",
		Namespace:  "acme",
		Constraint: ">= 0.1.0",
		Rules:      []string{"acme/no-foo", "acme/no-bar", "acme/prefer-baz"},
		Configs:    []string{"flat/strict", registry.RecommendedConfig},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Describe() mismatch (-want +got):\n%s", diff)
	}
}

func TestGRPCRuleSourceClient_Config(t *testing.T) {
	client := dialSource(t, acmeSource())

	tests := []struct {
		name string
		want *flatconfig.Preset
	}{
		{
			name: registry.RecommendedConfig,
			want: &flatconfig.Preset{Rules: flatconfig.Rules{
				"acme/no-foo": flatconfig.Error(),
				"acme/no-bar": flatconfig.Warn(),
			}},
		},
		{
			// Numbers come back as float64, as from any JSON config.
			name: "flat/strict",
			want: &flatconfig.Preset{
				Rules: flatconfig.Rules{
					"acme/no-foo":     flatconfig.Error(map[string]any{"allow": []any{"foo"}}),
					"acme/prefer-baz": flatconfig.Warn(float64(2)),
				},
				Globals: map[string]flatconfig.GlobalAccess{"acme": flatconfig.Readonly},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := client.Config(context.Background(), tt.name)
			if err != nil {
				t.Fatalf("Config(%q) = %v", tt.name, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Config(%q) mismatch (-want +got):\n%s", tt.name, diff)
			}
		})
	}
}

func TestGRPCRuleSourceClient_UnknownConfig(t *testing.T) {
	client := dialSource(t, acmeSource())

	_, err := client.Config(context.Background(), "flat/missing")
	if err == nil {
		t.Fatal("Config() = nil error for unknown preset")
	}
	if !strings.Contains(err.Error(), "flat/missing") {
		t.Errorf("Config() error = %v, want it to name the preset", err)
	}
}

func TestRemoteSource_ThroughRegistry(t *testing.T) {
	client := dialSource(t, acmeSource())

	reg := registry.New(nil)
	reg.RegisterLoader("eslint-plugin-acme", client.Source)

	src, err := reg.Load(context.Background(), "eslint-plugin-acme")
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if got := src.Namespace(); got != "acme" {
		t.Errorf("Namespace() = %q, want acme", got)
	}
	if got := src.PackageVersion(); got != "1.2.0" {
		t.Errorf("PackageVersion() = %q, want 1.2.0", got)
	}

	preset, err := src.Config(context.Background(), registry.RecommendedConfig)
	if err != nil {
		t.Fatalf("Config() = %v", err)
	}
	if got := preset.Rules["acme/no-foo"].Level; got != flatconfig.ERROR {
		t.Errorf("acme/no-foo = %v, want error", got)
	}
}

func TestRemoteSource_IncompatibleHost(t *testing.T) {
	src := acmeSource()
	src.Constraint = ">= 99.0.0"
	client := dialSource(t, src)

	reg := registry.New(nil)
	reg.RegisterLoader("eslint-plugin-acme", client.Source)

	if _, err := reg.Load(context.Background(), "eslint-plugin-acme"); err == nil {
		t.Fatal("Load() = nil error for an incompatible plugin")
	}
}
