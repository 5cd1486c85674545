// Package plugin serves and loads rule sources that run out of process.
//
// This file implements the go-plugin GRPCPlugin interface, which bridges
// registry.RuleSource with gRPC. The service is declared by hand and its
// messages are protobuf well-known types, so no generated code is needed.

package plugin

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/jokarl/flatlint/flatconfig"
	"github.com/jokarl/flatlint/registry"
)

// Ensure RuleSourcePlugin implements plugin.GRPCPlugin.
var _ plugin.GRPCPlugin = (*RuleSourcePlugin)(nil)

// RuleSourcePlugin is the implementation of plugin.GRPCPlugin for the
// RuleSource service. It is used by both the host (to create a client) and
// the plugin (to create a server).
type RuleSourcePlugin struct {
	plugin.Plugin
	// Impl is the concrete rule source. Only used when serving.
	Impl registry.RuleSource
}

// GRPCServer is called by the plugin to register the gRPC server.
func (p *RuleSourcePlugin) GRPCServer(_ *plugin.GRPCBroker, s *grpc.Server) error {
	if p.Impl == nil {
		return fmt.Errorf("no rule source to serve")
	}
	s.RegisterService(&ruleSourceServiceDesc, &GRPCRuleSourceServer{impl: p.Impl})
	return nil
}

// GRPCClient is called by the host to create a gRPC client.
func (p *RuleSourcePlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, c *grpc.ClientConn) (interface{}, error) {
	return &GRPCRuleSourceClient{conn: c}, nil
}

// =============================================================================
// Service description
// =============================================================================

const (
	serviceName    = "flatlint.RuleSource"
	describeMethod = "/" + serviceName + "/Describe"
	configMethod   = "/" + serviceName + "/Config"
)

// ruleSourceServer is the server API of the RuleSource service.
type ruleSourceServer interface {
	Describe(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Config(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

var ruleSourceServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ruleSourceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Describe", Handler: describeHandler},
		{MethodName: "Config", Handler: configHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "flatlint/plugin/rulesource",
}

func describeHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ruleSourceServer).Describe(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: describeMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ruleSourceServer).Describe(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func configHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ruleSourceServer).Config(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: configMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ruleSourceServer).Config(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// =============================================================================
// GRPCRuleSourceServer - Plugin side
// =============================================================================

// GRPCRuleSourceServer wraps a registry.RuleSource to implement the gRPC
// server. It runs in the plugin process and handles requests from the host.
type GRPCRuleSourceServer struct {
	impl registry.RuleSource
}

// Describe returns the static metadata of the source.
func (s *GRPCRuleSourceServer) Describe(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return toStruct(describe(s.impl))
}

// Config returns the requested preset.
func (s *GRPCRuleSourceServer) Config(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in configRequest
	if err := fromStruct(req, &in); err != nil {
		return nil, err
	}
	preset, err := s.impl.Config(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	return toStruct(toWirePreset(preset))
}

// =============================================================================
// GRPCRuleSourceClient - Host side
// =============================================================================

// GRPCRuleSourceClient calls a rule source served by a plugin.
type GRPCRuleSourceClient struct {
	conn grpc.ClientConnInterface
}

// Describe fetches the static metadata of the remote source.
func (c *GRPCRuleSourceClient) Describe(ctx context.Context) (*Description, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, describeMethod, &emptypb.Empty{}, out); err != nil {
		return nil, err
	}
	var d Description
	if err := fromStruct(out, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Config fetches the named preset from the remote source.
func (c *GRPCRuleSourceClient) Config(ctx context.Context, name string) (*flatconfig.Preset, error) {
	in, err := toStruct(configRequest{Name: name})
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, configMethod, in, out); err != nil {
		return nil, err
	}
	var w wirePreset
	if err := fromStruct(out, &w); err != nil {
		return nil, err
	}
	return fromWirePreset(&w), nil
}

// Source describes the remote source once and returns it as a
// registry.RuleSource.
func (c *GRPCRuleSourceClient) Source(ctx context.Context) (registry.RuleSource, error) {
	d, err := c.Describe(ctx)
	if err != nil {
		return nil, err
	}
	return &remoteSource{desc: d, client: c}, nil
}

// remoteSource answers metadata from a cached Description and forwards
// preset requests to the plugin.
type remoteSource struct {
	desc   *Description
	client *GRPCRuleSourceClient
}

var _ registry.RuleSource = (*remoteSource)(nil)

func (s *remoteSource) PackageName() string { return s.desc.Package }
func (s *remoteSource) PackageVersion() string { return s.desc.Version }
func (s *remoteSource) Namespace() string { return s.desc.Namespace }
func (s *remoteSource) VersionConstraint() string { return s.desc.Constraint }
func (s *remoteSource) RuleNames() []string { return append([]string(nil), s.desc.Rules...) }
func (s *remoteSource) ConfigNames() []string { return append([]string(nil), s.desc.Configs...) }

func (s *remoteSource) Config(ctx context.Context, name string) (*flatconfig.Preset, error) {
	return s.client.Config(ctx, name)
}
