// Package plugin serves and loads rule sources that run out of process.
//
// This file contains conversion functions between the protobuf well-known
// Struct messages sent over gRPC and the native Go types of a rule source.

package plugin

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/jokarl/flatlint/flatconfig"
	"github.com/jokarl/flatlint/registry"
)

// Description is the static metadata of a rule source.
type Description struct {
	Package    string   `json:"package"`
	Version    string   `json:"version"`
	Namespace  string   `json:"namespace,omitempty"`
	Constraint string   `json:"constraint,omitempty"`
	Rules      []string `json:"rules,omitempty"`
	Configs    []string `json:"configs,omitempty"`
}

// describe collects the metadata of src.
func describe(src registry.RuleSource) *Description {
	return &Description{
		Package:    src.PackageName(),
		Version:    src.PackageVersion(),
		Namespace:  src.Namespace(),
		Constraint: src.VersionConstraint(),
		Rules:      src.RuleNames(),
		Configs:    src.ConfigNames(),
	}
}

type configRequest struct {
	Name string `json:"name"`
}

// wirePreset mirrors flatconfig.Preset. Rule settings travel in their
// "level" or ["level", options...] form.
type wirePreset struct {
	Rules   flatconfig.Rules                   `json:"rules,omitempty"`
	Globals map[string]flatconfig.GlobalAccess `json:"globals,omitempty"`
}

func toWirePreset(p *flatconfig.Preset) *wirePreset {
	if p == nil {
		return &wirePreset{}
	}
	return &wirePreset{Rules: p.Rules, Globals: p.Globals}
}

func fromWirePreset(w *wirePreset) *flatconfig.Preset {
	p := &flatconfig.Preset{Rules: w.Rules, Globals: w.Globals}
	if p.Rules == nil {
		p.Rules = flatconfig.Rules{}
	}
	return p
}

// toStruct converts v to a Struct through its JSON form.
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding %T: %w", v, err)
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("encoding %T: %w", v, err)
	}
	return s, nil
}

// fromStruct decodes s into v through its JSON form. A nil Struct leaves
// v untouched.
func fromStruct(s *structpb.Struct, v any) error {
	if s == nil {
		return nil
	}
	data, err := protojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("decoding %T: %w", v, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %T: %w", v, err)
	}
	return nil
}
