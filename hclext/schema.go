// Package hclext provides extended HCL helpers for flatlint option files.
//
// It contains a small schema description that converts to the
// github.com/hashicorp/hcl/v2 equivalents, and conversions from HCL
// expressions to plain Go values (strings, numbers, lists, maps) so that
// loosely typed settings such as rule overrides and parser options can be
// read from a file.
package hclext

import (
	"github.com/hashicorp/hcl/v2"
)

// BodySchema represents the expected structure of an HCL body.
//
// Example:
//
//	schema := &hclext.BodySchema{
//	    Attributes: []hclext.AttributeSchema{
//	        {Name: "ignores"},
//	    },
//	    Blocks: []hclext.BlockSchema{
//	        {Type: "feature", LabelNames: []string{"name"}},
//	    },
//	}
type BodySchema struct {
	// Attributes defines expected attributes.
	Attributes []AttributeSchema
	// Blocks defines expected nested blocks.
	Blocks []BlockSchema
}

// AttributeSchema represents an expected HCL attribute.
type AttributeSchema struct {
	// Name is the attribute name to match.
	Name string
	// Required indicates if the attribute must be present.
	Required bool
}

// BlockSchema represents an expected HCL block.
type BlockSchema struct {
	// Type is the block type to match (e.g., "feature").
	Type string
	// LabelNames are the names for block labels.
	LabelNames []string
}

// Attrs builds a schema of optional attributes.
func Attrs(names ...string) *BodySchema {
	s := &BodySchema{Attributes: make([]AttributeSchema, len(names))}
	for i, name := range names {
		s.Attributes[i] = AttributeSchema{Name: name}
	}
	return s
}

// ToHCLBodySchema converts a BodySchema to an hcl.BodySchema.
// This is useful when using hcl.Body.Content() or PartialContent().
func ToHCLBodySchema(schema *BodySchema) *hcl.BodySchema {
	if schema == nil {
		return nil
	}

	hclSchema := &hcl.BodySchema{
		Attributes: make([]hcl.AttributeSchema, len(schema.Attributes)),
		Blocks:     make([]hcl.BlockHeaderSchema, len(schema.Blocks)),
	}

	for i, attr := range schema.Attributes {
		hclSchema.Attributes[i] = hcl.AttributeSchema{
			Name:     attr.Name,
			Required: attr.Required,
		}
	}

	for i, block := range schema.Blocks {
		hclSchema.Blocks[i] = hcl.BlockHeaderSchema{
			Type:       block.Type,
			LabelNames: block.LabelNames,
		}
	}

	return hclSchema
}
