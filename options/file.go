package options

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/jokarl/flatlint/flatconfig"
	"github.com/jokarl/flatlint/hclext"
)

// DefaultFile is the conventional options file name.
const DefaultFile = "flatlint.hcl"

// featureNames lists every feature in file order.
var featureNames = []string{
	FeatureJS,
	FeatureTS,
	FeatureReact,
	FeatureVue,
	FeaturePrettier,
	FeatureUnicorn,
	FeatureVitestGlobals,
	FeatureJSXA11y,
	FeatureImport,
}

// fieldAttrs lists the feature-specific attributes of each feature block.
var fieldAttrs = map[string][]string{
	FeatureTS:    {"parse_options"},
	FeatureReact: {"version", "compiler"},
	FeatureVue:   {"version"},
}

// LoadFile reads options from an HCL file.
//
// Example file:
//
//	ignores = ["**/dist", "**/coverage"]
//	prettier = false
//
//	feature "react" {
//	  version   = "18.2.0"
//	  overrides = { "react/jsx-key" = "off" }
//	}
func LoadFile(path string) (*Options, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, diags
	}
	opts, diags := decodeBody(file.Body)
	if diags.HasErrors() {
		return nil, diags
	}
	return opts, nil
}

// Parse reads options from HCL source. filename is used in diagnostics.
func Parse(src []byte, filename string) (*Options, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	opts, diags := decodeBody(file.Body)
	if diags.HasErrors() {
		return nil, diags
	}
	return opts, nil
}

// record is a decoded feature block before it is typed.
type record struct {
	enable    bool
	overrides flatconfig.Rules
	attrs     map[string]*hcl.Attribute
}

func decodeBody(body hcl.Body) (*Options, hcl.Diagnostics) {
	schema := hclext.Attrs(append([]string{"ignores"}, featureNames...)...)
	schema.Blocks = []hclext.BlockSchema{{Type: "feature", LabelNames: []string{"name"}}}

	content, diags := body.Content(hclext.ToHCLBodySchema(schema))
	if diags.HasErrors() {
		return nil, diags
	}

	opts := &Options{}
	if attr, ok := content.Attributes["ignores"]; ok {
		var ignores []string
		diags = append(diags, hclext.Decode(attr.Expr, nil, &ignores)...)
		if ignores == nil {
			ignores = []string{}
		}
		opts.Ignores = ignores
	}

	toggles := make(map[string]bool)
	for _, name := range featureNames {
		attr, ok := content.Attributes[name]
		if !ok {
			continue
		}
		var enable bool
		d := hclext.Decode(attr.Expr, nil, &enable)
		diags = append(diags, d...)
		if d.HasErrors() {
			continue
		}
		toggles[name] = enable
	}

	records := make(map[string]*record)
	for _, block := range content.Blocks {
		name := block.Labels[0]
		if _, known := Defaults[name]; !known {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unknown feature",
				Detail:   fmt.Sprintf("There is no feature named %q.", name),
				Subject:  block.LabelRanges[0].Ptr(),
			})
			continue
		}
		if _, dup := records[name]; dup {
			diags = append(diags, duplicateDiag(name, block))
			continue
		}
		if _, dup := toggles[name]; dup {
			diags = append(diags, duplicateDiag(name, block))
			continue
		}
		rec, d := decodeRecord(name, block.Body)
		diags = append(diags, d...)
		if rec != nil {
			records[name] = rec
		}
	}
	if diags.HasErrors() {
		return nil, diags
	}

	for name, enable := range toggles {
		opts.setBool(name, enable)
	}
	for name, rec := range records {
		diags = append(diags, opts.setRecord(name, rec)...)
	}
	return opts, diags
}

func decodeRecord(name string, body hcl.Body) (*record, hcl.Diagnostics) {
	schema := hclext.Attrs(append([]string{"enable", "overrides"}, fieldAttrs[name]...)...)
	content, diags := body.Content(hclext.ToHCLBodySchema(schema))
	if diags.HasErrors() {
		return nil, diags
	}

	rec := &record{enable: true, attrs: content.Attributes}
	if attr, ok := content.Attributes["enable"]; ok {
		diags = append(diags, hclext.Decode(attr.Expr, nil, &rec.enable)...)
	}
	if attr, ok := content.Attributes["overrides"]; ok {
		raw, d := hclext.Object(attr.Expr, nil)
		diags = append(diags, d...)
		if !d.HasErrors() {
			rules, err := flatconfig.ParseRules(raw)
			if err != nil {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Invalid rule override",
					Detail:   err.Error(),
					Subject:  attr.Expr.Range().Ptr(),
				})
			}
			rec.overrides = rules
		}
	}
	return rec, diags
}

func (o *Options) setBool(name string, enable bool) {
	switch name {
	case FeatureJS:
		o.JS = Bool[None](enable)
	case FeatureTS:
		o.TS = Bool[TSFields](enable)
	case FeatureReact:
		o.React = Bool[ReactFields](enable)
	case FeatureVue:
		o.Vue = Bool[VueFields](enable)
	case FeaturePrettier:
		o.Prettier = Bool[None](enable)
	case FeatureUnicorn:
		o.Unicorn = Bool[None](enable)
	case FeatureVitestGlobals:
		o.VitestGlobals = Bool[None](enable)
	case FeatureJSXA11y:
		o.JSXA11y = Bool[None](enable)
	case FeatureImport:
		o.Import = Bool[None](enable)
	}
}

func (o *Options) setRecord(name string, rec *record) hcl.Diagnostics {
	var diags hcl.Diagnostics
	switch name {
	case FeatureJS:
		o.JS = Record(rec.enable, None{}, rec.overrides)
	case FeatureTS:
		var fields TSFields
		if attr, ok := rec.attrs["parse_options"]; ok {
			var d hcl.Diagnostics
			fields.ParseOptions, d = hclext.Object(attr.Expr, nil)
			diags = append(diags, d...)
		}
		o.TS = Record(rec.enable, fields, rec.overrides)
	case FeatureReact:
		var fields ReactFields
		if attr, ok := rec.attrs["version"]; ok {
			diags = append(diags, hclext.Decode(attr.Expr, nil, &fields.Version)...)
		}
		if attr, ok := rec.attrs["compiler"]; ok {
			diags = append(diags, hclext.Decode(attr.Expr, nil, &fields.Compiler)...)
		}
		o.React = Record(rec.enable, fields, rec.overrides)
	case FeatureVue:
		var fields VueFields
		if attr, ok := rec.attrs["version"]; ok {
			diags = append(diags, hclext.Decode(attr.Expr, nil, &fields.Version)...)
		}
		o.Vue = Record(rec.enable, fields, rec.overrides)
	case FeaturePrettier:
		o.Prettier = Record(rec.enable, None{}, rec.overrides)
	case FeatureUnicorn:
		o.Unicorn = Record(rec.enable, None{}, rec.overrides)
	case FeatureVitestGlobals:
		o.VitestGlobals = Record(rec.enable, None{}, rec.overrides)
	case FeatureJSXA11y:
		o.JSXA11y = Record(rec.enable, None{}, rec.overrides)
	case FeatureImport:
		o.Import = Record(rec.enable, None{}, rec.overrides)
	}
	return diags
}

func duplicateDiag(name string, block *hcl.Block) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Duplicate feature configuration",
		Detail:   fmt.Sprintf("Feature %q is configured more than once.", name),
		Subject:  block.DefRange.Ptr(),
	}
}
