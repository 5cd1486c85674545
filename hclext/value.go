package hclext

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Value evaluates expr and converts the result to a plain Go value:
// string, float64, bool, []any, map[string]any or nil.
func Value(expr hcl.Expression, ctx *hcl.EvalContext) (any, hcl.Diagnostics) {
	val, diags := expr.Value(ctx)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, diags
	}
	if !val.IsWhollyKnown() {
		return nil, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unknown value",
			Detail:   "The value must be known when the configuration is loaded.",
			Subject:  expr.Range().Ptr(),
		})
	}

	// Serialize the cty value as JSON, then decode it into Go values
	raw, err := ctyjson.Marshal(val, val.Type())
	if err != nil {
		return nil, append(diags, errorDiag(expr, "Unsupported value", err))
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, append(diags, errorDiag(expr, "Unsupported value", err))
	}
	return out, diags
}

// Object evaluates expr as an object or map. A null value yields nil.
func Object(expr hcl.Expression, ctx *hcl.EvalContext) (map[string]any, hcl.Diagnostics) {
	v, diags := Value(expr, ctx)
	if diags.HasErrors() || v == nil {
		return nil, diags
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, append(diags, errorDiag(expr, "Object required", fmt.Errorf("got %s", kind(v))))
	}
	return m, diags
}

// Decode evaluates expr into target, which must be a pointer to a type
// gohcl can decode into (bool, string, numbers, slices of those).
func Decode(expr hcl.Expression, ctx *hcl.EvalContext, target any) hcl.Diagnostics {
	return gohcl.DecodeExpression(expr, ctx, target)
}

func errorDiag(expr hcl.Expression, summary string, err error) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   err.Error(),
		Subject:  expr.Range().Ptr(),
	}
}

func kind(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "bool"
	case []any:
		return "list"
	default:
		return fmt.Sprintf("%T", v)
	}
}
