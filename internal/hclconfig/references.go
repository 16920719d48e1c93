package hclconfig

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// sourceSetRoot is the root name of a source-set traversal.
const sourceSetRoot = "source_set"

// parseReferenceList reads an attribute holding a list of source-set
// references. The value must be a list literal like `[...]`; a missing
// attribute yields no names.
func parseReferenceList(attrName string, expr hcl.Expression) ([]string, hcl.Diagnostics) {
	syntaxExpr, ok := expr.(hclsyntax.Expression)
	if !ok {
		// gohcl substitutes a static null for optional attributes that are absent.
		return nil, nil
	}

	tuple, isTuple := syntaxExpr.(*hclsyntax.TupleConsExpr)
	if !isTuple {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  fmt.Sprintf("Invalid %s value", attrName),
			Detail:   fmt.Sprintf("The '%s' attribute must be a list of source set references.", attrName),
			Subject:  expr.Range().Ptr(),
		}}
	}

	var diags hcl.Diagnostics
	names := make([]string, 0, len(tuple.Exprs))
	for _, elem := range tuple.Exprs {
		name, elemDiags := parseReference(elem)
		diags = append(diags, elemDiags...)
		if !elemDiags.HasErrors() {
			names = append(names, name)
		}
	}
	return names, diags
}

// parseReference accepts `source_set.<name>` or a string literal.
func parseReference(expr hcl.Expression) (string, hcl.Diagnostics) {
	if len(expr.Variables()) == 0 {
		val, diags := expr.Value(nil)
		if diags.HasErrors() {
			return "", diags
		}
		if val.IsNull() || !val.IsKnown() || val.Type() != cty.String {
			return "", hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Invalid source set reference",
				Detail:   "A source set reference must be a string or a source_set.<name> reference.",
				Subject:  expr.Range().Ptr(),
			}}
		}
		return val.AsString(), nil
	}

	traversal, diags := hcl.AbsTraversalForExpr(expr)
	if diags.HasErrors() {
		return "", diags
	}
	if len(traversal) == 2 && traversal.RootName() == sourceSetRoot {
		if attr, ok := traversal[1].(hcl.TraverseAttr); ok {
			return attr.Name, nil
		}
	}
	return "", hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Invalid source set reference",
		Detail:   fmt.Sprintf("%q does not name a source set; use source_set.<name>.", traversalKey(traversal)),
		Subject:  expr.Range().Ptr(),
	}}
}

// traversalKey renders a traversal as written, e.g. source_set.foo[0].
func traversalKey(t hcl.Traversal) string {
	return string(hclwrite.TokensForTraversal(t).Bytes())
}
