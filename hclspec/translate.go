package hclspec

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/vk/computegraph/node"
)

// Traversal roots recognized as namespace shorthands.
const (
	rootLocal = "local"
	rootParam = "param"
)

// translateExpr turns one captured expression into a node specification.
func (l *Loader) translateExpr(expr hcl.Expression) (*node.Node, hcl.Diagnostics) {
	syn, ok := expr.(hclsyntax.Expression)
	if !ok {
		return nil, hcl.Diagnostics{&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported expression syntax",
			Detail:   "Graph definitions must be written in HCL native syntax.",
			Subject:  expr.Range().Ptr(),
		}}
	}
	return l.translateSyntax(syn)
}

func (l *Loader) translateSyntax(expr hclsyntax.Expression) (*node.Node, hcl.Diagnostics) {
	switch e := expr.(type) {
	case *hclsyntax.ParenthesesExpr:
		return l.translateSyntax(e.Expression)

	case *hclsyntax.ScopeTraversalExpr:
		return l.translateTraversal(e.Traversal)

	case *hclsyntax.RelativeTraversalExpr:
		base, diags := l.translateSyntax(e.Source)
		if diags.HasErrors() {
			return nil, diags
		}
		return l.applySteps(base, e.Traversal)

	case *hclsyntax.FunctionCallExpr:
		return l.translateCall(e)

	case *hclsyntax.BinaryOpExpr:
		return l.translateBinary(e)

	case *hclsyntax.UnaryOpExpr:
		return l.translateUnary(e)

	case *hclsyntax.IndexExpr:
		coll, diags := l.translateSyntax(e.Collection)
		if diags.HasErrors() {
			return nil, diags
		}
		key, diags := l.translateSyntax(e.Key)
		if diags.HasErrors() {
			return nil, diags
		}
		return l.backend.Get(coll, key), nil
	}

	// Everything else must be a constant. Literals, templates and
	// collection constructors embed as data as long as they reference
	// no variables.
	if len(expr.Variables()) == 0 {
		val, diags := expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		return node.Data(val), nil
	}
	return nil, hcl.Diagnostics{&hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Unsupported expression",
		Detail:   "This expression form cannot be represented as a graph node.",
		Subject:  expr.Range().Ptr(),
	}}
}

// translateTraversal maps an absolute traversal onto a variable
// reference. Attribute steps join into the dotted node key; index steps
// after them become item lookups on the referenced value.
func (l *Loader) translateTraversal(t hcl.Traversal) (*node.Node, hcl.Diagnostics) {
	root := t.RootName()
	source := root
	switch root {
	case rootLocal:
		source = l.local
	case rootParam:
		source = node.SourceParams
	}

	var segs []string
	rest := 1
	for rest < len(t) {
		attr, ok := t[rest].(hcl.TraverseAttr)
		if !ok {
			break
		}
		segs = append(segs, attr.Name)
		rest++
	}
	if len(segs) == 0 {
		rng := t.SourceRange()
		return nil, hcl.Diagnostics{&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid graph reference",
			Detail:   fmt.Sprintf("References take the form <source>.<key>; write local.%s to reference a sibling node.", root),
			Subject:  rng.Ptr(),
		}}
	}

	ref := node.Variable(strings.Join(segs, "."), source)
	if rest < len(t) {
		return l.applySteps(ref, t[rest:])
	}
	return ref, nil
}

// applySteps chains item lookups for traversal steps that follow an
// already-translated base expression.
func (l *Loader) applySteps(base *node.Node, steps hcl.Traversal) (*node.Node, hcl.Diagnostics) {
	n := base
	for _, step := range steps {
		switch s := step.(type) {
		case hcl.TraverseAttr:
			n = l.backend.Get(n, node.LitVal(s.Name))
		case hcl.TraverseIndex:
			n = l.backend.Get(n, s.Key)
		default:
			rng := step.SourceRange()
			return nil, hcl.Diagnostics{&hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unsupported traversal",
				Detail:   "Only attribute and index steps can follow a graph reference.",
				Subject:  rng.Ptr(),
			}}
		}
	}
	return n, nil
}

func (l *Loader) translateCall(e *hclsyntax.FunctionCallExpr) (*node.Node, hcl.Diagnostics) {
	if e.ExpandFinal {
		return nil, hcl.Diagnostics{&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported call form",
			Detail:   "Argument expansion with ... is not supported in graph expressions.",
			Subject:  e.Range().Ptr(),
		}}
	}
	entry, ok := l.registry.Lookup(e.Name)
	if !ok {
		return nil, hcl.Diagnostics{&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unknown graph function",
			Detail:   fmt.Sprintf("No function named %q is registered.", e.Name),
			Subject:  e.NameRange.Ptr(),
		}}
	}
	if entry.Arity >= 0 && len(e.Args) != entry.Arity {
		return nil, hcl.Diagnostics{&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Wrong number of arguments",
			Detail:   fmt.Sprintf("Function %q expects %d arguments, got %d.", e.Name, entry.Arity, len(e.Args)),
			Subject:  e.Range().Ptr(),
		}}
	}

	args := make([]any, 0, len(e.Args))
	var diags hcl.Diagnostics
	for _, argExpr := range e.Args {
		arg, d := l.translateSyntax(argExpr)
		diags = append(diags, d...)
		if d.HasErrors() {
			continue
		}
		args = append(args, arg)
	}
	if diags.HasErrors() {
		return nil, diags
	}
	return node.Call(e.Name, entry.Fn, args...), nil
}

func (l *Loader) translateBinary(e *hclsyntax.BinaryOpExpr) (*node.Node, hcl.Diagnostics) {
	var build func(x, y any) *node.Node
	switch e.Op {
	case hclsyntax.OpAdd:
		build = l.backend.Add
	case hclsyntax.OpSubtract:
		build = l.backend.Sub
	case hclsyntax.OpMultiply:
		build = l.backend.Mul
	case hclsyntax.OpDivide:
		build = l.backend.Div
	default:
		return nil, hcl.Diagnostics{&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported operator",
			Detail:   "Only the arithmetic operators +, -, * and / are supported in graph expressions.",
			Subject:  e.Range().Ptr(),
		}}
	}

	lhs, diags := l.translateSyntax(e.LHS)
	if diags.HasErrors() {
		return nil, diags
	}
	rhs, diags := l.translateSyntax(e.RHS)
	if diags.HasErrors() {
		return nil, diags
	}
	return build(lhs, rhs), nil
}

func (l *Loader) translateUnary(e *hclsyntax.UnaryOpExpr) (*node.Node, hcl.Diagnostics) {
	if e.Op != hclsyntax.OpNegate {
		return nil, hcl.Diagnostics{&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported operator",
			Detail:   "Only unary minus is supported in graph expressions.",
			Subject:  e.Range().Ptr(),
		}}
	}
	val, diags := l.translateSyntax(e.Val)
	if diags.HasErrors() {
		return nil, diags
	}
	return l.backend.Neg(val), nil
}
