package hclspec

import "github.com/hashicorp/hcl/v2"

// graphFile is the top-level structure of a definition file.
type graphFile struct {
	Nodes []*nodeBlock `hcl:"node,block"`
}

// nodeBlock is a single `node "<name>" { ... }` declaration. The expr
// attribute is captured unevaluated so the translator can walk it.
type nodeBlock struct {
	Name string         `hcl:"name,label"`
	Expr hcl.Expression `hcl:"expr"`
}
