// Package hclspec loads computation graph definitions written in HCL.
//
// A definition file declares one node per block:
//
//	node "pop_sum" {
//	  expr = sum(local.country_pop)
//	}
//
//	node "norm_pop" {
//	  expr = local.country_pop / local.pop_sum
//	}
//
// Expressions are never evaluated by the loader. They are walked
// symbolically and turned into node specifications: scope traversals
// such as local.pop_sum or param.iso become variables, function calls
// resolve against a registry, arithmetic operators build primitive
// calls on a numeric backend, and constant literals, templates and
// collections are embedded as data. The result is a plain node.Dict
// ready to hand to the graph builder.
package hclspec
