package hclspec

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/computegraph/internal/ctxlog"
	"github.com/vk/computegraph/internal/fsutil"
	"github.com/vk/computegraph/node"
	"github.com/vk/computegraph/ops"
	"github.com/vk/computegraph/registry"
)

// Loader translates HCL graph definitions into node dictionaries.
type Loader struct {
	registry *registry.Registry
	backend  *ops.Backend
	local    string
}

// New returns a Loader that resolves function calls against reg and
// builds arithmetic operators with backend. A nil backend is selected
// from the environment; a nil registry gets the backend's primitives.
func New(reg *registry.Registry, backend *ops.Backend) *Loader {
	if backend == nil {
		backend = ops.FromEnv()
	}
	if reg == nil {
		reg = registry.New().Install(backend)
	}
	return &Loader{registry: reg, backend: backend, local: node.SourceLocals}
}

// LoadSource parses and translates a definition held in memory. The
// filename is used only for diagnostics.
func (l *Loader) LoadSource(ctx context.Context, filename string, src []byte) (node.Dict, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, diags)
	}
	return l.decodeFile(ctx, filename, file)
}

// LoadFile parses and translates a single definition file.
func (l *Loader) LoadFile(ctx context.Context, path string) (node.Dict, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", path, diags)
	}
	return l.decodeFile(ctx, path, file)
}

// LoadDir discovers every .hcl file under root recursively and merges
// their definitions into one dictionary. Node names must be unique
// across the whole tree.
func (l *Loader) LoadDir(ctx context.Context, root string) (node.Dict, error) {
	log := ctxlog.From(ctx)

	paths, err := fsutil.FindFilesByExtension(root, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	if len(paths) == 0 {
		log.Warn("No .hcl definition files found in path, returning empty dictionary.", "path", root)
		return node.Dict{}, nil
	}

	merged := make(node.Dict)
	declaredIn := make(map[string]string)
	for _, path := range paths {
		dict, err := l.LoadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		for name, spec := range dict {
			if prev, dup := declaredIn[name]; dup {
				return nil, fmt.Errorf("node %q defined in both %s and %s", name, prev, path)
			}
			declaredIn[name] = path
			merged[name] = spec
		}
	}

	log.Debug("Loaded graph definitions from directory.",
		"path", root,
		"files", len(paths),
		"nodes", len(merged),
	)
	return merged, nil
}

// decodeFile extracts the node blocks of a parsed file and translates
// each expression into a node specification.
func (l *Loader) decodeFile(ctx context.Context, name string, file *hcl.File) (node.Dict, error) {
	var parsed graphFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %w", name, diags)
	}

	dict := make(node.Dict, len(parsed.Nodes))
	var diags hcl.Diagnostics
	for _, block := range parsed.Nodes {
		if _, dup := dict[block.Name]; dup {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate node name",
				Detail:   fmt.Sprintf("A node named %q was already declared in this file.", block.Name),
				Subject:  block.Expr.Range().Ptr(),
			})
			continue
		}
		spec, d := l.translateExpr(block.Expr)
		diags = append(diags, d...)
		if d.HasErrors() {
			continue
		}
		dict[block.Name] = spec
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to translate %s: %w", name, diags)
	}

	ctxlog.From(ctx).Debug("Loaded graph definition file.", "file", name, "nodes", len(dict))
	return dict, nil
}
