package computegraph

import (
	"io"

	"github.com/vk/computegraph/draw"
	"github.com/vk/computegraph/options"
)

// Draw renders the graph through the draw package. Targets default to
// the graph's target set; a nil opts store reads the process-wide
// drawing options.
func (cg *ComputeGraph) Draw(w io.Writer, targets []string, opts *options.Store) error {
	if targets == nil {
		targets = cg.targets
	}
	return draw.Render(w, cg.g, targets, opts)
}
