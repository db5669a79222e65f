package main

import (
	"fmt"
	"io"

	"github.com/ngrange/pkgconf/descriptor"
	"github.com/ngrange/pkgconf/resolve"
)

// writeDigraph renders the resolved dependency graph rooted at world as
// Graphviz dot source, one edge per Requires/Requires.private predicate
// actually walked. This supplements the distilled query set with the
// original tool's --digraph mode (§11).
func writeDigraph(w io.Writer, r *resolve.Resolver, world *descriptor.Module) error {
	fmt.Fprintln(w, "digraph deps {")

	err := r.Traverse(world, func(m *descriptor.Module) {
		for _, req := range m.Requires {
			fmt.Fprintf(w, "\t%q -> %q;\n", m.ID, req.Package)
		}
		if r.Flags.SearchPrivate {
			for _, req := range m.RequiresPrivate {
				fmt.Fprintf(w, "\t%q -> %q [style=dashed];\n", m.ID, req.Package)
			}
		}
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "}")
	return nil
}
