package resolve

import (
	"fmt"

	"github.com/ngrange/pkgconf/descriptor"
	"github.com/ngrange/pkgconf/fragment"
	"github.com/ngrange/pkgconf/tuple"
	"github.com/ngrange/pkgconf/version"
)

// worldPackage is the synthetic module ID used for the virtual root that
// Requires the command line's requested packages, mirroring the "virtual"
// package the original tool synthesizes to hold the top-level request list
// (§4.5). It carries no Cflags/Libs of its own; the CLI traverses it with
// Flags.SkipRootVirtual set, so the visitor is never invoked on it there.
const worldPackage = "pkg-config-request"

// BuildWorld constructs the synthetic root module whose Requires list is
// exactly the packages named on the command line, each parsed as a
// name/operator/version predicate per §4.3's grammar. Traversal starts
// here so plain package names and "name >= 1.2"-style requests share one
// code path with a module's own Requires field.
func BuildWorld(requests []string) (*descriptor.Module, error) {
	if len(requests) == 0 {
		return nil, ErrEmptyRequestList
	}

	joined := ""
	for i, r := range requests {
		if i > 0 {
			joined += ", "
		}
		joined += r
	}

	reqs, err := version.ParseDependencyList(joined)
	if err != nil {
		return nil, fmt.Errorf("parsing package list: %w", err)
	}

	return &descriptor.Module{
		ID:       worldPackage,
		Tuples:   tuple.NewScope(),
		Requires: reqs,
		Cflags:   fragment.NewList(),
		Libs:     fragment.NewList(),
	}, nil
}

// Validate performs a dry-run traversal of world, discarding any
// accumulated fragments: it reports whether every requested package and
// its transitive graph resolve cleanly (module presence, version
// predicates, conflicts), without needing a caller to care about
// Cflags/Libs output. Used by --exists.
func Validate(r *Resolver, world *descriptor.Module) error {
	return r.Traverse(world, func(*descriptor.Module) {})
}
