// Package resolve implements the central recursive-descent traversal over
// the transitive Requires/Conflicts graph (§4.5): module loading and
// caching, cycle-safe visiting, conflict and version-predicate checking,
// and the fragment/variable accumulation wrappers built on top of it.
package resolve

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ngrange/pkgconf/descriptor"
	"github.com/ngrange/pkgconf/fragment"
	"github.com/ngrange/pkgconf/locate"
	"github.com/ngrange/pkgconf/tuple"
	"github.com/ngrange/pkgconf/version"
)

// Flags controls traversal behavior, per the table in §4.5.
type Flags struct {
	SearchPrivate          bool
	MergePrivateFragments  bool
	SkipConflicts          bool
	SkipRootVirtual        bool
	MaxDepth               int // negative means unlimited
	DescriptorOptions      descriptor.Options
}

// loadState tracks a module's load progress: UNSEEN -> LOADING -> LOADED,
// or ERROR when opening or parsing fails. The VISITED step is not kept
// here: the dependency-cycle guard during traversal is the separate
// visited set in visit().
type loadState int

const (
	stateUnseen loadState = iota
	stateLoading
	stateLoaded
	stateError
)

// Resolver walks the dependency graph rooted at a world module, backed by
// a single module cache scoped to one resolution (§5: "the specification
// treats each main-equivalent invocation as a fresh cache").
type Resolver struct {
	Locator *locate.Locator
	Global  *tuple.Scope
	Flags   Flags

	cache map[string]*descriptor.Module
	state map[string]loadState
}

// New returns a Resolver with a fresh, empty module cache.
func New(locator *locate.Locator, global *tuple.Scope, flags Flags) *Resolver {
	return &Resolver{
		Locator: locator,
		Global:  global,
		Flags:   flags,
		cache:   make(map[string]*descriptor.Module),
		state:   make(map[string]loadState),
	}
}

// load resolves name to a descriptor path via the Locator and parses it,
// caching the result under the resulting module ID so repeated requests
// for the same module within one traversal are loaded once.
func (r *Resolver) load(name string) (*descriptor.Module, error) {
	res, err := r.Locator.Find(name)
	if err != nil {
		return nil, &UnknownModuleError{Package: name}
	}

	id := locate.ModuleID(res.Path)
	if m, ok := r.cache[id]; ok {
		if r.state[id] == stateLoading {
			return nil, fmt.Errorf("cyclic descriptor load for %q", id)
		}
		return m, nil
	}

	r.state[id] = stateLoading
	f, err := os.Open(res.Path)
	if err != nil {
		r.state[id] = stateError
		return nil, fmt.Errorf("opening %s: %w", res.Path, err)
	}
	defer f.Close()

	m, err := descriptor.Parse(f, res.Path, id, r.Global, r.Flags.DescriptorOptions)
	if err != nil {
		r.state[id] = stateError
		return nil, err
	}
	m.Uninstalled = res.Uninstalled

	r.cache[id] = m
	r.state[id] = stateLoaded
	return m, nil
}

// Resolve loads and returns the module named name, without walking its
// dependencies. Used by CLI query modes that operate on exactly the
// packages named on the command line (--modversion, --print-variables,
// the version-comparison flags) rather than the transitive graph.
func (r *Resolver) Resolve(name string) (*descriptor.Module, error) {
	return r.load(name)
}

// resolveAndVerify loads the module named by req and checks its version
// against req's comparator, if any.
func (r *Resolver) resolveAndVerify(req version.Requirement) (*descriptor.Module, error) {
	m, err := r.load(req.Package)
	if err != nil {
		return nil, err
	}

	if req.Operator != version.None && !req.Satisfies(m.Version) {
		return nil, &VersionMismatchError{
			Package: req.Package,
			Wanted:  fmt.Sprintf("%s %s", req.Operator, req.Version),
			Found:   m.Version,
		}
	}

	return m, nil
}

// Visitor is invoked once per module in post-order (children before
// parents), matching standard link order.
type Visitor func(m *descriptor.Module)

// Traverse walks the graph rooted at world, invoking visit on each module
// after its dependencies, per the algorithm in §4.5. It returns the first
// fatal error encountered, wrapped in a ResolutionError carrying the graph
// path to the failure.
func (r *Resolver) Traverse(world *descriptor.Module, visit Visitor) error {
	visited := make(map[string]struct{})
	return r.visit(world, 0, true, visited, visit, nil)
}

func (r *Resolver) visit(node *descriptor.Module, depth int, isRoot bool, visited map[string]struct{}, visit Visitor, path []Step) error {
	if r.Flags.MaxDepth >= 0 && depth > r.Flags.MaxDepth {
		return nil
	}
	if _, ok := visited[node.ID]; ok {
		return nil
	}
	visited[node.ID] = struct{}{}

	if !r.Flags.SkipConflicts {
		for _, c := range node.Conflicts {
			found, err := r.load(c.Package)
			if err != nil {
				// A conflict predicate naming a module that the
				// locator cannot find is not itself an error. A module
				// that is found matches even when nothing in the graph
				// requires it.
				continue
			}
			if c.Operator == version.None || c.Satisfies(found.Version) {
				return &ResolutionError{
					Err: &ConflictError{
						Module:      node.ID,
						Conflicting: found.ID,
						Predicate:   fmt.Sprintf("%s %s", c.Operator, c.Version),
					},
					Stack: path,
				}
			}
		}
	}

	for _, req := range node.Requires {
		child, err := r.resolveAndVerify(req)
		if err != nil {
			return &ResolutionError{Err: err, Stack: append(path, Step{node.ID, "requires"})}
		}
		if err := r.visit(child, depth+1, false, visited, visit, append(path, Step{node.ID, "requires"})); err != nil {
			return err
		}
	}

	if r.Flags.SearchPrivate {
		for _, req := range node.RequiresPrivate {
			child, err := r.resolveAndVerify(req)
			if err != nil {
				return &ResolutionError{Err: err, Stack: append(path, Step{node.ID, "requires.private"})}
			}
			if err := r.visit(child, depth+1, false, visited, visit, append(path, Step{node.ID, "requires.private"})); err != nil {
				return err
			}
		}
	}

	if !(r.Flags.SkipRootVirtual && isRoot) {
		visit(node)
	}

	return nil
}

// Cflags returns the de-duplicated, ordered Cflags fragments across the
// whole traversal.
func (r *Resolver) Cflags(world *descriptor.Module) (*fragment.List, error) {
	out := fragment.NewList()
	err := r.Traverse(world, func(m *descriptor.Module) {
		out.Merge(m.Cflags)
	})
	return out, err
}

// Libs returns the de-duplicated, ordered Libs fragments across the whole
// traversal, including Libs.private when both SearchPrivate and
// MergePrivateFragments are set (static-linking mode).
func (r *Resolver) Libs(world *descriptor.Module) (*fragment.List, error) {
	out := fragment.NewList()
	err := r.Traverse(world, func(m *descriptor.Module) {
		out.Merge(m.Libs)
		if r.Flags.SearchPrivate && r.Flags.MergePrivateFragments {
			out.Merge(m.LibsPrivate)
		}
	})
	return out, err
}

// Variable looks up varname in every visited module's tuple scope and
// space-joins the matches in traversal order.
func (r *Resolver) Variable(world *descriptor.Module, varname string) (string, error) {
	var values []string
	err := r.Traverse(world, func(m *descriptor.Module) {
		if v, ok := m.Tuples.Get(varname, r.Global); ok && v != "" {
			values = append(values, v)
		}
	})
	if err != nil {
		return "", err
	}
	return joinSpace(values), nil
}

// Requires returns the flattened, traversal-ordered list of direct
// Requires predicates of every visited module (used by --print-requires);
// with private set it returns their Requires.private predicates instead
// (--print-requires-private). Which modules are visited still depends on
// Flags.SearchPrivate.
func (r *Resolver) Requires(world *descriptor.Module, private bool) ([]version.Requirement, error) {
	var reqs []version.Requirement
	err := r.Traverse(world, func(m *descriptor.Module) {
		if m == world {
			return
		}
		if private {
			reqs = append(reqs, m.RequiresPrivate...)
		} else {
			reqs = append(reqs, m.Requires...)
		}
	})
	return reqs, err
}

func joinSpace(values []string) string {
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	}
	out := values[0]
	for _, v := range values[1:] {
		out += " " + v
	}
	return out
}

// CanonicalSearchPath returns the locator's search path rendered for
// diagnostics (e.g. --debug output), deduplicated to absolute form.
func (r *Resolver) CanonicalSearchPath() []string {
	out := make([]string, 0, len(r.Locator.SearchPath))
	for _, dir := range r.Locator.SearchPath {
		abs, err := filepath.Abs(dir)
		if err != nil {
			abs = dir
		}
		out = append(out, abs)
	}
	return out
}
