package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/ngrange/pkgconf/descriptor"
	"github.com/ngrange/pkgconf/fragment"
	"github.com/ngrange/pkgconf/locate"
	"github.com/ngrange/pkgconf/resolve"
	"github.com/ngrange/pkgconf/version"
	"gopkg.in/yaml.v3"
)

// toolVersion is compared against --atleast-pkgconfig-version; it has no
// other effect on resolution.
const toolVersion = "0.29.2"

func runModVersion(w io.Writer, r *resolve.Resolver, names []string) error {
	for _, name := range names {
		m, err := r.Resolve(name)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, m.Version)
	}
	return nil
}

// runVersionComparison implements --atleast-version/--exact-version/
// --max-version: each named package is resolved directly and its version
// checked against op/want, without walking dependencies.
func runVersionComparison(r *resolve.Resolver, names []string, op, want string) error {
	req := version.Requirement{Operator: op, Version: want}
	for _, name := range names {
		m, err := r.Resolve(name)
		if err != nil {
			return err
		}
		if !req.Satisfies(m.Version) {
			return fmt.Errorf("%s version %s does not satisfy %s %s", name, m.Version, op, want)
		}
	}
	return nil
}

func runPkgConfigVersionCheck(want string) error {
	req := version.Requirement{Operator: version.GreaterOrEqual, Version: want}
	if !req.Satisfies(toolVersion) {
		return fmt.Errorf("pkg-config version %s does not satisfy >= %s", toolVersion, want)
	}
	return nil
}

func runCflags(w io.Writer, r *resolve.Resolver, world *descriptor.Module, p *Policy, restrict bool, only fragment.Kind) error {
	cflags, err := r.Cflags(world)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, renderFragments(cflags, p, restrict, only, p.AllowSystemCflags))
	return nil
}

func runLibs(w io.Writer, r *resolve.Resolver, world *descriptor.Module, p *Policy, restrict bool, only fragment.Kind) error {
	libs, err := r.Libs(world)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, renderFragments(libs, p, restrict, only, p.AllowSystemLibs))
	return nil
}

func runVariable(w io.Writer, r *resolve.Resolver, world *descriptor.Module, name string) error {
	v, err := r.Variable(world, name)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, v)
	return nil
}

func runPrintVariables(w io.Writer, r *resolve.Resolver, names []string) error {
	for _, name := range names {
		m, err := r.Resolve(name)
		if err != nil {
			return err
		}
		for _, k := range m.Tuples.Keys() {
			fmt.Fprintln(w, k)
		}
	}
	return nil
}

// runPrintRequires implements --print-requires[-private]: builds the
// synthetic world over the named packages and prints the Requires (or
// Requires.private) field of every module that world's traversal visits,
// via Resolver.Requires.
func runPrintRequires(w io.Writer, r *resolve.Resolver, names []string, private bool) error {
	world, err := resolve.BuildWorld(names)
	if err != nil {
		return err
	}

	reqs, err := r.Requires(world, private)
	if err != nil {
		return err
	}
	for _, req := range reqs {
		fmt.Fprintln(w, req.String())
	}
	return nil
}

func runPrintConflicts(w io.Writer, r *resolve.Resolver, names []string) error {
	for _, name := range names {
		m, err := r.Resolve(name)
		if err != nil {
			return err
		}
		for _, c := range m.Conflicts {
			fmt.Fprintln(w, c.String())
		}
	}
	return nil
}

func runListAll(w io.Writer, locator *locate.Locator) error {
	entries, err := locator.ListAll()
	if err != nil {
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	for _, e := range entries {
		f, err := os.Open(e.Path)
		if err != nil {
			continue
		}
		m, err := descriptor.ParseSummary(f, e.Path, e.ID, nil)
		f.Close()
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "%-30s %s - %s\n", e.ID, m.Name, m.Description)
	}
	return nil
}

// packageDump is the shape written by --dump-package: a diagnostic view of
// a resolved module's metadata, useful when a descriptor doesn't behave as
// expected. This supplements the distilled query set (§10).
type packageDump struct {
	ID              string            `yaml:"id"`
	Name            string            `yaml:"name"`
	Version         string            `yaml:"version"`
	Description     string            `yaml:"description,omitempty"`
	URL             string            `yaml:"url,omitempty"`
	Requires        []string          `yaml:"requires,omitempty"`
	RequiresPrivate []string          `yaml:"requires_private,omitempty"`
	Conflicts       []string          `yaml:"conflicts,omitempty"`
	Cflags          []string          `yaml:"cflags,omitempty"`
	Libs            []string          `yaml:"libs,omitempty"`
	Variables       map[string]string `yaml:"variables,omitempty"`
}

func runDumpPackage(w io.Writer, r *resolve.Resolver, names []string) error {
	var dumps []packageDump
	for _, name := range names {
		m, err := r.Resolve(name)
		if err != nil {
			return err
		}
		dumps = append(dumps, dumpModule(m))
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(dumps)
}

func dumpModule(m *descriptor.Module) packageDump {
	d := packageDump{
		ID:          m.ID,
		Name:        m.Name,
		Version:     m.Version,
		Description: m.Description,
		URL:         m.URL,
	}
	for _, r := range m.Requires {
		d.Requires = append(d.Requires, r.String())
	}
	for _, r := range m.RequiresPrivate {
		d.RequiresPrivate = append(d.RequiresPrivate, r.String())
	}
	for _, c := range m.Conflicts {
		d.Conflicts = append(d.Conflicts, c.String())
	}
	for _, f := range m.Cflags.Items() {
		d.Cflags = append(d.Cflags, f.String())
	}
	for _, f := range m.Libs.Items() {
		d.Libs = append(d.Libs, f.String())
	}

	if n := m.Tuples.Len(); n > 0 {
		d.Variables = make(map[string]string, n)
		for _, k := range m.Tuples.Keys() {
			if v, ok := m.Tuples.Raw(k); ok {
				d.Variables[k] = v
			}
		}
	}

	return d
}
