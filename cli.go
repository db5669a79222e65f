package main

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Flags is the parsed command line, covering every mode switch described
// in §6.1. Most flags are booleans selecting an output mode; exactly one
// query mode is expected to be set per invocation, though nothing here
// stops a caller from combining a few that make sense together (e.g.
// --cflags --libs).
type Flags struct {
	ModVersion              bool
	Exists                  bool
	AtLeastVersion          string
	ExactVersion            string
	MaxVersion              string
	AtLeastPkgConfigVersion string

	Cflags     bool
	CflagsOnly string // "I" or "other" restricts to that fragment kind only
	Libs       bool
	LibsOnly   string // "L", "l", or "other" restricts accordingly
	Static     bool

	Variable       string
	PrintVariables bool
	DefineVariable []string

	PrintRequires        bool
	PrintRequiresPrivate bool
	PrintConflicts       bool

	ListAll     bool
	DumpPackage bool
	Digraph     bool

	PrintErrors    bool
	ErrorsToStdout bool
	SilenceErrors  bool
	ShortErrors    bool
	Debug          bool

	NoUninstalled    bool
	Uninstalled      bool
	EnvOnly          bool
	WithPath         []string
	KeepSystemCflags bool
	KeepSystemLibs   bool
	MaxDepth         int
	IgnoreConflicts  bool
	Simulate         bool

	Help    bool
	Version bool
	About   bool

	Packages []string
}

// parseFlags builds the pflag.FlagSet mirroring the original tool's long
// options and parses args into a Flags value.
func parseFlags(args []string) (*Flags, error) {
	f := &Flags{MaxDepth: -1}
	fs := pflag.NewFlagSet("pkg-config", pflag.ContinueOnError)

	fs.BoolVar(&f.ModVersion, "modversion", false, "output version for package")
	fs.BoolVar(&f.Exists, "exists", false, "return 0 if module(s) exist")
	fs.StringVar(&f.AtLeastVersion, "atleast-version", "", "return 0 if module version is at least this")
	fs.StringVar(&f.ExactVersion, "exact-version", "", "return 0 if module version is exactly this")
	fs.StringVar(&f.MaxVersion, "max-version", "", "return 0 if module version is no greater than this")
	fs.StringVar(&f.AtLeastPkgConfigVersion, "atleast-pkgconfig-version", "", "return 0 if pkg-config version is at least this")

	fs.BoolVar(&f.Cflags, "cflags", false, "output all pre-processor and compiler flags")
	fs.BoolVar(&f.Cflags, "cflags-only-I", false, "output -I flags only")
	fs.BoolVar(&f.Cflags, "cflags-only-other", false, "output cflags that are not -I flags")
	fs.BoolVar(&f.Libs, "libs", false, "output all linker flags")
	fs.BoolVar(&f.Libs, "libs-only-L", false, "output -L flags only")
	fs.BoolVar(&f.Libs, "libs-only-l", false, "output -l flags only")
	fs.BoolVar(&f.Libs, "libs-only-other", false, "output linker flags that are neither -L nor -l")
	fs.BoolVar(&f.Static, "static", false, "output linker flags for static linking")

	fs.StringVar(&f.Variable, "variable", "", "get the value of a variable")
	fs.BoolVar(&f.PrintVariables, "print-variables", false, "list the variables defined by a module")
	fs.StringArrayVar(&f.DefineVariable, "define-variable", nil, "set NAME=VALUE before querying")

	fs.BoolVar(&f.PrintRequires, "print-requires", false, "print required modules")
	fs.BoolVar(&f.PrintRequiresPrivate, "print-requires-private", false, "print Requires.private modules")
	fs.BoolVar(&f.PrintConflicts, "print-conflicts", false, "print conflicting modules")

	fs.BoolVar(&f.ListAll, "list-all", false, "list all known modules")
	fs.BoolVar(&f.DumpPackage, "dump-package", false, "dump resolved module metadata as YAML")
	fs.BoolVar(&f.Digraph, "digraph", false, "emit a Graphviz dependency graph")

	fs.BoolVar(&f.PrintErrors, "print-errors", false, "show verbose errors")
	fs.BoolVar(&f.ErrorsToStdout, "errors-to-stdout", false, "write errors to stdout instead of stderr")
	fs.BoolVar(&f.SilenceErrors, "silence-errors", false, "do not print errors")
	fs.BoolVar(&f.ShortErrors, "short-errors", false, "print a condensed error message")
	fs.BoolVar(&f.Debug, "debug", false, "show verbose debug information")

	fs.BoolVar(&f.NoUninstalled, "no-uninstalled", false, "never use uninstalled modules")
	fs.BoolVar(&f.Uninstalled, "uninstalled", false, "require the uninstalled variant of every module")
	fs.BoolVar(&f.EnvOnly, "env-only", false, "look only in PKG_CONFIG_PATH")
	fs.StringArrayVar(&f.WithPath, "with-path", nil, "add a directory to the search path, after PKG_CONFIG_PATH entries")
	fs.BoolVar(&f.KeepSystemCflags, "keep-system-cflags", false, "do not filter system include directories")
	fs.BoolVar(&f.KeepSystemLibs, "keep-system-libs", false, "do not filter system library directories")
	fs.IntVar(&f.MaxDepth, "maximum-traverse-depth", -1, "maximum recursion depth into the dependency graph")
	fs.BoolVar(&f.IgnoreConflicts, "ignore-conflicts", false, "do not fail on Conflicts: predicates")
	fs.BoolVar(&f.Simulate, "simulate", false, "resolve without printing any query output")

	fs.BoolVarP(&f.Help, "help", "h", false, "show this help text")
	fs.BoolVar(&f.Version, "version", false, "show the pkg-config version")
	fs.BoolVar(&f.About, "about", false, "show a one-line description of pkg-config")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// -only-I / -only-l / -only-other restrict which fragment kinds
	// Cflags()/Libs() return; detect which long flag actually fired.
	// Per §6.1, the typed filters (-I, -L, -l) take precedence over
	// -only-other, and -l over -L, when more than one is given on the same
	// command line.
	if fs.Changed("cflags-only-I") {
		f.Cflags = true
		f.CflagsOnly = "I"
	} else if fs.Changed("cflags-only-other") {
		f.Cflags = true
		f.CflagsOnly = "other"
	}
	if fs.Changed("libs-only-l") {
		f.Libs = true
		f.LibsOnly = "l"
	} else if fs.Changed("libs-only-L") {
		f.Libs = true
		f.LibsOnly = "L"
	} else if fs.Changed("libs-only-other") {
		f.Libs = true
		f.LibsOnly = "other"
	}

	f.Packages = fs.Args()
	return f, nil
}

// requestsQuery reports whether any query mode was selected; a command
// line with no mode flags is itself a usage error, matching the original
// tool's behavior of refusing to do nothing silently.
func (f *Flags) requestsQuery() bool {
	return f.ModVersion || f.Exists || f.AtLeastVersion != "" || f.ExactVersion != "" ||
		f.MaxVersion != "" || f.AtLeastPkgConfigVersion != "" || f.Cflags || f.Libs ||
		f.Variable != "" || f.PrintVariables || f.PrintRequires || f.PrintRequiresPrivate ||
		f.PrintConflicts || f.ListAll || f.DumpPackage || f.Digraph
}

func usageError(msg string) error {
	return fmt.Errorf("usage: %s", msg)
}
