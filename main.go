package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ngrange/pkgconf/fragment"
	"github.com/ngrange/pkgconf/resolve"
	"github.com/ngrange/pkgconf/version"
)

const aboutText = "pkg-config (Go reimplementation) - retrieve compiler and linker flags for compiled packages"

const helpText = `Usage:
  pkg-config [OPTIONS] [PACKAGE...]

Query modes:
  --modversion, --exists, --atleast-version=V, --exact-version=V,
  --max-version=V, --atleast-pkgconfig-version=V, --cflags, --libs,
  --variable=NAME, --print-variables, --print-requires[-private],
  --print-conflicts, --list-all, --dump-package, --digraph

Run "pkg-config --about" for a one-line description.
`

// toolVersion is also reported by --version.
func run(args []string) (int, *Flags, error) {
	flags, err := parseFlags(args[1:])
	if err != nil {
		return 2, &Flags{}, err
	}

	if flags.Help {
		fmt.Print(helpText)
		return 0, flags, nil
	}
	if flags.Version {
		fmt.Println(toolVersion)
		return 0, flags, nil
	}
	if flags.About {
		fmt.Println(aboutText)
		return 0, flags, nil
	}

	if flags.ListAll {
		policy := LoadPolicy(flags)
		if err := runListAll(os.Stdout, policy.Locator()); err != nil {
			return 1, flags, err
		}
		return 0, flags, nil
	}

	if flags.AtLeastPkgConfigVersion != "" {
		if err := runPkgConfigVersionCheck(flags.AtLeastPkgConfigVersion); err != nil {
			return 1, flags, err
		}
		return 0, flags, nil
	}

	if len(flags.Packages) == 0 {
		return 2, flags, usageError("at least one package name is required")
	}

	policy := LoadPolicy(flags)
	for _, kv := range flags.DefineVariable {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return 2, flags, usageError(fmt.Sprintf("--define-variable=%s: expected NAME=VALUE", kv))
		}
		policy.Global.Set(name, value)
	}

	r := resolve.New(policy.Locator(), policy.Global, resolve.Flags{
		SearchPrivate:         flags.Static,
		MergePrivateFragments: flags.Static,
		SkipConflicts:         policy.IgnoreConflicts,
		SkipRootVirtual:       true,
		MaxDepth:              flags.MaxDepth,
	})

	if flags.Debug {
		fmt.Fprintln(os.Stderr, "pkg-config: search path:")
		for _, dir := range r.CanonicalSearchPath() {
			fmt.Fprintln(os.Stderr, "  ", dir)
		}
	}

	// --simulate resolves and validates the graph exactly as a normal
	// invocation would but discards any query output, per §6.1.
	out := io.Writer(os.Stdout)
	if flags.Simulate {
		out = io.Discard
	}

	if flags.Exists {
		world, err := resolve.BuildWorld(flags.Packages)
		if err != nil {
			return 1, flags, err
		}
		if err := resolve.Validate(r, world); err != nil {
			return 1, flags, err
		}
		return 0, flags, nil
	}

	if flags.ModVersion {
		if err := runModVersion(out, r, flags.Packages); err != nil {
			return 1, flags, err
		}
		return 0, flags, nil
	}
	if flags.AtLeastVersion != "" {
		if err := runVersionComparison(r, flags.Packages, version.GreaterOrEqual, flags.AtLeastVersion); err != nil {
			return 1, flags, err
		}
		return 0, flags, nil
	}
	if flags.ExactVersion != "" {
		if err := runVersionComparison(r, flags.Packages, version.Equal, flags.ExactVersion); err != nil {
			return 1, flags, err
		}
		return 0, flags, nil
	}
	if flags.MaxVersion != "" {
		if err := runVersionComparison(r, flags.Packages, version.LessOrEqual, flags.MaxVersion); err != nil {
			return 1, flags, err
		}
		return 0, flags, nil
	}
	if flags.PrintVariables {
		if err := runPrintVariables(out, r, flags.Packages); err != nil {
			return 1, flags, err
		}
		return 0, flags, nil
	}
	if flags.PrintRequires || flags.PrintRequiresPrivate {
		if err := runPrintRequires(out, r, flags.Packages, flags.PrintRequiresPrivate); err != nil {
			return 1, flags, err
		}
		return 0, flags, nil
	}
	if flags.PrintConflicts {
		if err := runPrintConflicts(out, r, flags.Packages); err != nil {
			return 1, flags, err
		}
		return 0, flags, nil
	}
	if flags.DumpPackage {
		if err := runDumpPackage(out, r, flags.Packages); err != nil {
			return 1, flags, err
		}
		return 0, flags, nil
	}

	world, err := resolve.BuildWorld(flags.Packages)
	if err != nil {
		return 1, flags, err
	}

	if flags.Digraph {
		if err := writeDigraph(out, r, world); err != nil {
			return 1, flags, err
		}
		return 0, flags, nil
	}
	if flags.Variable != "" {
		if err := runVariable(out, r, world, flags.Variable); err != nil {
			return 1, flags, err
		}
		return 0, flags, nil
	}

	ranQuery := false
	if flags.Cflags {
		restrict, only := cflagsFilter(flags.CflagsOnly)
		if err := runCflags(out, r, world, policy, restrict, only); err != nil {
			return 1, flags, err
		}
		ranQuery = true
	}
	if flags.Libs {
		restrict, only := libsFilter(flags.LibsOnly)
		if err := runLibs(out, r, world, policy, restrict, only); err != nil {
			return 1, flags, err
		}
		ranQuery = true
	}

	if !ranQuery {
		return 2, flags, usageError("at least one mode flag (--cflags, --libs, --modversion, ...) is required")
	}

	return 0, flags, nil
}

func cflagsFilter(only string) (restrict bool, kind fragment.Kind) {
	switch only {
	case "I":
		return true, fragment.IncludeDir
	case "other":
		return true, fragment.Other
	default:
		return false, fragment.Other
	}
}

func libsFilter(only string) (restrict bool, kind fragment.Kind) {
	switch only {
	case "L":
		return true, fragment.LibDir
	case "l":
		return true, fragment.Lib
	case "other":
		return true, fragment.Other
	default:
		return false, fragment.Other
	}
}

func main() {
	exitCode, flags, err := run(os.Args)
	if err != nil {
		exitCode = reportError(flags, err)
	}
	os.Exit(exitCode)
}
