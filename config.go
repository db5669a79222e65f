package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ngrange/pkgconf/locate"
	"github.com/ngrange/pkgconf/tuple"
)

// defaultSearchDirs are consulted when PKG_CONFIG_LIBDIR does not override
// them, mirroring the compiled-in default path of the original tool.
var defaultSearchDirs = []string{
	"/usr/local/lib/pkgconfig",
	"/usr/local/share/pkgconfig",
	"/usr/lib/pkgconfig",
	"/usr/share/pkgconfig",
}

// Policy is the resolved, environment-and-flag-driven configuration for
// one invocation: where to look for descriptors, what the global tuple
// scope seeds to, and which system directories get special treatment in
// output filtering (§4.2, §6.2).
type Policy struct {
	SearchPath        []string
	NoUninstalled     bool
	OnlyUninstalled   bool
	SysrootDir        string
	AllowSystemCflags bool
	AllowSystemLibs   bool
	IgnoreConflicts   bool
	DebugSpew         bool
	SystemIncludeDirs []string
	SystemLibDirs     []string

	Global *tuple.Scope
}

// LoadPolicy builds a Policy from the process environment, applying the
// command line's overrides (explicit --with-path directories and the
// env-only / no-uninstalled switches) on top.
func LoadPolicy(flags *Flags) *Policy {
	p := &Policy{
		NoUninstalled:     flags.NoUninstalled || os.Getenv("PKG_CONFIG_DISABLE_UNINSTALLED") != "",
		OnlyUninstalled:   flags.Uninstalled,
		AllowSystemCflags: flags.KeepSystemCflags || os.Getenv("PKG_CONFIG_ALLOW_SYSTEM_CFLAGS") != "",
		AllowSystemLibs:   flags.KeepSystemLibs || os.Getenv("PKG_CONFIG_ALLOW_SYSTEM_LIBS") != "",
		IgnoreConflicts:   flags.IgnoreConflicts || os.Getenv("PKG_CONFIG_IGNORE_CONFLICTS") != "",
		DebugSpew:         os.Getenv("PKG_CONFIG_DEBUG_SPEW") != "",
		SysrootDir:        os.Getenv("PKG_CONFIG_SYSROOT_DIR"),
		Global:            tuple.NewScope(),
	}

	p.SystemIncludeDirs = splitPathList(os.Getenv("PKG_CONFIG_SYSTEM_INCLUDE_PATH"))
	if len(p.SystemIncludeDirs) == 0 {
		p.SystemIncludeDirs = []string{"/usr/include"}
	}
	p.SystemLibDirs = splitPathList(os.Getenv("PKG_CONFIG_SYSTEM_LIBRARY_PATH"))
	if len(p.SystemLibDirs) == 0 {
		p.SystemLibDirs = []string{"/usr/lib", "/usr/lib64"}
	}

	var search []string
	search = append(search, flags.WithPath...)

	if !flags.EnvOnly {
		if libdir := os.Getenv("PKG_CONFIG_LIBDIR"); libdir != "" {
			search = append(search, splitPathList(libdir)...)
		} else {
			search = append(search, defaultSearchDirs...)
		}
	}

	if path := os.Getenv("PKG_CONFIG_PATH"); path != "" {
		search = append(splitPathList(path), search...)
	}

	p.SearchPath = dedupPaths(search)

	if top := os.Getenv("PKG_CONFIG_TOP_BUILD_DIR"); top != "" {
		p.Global.Set("pc_top_builddir", top)
	}
	if p.SysrootDir != "" {
		p.Global.Set("pc_sysrootdir", p.SysrootDir)
	} else {
		p.Global.Set("pc_sysrootdir", "/")
	}

	return p
}

// Locator builds the module locator this policy describes.
func (p *Policy) Locator() *locate.Locator {
	return &locate.Locator{
		SearchPath:      p.SearchPath,
		NoUninstalled:   p.NoUninstalled,
		OnlyUninstalled: p.OnlyUninstalled,
	}
}

func splitPathList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, string(os.PathListSeparator))
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func dedupPaths(dirs []string) []string {
	seen := make(map[string]bool, len(dirs))
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		clean := filepath.Clean(d)
		if seen[clean] {
			continue
		}
		seen[clean] = true
		out = append(out, d)
	}
	return out
}
