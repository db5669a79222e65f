package main

import (
	"path/filepath"
	"strings"

	"github.com/ngrange/pkgconf/fragment"
)

// renderFragments turns a fragment list into the output line pkg-config
// prints, applying sysroot prefixing to -I/-L fragments and suppressing
// fragments that point into a system directory unless the caller opted to
// keep them (§6.2). When restrict is true, only fragments of kind only are
// kept — including fragment.Other, for the -only-other flags, which is why
// this takes an explicit bool rather than treating the Kind zero value as
// "no restriction" (fragment.Other is itself the zero value).
//
// Each surviving fragment is followed by a single trailing space, matching
// the literal fixtures in §8 (e.g. "-I/opt/foo/include -DFOO "); the
// caller adds the final newline.
func renderFragments(list *fragment.List, p *Policy, restrict bool, only fragment.Kind, keepSystem bool) string {
	var b strings.Builder
	for _, f := range list.Items() {
		if restrict && f.Kind != only {
			continue
		}

		if !keepSystem && isSystemDir(f, p) {
			continue
		}

		if f.Kind == fragment.IncludeDir || f.Kind == fragment.LibDir {
			f.Data = applySysroot(f.Data, p.SysrootDir)
		}

		b.WriteString(f.String())
		b.WriteByte(' ')
	}
	return b.String()
}

// isSystemDir reports whether f names a directory in the compiled-in
// system include/library path. The comparison is case-insensitive, unlike
// the fragment de-duplication fragment.List performs, which is
// case-sensitive; the original tool carries this same asymmetry.
func isSystemDir(f fragment.Fragment, p *Policy) bool {
	var dirs []string
	switch f.Kind {
	case fragment.IncludeDir:
		dirs = p.SystemIncludeDirs
	case fragment.LibDir:
		dirs = p.SystemLibDirs
	default:
		return false
	}

	clean := filepath.Clean(f.Data)
	for _, d := range dirs {
		if strings.EqualFold(clean, filepath.Clean(d)) {
			return true
		}
	}
	return false
}

// applySysroot prefixes an absolute directory with the configured sysroot,
// per PKG_CONFIG_SYSROOT_DIR semantics: relative paths and an empty/root
// sysroot pass through unchanged.
func applySysroot(dir, sysroot string) string {
	if sysroot == "" || sysroot == "/" || !filepath.IsAbs(dir) {
		return dir
	}
	if strings.HasPrefix(dir, sysroot) {
		return dir
	}
	return filepath.Join(sysroot, dir)
}
