// Package locate resolves a module name to an on-disk .pc descriptor path,
// using a search-path policy with environment-driven overrides (§4.2).
package locate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Locator finds .pc descriptors across an ordered search path.
type Locator struct {
	// SearchPath lists directories to search, in order.
	SearchPath []string
	// NoUninstalled disables the "-uninstalled.pc" lookup entirely, either
	// because --no-uninstalled was given or PKG_CONFIG_DISABLE_UNINSTALLED
	// is set.
	NoUninstalled bool
	// OnlyUninstalled restricts lookup to the "-uninstalled.pc" variant,
	// skipping the installed descriptor entirely when given (--uninstalled).
	// Mutually exclusive with NoUninstalled in practice, though neither
	// side enforces that here.
	OnlyUninstalled bool
}

// Result is a located descriptor's path plus whether it resolved through
// the "-uninstalled.pc" variant.
type Result struct {
	Path        string
	Uninstalled bool
}

// ErrNotFound is returned (wrapped with the module name) when no
// descriptor can be located anywhere on the search path.
var ErrNotFound = fmt.Errorf("module not found")

// Find resolves name to a descriptor path.
//
// If name contains a path separator and names an existing file, that file
// is opened directly regardless of the search path. Otherwise each search
// directory is tried in order; when the uninstalled variant is enabled,
// "<name>-uninstalled.pc" is tried before "<name>.pc" in the same
// directory.
func (l *Locator) Find(name string) (Result, error) {
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			return Result{Path: name}, nil
		}
		return Result{}, fmt.Errorf("%s: %w", name, ErrNotFound)
	}

	for _, dir := range l.SearchPath {
		if !l.NoUninstalled {
			uninstalled := filepath.Join(dir, name+"-uninstalled.pc")
			if fileExists(uninstalled) {
				return Result{Path: uninstalled, Uninstalled: true}, nil
			}
		}

		if l.OnlyUninstalled {
			continue
		}

		path := filepath.Join(dir, name+".pc")
		if fileExists(path) {
			return Result{Path: path}, nil
		}
	}

	return Result{}, fmt.Errorf("%s: %w", name, ErrNotFound)
}

// ModuleID derives the stable module identifier from a descriptor path:
// the basename with the .pc (or -uninstalled.pc) suffix stripped.
func ModuleID(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".pc")
	base = strings.TrimSuffix(base, "-uninstalled")
	return base
}

// Entry is one row of a --list-all enumeration.
type Entry struct {
	ID          string
	Path        string
	Uninstalled bool
}

// ListAll enumerates every *.pc file (installed and, unless disabled,
// uninstalled) across the whole search path, directories in order, files
// within a directory sorted by file name. Each ID is listed once: the first
// file seen for an ID is kept and later files with the same ID, in the same
// or a later directory, are skipped.
func (l *Locator) ListAll() ([]Entry, error) {
	var entries []Entry
	seen := map[string]bool{}

	for _, dir := range l.SearchPath {
		files, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading search directory %s: %w", dir, err)
		}

		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), ".pc") {
				continue
			}
			uninstalled := strings.HasSuffix(f.Name(), "-uninstalled.pc")
			if uninstalled && l.NoUninstalled {
				continue
			}

			id := ModuleID(f.Name())
			if seen[id] {
				continue
			}
			seen[id] = true

			entries = append(entries, Entry{
				ID:          id,
				Path:        filepath.Join(dir, f.Name()),
				Uninstalled: uninstalled,
			})
		}
	}

	return entries, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
