// Package descriptor reads a single .pc module descriptor file into a
// Module record: recognized Key: value properties, key=value tuples with
// ${var} interpolation, and the Requires/Conflicts/Cflags/Libs fields
// parsed through the version and fragment grammars.
package descriptor

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ngrange/pkgconf/fragment"
	"github.com/ngrange/pkgconf/tuple"
	"github.com/ngrange/pkgconf/version"
)

// Module is the in-memory form of a loaded .pc descriptor.
type Module struct {
	ID          string // stable identifier, typically the filename stem
	Path        string // canonical on-disk path; empty for synthetic modules
	Uninstalled bool

	Name        string
	Description string
	URL         string
	Version     string

	Tuples *tuple.Scope

	Requires        []version.Requirement
	RequiresPrivate []version.Requirement
	Conflicts       []version.Requirement

	Cflags      *fragment.List
	Libs        *fragment.List
	LibsPrivate *fragment.List
}

// ParseError reports a descriptor syntax error with the file and line at
// which it occurred.
type ParseError struct {
	Path string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
}

var tupleNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

var knownFields = map[string]bool{
	"Name": true, "Description": true, "URL": true, "Version": true,
	"Requires": true, "Requires.private": true, "Conflicts": true,
	"Cflags": true, "Libs": true, "Libs.private": true,
}

// Strict, when true, invokes onMissing for every undefined variable
// encountered during expansion instead of silently substituting the empty
// string, per spec §3's "empty string (with diagnostic in strict mode)".
type Options struct {
	Strict    bool
	OnMissing func(moduleID, varName string)
}

// Parse reads one .pc descriptor from r and returns the populated Module.
// id is the stable identifier (normally the filename stem), path is used
// only for error reporting, and global is the process-wide tuple scope
// consulted when a local tuple is undefined.
func Parse(r io.Reader, path, id string, global *tuple.Scope, opts Options) (*Module, error) {
	m := &Module{
		ID:          id,
		Path:        path,
		Tuples:      tuple.NewScope(),
		Cflags:      fragment.NewList(),
		Libs:        fragment.NewList(),
		LibsPrivate: fragment.NewList(),
	}

	if opts.Strict && opts.OnMissing != nil {
		m.Tuples.OnMissing = func(name string) { opts.OnMissing(id, name) }
	}

	raw, lineOf, err := scanLines(r, path, m.Tuples)
	if err != nil {
		return nil, err
	}

	expand := func(key string) (string, error) {
		v, ok := raw[key]
		if !ok {
			return "", nil
		}
		expanded, err := m.Tuples.Expand(v, global)
		if err != nil {
			return "", &ParseError{path, lineOf[key], err.Error()}
		}
		return expanded, nil
	}

	if m.Name, err = expand("Name"); err != nil {
		return nil, err
	}
	if m.Description, err = expand("Description"); err != nil {
		return nil, err
	}
	if m.URL, err = expand("URL"); err != nil {
		return nil, err
	}
	if m.Version, err = expand("Version"); err != nil {
		return nil, err
	}

	for _, spec := range []struct {
		key string
		dst *[]version.Requirement
	}{
		{"Requires", &m.Requires},
		{"Requires.private", &m.RequiresPrivate},
		{"Conflicts", &m.Conflicts},
	} {
		expanded, err := expand(spec.key)
		if err != nil {
			return nil, err
		}
		if expanded == "" {
			continue
		}
		reqs, err := version.ParseDependencyList(expanded)
		if err != nil {
			return nil, &ParseError{path, lineOf[spec.key], err.Error()}
		}
		*spec.dst = reqs
	}

	for _, spec := range []struct {
		key string
		dst **fragment.List
	}{
		{"Cflags", &m.Cflags},
		{"Libs", &m.Libs},
		{"Libs.private", &m.LibsPrivate},
	} {
		expanded, err := expand(spec.key)
		if err != nil {
			return nil, err
		}
		if expanded == "" {
			continue
		}
		list, err := fragment.Parse(expanded)
		if err != nil {
			return nil, &ParseError{path, lineOf[spec.key], err.Error()}
		}
		*spec.dst = list
	}

	return m, nil
}

// ParseSummary reads only the Name/Description/Version/URL fields of a
// descriptor, skipping Requires/Conflicts/Cflags/Libs expansion entirely.
// Used by list-all enumeration (§4.2), where scanning every descriptor on
// the search path would otherwise pay the full expansion cost for fields
// that are thrown away.
func ParseSummary(r io.Reader, path, id string, global *tuple.Scope) (*Module, error) {
	m := &Module{ID: id, Path: path, Tuples: tuple.NewScope()}

	raw, lineOf, err := scanLines(r, path, m.Tuples)
	if err != nil {
		return nil, err
	}

	for _, field := range []struct {
		key string
		dst *string
	}{
		{"Name", &m.Name},
		{"Description", &m.Description},
		{"URL", &m.URL},
		{"Version", &m.Version},
	} {
		v, ok := raw[field.key]
		if !ok {
			continue
		}
		expanded, err := m.Tuples.Expand(v, global)
		if err != nil {
			return nil, &ParseError{path, lineOf[field.key], err.Error()}
		}
		*field.dst = expanded
	}

	return m, nil
}

// scanLines reads every line of a descriptor, populating tuples in place
// and returning the raw (unexpanded) value and originating line number of
// every recognized or unrecognized "Key: value" directive.
func scanLines(r io.Reader, path string, tuples *tuple.Scope) (raw map[string]string, lineOf map[string]int, err error) {
	raw = map[string]string{}
	lineOf = map[string]int{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if key, value, ok := splitKeyValue(trimmed); ok {
			if !tupleNameRe.MatchString(key) {
				return nil, nil, &ParseError{path, lineNo, fmt.Sprintf("invalid tuple name %q", key)}
			}
			tuples.Set(key, value)
			continue
		}

		if key, value, ok := splitDirective(trimmed); ok {
			raw[key] = value
			lineOf[key] = lineNo
			if !knownFields[key] {
				// Unrecognized "Key: value" directives are stored as
				// tuples, per §4.1.
				tuples.Set(key, value)
			}
			continue
		}

		return nil, nil, &ParseError{path, lineNo, fmt.Sprintf("unparsable line: %q", line)}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return raw, lineOf, nil
}

// splitKeyValue recognizes the "key=value" tuple-definition form.
func splitKeyValue(line string) (key, value string, ok bool) {
	eq := strings.IndexByte(line, '=')
	if eq == -1 {
		return "", "", false
	}
	colon := strings.IndexByte(line, ':')
	// "Key: value" takes precedence when the colon appears before any '='.
	if colon != -1 && colon < eq {
		return "", "", false
	}
	key = strings.TrimSpace(line[:eq])
	if key == "" || !tupleNameRe.MatchString(key) {
		return "", "", false
	}
	value = strings.TrimSpace(line[eq+1:])
	return key, value, true
}

// splitDirective recognizes the "Key: value" property form.
func splitDirective(line string) (key, value string, ok bool) {
	colon := strings.IndexByte(line, ':')
	if colon == -1 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:colon])
	if key == "" {
		return "", "", false
	}
	value = strings.TrimSpace(line[colon+1:])
	return key, value, true
}
