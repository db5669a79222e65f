// Package fragment implements the typed compiler/linker token produced by
// module Cflags/Libs values, and the ordered, de-duplicating list that
// accumulates them during traversal.
package fragment

import "fmt"

// Kind identifies what a Fragment represents.
type Kind byte

const (
	// IncludeDir is a -I<dir> fragment.
	IncludeDir Kind = 'I'
	// LibDir is a -L<dir> fragment.
	LibDir Kind = 'L'
	// Lib is a -l<name> fragment.
	Lib Kind = 'l'
	// Other is any raw, unclassified token, preserved verbatim.
	Other Kind = 0
)

// Fragment is a single typed compiler/linker token.
type Fragment struct {
	Kind Kind
	Data string
}

func (f Fragment) String() string {
	switch f.Kind {
	case IncludeDir, LibDir, Lib:
		return fmt.Sprintf("-%c%s", byte(f.Kind), f.Data)
	default:
		return f.Data
	}
}

// List is an ordered sequence of fragments. Appending a duplicate
// (Kind, Data) pair for IncludeDir, LibDir, or Lib is a no-op; Other
// fragments always append, preserving order and multiplicity.
type List struct {
	items []Fragment
	seen  map[Fragment]struct{}
}

// NewList returns an empty fragment list.
func NewList() *List {
	return &List{seen: make(map[Fragment]struct{})}
}

// Append adds f to the list, applying de-duplication rules for typed
// fragments. Returns true if the fragment was actually added.
func (l *List) Append(f Fragment) bool {
	if f.Kind == IncludeDir || f.Kind == LibDir || f.Kind == Lib {
		if _, dup := l.seen[f]; dup {
			return false
		}
		l.seen[f] = struct{}{}
	}
	l.items = append(l.items, f)
	return true
}

// Merge appends every fragment of other onto l, in order, applying the
// same de-duplication rules as Append.
func (l *List) Merge(other *List) {
	if other == nil {
		return
	}
	for _, f := range other.items {
		l.Append(f)
	}
}

// Items returns the fragments in traversal/declaration order. The
// returned slice must not be mutated by the caller.
func (l *List) Items() []Fragment {
	return l.items
}

// Len reports the number of fragments currently in the list.
func (l *List) Len() int {
	return len(l.items)
}
