// Package tuple implements the ordered variable-name-to-value mapping used
// by module descriptors and the process-wide global scope, with ${name}
// interpolation across a chain of scopes.
package tuple

import (
	"fmt"
	"strings"

	"github.com/iancoleman/orderedmap"
)

// MaxExpansionDepth bounds recursive ${var} interpolation. Chosen per the
// source's suggested bound: large enough for realistic descriptor nesting,
// small enough to reject self-reference quickly.
const MaxExpansionDepth = 64

// Scope is an ordered key/value store. Values are kept in their raw,
// unexpanded form; expansion happens at lookup time so that forward
// references (a value referring to a variable declared later in the same
// file) resolve correctly once the whole descriptor has been read.
type Scope struct {
	values *orderedmap.OrderedMap

	// OnMissing, if set, is invoked whenever expansion falls through to the
	// empty-string default for an undefined variable. Used by strict mode
	// to surface a diagnostic without failing the expansion outright.
	OnMissing func(name string)
}

// NewScope returns an empty scope.
func NewScope() *Scope {
	return &Scope{values: orderedmap.New()}
}

// Set stores the raw value for key, overwriting any previous definition but
// preserving the key's original position in iteration order.
func (s *Scope) Set(key, value string) {
	s.values.Set(key, value)
}

// Raw returns the unexpanded value stored for key.
func (s *Scope) Raw(key string) (string, bool) {
	v, ok := s.values.Get(key)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Keys returns the tuple names in declaration order.
func (s *Scope) Keys() []string {
	return s.values.Keys()
}

// Len reports the number of tuples in the scope.
func (s *Scope) Len() int {
	return len(s.values.Keys())
}

// Get returns the fully expanded value for key, looking first in s and
// falling back to global. A missing variable expands to the empty string.
func (s *Scope) Get(key string, global *Scope) (string, bool) {
	raw, ok := s.lookupRaw(key, global)
	if !ok {
		return "", false
	}
	expanded, err := s.Expand(raw, global)
	if err != nil {
		return "", false
	}
	return expanded, true
}

func (s *Scope) lookupRaw(key string, global *Scope) (string, bool) {
	if s != nil {
		if v, ok := s.Raw(key); ok {
			return v, true
		}
	}
	if global != nil && global != s {
		if v, ok := global.Raw(key); ok {
			return v, true
		}
	}
	return "", false
}

// Expand interpolates every ${name} token in value, resolving names first
// against s and then against global. Unbalanced '$' or '${' without a
// closing '}' is an error. Recursive expansion is bounded by
// MaxExpansionDepth; exceeding it reports a cyclic-expansion error.
func (s *Scope) Expand(value string, global *Scope) (string, error) {
	return s.expand(value, global, 0)
}

func (s *Scope) expand(value string, global *Scope, depth int) (string, error) {
	if depth > MaxExpansionDepth {
		return "", fmt.Errorf("variable expansion exceeded depth %d (possible cyclic reference)", MaxExpansionDepth)
	}

	var out strings.Builder
	i := 0
	for i < len(value) {
		ch := value[i]
		if ch != '$' {
			out.WriteByte(ch)
			i++
			continue
		}

		if i+1 >= len(value) || value[i+1] != '{' {
			return "", fmt.Errorf("unterminated variable reference at offset %d", i)
		}

		end := strings.IndexByte(value[i+2:], '}')
		if end == -1 {
			return "", fmt.Errorf("unterminated variable reference: missing closing brace")
		}
		name := value[i+2 : i+2+end]

		raw, ok := s.lookupRaw(name, global)
		if !ok {
			if s.OnMissing != nil {
				s.OnMissing(name)
			}
			i += 2 + end + 1
			continue
		}

		expanded, err := s.expand(raw, global, depth+1)
		if err != nil {
			return "", err
		}
		out.WriteString(expanded)
		i += 2 + end + 1
	}

	return out.String(), nil
}
