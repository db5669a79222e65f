package version

import "fmt"

const operatorChars = "<>=!"

var operators = []string{LessOrEqual, GreaterOrEqual, NotEqual, Equal, Less, Greater}

func isOperatorStart(r rune) bool {
	for _, c := range operatorChars {
		if r == c {
			return true
		}
	}
	return false
}

func nameChar(r rune, i int) bool {
	if r == ' ' || r == '\t' || r == ',' || r == eof {
		return false
	}
	return !isOperatorStart(r)
}

func versionChar(r rune, i int) bool {
	return r != ' ' && r != '\t' && r != ',' && r != eof
}

// ParseDependencyList parses a dependency-clause string such as
// "foo, bar >= 1.2 baz, qux != 2" into an ordered list of predicates, per
// the grammar in §4.3. Predicates may be separated by a comma, whitespace,
// or both.
func ParseDependencyList(input string) ([]Requirement, error) {
	p := &parser{s: input}
	var reqs []Requirement

	p.skipSeparators()
	for !p.atEOF() {
		name := p.expectFunc(nameChar)
		if name == "" {
			return nil, fmt.Errorf("expected module name at offset %d in %q", p.pos, input)
		}

		req := Requirement{Package: name}

		p.skipWhitespace()
		if isOperatorStart(p.peekRune()) {
			op := matchOperator(p)
			if op == "" {
				return nil, fmt.Errorf("invalid version comparison operator at offset %d in %q", p.pos, input)
			}

			p.skipWhitespace()
			ver := p.expectFunc(versionChar)
			if ver == "" {
				return nil, fmt.Errorf("expected version after operator %q in %q", op, input)
			}

			req.Operator = op
			req.Version = ver
		}

		reqs = append(reqs, req)
		p.skipSeparators()
	}

	return reqs, nil
}

func matchOperator(p *parser) string {
	for _, op := range operators {
		end := p.pos + len(op)
		if end <= len(p.s) && p.s[p.pos:end] == op {
			p.pos = end
			return op
		}
	}
	return ""
}
