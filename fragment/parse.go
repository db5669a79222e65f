package fragment

import (
	"fmt"
	"strings"
)

// Tokenize splits value the way a shell would split an unquoted word list:
// whitespace separates tokens, single and double quotes protect embedded
// whitespace, and a backslash escapes the following character (outside
// single quotes, where it is literal).
func Tokenize(value string) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	haveToken := false

	const (
		none = iota
		single
		double
	)
	quote := none

	flush := func() {
		if haveToken {
			tokens = append(tokens, cur.String())
			cur.Reset()
			haveToken = false
		}
	}

	runes := []rune(value)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch quote {
		case single:
			if r == '\'' {
				quote = none
			} else {
				cur.WriteRune(r)
			}
			continue
		case double:
			switch r {
			case '"':
				quote = none
			case '\\':
				if i+1 < len(runes) && (runes[i+1] == '"' || runes[i+1] == '\\' || runes[i+1] == '$') {
					i++
					cur.WriteRune(runes[i])
				} else {
					cur.WriteRune(r)
				}
			default:
				cur.WriteRune(r)
			}
			continue
		}

		switch r {
		case ' ', '\t', '\n':
			flush()
		case '\'':
			quote = single
			haveToken = true
		case '"':
			quote = double
			haveToken = true
		case '\\':
			if i+1 >= len(runes) {
				return nil, fmt.Errorf("trailing backslash in %q", value)
			}
			i++
			cur.WriteRune(runes[i])
			haveToken = true
		default:
			cur.WriteRune(r)
			haveToken = true
		}
	}

	if quote != none {
		return nil, fmt.Errorf("unterminated quote in %q", value)
	}
	flush()

	return tokens, nil
}

// Parse tokenizes an already variable-expanded Cflags/Libs/Libs.private
// value and classifies each token into a typed fragment: "-I<x>" (and the
// bare "-I" form attaching the following token) becomes IncludeDir, "-L<x>"
// becomes LibDir, "-l<x>" becomes Lib, anything else is preserved verbatim
// as Other.
func Parse(value string) (*List, error) {
	tokens, err := Tokenize(value)
	if err != nil {
		return nil, err
	}

	list := NewList()
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		switch {
		case tok == "-I" || tok == "-L" || tok == "-l":
			i++
			if i >= len(tokens) {
				return nil, fmt.Errorf("missing argument for %q", tok)
			}
			list.Append(Fragment{Kind: Kind(tok[1]), Data: tokens[i]})
		case strings.HasPrefix(tok, "-I"):
			list.Append(Fragment{Kind: IncludeDir, Data: tok[2:]})
		case strings.HasPrefix(tok, "-L"):
			list.Append(Fragment{Kind: LibDir, Data: tok[2:]})
		case strings.HasPrefix(tok, "-l"):
			list.Append(Fragment{Kind: Lib, Data: tok[2:]})
		default:
			list.Append(Fragment{Kind: Other, Data: tok})
		}
	}

	return list, nil
}
