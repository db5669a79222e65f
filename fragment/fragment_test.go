package fragment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendDeduplicatesTypedFragments(t *testing.T) {
	l := NewList()
	l.Append(Fragment{Kind: IncludeDir, Data: "/usr/include"})
	added := l.Append(Fragment{Kind: IncludeDir, Data: "/usr/include"})

	assert.False(t, added)
	assert.Equal(t, 1, l.Len())
}

func TestAppendOtherNeverDeduplicates(t *testing.T) {
	l := NewList()
	l.Append(Fragment{Kind: Other, Data: "-DFOO"})
	l.Append(Fragment{Kind: Other, Data: "-DFOO"})

	assert.Equal(t, 2, l.Len())
}

func TestMergePreservesOrderAndDedup(t *testing.T) {
	a := NewList()
	a.Append(Fragment{Kind: Lib, Data: "foo"})

	b := NewList()
	b.Append(Fragment{Kind: Lib, Data: "bar"})
	b.Append(Fragment{Kind: Lib, Data: "foo"})

	a.Merge(b)

	var data []string
	for _, f := range a.Items() {
		data = append(data, f.Data)
	}
	assert.Equal(t, []string{"foo", "bar"}, data)
}

func TestTokenizeQuotesAndEscapes(t *testing.T) {
	tokens, err := Tokenize(`-I/opt/foo -DFOO="bar baz" -l'quoted lib'`)
	require.NoError(t, err)
	assert.Equal(t, []string{"-I/opt/foo", "-DFOO=bar baz", "-lquoted lib"}, tokens)
}

func TestTokenizeUnterminatedQuote(t *testing.T) {
	_, err := Tokenize(`-I"/opt/foo`)
	assert.Error(t, err)
}

func TestParseClassifiesFragments(t *testing.T) {
	list, err := Parse("-I/opt/foo/include -DFOO -L/opt/foo/lib -lfoo")
	require.NoError(t, err)

	got := list.Items()
	require.Len(t, got, 4)
	assert.Equal(t, Fragment{IncludeDir, "/opt/foo/include"}, got[0])
	assert.Equal(t, Fragment{Other, "-DFOO"}, got[1])
	assert.Equal(t, Fragment{LibDir, "/opt/foo/lib"}, got[2])
	assert.Equal(t, Fragment{Lib, "foo"}, got[3])
}

func TestParseBareDashICapturesFollowingToken(t *testing.T) {
	list, err := Parse("-I /opt/foo/include")
	require.NoError(t, err)

	got := list.Items()
	require.Len(t, got, 1)
	assert.Equal(t, Fragment{IncludeDir, "/opt/foo/include"}, got[0])
}

func TestParseMissingArgumentForBareFlag(t *testing.T) {
	_, err := Parse("-I")
	assert.Error(t, err)
}
