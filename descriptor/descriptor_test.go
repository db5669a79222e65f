package descriptor

import (
	"strings"
	"testing"

	"github.com/ngrange/pkgconf/fragment"
	"github.com/ngrange/pkgconf/tuple"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, content string) *Module {
	t.Helper()
	m, err := Parse(strings.NewReader(content), "test.pc", "test", tuple.NewScope(), Options{})
	require.NoError(t, err)
	return m
}

func TestParseBasicFields(t *testing.T) {
	m := parse(t, "Name: foo\nDescription: a foo library\nVersion: 1.0\n")
	assert.Equal(t, "foo", m.Name)
	assert.Equal(t, "a foo library", m.Description)
	assert.Equal(t, "1.0", m.Version)
}

func TestParseVariableExpansion(t *testing.T) {
	m := parse(t, "prefix=/usr\nincludedir=${prefix}/include\nCflags: -I${includedir}\n")
	require.Equal(t, 1, m.Cflags.Len())
	assert.Equal(t, fragment.Fragment{Kind: fragment.IncludeDir, Data: "/usr/include"}, m.Cflags.Items()[0])
}

func TestParseForwardReference(t *testing.T) {
	// includedir is defined after it's referenced by Cflags in file order;
	// expansion is deferred to after the whole file is read (§4.1).
	m := parse(t, "Cflags: -I${includedir}\nprefix=/usr\nincludedir=${prefix}/include\n")
	require.Equal(t, 1, m.Cflags.Len())
	assert.Equal(t, "/usr/include", m.Cflags.Items()[0].Data)
}

func TestParseRequires(t *testing.T) {
	m := parse(t, "Requires: bar >= 1.0, baz\nRequires.private: qux\n")
	require.Len(t, m.Requires, 2)
	assert.Equal(t, "bar", m.Requires[0].Package)
	require.Len(t, m.RequiresPrivate, 1)
	assert.Equal(t, "qux", m.RequiresPrivate[0].Package)
}

func TestParseConflicts(t *testing.T) {
	m := parse(t, "Conflicts: old-foo < 2.0\n")
	require.Len(t, m.Conflicts, 1)
	assert.Equal(t, "old-foo", m.Conflicts[0].Package)
}

func TestParseCommentsAndBlankLinesIgnored(t *testing.T) {
	m := parse(t, "# a comment\n\nName: foo\n\n# trailing\n")
	assert.Equal(t, "foo", m.Name)
}

func TestParseUnknownDirectiveStoredAsTuple(t *testing.T) {
	m := parse(t, "X-Custom: hello\n")
	v, ok := m.Tuples.Get("X-Custom", nil)
	require.True(t, ok)
	assert.Equal(t, "hello", v)
}

func TestParseInvalidTupleName(t *testing.T) {
	_, err := Parse(strings.NewReader("1bad=value\n"), "test.pc", "test", tuple.NewScope(), Options{})
	assert.Error(t, err)
}

func TestParseErrorIncludesLineNumber(t *testing.T) {
	_, err := Parse(strings.NewReader("Name: foo\nCflags: -I\"unterminated\n"), "test.pc", "test", tuple.NewScope(), Options{})
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Line)
}

func TestParseStrictModeReportsMissingVariable(t *testing.T) {
	var missing []string
	opts := Options{
		Strict: true,
		OnMissing: func(moduleID, name string) {
			missing = append(missing, name)
		},
	}
	_, err := Parse(strings.NewReader("Cflags: -I${nope}\n"), "test.pc", "test", tuple.NewScope(), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"nope"}, missing)
}

func TestParseSummarySkipsCflagsAndLibs(t *testing.T) {
	m, err := ParseSummary(strings.NewReader("Name: foo\nVersion: 1.0\nCflags: -I/does/not/matter\n"), "test.pc", "test", tuple.NewScope())
	require.NoError(t, err)
	assert.Equal(t, "foo", m.Name)
	assert.Equal(t, "1.0", m.Version)
	assert.Nil(t, m.Cflags)
}
