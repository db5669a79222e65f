package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ngrange/pkgconf/descriptor"
	"github.com/ngrange/pkgconf/locate"
	"github.com/ngrange/pkgconf/tuple"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePC(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".pc"), []byte(content), 0o644))
}

func newResolver(t *testing.T, dir string, flags Flags) *Resolver {
	t.Helper()
	return New(&locate.Locator{SearchPath: []string{dir}}, tuple.NewScope(), flags)
}

func TestTraverseOrdersChildrenBeforeParents(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "leaf", "Name: leaf\nVersion: 1.0\nCflags: -Ileaf\n")
	writePC(t, dir, "mid", "Name: mid\nVersion: 1.0\nRequires: leaf\nCflags: -Imid\n")
	writePC(t, dir, "top", "Name: top\nVersion: 1.0\nRequires: mid\nCflags: -Itop\n")

	r := newResolver(t, dir, Flags{MaxDepth: -1})
	world, err := BuildWorld([]string{"top"})
	require.NoError(t, err)
	r.Flags.SkipRootVirtual = true

	var order []string
	err = r.Traverse(world, func(m *descriptor.Module) { order = append(order, m.ID) })
	require.NoError(t, err)
	assert.Equal(t, []string{"leaf", "mid", "top"}, order)
}

func TestCflagsDeduplicatesAcrossSharedDependency(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "common", "Name: common\nVersion: 1.0\nCflags: -Ishared\n")
	writePC(t, dir, "a", "Name: a\nVersion: 1.0\nRequires: common\nCflags: -Ia\n")
	writePC(t, dir, "b", "Name: b\nVersion: 1.0\nRequires: common\nCflags: -Ib\n")

	r := newResolver(t, dir, Flags{MaxDepth: -1, SkipRootVirtual: true})
	world, err := BuildWorld([]string{"a", "b"})
	require.NoError(t, err)

	cflags, err := r.Cflags(world)
	require.NoError(t, err)

	var dirs []string
	for _, f := range cflags.Items() {
		dirs = append(dirs, f.Data)
	}
	assert.Equal(t, []string{"shared", "a", "b"}, dirs)
}

func TestTraverseSilentlyPrunesBeyondMaxDepth(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "leaf", "Name: leaf\nVersion: 1.0\nCflags: -Ileaf\n")
	writePC(t, dir, "mid", "Name: mid\nVersion: 1.0\nRequires: leaf\nCflags: -Imid\n")
	writePC(t, dir, "top", "Name: top\nVersion: 1.0\nRequires: mid\nCflags: -Itop\n")

	r := newResolver(t, dir, Flags{MaxDepth: 1, SkipRootVirtual: true})
	world, err := BuildWorld([]string{"top"})
	require.NoError(t, err)

	var order []string
	err = r.Traverse(world, func(m *descriptor.Module) { order = append(order, m.ID) })
	require.NoError(t, err)
	assert.Equal(t, []string{"top"}, order)
}

func TestTraverseIsCycleSafe(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "a", "Name: a\nVersion: 1.0\nRequires: b\n")
	writePC(t, dir, "b", "Name: b\nVersion: 1.0\nRequires: a\n")

	r := newResolver(t, dir, Flags{MaxDepth: -1, SkipRootVirtual: true})
	world, err := BuildWorld([]string{"a"})
	require.NoError(t, err)

	var order []string
	err = r.Traverse(world, func(m *descriptor.Module) { order = append(order, m.ID) })
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, order)
}

func TestTraverseReportsUnknownModule(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "top", "Name: top\nVersion: 1.0\nRequires: missing\n")

	r := newResolver(t, dir, Flags{MaxDepth: -1, SkipRootVirtual: true})
	world, err := BuildWorld([]string{"top"})
	require.NoError(t, err)

	err = r.Traverse(world, func(*descriptor.Module) {})
	require.Error(t, err)
	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	var unknownErr *UnknownModuleError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "missing", unknownErr.Package)
}

func TestTraverseReportsVersionMismatch(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "dep", "Name: dep\nVersion: 1.0\n")
	writePC(t, dir, "top", "Name: top\nVersion: 1.0\nRequires: dep >= 2.0\n")

	r := newResolver(t, dir, Flags{MaxDepth: -1, SkipRootVirtual: true})
	world, err := BuildWorld([]string{"top"})
	require.NoError(t, err)

	err = r.Traverse(world, func(*descriptor.Module) {})
	require.Error(t, err)
	var mismatch *VersionMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "dep", mismatch.Package)
}

func TestTraverseReportsConflict(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "old", "Name: old\nVersion: 1.0\n")
	writePC(t, dir, "top", "Name: top\nVersion: 1.0\nRequires: old\nConflicts: old < 2.0\n")

	r := newResolver(t, dir, Flags{MaxDepth: -1, SkipRootVirtual: true})
	world, err := BuildWorld([]string{"top"})
	require.NoError(t, err)

	err = r.Traverse(world, func(*descriptor.Module) {})
	require.Error(t, err)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "top", conflict.Module)
	assert.Equal(t, "old", conflict.Conflicting)
}

func TestSkipConflictsSuppressesConflictCheck(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "old", "Name: old\nVersion: 1.0\n")
	writePC(t, dir, "top", "Name: top\nVersion: 1.0\nRequires: old\nConflicts: old < 2.0\n")

	r := newResolver(t, dir, Flags{MaxDepth: -1, SkipRootVirtual: true, SkipConflicts: true})
	world, err := BuildWorld([]string{"top"})
	require.NoError(t, err)

	err = r.Traverse(world, func(*descriptor.Module) {})
	require.NoError(t, err)
}

func TestRequiresPrivateOnlyWalkedWhenSearchPrivate(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "priv", "Name: priv\nVersion: 1.0\nCflags: -Ipriv\n")
	writePC(t, dir, "top", "Name: top\nVersion: 1.0\nRequires.private: priv\nCflags: -Itop\n")

	r := newResolver(t, dir, Flags{MaxDepth: -1, SkipRootVirtual: true})
	world, err := BuildWorld([]string{"top"})
	require.NoError(t, err)

	cflags, err := r.Cflags(world)
	require.NoError(t, err)
	require.Equal(t, 1, cflags.Len())
	assert.Equal(t, "top", cflags.Items()[0].Data)

	r.Flags.SearchPrivate = true
	r.cache = map[string]*descriptor.Module{}
	r.state = map[string]loadState{}
	cflags, err = r.Cflags(world)
	require.NoError(t, err)
	require.Equal(t, 2, cflags.Len())
}

func TestLibsMergesPrivateOnlyWhenBothFlagsSet(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "dep", "Name: dep\nVersion: 1.0\nLibs: -ldep\nLibs.private: -lstatic-only\n")
	writePC(t, dir, "top", "Name: top\nVersion: 1.0\nRequires.private: dep\nLibs: -ltop\n")

	r := newResolver(t, dir, Flags{MaxDepth: -1, SkipRootVirtual: true, SearchPrivate: true, MergePrivateFragments: true})
	world, err := BuildWorld([]string{"top"})
	require.NoError(t, err)

	libs, err := r.Libs(world)
	require.NoError(t, err)

	var names []string
	for _, f := range libs.Items() {
		names = append(names, f.Data)
	}
	assert.Contains(t, names, "static-only")
}

func TestVariableJoinsAcrossModules(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "dep", "prefix=/usr\nName: dep\nVersion: 1.0\ntarget=dep-target\n")
	writePC(t, dir, "top", "prefix=/usr\nName: top\nVersion: 1.0\nRequires: dep\ntarget=top-target\n")

	r := newResolver(t, dir, Flags{MaxDepth: -1, SkipRootVirtual: true})
	world, err := BuildWorld([]string{"top"})
	require.NoError(t, err)

	v, err := r.Variable(world, "target")
	require.NoError(t, err)
	assert.Equal(t, "dep-target top-target", v)
}

func TestValidateSucceedsOnCleanGraph(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "dep", "Name: dep\nVersion: 1.0\n")
	writePC(t, dir, "top", "Name: top\nVersion: 1.0\nRequires: dep >= 1.0\n")

	r := newResolver(t, dir, Flags{MaxDepth: -1, SkipRootVirtual: true})
	world, err := BuildWorld([]string{"top"})
	require.NoError(t, err)

	assert.NoError(t, Validate(r, world))
}

func TestBuildWorldRejectsEmptyRequestList(t *testing.T) {
	_, err := BuildWorld(nil)
	assert.ErrorIs(t, err, ErrEmptyRequestList)
}

func TestBuildWorldParsesVersionPredicates(t *testing.T) {
	world, err := BuildWorld([]string{"foo >= 1.2", "bar"})
	require.NoError(t, err)
	require.Len(t, world.Requires, 2)
	assert.Equal(t, "foo", world.Requires[0].Package)
	assert.Equal(t, "bar", world.Requires[1].Package)
}

func TestResolutionErrorIncludesGraphPath(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "top", "Name: top\nVersion: 1.0\nRequires: missing\n")

	r := newResolver(t, dir, Flags{MaxDepth: -1, SkipRootVirtual: true})
	world, err := BuildWorld([]string{"top"})
	require.NoError(t, err)

	err = r.Traverse(world, func(*descriptor.Module) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires")
	assert.Contains(t, err.Error(), "top")
}
