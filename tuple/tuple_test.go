package tuple

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandBasic(t *testing.T) {
	s := NewScope()
	s.Set("prefix", "/usr")
	s.Set("includedir", "${prefix}/include")

	got, err := s.Expand("-I${includedir}", nil)
	require.NoError(t, err)
	assert.Equal(t, "-I/usr/include", got)
}

func TestExpandFallsBackToGlobal(t *testing.T) {
	global := NewScope()
	global.Set("pc_sysrootdir", "/sysroot")

	local := NewScope()
	got, err := local.Expand("${pc_sysrootdir}/opt", global)
	require.NoError(t, err)
	assert.Equal(t, "/sysroot/opt", got)
}

func TestExpandLocalShadowsGlobal(t *testing.T) {
	global := NewScope()
	global.Set("prefix", "/global")

	local := NewScope()
	local.Set("prefix", "/local")

	got, err := local.Expand("${prefix}", global)
	require.NoError(t, err)
	assert.Equal(t, "/local", got)
}

func TestExpandMissingVariableIsEmpty(t *testing.T) {
	s := NewScope()
	got, err := s.Expand("x${nope}y", nil)
	require.NoError(t, err)
	assert.Equal(t, "xy", got)
}

func TestExpandMissingVariableReportsStrict(t *testing.T) {
	s := NewScope()
	var missing []string
	s.OnMissing = func(name string) { missing = append(missing, name) }

	_, err := s.Expand("${nope}", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"nope"}, missing)
}

func TestExpandUnterminatedBrace(t *testing.T) {
	s := NewScope()
	_, err := s.Expand("${prefix", nil)
	assert.Error(t, err)
}

func TestExpandDanglingDollar(t *testing.T) {
	s := NewScope()
	_, err := s.Expand("$prefix", nil)
	assert.Error(t, err)
}

func TestExpandCyclicReferenceIsBounded(t *testing.T) {
	s := NewScope()
	s.Set("a", "${b}")
	s.Set("b", "${a}")

	_, err := s.Expand("${a}", nil)
	assert.Error(t, err)
}

func TestKeysPreserveDeclarationOrder(t *testing.T) {
	s := NewScope()
	s.Set("z", "1")
	s.Set("a", "2")
	s.Set("m", "3")

	assert.Equal(t, []string{"z", "a", "m"}, s.Keys())
}

func TestGetUsesExpandedValue(t *testing.T) {
	s := NewScope()
	s.Set("prefix", "/usr")
	s.Set("includedir", "${prefix}/include")

	v, ok := s.Get("includedir", nil)
	require.True(t, ok)
	assert.Equal(t, "/usr/include", v)
}
