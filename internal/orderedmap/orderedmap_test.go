package orderedmap_test

import (
	"testing"

	"github.com/lestrrat-go/gallium/internal/orderedmap"
	"github.com/stretchr/testify/require"
)

func TestMapOrder(t *testing.T) {
	m := orderedmap.New[string, int]()

	require.NoError(t, m.Set("variant", 1), "first Set should succeed")
	require.NoError(t, m.Set("size", 2), "second Set should succeed")
	require.NoError(t, m.Set("disabled", 3), "third Set should succeed")
	require.ErrorIs(t, m.Set("size", 99), orderedmap.ErrDuplicateEntry, "Set should reject duplicate keys")

	var keys []string
	for k := range m.Range() {
		keys = append(keys, k)
	}
	require.Equal(t, []string{"variant", "size", "disabled"}, keys, "Range should yield keys in insertion order")
}

func TestMapReplace(t *testing.T) {
	m := orderedmap.New[string, int]()

	require.NoError(t, m.Set("a", 1), "Set should succeed")
	require.NoError(t, m.Set("b", 2), "Set should succeed")

	m.Replace("a", 10)
	m.Replace("c", 3)

	v, ok := m.Get("a")
	require.True(t, ok, "Get should find a replaced key")
	require.Equal(t, 10, v, "Replace should overwrite the value")

	var keys []string
	for k := range m.Range() {
		keys = append(keys, k)
	}
	require.Equal(t, []string{"a", "b", "c"}, keys, "Replace should keep the original position of existing keys")

	_, ok = m.Get("missing")
	require.False(t, ok, "Get should report absence")
	require.Equal(t, 3, m.Len(), "Len should count distinct keys")
}
