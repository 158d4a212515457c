package dedupe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapBackend(t *testing.T) {
	set := NewMapBackend[string]()
	require.True(t, set.Upsert("b"))
	require.True(t, set.Upsert("a"))
	require.False(t, set.Upsert("b"))
	require.Equal(t, 2, set.Len())
	require.Equal(t, []string{"b", "a"}, set.Items())

	var seen []string
	set.IterCallback(func(elem string) { seen = append(seen, elem) })
	require.Equal(t, []string{"b", "a"}, seen)

	set.Cleanup()
	require.Zero(t, set.Len())
}

func TestMapBackendStructs(t *testing.T) {
	type span struct{ start, end int }
	set := NewMapBackend[span]()
	set.Upsert(span{1, 2})
	set.Upsert(span{1, 2})
	set.Upsert(span{0, 2})
	require.Equal(t, []span{{1, 2}, {0, 2}}, set.Items())
}

func TestNewInMemory(t *testing.T) {
	backend := New(false)
	defer backend.Cleanup()
	require.True(t, backend.Upsert("x"))
	require.False(t, backend.Upsert("x"))
}
