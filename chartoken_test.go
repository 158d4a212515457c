package spanx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCharTokenIndex(t *testing.T) {
	// tokens: I(0) live(2-6) in(7-9) the(10-13) US(14-16) .(16)
	doc := FromText("I live in the US.")
	idx := NewCharTokenIndex(doc)

	i, ok := idx.Lookup(3)
	require.True(t, ok)
	require.Equal(t, 1, i)
	_, ok = idx.Lookup(1)
	require.False(t, ok, "gap has no owner")
	_, ok = idx.Lookup(100)
	require.False(t, ok)

	i, ok = idx.StartToken(1)
	require.True(t, ok)
	require.Equal(t, 1, i, "gap maps forward")
	i, ok = idx.EndToken(6)
	require.True(t, ok)
	require.Equal(t, 1, i, "gap maps backward")
	i, ok = idx.Lookup(16)
	require.True(t, ok)
	require.Equal(t, 5, i)
}

func TestTokenSpan(t *testing.T) {
	doc := FromText("I live in the US.")
	idx := NewCharTokenIndex(doc)
	testcases := []struct {
		start, end int
		first      int
		last       int
		ok         bool
	}{
		{start: 2, end: 6, first: 1, last: 2, ok: true},
		{start: 3, end: 8, first: 1, last: 3, ok: true},
		{start: 1, end: 9, first: 1, last: 3, ok: true},
		{start: 1, end: 2, ok: false},
		{start: 5, end: 5, ok: false},
		{start: 14, end: 17, first: 4, last: 6, ok: true},
	}
	for _, v := range testcases {
		first, last, ok := idx.TokenSpan(v.start, v.end)
		require.Equal(t, v.ok, ok, "%d-%d", v.start, v.end)
		if ok {
			require.Equal(t, v.first, first, "%d-%d", v.start, v.end)
			require.Equal(t, v.last, last, "%d-%d", v.start, v.end)
		}
	}
}
