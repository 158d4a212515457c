package spanx

import (
	"errors"
	"testing"

	"github.com/projectdiscovery/spanx/fregex"
	"github.com/stretchr/testify/require"
)

func TestPredefinedBuiltins(t *testing.T) {
	table := NewPredefined(nil)
	names := table.Names()
	require.Contains(t, names, "emails")
	require.Contains(t, names, "btc_addresses")
	require.IsIncreasing(t, names)

	// every builtin compiles with the regex engine or its fallback
	for name, pattern := range table.Entries() {
		_, err := fregex.Compile(pattern, "")
		require.NoError(t, err, name)
	}
}

func TestPredefinedResolve(t *testing.T) {
	table := NewPredefined(map[string]string{"tickets": `TCK-\d+`, "emails": `\S+@\S+`})
	pattern, err := table.Resolve("tickets")
	require.NoError(t, err)
	require.Equal(t, `TCK-\d+`, pattern)
	pattern, err = table.Resolve("emails")
	require.NoError(t, err)
	require.Equal(t, `\S+@\S+`, pattern, "extra entries override builtins")

	_, err = table.Resolve("emials")
	require.True(t, errors.Is(err, ErrUnknownPredefinedPattern))
	require.Contains(t, err.Error(), "emails")

	_, err = table.Resolve("zzz")
	require.True(t, errors.Is(err, ErrUnknownPredefinedPattern))
}
