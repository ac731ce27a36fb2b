package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	require.True(t, names["serve"])
	require.True(t, names["chat"])

	flag := root.PersistentFlags().Lookup("env-file")
	require.NotNil(t, flag)
	require.Equal(t, ".env", flag.DefValue)
}
