package main

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCmdRejectsBadFlags(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	tests := map[string][]string{
		"loan days":  {"--loan-days", "0"},
		"log level":  {"--log-level", "chatty"},
		"unknown":    {"--frobnicate"},
		"bad number": {"--loan-days", "two"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			cmd := newRootCmd()
			cmd.SetArgs(args)
			cmd.SetOut(io.Discard)
			cmd.SetErr(io.Discard)
			require.Error(t, cmd.Execute())
		})
	}
}
