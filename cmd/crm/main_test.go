package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewEmailCommand(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"preview-email", "welcome"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Ann")
}

func TestPreviewEmailUnknownTemplate(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"preview-email", "nope"})

	assert.Error(t, root.Execute())
}

func TestServeMigrateFlagDefaultsOn(t *testing.T) {
	cmd := newServeCmd()
	flag := cmd.Flags().Lookup("migrate")
	require.NotNil(t, flag)
	assert.Equal(t, "true", flag.DefValue)
}
