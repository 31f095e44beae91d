package main

import (
	"bytes"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_RootCmdVersion(t *testing.T) {
	expectedVersion := buildInfo.String()
	actualVersion := rootCmd.Version

	assert.Equal(t, expectedVersion, actualVersion)
}

func Test_Subcommands(t *testing.T) {
	var names []string
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Name())
	}

	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "browse")
	assert.Contains(t, names, "list-routes")
}

func Test_wordSepNormalizeFunc(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)

	assert.Equal(t, pflag.NormalizedName("per-page"), wordSepNormalizeFunc(flags, "per_page"))
	assert.Equal(t, pflag.NormalizedName("log-file"), wordSepNormalizeFunc(flags, "log-file"))
}

func Test_listRoutes(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, listRoutes(&out))

	assert.Equal(t,
		"GET     /api/users\n"+
			"GET     /api/users/{username}/repos\n"+
			"GET     /healthz\n",
		out.String())
}
