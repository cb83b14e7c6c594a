package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/electron-builder-action/internal/inputs"
)

func TestInputsCommand_Text(t *testing.T) {
	out, err := execute(t, "inputs")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Greater(t, len(lines), 1)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.Contains(t, out, "github_token")
	assert.Contains(t, out, "(deprecated)")
}

func TestInputsCommand_JSON(t *testing.T) {
	out, err := execute(t, "inputs", "--json")
	require.NoError(t, err)

	var result struct {
		Inputs []struct {
			Name     string `json:"name"`
			Required bool   `json:"required"`
			Default  string `json:"default"`
			EnvVar   string `json:"envVar"`
		} `json:"inputs"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	byName := make(map[string]int)
	for i, in := range result.Inputs {
		byName[in.Name] = i
	}

	i, ok := byName[inputs.InputMaxAttempts]
	require.True(t, ok)
	assert.Equal(t, "1", result.Inputs[i].Default)
	assert.Equal(t, "INPUT_MAX_ATTEMPTS", result.Inputs[i].EnvVar)

	i, ok = byName[inputs.InputGitHubToken]
	require.True(t, ok)
	assert.True(t, result.Inputs[i].Required)
}

func TestPrintInputsText(t *testing.T) {
	var buf bytes.Buffer
	printInputsText(&buf, []inputs.InputSpec{
		{Name: "release", Required: true, Default: "false", Description: "Release it"},
		{Name: "app_root", Description: "Old", DeprecationMessage: "use package_root"},
	})

	assert.Equal(t,
		"NAME                     REQUIRED  DEFAULT   DESCRIPTION\n"+
			"release                  yes       false     Release it\n"+
			"app_root                 no        -         (deprecated) Old\n",
		buf.String())
}
