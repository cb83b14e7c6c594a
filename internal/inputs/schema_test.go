package inputs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultSchema checks the embedded action.yml against the inputs the
// resolver reads, so the two cannot drift apart.
func TestDefaultSchema(t *testing.T) {
	schema, err := DefaultSchema()
	require.NoError(t, err)

	assert.Equal(t, "Electron Builder Action", schema.Name)

	names := make([]string, 0)
	for _, in := range schema.Inputs() {
		names = append(names, in.Name)
	}
	assert.ElementsMatch(t, []string{
		InputGitHubToken, InputRelease, InputPackageRoot, InputBuildScriptName,
		InputSkipBuild, InputSkipInstall, InputUseVueCLI, InputArgs,
		InputMaxAttempts, InputAppRoot, InputMacCerts, InputMacCertsPassword,
		InputWindowsCerts, InputWindowsCertsPassword,
	}, names)

	token, ok := schema.Lookup(InputGitHubToken)
	require.True(t, ok)
	assert.True(t, token.Required)
	assert.Empty(t, token.Default)

	release, ok := schema.Lookup(InputRelease)
	require.True(t, ok)
	assert.True(t, release.Required)
	assert.Equal(t, "false", release.Default)

	appRoot, ok := schema.Lookup(InputAppRoot)
	require.True(t, ok)
	assert.True(t, appRoot.Deprecated())
	assert.False(t, appRoot.Required)
}

// TestParseSchema_PreservesOrder verifies inputs come back in declaration
// order rather than map order.
func TestParseSchema_PreservesOrder(t *testing.T) {
	data := []byte(`
name: test
inputs:
  zeta:
    required: true
  alpha:
    default: "1"
  mid:
    description: middle
`)
	schema, err := ParseSchema(data)
	require.NoError(t, err)

	inputs := schema.Inputs()
	require.Len(t, inputs, 3)
	assert.Equal(t, "zeta", inputs[0].Name)
	assert.True(t, inputs[0].Required)
	assert.Equal(t, "alpha", inputs[1].Name)
	assert.Equal(t, "1", inputs[1].Default)
	assert.Equal(t, "mid", inputs[2].Name)
	assert.Equal(t, "middle", inputs[2].Description)
}

func TestParseSchema_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "invalid yaml",
			data: "inputs: [",
		},
		{
			name: "missing inputs",
			data: "name: test\n",
		},
		{
			name: "inputs is a list",
			data: "inputs:\n  - release\n",
		},
		{
			name: "required is not a boolean",
			data: "inputs:\n  release:\n    required: maybe\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSchema([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

// TestSchema_InputsReturnsCopy verifies callers cannot mutate the schema
// through the returned slice.
func TestSchema_InputsReturnsCopy(t *testing.T) {
	schema, err := ParseSchema([]byte("inputs:\n  a:\n    default: x\n"))
	require.NoError(t, err)

	inputs := schema.Inputs()
	inputs[0].Default = "changed"

	spec, ok := schema.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "x", spec.Default)
}
