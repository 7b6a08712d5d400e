package psi

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadInput_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	content := `{"layer_outputs": [[1, 2], [3, 4]], "trajectory": [[0.1], [0.2]]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	input, err := LoadInput(path, nil)
	require.NoError(t, err)

	assert.Len(t, input.LayerOutputs, 2)
	assert.Equal(t, []float64{3, 4}, input.LayerOutputs[1])
	assert.Len(t, input.Trajectory, 2)
}

func TestLoadInput_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.yml")
	content := `
layer_outputs:
  - [1, 2]
  - [3, 4]
trajectory:
  - [0.5, 0.5]
  - [0.5, 0.5]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	input, err := LoadInput(path, nil)
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 2}, input.LayerOutputs[0])
	assert.Equal(t, []float64{0.5, 0.5}, input.Trajectory[1])
}

func TestLoadInput_Stdin(t *testing.T) {
	input, err := LoadInput("-", strings.NewReader(`{"layer_outputs": [[1]], "trajectory": [[1], [1]]}`))
	require.NoError(t, err)
	assert.Len(t, input.LayerOutputs, 1)
}

func TestLoadInput_Errors(t *testing.T) {
	_, err := LoadInput(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)

	_, err = ParseInput([]byte("{not json"), "json")
	assert.Error(t, err)

	_, err = ParseInput([]byte("{}"), "toml")
	assert.Error(t, err)
}
