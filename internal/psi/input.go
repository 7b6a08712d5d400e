package psi

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yairfalse/wbcheck/pkg/types"
	"gopkg.in/yaml.v3"
)

// LoadInput reads layer outputs and a trajectory from a JSON or YAML file.
// The path "-" reads JSON from stdin.
func LoadInput(path string, stdin io.Reader) (*types.ScoreInput, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read score input: %w", err)
	}

	return ParseInput(data, inputFormat(path))
}

// ParseInput decodes score input in the given format ("json" or "yaml")
func ParseInput(data []byte, format string) (*types.ScoreInput, error) {
	var input types.ScoreInput

	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, &input); err != nil {
			return nil, fmt.Errorf("failed to parse YAML score input: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &input); err != nil {
			return nil, fmt.Errorf("failed to parse JSON score input: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported input format: %s", format)
	}

	return &input, nil
}

func inputFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}
