package output

import (
	"fmt"
	"strings"
)

// OutputFormat represents the available report file formats
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// ParseFormat maps a user-supplied format name to an OutputFormat
func ParseFormat(name string) (OutputFormat, error) {
	switch strings.ToLower(name) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", name)
	}
}
