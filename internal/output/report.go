package output

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/yairfalse/wbcheck/internal/storage"
	"gopkg.in/yaml.v3"
)

// Format renders v as an indented JSON or YAML document
func Format(v interface{}, format OutputFormat) ([]byte, error) {
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		encoder := json.NewEncoder(&buf)
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		if err := encoder.Encode(v); err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteToFile formats v and writes it to filename atomically
func WriteToFile(writer *storage.AtomicWriter, v interface{}, format OutputFormat, filename string) error {
	data, err := Format(v, format)
	if err != nil {
		return err
	}
	return writer.WriteFile(filename, data, 0644)
}
