package files

import (
	"encoding/json"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// IsJsonType checks if the content is a valid JSON document.
func IsJsonType(content []byte) bool {
	var jsonData map[string]interface{}
	return json.Unmarshal(content, &jsonData) == nil
}

// DetectFormat returns FormatJSON when the content is a JSON object and FormatYAML otherwise.
// It doesn't check that the content is valid YAML.
func DetectFormat(content []byte) string {
	if IsJsonType(content) {
		return FormatJSON
	}
	return FormatYAML
}
