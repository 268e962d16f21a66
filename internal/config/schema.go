package config

import (
	"encoding/json"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	gopserrors "github.com/acidni/googleops/internal/errors"
)

// configSchema constrains the googleops.yaml document. The vault section
// stays open because its keys belong to whichever backend type selects.
const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "cli": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "script": {"type": "string", "minLength": 1},
        "interpreter": {"type": "string", "minLength": 1},
        "timeout_ms": {"type": "integer", "minimum": 0}
      }
    },
    "vault": {
      "type": "object",
      "properties": {
        "type": {"type": "string", "minLength": 1}
      }
    },
    "server": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "addr": {"type": "string", "minLength": 1},
        "cosmos_endpoint": {"type": "string", "minLength": 1},
        "cosmos_database": {"type": "string", "minLength": 1}
      }
    }
  }
}`

// validateSchema parses the raw YAML and checks the resulting document
// against configSchema before any typed decoding happens, so typos like an
// unknown top-level section fail with the schema's words.
func validateSchema(data []byte) error {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return gopserrors.ConfigError{
			Field:      "config",
			Message:    "invalid YAML syntax in configuration file",
			Suggestion: "Check for indentation errors, missing quotes, or invalid characters. Use a YAML validator",
		}
	}
	if raw == nil {
		return nil
	}

	jsonData, err := json.Marshal(raw)
	if err != nil {
		return gopserrors.ConfigError{
			Field:   "config",
			Message: "configuration cannot be represented as JSON for validation",
		}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(configSchema),
		gojsonschema.NewBytesLoader(jsonData),
	)
	if err != nil {
		return gopserrors.ConfigError{
			Field:   "config",
			Message: "schema validation error: " + err.Error(),
		}
	}

	if !result.Valid() {
		var messages []string
		for _, desc := range result.Errors() {
			messages = append(messages, desc.String())
		}
		return gopserrors.ConfigError{
			Field:      "config",
			Message:    "configuration does not match the expected schema",
			Suggestion: strings.Join(messages, "; "),
		}
	}

	return nil
}
