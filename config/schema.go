package config

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/swaggest/jsonschema-go"
)

var (
	schemaOnce   sync.Once
	schemaCached string
	schemaErr    error
)

// Schema returns the JSON schema for the YAML config surface, generated by
// reflection so the schema and the Config struct cannot drift apart. The
// schema is generated once and cached.
func Schema() (string, error) {
	schemaOnce.Do(func() {
		schemaCached, schemaErr = generateSchema()
	})
	return schemaCached, schemaErr
}

func generateSchema() (string, error) {
	r := jsonschema.Reflector{}

	schema, err := r.Reflect(Config{}, jsonschema.InlineRefs)
	if err != nil {
		return "", fmt.Errorf("failed to generate config schema: %w", err)
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal config schema: %w", err)
	}
	return string(data), nil
}
