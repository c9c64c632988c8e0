package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// schemaFor compiles configDir/schemas/<name>. A missing schema file is not
// an error: content packs are allowed to ship without schemas.
func schemaFor(configDir, name string) *jsonschema.Schema {
	p := filepath.Join(configDir, "schemas", name)
	if _, err := os.Stat(p); err != nil {
		return nil
	}
	s, err := jsonschema.Compile(p)
	if err != nil {
		return nil
	}
	return s
}

// readValidated reads configDir/<file> and, when a schema with the matching
// name exists, validates the raw document before returning it.
func readValidated(configDir, file string) ([]byte, error) {
	raw, err := os.ReadFile(filepath.Join(configDir, file))
	if err != nil {
		return nil, err
	}
	schemaName := strings.TrimSuffix(file, ".json") + ".schema.json"
	if s := schemaFor(configDir, schemaName); s != nil {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		if err := s.Validate(v); err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
	}
	return raw, nil
}
