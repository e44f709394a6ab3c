package ruleset

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://fuzzy/ruleset.json"

// schemaJSON describes a rule-set document after YAML decoding.
const schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["rules"],
  "additionalProperties": false,
  "properties": {
    "name":        {"type": "string", "pattern": "^[A-Za-z0-9_-]+$"},
    "description": {"type": "string"},
    "unit":        {"type": "string"},
    "rules": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["op", "output", "curve"],
        "additionalProperties": false,
        "properties": {
          "op":     {"type": "string", "enum": ["seed", "init", "and", "or", "not"]},
          "output": {"type": "string", "minLength": 1},
          "curve": {
            "type": "object",
            "required": ["kind", "params"],
            "additionalProperties": false,
            "properties": {
              "kind":   {"type": "string", "minLength": 1},
              "params": {"type": "array", "minItems": 1, "items": {"type": "number"}}
            }
          }
        }
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// schema compiles the rule-set schema once.
func schema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal([]byte(schemaJSON), &doc); err != nil {
			schemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}

		compiledSchema, schemaErr = c.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// validateDocument checks a decoded YAML document against the schema.
func validateDocument(doc any) error {
	sch, err := schema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	// The validator expects JSON-shaped values (float64 numbers, string keys).
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}

	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("%w: schema validation failed: %v", ErrInvalidDefinition, err)
	}
	return nil
}
