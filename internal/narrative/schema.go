package narrative

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// responseSchema validates the event service's wire response before any of
// it reaches the simulation core. An invalid payload is indistinguishable
// from "no event".
const responseSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["event"],
  "properties": {
    "event": {
      "oneOf": [
        {"type": "null"},
        {
          "type": "object",
          "required": ["id", "type", "title", "description", "choices"],
          "properties": {
            "id": {"type": "string", "minLength": 1},
            "type": {"enum": ["economic", "social", "natural", "military", "political"]},
            "title": {"type": "string", "minLength": 1},
            "description": {"type": "string", "minLength": 1},
            "icon": {"type": "string"},
            "choices": {
              "type": "array",
              "minItems": 2,
              "items": {
                "type": "object",
                "required": ["id", "text", "effects"],
                "properties": {
                  "id": {"type": "string", "minLength": 1},
                  "text": {"type": "string", "minLength": 1},
                  "effects": {
                    "type": "array",
                    "items": {
                      "type": "object",
                      "required": ["type", "target", "value"],
                      "properties": {
                        "type": {"enum": ["resource", "population", "military", "production"]},
                        "target": {"type": "string", "minLength": 1},
                        "value": {"type": "number"},
                        "isPercentage": {"type": "boolean"}
                      }
                    }
                  },
                  "requirements": {
                    "type": "object",
                    "properties": {
                      "food": {"type": "number"},
                      "wood": {"type": "number"},
                      "stone": {"type": "number"},
                      "gold": {"type": "number"}
                    }
                  }
                }
              }
            }
          }
        }
      ]
    },
    "source": {"enum": ["ai", "fallback"]}
  }
}`

var compiledSchema = jsonschema.MustCompileString("event-response.json", responseSchema)

// ValidateResponse checks a raw response body against the wire schema.
func ValidateResponse(body []byte) error {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("parse body: %w", err)
	}
	if err := compiledSchema.Validate(v); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	return nil
}
