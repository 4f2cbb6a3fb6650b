package stext

import "github.com/santhosh-tekuri/jsonschema/v5"

// layoutSchemaJSON describes the accepted structured-text shape. The schema
// checks structure and types only; content problems below that level (a
// missing font size, an empty text) degrade to skipped runs during line
// building instead of failing the document.
const layoutSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["pages"],
  "properties": {
    "pages": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "number": {"type": "integer", "minimum": 1},
          "width": {"type": "number", "minimum": 0},
          "height": {"type": "number", "minimum": 0},
          "blocks": {
            "type": "array",
            "items": {
              "type": "object",
              "properties": {
                "type": {"type": "string"},
                "bbox": {"$ref": "#/$defs/bbox"},
                "lines": {
                  "type": "array",
                  "items": {
                    "type": "object",
                    "properties": {
                      "wmode": {"type": "integer"},
                      "bbox": {"$ref": "#/$defs/bbox"},
                      "font": {
                        "type": "object",
                        "properties": {
                          "name": {"type": "string"},
                          "family": {"type": "string"},
                          "weight": {"type": "string"},
                          "style": {"type": "string"},
                          "size": {"type": "number"}
                        }
                      },
                      "x": {"type": "number"},
                      "y": {"type": "number"},
                      "text": {"type": "string"}
                    }
                  }
                }
              }
            }
          }
        }
      }
    }
  },
  "$defs": {
    "bbox": {
      "type": "object",
      "properties": {
        "x": {"type": "number"},
        "y": {"type": "number"},
        "w": {"type": "number"},
        "h": {"type": "number"}
      }
    }
  }
}`

var layoutSchema = jsonschema.MustCompileString("stext.schema.json", layoutSchemaJSON)
