// Package schemas embeds the JSON Schemas shipped with the oee tool.
package schemas

import _ "embed"

// ConfigSchemaJSON is the JSON Schema for .oee.yaml project files.
//
//go:embed config.schema.json
var ConfigSchemaJSON string
