// Package schemas embeds the JSON Schemas describing persisted artifacts.
package schemas

import _ "embed"

// Document is the JSON Schema of a persisted resume document snapshot.
//
//go:embed document.schema.json
var Document []byte
