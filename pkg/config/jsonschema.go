// SPDX-License-Identifier: Apache-2.0
package config

import (
	"encoding/json"
	"strings"
)

const schemaDraft = "https://json-schema.org/draft/2020-12/schema"

// schemaNode is one JSON Schema object; the root additionally carries
// $schema, title and description.
type schemaNode struct {
	Schema               string                 `json:"$schema,omitempty"`
	Title                string                 `json:"title,omitempty"`
	Type                 string                 `json:"type,omitempty"`
	Description          string                 `json:"description,omitempty"`
	Default              any                    `json:"default,omitempty"`
	Enum                 []string               `json:"enum,omitempty"`
	Pattern              string                 `json:"pattern,omitempty"`
	Properties           map[string]*schemaNode `json:"properties,omitempty"`
	AdditionalProperties *bool                  `json:"additionalProperties,omitempty"`
}

var jsonTypes = map[string]string{
	"bool":   "boolean",
	"string": "string",
	"enum":   "string",
	"int":    "integer",
}

// GenerateJSONSchema describes the user config file, one property per
// registered key with dotted keys nested as objects.
func GenerateJSONSchema() ([]byte, error) {
	closed := false
	root := &schemaNode{
		Schema:               schemaDraft,
		Title:                "Zypher Configuration",
		Description:          "Settings for the zypher CLI (~/.config/zypher/config.yaml)",
		Type:                 "object",
		Properties:           map[string]*schemaNode{},
		AdditionalProperties: &closed,
	}

	for _, key := range RegisteredKeys() {
		def := ConfigRegistry[key]
		parent, name := objectFor(root, def.Key)
		parent.Properties[name] = leaf(def)
	}

	return json.MarshalIndent(root, "", "  ")
}

// objectFor walks the dotted key, creating intermediate objects, and
// returns the node that holds the last segment.
func objectFor(root *schemaNode, key string) (*schemaNode, string) {
	parts := strings.Split(key, ".")
	node := root
	for _, p := range parts[:len(parts)-1] {
		child, ok := node.Properties[p]
		if !ok {
			child = &schemaNode{Type: "object", Properties: map[string]*schemaNode{}}
			node.Properties[p] = child
		}
		node = child
	}
	return node, parts[len(parts)-1]
}

func leaf(def ConfigKeyDefinition) *schemaNode {
	n := &schemaNode{
		Type:        jsonTypes[def.Type],
		Description: def.Description,
		Default:     def.Default,
	}
	switch def.Type {
	case "enum":
		n.Enum = def.EnumValues
	case "string":
		n.Pattern = def.Pattern
	}
	return n
}
