// Package docs serves the OpenAPI description of the HTTP API.
package docs

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed openapi.json
var baseDocument []byte

const (
	customerOptionsProperty = "customerOptions"
	addItemSchemaMarker     = "additemtocart"
)

var patchedMethods = []string{"get", "post", "put", "patch", "delete"}

// CustomerOptionsSchema describes the customerOptions request field: option
// codes mapped to arrays of selected values.
func CustomerOptionsSchema() map[string]any {
	return map[string]any{
		"type":        "object",
		"description": "Customer options configuration: keys are customer option codes, values are arrays of selected values.",
		"additionalProperties": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"example": map[string]any{
			"some_option": []any{"val_1", "val_2"},
			"text_option": []any{"Custom text input"},
		},
	}
}

// Base decodes the embedded, unpatched document.
func Base() (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(baseDocument, &doc); err != nil {
		return nil, fmt.Errorf("decode openapi document: %w", err)
	}
	return doc, nil
}

// JSON renders the patched document.
func JSON() ([]byte, error) {
	doc, err := Base()
	if err != nil {
		return nil, err
	}
	return json.Marshal(PatchCustomerOptions(doc))
}

// PatchCustomerOptions adds the customerOptions property to every add-to-cart
// component schema and to inline request bodies that carry a product variant.
// doc is modified in place and returned.
func PatchCustomerOptions(doc map[string]any) map[string]any {
	if doc == nil {
		return nil
	}

	if components, ok := doc["components"].(map[string]any); ok {
		if schemas, ok := components["schemas"].(map[string]any); ok {
			for name, raw := range schemas {
				schema, ok := raw.(map[string]any)
				if !ok || !isAddItemName(name) {
					continue
				}
				setCustomerOptions(schema)
			}
		}
	}

	paths, _ := doc["paths"].(map[string]any)
	for _, rawItem := range paths {
		pathItem, ok := rawItem.(map[string]any)
		if !ok {
			continue
		}
		for _, method := range patchedMethods {
			operation, ok := pathItem[method].(map[string]any)
			if !ok {
				continue
			}
			patchRequestBody(operation)
		}
	}
	return doc
}

func patchRequestBody(operation map[string]any) {
	body, ok := operation["requestBody"].(map[string]any)
	if !ok {
		return
	}
	content, ok := body["content"].(map[string]any)
	if !ok {
		return
	}
	for _, rawMedia := range content {
		media, ok := rawMedia.(map[string]any)
		if !ok {
			continue
		}
		schema, ok := media["schema"].(map[string]any)
		if !ok {
			continue
		}
		if ref, ok := schema["$ref"].(string); ok && isAddItemName(ref) {
			continue
		}
		if isInlineAddItemSchema(schema) {
			setCustomerOptions(schema)
		}
	}
}

func isInlineAddItemSchema(schema map[string]any) bool {
	if kind, _ := schema["type"].(string); kind != "object" {
		return false
	}
	props, ok := schema["properties"].(map[string]any)
	if !ok {
		return false
	}
	_, variant := props["productVariant"]
	_, variantCode := props["productVariantCode"]
	return variant || variantCode
}

func setCustomerOptions(schema map[string]any) {
	props, ok := schema["properties"].(map[string]any)
	if !ok {
		props = map[string]any{}
		schema["properties"] = props
	}
	props[customerOptionsProperty] = CustomerOptionsSchema()
}

func isAddItemName(name string) bool {
	return strings.Contains(strings.ToLower(name), addItemSchemaMarker)
}
