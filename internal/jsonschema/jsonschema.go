// Package jsonschema derives JSON Schemas from Go types via reflection and
// validates incoming argument maps against them. It implements the subset of
// the JSON Schema standard needed to describe tool parameters to a language
// model: object/array/primitive types, descriptions, enums, required fields
// and minimum string lengths.
package jsonschema

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Schema represents the structure of a JSON Schema used for defining tool
// arguments and responses. Schemas are generated once per tool at process
// start and are immutable thereafter.
type Schema struct {
	// Type specifies the data type (e.g. "object", "array", "string", "number").
	Type        string   `json:"type,omitempty"`
	Description string   `json:"description,omitempty"`
	Required    []string `json:"required,omitempty"`
	// Properties of the arguments, each with its own schema.
	Properties map[string]*Schema `json:"properties,omitempty"`
	// For array types, defines the schema of items in the array.
	Items *Schema `json:"items,omitempty"`
	// AdditionalProperties controls whether undeclared properties are allowed.
	AdditionalProperties any `json:"additionalProperties,omitempty"`
	// Default value for the parameter.
	Default any `json:"default,omitempty"`
	// Enum contains the list of allowed values for the parameter.
	Enum []any `json:"enum,omitempty"`
	// MinLength is the minimum length for string parameters. A value of 1
	// marks a string that must not be empty.
	MinLength int `json:"minLength,omitempty"`
}

// GenerateJSONSchema generates a JSON schema for the type T.
// Struct fields are mapped through their json tags; the jsonschema tag
// customises the generated schema:
//
//	Query string `json:"query" jsonschema:"description=Search query,minLength=1,required"`
//	Op    string `json:"op"    jsonschema:"description=Operation,enum=add,enum=sub"`
//
// Non-pointer fields without omitempty are required by default.
func GenerateJSONSchema[T any]() (*Schema, error) {
	return generate(reflect.TypeFor[T]())
}

func generate(t reflect.Type) (*Schema, error) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return fieldSchema(t), nil
	}

	schema := &Schema{Type: "object", Properties: map[string]*Schema{}}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		fieldName := field.Name
		isOmitEmpty := false
		if jsonTag != "" {
			if commaIdx := strings.Index(jsonTag, ","); commaIdx != -1 {
				fieldName = jsonTag[:commaIdx]
				isOmitEmpty = strings.Contains(jsonTag[commaIdx:], "omitempty")
			} else {
				fieldName = jsonTag
			}
		}

		fs := fieldSchema(field.Type)
		requiredByTag, err := applyTag(field.Type, field.Tag, fs)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", fieldName, err)
		}
		schema.Properties[fieldName] = fs

		if (field.Type.Kind() != reflect.Ptr && !isOmitEmpty) || requiredByTag {
			schema.Required = append(schema.Required, fieldName)
		}
	}

	return schema, nil
}

// fieldSchema maps a Go type onto its JSON Schema equivalent.
func fieldSchema(t reflect.Type) *Schema {
	switch t.Kind() {
	case reflect.Ptr:
		return fieldSchema(t.Elem())
	case reflect.String:
		return &Schema{Type: "string"}
	case reflect.Bool:
		return &Schema{Type: "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}
	case reflect.Slice, reflect.Array:
		return &Schema{Type: "array", Items: fieldSchema(t.Elem())}
	case reflect.Map:
		return &Schema{Type: "object", AdditionalProperties: true}
	case reflect.Struct:
		nested, err := generate(t)
		if err != nil {
			return &Schema{Type: "object"}
		}
		return nested
	default:
		// Interfaces and anything exotic: accept any JSON value.
		return &Schema{}
	}
}

// applyTag parses the jsonschema struct tag and applies its settings to the
// schema. Reports whether the field was explicitly marked required.
func applyTag(fieldType reflect.Type, tag reflect.StructTag, schema *Schema) (bool, error) {
	jsonSchemaTag := tag.Get("jsonschema")
	if len(jsonSchemaTag) == 0 {
		return false, nil
	}

	requiredByTag := false
	for _, tagItem := range strings.Split(jsonSchemaTag, ",") {
		kv := strings.SplitN(tagItem, "=", 2)

		if len(kv) == 1 {
			if kv[0] == "required" {
				requiredByTag = true
			}
			continue
		}

		key, value := kv[0], kv[1]
		switch key {
		case "description":
			// Descriptions accumulate so a comma inside the text only costs
			// the author an extra description= prefix, not a parser.
			if schema.Description != "" {
				schema.Description += ", " + value
			} else {
				schema.Description = value
			}
		case "minLength":
			n, err := strconv.Atoi(value)
			if err != nil {
				return false, fmt.Errorf("parse minLength %q: %w", value, err)
			}
			schema.MinLength = n
		case "default":
			parsed, err := parseTagValue(fieldType, value)
			if err != nil {
				return false, fmt.Errorf("parse default %q: %w", value, err)
			}
			schema.Default = parsed
		case "enum":
			parsed, err := parseTagValue(fieldType, value)
			if err != nil {
				return false, fmt.Errorf("parse enum %q: %w", value, err)
			}
			schema.Enum = append(schema.Enum, parsed)
		}
	}

	return requiredByTag, nil
}

// parseTagValue converts a tag literal into the field's native type so enum
// and default values round-trip through JSON with the right kind.
func parseTagValue(fieldType reflect.Type, value string) (any, error) {
	for fieldType.Kind() == reflect.Ptr {
		fieldType = fieldType.Elem()
	}

	switch fieldType.Kind() {
	case reflect.String:
		return value, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.ParseInt(value, 10, 64)
	case reflect.Float32, reflect.Float64:
		return strconv.ParseFloat(value, 64)
	case reflect.Bool:
		return strconv.ParseBool(value)
	default:
		return nil, fmt.Errorf("unsupported tag value type: %v", fieldType)
	}
}
