// Package parse converts LLM-supplied text into typed Go values, tolerating
// the malformed JSON that models routinely emit (single quotes, unquoted
// keys, trailing commas). Invalid JSON is repaired with jsonrepair before
// giving up.
package parse

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	"github.com/kaptinlin/jsonrepair"
)

// ParseStringAs attempts to parse a string into the specified type T.
// For primitive types (string, bool, int, uint, float) it performs direct
// conversion. For complex types (structs, maps, slices) it attempts JSON
// unmarshaling, repairing the input and retrying once when the first
// unmarshal fails.
//
// Example:
//
//	// Parse a valid JSON string
//	person, err := ParseStringAs[Person](`{"name":"John","age":30}`)
//
//	// Parse an invalid JSON string (will be auto-repaired)
//	person, err := ParseStringAs[Person](`{name: 'John', age: 30}`)
func ParseStringAs[T any](content string) (T, error) {
	var result T

	switch reflect.TypeFor[T]().Kind() {
	case reflect.String:
		reflect.ValueOf(&result).Elem().SetString(content)
		return result, nil

	case reflect.Bool:
		val, err := strconv.ParseBool(content)
		if err != nil {
			return result, fmt.Errorf("failed to parse content as bool: %w", err)
		}
		reflect.ValueOf(&result).Elem().SetBool(val)
		return result, nil

	case reflect.Float32, reflect.Float64:
		val, err := strconv.ParseFloat(content, 64)
		if err != nil {
			return result, fmt.Errorf("failed to parse content as float: %w", err)
		}
		reflect.ValueOf(&result).Elem().SetFloat(val)
		return result, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		val, err := strconv.ParseInt(content, 10, 64)
		if err != nil {
			return result, fmt.Errorf("failed to parse content as int: %w", err)
		}
		reflect.ValueOf(&result).Elem().SetInt(val)
		return result, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		val, err := strconv.ParseUint(content, 10, 64)
		if err != nil {
			return result, fmt.Errorf("failed to parse content as uint: %w", err)
		}
		reflect.ValueOf(&result).Elem().SetUint(val)
		return result, nil

	default:
		err := json.Unmarshal([]byte(content), &result)
		if err == nil {
			return result, nil
		}

		repaired, repairErr := jsonrepair.JSONRepair(content)
		if repairErr != nil {
			return result, fmt.Errorf("failed to unmarshal content as %T and failed to repair JSON: unmarshal error: %w, repair error: %v", result, err, repairErr)
		}

		if err = json.Unmarshal([]byte(repaired), &result); err != nil {
			return result, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w (original content: %s)", result, err, content)
		}
		return result, nil
	}
}

// ParseArguments decodes a tool-call argument string into a generic map,
// repairing malformed JSON the same way ParseStringAs does. An empty string
// yields an empty map: tools without parameters are called with no arguments.
func ParseArguments(content string) (map[string]any, error) {
	if content == "" {
		return map[string]any{}, nil
	}
	return ParseStringAs[map[string]any](content)
}
