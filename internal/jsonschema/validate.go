package jsonschema

import (
	"errors"
	"fmt"
	"math"
	"reflect"
)

// Validate checks a decoded JSON argument map against an object schema.
// It verifies that all required properties are present, that each declared
// property has the expected JSON type, that enum constraints hold, and that
// strings meet their minimum length. Undeclared properties are tolerated;
// models routinely add extras and rejecting them would only stall the loop.
//
// All violations are collected and returned as a single joined error.
func (s *Schema) Validate(args map[string]any) error {
	if s == nil || s.Type != "object" {
		return nil
	}

	var problems []error

	for _, name := range s.Required {
		if _, ok := args[name]; !ok {
			problems = append(problems, fmt.Errorf("missing required parameter %q", name))
		}
	}

	for name, value := range args {
		propSchema, declared := s.Properties[name]
		if !declared {
			continue
		}
		if err := propSchema.validateValue(name, value); err != nil {
			problems = append(problems, err)
		}
	}

	return errors.Join(problems...)
}

func (s *Schema) validateValue(name string, value any) error {
	if value == nil {
		// null is only acceptable for optional parameters, and those were
		// already filtered by the required check.
		return fmt.Errorf("parameter %q must not be null", name)
	}

	switch s.Type {
	case "string":
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("parameter %q must be a string, got %T", name, value)
		}
		if s.MinLength > 0 && len(str) < s.MinLength {
			return fmt.Errorf("parameter %q must be at least %d characters long", name, s.MinLength)
		}
	case "integer":
		num, ok := value.(float64) // encoding/json decodes all numbers as float64
		if !ok {
			return fmt.Errorf("parameter %q must be an integer, got %T", name, value)
		}
		if num != math.Trunc(num) {
			return fmt.Errorf("parameter %q must be an integer, got %v", name, num)
		}
	case "number":
		if _, ok := value.(float64); !ok {
			return fmt.Errorf("parameter %q must be a number, got %T", name, value)
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("parameter %q must be a boolean, got %T", name, value)
		}
	case "array":
		items, ok := value.([]any)
		if !ok {
			return fmt.Errorf("parameter %q must be an array, got %T", name, value)
		}
		if s.Items != nil {
			for i, item := range items {
				if err := s.Items.validateValue(fmt.Sprintf("%s[%d]", name, i), item); err != nil {
					return err
				}
			}
		}
	case "object":
		nested, ok := value.(map[string]any)
		if !ok {
			return fmt.Errorf("parameter %q must be an object, got %T", name, value)
		}
		if err := s.Validate(nested); err != nil {
			return fmt.Errorf("parameter %q: %w", name, err)
		}
	}

	if len(s.Enum) > 0 && !enumContains(s.Enum, value) {
		return fmt.Errorf("parameter %q must be one of %v, got %v", name, s.Enum, value)
	}

	return nil
}

// enumContains compares loosely across numeric kinds: enum values parsed from
// struct tags may be int64 while decoded JSON numbers are float64.
func enumContains(enum []any, value any) bool {
	for _, allowed := range enum {
		if reflect.DeepEqual(allowed, value) {
			return true
		}
		af, aok := toFloat(allowed)
		vf, vok := toFloat(value)
		if aok && vok && af == vf {
			return true
		}
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
