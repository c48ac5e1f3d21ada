package coerce

import (
	"fmt"

	"github.com/spf13/cast"
)

// ============================================================================
// SAFE COERCION HELPERS
// These try to convert an arbitrary input to the target type. On failure
// they return a descriptive error, never panic.
// ============================================================================

// ToString converts input to its string form.
// Almost every type converts, so this never fails.
// Nil becomes the empty string "".
func ToString(input interface{}) string {
	if input == nil {
		return ""
	}
	s, err := cast.ToStringE(input)
	if err != nil {
		// Last resort: maps, slices and structs still print something readable.
		return fmt.Sprintf("%v", input)
	}
	return s
}

// ToInt converts input to int.
// Accepts numeric strings ("123"), whole floats (123.0) and so on.
// Fails on non-numeric strings ("budi"), objects, etc.
func ToInt(input interface{}) (int, error) {
	if input == nil {
		return 0, nil
	}
	i, err := cast.ToIntE(input)
	if err != nil {
		return 0, fmt.Errorf("failed to coerce value '%v' (type %T) to int", input, input)
	}
	return i, nil
}

// ToIntDef is ToInt with a fallback when coercion fails.
func ToIntDef(input interface{}, defaultVal int) int {
	val, err := ToInt(input)
	if err != nil {
		return defaultVal
	}
	return val
}
