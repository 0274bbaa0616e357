package templating

import (
	"fmt"
	"strings"
)

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsValidName reports whether name can key a Binding.
func IsValidName(name string) bool {
	return !isBlank(name)
}

// IsValidText reports whether text can be used as a Template text.
func IsValidText(text string) bool {
	return !isBlank(text)
}

// IsValidValue reports whether v can be bound. A Reference is valid when
// its Template currently resolves to non-blank output.
func IsValidValue(v Value) bool {
	return checkValue(v) == nil
}

// ValidatePair checks a name/value pair before it is bound. It returns
// ErrInvalidKey or ErrInvalidValue. A Reference whose Template cannot
// resolve yields an error matching both ErrInvalidValue and the
// resolution failure.
func ValidatePair(name string, value Value) error {
	if !IsValidName(name) {
		return ErrInvalidKey
	}

	return checkValue(value)
}

func checkValue(v Value) error {
	switch va := v.(type) {
	case Literal:
		if isBlank(string(va)) {
			return ErrInvalidValue
		}

		return nil
	case Reference:
		if va.tpl == nil {
			return ErrInvalidValue
		}

		out, err := va.tpl.Resolve()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}

		if isBlank(out) {
			return ErrInvalidValue
		}

		return nil
	default:
		return ErrInvalidValue
	}
}
