// Package validate holds the predicates used to accept or reject raw
// answers typed into the setup wizard.
//
// Every validator is total: it returns false for input it cannot make sense
// of and never panics.
package validate

import (
	"strconv"
	"strings"
)

// Func reports whether a raw answer is acceptable.
type Func func(raw string) bool

// URL accepts strings that start with http:// or https://.
func URL(raw string) bool {
	return strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://")
}

// NonEmpty accepts any non-empty string. Used for tokens and API keys.
func NonEmpty(raw string) bool {
	return len(raw) > 0
}

// CommandGroup accepts any non-empty slash command group name.
func CommandGroup(raw string) bool {
	return len(raw) > 0
}

// Boolean accepts anything strconv.ParseBool understands.
func Boolean(raw string) bool {
	_, err := strconv.ParseBool(raw)
	return err == nil
}

// BoundedInt accepts base-10 integers within [min, max].
func BoundedInt(min, max int) Func {
	return func(raw string) bool {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return false
		}
		return min <= n && n <= max
	}
}

// FixedLengthDigits accepts strings of exactly n ASCII digits.
func FixedLengthDigits(n int) Func {
	return func(raw string) bool {
		if len(raw) != n {
			return false
		}
		for i := 0; i < len(raw); i++ {
			if raw[i] < '0' || raw[i] > '9' {
				return false
			}
		}
		return true
	}
}

// DisabledOr accepts a false boolean ("false", "0", ...) as "feature off",
// and otherwise defers to next.
func DisabledOr(next Func) Func {
	return func(raw string) bool {
		if b, err := strconv.ParseBool(raw); err == nil && !b {
			return true
		}
		return next != nil && next(raw)
	}
}

// AllOf accepts input accepted by every non-nil validator.
func AllOf(validators ...Func) Func {
	return func(raw string) bool {
		for _, v := range validators {
			if v != nil && !v(raw) {
				return false
			}
		}
		return true
	}
}
