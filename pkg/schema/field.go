package schema

import (
	"fmt"
	"strconv"

	"github.com/jfmusicbot/botsetup/pkg/validate"
)

// ValueType declares the scalar type a field's answer is stored as.
type ValueType string

const (
	TypeString  ValueType = "string"
	TypeInteger ValueType = "integer"
	TypeBoolean ValueType = "boolean"
)

// Valid reports whether t is one of the known value types.
func (t ValueType) Valid() bool {
	switch t {
	case TypeString, TypeInteger, TypeBoolean:
		return true
	}
	return false
}

// Field describes one setting the wizard asks for.
type Field struct {
	Key         string
	Description string
	Type        ValueType
	// Validator is optional; nil accepts anything of the right type.
	Validator validate.Func
	// Required fields are asked even when the operator skips the full setup.
	Required bool
	// Default is nil or a string, int or bool literal. It is stored as-is
	// when the operator accepts it.
	Default any
}

// HasDefault reports whether the field offers a default answer.
func (f Field) HasDefault() bool {
	return f.Default != nil
}

// DefaultText renders the default the way an operator would type it.
func (f Field) DefaultText() string {
	return FormatValue(f.Default)
}

// Check reports whether raw is an acceptable answer: it must parse as the
// field's type and pass the field's validator.
func (f Field) Check(raw string) bool {
	switch f.Type {
	case TypeInteger:
		if _, err := strconv.Atoi(raw); err != nil {
			return false
		}
	case TypeBoolean:
		if !validate.Boolean(raw) {
			return false
		}
	}
	if f.Validator == nil {
		return true
	}
	return f.Validator(raw)
}

// Resolve turns an accepted raw answer into the value stored in the
// Configuration. Typing the default's text yields the default literal.
func (f Field) Resolve(raw string) any {
	if f.HasDefault() && sameAnswer(f.Default, raw) {
		return f.Default
	}
	if raw == "" && !f.HasDefault() && f.Type == TypeString {
		return nil
	}
	v, err := Coerce(f.Type, raw)
	if err != nil {
		return raw
	}
	return v
}

// Coerce converts raw to the Go value for t.
func Coerce(t ValueType, raw string) (any, error) {
	switch t {
	case TypeInteger:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", raw)
		}
		return n, nil
	case TypeBoolean:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not a boolean", raw)
		}
		return b, nil
	case TypeString:
		return raw, nil
	default:
		return nil, fmt.Errorf("unknown value type %q", t)
	}
}

// FormatValue renders a stored value as answer text. nil renders empty.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	default:
		return fmt.Sprint(val)
	}
}

// sameAnswer reports whether raw selects the default. A boolean default, or
// a string default spelling a boolean, is selected by every spelling of the
// same boolean ("false", "F", "0"), so a disabled setting is always written
// the same way.
func sameAnswer(def any, raw string) bool {
	switch d := def.(type) {
	case bool:
		b, err := strconv.ParseBool(raw)
		return err == nil && b == d
	case string:
		if db, err := strconv.ParseBool(d); err == nil {
			b, err := strconv.ParseBool(raw)
			return err == nil && b == db
		}
	}
	return raw == FormatValue(def)
}
