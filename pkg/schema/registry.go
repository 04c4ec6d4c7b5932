package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Registry is an ordered, immutable list of fields. Order is the order the
// wizard asks in and the order keys are written to the config file.
type Registry struct {
	fields []Field
	index  map[string]int
}

// NewRegistry validates fields and returns a registry holding a copy of them.
func NewRegistry(fields ...Field) (Registry, error) {
	reg := Registry{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if strings.TrimSpace(f.Key) == "" {
			return Registry{}, fmt.Errorf("field %d has no key", len(reg.fields)+1)
		}
		if _, exists := reg.index[f.Key]; exists {
			return Registry{}, fmt.Errorf("duplicate field key %q", f.Key)
		}
		if f.Type == "" {
			f.Type = TypeString
		}
		if !f.Type.Valid() {
			return Registry{}, fmt.Errorf("field %q: unknown value type %q", f.Key, f.Type)
		}
		if err := checkDefault(f); err != nil {
			return Registry{}, err
		}
		reg.index[f.Key] = len(reg.fields)
		reg.fields = append(reg.fields, f)
	}
	return reg, nil
}

// MustRegistry is NewRegistry for schemas compiled into the program.
func MustRegistry(fields ...Field) Registry {
	reg, err := NewRegistry(fields...)
	if err != nil {
		panic(err)
	}
	return reg
}

func checkDefault(f Field) error {
	switch f.Default.(type) {
	case nil, string, int, bool:
	default:
		return fmt.Errorf("field %q: unsupported default of type %T", f.Key, f.Default)
	}
	if f.HasDefault() && !f.Check(f.DefaultText()) {
		return fmt.Errorf("field %q: default %q fails its own check", f.Key, f.DefaultText())
	}
	return nil
}

// Len returns the number of fields.
func (r Registry) Len() int {
	return len(r.fields)
}

// Fields returns the fields in order. The slice is a copy.
func (r Registry) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Keys returns the field keys in order.
func (r Registry) Keys() []string {
	keys := make([]string, 0, len(r.fields))
	for _, f := range r.fields {
		keys = append(keys, f.Key)
	}
	return keys
}

// Lookup returns the field registered under key.
func (r Registry) Lookup(key string) (Field, bool) {
	i, ok := r.index[key]
	if !ok {
		return Field{}, false
	}
	return r.fields[i], true
}

// RequiredKeys returns the keys of required fields in order.
func (r Registry) RequiredKeys() []string {
	var keys []string
	for _, f := range r.fields {
		if f.Required {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

// WithDefaults returns a new registry whose defaults are replaced by the
// given answer texts, coerced to each field's type. Unknown keys are
// ignored; an override that fails the field check is an error.
func (r Registry) WithDefaults(overrides map[string]string) (Registry, error) {
	fields := r.Fields()
	for i, f := range fields {
		raw, ok := overrides[f.Key]
		if !ok {
			continue
		}
		if !f.Check(raw) {
			return Registry{}, fmt.Errorf("default for %q: %q is not a valid answer", f.Key, raw)
		}
		v, err := Coerce(f.Type, raw)
		if err != nil {
			return Registry{}, fmt.Errorf("default for %q: %w", f.Key, err)
		}
		fields[i].Default = v
	}
	return NewRegistry(fields...)
}

// Verify checks a loaded configuration against the registry: every key must
// be known, every required key present and every value must pass its
// field's check. All problems are reported together.
func (r Registry) Verify(cfg *Configuration) error {
	var errs []error
	for _, key := range cfg.Keys() {
		f, ok := r.Lookup(key)
		if !ok {
			errs = append(errs, fmt.Errorf("unknown key %q", key))
			continue
		}
		v, _ := cfg.Get(key)
		if v == nil && !f.HasDefault() && f.Validator == nil {
			continue
		}
		if text := FormatValue(v); !f.Check(text) {
			errs = append(errs, fmt.Errorf("key %q: invalid value %q", key, text))
		}
	}
	for _, key := range r.RequiredKeys() {
		if !cfg.Has(key) {
			errs = append(errs, fmt.Errorf("missing required key %q", key))
		}
	}
	return errors.Join(errs...)
}
