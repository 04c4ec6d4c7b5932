package dsl

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/jfmusicbot/botsetup/pkg/schema"
	"github.com/jfmusicbot/botsetup/pkg/validate"
)

// Spec is a schema definition file:
//
//	fields:
//	  - key: search-limit
//	    description: Enter the number of search results
//	    type: integer
//	    required: true
//	    default: 25
//	    validate: {rule: bounded_integer, min: 1, max: 100}
type Spec struct {
	Fields []FieldSpec `yaml:"fields"`
}

type FieldSpec struct {
	Key         string           `yaml:"key"`
	Description string           `yaml:"description"`
	Type        schema.ValueType `yaml:"type"`
	Required    bool             `yaml:"required"`
	Default     interface{}      `yaml:"default"`
	Validate    *RuleSpec        `yaml:"validate"`
}

// RuleSpec names a validator and its parameters.
type RuleSpec struct {
	Rule   string    `yaml:"rule"`
	Min    *int      `yaml:"min"`
	Max    *int      `yaml:"max"`
	Length int       `yaml:"length"`
	Of     *RuleSpec `yaml:"of"`
}

// Validator rule names.
const (
	RuleURL               = "url"
	RuleNonEmpty          = "non_empty"
	RuleCommandGroup      = "command_group"
	RuleBoundedInteger    = "bounded_integer"
	RuleFixedLengthDigits = "fixed_length_digits"
	RuleBoolean           = "boolean"
	RuleDisabledOr        = "disabled_or"
)

// UnmarshalYAML allows:
//   - validate: url
//   - validate:
//     rule: bounded_integer
//     min: 1
func (r *RuleSpec) UnmarshalYAML(node *yaml.Node) error {
	*r = RuleSpec{}
	if node.Kind == yaml.ScalarNode {
		r.Rule = strings.TrimSpace(node.Value)
		return nil
	}

	type raw RuleSpec
	var tmp raw
	if err := node.Decode(&tmp); err != nil {
		return err
	}
	*r = RuleSpec(tmp)
	r.Rule = strings.TrimSpace(r.Rule)
	return nil
}

// Compile turns the rule into a validator.
func (r *RuleSpec) Compile() (validate.Func, error) {
	if r == nil {
		return nil, nil
	}
	switch r.Rule {
	case RuleURL:
		return validate.URL, nil
	case RuleNonEmpty:
		return validate.NonEmpty, nil
	case RuleCommandGroup:
		return validate.CommandGroup, nil
	case RuleBoolean:
		return validate.Boolean, nil
	case RuleBoundedInteger:
		if r.Min == nil || r.Max == nil {
			return nil, fmt.Errorf("rule %s needs min and max", r.Rule)
		}
		if *r.Min > *r.Max {
			return nil, fmt.Errorf("rule %s: min %d is greater than max %d", r.Rule, *r.Min, *r.Max)
		}
		return validate.BoundedInt(*r.Min, *r.Max), nil
	case RuleFixedLengthDigits:
		if r.Length <= 0 {
			return nil, fmt.Errorf("rule %s needs a positive length", r.Rule)
		}
		return validate.FixedLengthDigits(r.Length), nil
	case RuleDisabledOr:
		if r.Of == nil {
			return nil, fmt.Errorf("rule %s needs a nested rule in 'of'", r.Rule)
		}
		next, err := r.Of.Compile()
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", r.Rule, err)
		}
		return validate.DisabledOr(next), nil
	case "":
		return nil, fmt.Errorf("rule name is empty")
	default:
		return nil, fmt.Errorf("unknown rule %q", r.Rule)
	}
}

// Registry compiles the definition into a schema registry.
func (s Spec) Registry() (schema.Registry, error) {
	if len(s.Fields) == 0 {
		return schema.Registry{}, fmt.Errorf("schema has no fields")
	}
	fields := make([]schema.Field, 0, len(s.Fields))
	for _, fs := range s.Fields {
		v, err := fs.Validate.Compile()
		if err != nil {
			return schema.Registry{}, fmt.Errorf("field %q: %w", fs.Key, err)
		}
		fields = append(fields, schema.Field{
			Key:         strings.TrimSpace(fs.Key),
			Description: strings.TrimSpace(fs.Description),
			Type:        fs.Type,
			Validator:   v,
			Required:    fs.Required,
			Default:     fs.Default,
		})
	}
	return schema.NewRegistry(fields...)
}

// LoadSpec decodes a schema definition. Unknown keys are rejected.
func LoadSpec(data []byte) (Spec, error) {
	var spec Spec
	if len(data) == 0 {
		return spec, fmt.Errorf("empty schema data")
	}
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return spec, err
	}
	return spec, nil
}

// LoadRegistry reads and compiles the schema definition at path.
func LoadRegistry(fs afero.Fs, path string) (schema.Registry, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return schema.Registry{}, fmt.Errorf("schema: read %s: %w", path, err)
	}
	spec, err := LoadSpec(data)
	if err != nil {
		return schema.Registry{}, fmt.Errorf("schema: parse %s: %w", path, err)
	}
	reg, err := spec.Registry()
	if err != nil {
		return schema.Registry{}, fmt.Errorf("schema: %s: %w", path, err)
	}
	return reg, nil
}
