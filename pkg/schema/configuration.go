package schema

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Entry is one key/value pair of a Configuration.
type Entry struct {
	Key   string
	Value any
}

// Configuration is the ordered key/value document the wizard produces.
// Keys keep insertion order, which is schema order when built by the wizard.
type Configuration struct {
	entries []Entry
	index   map[string]int
}

// NewConfiguration returns an empty configuration.
func NewConfiguration() *Configuration {
	return &Configuration{index: make(map[string]int)}
}

// Set stores v under key, keeping the key's original position if it exists.
func (c *Configuration) Set(key string, v any) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if i, ok := c.index[key]; ok {
		c.entries[i].Value = v
		return
	}
	c.index[key] = len(c.entries)
	c.entries = append(c.entries, Entry{Key: key, Value: v})
}

// Get returns the value stored under key.
func (c *Configuration) Get(key string) (any, bool) {
	i, ok := c.index[key]
	if !ok {
		return nil, false
	}
	return c.entries[i].Value, true
}

// Has reports whether key is present.
func (c *Configuration) Has(key string) bool {
	_, ok := c.index[key]
	return ok
}

// Len returns the number of entries.
func (c *Configuration) Len() int {
	return len(c.entries)
}

// Keys returns the keys in order.
func (c *Configuration) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		keys = append(keys, e.Key)
	}
	return keys
}

// Entries returns a copy of the entries in order.
func (c *Configuration) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Map returns the entries as an unordered map.
func (c *Configuration) Map() map[string]any {
	m := make(map[string]any, len(c.entries))
	for _, e := range c.entries {
		m[e.Key] = e.Value
	}
	return m
}

// MarshalYAML renders the configuration as a block-style mapping in entry
// order.
func (c *Configuration) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range c.entries {
		var value yaml.Node
		if err := value.Encode(e.Value); err != nil {
			return nil, fmt.Errorf("encode %q: %w", e.Key, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
			&value,
		)
	}
	return node, nil
}

// UnmarshalYAML reads a flat mapping of scalars, preserving key order.
func (c *Configuration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	*c = Configuration{index: make(map[string]int, len(node.Content)/2)}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: keys must be scalars", keyNode.Line)
		}
		if valueNode.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: value of %q must be a scalar", valueNode.Line, keyNode.Value)
		}
		if c.Has(keyNode.Value) {
			return fmt.Errorf("line %d: duplicate key %q", keyNode.Line, keyNode.Value)
		}
		var v any
		if err := valueNode.Decode(&v); err != nil {
			return fmt.Errorf("line %d: %w", valueNode.Line, err)
		}
		c.Set(keyNode.Value, v)
	}
	return nil
}

// YAML serializes the configuration as a block-style YAML document.
func (c *Configuration) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseYAML reads a document produced by YAML.
func ParseYAML(data []byte) (*Configuration, error) {
	cfg := NewConfiguration()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
