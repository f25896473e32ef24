package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes. Fields absent from the
// input keep their Default() values.
func FromYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Template returns a commented starter configuration for `solfmt init`.
func Template() []byte {
	return []byte(`# solfmt configuration.
# Maximum line width in columns.
line_length: 120

# Spaces per indent level.
tab_width: 4

# Pad named-argument braces: { a: 1 } instead of {a: 1}.
bracket_spacing: false

# Integer type spelling: preserve, long (uint256), or short (uint).
int_types: long

# String quote character: double, single, or preserve.
quote_style: double

# Underscore digit separators: preserve, remove, or thousands.
number_underscore: preserve

# Break strategy for overlong function headers:
# attributes_first or params_first.
multiline_func_header: attributes_first

# Glob patterns for files to skip.
ignore: []
`)
}
