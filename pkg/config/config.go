// Package config defines the formatter configuration for solfmt.
// These are pure data structures; file discovery and loading live in
// internal/configloader.
package config

import "fmt"

// IntTypes controls how integer type names are written.
type IntTypes string

const (
	// IntTypesPreserve keeps the original spelling.
	IntTypesPreserve IntTypes = "preserve"
	// IntTypesLong writes the explicit width: uint256, int256.
	IntTypesLong IntTypes = "long"
	// IntTypesShort writes the alias: uint, int.
	IntTypesShort IntTypes = "short"
)

// QuoteStyle controls the quote character used for string literals.
type QuoteStyle string

const (
	QuoteDouble   QuoteStyle = "double"
	QuoteSingle   QuoteStyle = "single"
	QuotePreserve QuoteStyle = "preserve"
)

// NumberUnderscore controls underscore digit separators in number literals.
type NumberUnderscore string

const (
	// UnderscorePreserve keeps separators exactly as written.
	UnderscorePreserve NumberUnderscore = "preserve"
	// UnderscoreRemove strips all separators.
	UnderscoreRemove NumberUnderscore = "remove"
	// UnderscoreThousands groups integer digits in threes.
	UnderscoreThousands NumberUnderscore = "thousands"
)

// MultilineFuncHeader controls which part of an overlong function header
// breaks first.
type MultilineFuncHeader string

const (
	// HeaderAttributesFirst moves attributes to their own lines first.
	HeaderAttributesFirst MultilineFuncHeader = "attributes_first"
	// HeaderParamsFirst breaks the parameter list first.
	HeaderParamsFirst MultilineFuncHeader = "params_first"
)

// Config is the full formatter configuration.
type Config struct {
	// LineLength is the maximum output line width in columns.
	LineLength int `yaml:"line_length"`

	// TabWidth is the number of spaces per indent level.
	TabWidth int `yaml:"tab_width"`

	// BracketSpacing pads named-argument braces: { a: 1 } vs {a: 1}.
	BracketSpacing bool `yaml:"bracket_spacing"`

	// IntTypes controls uint vs uint256 spelling.
	IntTypes IntTypes `yaml:"int_types"`

	// QuoteStyle controls the string literal quote character.
	QuoteStyle QuoteStyle `yaml:"quote_style"`

	// NumberUnderscore controls digit separators in number literals.
	NumberUnderscore NumberUnderscore `yaml:"number_underscore"`

	// MultilineFuncHeader picks the break strategy for overlong headers.
	MultilineFuncHeader MultilineFuncHeader `yaml:"multiline_func_header"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore"`

	// CLI-level options (not persisted to config files).

	// Check reports files that would change without writing anything.
	Check bool `yaml:"-"`

	// Diff prints a unified diff instead of rewriting files.
	Diff bool `yaml:"-"`

	// Write rewrites files in place.
	Write bool `yaml:"-"`

	// Jobs is the number of parallel workers (0 = auto).
	Jobs int `yaml:"-"`

	// NoBackups disables backup creation when writing.
	NoBackups bool `yaml:"-"`
}

// Default returns a configuration with the stock style.
func Default() *Config {
	return &Config{
		LineLength:          120,
		TabWidth:            4,
		BracketSpacing:      false,
		IntTypes:            IntTypesLong,
		QuoteStyle:          QuoteDouble,
		NumberUnderscore:    UnderscorePreserve,
		MultilineFuncHeader: HeaderAttributesFirst,
	}
}

// Validate checks that every field holds a recognized value.
func (c *Config) Validate() error {
	if c.LineLength < 1 {
		return fmt.Errorf("line_length must be positive, got %d", c.LineLength)
	}
	if c.TabWidth < 1 {
		return fmt.Errorf("tab_width must be positive, got %d", c.TabWidth)
	}
	switch c.IntTypes {
	case IntTypesPreserve, IntTypesLong, IntTypesShort:
	default:
		return fmt.Errorf("unknown int_types %q", c.IntTypes)
	}
	switch c.QuoteStyle {
	case QuoteDouble, QuoteSingle, QuotePreserve:
	default:
		return fmt.Errorf("unknown quote_style %q", c.QuoteStyle)
	}
	switch c.NumberUnderscore {
	case UnderscorePreserve, UnderscoreRemove, UnderscoreThousands:
	default:
		return fmt.Errorf("unknown number_underscore %q", c.NumberUnderscore)
	}
	switch c.MultilineFuncHeader {
	case HeaderAttributesFirst, HeaderParamsFirst:
	default:
		return fmt.Errorf("unknown multiline_func_header %q", c.MultilineFuncHeader)
	}
	return nil
}
