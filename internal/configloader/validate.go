package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/solfmt/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "quote_style").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownIntTypes lists valid int_types values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownIntTypes = map[config.IntTypes]bool{
	config.IntTypesPreserve: true,
	config.IntTypesLong:     true,
	config.IntTypesShort:    true,
}

// knownQuoteStyles lists valid quote_style values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownQuoteStyles = map[config.QuoteStyle]bool{
	config.QuoteDouble:   true,
	config.QuoteSingle:   true,
	config.QuotePreserve: true,
}

// knownUnderscoreModes lists valid number_underscore values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownUnderscoreModes = map[config.NumberUnderscore]bool{
	config.UnderscorePreserve:  true,
	config.UnderscoreRemove:    true,
	config.UnderscoreThousands: true,
}

// knownHeaderStyles lists valid multiline_func_header values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownHeaderStyles = map[config.MultilineFuncHeader]bool{
	config.HeaderAttributesFirst: true,
	config.HeaderParamsFirst:     true,
}

// narrowWidthThreshold is the line length below which a warning is emitted.
const narrowWidthThreshold = 40

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	if cfg.LineLength < 1 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "line_length",
			Value:   cfg.LineLength,
			Message: "line_length must be positive",
		})
	} else if cfg.LineLength < narrowWidthThreshold {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "line_length",
			Value:   cfg.LineLength,
			Message: fmt.Sprintf("line_length %d is very narrow; most code will wrap", cfg.LineLength),
		})
	}

	if cfg.TabWidth < 1 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "tab_width",
			Value:   cfg.TabWidth,
			Message: "tab_width must be positive",
		})
	}

	if cfg.IntTypes != "" && !knownIntTypes[cfg.IntTypes] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "int_types",
			Value:   cfg.IntTypes,
			Message: fmt.Sprintf("invalid int_types %q; must be one of: preserve, long, short", cfg.IntTypes),
		})
	}

	if cfg.QuoteStyle != "" && !knownQuoteStyles[cfg.QuoteStyle] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "quote_style",
			Value:   cfg.QuoteStyle,
			Message: fmt.Sprintf("invalid quote_style %q; must be one of: double, single, preserve", cfg.QuoteStyle),
		})
	}

	if cfg.NumberUnderscore != "" && !knownUnderscoreModes[cfg.NumberUnderscore] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "number_underscore",
			Value:   cfg.NumberUnderscore,
			Message: fmt.Sprintf("invalid number_underscore %q; must be one of: preserve, remove, thousands", cfg.NumberUnderscore),
		})
	}

	if cfg.MultilineFuncHeader != "" && !knownHeaderStyles[cfg.MultilineFuncHeader] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "multiline_func_header",
			Value:   cfg.MultilineFuncHeader,
			Message: fmt.Sprintf("invalid multiline_func_header %q; must be one of: attributes_first, params_first", cfg.MultilineFuncHeader),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	validateIgnorePatterns(cfg, result)

	return result
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		// filepath.Match returns an error only for malformed patterns
		_, err := filepath.Match(pattern, "")
		if err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
