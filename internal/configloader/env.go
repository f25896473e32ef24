package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/solfmt/pkg/config"
)

// envVarPrefix is the prefix for all solfmt environment variables.
const envVarPrefix = "SOLFMT_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"LINE_LENGTH":           {field: "line_length", typ: envTypeInt},
	"TAB_WIDTH":             {field: "tab_width", typ: envTypeInt},
	"BRACKET_SPACING":       {field: "bracket_spacing", typ: envTypeBool},
	"INT_TYPES":             {field: "int_types", typ: envTypeString},
	"QUOTE_STYLE":           {field: "quote_style", typ: envTypeString},
	"NUMBER_UNDERSCORE":     {field: "number_underscore", typ: envTypeString},
	"MULTILINE_FUNC_HEADER": {field: "multiline_func_header", typ: envTypeString},
	"IGNORE":                {field: "ignore", typ: envTypeSlice},
	"JOBS":                  {field: "jobs", typ: envTypeInt},
	"NO_BACKUPS":            {field: "no_backups", typ: envTypeBool},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with SOLFMT_ (e.g., SOLFMT_LINE_LENGTH).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		parts := parseSliceValue(value)
		return setSliceField(cfg, mapping.field, parts)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "int_types":
		cfg.IntTypes = config.IntTypes(value)
	case "quote_style":
		cfg.QuoteStyle = config.QuoteStyle(value)
	case "number_underscore":
		cfg.NumberUnderscore = config.NumberUnderscore(value)
	case "multiline_func_header":
		cfg.MultilineFuncHeader = config.MultilineFuncHeader(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "bracket_spacing":
		cfg.BracketSpacing = value
	case "no_backups":
		cfg.NoBackups = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "line_length":
		cfg.LineLength = value
	case "tab_width":
		cfg.TabWidth = value
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns a list of all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"SOLFMT_LINE_LENGTH":           "Maximum output line width in columns",
		"SOLFMT_TAB_WIDTH":             "Spaces per indent level",
		"SOLFMT_BRACKET_SPACING":       "Pad named-argument braces: true or false",
		"SOLFMT_INT_TYPES":             "Integer type spelling: preserve, long, or short",
		"SOLFMT_QUOTE_STYLE":           "String literal quotes: double, single, or preserve",
		"SOLFMT_NUMBER_UNDERSCORE":     "Digit separators: preserve, remove, or thousands",
		"SOLFMT_MULTILINE_FUNC_HEADER": "Header break strategy: attributes_first or params_first",
		"SOLFMT_IGNORE":                "Comma-separated list of ignore patterns",
		"SOLFMT_JOBS":                  "Number of parallel workers (0 = auto)",
		"SOLFMT_NO_BACKUPS":            "Disable backups when writing: true or false",
	}
}
