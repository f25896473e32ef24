package configloader

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/yaklabco/solfmt/pkg/config"
)

// foundryFile mirrors the parts of foundry.toml we read. Formatter settings
// live either under a top-level [fmt] table or under [profile.<name>.fmt].
type foundryFile struct {
	Fmt     *foundryFmt               `toml:"fmt"`
	Profile map[string]foundryProfile `toml:"profile"`
}

type foundryProfile struct {
	Fmt *foundryFmt `toml:"fmt"`
}

// foundryFmt is the [fmt] table of foundry.toml. Field names follow forge's
// spelling; unknown keys are ignored.
type foundryFmt struct {
	LineLength          *int     `toml:"line_length"`
	TabWidth            *int     `toml:"tab_width"`
	BracketSpacing      *bool    `toml:"bracket_spacing"`
	IntTypes            *string  `toml:"int_types"`
	QuoteStyle          *string  `toml:"quote_style"`
	NumberUnderscore    *string  `toml:"number_underscore"`
	MultilineFuncHeader *string  `toml:"multiline_func_header"`
	Ignore              []string `toml:"ignore"`
}

// FoundryImport is the result of reading a foundry.toml [fmt] table.
type FoundryImport struct {
	// Config holds the imported settings as a sparse overlay.
	Config *config.Config

	// Warnings contains settings that could not be mapped.
	Warnings []string

	// SourcePath is the foundry.toml that was read.
	SourcePath string
}

// LoadFoundryConfig reads the [fmt] table from a foundry.toml file so
// projects already formatted with forge keep their style without a
// separate .solfmt.yml. Profile "default" takes precedence over the
// top-level [fmt] table.
func LoadFoundryConfig(path string) (*FoundryImport, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var file foundryFile
	if err := toml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}

	table := file.Fmt
	if profile, ok := file.Profile["default"]; ok && profile.Fmt != nil {
		table = profile.Fmt
	}

	result := &FoundryImport{
		Config:     &config.Config{},
		SourcePath: path,
	}
	if table == nil {
		return result, nil
	}

	applyFoundryFmt(table, result)
	return result, nil
}

// applyFoundryFmt copies recognized [fmt] settings into the overlay config,
// warning about values solfmt does not support.
func applyFoundryFmt(table *foundryFmt, result *FoundryImport) {
	cfg := result.Config

	if table.LineLength != nil {
		cfg.LineLength = *table.LineLength
	}
	if table.TabWidth != nil {
		cfg.TabWidth = *table.TabWidth
	}
	if table.BracketSpacing != nil {
		cfg.BracketSpacing = *table.BracketSpacing
	}
	if table.Ignore != nil {
		cfg.Ignore = table.Ignore
	}

	if table.IntTypes != nil {
		v := config.IntTypes(*table.IntTypes)
		if knownIntTypes[v] {
			cfg.IntTypes = v
		} else {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("unsupported int_types %q in %s; using default", *table.IntTypes, result.SourcePath))
		}
	}

	if table.QuoteStyle != nil {
		v := config.QuoteStyle(*table.QuoteStyle)
		if knownQuoteStyles[v] {
			cfg.QuoteStyle = v
		} else {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("unsupported quote_style %q in %s; using default", *table.QuoteStyle, result.SourcePath))
		}
	}

	if table.NumberUnderscore != nil {
		v := config.NumberUnderscore(*table.NumberUnderscore)
		if knownUnderscoreModes[v] {
			cfg.NumberUnderscore = v
		} else {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("unsupported number_underscore %q in %s; using default", *table.NumberUnderscore, result.SourcePath))
		}
	}

	if table.MultilineFuncHeader != nil {
		v := config.MultilineFuncHeader(*table.MultilineFuncHeader)
		if knownHeaderStyles[v] {
			cfg.MultilineFuncHeader = v
		} else {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("unsupported multiline_func_header %q in %s; using default", *table.MultilineFuncHeader, result.SourcePath))
		}
	}
}
