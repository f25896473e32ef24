package configloader

import "github.com/yaklabco/solfmt/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	// Start with a shallow copy of base
	result := *base

	if override.LineLength != 0 {
		result.LineLength = override.LineLength
	}
	if override.TabWidth != 0 {
		result.TabWidth = override.TabWidth
	}
	if override.IntTypes != "" {
		result.IntTypes = override.IntTypes
	}
	if override.QuoteStyle != "" {
		result.QuoteStyle = override.QuoteStyle
	}
	if override.NumberUnderscore != "" {
		result.NumberUnderscore = override.NumberUnderscore
	}
	if override.MultilineFuncHeader != "" {
		result.MultilineFuncHeader = override.MultilineFuncHeader
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// Booleans are tricky because false is the zero value. A config layer
	// can turn these on but not back off; the stock value for all of them
	// is false.
	if override.BracketSpacing {
		result.BracketSpacing = true
	}
	if override.Check {
		result.Check = true
	}
	if override.Diff {
		result.Diff = true
	}
	if override.Write {
		result.Write = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}

	// Slices: override replaces base entirely if non-nil
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
