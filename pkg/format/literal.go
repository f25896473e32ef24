package format

import (
	"strings"

	"github.com/yaklabco/solfmt/pkg/config"
)

// normalizeIntType rewrites bare int/uint spellings according to the
// int_types setting. Sized spellings other than the 256-bit aliases are
// never touched.
func normalizeIntType(text string, mode config.IntTypes) string {
	switch mode {
	case config.IntTypesLong:
		switch text {
		case "int":
			return "int256"
		case "uint":
			return "uint256"
		}
	case config.IntTypesShort:
		switch text {
		case "int256":
			return "int"
		case "uint256":
			return "uint"
		}
	}
	return text
}

// normalizeQuotes rewrites a string literal to the configured quote style.
// Literals that contain the target quote character keep their original
// spelling rather than picking up new escapes.
func normalizeQuotes(raw string, style config.QuoteStyle) string {
	var target, other byte
	switch style {
	case config.QuoteDouble:
		target, other = '"', '\''
	case config.QuoteSingle:
		target, other = '\'', '"'
	default:
		return raw
	}

	prefix := ""
	body := raw
	for _, p := range []string{"hex", "unicode"} {
		if strings.HasPrefix(body, p) {
			prefix = p
			body = body[len(p):]
			break
		}
	}
	if len(body) < 2 || body[0] != target && body[0] != other {
		return raw
	}
	if body[0] == target {
		return raw
	}

	inner := body[1 : len(body)-1]
	if containsUnescaped(inner, target) {
		return raw
	}

	// Escapes of the old quote character become plain characters.
	var sb strings.Builder
	sb.Grow(len(raw))
	sb.WriteString(prefix)
	sb.WriteByte(target)
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) && inner[i+1] == other {
			sb.WriteByte(other)
			i++
			continue
		}
		sb.WriteByte(inner[i])
		if inner[i] == '\\' && i+1 < len(inner) {
			sb.WriteByte(inner[i+1])
			i++
		}
	}
	sb.WriteByte(target)
	return sb.String()
}

func containsUnescaped(s string, c byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == c {
			return true
		}
	}
	return false
}

// normalizeUnderscores rewrites digit separators in a number literal.
// Thousands grouping applies to the integer part of decimal literals only;
// hex literals and exponent or fraction parts just have their separators
// stripped in both rewrite modes.
func normalizeUnderscores(text string, mode config.NumberUnderscore) string {
	if mode == config.UnderscorePreserve || !strings.Contains(text, "_") && mode != config.UnderscoreThousands {
		return text
	}

	stripped := strings.ReplaceAll(text, "_", "")
	if mode == config.UnderscoreRemove {
		return stripped
	}

	if strings.HasPrefix(stripped, "0x") || strings.HasPrefix(stripped, "0X") {
		return stripped
	}

	intPart := stripped
	rest := ""
	if i := strings.IndexAny(stripped, ".eE"); i >= 0 {
		intPart, rest = stripped[:i], stripped[i:]
	}
	return groupThousands(intPart) + rest
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var sb strings.Builder
	sb.Grow(n + n/3)
	lead := n % 3
	if lead > 0 {
		sb.WriteString(digits[:lead])
	}
	for i := lead; i < n; i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte('_')
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}
