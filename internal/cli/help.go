// Package cli provides the Cobra command structure for solfmt.
package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/solfmt/internal/ui/pretty"
)

// helpStyles holds the lipgloss styles used when rendering command help.
type helpStyles struct {
	Command lipgloss.Style
	Heading lipgloss.Style
	Flag    lipgloss.Style
	Dim     lipgloss.Style
}

func newHelpStyles(colorEnabled bool) helpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return helpStyles{Command: plain, Heading: plain, Flag: plain, Dim: plain}
	}
	return helpStyles{
		Command: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Flag:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders styled usage and help text for Cobra commands.
type HelpFormatter struct {
	styles helpStyles
}

// NewHelpFormatter creates a help formatter. Color is resolved from the
// mode string ("auto", "always", "never") against the writer.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: newHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const usageTemplate = `{{ heading "Usage:" }}
  {{if .Runnable}}{{ command .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ command .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ heading "Aliases:" }}
  {{ dim (join .Aliases ", ") }}
{{- end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ rpad .Name .NamePadding }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{if or .Runnable .HasSubCommands}}{{ command .CommandPath }}{{if .Version}} {{ dim .Version }}{{end}}

{{end}}{{with (or .Long .Short)}}{{ trim . }}

{{end}}` + usageTemplate

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"command": h.styles.Command.Render,
		"heading": h.styles.Heading.Render,
		"dim":     h.styles.Dim.Render,
		"flags":   h.renderFlags,
		"join":    strings.Join,
		"rpad":    rpad,
		"trim":    trimTrailingWhitespace,
	}
}

// ApplyToCommand installs the styled usage and help renderers on cmd. Cobra
// propagates them to subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return h.execute(command.OutOrStdout(), usageTemplate, command)
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := h.execute(command.OutOrStdout(), helpTemplate, command); err != nil {
			command.PrintErrln(err)
		}
	})
}

func (h *HelpFormatter) execute(w io.Writer, text string, cmd *cobra.Command) error {
	tmpl, err := template.New("help").Funcs(h.funcs()).Parse(text)
	if err != nil {
		return fmt.Errorf("parse help template: %w", err)
	}
	return tmpl.Execute(w, cmd)
}

// renderFlags styles pflag's FlagUsages output line by line.
func (h *HelpFormatter) renderFlags(flags interface{ FlagUsages() string }) string {
	usages := strings.TrimSuffix(flags.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

// styleFlagLine colors the flag spelling and type in a pflag usage line such
// as "  -w, --write   rewrite files in place". Lines that do not match the
// expected shape pass through unchanged.
func (h *HelpFormatter) styleFlagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]

	flagPart, desc, ok := splitFlagUsage(trimmed)
	if !ok {
		return line
	}

	var b strings.Builder
	b.WriteString(indent)
	for i, token := range strings.Fields(flagPart) {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch {
		case strings.HasPrefix(token, "-"):
			clean := strings.TrimSuffix(token, ",")
			b.WriteString(h.styles.Flag.Render(clean))
			if clean != token {
				b.WriteByte(',')
			}
		default:
			// Value type hint (string, int, ...).
			b.WriteString(h.styles.Dim.Render(token))
		}
	}
	b.WriteString("   ")
	b.WriteString(desc)
	return b.String()
}

// splitFlagUsage splits a usage line at the first run of two or more spaces
// that separates the flag spelling from its description.
func splitFlagUsage(line string) (flagPart, desc string, ok bool) {
	runStart := -1
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' {
			if runStart >= 0 && i-runStart >= 2 {
				return strings.TrimRight(line[:runStart], " "), line[i:], true
			}
			runStart = -1
			continue
		}
		if runStart < 0 {
			runStart = i
		}
	}
	return "", "", false
}

func rpad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func trimTrailingWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
