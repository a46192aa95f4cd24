package cli

import (
	"regexp"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/fmtsubst/internal/ui/pretty"
)

// annotationExitCodes holds a command's exit code table for its help page.
const annotationExitCodes = "fmtsubst.exitcodes"

// helpStyles colors the parts of a help page. Methods are called from the
// help templates.
type helpStyles struct {
	command    lipgloss.Style
	heading    lipgloss.Style
	subcommand lipgloss.Style
	flag       lipgloss.Style
	dim        lipgloss.Style
}

func newHelpStyles(colorEnabled bool) helpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return helpStyles{command: plain, heading: plain, subcommand: plain, flag: plain, dim: plain}
	}
	fg := func(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }
	return helpStyles{
		command:    fg("14").Bold(true),
		heading:    fg("11").Bold(true),
		subcommand: fg("10"),
		flag:       fg("12"),
		dim:        fg("8"),
	}
}

func (s helpStyles) Command(text string) string    { return s.command.Render(text) }
func (s helpStyles) Heading(text string) string    { return s.heading.Render(text) }
func (s helpStyles) Subcommand(text string) string { return s.subcommand.Render(text) }
func (s helpStyles) Dim(text string) string        { return s.dim.Render(text) }

// flagLine splits a pflag usage line into indent, names, type, gap and text.
var flagLine = regexp.MustCompile(`^(\s*)((?:-\w, )?--[\w-]+)( \w+)?(\s+)(.*)$`) //nolint:gochecknoglobals // compiled once

// Flags renders a flag set's usage with names and value types styled.
// Column alignment is left as pflag computed it.
func (s helpStyles) Flags(flags *pflag.FlagSet) string {
	usages := strings.TrimSuffix(flags.FlagUsages(), "\n")
	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		match := flagLine.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		styled := match[1] + s.flag.Render(match[2])
		if match[3] != "" {
			styled += s.dim.Render(match[3])
		}
		lines[i] = styled + match[4] + match[5]
	}
	return strings.Join(lines, "\n")
}

// helpPage is the template data: the command plus the styles chosen for
// the current output.
type helpPage struct {
	*cobra.Command

	Style helpStyles
}

const usageTemplate = `{{define "usage"}}{{$.Style.Heading "Usage:"}}
{{- if .Runnable}}
  {{$.Style.Command .UseLine}}{{end}}
{{- if .HasAvailableSubCommands}}
  {{$.Style.Command .CommandPath}} [command]{{end}}
{{- if .HasExample}}

{{$.Style.Heading "Examples:"}}
{{$.Style.Dim .Example}}{{end}}
{{- if .HasAvailableSubCommands}}

{{$.Style.Heading "Commands:"}}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{$.Style.Subcommand (pad .Name .NamePadding)}} {{.Short}}{{end}}{{end}}{{end}}
{{- if .HasAvailableLocalFlags}}

{{$.Style.Heading "Flags:"}}
{{$.Style.Flags .LocalFlags}}{{end}}
{{- if .HasAvailableInheritedFlags}}

{{$.Style.Heading "Global Flags:"}}
{{$.Style.Flags .InheritedFlags}}{{end}}
{{- with index .Annotations "` + annotationExitCodes + `"}}

{{$.Style.Heading "Exit Codes:"}}
{{.}}{{end}}
{{- if .HasHelpSubCommands}}

{{$.Style.Heading "Help Topics:"}}{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{$.Style.Subcommand (pad .CommandPath .CommandPathPadding)}} {{.Short}}{{end}}{{end}}{{end}}
{{- if .HasAvailableSubCommands}}

Run "{{$.Style.Command (print .CommandPath " [command] --help")}}" for details on a command.{{end}}
{{end}}`

const helpTemplate = `{{define "help"}}{{with (or .Long .Short)}}{{trimTrailing .}}

{{end}}{{template "usage" .}}{{end}}`

// helpTemplates is parsed once; colors travel in the data, not the funcs.
var helpTemplates = template.Must( //nolint:gochecknoglobals // parsed once
	template.New("cli").Funcs(template.FuncMap{
		"pad":          pad,
		"trimTrailing": trimTrailing,
	}).Parse(usageTemplate + helpTemplate))

// installHelp replaces Cobra's help and usage output for cmd and its
// children. Color follows each invocation's --color flag and writer.
func installHelp(cmd *cobra.Command) {
	// Cobra adds --help only after resolving the subcommand, so until then
	// "--help --color never" reads as --help taking "--color" as its value.
	cmd.InitDefaultHelpFlag()
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return helpTemplates.ExecuteTemplate(c.OutOrStderr(), "usage", pageFor(c))
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := helpTemplates.ExecuteTemplate(c.OutOrStdout(), "help", pageFor(c)); err != nil {
			c.PrintErrln(err)
		}
	})
}

func pageFor(cmd *cobra.Command) helpPage {
	mode := pretty.ColorAuto
	if flag := cmd.Flag("color"); flag != nil {
		mode = flag.Value.String()
	}
	return helpPage{
		Command: cmd,
		Style:   newHelpStyles(pretty.IsColorEnabled(mode, cmd.OutOrStdout())),
	}
}

func pad(text string, width int) string {
	if len(text) >= width {
		return text
	}
	return text + strings.Repeat(" ", width-len(text))
}

func trimTrailing(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
