package main

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/exparity/userdao/internal/ui"
)

// groupStyles maps a command group ID to the renderer used for its title.
// Groups not listed here use the accent color.
var groupStyles = map[string]func(string) string{
	"verify": ui.RenderPass,
	"data":   ui.RenderCommand,
}

// helpRule rewrites every match of re with the result of style.
type helpRule struct {
	re    *regexp.Regexp
	style func(m []string) string
}

var (
	reHeader  = regexp.MustCompile(`(?m)^([A-Z][A-Za-z ]*:)[ \t]*$`)
	reExample = regexp.MustCompile(`(?m)^(\s+)(userdao(?: [a-z]+)?)(.*)$`)
	reSubcmd  = regexp.MustCompile(`(?m)^(  )([a-z][a-z-]*)(\s{2,})`)
	reFlag    = regexp.MustCompile(`(--?[a-z][\w-]*[ =])(string|int|int64|duration)\b`)
	reEnv     = regexp.MustCompile(`\bUSERDAO_[A-Z_]+\b`)
	reDefault = regexp.MustCompile(`\(default [^)]*\)`)
)

// helpRules returns the rewrites applied to cmd's help text, in order.
// Header colors follow the root command's groups.
func helpRules(cmd *cobra.Command) []helpRule {
	titles := make(map[string]func(string) string)
	for _, g := range cmd.Root().Groups() {
		if style, ok := groupStyles[g.ID]; ok {
			titles[g.Title] = style
		}
	}

	return []helpRule{
		{reHeader, func(m []string) string {
			if style, ok := titles[m[1]]; ok {
				return style(m[1])
			}
			return ui.RenderAccent(m[1])
		}},
		{reExample, func(m []string) string { return m[1] + ui.RenderCommand(m[2]) + m[3] }},
		{reSubcmd, func(m []string) string { return m[1] + ui.RenderCommand(m[2]) + m[3] }},
		{reFlag, func(m []string) string { return m[1] + ui.RenderMuted(m[2]) }},
		{reEnv, func(m []string) string { return ui.RenderAccent(m[0]) }},
		{reDefault, func(m []string) string { return ui.RenderMuted(m[0]) }},
	}
}

// colorizedHelpFunc renders cobra's usage text through helpRules when color
// is enabled.
func colorizedHelpFunc() func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		if !ui.ShouldUseColor() {
			_ = cmd.Usage()
			return
		}

		var buf bytes.Buffer
		orig := cmd.OutOrStdout()
		cmd.SetOut(&buf)
		_ = cmd.Usage()
		cmd.SetOut(orig)

		fmt.Fprint(orig, colorizeHelpOutput(buf.String(), helpRules(cmd)))
	}
}

func colorizeHelpOutput(s string, rules []helpRule) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		for _, r := range rules {
			line = r.re.ReplaceAllStringFunc(line, func(match string) string {
				return r.style(r.re.FindStringSubmatch(match))
			})
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
