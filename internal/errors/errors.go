// Package errors renders diagnostics with source context: the failing
// line and an optional ANSI-colored message, following the teacher's
// internal/errors/errors.go formatter. Positions carry only a line, so no
// caret marks a column.
package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/insertnamehere77/loxo/internal/diagnostics"
)

// stageLabel renders a Diagnostic's stage the way the driver's
// error-taxonomy table (spec.md §7) names it.
func stageLabel(d *diagnostics.Diagnostic) string {
	switch d.Stage {
	case diagnostics.ScannerStage:
		return "Scanner error"
	case diagnostics.ParserStage:
		return "Parse error"
	case diagnostics.ResolverStage:
		return "Resolve error"
	case diagnostics.RuntimeStage:
		return "Runtime error"
	default:
		return "Error"
	}
}

// Format renders a single diagnostic as `[line N] <Stage> error: message`,
// optionally with the offending source line and, when colored is true, an
// ANSI-red message (spec.md §6's "distinguishable style (e.g. red)").
func Format(d *diagnostics.Diagnostic, source string, colored bool) string {
	var b strings.Builder

	header := fmt.Sprintf("[line %d] %s: %s", d.Pos.Line, stageLabel(d), d.Message)
	if colored {
		header = color.New(color.FgRed, color.Bold).Sprint(header)
	}
	b.WriteString(header)

	if line := sourceLine(source, d.Pos.Line); line != "" {
		b.WriteString("\n    ")
		b.WriteString(line)
	}

	return b.String()
}

// FormatAll renders every diagnostic in order, one per line, matching
// spec.md §6's "the driver prints one per line".
func FormatAll(diags []*diagnostics.Diagnostic, source string, colored bool) string {
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = Format(d, source, colored)
	}
	return strings.Join(lines, "\n")
}

func sourceLine(source string, line int) string {
	if source == "" || line < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}
