package cli

import (
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robinvdvleuten/commute/invoice"
)

var (
	errCaretStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	errContextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
)

// CommandError is returned by a command that already reported its failure
// on stderr. Main exits with the carried code without printing anything.
type CommandError struct {
	exitCode int
}

// NewCommandError creates a CommandError exiting with exitCode.
func NewCommandError(exitCode int) *CommandError {
	return &CommandError{exitCode: exitCode}
}

func (e *CommandError) Error() string {
	return "command failed"
}

// ExitCode returns the process exit code.
func (e *CommandError) ExitCode() int {
	return e.exitCode
}

// ErrorRenderer renders errors with terminal styling and, for errors that
// carry a position, the surrounding statement lines.
type ErrorRenderer struct {
	source []byte
}

// NewErrorRenderer creates a renderer with source content for context.
func NewErrorRenderer(source []byte) *ErrorRenderer {
	return &ErrorRenderer{source: source}
}

// Render formats err.
func (r *ErrorRenderer) Render(err error) string {
	var parseErr *invoice.ParseError
	if errors.As(err, &parseErr) && r.source != nil {
		return r.renderWithSourceContext(parseErr.GetPosition(), parseErr.Error())
	}
	return errorStyle.Render(err.Error())
}

// renderWithSourceContext prints message, up to two lines before the
// offending line, the line itself with a caret under the column, and one
// line after.
func (r *ErrorRenderer) renderWithSourceContext(pos invoice.Position, message string) string {
	var buf strings.Builder

	buf.WriteString(errorStyle.Render(message))
	buf.WriteString("\n\n")

	lines := strings.Split(string(r.source), "\n")
	first := max(pos.Line-3, 0)
	last := min(pos.Line, len(lines)-1)

	for i := first; i <= last; i++ {
		buf.WriteString("   ")
		buf.WriteString(errContextStyle.Render(strings.TrimRight(lines[i], "\r")))
		buf.WriteByte('\n')

		if i == pos.Line-1 && pos.Column > 0 {
			buf.WriteString("   ")
			buf.WriteString(strings.Repeat(" ", pos.Column-1))
			buf.WriteString(errCaretStyle.Render("^"))
			buf.WriteByte('\n')
		}
	}

	return buf.String()
}
