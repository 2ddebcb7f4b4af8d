package orchestrate

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/wslarc/wslarc/internal/terminal"
)

// terminalWidth bounds table rows. Zero leaves them unbounded.
var terminalWidth = func() int { return terminal.Width(os.Stdout, 0) }

// reporter prints operator-facing progress. Diagnostics go to the zap logger.
type reporter struct {
	out io.Writer
}

func (r *reporter) title(text string) {
	_, _ = color.New(color.FgCyan, color.Bold).Fprintln(r.out, text)
}

func (r *reporter) section(text string) {
	_, _ = fmt.Fprintln(r.out)
	_, _ = color.New(color.Bold, color.Underline).Fprintln(r.out, text)
}

func (r *reporter) step(n int, total int, text string) {
	_, _ = fmt.Fprintf(r.out, "\n%s %s\n", color.New(color.FgCyan, color.Bold).Sprintf("[%d/%d]", n, total), color.New(color.Bold).Sprint(text))
}

func (r *reporter) success(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, "  %s %s\n", color.GreenString("✓"), fmt.Sprintf(format, args...))
}

func (r *reporter) info(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, "  %s %s\n", color.BlueString("→"), fmt.Sprintf(format, args...))
}

func (r *reporter) warn(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, "  %s %s\n", color.YellowString("⚠"), fmt.Sprintf(format, args...))
}

func (r *reporter) kv(key string, value string) {
	_, _ = fmt.Fprintf(r.out, "  %s: %s\n", color.New(color.Faint).Sprint(key), value)
}

func (r *reporter) line(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format+"\n", args...)
}

func (r *reporter) done(text string) {
	_, _ = fmt.Fprintln(r.out)
	_, _ = color.New(color.FgGreen, color.Bold).Fprintln(r.out, text)
}

func (r *reporter) table(header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.SetAllowedRowLength(terminalWidth())
	t.AppendHeader(header)
	return t
}
