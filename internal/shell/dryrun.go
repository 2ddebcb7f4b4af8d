package shell

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/wslarc/wslarc/internal/messages"
)

// DryRunner performs read-only probes through an inner runner and prints every
// mutation as the command line it would have run.
type DryRunner struct {
	inner Runner
	out   io.Writer
	log   *zap.Logger
}

// NewDryRun wraps inner so that only Output reaches it.
func NewDryRun(inner Runner, out io.Writer, log *zap.Logger) *DryRunner {
	if log == nil {
		log = zap.NewNop()
	}
	return &DryRunner{inner: inner, out: out, log: log.With(zap.String("component", "shell"))}
}

// Output delegates to the inner runner.
func (d *DryRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	return d.inner.Output(ctx, name, args...)
}

// Run prints the command and returns empty output.
func (d *DryRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	d.describe(name, args)
	return "", nil
}

// Stream prints the command and writes nothing to w.
func (d *DryRunner) Stream(_ context.Context, _ io.Writer, name string, args ...string) error {
	d.describe(name, args)
	return nil
}

// DryRun is always true for DryRunner.
func (d *DryRunner) DryRun() bool {
	return true
}

func (d *DryRunner) describe(name string, args []string) {
	line := Line(name, args...)
	d.log.Debug("skipping (dry-run)", zap.String("cmd", line))
	PrintDryRun(d.out, line)
}

// PrintDryRun writes the line shown in place of a skipped mutation.
func PrintDryRun(w io.Writer, line string) {
	_, _ = fmt.Fprintf(w, "  %s %s\n", color.YellowString(messages.ShellDryRunPrefix), line)
}
