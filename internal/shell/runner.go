// Package shell runs external programs for the orchestration engine.
package shell

import (
	"context"
	"io"
	"strings"
)

// Runner executes external commands. Output is for read-only probes and always
// runs; Run and Stream mutate system state and are only described in dry-run mode.
type Runner interface {
	// Output runs a read-only command and returns its trimmed stdout. Stdout is
	// returned even when the command fails, since some probes report state
	// through a non-zero exit.
	Output(ctx context.Context, name string, args ...string) (string, error)
	// Run runs a mutating command and returns its trimmed stdout.
	Run(ctx context.Context, name string, args ...string) (string, error)
	// Stream runs a mutating command, copying its stdout to w as it arrives.
	Stream(ctx context.Context, w io.Writer, name string, args ...string) error
	// DryRun reports whether mutations are described instead of performed.
	DryRun() bool
}

// Line renders a command the way a shell user would type it. Arguments with
// whitespace or shell metacharacters are single-quoted.
func Line(name string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, quote(name))
	for _, arg := range args {
		parts = append(parts, quote(arg))
	}
	return strings.Join(parts, " ")
}

const unsafeChars = " \t\n'\"\\$`!*?[]{}()<>|&;#~"

func quote(arg string) string {
	if arg == "" {
		return "''"
	}
	if !strings.ContainsAny(arg, unsafeChars) {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}
