package shell

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/wslarc/wslarc/internal/messages"
)

var execCommandContext = exec.CommandContext

// CommandError reports a command that could not be started or exited non-zero.
type CommandError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf(messages.ShellCommandFailedFmt, e.Command, e.Err)
	if e.Stderr == "" {
		return msg
	}
	return fmt.Sprintf(messages.ShellCommandStderrFmt, msg, e.Stderr)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Exec runs commands on the host.
type Exec struct {
	log *zap.Logger
}

// NewExec returns a runner that executes commands. A nil logger discards logs.
func NewExec(log *zap.Logger) *Exec {
	if log == nil {
		log = zap.NewNop()
	}
	return &Exec{log: log.With(zap.String("component", "shell"))}
}

// Output runs a read-only command.
func (e *Exec) Output(ctx context.Context, name string, args ...string) (string, error) {
	return e.capture(ctx, name, args)
}

// Run runs a mutating command.
func (e *Exec) Run(ctx context.Context, name string, args ...string) (string, error) {
	return e.capture(ctx, name, args)
}

// DryRun is always false for Exec.
func (e *Exec) DryRun() bool {
	return false
}

func (e *Exec) capture(ctx context.Context, name string, args []string) (string, error) {
	if name == "" {
		return "", fmt.Errorf(messages.ShellCommandRequired)
	}
	line := Line(name, args...)
	e.log.Debug("executing", zap.String("cmd", line))

	var stdout, stderr bytes.Buffer
	cmd := execCommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	out := strings.TrimSpace(stdout.String())
	if err != nil {
		return out, &CommandError{Command: line, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	e.log.Debug("output", zap.String("cmd", line), zap.String("stdout", out))
	return out, nil
}

// Stream runs a mutating command and copies its stdout to w, indented by two spaces.
func (e *Exec) Stream(ctx context.Context, w io.Writer, name string, args ...string) error {
	if name == "" {
		return fmt.Errorf(messages.ShellCommandRequired)
	}
	line := Line(name, args...)
	e.log.Debug("executing (streaming)", zap.String("cmd", line))

	var stderr bytes.Buffer
	cmd := execCommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return &CommandError{Command: line, Err: err}
	}
	if err := cmd.Start(); err != nil {
		return &CommandError{Command: line, Err: err}
	}
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		_, _ = fmt.Fprintf(w, "  %s\n", scanner.Text())
	}
	if err := cmd.Wait(); err != nil {
		return &CommandError{Command: line, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return nil
}
