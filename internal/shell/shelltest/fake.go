// Package shelltest provides a scripted shell.Runner for tests.
package shelltest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/wslarc/wslarc/internal/shell"
)

// ErrNotScripted is returned by Output for a probe the test did not script.
var ErrNotScripted = errors.New("shelltest: command not scripted")

// Result is one scripted response.
type Result struct {
	Out string
	Err error
}

// Call records one command the code under test issued.
type Call struct {
	Line     string
	Mutating bool
}

// Runner is a scripted shell.Runner. Responses are keyed by the command line as
// rendered by shell.Line. A key with several results returns them in order and
// then repeats the last one. Unscripted probes fail; unscripted mutations succeed.
type Runner struct {
	responses map[string][]Result
	// Streamed is written to Stream's writer for every streamed command.
	Streamed string
	Calls    []Call
}

// New returns an empty scripted runner.
func New() *Runner {
	return &Runner{responses: map[string][]Result{}}
}

// On scripts the responses for a command line.
func (r *Runner) On(line string, results ...Result) *Runner {
	r.responses[line] = append(r.responses[line], results...)
	return r
}

// OnOutput scripts a successful response.
func (r *Runner) OnOutput(line string, out string) *Runner {
	return r.On(line, Result{Out: out})
}

// OnError scripts a failing response.
func (r *Runner) OnError(line string, err error) *Runner {
	return r.On(line, Result{Err: err})
}

// Output answers a probe.
func (r *Runner) Output(_ context.Context, name string, args ...string) (string, error) {
	line := shell.Line(name, args...)
	r.Calls = append(r.Calls, Call{Line: line})
	res, ok := r.next(line)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotScripted, line)
	}
	return res.Out, res.Err
}

// Run records a mutation.
func (r *Runner) Run(_ context.Context, name string, args ...string) (string, error) {
	line := shell.Line(name, args...)
	r.Calls = append(r.Calls, Call{Line: line, Mutating: true})
	res, _ := r.next(line)
	return res.Out, res.Err
}

// Stream records a mutation and writes Streamed to w.
func (r *Runner) Stream(_ context.Context, w io.Writer, name string, args ...string) error {
	line := shell.Line(name, args...)
	r.Calls = append(r.Calls, Call{Line: line, Mutating: true})
	if r.Streamed != "" {
		_, _ = io.WriteString(w, r.Streamed)
	}
	res, _ := r.next(line)
	return res.Err
}

// DryRun is always false; wrap with shell.NewDryRun to test dry-run paths.
func (r *Runner) DryRun() bool {
	return false
}

func (r *Runner) next(line string) (Result, bool) {
	queue, ok := r.responses[line]
	if !ok || len(queue) == 0 {
		return Result{}, false
	}
	res := queue[0]
	if len(queue) > 1 {
		r.responses[line] = queue[1:]
	}
	return res, true
}

// Mutations returns the command lines of every mutating call in order.
func (r *Runner) Mutations() []string {
	var out []string
	for _, call := range r.Calls {
		if call.Mutating {
			out = append(out, call.Line)
		}
	}
	return out
}

// Ran reports whether line was issued as a mutation.
func (r *Runner) Ran(line string) bool {
	for _, call := range r.Calls {
		if call.Mutating && call.Line == line {
			return true
		}
	}
	return false
}

// RanPrefix reports whether any mutation starts with prefix.
func (r *Runner) RanPrefix(prefix string) bool {
	for _, call := range r.Calls {
		if call.Mutating && strings.HasPrefix(call.Line, prefix) {
			return true
		}
	}
	return false
}
