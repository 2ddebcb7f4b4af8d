package orchestrate

import (
	"context"
	"errors"
	"fmt"

	"github.com/wslarc/wslarc/internal/messages"
)

var (
	// ErrAborted is returned when the operator declines to start a workflow.
	// Nothing has been changed.
	ErrAborted = errors.New(messages.OrchestrateAborted)
	// ErrHazardDeclined is returned when the operator declines to continue past
	// a dangerous state, such as a volume with an unexpected label.
	ErrHazardDeclined = errors.New(messages.OrchestrateHazardDeclined)
)

// Step is one idempotent unit of a workflow.
type Step struct {
	Description string
	// Check reports whether the step is already satisfied, with a note for the
	// operator. A nil Check always runs Action.
	Check  func(ctx context.Context) (bool, string, error)
	Action func(ctx context.Context) error
}

// runSteps executes steps in order, announcing each as [i/n]. The first error
// stops the sequence.
func (e *engine) runSteps(ctx context.Context, steps []Step) error {
	total := len(steps)
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.report.step(i+1, total, step.Description)
		if step.Check != nil {
			done, note, err := step.Check(ctx)
			if err != nil {
				return fmt.Errorf(messages.OrchestrateStepFailedFmt, i+1, total, step.Description, err)
			}
			if done {
				e.report.success("%s", note)
				continue
			}
		}
		if err := step.Action(ctx); err != nil {
			return fmt.Errorf(messages.OrchestrateStepFailedFmt, i+1, total, step.Description, err)
		}
	}
	return nil
}

// confirmStart asks before a workflow begins. Declining returns ErrAborted.
func (e *engine) confirmStart(question string, defaultYes bool) error {
	ok, err := e.prompter.Confirm(question, defaultYes)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}
	return nil
}

// confirmHazard asks before proceeding past a dangerous state. Declining
// returns an error wrapping ErrHazardDeclined.
func (e *engine) confirmHazard(question string, reason string) error {
	ok, err := e.prompter.Confirm(question, false)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrHazardDeclined, reason)
	}
	return nil
}
