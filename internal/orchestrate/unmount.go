package orchestrate

import (
	"context"
	"fmt"

	"github.com/wslarc/wslarc/internal/btrbk"
	"github.com/wslarc/wslarc/internal/config"
	"github.com/wslarc/wslarc/internal/messages"
	"github.com/wslarc/wslarc/internal/subvolume"
	"github.com/wslarc/wslarc/internal/systemd"
)

// Unmount disables every generated mount unit and the snapshot timer. Unit
// files and the boot command stay in place, so the change applies at the next
// WSL restart and Mount can re-enable everything.
func Unmount(ctx context.Context, cfg *config.Config, opts Options) error {
	e, err := newEngine(opts)
	if err != nil {
		return err
	}
	e.report.title(messages.UnmountTitle)

	if err := cfg.RequireUser(); err != nil {
		return err
	}
	subs, err := subvolume.Classify(cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrConfigValidation, err)
	}
	units, err := systemd.MountUnits(ctx, cfg, subs, e.esc)
	if err != nil {
		return err
	}
	names := systemd.Filenames(units)

	e.report.warn(messages.UnmountWarning)
	e.report.warn(messages.UnmountWarningData)
	if err := e.confirmStart(messages.UnmountProceedPrompt, false); err != nil {
		return err
	}

	steps := []Step{
		{
			Description: messages.UnmountStepUnits,
			Action: func(ctx context.Context) error {
				return e.disableUnits(ctx, names)
			},
		},
		{
			Description: messages.UnmountStepTimer,
			Action: func(ctx context.Context) error {
				return e.disableUnits(ctx, []string{btrbk.TimerName})
			},
		},
	}
	if err := e.runSteps(ctx, steps); err != nil {
		return err
	}

	e.report.done(messages.UnmountComplete)
	e.report.line(messages.UnmountBootCommandNote)
	e.report.line(messages.UnmountNextStep)
	return nil
}

func (e *engine) disableUnits(ctx context.Context, names []string) error {
	for _, name := range names {
		if !e.isEnabled(ctx, name) {
			e.report.info(messages.UnmountAlreadyDisabledFmt, name)
			continue
		}
		if _, err := e.runner.Run(ctx, "systemctl", "disable", name); err != nil {
			return err
		}
		e.report.success(messages.UnmountDisabledFmt, name)
	}
	return nil
}
