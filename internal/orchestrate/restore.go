package orchestrate

import (
	"context"
	"fmt"
	"path"
	"sort"

	"github.com/spf13/afero"

	"github.com/wslarc/wslarc/internal/btrbk"
	"github.com/wslarc/wslarc/internal/config"
	"github.com/wslarc/wslarc/internal/messages"
	"github.com/wslarc/wslarc/internal/subvolume"
)

// restoreChoices is how many of the newest snapshots are offered interactively.
const restoreChoices = 10

// RestoreOptions selects the snapshot to restore.
type RestoreOptions struct {
	// Snapshot is the snapshot directory entry. Empty asks the operator.
	Snapshot string
}

type restorePlan struct {
	source  string
	live    string
	backup  string
	mount   string
	options string
}

// Restore replaces a live subvolume with a writable snapshot of a btrbk
// snapshot. The previous subvolume is kept as <name>.restore-backup.
func Restore(ctx context.Context, cfg *config.Config, ropts RestoreOptions, opts Options) error {
	e, err := newEngine(opts)
	if err != nil {
		return err
	}
	e.report.title(messages.RestoreTitle)

	if err := cfg.RequireUUID(); err != nil {
		return err
	}
	names, err := e.snapshotNames(cfg)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf(messages.RestoreNoSnapshotsFmt, cfg.SnapshotDir())
	}

	selected, err := e.selectSnapshot(names, ropts.Snapshot)
	if err != nil {
		return err
	}
	e.report.info(messages.RestoreSelectedFmt, selected)

	snap, err := btrbk.ParseSnapshot(selected)
	if err != nil {
		return err
	}
	plan := newRestorePlan(cfg, snap, selected)
	e.report.info(messages.RestoreTargetFmt, snap.Subvolume())

	_, backedUp := cfg.Subvolumes.Backup[snap.Subvolume()]
	if !backedUp && snap.Subvolume() != subvolume.SnapshotOnly {
		e.report.warn(messages.RestoreNotBackedUpFmt, snap.Subvolume())
	}

	e.report.section(messages.RestorePlanTitle)
	e.report.kv("Source snapshot", plan.source)
	e.report.kv("Target subvolume", snap.Subvolume())
	if plan.mount != "" {
		e.report.kv("Mount point", plan.mount)
	}
	e.report.line("")
	e.report.warn(messages.RestoreWarningReplace)
	e.report.warn(messages.RestoreWarningLost)
	if plan.mount != "" {
		e.report.warn(messages.RestoreWarningUnmount)
	}
	if err := e.confirmStart(messages.RestoreProceedPrompt, false); err != nil {
		return err
	}

	var steps []Step
	if plan.mount != "" {
		steps = append(steps, Step{
			Description: fmt.Sprintf(messages.RestoreStepUnmountFmt, plan.mount),
			Check: func(ctx context.Context) (bool, string, error) {
				return !e.isMounted(ctx, plan.mount), messages.RestoreAlreadyUnmounted, nil
			},
			Action: func(ctx context.Context) error { return e.unmountForRestore(ctx, plan.mount) },
		})
	}
	steps = append(steps,
		Step{
			Description: fmt.Sprintf(messages.RestoreStepBackupFmt, snap.Subvolume()),
			Action:      func(ctx context.Context) error { return e.backupLive(ctx, plan) },
		},
		Step{
			Description: fmt.Sprintf(messages.RestoreStepSnapshotFmt, snap.Subvolume()),
			Action: func(ctx context.Context) error {
				if _, err := e.runner.Run(ctx, "btrfs", "subvolume", "snapshot", plan.source, plan.live); err != nil {
					return err
				}
				e.report.success(messages.RestoreSnapshotRestored)
				return nil
			},
		},
	)
	if plan.mount != "" {
		steps = append(steps, Step{
			Description: fmt.Sprintf(messages.RestoreStepRemountFmt, plan.mount),
			Action: func(ctx context.Context) error {
				if _, err := e.runner.Run(ctx, "mount", "-t", "btrfs", "-o", plan.options, "UUID="+cfg.UUID, plan.mount); err != nil {
					return err
				}
				e.report.success(messages.RestoreRemounted)
				return nil
			},
		})
	}
	steps = append(steps, Step{
		Description: messages.RestoreStepCleanup,
		Action: func(context.Context) error {
			e.report.info(messages.RestoreBackupKeptFmt, path.Base(plan.backup))
			e.report.line(messages.RestoreDeleteHintFmt, plan.backup)
			return nil
		},
	})
	if err := e.runSteps(ctx, steps); err != nil {
		return err
	}

	e.report.done(messages.RestoreComplete)
	if plan.mount != "" {
		e.report.line(messages.RestoreRestartNote)
	}
	return nil
}

func newRestorePlan(cfg *config.Config, snap btrbk.Snapshot, selected string) restorePlan {
	name := snap.Subvolume()
	plan := restorePlan{
		source: path.Join(cfg.SnapshotDir(), selected),
		live:   cfg.SubvolumePath(name),
		backup: cfg.SubvolumePath(name + ".restore-backup"),
	}
	if entry, ok := cfg.Subvolumes.Backup[name]; ok {
		plan.mount = entry.MountTarget()
		plan.options = subvolume.MountOptions(subvolume.Subvolume{Name: name, Options: entry.Options()}, cfg.Mount.Options)
	}
	return plan
}

// snapshotNames lists the snapshot directory, oldest name first.
func (e *engine) snapshotNames(cfg *config.Config) ([]string, error) {
	dir := cfg.SnapshotDir()
	entries, err := afero.ReadDir(e.fs, dir)
	if err != nil {
		return nil, fmt.Errorf(messages.RestoreListSnapshotsFmt, dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (e *engine) selectSnapshot(names []string, requested string) (string, error) {
	if requested != "" {
		for _, name := range names {
			if name == requested {
				return name, nil
			}
		}
		return "", fmt.Errorf(messages.RestoreSnapshotNotFoundFmt, requested)
	}
	options := make([]string, 0, restoreChoices)
	for i := len(names) - 1; i >= 0 && len(options) < restoreChoices; i-- {
		options = append(options, names[i])
	}
	return e.prompter.Select(messages.RestoreSelectPrompt, options)
}

func (e *engine) unmountForRestore(ctx context.Context, mountPoint string) error {
	_, err := e.runner.Run(ctx, "umount", mountPoint)
	if err == nil {
		e.report.success(messages.RestoreUnmounted)
		return nil
	}
	e.report.warn(messages.RestoreUnmountFailedFmt, err)
	e.report.warn(messages.RestoreMountBusy)
	ok, err := e.prompter.Confirm(messages.RestoreLazyPrompt, true)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: "+messages.RestoreCannotUnmountFmt, ErrHazardDeclined, mountPoint)
	}
	if _, err := e.runner.Run(ctx, "umount", "-l", mountPoint); err != nil {
		return err
	}
	e.report.success(messages.RestoreLazyUnmounted)
	return nil
}

func (e *engine) backupLive(ctx context.Context, plan restorePlan) error {
	stale, err := e.exists(plan.backup)
	if err != nil {
		return err
	}
	if stale {
		e.report.info(messages.RestoreRemovingStaleBackup)
		if _, err := e.runner.Run(ctx, "btrfs", "subvolume", "delete", plan.backup); err != nil {
			return err
		}
	}
	live, err := e.exists(plan.live)
	if err != nil {
		return err
	}
	if !live {
		e.report.info(messages.RestoreLiveMissing)
		return nil
	}
	if _, err := e.runner.Run(ctx, "mv", plan.live, plan.backup); err != nil {
		return err
	}
	e.report.success(messages.RestoreBackedUpFmt, path.Base(plan.backup))
	return nil
}
