package main

import (
	"github.com/spf13/cobra"

	"github.com/wslarc/wslarc/internal/messages"
	"github.com/wslarc/wslarc/internal/orchestrate"
)

var (
	runInit         = orchestrate.Init
	runMount        = orchestrate.Mount
	runUnmount      = orchestrate.Unmount
	runStatus       = orchestrate.Status
	runRestore      = orchestrate.Restore
	runAttach       = orchestrate.Attach
	runHookSync     = orchestrate.HookSync
	runSnapshotRun  = orchestrate.SnapshotRun
	runSnapshotList = orchestrate.SnapshotList
)

// workflowCmd builds a command that runs one workflow against the loaded config.
func workflowCmd(flags *globalFlags, use string, short string, m mode, withDryRun bool, run func(*cobra.Command, *session) error) *cobra.Command {
	dryRun := false
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m.dryRun = dryRun
			s, err := flags.newSession(cmd, m)
			if err != nil {
				return err
			}
			return run(cmd, s)
		},
	}
	if withDryRun {
		cmd.Flags().BoolVar(&dryRun, "dry-run", false, messages.RootFlagDryRun)
	}
	return cmd
}

func newInitCmd(flags *globalFlags) *cobra.Command {
	return workflowCmd(flags, messages.InitUse, messages.InitShort, mode{mutating: true}, true, func(cmd *cobra.Command, s *session) error {
		return runInit(cmd.Context(), s.cfg, s.opts)
	})
}

func newMountCmd(flags *globalFlags) *cobra.Command {
	return workflowCmd(flags, messages.MountUse, messages.MountShort, mode{mutating: true}, true, func(cmd *cobra.Command, s *session) error {
		return runMount(cmd.Context(), s.cfg, s.opts)
	})
}

func newUnmountCmd(flags *globalFlags) *cobra.Command {
	return workflowCmd(flags, messages.UnmountUse, messages.UnmountShort, mode{mutating: true}, true, func(cmd *cobra.Command, s *session) error {
		return runUnmount(cmd.Context(), s.cfg, s.opts)
	})
}

func newStatusCmd(flags *globalFlags) *cobra.Command {
	return workflowCmd(flags, messages.StatusUse, messages.StatusShort, mode{}, false, func(cmd *cobra.Command, s *session) error {
		return runStatus(cmd.Context(), s.cfg, s.opts)
	})
}

func newAttachCmd(flags *globalFlags) *cobra.Command {
	return workflowCmd(flags, messages.AttachUse, messages.AttachShort, mode{mutating: true}, true, func(cmd *cobra.Command, s *session) error {
		return runAttach(cmd.Context(), s.cfg, s.opts)
	})
}

func newHookSyncCmd(flags *globalFlags) *cobra.Command {
	return workflowCmd(flags, messages.HookSyncUse, messages.HookSyncShort, mode{mutating: true}, true, func(cmd *cobra.Command, s *session) error {
		return runHookSync(cmd.Context(), s.cfg, s.opts)
	})
}

func newRestoreCmd(flags *globalFlags) *cobra.Command {
	var snapshot string
	cmd := workflowCmd(flags, messages.RestoreUse, messages.RestoreShort, mode{mutating: true}, true, func(cmd *cobra.Command, s *session) error {
		return runRestore(cmd.Context(), s.cfg, orchestrate.RestoreOptions{Snapshot: snapshot}, s.opts)
	})
	cmd.Flags().StringVarP(&snapshot, "snapshot", "s", "", messages.RestoreFlagSnapshot)
	return cmd
}

func newSnapshotCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.SnapshotUse,
		Short: messages.SnapshotShort,
	}
	cmd.AddCommand(
		workflowCmd(flags, messages.SnapshotRunUse, messages.SnapshotRunShort, mode{mutating: true}, true, func(cmd *cobra.Command, s *session) error {
			return runSnapshotRun(cmd.Context(), s.cfg, s.opts)
		}),
		workflowCmd(flags, messages.SnapshotListUse, messages.SnapshotListShort, mode{}, false, func(cmd *cobra.Command, s *session) error {
			return runSnapshotList(cmd.Context(), s.cfg, s.opts)
		}),
	)
	return cmd
}
