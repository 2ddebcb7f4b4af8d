package main

import (
	"github.com/spf13/cobra"

	"github.com/wslarc/wslarc/internal/messages"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	yes        bool
	verbose    int
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", messages.RootFlagConfig)
	cmd.PersistentFlags().BoolVarP(&flags.yes, "yes", "y", false, messages.RootFlagYes)
	cmd.PersistentFlags().CountVarP(&flags.verbose, "verbose", "v", messages.RootFlagVerbose)

	cmd.AddCommand(
		newInitCmd(flags),
		newMountCmd(flags),
		newUnmountCmd(flags),
		newStatusCmd(flags),
		newSnapshotCmd(flags),
		newRestoreCmd(flags),
		newHookSyncCmd(flags),
		newAttachCmd(flags),
		newConfigCmd(flags),
	)
	return cmd
}
