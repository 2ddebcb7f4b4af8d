package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/wslarc/wslarc/internal/config"
	"github.com/wslarc/wslarc/internal/messages"
)

func newConfigCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.ConfigUse,
		Short: messages.ConfigShort,
	}
	cmd.AddCommand(newConfigShowCmd(flags), newConfigGetCmd(flags), newConfigPathCmd(flags))
	return cmd
}

func newConfigShowCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   messages.ConfigShowUse,
		Short: messages.ConfigShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := flags.load()
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigGetCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   messages.ConfigGetUse,
		Short: messages.ConfigGetShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ResolvePath(flags.configPath)
			if err != nil {
				return err
			}
			data, err := afero.ReadFile(appFs, path)
			if errors.Is(err, fs.ErrNotExist) {
				data, err = config.Marshal(config.Default())
			}
			if err != nil {
				return err
			}
			value, err := config.Get(data, path, args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
			return err
		},
	}
}

func newConfigPathCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   messages.ConfigPathUse,
		Short: messages.ConfigPathShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ResolvePath(flags.configPath)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
}
