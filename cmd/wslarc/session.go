package main

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/wslarc/wslarc/internal/config"
	"github.com/wslarc/wslarc/internal/logging"
	"github.com/wslarc/wslarc/internal/messages"
	"github.com/wslarc/wslarc/internal/orchestrate"
	"github.com/wslarc/wslarc/internal/prompt"
	"github.com/wslarc/wslarc/internal/shell"
)

var (
	appFs     = afero.NewOsFs()
	geteuid   = unix.Geteuid
	newRunner = func(log *zap.Logger) shell.Runner { return shell.NewExec(log) }
	newPrompt = prompt.New
)

var appSystem orchestrate.System = orchestrate.RealSystem{}

// session is the loaded configuration plus the collaborators a workflow needs.
type session struct {
	cfg  *config.Config
	opts orchestrate.Options
}

// mode describes how a command touches the system.
type mode struct {
	mutating bool
	dryRun   bool
}

func (f *globalFlags) load() (*config.Config, string, error) {
	path, err := config.ResolvePath(f.configPath)
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.LoadOrDefaultFS(appFs, path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// newSession loads the config and wires the runner, prompter, and logger for
// cmd. Mutating commands need root unless they only describe their changes.
func (f *globalFlags) newSession(cmd *cobra.Command, m mode) (*session, error) {
	if m.mutating && !m.dryRun && geteuid() != 0 {
		name := strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Name()+" ")
		return nil, fmt.Errorf(messages.RootRequiredFmt, name)
	}
	cfg, path, err := f.load()
	if err != nil {
		return nil, err
	}

	log := logging.New(f.verbose, cmd.ErrOrStderr())
	log.Debug("config loaded", zap.String("path", path), zap.Bool("dry_run", m.dryRun))

	runner := newRunner(log)
	if m.dryRun {
		runner = shell.NewDryRun(runner, cmd.OutOrStdout(), log)
	}
	return &session{
		cfg: cfg,
		opts: orchestrate.Options{
			Runner:     runner,
			Fs:         appFs,
			Prompter:   newPrompt(f.yes, cmd.InOrStdin(), cmd.OutOrStdout()),
			Out:        cmd.OutOrStdout(),
			Log:        log,
			System:     appSystem,
			ConfigPath: path,
			Yes:        f.yes,
		},
	}, nil
}
