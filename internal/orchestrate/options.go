// Package orchestrate drives the init, mount, unmount, restore, and maintenance
// workflows as ordered, idempotent steps against the live system.
package orchestrate

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/wslarc/wslarc/internal/config"
	"github.com/wslarc/wslarc/internal/messages"
	"github.com/wslarc/wslarc/internal/prompt"
	"github.com/wslarc/wslarc/internal/shell"
	"github.com/wslarc/wslarc/internal/systemd"
)

// System exposes process facts the workflows depend on.
type System interface {
	Executable() (string, error)
	Arch() string
	Sleep(d time.Duration)
}

// RealSystem implements System for the running process.
type RealSystem struct{}

// Executable returns the path of the running binary.
func (RealSystem) Executable() (string, error) {
	return os.Executable()
}

// Arch returns the GOARCH the binary was built for.
func (RealSystem) Arch() string {
	return runtime.GOARCH
}

// Sleep pauses the current goroutine.
func (RealSystem) Sleep(d time.Duration) {
	time.Sleep(d)
}

// Options carries the collaborators shared by every workflow.
type Options struct {
	Runner   shell.Runner
	Fs       afero.Fs
	Prompter prompt.Prompter
	Out      io.Writer
	Log      *zap.Logger
	// Escaper names mount units. Defaults to systemd-escape through Runner.
	Escaper systemd.Escaper
	System  System
	// ConfigPath is where the configuration is loaded from and saved to.
	ConfigPath string
	// Yes skips interactive collection; confirmations are answered by Prompter.
	Yes bool
}

type engine struct {
	runner     shell.Runner
	fs         afero.Fs
	prompter   prompt.Prompter
	out        io.Writer
	log        *zap.Logger
	esc        systemd.Escaper
	sys        System
	configPath string
	yes        bool
	report     *reporter
}

func newEngine(opts Options) (*engine, error) {
	if opts.Runner == nil {
		return nil, fmt.Errorf(messages.OrchestrateRunnerRequired)
	}
	if opts.Prompter == nil {
		return nil, fmt.Errorf(messages.OrchestratePrompterRequired)
	}
	fsys := opts.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("component", "orchestrate"))
	esc := opts.Escaper
	if esc == nil {
		esc = systemd.NewCommandEscaper(opts.Runner, log)
	}
	sys := opts.System
	if sys == nil {
		sys = RealSystem{}
	}
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.DefaultPath
	}
	return &engine{
		runner:     opts.Runner,
		fs:         fsys,
		prompter:   opts.Prompter,
		out:        out,
		log:        log,
		esc:        esc,
		sys:        sys,
		configPath: configPath,
		yes:        opts.Yes,
		report:     &reporter{out: out},
	}, nil
}

func (e *engine) dryRun() bool {
	return e.runner.DryRun()
}
