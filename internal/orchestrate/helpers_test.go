package orchestrate

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/afero"

	"github.com/wslarc/wslarc/internal/config"
	"github.com/wslarc/wslarc/internal/prompt"
	"github.com/wslarc/wslarc/internal/shell"
	"github.com/wslarc/wslarc/internal/shell/shelltest"
	"github.com/wslarc/wslarc/internal/systemd"
)

const testExecutable = "/home/alice/bin/wslarc"

type fakeSystem struct {
	exe    string
	arch   string
	sleeps int
}

func (s *fakeSystem) Executable() (string, error) {
	return s.exe, nil
}

func (s *fakeSystem) Arch() string {
	return s.arch
}

func (s *fakeSystem) Sleep(time.Duration) {
	s.sleeps++
}

// scriptedPrompter answers confirmations in order and records every question.
type scriptedPrompter struct {
	confirms  []bool
	asked     []string
	selectIdx int
	offered   []string
}

var errUnexpectedPrompt = errors.New("unexpected prompt")

func (p *scriptedPrompter) Confirm(title string, _ bool) (bool, error) {
	p.asked = append(p.asked, title)
	if len(p.confirms) == 0 {
		return false, errUnexpectedPrompt
	}
	answer := p.confirms[0]
	p.confirms = p.confirms[1:]
	return answer, nil
}

func (p *scriptedPrompter) Select(_ string, options []string) (string, error) {
	p.offered = options
	if p.selectIdx >= len(options) {
		return "", errUnexpectedPrompt
	}
	return options[p.selectIdx], nil
}

func (p *scriptedPrompter) Input(string, *string) error {
	return nil
}

type harness struct {
	runner *shelltest.Runner
	fs     afero.Fs
	out    *bytes.Buffer
	sys    *fakeSystem
	opts   Options
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	noColor := color.NoColor
	color.NoColor = true
	width := terminalWidth
	terminalWidth = func() int { return 0 }
	t.Cleanup(func() {
		color.NoColor = noColor
		terminalWidth = width
	})

	h := &harness{
		runner: shelltest.New(),
		fs:     afero.NewMemMapFs(),
		out:    &bytes.Buffer{},
		sys:    &fakeSystem{exe: testExecutable, arch: "amd64"},
	}
	h.opts = Options{
		Runner:     h.runner,
		Fs:         h.fs,
		Prompter:   prompt.AutoYes{},
		Out:        h.out,
		Escaper:    systemd.LocalEscaper{},
		System:     h.sys,
		ConfigPath: config.DefaultPath,
		Yes:        true,
	}
	return h
}

// dryRun routes mutations through a dry-run wrapper around the scripted runner.
func (h *harness) dryRun() {
	h.opts.Runner = shell.NewDryRun(h.runner, h.out, nil)
}

func (h *harness) writeFile(t *testing.T, p string, content string) {
	t.Helper()
	if err := afero.WriteFile(h.fs, p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
}

func testConfig() *config.Config {
	cfg := config.Default()
	config.SetUser(cfg, "alice")
	cfg.VHDX.Path = "C:/wsl/arch.vhdx"
	return cfg
}
