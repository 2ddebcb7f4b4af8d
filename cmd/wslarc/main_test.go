package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/wslarc/wslarc/internal/orchestrate"
	"github.com/wslarc/wslarc/internal/prompt"
)

func TestMainVersion(t *testing.T) {
	var out bytes.Buffer
	if err := execute([]string{"wslarc", "--version"}, &out, &out); err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if !strings.Contains(out.String(), Version) {
		t.Fatalf("expected version output, got %q", out.String())
	}
}

func TestMainUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	err := execute([]string{"wslarc", "unknown"}, &out, &out)
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestRunMainSuccess(t *testing.T) {
	var out bytes.Buffer
	called := false
	runMain([]string{"wslarc", "--version"}, &out, &out, func(code int) {
		called = true
	})
	if called {
		t.Fatalf("unexpected exit")
	}
}

func TestRunMainError(t *testing.T) {
	var out bytes.Buffer
	code := 0
	runMain([]string{"wslarc", "unknown"}, &out, &out, func(exitCode int) {
		code = exitCode
	})
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(out.String(), "unknown command") {
		t.Fatalf("expected error output, got %q", out.String())
	}
}

func stubExecute(t *testing.T, err error) {
	t.Helper()
	orig := executeFunc
	executeFunc = func([]string, io.Writer, io.Writer) error { return err }
	t.Cleanup(func() { executeFunc = orig })
}

func TestRunMainAbortedExitsCleanly(t *testing.T) {
	stubExecute(t, fmt.Errorf("restore: %w", orchestrate.ErrAborted))
	var stdout, stderr bytes.Buffer
	called := false
	runMain([]string{"wslarc", "restore"}, &stdout, &stderr, func(int) { called = true })
	if called {
		t.Fatalf("aborted run must not exit non-zero")
	}
	if strings.TrimSpace(stdout.String()) != "Aborted." {
		t.Fatalf("unexpected stdout %q", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}

func TestRunMainCancelledPromptExitsCleanly(t *testing.T) {
	stubExecute(t, fmt.Errorf("init: %w", prompt.ErrCancelled))
	var stdout, stderr bytes.Buffer
	called := false
	runMain([]string{"wslarc", "init"}, &stdout, &stderr, func(int) { called = true })
	if called {
		t.Fatalf("cancelled prompt must not exit non-zero")
	}
	if strings.TrimSpace(stdout.String()) != "Aborted." {
		t.Fatalf("unexpected stdout %q", stdout.String())
	}
}

func TestRunMainHazardDeclinedFails(t *testing.T) {
	stubExecute(t, fmt.Errorf("step 3/7 (Format Btrfs filesystem): %w: label mismatch", orchestrate.ErrHazardDeclined))
	var out bytes.Buffer
	code := 0
	runMain([]string{"wslarc", "init"}, &out, &out, func(c int) { code = c })
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(out.String(), "label mismatch") {
		t.Fatalf("expected reason in output, got %q", out.String())
	}
}

func TestRunMainSilentExit(t *testing.T) {
	stubExecute(t, &SilentExitError{Code: 4})
	var out bytes.Buffer
	code := 0
	runMain([]string{"wslarc"}, &out, &out, func(c int) { code = c })
	if code != 4 {
		t.Fatalf("expected exit code 4, got %d", code)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestRunMainExitErrorPropagatesCode(t *testing.T) {
	childErr := exec.Command("sh", "-c", "exit 3").Run()
	var exitErr *exec.ExitError
	if !errors.As(childErr, &exitErr) {
		t.Fatalf("expected exit error, got %v", childErr)
	}
	stubExecute(t, fmt.Errorf("btrbk: %w", childErr))
	var out bytes.Buffer
	code := 0
	runMain([]string{"wslarc", "snapshot", "run"}, &out, &out, func(c int) { code = c })
	if code != 3 {
		t.Fatalf("expected exit code 3, got %d", code)
	}
}

func TestVersionString(t *testing.T) {
	origVersion, origCommit, origBuild := Version, Commit, BuildDate
	t.Cleanup(func() { Version, Commit, BuildDate = origVersion, origCommit, origBuild })

	Version, Commit, BuildDate = "v1.2.3", "unknown", "unknown"
	if got := versionString(); got != "v1.2.3" {
		t.Fatalf("unexpected version %q", got)
	}
	Commit, BuildDate = "abc123", "2026-01-02"
	if got := versionString(); got != "v1.2.3 (commit abc123, built 2026-01-02)" {
		t.Fatalf("unexpected version %q", got)
	}
}

func TestMainCallsExecute(t *testing.T) {
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	called := false
	orig := executeFunc
	executeFunc = func(args []string, stdout io.Writer, stderr io.Writer) error {
		called = true
		return nil
	}
	defer func() { executeFunc = orig }()

	os.Args = []string{"wslarc", "--version"}
	main()
	if !called {
		t.Fatalf("expected execute to be called")
	}
}
