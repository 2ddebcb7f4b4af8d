package shell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wslarc/wslarc/internal/testutil"
)

func TestExecOutputTrimsStdout(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteScript(t, dir, "probe-stub", `echo "  value $1  "`)
	testutil.PrependPath(t, dir)

	out, err := NewExec(nil).Output(context.Background(), "probe-stub", "x")
	require.NoError(t, err)
	assert.Equal(t, "value x", out)
}

func TestExecRunFailureCarriesStderr(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteScript(t, dir, "fail-stub", "echo 'no such device' >&2\nexit 3")
	testutil.PrependPath(t, dir)

	_, err := NewExec(nil).Run(context.Background(), "fail-stub", "/dev/sdz")
	require.Error(t, err)

	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, "fail-stub /dev/sdz", cmdErr.Command)
	assert.Equal(t, "no such device", cmdErr.Stderr)
	assert.Contains(t, err.Error(), "command failed: fail-stub /dev/sdz")
	assert.Contains(t, err.Error(), "no such device")

	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.ExitCode())
}

func TestExecMissingBinary(t *testing.T) {
	_, err := NewExec(nil).Output(context.Background(), "wslarc-definitely-missing-binary")
	require.Error(t, err)
	var cmdErr *CommandError
	assert.True(t, errors.As(err, &cmdErr))
}

func TestExecEmptyName(t *testing.T) {
	_, err := NewExec(nil).Run(context.Background(), "")
	require.Error(t, err)
	assert.Error(t, NewExec(nil).Stream(context.Background(), &bytes.Buffer{}, ""))
}

func TestExecStreamIndentsOutput(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteScript(t, dir, "stream-stub", "echo one\necho two")
	testutil.PrependPath(t, dir)

	var buf bytes.Buffer
	require.NoError(t, NewExec(nil).Stream(context.Background(), &buf, "stream-stub"))
	assert.Equal(t, "  one\n  two\n", buf.String())
}

func TestExecStreamFailure(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteScript(t, dir, "stream-fail", "echo partial\necho broken >&2\nexit 1")
	testutil.PrependPath(t, dir)

	var buf bytes.Buffer
	err := NewExec(nil).Stream(context.Background(), &buf, "stream-fail")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
	assert.Equal(t, "  partial\n", buf.String())
}

func TestExecIsNotDryRun(t *testing.T) {
	assert.False(t, NewExec(nil).DryRun())
}

func TestExecOutputKeepsStdoutOnFailure(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteScript(t, dir, "systemctl", "echo disabled\nexit 1")
	testutil.PrependPath(t, dir)

	out, err := NewExec(nil).Output(context.Background(), "systemctl", "is-enabled", "home-alice.mount")
	require.Error(t, err)
	assert.Equal(t, "disabled", out)
}

func TestExecRunPassesArgumentsVerbatim(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteStubExpectArg(t, dir, "mount-stub", "subvol=@home,compress=zstd:3")
	testutil.PrependPath(t, dir)

	_, err := NewExec(nil).Run(context.Background(), "mount-stub", "-o", "subvol=@home,compress=zstd:3")
	require.NoError(t, err)
	_, err = NewExec(nil).Run(context.Background(), "mount-stub", "-o", "subvol=@home")
	require.Error(t, err)
}

func TestExecStreamKeepsExitCode(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteStubWithExit(t, dir, "btrbk-stub", 4)
	testutil.PrependPath(t, dir)

	err := NewExec(nil).Stream(context.Background(), &bytes.Buffer{}, "btrbk-stub", "run")
	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 4, exitErr.ExitCode())
}
