package shelltest

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunnerScriptedSequence(t *testing.T) {
	ctx := context.Background()
	r := New().On("lsblk -d -n -o NAME", Result{Out: "sda"}, Result{Out: "sda\nsdb"})

	out, err := r.Output(ctx, "lsblk", "-d", "-n", "-o", "NAME")
	require.NoError(t, err)
	assert.Equal(t, "sda", out)

	for i := 0; i < 2; i++ {
		out, err = r.Output(ctx, "lsblk", "-d", "-n", "-o", "NAME")
		require.NoError(t, err)
		assert.Equal(t, "sda\nsdb", out)
	}
}

func TestRunnerUnscriptedProbeFails(t *testing.T) {
	_, err := New().Output(context.Background(), "id", "alice")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotScripted))
}

func TestRunnerRecordsMutations(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	r := New().OnError("umount /usr", boom)
	r.Streamed = "line\n"

	_, err := r.Run(ctx, "mkfs.btrfs", "-L", "ArchBtrfs", "/dev/sdb")
	require.NoError(t, err)
	_, err = r.Run(ctx, "umount", "/usr")
	require.ErrorIs(t, err, boom)

	var buf bytes.Buffer
	require.NoError(t, r.Stream(ctx, &buf, "btrbk", "-v", "run"))
	assert.Equal(t, "line\n", buf.String())

	assert.Equal(t, []string{"mkfs.btrfs -L ArchBtrfs /dev/sdb", "umount /usr", "btrbk -v run"}, r.Mutations())
	assert.True(t, r.Ran("umount /usr"))
	assert.True(t, r.RanPrefix("mkfs.btrfs"))
	assert.False(t, r.Ran("umount -l /usr"))
	assert.False(t, r.DryRun())
}
