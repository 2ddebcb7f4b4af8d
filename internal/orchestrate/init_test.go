package orchestrate

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wslarc/wslarc/internal/config"
	"github.com/wslarc/wslarc/internal/shell/shelltest"
)

const lsblkLabels = "sda\nsdb ArchBtrfs\nsdc"

func scriptAttachedVolume(h *harness) {
	scriptVolume(h, "btrfs", "ArchBtrfs")
}

func scriptVolume(h *harness, fstype string, label string) {
	h.runner.OnOutput("id alice", "uid=1000(alice)")
	scriptDevice(h, fstype, label)
}

// scriptDevice scripts the attached volume without answering the user lookup.
func scriptDevice(h *harness, fstype string, label string) {
	h.runner.
		OnOutput("lsblk -n -o NAME,LABEL", lsblkLabels).
		OnOutput("lsblk -n -o FSTYPE /dev/sdb", fstype).
		OnOutput("lsblk -n -o LABEL /dev/sdb", label).
		OnOutput("blkid -s UUID -o value /dev/sdb", "5d1e7c3a-0000-4000-8000-000000000001")
}

func TestInitCreatesSubvolumeTree(t *testing.T) {
	h := newHarness(t)
	scriptAttachedVolume(h)
	h.writeFile(t, "/usr/bin/pacman", "binary")

	require.NoError(t, Init(context.Background(), testConfig(), h.opts))

	r := h.runner
	assert.False(t, r.RanPrefix("useradd"))
	assert.False(t, r.RanPrefix("mkfs.btrfs"))
	assert.False(t, r.RanPrefix("/mnt/c/Windows/System32/wsl.exe"))
	assert.True(t, r.Ran("mount /dev/sdb /mnt/btrfs-setup"))
	for _, name := range []string{"@home", "@opt", "@usr", "@var_lib_pacman", "@etc", "@home/.cache", "@containers", "@var_log", ".snapshots"} {
		assert.True(t, r.Ran("btrfs subvolume create /mnt/btrfs-setup/"+name), name)
	}
	assert.True(t, r.Ran("rsync -aAX --info=progress2 /usr/ /mnt/btrfs-setup/@usr/"))
	assert.False(t, r.RanPrefix("rsync -aAX --info=progress2 /opt/"), "missing source is skipped")
	assert.True(t, r.Ran("chown alice:alice /mnt/btrfs-setup/@home/.cache"))
	assert.True(t, r.Ran("chown alice:alice /mnt/btrfs-setup/@home"))
	assert.True(t, r.Ran("chattr +C /mnt/btrfs-setup/@containers"))
	assert.False(t, r.Ran("chattr +C /mnt/btrfs-setup/@var_log"))
	assert.True(t, r.Ran("umount /mnt/btrfs-setup"))
	assert.True(t, r.Ran("mount -o compress=zstd:3,noatime,nofail /dev/sdb /mnt/btrfs"))

	saved, err := config.LoadFS(h.fs, config.DefaultPath)
	require.NoError(t, err)
	assert.Equal(t, "5d1e7c3a-0000-4000-8000-000000000001", saved.UUID)
	assert.Equal(t, "alice", saved.User.Name)
	assert.Contains(t, h.out.String(), "Next step: wslarc mount")
}

func TestInitDoesNotModifyCallerConfig(t *testing.T) {
	h := newHarness(t)
	scriptAttachedVolume(h)
	cfg := testConfig()

	require.NoError(t, Init(context.Background(), cfg, h.opts))
	assert.Empty(t, cfg.UUID)
}

func TestInitCreatesMissingUser(t *testing.T) {
	h := newHarness(t)
	h.runner.OnError("id alice", assert.AnError)
	scriptDevice(h, "btrfs", "ArchBtrfs")

	require.NoError(t, Init(context.Background(), testConfig(), h.opts))
	assert.True(t, h.runner.Ran("useradd -M -G wheel alice"))
	assert.Contains(t, h.out.String(), "[1/7]")
}

func TestInitAttachesAndFormatsNewDevice(t *testing.T) {
	h := newHarness(t)
	h.runner.
		OnOutput("id alice", "uid=1000(alice)").
		OnOutput("lsblk -n -o NAME,LABEL", "sda").
		On("lsblk -d -n -o NAME", shelltest.Result{Out: "sda"}, shelltest.Result{Out: "sda"}, shelltest.Result{Out: "sda\nsdd"}).
		OnOutput("lsblk -n -o FSTYPE /dev/sdd", "").
		OnOutput("blkid -s UUID -o value /dev/sdd", "9F0C2B6E-1D4A-4C8B-A2E3-7B5D9E1F0A42")

	require.NoError(t, Init(context.Background(), testConfig(), h.opts))
	assert.True(t, h.runner.Ran(`/mnt/c/Windows/System32/wsl.exe --mount --vhd 'C:\wsl\arch.vhdx' --bare`))
	assert.True(t, h.runner.Ran("mkfs.btrfs -L ArchBtrfs /dev/sdd"))
	assert.Equal(t, 2, h.sys.sleeps)
	saved, err := config.LoadFS(h.fs, config.DefaultPath)
	require.NoError(t, err)
	assert.Equal(t, "9f0c2b6e-1d4a-4c8b-a2e3-7b5d9e1f0a42", saved.UUID)
}

func TestInitRejectsMalformedUUID(t *testing.T) {
	h := newHarness(t)
	h.runner.
		OnOutput("id alice", "uid=1000(alice)").
		OnOutput("lsblk -n -o NAME,LABEL", "sdb ArchBtrfs").
		OnOutput("lsblk -n -o FSTYPE /dev/sdb", "btrfs").
		OnOutput("lsblk -n -o LABEL /dev/sdb", "ArchBtrfs").
		OnOutput("blkid -s UUID -o value /dev/sdb", "not-a-uuid")

	err := Init(context.Background(), testConfig(), h.opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a UUID")
	assert.False(t, h.runner.RanPrefix("btrfs subvolume create"))
}

func TestInitFailsWhenNoDeviceAppears(t *testing.T) {
	h := newHarness(t)
	h.runner.
		OnOutput("id alice", "uid=1000(alice)").
		OnOutput("lsblk -n -o NAME,LABEL", "sda").
		OnOutput("lsblk -d -n -o NAME", "sda")

	err := Init(context.Background(), testConfig(), h.opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no new block device")
	assert.Equal(t, attachPollAttempts, h.sys.sleeps)
	assert.False(t, h.runner.RanPrefix("mkfs.btrfs"))
}

func TestInitLabelMismatchDeclinedLeavesDeviceAlone(t *testing.T) {
	h := newHarness(t)
	p := &scriptedPrompter{confirms: []bool{true, false}}
	h.opts.Prompter = p
	h.runner.
		OnOutput("id alice", "uid=1000(alice)").
		OnOutput("lsblk -n -o NAME,LABEL", "sda\nsdb Backups").
		On("lsblk -d -n -o NAME", shelltest.Result{Out: "sda\nsdb"}, shelltest.Result{Out: "sda\nsdb\nsde"}).
		OnOutput("lsblk -n -o FSTYPE /dev/sde", "btrfs").
		OnOutput("lsblk -n -o LABEL /dev/sde", "Backups")

	err := Init(context.Background(), testConfig(), h.opts)
	require.ErrorIs(t, err, ErrHazardDeclined)
	assert.False(t, h.runner.RanPrefix("mkfs.btrfs"))
	assert.False(t, h.runner.RanPrefix("btrfs subvolume create"))
	exists, _ := afero.Exists(h.fs, config.DefaultPath)
	assert.False(t, exists, "config must not be saved")
	assert.Contains(t, h.out.String(), `label "Backups" (expected "ArchBtrfs")`)
}

func TestInitForeignFilesystemConfirmedReformats(t *testing.T) {
	h := newHarness(t)
	scriptVolume(h, "ext4", "")

	require.NoError(t, Init(context.Background(), testConfig(), h.opts))
	assert.True(t, h.runner.Ran("mkfs.btrfs -f -L ArchBtrfs /dev/sdb"))
}

func TestInitUUIDMismatchIsHazard(t *testing.T) {
	h := newHarness(t)
	scriptAttachedVolume(h)
	p := &scriptedPrompter{confirms: []bool{true, true, false}}
	h.opts.Prompter = p
	cfg := testConfig()
	cfg.UUID = "old-uuid"
	h.writeFile(t, config.DefaultPath, "uuid = \"old-uuid\"\n")

	err := Init(context.Background(), cfg, h.opts)
	require.ErrorIs(t, err, ErrHazardDeclined)
	assert.Equal(t, []string{"Continue anyway?", "Proceed with initialization?", "Replace the configured UUID?"}, p.asked)
	assert.False(t, h.runner.RanPrefix("btrfs subvolume create"))
}

func TestInitDeclinedAtStart(t *testing.T) {
	h := newHarness(t)
	h.opts.Prompter = &scriptedPrompter{confirms: []bool{false}}

	err := Init(context.Background(), testConfig(), h.opts)
	require.ErrorIs(t, err, ErrAborted)
	assert.Empty(t, h.runner.Calls)
}

func TestInitRequiresVolumePath(t *testing.T) {
	h := newHarness(t)
	cfg := testConfig()
	cfg.VHDX.Path = ""

	err := Init(context.Background(), cfg, h.opts)
	require.ErrorIs(t, err, config.ErrConfigValidation)
}

func TestInitDryRunPerformsNoMutations(t *testing.T) {
	h := newHarness(t)
	h.dryRun()
	h.runner.
		OnOutput("id alice", "uid=1000(alice)").
		OnOutput("lsblk -n -o NAME,LABEL", "sda").
		OnOutput("lsblk -d -n -o NAME", "sda")

	require.NoError(t, Init(context.Background(), testConfig(), h.opts))
	assert.Empty(t, h.runner.Mutations())
	assert.Contains(t, h.out.String(), "[dry-run] mkfs.btrfs -L ArchBtrfs '<device>'")
	assert.Contains(t, h.out.String(), "[dry-run] write /etc/wslarc/config.toml")
	assert.Contains(t, h.out.String(), "<uuid>")
	exists, _ := afero.Exists(h.fs, config.DefaultPath)
	assert.False(t, exists)
}

func TestUnderHome(t *testing.T) {
	assert.True(t, underHome("/home/alice", "/home/alice"))
	assert.True(t, underHome("/home/alice/.cache", "/home/alice"))
	assert.False(t, underHome("/home/alice2", "/home/alice"))
	assert.False(t, underHome("/var/cache", "/home/alice"))
}
