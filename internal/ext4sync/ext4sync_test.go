package ext4sync

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"

	"github.com/wslarc/wslarc/internal/config"
	"github.com/wslarc/wslarc/internal/systemd"
)

func TestEnabled(t *testing.T) {
	cfg := config.Default()
	assert.True(t, Enabled(cfg))
	delete(cfg.Subvolumes.Backup, "@usr")
	assert.False(t, Enabled(cfg))
}

func TestMountUnit(t *testing.T) {
	cfg := config.Default()
	unit, err := MountUnit(context.Background(), cfg, "ext4-uuid", systemd.LocalEscaper{})
	require.NoError(t, err)
	assert.Equal(t, "mnt-ext4-root.mount", unit.Filename)
}

func TestMountUnitBody(t *testing.T) {
	cfg := config.Default()
	cfg.Ext4Sync.MountPoint = "/mnt/ext4root"
	unit, err := MountUnit(context.Background(), cfg, "ext4-uuid", systemd.LocalEscaper{})
	require.NoError(t, err)
	assert.Equal(t, "mnt-ext4root.mount", unit.Filename)

	file, err := ini.Load([]byte(unit.Body))
	require.NoError(t, err)
	mount := file.Section("Mount")
	assert.Equal(t, "UUID=ext4-uuid", mount.Key("What").String())
	assert.Equal(t, "/mnt/ext4root", mount.Key("Where").String())
	assert.Equal(t, "ext4", mount.Key("Type").String())
	assert.Equal(t, "defaults", mount.Key("Options").String())
	assert.Equal(t, "Mount ext4 root for sync", file.Section("Unit").Key("Description").String())
}

func TestHook(t *testing.T) {
	hook, err := Hook()
	require.NoError(t, err)
	file, err := ini.LoadSources(ini.LoadOptions{AllowShadows: true}, []byte(hook))
	require.NoError(t, err)
	assert.Equal(t, Packages, file.Section("Trigger").Key("Target").ValueWithShadows())
	assert.Equal(t, "Upgrade", file.Section("Trigger").Key("Operation").String())
	assert.Equal(t, "PostTransaction", file.Section("Action").Key("When").String())
	assert.Equal(t, "/usr/local/bin/wslarc hook-sync-systemd", file.Section("Action").Key("Exec").String())
}

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("systemd", "systemd 256.7-1")
	require.NoError(t, err)
	assert.Equal(t, "256.7-1", v)

	_, err = ParseVersion("systemd", "error: package 'systemd' was not found")
	assert.Error(t, err)
	_, err = ParseVersion("systemd-libs", "systemd 256.7-1")
	assert.Error(t, err)
}

func TestPackageFile(t *testing.T) {
	assert.Equal(t, "systemd-libs-256.7-1-x86_64.pkg.tar.zst", PackageFile("systemd-libs", "256.7-1", "x86_64"))
}

func TestPacmanArch(t *testing.T) {
	arch, err := PacmanArch("amd64")
	require.NoError(t, err)
	assert.Equal(t, "x86_64", arch)
	arch, err = PacmanArch("arm64")
	require.NoError(t, err)
	assert.Equal(t, "aarch64", arch)
	_, err = PacmanArch("riscv64")
	assert.Error(t, err)
}
