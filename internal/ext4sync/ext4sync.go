// Package ext4sync keeps systemd on the ext4 root in step with the Btrfs @usr.
//
// When /usr lives on a Btrfs subvolume, pacman upgrades systemd there, but WSL
// boots systemd from the ext4 root before any mount unit runs. A pacman hook
// reinstalls the same package versions into the ext4 root after every upgrade.
package ext4sync

import (
	"context"
	"fmt"
	"strings"

	"github.com/wslarc/wslarc/internal/config"
	"github.com/wslarc/wslarc/internal/messages"
	"github.com/wslarc/wslarc/internal/systemd"
	"github.com/wslarc/wslarc/internal/templates"
)

const (
	// HookPath is the installed pacman hook.
	HookPath = "/etc/pacman.d/hooks/sync-systemd-ext4.hook"
	// PackageCacheDir is pacman's package cache, relative to a root.
	PackageCacheDir = "/var/cache/pacman/pkg"

	usrSubvolume = "@usr"
)

// Packages are the packages mirrored into the ext4 root.
var Packages = []string{"systemd", "systemd-libs", "systemd-sysvcompat"}

// Enabled reports whether /usr is a backup subvolume, which is when the two
// roots can drift apart.
func Enabled(cfg *config.Config) bool {
	_, ok := cfg.Subvolumes.Backup[usrSubvolume]
	return ok
}

// MountUnit generates the unit that mounts the ext4 root at the sync point.
func MountUnit(ctx context.Context, cfg *config.Config, uuid string, esc systemd.Escaper) (systemd.Unit, error) {
	body, err := systemd.RenderMount(systemd.MountSpec{
		Description: "Mount ext4 root for sync",
		UUID:        uuid,
		Where:       cfg.Ext4Sync.MountPoint,
		Type:        "ext4",
		Options:     "defaults",
	})
	if err != nil {
		return systemd.Unit{}, err
	}
	return systemd.Unit{Filename: systemd.UnitName(ctx, esc, cfg.Ext4Sync.MountPoint), Body: body}, nil
}

// Hook returns the pacman hook body.
func Hook() (string, error) {
	data, err := templates.Read("sync-systemd-ext4.hook")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParseVersion reads the version from `pacman -Q <pkg>` output ("systemd 256.7-1").
func ParseVersion(pkg string, output string) (string, error) {
	fields := strings.Fields(output)
	if len(fields) != 2 || fields[0] != pkg {
		return "", fmt.Errorf(messages.Ext4SyncPacmanQueryFmt, output)
	}
	return fields[1], nil
}

// PackageFile is the cached package file name for a package version.
func PackageFile(pkg string, version string, arch string) string {
	return fmt.Sprintf("%s-%s-%s.pkg.tar.zst", pkg, version, arch)
}

// PacmanArch maps a Go architecture to pacman's name for it.
func PacmanArch(goarch string) (string, error) {
	switch goarch {
	case "amd64":
		return "x86_64", nil
	case "arm64":
		return "aarch64", nil
	default:
		return "", fmt.Errorf(messages.Ext4SyncUnsupportedArchFmt, goarch)
	}
}
