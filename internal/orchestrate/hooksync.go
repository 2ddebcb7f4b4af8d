package orchestrate

import (
	"context"
	"fmt"
	"path"

	"github.com/wslarc/wslarc/internal/config"
	"github.com/wslarc/wslarc/internal/ext4sync"
	"github.com/wslarc/wslarc/internal/messages"
)

// HookSync reinstalls the running systemd package versions into the ext4 root.
// The pacman hook calls it after every systemd upgrade.
func HookSync(ctx context.Context, cfg *config.Config, opts Options) error {
	e, err := newEngine(opts)
	if err != nil {
		return err
	}
	mp := cfg.Ext4Sync.MountPoint

	if e.isMounted(ctx, mp) {
		e.report.info(messages.HookSyncMountedFmt, mp)
	} else {
		uuid, err := e.rootUUID(ctx)
		if err != nil || uuid == "" {
			return fmt.Errorf(messages.HookSyncNoRootUUID)
		}
		if err := e.mkdirAll(mp); err != nil {
			return err
		}
		if _, err := e.runner.Run(ctx, "mount", "UUID="+uuid, mp); err != nil {
			return err
		}
		e.report.info(messages.HookSyncMountedRootFmt, mp)
	}

	arch, err := ext4sync.PacmanArch(e.sys.Arch())
	if err != nil {
		return err
	}
	cache := path.Join(mp, ext4sync.PackageCacheDir)
	if err := e.mkdirAll(cache); err != nil {
		return err
	}

	files := make([]string, 0, len(ext4sync.Packages))
	for _, pkg := range ext4sync.Packages {
		out, err := e.runner.Output(ctx, "pacman", "-Q", pkg)
		if err != nil {
			return fmt.Errorf(messages.HookSyncNotInstalledFmt, pkg, err)
		}
		version, err := ext4sync.ParseVersion(pkg, out)
		if err != nil {
			return err
		}
		name := ext4sync.PackageFile(pkg, version, arch)
		dst := path.Join(cache, name)
		if err := e.copyFile(path.Join(ext4sync.PackageCacheDir, name), dst, 0o644); err != nil {
			return err
		}
		e.report.info(messages.HookSyncCopiedFmt, name)
		files = append(files, dst)
	}

	args := append([]string{"--sysroot", mp, "-U", "--noconfirm"}, files...)
	if _, err := e.runner.Run(ctx, "pacman", args...); err != nil {
		return err
	}
	e.report.success(messages.HookSyncComplete)
	return nil
}
