package orchestrate

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wslarc/wslarc/internal/config"
	"github.com/wslarc/wslarc/internal/messages"
)

// BinfmtHelper re-registers binfmt handlers so wsl.exe can run at boot.
const BinfmtHelper = "/usr/lib/systemd/systemd-binfmt"

// Attach makes the VHDX available as a bare block device. It runs as the WSL
// boot command and is silent on success.
func Attach(ctx context.Context, cfg *config.Config, opts Options) error {
	e, err := newEngine(opts)
	if err != nil {
		return err
	}
	if _, err := e.runner.Run(ctx, BinfmtHelper); err != nil {
		return fmt.Errorf(messages.AttachBinfmtFmt, err)
	}
	if e.btrfsWithLabel(ctx, cfg.VHDX.Label) {
		e.log.Info("volume already attached", zap.String("label", cfg.VHDX.Label))
		return nil
	}
	if err := cfg.RequireVolumePath(); err != nil {
		return err
	}
	if _, err := e.runner.Run(ctx, WSLExe, "--mount", "--vhd", windowsPath(cfg.VHDX.Path), "--bare"); err != nil {
		return fmt.Errorf(messages.InitAttachFailedFmt, err)
	}
	return nil
}
