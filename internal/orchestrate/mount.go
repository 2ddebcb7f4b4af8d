package orchestrate

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/wslarc/wslarc/internal/btrbk"
	"github.com/wslarc/wslarc/internal/config"
	"github.com/wslarc/wslarc/internal/ext4sync"
	"github.com/wslarc/wslarc/internal/messages"
	"github.com/wslarc/wslarc/internal/subvolume"
	"github.com/wslarc/wslarc/internal/systemd"
	"github.com/wslarc/wslarc/internal/wslconf"
)

const (
	// InstalledBinary is where the boot command expects the executable.
	InstalledBinary = "/usr/local/bin/wslarc"
	// UnitStageDir holds changed units until systemd-analyze accepts them.
	UnitStageDir = "/etc/wslarc/units.new"
)

type mountRun struct {
	*engine
	cfg   *config.Config
	subs  []subvolume.Subvolume
	units []systemd.Unit
}

// Mount installs the binary, the boot command, the mount units, and the
// snapshot policy, then enables every unit. Running it again with the same
// configuration changes nothing.
func Mount(ctx context.Context, cfg *config.Config, opts Options) error {
	e, err := newEngine(opts)
	if err != nil {
		return err
	}
	e.report.title(messages.MountTitle)

	if err := cfg.RequireUUID(); err != nil {
		return err
	}
	if err := cfg.RequireUser(); err != nil {
		return err
	}
	subs, err := subvolume.Classify(cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrConfigValidation, err)
	}
	units, err := systemd.MountUnits(ctx, cfg, subs, e.esc)
	if err != nil {
		return err
	}

	e.report.section(messages.MountSectionFiles)
	for _, name := range systemd.Filenames(units) {
		e.report.line("  %s", path.Join(systemd.UnitDir, name))
	}
	e.report.line("  %s", btrbk.ConfigPath)
	e.report.line("  %s", path.Join(systemd.UnitDir, btrbk.ServiceName))
	e.report.line("  %s", path.Join(systemd.UnitDir, btrbk.TimerName))
	if ext4sync.Enabled(cfg) {
		e.report.line("  %s", path.Join(systemd.UnitDir, systemd.UnitName(ctx, e.esc, cfg.Ext4Sync.MountPoint)))
		e.report.line("  %s", ext4sync.HookPath)
	}
	e.report.line("")
	if err := e.confirmStart(messages.MountProceedPrompt, true); err != nil {
		return err
	}

	run := &mountRun{engine: e, cfg: cfg, subs: subs, units: units}
	steps := []Step{
		{Description: messages.MountStepBinary, Check: run.binaryInstalled, Action: run.installBinary},
		{Description: messages.MountStepBootCommand, Action: run.installBootCommand},
		{Description: messages.MountStepUnits, Action: run.installUnits},
		{Description: messages.MountStepBtrbk, Action: run.installBtrbk},
		{Description: messages.MountStepEnable, Action: run.enableUnits},
	}
	if ext4sync.Enabled(cfg) {
		steps = append(steps, Step{Description: messages.MountStepExt4Sync, Action: run.installExt4Sync})
	}
	if err := e.runSteps(ctx, steps); err != nil {
		return err
	}

	e.report.done(messages.MountComplete)
	e.report.line(messages.MountNextStep)
	return nil
}

func (r *mountRun) binaryInstalled(context.Context) (bool, string, error) {
	exe, err := r.sys.Executable()
	if err != nil {
		return false, "", err
	}
	if exe != InstalledBinary {
		return false, "", nil
	}
	return true, fmt.Sprintf(messages.MountBinaryCurrentFmt, InstalledBinary), nil
}

// installBinary copies the running executable to InstalledBinary and into the
// @usr subvolume so the copy survives once /usr is mounted over the ext4 root.
func (r *mountRun) installBinary(context.Context) error {
	exe, err := r.sys.Executable()
	if err != nil {
		return err
	}
	if err := r.copyFile(exe, InstalledBinary, 0o755); err != nil {
		return err
	}
	r.report.success(messages.MountBinaryInstalledFmt, InstalledBinary)

	usr := r.cfg.SubvolumePath("@usr")
	ok, err := r.exists(usr)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	dst := path.Join(usr, strings.TrimPrefix(InstalledBinary, "/usr/"))
	if err := r.copyFile(exe, dst, 0o755); err != nil {
		return err
	}
	r.report.success(messages.MountBinaryInstalledFmt, dst)
	return nil
}

func (r *mountRun) installBootCommand(context.Context) error {
	data, _, err := r.readOptional(wslconf.Path)
	if err != nil {
		return err
	}
	current, err := wslconf.BootCommand(data)
	if err != nil {
		return err
	}
	if current != "" && current != wslconf.AttachCommand {
		r.report.warn(messages.MountBootCommandReplacedFmt, current)
	}
	updated, err := wslconf.SetBootCommand(data, wslconf.AttachCommand)
	if err != nil {
		return err
	}
	_, err = r.writeFile(wslconf.Path, string(updated), 0o644)
	return err
}

// installUnits stages every changed unit, verifies the staged copies, and only
// then moves them over the installed ones. A rejected unit never replaces an
// installed, possibly enabled, unit.
func (r *mountRun) installUnits(ctx context.Context) error {
	var changed []systemd.Unit
	for _, unit := range r.units {
		current, exists, err := r.readOptional(unit.Path())
		if err != nil {
			return err
		}
		if exists && string(current) == unit.Body {
			r.report.info(messages.OrchestrateFileUnchangedFmt, unit.Path())
			continue
		}
		changed = append(changed, unit)
	}
	if len(changed) == 0 {
		return nil
	}

	staged := make([]string, 0, len(changed))
	for _, unit := range changed {
		p := path.Join(UnitStageDir, unit.Filename)
		if err := r.stageFile(p, unit.Path(), unit.Body, 0o644); err != nil {
			return err
		}
		staged = append(staged, p)
	}
	if _, err := r.runner.Run(ctx, "systemd-analyze", append([]string{"verify"}, staged...)...); err != nil {
		_ = r.removeAll(UnitStageDir)
		return fmt.Errorf(messages.MountVerifyFailedFmt, err)
	}
	r.report.success(messages.MountUnitsVerified)
	for i, unit := range changed {
		if err := r.promote(staged[i], unit.Path()); err != nil {
			return err
		}
	}
	return r.removeAll(UnitStageDir)
}

// installBtrbk stages the policy next to its final path and only replaces the
// live file once btrbk accepts the staged copy.
func (r *mountRun) installBtrbk(ctx context.Context) error {
	conf, err := btrbk.Config(r.cfg, r.subs)
	if err != nil {
		return err
	}
	current, exists, err := r.readOptional(btrbk.ConfigPath)
	if err != nil {
		return err
	}
	if exists && string(current) == conf {
		r.report.info(messages.OrchestrateFileUnchangedFmt, btrbk.ConfigPath)
	} else {
		staged := btrbk.ConfigPath + ".new"
		if err := r.stageFile(staged, btrbk.ConfigPath, conf, 0o644); err != nil {
			return err
		}
		if _, err := r.runner.Run(ctx, "btrbk", "-c", staged, "dryrun"); err != nil {
			_ = r.removeFile(staged)
			return fmt.Errorf(messages.MountBtrbkInvalidFmt, err)
		}
		if err := r.promote(staged, btrbk.ConfigPath); err != nil {
			return err
		}
	}

	service, err := btrbk.Service(r.units[0].Filename)
	if err != nil {
		return err
	}
	if _, err := r.writeFile(path.Join(systemd.UnitDir, btrbk.ServiceName), service, 0o644); err != nil {
		return err
	}
	timer, err := btrbk.Timer(r.cfg)
	if err != nil {
		return err
	}
	_, err = r.writeFile(path.Join(systemd.UnitDir, btrbk.TimerName), timer, 0o644)
	return err
}

func (r *mountRun) enableUnits(ctx context.Context) error {
	if _, err := r.runner.Run(ctx, "systemctl", "daemon-reload"); err != nil {
		return err
	}
	names := append(systemd.Filenames(r.units), btrbk.TimerName)
	for _, name := range names {
		if r.isEnabled(ctx, name) {
			r.report.info(messages.MountUnitAlreadyEnabledFmt, name)
			continue
		}
		if _, err := r.runner.Run(ctx, "systemctl", "enable", name); err != nil {
			return err
		}
		r.report.success(messages.MountUnitEnabledFmt, name)
	}
	return nil
}

func (r *mountRun) installExt4Sync(ctx context.Context) error {
	uuid, err := r.rootUUID(ctx)
	if err != nil {
		return err
	}
	if uuid == "" {
		return fmt.Errorf(messages.MountNoRootUUID)
	}
	if err := r.mkdirAll(r.cfg.Ext4Sync.MountPoint); err != nil {
		return err
	}
	unit, err := ext4sync.MountUnit(ctx, r.cfg, uuid, r.esc)
	if err != nil {
		return err
	}
	if _, err := r.writeFile(unit.Path(), unit.Body, 0o644); err != nil {
		return err
	}
	hook, err := ext4sync.Hook()
	if err != nil {
		return err
	}
	_, err = r.writeFile(ext4sync.HookPath, hook, 0o644)
	return err
}
