package orchestrate

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wslarc/wslarc/internal/config"
	"github.com/wslarc/wslarc/internal/messages"
	"github.com/wslarc/wslarc/internal/subvolume"
)

const (
	// SetupMountPoint is where the top-level volume is mounted while subvolumes are created.
	SetupMountPoint = "/mnt/btrfs-setup"
	// WSLExe launches wsl.exe through WSL interop.
	WSLExe = "/mnt/c/Windows/System32/wsl.exe"

	placeholderDevice = "<device>"
	placeholderUUID   = "<uuid>"
)

var (
	attachPollInterval = 500 * time.Millisecond
	attachPollAttempts = 10
)

type initRun struct {
	*engine
	cfg    *config.Config
	subs   []subvolume.Subvolume
	device string
}

// Init formats the volume, creates the subvolume tree, and saves the
// configuration with the filesystem UUID. cfg is not modified.
func Init(ctx context.Context, cfg *config.Config, opts Options) error {
	e, err := newEngine(opts)
	if err != nil {
		return err
	}
	e.report.title(messages.InitTitle)

	configExists, err := e.exists(e.configPath)
	if err != nil {
		return err
	}
	if configExists && cfg.HasUUID() {
		e.report.warn(messages.InitAlreadyInitialized)
		if err := e.confirmStart(messages.InitContinuePrompt, false); err != nil {
			return err
		}
	}

	working := cfg.Clone()
	if !e.yes {
		if err := e.collect(working); err != nil {
			return err
		}
	}
	if err := working.RequireVolumePath(); err != nil {
		return err
	}
	if err := working.RequireUser(); err != nil {
		return err
	}
	subs, err := subvolume.Classify(working)
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrConfigValidation, err)
	}

	e.initSummary(working)
	if err := e.confirmStart(messages.InitProceedPrompt, true); err != nil {
		return err
	}

	run := &initRun{engine: e, cfg: working, subs: subs}
	steps := []Step{
		{Description: messages.InitStepUser, Check: run.userExists, Action: run.createUser},
		{Description: messages.InitStepAttach, Action: run.attachVolume},
		{Description: messages.InitStepFormat, Action: run.format},
		{Description: messages.InitStepUUID, Action: run.captureUUID},
		{Description: messages.InitStepSubvolumes, Action: run.createSubvolumes},
		{Description: messages.InitStepSaveConfig, Action: run.saveConfig},
		{Description: messages.InitStepMountBase, Check: run.baseMounted, Action: run.mountBase},
	}
	if err := e.runSteps(ctx, steps); err != nil {
		return err
	}

	e.report.done(messages.InitComplete)
	e.report.line(messages.InitNextStep)
	return nil
}

func (e *engine) collect(cfg *config.Config) error {
	e.report.section(messages.InitSectionUser)
	name := cfg.User.Name
	if err := e.prompter.Input(messages.InitPromptUser, &name); err != nil {
		return err
	}
	config.SetUser(cfg, name)

	e.report.section(messages.InitSectionVHDX)
	if err := e.prompter.Input(messages.InitPromptVHDX, &cfg.VHDX.Path); err != nil {
		return err
	}
	if err := e.prompter.Input(messages.InitPromptLabel, &cfg.VHDX.Label); err != nil {
		return err
	}

	e.report.section(messages.InitSectionMount)
	return e.prompter.Input(messages.InitPromptMountBase, &cfg.Mount.Base)
}

func (e *engine) initSummary(cfg *config.Config) {
	e.report.section(messages.SummaryTitle)
	e.report.kv("VHDX", cfg.VHDX.Path)
	e.report.kv("Label", cfg.VHDX.Label)
	e.report.kv("Mount base", cfg.Mount.Base)
	e.report.kv("User", cfg.User.Name)
	e.report.kv("Subvolumes", fmt.Sprintf(messages.SummarySubvolumeCountsFmt,
		len(cfg.Subvolumes.Backup), len(cfg.Subvolumes.Exclude.Paths), len(cfg.Subvolumes.Transfer)))
	if cfg.User.Options != "" {
		e.report.kv("User options", cfg.User.Options)
	}
}

func (r *initRun) userExists(ctx context.Context) (bool, string, error) {
	if _, err := r.runner.Output(ctx, "id", r.cfg.User.Name); err != nil {
		return false, "", nil
	}
	return true, fmt.Sprintf(messages.InitUserExistsFmt, r.cfg.User.Name), nil
}

func (r *initRun) createUser(ctx context.Context) error {
	args := append(strings.Fields(r.cfg.User.Options), r.cfg.User.Name)
	if _, err := r.runner.Run(ctx, "useradd", args...); err != nil {
		return err
	}
	r.report.success(messages.InitUserCreatedFmt, r.cfg.User.Name)
	return nil
}

// attachVolume finds the device carrying the configured label, or attaches the
// VHDX and waits for a new whole-disk device to appear.
func (r *initRun) attachVolume(ctx context.Context) error {
	if dev, ok := r.deviceByLabel(ctx, r.cfg.VHDX.Label); ok {
		r.device = dev
		r.report.success(messages.InitAlreadyAttachedFmt, dev, r.cfg.VHDX.Label)
		return nil
	}

	before, err := r.diskNames(ctx)
	if err != nil {
		return err
	}
	if _, err := r.runner.Run(ctx, WSLExe, "--mount", "--vhd", windowsPath(r.cfg.VHDX.Path), "--bare"); err != nil {
		return fmt.Errorf(messages.InitAttachFailedFmt, err)
	}
	if r.dryRun() {
		r.device = placeholderDevice
		r.report.info(messages.InitDeviceFmt, r.device)
		return nil
	}

	known := make(map[string]bool, len(before))
	for _, name := range before {
		known[name] = true
	}
	for attempt := 0; attempt < attachPollAttempts; attempt++ {
		r.sys.Sleep(attachPollInterval)
		after, err := r.diskNames(ctx)
		if err != nil {
			return err
		}
		for _, name := range after {
			if !known[name] {
				r.device = "/dev/" + name
				r.report.success(messages.InitAttachedFmt, r.device)
				return nil
			}
		}
	}
	return fmt.Errorf(messages.InitNoNewDevice)
}

// format creates the filesystem unless the device already carries a btrfs
// filesystem with the configured label. Any other existing filesystem is a
// hazard that needs confirmation.
func (r *initRun) format(ctx context.Context) error {
	label := r.cfg.VHDX.Label
	if r.device == placeholderDevice {
		_, err := r.runner.Run(ctx, "mkfs.btrfs", "-L", label, r.device)
		return err
	}

	fstype, _ := r.runner.Output(ctx, "lsblk", "-n", "-o", "FSTYPE", r.device)
	fstype = strings.TrimSpace(fstype)
	switch fstype {
	case "":
		if _, err := r.runner.Run(ctx, "mkfs.btrfs", "-L", label, r.device); err != nil {
			return err
		}
		r.report.success(messages.InitFormatted)
		return nil
	case "btrfs":
		current, _ := r.runner.Output(ctx, "lsblk", "-n", "-o", "LABEL", r.device)
		current = strings.TrimSpace(current)
		if current == label {
			r.report.success(messages.InitAlreadyFormattedFmt, label)
			return nil
		}
		if current == "" {
			r.report.warn(messages.InitNoLabelFmt, label)
		} else {
			r.report.warn(messages.InitLabelMismatchFmt, current, label)
		}
		r.report.warn(messages.InitDifferentVolumeWarning)
		return r.confirmHazard(messages.InitContinueDevicePrompt, fmt.Sprintf(messages.InitLabelHazardFmt, current, label))
	default:
		r.report.warn(messages.InitForeignFilesystemFmt, r.device, fstype)
		if err := r.confirmHazard(fmt.Sprintf(messages.InitReformatPromptFmt, r.device), fmt.Sprintf(messages.InitForeignHazardFmt, fstype)); err != nil {
			return err
		}
		if _, err := r.runner.Run(ctx, "mkfs.btrfs", "-f", "-L", label, r.device); err != nil {
			return err
		}
		r.report.success(messages.InitFormatted)
		return nil
	}
}

func (r *initRun) captureUUID(ctx context.Context) error {
	if r.device == placeholderDevice {
		r.cfg.UUID = placeholderUUID
		r.report.info(messages.InitUUIDFmt, r.cfg.UUID)
		return nil
	}
	value, err := r.runner.Output(ctx, "blkid", "-s", "UUID", "-o", "value", r.device)
	if err != nil {
		return err
	}
	value = strings.TrimSpace(value)
	switch {
	case value == "" && r.dryRun():
		value = placeholderUUID
	case value == "":
		return fmt.Errorf(messages.InitNoUUIDFmt, r.device)
	default:
		parsed, err := uuid.Parse(value)
		if err != nil {
			return fmt.Errorf(messages.InitBadUUIDFmt, value, r.device, err)
		}
		value = parsed.String()
	}
	if r.cfg.HasUUID() && r.cfg.UUID != value && value != placeholderUUID {
		r.report.warn(messages.InitUUIDMismatchFmt, r.cfg.UUID, value)
		if err := r.confirmHazard(messages.InitReplaceUUIDPrompt, fmt.Sprintf(messages.InitUUIDHazardFmt, r.cfg.UUID, value)); err != nil {
			return err
		}
	}
	r.cfg.UUID = value
	r.report.success(messages.InitUUIDFmt, value)
	return nil
}

// createSubvolumes mounts the volume root at the setup point, creates every
// subvolume, and always unmounts the setup point again.
func (r *initRun) createSubvolumes(ctx context.Context) (err error) {
	if !r.isMounted(ctx, SetupMountPoint) {
		if err := r.mkdirAll(SetupMountPoint); err != nil {
			return err
		}
		if _, err := r.runner.Run(ctx, "mount", r.device, SetupMountPoint); err != nil {
			return err
		}
	}
	defer func() {
		if _, uerr := r.runner.Run(ctx, "umount", SetupMountPoint); uerr != nil {
			if err == nil {
				err = uerr
			}
			return
		}
		if r.dryRun() {
			return
		}
		if rerr := r.fs.Remove(SetupMountPoint); rerr != nil {
			r.log.Debug("setup mount point not removed", zap.Error(rerr))
		}
	}()

	if err := r.createAll(ctx); err != nil {
		return err
	}

	etc := path.Join(SetupMountPoint, subvolume.SnapshotOnly)
	if ok, err := r.exists(etc); err != nil {
		return err
	} else if ok || r.dryRun() {
		if err := r.writeConfig(path.Join(etc, config.SnapshotRelPath)); err != nil {
			return err
		}
		r.report.info(messages.InitConfigInEtc)
	}
	return nil
}

func (r *initRun) createAll(ctx context.Context) error {
	owner := r.cfg.User.Name + ":" + r.cfg.User.Name
	var nodatacow []string
	for _, sub := range r.subs {
		if err := r.createSubvolume(ctx, sub.Name); err != nil {
			return err
		}
		target := path.Join(SetupMountPoint, sub.Name)
		if src, ok := subvolume.BootstrapSource(sub.Name); ok {
			if err := r.copyIfEmpty(ctx, sub.Name, src, target); err != nil {
				return err
			}
		}
		switch sub.Kind {
		case subvolume.KindExclude:
			if _, err := r.runner.Run(ctx, "chown", owner, target); err != nil {
				return err
			}
		case subvolume.KindTransfer:
			if underHome(sub.MountTarget, r.cfg.HomeDir()) {
				if _, err := r.runner.Run(ctx, "chown", "-R", owner, target); err != nil {
					return err
				}
			}
			if sub.NoDataCOW {
				nodatacow = append(nodatacow, target)
			}
		}
	}

	if parent := r.cfg.Subvolumes.Exclude.Parent; parent != "" {
		if _, ok := subvolume.Lookup(r.subs, parent); ok {
			if _, err := r.runner.Run(ctx, "chown", owner, path.Join(SetupMountPoint, parent)); err != nil {
				return err
			}
		}
	}

	if len(nodatacow) > 0 {
		r.report.info(messages.InitSettingNoDataCOW)
		for _, dir := range nodatacow {
			if _, err := r.runner.Run(ctx, "chattr", "+C", dir); err != nil {
				return err
			}
		}
	}

	if err := r.createSubvolume(ctx, r.cfg.Btrbk.SnapshotDir); err != nil {
		return err
	}
	r.report.success(messages.InitSubvolumesCreated)
	return nil
}

func (r *initRun) createSubvolume(ctx context.Context, name string) error {
	target := path.Join(SetupMountPoint, name)
	ok, err := r.exists(target)
	if err != nil {
		return err
	}
	if ok {
		r.report.info(messages.InitSubvolumeExistsFmt, name)
		return nil
	}
	if _, err := r.runner.Run(ctx, "btrfs", "subvolume", "create", target); err != nil {
		return err
	}
	r.report.info(messages.InitSubvolumeCreatedFmt, name)
	return nil
}

// copyIfEmpty seeds a new subvolume from the live system. A subvolume with any
// content is never written to.
func (r *initRun) copyIfEmpty(ctx context.Context, name string, src string, target string) error {
	empty, err := r.dirEmpty(target)
	if err != nil {
		return err
	}
	if !empty {
		r.report.info(messages.InitHasContentFmt, name)
		return nil
	}
	ok, err := r.exists(src)
	if err != nil {
		return err
	}
	if !ok {
		r.report.warn(messages.InitSourceMissingFmt, src)
		return nil
	}
	r.report.info(messages.InitCopyingFmt, src, name)
	if _, err := r.runner.Run(ctx, "rsync", "-aAX", "--info=progress2", src+"/", target+"/"); err != nil {
		return err
	}
	r.report.success(messages.InitCopiedFmt, src, name)
	return nil
}

func (r *initRun) saveConfig(context.Context) error {
	return r.writeConfig(r.configPath)
}

func (r *initRun) writeConfig(p string) error {
	data, err := config.Marshal(r.cfg)
	if err != nil {
		return err
	}
	_, err = r.writeFile(p, string(data), 0o644)
	return err
}

func (r *initRun) baseMounted(ctx context.Context) (bool, string, error) {
	if !r.isMounted(ctx, r.cfg.Mount.Base) {
		return false, "", nil
	}
	return true, fmt.Sprintf(messages.InitBaseMountedFmt, r.cfg.Mount.Base), nil
}

func (r *initRun) mountBase(ctx context.Context) error {
	if err := r.mkdirAll(r.cfg.Mount.Base); err != nil {
		return err
	}
	if _, err := r.runner.Run(ctx, "mount", "-o", r.cfg.Mount.Options, r.device, r.cfg.Mount.Base); err != nil {
		return err
	}
	r.report.success(messages.InitMountedBaseFmt, r.device, r.cfg.Mount.Base)
	return nil
}

// windowsPath normalizes a VHDX path to backslashes for wsl.exe.
func windowsPath(p string) string {
	return strings.ReplaceAll(p, "/", `\`)
}

func underHome(target string, home string) bool {
	home = path.Clean(home)
	target = path.Clean(target)
	return target == home || strings.HasPrefix(target, home+"/")
}
