package orchestrate

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/wslarc/wslarc/internal/btrbk"
	"github.com/wslarc/wslarc/internal/config"
	"github.com/wslarc/wslarc/internal/messages"
	"github.com/wslarc/wslarc/internal/subvolume"
	"github.com/wslarc/wslarc/internal/systemd"
	"github.com/wslarc/wslarc/internal/wslconf"
)

// statusRecentSnapshots is how many snapshot names are listed.
const statusRecentSnapshots = 5

// Status prints the configuration, live mounts, subvolumes, snapshots, and
// unit states. It never changes the system.
func Status(ctx context.Context, cfg *config.Config, opts Options) error {
	e, err := newEngine(opts)
	if err != nil {
		return err
	}
	e.report.title(messages.StatusTitle)

	e.report.section(messages.StatusSectionConfig)
	uuid := cfg.UUID
	if uuid == "" {
		uuid = messages.StatusNotSet
	}
	e.report.kv("Config UUID", uuid)
	e.report.kv("VHDX", cfg.VHDX.Path)
	e.report.kv("Mount base", cfg.Mount.Base)
	e.report.kv("User", cfg.User.Name)

	e.statusMounts(ctx)
	e.statusSubvolumes(ctx, cfg)
	e.statusSnapshots(cfg)
	e.statusTimer(ctx)

	e.report.section(messages.StatusSectionBoot)
	data, _, err := e.readOptional(wslconf.Path)
	if err != nil {
		return err
	}
	boot, err := wslconf.BootCommand(data)
	if err != nil {
		e.report.warn("%v", err)
	} else if boot == "" {
		e.report.line("  %s", messages.StatusNoBootCommand)
	} else {
		e.report.kv("command", boot)
	}

	return e.statusUnits(ctx, cfg)
}

func (e *engine) statusMounts(ctx context.Context) {
	e.report.section(messages.StatusSectionMounts)
	out, _ := e.runner.Output(ctx, "mount", "-t", "btrfs")
	if strings.TrimSpace(out) == "" {
		e.report.line("  %s", messages.StatusNoMounts)
		return
	}
	for _, line := range strings.Split(out, "\n") {
		e.report.line("  %s", line)
	}
}

func (e *engine) statusSubvolumes(ctx context.Context, cfg *config.Config) {
	e.report.section(messages.StatusSectionSubvolumes)
	out, err := e.runner.Output(ctx, "btrfs", "subvolume", "list", cfg.Mount.Base)
	if err != nil {
		e.report.line("  "+messages.StatusNotMountedFmt, cfg.Mount.Base)
		return
	}
	if strings.TrimSpace(out) == "" {
		e.report.line("  %s", messages.StatusNoSubvolumes)
		return
	}
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 {
			e.report.line("  %s", fields[len(fields)-1])
		}
	}
}

func (e *engine) statusSnapshots(cfg *config.Config) {
	e.report.section(messages.StatusSectionSnapshots)
	names, err := e.snapshotNames(cfg)
	if err != nil {
		e.report.line("  %s", messages.StatusSnapshotsUnavailable)
		return
	}
	if len(names) == 0 {
		e.report.line("  %s", messages.StatusNoSnapshots)
		return
	}
	e.report.line("  "+messages.StatusSnapshotTotalFmt, len(names))
	start := max(len(names)-statusRecentSnapshots, 0)
	for _, name := range names[start:] {
		e.report.line("  %s", name)
	}
	if start > 0 {
		e.report.line("  "+messages.StatusMoreSnapshotsFmt, start)
	}
}

func (e *engine) statusTimer(ctx context.Context) {
	e.report.section(messages.StatusSectionTimer)
	e.report.kv(btrbk.TimerName, e.unitState(ctx, "is-enabled", btrbk.TimerName)+", "+e.unitState(ctx, "is-active", btrbk.TimerName))
	out, err := e.runner.Output(ctx, "systemctl", "list-timers", "--no-pager", btrbk.TimerName)
	if err != nil || !strings.Contains(out, "btrbk") {
		return
	}
	lines := strings.Split(out, "\n")
	if len(lines) > 1 {
		e.report.kv("Next run", strings.TrimSpace(lines[1]))
	}
}

func (e *engine) statusUnits(ctx context.Context, cfg *config.Config) error {
	e.report.section(messages.StatusSectionUnits)
	subs, err := subvolume.Classify(cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrConfigValidation, err)
	}
	units, err := systemd.MountUnits(ctx, cfg, subs, e.esc)
	if err != nil {
		return err
	}

	t := e.report.table(table.Row{"Unit", "Enabled", "Active"})
	for _, name := range systemd.Filenames(units) {
		enabled := e.unitState(ctx, "is-enabled", name)
		active := e.unitState(ctx, "is-active", name)
		t.AppendRow(table.Row{name, colorState(enabled, "enabled"), colorState(active, "active")})
	}
	t.Render()

	failed, _ := e.runner.Output(ctx, "systemctl", "--failed", "--type=mount", "--no-legend")
	if strings.TrimSpace(failed) != "" {
		e.report.line("")
		e.report.warn(messages.StatusFailedMounts)
		e.report.line("    systemctl --failed --type=mount")
		e.report.line("    journalctl -u <unit-name>.mount")
	}
	return nil
}

func colorState(state string, good string) string {
	if state == good {
		return color.GreenString(state)
	}
	return color.RedString(state)
}
