// Package btrbk generates the btrbk snapshot policy and parses snapshot names.
package btrbk

import (
	"fmt"
	"strings"

	"github.com/wslarc/wslarc/internal/config"
	"github.com/wslarc/wslarc/internal/messages"
	"github.com/wslarc/wslarc/internal/subvolume"
	"github.com/wslarc/wslarc/internal/templates"
)

const (
	// ConfigPath is the installed policy file.
	ConfigPath = "/etc/btrbk/btrbk.conf"
	// ServiceName runs the policy once.
	ServiceName = "btrbk.service"
	// TimerName schedules ServiceName.
	TimerName = "btrbk.timer"
)

type policySubvolume struct {
	Name         string
	SnapshotName string
}

type policy struct {
	PreserveMin string
	Preserve    string
	SnapshotDir string
	Volume      string
	Subvolumes  []policySubvolume
}

// Config renders btrbk.conf for the backup-class and snapshot-only subvolumes in subs.
func Config(cfg *config.Config, subs []subvolume.Subvolume) (string, error) {
	p := policy{
		PreserveMin: cfg.Btrbk.PreserveMin,
		Preserve:    cfg.Btrbk.Preserve,
		SnapshotDir: cfg.Btrbk.SnapshotDir,
		Volume:      cfg.Mount.Base,
	}
	for _, sub := range subs {
		if sub.Kind != subvolume.KindBackup && sub.Kind != subvolume.KindSnapshotOnly {
			continue
		}
		p.Subvolumes = append(p.Subvolumes, policySubvolume{Name: sub.Name, SnapshotName: SnapshotName(sub.Name)})
	}
	return templates.Render("btrbk.conf.tmpl", p)
}

// Service renders btrbk.service. baseUnit is the mount unit of the volume root.
func Service(baseUnit string) (string, error) {
	return templates.Render("btrbk.service.tmpl", map[string]string{
		"BaseUnit":   baseUnit,
		"ConfigPath": ConfigPath,
	})
}

// Timer renders btrbk.timer with the configured OnCalendar schedule.
func Timer(cfg *config.Config) (string, error) {
	return templates.Render("btrbk.timer.tmpl", map[string]string{"Schedule": cfg.Btrbk.TimerSchedule})
}

// SnapshotName is the btrbk snapshot_name for a subvolume: its name without the leading @.
func SnapshotName(subvol string) string {
	return strings.TrimPrefix(subvol, "@")
}

// Snapshot is a parsed snapshot directory entry such as "home.20240101T0300".
type Snapshot struct {
	Name      string
	Base      string
	Timestamp string
}

// Subvolume returns the live subvolume the snapshot was taken from.
func (s Snapshot) Subvolume() string {
	return "@" + s.Base
}

// ParseSnapshot splits name on its last '.'.
func ParseSnapshot(name string) (Snapshot, error) {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return Snapshot{}, fmt.Errorf(messages.BtrbkSnapshotNoDelimiterFmt, name)
	}
	base, ts := name[:idx], name[idx+1:]
	if base == "" || ts == "" {
		return Snapshot{}, fmt.Errorf(messages.BtrbkSnapshotEmptyPartFmt, name)
	}
	return Snapshot{Name: name, Base: base, Timestamp: ts}, nil
}
