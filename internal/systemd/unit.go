// Package systemd generates the mount units that bind the subvolume tree into systemd.
package systemd

import (
	"context"
	"path"
	"strings"

	"github.com/wslarc/wslarc/internal/config"
	"github.com/wslarc/wslarc/internal/subvolume"
	"github.com/wslarc/wslarc/internal/templates"
)

const (
	// UnitDir is where generated units are installed.
	UnitDir = "/etc/systemd/system"
	// UUIDPlaceholder stands in for the filesystem UUID before formatting.
	UUIDPlaceholder = "REPLACE_WITH_UUID"
	// UserSessionService is ordered after the home directory mount.
	UserSessionService = "user@.service"

	mountTemplate = "mount.unit.tmpl"
)

// Unit is a generated unit file.
type Unit struct {
	Filename string
	Body     string
	// DependsOn lists the units named in Requires= and After=, in order.
	DependsOn []string
}

// Path returns the install path of the unit.
func (u Unit) Path() string {
	return path.Join(UnitDir, u.Filename)
}

// MountSpec is the content of a .mount unit.
type MountSpec struct {
	Description string
	Requires    []string
	Before      string
	UUID        string
	Where       string
	Type        string
	Options     string
}

// RenderMount renders a .mount unit body.
func RenderMount(spec MountSpec) (string, error) {
	return templates.Render(mountTemplate, map[string]string{
		"Description": spec.Description,
		"Requires":    strings.Join(spec.Requires, " "),
		"Before":      spec.Before,
		"UUID":        spec.UUID,
		"Where":       spec.Where,
		"Type":        spec.Type,
		"Options":     spec.Options,
	})
}

func uuidOrPlaceholder(cfg *config.Config) string {
	if cfg.HasUUID() {
		return cfg.UUID
	}
	return UUIDPlaceholder
}

// BaseUnit generates the unit that mounts the top-level volume.
func BaseUnit(ctx context.Context, cfg *config.Config, esc Escaper) (Unit, error) {
	body, err := RenderMount(MountSpec{
		Description: "Mount Btrfs Volume",
		UUID:        uuidOrPlaceholder(cfg),
		Where:       cfg.Mount.Base,
		Type:        "btrfs",
		Options:     cfg.Mount.Options,
	})
	if err != nil {
		return Unit{}, err
	}
	return Unit{Filename: UnitName(ctx, esc, cfg.Mount.Base), Body: body}, nil
}

// MountUnit generates the unit for one subvolume. Every unit requires the base
// volume; targets below the home directory also require the home unit, and the
// home unit itself is ordered before user sessions.
func MountUnit(ctx context.Context, cfg *config.Config, sub subvolume.Subvolume, esc Escaper) (Unit, error) {
	deps := []string{UnitName(ctx, esc, cfg.Mount.Base)}
	before := ""
	if cfg.User.Name != "" {
		home := path.Clean(cfg.HomeDir())
		target := path.Clean(sub.MountTarget)
		switch {
		case target == home:
			before = UserSessionService
		case strings.HasPrefix(target, home+"/"):
			deps = append(deps, UnitName(ctx, esc, home))
		}
	}

	body, err := RenderMount(MountSpec{
		Description: "Mount " + sub.Name + " subvolume",
		Requires:    deps,
		Before:      before,
		UUID:        uuidOrPlaceholder(cfg),
		Where:       sub.MountTarget,
		Type:        "btrfs",
		Options:     subvolume.MountOptions(sub, cfg.Mount.Options),
	})
	if err != nil {
		return Unit{}, err
	}
	return Unit{Filename: UnitName(ctx, esc, sub.MountTarget), Body: body, DependsOn: deps}, nil
}

// MountUnits generates the base unit followed by one unit per mountable
// subvolume, in classifier order.
func MountUnits(ctx context.Context, cfg *config.Config, subs []subvolume.Subvolume, esc Escaper) ([]Unit, error) {
	base, err := BaseUnit(ctx, cfg, esc)
	if err != nil {
		return nil, err
	}
	units := []Unit{base}
	for _, sub := range subs {
		if !sub.Mountable() {
			continue
		}
		unit, err := MountUnit(ctx, cfg, sub, esc)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	return units, nil
}

// Filenames returns the file names of units.
func Filenames(units []Unit) []string {
	names := make([]string, len(units))
	for i, u := range units {
		names[i] = u.Filename
	}
	return names
}
