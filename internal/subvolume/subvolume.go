// Package subvolume derives the ordered subvolume list from a configuration.
package subvolume

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/wslarc/wslarc/internal/config"
	"github.com/wslarc/wslarc/internal/messages"
)

// SnapshotOnly is the subvolume that holds /etc history. It is never mounted.
const SnapshotOnly = "@etc"

// Kind is the class a subvolume belongs to.
type Kind int

const (
	KindBackup Kind = iota
	KindSnapshotOnly
	KindExclude
	KindTransfer
)

func (k Kind) String() string {
	switch k {
	case KindBackup:
		return "backup"
	case KindSnapshotOnly:
		return "snapshot-only"
	case KindExclude:
		return "exclude"
	case KindTransfer:
		return "transfer"
	default:
		return "unknown"
	}
}

// Subvolume is one entry of the derived subvolume tree.
type Subvolume struct {
	// Name is the subvolume path relative to the volume root, e.g. "@home" or "@home/.cache".
	Name        string
	Kind        Kind
	MountTarget string
	// Options are the custom mount options; empty means the mount root defaults.
	Options string
	// NestedUnder is the parent's mount target for exclude entries.
	NestedUnder string
	NoDataCOW   bool
}

// Mountable reports whether the subvolume gets its own mount unit.
func (s Subvolume) Mountable() bool {
	return (s.Kind == KindBackup || s.Kind == KindTransfer) && s.MountTarget != ""
}

// MountOptions returns the mount option string for s: subvol=<name> followed by the
// custom options or defaults.
func MountOptions(s Subvolume, defaults string) string {
	opts := s.Options
	if opts == "" {
		opts = defaults
	}
	if opts == "" {
		return "subvol=" + s.Name
	}
	return "subvol=" + s.Name + "," + opts
}

// Classify returns backup entries (by name), the snapshot-only subvolume, exclude
// entries in configured order, then transfer entries (by name).
func Classify(cfg *config.Config) ([]Subvolume, error) {
	owner := map[string]Kind{}
	claim := func(name string, kind Kind) error {
		if err := checkName(name); err != nil {
			return err
		}
		if name == SnapshotOnly {
			return fmt.Errorf(messages.SubvolumeReservedNameFmt, name)
		}
		if prev, ok := owner[name]; ok {
			return fmt.Errorf(messages.SubvolumeDuplicateNameFmt, name, prev, kind)
		}
		owner[name] = kind
		return nil
	}

	out := make([]Subvolume, 0, len(cfg.Subvolumes.Backup)+len(cfg.Subvolumes.Transfer)+len(cfg.Subvolumes.Exclude.Paths)+1)
	for _, name := range sortedKeys(cfg.Subvolumes.Backup) {
		if err := claim(name, KindBackup); err != nil {
			return nil, err
		}
		entry := cfg.Subvolumes.Backup[name]
		out = append(out, Subvolume{Name: name, Kind: KindBackup, MountTarget: entry.MountTarget(), Options: entry.Options()})
	}

	out = append(out, Subvolume{Name: SnapshotOnly, Kind: KindSnapshotOnly})

	exclude := cfg.Subvolumes.Exclude
	if len(exclude.Paths) > 0 {
		parent, ok := cfg.Subvolumes.Backup[exclude.Parent]
		if !ok {
			return nil, fmt.Errorf(messages.SubvolumeExcludeParentFmt, exclude.Parent)
		}
		for _, rel := range exclude.Paths {
			clean := path.Clean(rel)
			if rel == "" || path.IsAbs(rel) || clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
				return nil, fmt.Errorf(messages.SubvolumeExcludePathFmt, rel)
			}
			out = append(out, Subvolume{
				Name:        exclude.Parent + "/" + clean,
				Kind:        KindExclude,
				MountTarget: path.Join(parent.MountTarget(), clean),
				NestedUnder: parent.MountTarget(),
			})
		}
	}

	for _, name := range sortedKeys(cfg.Subvolumes.Transfer) {
		if err := claim(name, KindTransfer); err != nil {
			return nil, err
		}
		entry := cfg.Subvolumes.Transfer[name]
		out = append(out, Subvolume{
			Name:        name,
			Kind:        KindTransfer,
			MountTarget: entry.Mount,
			Options:     entry.Options,
			NoDataCOW:   entry.NoDataCOW,
		})
	}

	if err := checkTargets(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Lookup returns the descriptor with the given name.
func Lookup(subs []Subvolume, name string) (Subvolume, bool) {
	for _, s := range subs {
		if s.Name == name {
			return s, true
		}
	}
	return Subvolume{}, false
}

// Names returns the names of the descriptors in order.
func Names(subs []Subvolume) []string {
	names := make([]string, len(subs))
	for i, s := range subs {
		names[i] = s.Name
	}
	return names
}

// bootstrapSources maps subvolumes to the live directories copied into them on init.
var bootstrapSources = map[string]string{
	SnapshotOnly:      "/etc",
	"@usr":            "/usr",
	"@opt":            "/opt",
	"@var_lib_pacman": "/var/lib/pacman",
}

// BootstrapSource returns the live path whose content seeds a new subvolume.
func BootstrapSource(name string) (string, bool) {
	src, ok := bootstrapSources[name]
	return src, ok
}

func checkName(name string) error {
	if !strings.HasPrefix(name, "@") || len(name) == 1 || strings.Contains(name, "/") {
		return fmt.Errorf(messages.SubvolumeNameFmt, name)
	}
	return nil
}

func checkTargets(subs []Subvolume) error {
	seen := map[string]string{}
	for _, s := range subs {
		if s.MountTarget == "" {
			continue
		}
		target := path.Clean(s.MountTarget)
		if prev, ok := seen[target]; ok {
			return fmt.Errorf(messages.SubvolumeDuplicateTargetFmt, prev, s.Name, target)
		}
		seen[target] = s.Name
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
