// Package config defines the wslarc configuration model and its TOML representation.
package config

const (
	// DefaultLabel is the filesystem label given to a freshly formatted volume.
	DefaultLabel = "ArchBtrfs"
	// DefaultMountBase is where the top-level volume is mounted.
	DefaultMountBase = "/mnt/btrfs"
	// DefaultMountOptions apply to every mount without custom options.
	DefaultMountOptions = "compress=zstd:3,noatime,nofail"
	// DefaultUserOptions are passed to useradd when the account is missing.
	DefaultUserOptions = "-M -G wheel"
	// DefaultExt4MountPoint is where the ext4 root is mounted for package sync.
	DefaultExt4MountPoint = "/mnt/ext4-root"

	// UserVariable is replaced by the account name in mount targets.
	UserVariable = "$USER"
)

// Config is the declarative description of one volume and its subvolume tree.
type Config struct {
	VHDX       VHDXConfig
	User       UserConfig
	Mount      MountConfig
	Subvolumes SubvolumesConfig
	Btrbk      BtrbkConfig
	Ext4Sync   Ext4SyncConfig
	// UUID is empty until the volume has been formatted.
	UUID string
}

// VHDXConfig identifies the virtual disk backing the volume.
type VHDXConfig struct {
	Path  string `toml:"path"`
	Label string `toml:"label"`
}

// UserConfig names the account that owns home-directory subvolumes.
type UserConfig struct {
	Name    string `toml:"name"`
	Options string `toml:"options"`
}

// MountConfig is the mount root of the volume.
type MountConfig struct {
	Base    string `toml:"base"`
	Options string `toml:"options"`
}

// SubvolumesConfig holds the three disjoint subvolume classes.
type SubvolumesConfig struct {
	Backup   map[string]BackupSubvolume
	Exclude  ExcludeSet
	Transfer map[string]TransferSubvolume
}

// ExcludeSet lists paths under Parent that become nested, non-backed-up subvolumes.
type ExcludeSet struct {
	Parent string   `toml:"parent"`
	Paths  []string `toml:"paths"`
}

// TransferSubvolume is a mounted subvolume kept out of the snapshot policy.
type TransferSubvolume struct {
	Mount     string `toml:"mount"`
	NoDataCOW bool   `toml:"nodatacow"`
	Options   string `toml:"options,omitempty"`
}

// BtrbkConfig is the snapshot policy handed to btrbk.
type BtrbkConfig struct {
	SnapshotDir   string `toml:"snapshot_dir"`
	PreserveMin   string `toml:"preserve_min"`
	Preserve      string `toml:"preserve"`
	TimerSchedule string `toml:"timer_schedule"`
}

// Ext4SyncConfig configures the secondary ext4 root sync point.
type Ext4SyncConfig struct {
	MountPoint string `toml:"mount_point"`
}

// BackupSubvolume is either a bare mount target or a mount target with custom options.
// The zero value is not meaningful; build one with Simple or Full.
type BackupSubvolume struct {
	mount   string
	options string
	full    bool
}

// Simple returns a backup entry written as a bare path string.
func Simple(mount string) BackupSubvolume {
	return BackupSubvolume{mount: mount}
}

// Full returns a backup entry written as a table with mount and options.
func Full(mount string, options string) BackupSubvolume {
	return BackupSubvolume{mount: mount, options: options, full: true}
}

// MountTarget returns where the subvolume is mounted.
func (b BackupSubvolume) MountTarget() string {
	return b.mount
}

// Options returns the custom mount options, or "" when the mount root defaults apply.
func (b BackupSubvolume) Options() string {
	return b.options
}

// IsFull reports whether the entry uses the table form.
func (b BackupSubvolume) IsFull() bool {
	return b.full
}

func (b BackupSubvolume) withMount(mount string) BackupSubvolume {
	b.mount = mount
	return b
}

// HasUUID reports whether the filesystem UUID has been captured.
func (c *Config) HasUUID() bool {
	return c.UUID != ""
}

// HomeDir returns the home directory of the configured account.
func (c *Config) HomeDir() string {
	return "/home/" + c.User.Name
}

// SnapshotDir returns the absolute snapshot directory under the mount base.
func (c *Config) SnapshotDir() string {
	return joinBase(c.Mount.Base, c.Btrbk.SnapshotDir)
}

// SubvolumePath returns the path of a top-level subvolume under the mount base.
func (c *Config) SubvolumePath(name string) string {
	return joinBase(c.Mount.Base, name)
}

func joinBase(base string, name string) string {
	if base == "/" {
		return "/" + name
	}
	return base + "/" + name
}

// Default returns the stock configuration with an empty account name and volume path.
func Default() *Config {
	return &Config{
		VHDX: VHDXConfig{Label: DefaultLabel},
		User: UserConfig{Options: DefaultUserOptions},
		Mount: MountConfig{
			Base:    DefaultMountBase,
			Options: DefaultMountOptions,
		},
		Subvolumes: SubvolumesConfig{
			Backup: map[string]BackupSubvolume{
				"@usr":            Simple("/usr"),
				"@opt":            Simple("/opt"),
				"@home":           Simple("/home/" + UserVariable),
				"@var_lib_pacman": Simple("/var/lib/pacman"),
			},
			Exclude: ExcludeSet{
				Parent: "@home",
				Paths:  []string{".cache", ".local", ".npm", ".bun", ".vscode-server-insiders"},
			},
			Transfer: map[string]TransferSubvolume{
				"@containers": {Mount: "/var/lib/containers", NoDataCOW: true},
				"@var_cache":  {Mount: "/var/cache", NoDataCOW: true},
				"@var_log":    {Mount: "/var/log"},
				"@var_tmp":    {Mount: "/var/tmp", NoDataCOW: true},
			},
		},
		Btrbk: BtrbkConfig{
			SnapshotDir:   ".snapshots",
			PreserveMin:   "2d",
			Preserve:      "14d 4w 2m",
			TimerSchedule: "*-*-* 03:00:00",
		},
		Ext4Sync: Ext4SyncConfig{MountPoint: DefaultExt4MountPoint},
	}
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	if c.Subvolumes.Backup != nil {
		out.Subvolumes.Backup = make(map[string]BackupSubvolume, len(c.Subvolumes.Backup))
		for name, entry := range c.Subvolumes.Backup {
			out.Subvolumes.Backup[name] = entry
		}
	}
	if c.Subvolumes.Transfer != nil {
		out.Subvolumes.Transfer = make(map[string]TransferSubvolume, len(c.Subvolumes.Transfer))
		for name, entry := range c.Subvolumes.Transfer {
			out.Subvolumes.Transfer[name] = entry
		}
	}
	if c.Subvolumes.Exclude.Paths != nil {
		out.Subvolumes.Exclude.Paths = append([]string(nil), c.Subvolumes.Exclude.Paths...)
	}
	return &out
}
