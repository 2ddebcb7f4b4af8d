package config

import (
	"fmt"
	"sort"

	"github.com/wslarc/wslarc/internal/messages"
)

// fileConfig is the on-disk TOML shape. Backup entries are decoded loosely and
// converted by shape, since an entry may be a bare string or a table.
type fileConfig struct {
	VHDX       VHDXConfig     `toml:"vhdx"`
	User       UserConfig     `toml:"user"`
	Mount      MountConfig    `toml:"mount"`
	Subvolumes fileSubvolumes `toml:"subvolumes"`
	Btrbk      BtrbkConfig    `toml:"btrbk"`
	Ext4Sync   Ext4SyncConfig `toml:"ext4_sync"`
	UUID       string         `toml:"uuid,omitempty"`
}

type fileSubvolumes struct {
	Backup   map[string]any               `toml:"backup"`
	Exclude  ExcludeSet                   `toml:"exclude"`
	Transfer map[string]TransferSubvolume `toml:"transfer"`
}

type backupTable struct {
	Mount   string `toml:"mount"`
	Options string `toml:"options,omitempty"`
}

const (
	backupKeyMount   = "mount"
	backupKeyOptions = "options"
)

// defaultFileConfig seeds scalar fields so omitted keys fall back per field.
func defaultFileConfig() fileConfig {
	def := Default()
	return fileConfig{
		VHDX:     def.VHDX,
		User:     def.User,
		Mount:    def.Mount,
		Btrbk:    def.Btrbk,
		Ext4Sync: def.Ext4Sync,
	}
}

func (raw fileConfig) toConfig(source string) (*Config, error) {
	cfg := &Config{
		VHDX:     raw.VHDX,
		User:     raw.User,
		Mount:    raw.Mount,
		Btrbk:    raw.Btrbk,
		Ext4Sync: raw.Ext4Sync,
		UUID:     raw.UUID,
	}
	cfg.Subvolumes.Exclude = raw.Subvolumes.Exclude
	if len(cfg.Subvolumes.Exclude.Paths) == 0 {
		cfg.Subvolumes.Exclude.Paths = nil
	}
	if len(raw.Subvolumes.Transfer) > 0 {
		cfg.Subvolumes.Transfer = raw.Subvolumes.Transfer
	}
	if len(raw.Subvolumes.Backup) == 0 {
		return cfg, nil
	}

	cfg.Subvolumes.Backup = make(map[string]BackupSubvolume, len(raw.Subvolumes.Backup))
	names := make([]string, 0, len(raw.Subvolumes.Backup))
	for name := range raw.Subvolumes.Backup {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		entry, err := decodeBackup(source, name, raw.Subvolumes.Backup[name])
		if err != nil {
			return nil, err
		}
		cfg.Subvolumes.Backup[name] = entry
	}
	return cfg, nil
}

// decodeBackup disambiguates a backup entry by shape: string or table.
func decodeBackup(source string, name string, value any) (BackupSubvolume, error) {
	switch v := value.(type) {
	case string:
		return Simple(v), nil
	case map[string]any:
		var mount, options string
		for key, field := range v {
			text, ok := field.(string)
			switch key {
			case backupKeyMount, backupKeyOptions:
				if !ok {
					return BackupSubvolume{}, fmt.Errorf(messages.ConfigBackupFieldTypeFmt, source, name, key)
				}
			default:
				return BackupSubvolume{}, fmt.Errorf(messages.ConfigBackupUnknownKeyFmt, source, name, key)
			}
			if key == backupKeyMount {
				mount = text
			} else {
				options = text
			}
		}
		if mount == "" {
			return BackupSubvolume{}, fmt.Errorf(messages.ConfigBackupMountRequiredFmt, source, name)
		}
		return Full(mount, options), nil
	default:
		return BackupSubvolume{}, fmt.Errorf(messages.ConfigBackupShapeFmt, source, name)
	}
}

func fromConfig(cfg *Config) fileConfig {
	raw := fileConfig{
		VHDX:     cfg.VHDX,
		User:     cfg.User,
		Mount:    cfg.Mount,
		Btrbk:    cfg.Btrbk,
		Ext4Sync: cfg.Ext4Sync,
		UUID:     cfg.UUID,
	}
	raw.Subvolumes.Exclude = cfg.Subvolumes.Exclude
	raw.Subvolumes.Transfer = cfg.Subvolumes.Transfer
	if len(cfg.Subvolumes.Backup) > 0 {
		raw.Subvolumes.Backup = make(map[string]any, len(cfg.Subvolumes.Backup))
		for name, entry := range cfg.Subvolumes.Backup {
			if entry.IsFull() {
				raw.Subvolumes.Backup[name] = backupTable{Mount: entry.MountTarget(), Options: entry.Options()}
				continue
			}
			raw.Subvolumes.Backup[name] = entry.MountTarget()
		}
	}
	return raw
}
