package config

import "strings"

// ExpandVariables substitutes the account name for $USER in every backup and
// transfer mount target. It does nothing while the account name is empty, and
// running it again after substitution is a no-op.
func ExpandVariables(cfg *Config) {
	user := cfg.User.Name
	if user == "" {
		return
	}
	for name, entry := range cfg.Subvolumes.Backup {
		cfg.Subvolumes.Backup[name] = entry.withMount(strings.ReplaceAll(entry.MountTarget(), UserVariable, user))
	}
	for name, entry := range cfg.Subvolumes.Transfer {
		entry.Mount = strings.ReplaceAll(entry.Mount, UserVariable, user)
		cfg.Subvolumes.Transfer[name] = entry
	}
}

// SetUser sets the account name and expands mount targets.
func SetUser(cfg *Config, name string) {
	cfg.User.Name = strings.TrimSpace(name)
	ExpandVariables(cfg)
}
