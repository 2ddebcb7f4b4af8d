package messages

// CLI messages for the wslarc command tree.
const (
	// RootUse is the CLI command name.
	RootUse = "wslarc"
	// RootShort is the short description for the root command.
	RootShort       = "Provision Btrfs subvolumes on a VHDX for WSL"
	RootLong        = "wslarc formats a VHDX as Btrfs, splits it into subvolumes, mounts them through systemd units, and snapshots them with btrbk."
	RootFlagConfig  = "Config file path (default /etc/wslarc/config.toml)"
	RootFlagYes     = "Answer yes to every prompt and skip interactive collection"
	RootFlagVerbose = "Increase log verbosity (-v info, -vv debug)"
	RootFlagDryRun  = "Print the commands and file changes without applying them"
	RootRequiredFmt = "wslarc %s must run as root (use sudo, or --dry-run to preview)"
	RootAborted     = "Aborted."

	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	InitUse       = "init"
	InitShort     = "Format the VHDX and create the subvolume tree"
	MountUse      = "mount"
	MountShort    = "Install systemd mount units and the snapshot policy"
	UnmountUse    = "unmount"
	UnmountShort  = "Disable the mount units and the snapshot timer"
	StatusUse     = "status"
	StatusShort   = "Show configuration, mounts, snapshots, and unit states"
	RestoreUse    = "restore"
	RestoreShort  = "Replace a subvolume with one of its snapshots"
	AttachUse     = "attach"
	AttachShort   = "Attach the VHDX at WSL boot"
	HookSyncUse   = "hook-sync-systemd"
	HookSyncShort = "Mirror systemd packages into the ext4 root (pacman hook)"

	RestoreFlagSnapshot = "Snapshot to restore (directory name under the snapshot dir)"

	SnapshotUse       = "snapshot"
	SnapshotShort     = "Take or list snapshots"
	SnapshotRunUse    = "run"
	SnapshotRunShort  = "Take snapshots now"
	SnapshotListUse   = "list"
	SnapshotListShort = "List snapshots"

	ConfigUse       = "config"
	ConfigShort     = "Inspect the configuration"
	ConfigShowUse   = "show"
	ConfigShowShort = "Print the effective configuration as TOML"
	ConfigGetUse    = "get <key>"
	ConfigGetShort  = "Print one value by dotted key (e.g. mount.base)"
	ConfigPathUse   = "path"
	ConfigPathShort = "Print the config file path"
)
