package messages

// Mount and unmount workflow messages.
const (
	MountTitle         = "Generate Systemd Mount Units"
	MountSectionFiles  = "Files to generate"
	MountProceedPrompt = "Generate and install systemd units?"
	MountComplete      = "Mount units installed!"
	MountNextStep      = "Restart WSL to apply: wsl --shutdown"

	MountStepBinary      = "Install wslarc binary"
	MountStepBootCommand = "Configure wsl.conf boot command"
	MountStepUnits       = "Write mount units"
	MountStepBtrbk       = "Write btrbk configuration"
	MountStepEnable      = "Enable units"
	MountStepExt4Sync    = "Set up ext4 systemd sync"

	MountBinaryCurrentFmt       = "Already running from %s"
	MountBinaryInstalledFmt     = "Installed %s"
	MountBootCommandReplacedFmt = "Replacing existing boot command: %s"
	MountVerifyFailedFmt        = "systemd-analyze rejected the generated units: %w"
	MountUnitsVerified          = "Units verified"
	MountBtrbkInvalidFmt        = "btrbk rejected the generated configuration: %w"
	MountUnitAlreadyEnabledFmt  = "%s already enabled"
	MountUnitEnabledFmt         = "Enabled %s"
	MountNoRootUUID             = "could not read the UUID of the ext4 root filesystem"

	UnmountTitle              = "Disable Btrfs Mounts"
	UnmountWarning            = "All Btrfs mount units and the snapshot timer will be disabled."
	UnmountWarningData        = "After the next WSL restart the system runs from the ext4 root only."
	UnmountProceedPrompt      = "Disable all mount units?"
	UnmountStepUnits          = "Disable mount units"
	UnmountStepTimer          = "Disable btrbk timer"
	UnmountAlreadyDisabledFmt = "%s already disabled"
	UnmountDisabledFmt        = "Disabled %s"
	UnmountComplete           = "Mount units disabled!"
	UnmountBootCommandNote    = "Note: the wsl.conf boot command is still set; the VHDX stays attached at boot."
	UnmountNextStep           = "Restart WSL to apply: wsl --shutdown"

	AttachBinfmtFmt = "failed to run systemd-binfmt: %w"

	HookSyncMountedFmt      = "%s already mounted"
	HookSyncMountedRootFmt  = "Mounted ext4 root at %s"
	HookSyncNoRootUUID      = "could not get the ext4 root UUID"
	HookSyncNotInstalledFmt = "package %s is not installed: %w"
	HookSyncCopiedFmt       = "Copied %s"
	HookSyncComplete        = "ext4 systemd sync complete"
)
