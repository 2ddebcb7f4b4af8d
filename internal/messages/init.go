package messages

// Init workflow messages.
const (
	InitTitle              = "WSL Btrfs Setup"
	InitAlreadyInitialized = "Config already has a filesystem UUID; the volume looks initialized."
	InitContinuePrompt     = "Continue anyway?"
	InitProceedPrompt      = "Proceed with initialization?"
	InitComplete           = "Initialization complete!"
	InitNextStep           = "Next step: wslarc mount"

	InitSectionUser     = "User"
	InitSectionVHDX     = "Virtual disk"
	InitSectionMount    = "Mount"
	InitPromptUser      = "Username"
	InitPromptVHDX      = "VHDX path (Windows path, e.g. C:/wsl/arch-btrfs.vhdx)"
	InitPromptLabel     = "Filesystem label"
	InitPromptMountBase = "Mount base"

	InitStepUser       = "Create user"
	InitStepAttach     = "Attach VHDX"
	InitStepFormat     = "Format Btrfs filesystem"
	InitStepUUID       = "Read filesystem UUID"
	InitStepSubvolumes = "Create subvolumes"
	InitStepSaveConfig = "Save configuration"
	InitStepMountBase  = "Mount Btrfs volume"

	InitUserExistsFmt  = "User %s already exists"
	InitUserCreatedFmt = "Created user %s"

	InitAlreadyAttachedFmt = "Volume already attached as %s (label %s)"
	InitAttachFailedFmt    = "failed to attach VHDX: %w"
	InitAttachedFmt        = "Attached as %s"
	InitDeviceFmt          = "Device: %s"
	InitNoNewDevice        = "no new block device appeared after attaching the VHDX"

	InitFormatted              = "Formatted as Btrfs"
	InitAlreadyFormattedFmt    = "Already formatted as Btrfs with label %s"
	InitNoLabelFmt             = "Btrfs filesystem has no label (expected %s)"
	InitLabelMismatchFmt       = "Btrfs filesystem has label %q (expected %q)"
	InitDifferentVolumeWarning = "This may be a different volume than the one configured."
	InitContinueDevicePrompt   = "Continue with this device?"
	InitLabelHazardFmt         = "label %q does not match %q"
	InitForeignFilesystemFmt   = "%s contains a %s filesystem"
	InitReformatPromptFmt      = "Reformat %s as Btrfs? ALL DATA WILL BE LOST"
	InitForeignHazardFmt       = "device holds a %s filesystem"

	InitUUIDFmt           = "UUID: %s"
	InitNoUUIDFmt         = "could not read the filesystem UUID of %s"
	InitBadUUIDFmt        = "blkid returned %q for %s, not a UUID: %w"
	InitUUIDMismatchFmt   = "Configured UUID %s differs from the device UUID %s"
	InitReplaceUUIDPrompt = "Replace the configured UUID?"
	InitUUIDHazardFmt     = "configured UUID %s does not match device UUID %s"

	InitSubvolumeExistsFmt  = "%s already exists"
	InitSubvolumeCreatedFmt = "Created %s"
	InitSubvolumesCreated   = "Subvolumes ready"
	InitHasContentFmt       = "%s already has content, not copying"
	InitSourceMissingFmt    = "%s does not exist, nothing to copy"
	InitCopyingFmt          = "Copying %s into %s..."
	InitCopiedFmt           = "Copied %s into %s"
	InitSettingNoDataCOW    = "Disabling copy-on-write for nodatacow subvolumes"
	InitConfigInEtc         = "Config copied into @etc"

	InitBaseMountedFmt = "%s already mounted"
	InitMountedBaseFmt = "Mounted %s at %s"
)
