package messages

// Restore, snapshot, and status messages.
const (
	RestoreTitle               = "Restore from Snapshot"
	RestoreNoSnapshotsFmt      = "no snapshots found in %s"
	RestoreListSnapshotsFmt    = "failed to list snapshots in %s: %w"
	RestoreSnapshotNotFoundFmt = "snapshot %q not found"
	RestoreSelectPrompt        = "Select snapshot to restore"
	RestoreSelectedFmt         = "Selected: %s"
	RestoreTargetFmt           = "Target subvolume: %s"
	RestoreNotBackedUpFmt      = "Subvolume %s is not in the backup configuration"
	RestorePlanTitle           = "Restore Plan"
	RestoreWarningReplace      = "This will REPLACE the current subvolume with the snapshot!"
	RestoreWarningLost         = "All changes since the snapshot will be LOST!"
	RestoreWarningUnmount      = "The mount point must be unmounted during restore."
	RestoreProceedPrompt       = "Proceed with restore?"

	RestoreStepUnmountFmt  = "Unmount %s"
	RestoreStepBackupFmt   = "Back up current %s"
	RestoreStepSnapshotFmt = "Restore %s from snapshot"
	RestoreStepRemountFmt  = "Remount %s"
	RestoreStepCleanup     = "Cleanup"

	RestoreAlreadyUnmounted    = "Already unmounted"
	RestoreUnmounted           = "Unmounted"
	RestoreUnmountFailedFmt    = "Failed to unmount: %v"
	RestoreMountBusy           = "The mount point may be in use. Close programs using it."
	RestoreLazyPrompt          = "Retry with lazy unmount?"
	RestoreCannotUnmountFmt    = "cannot restore without unmounting %s"
	RestoreLazyUnmounted       = "Lazy unmount completed"
	RestoreRemovingStaleBackup = "Removing old restore backup..."
	RestoreLiveMissing         = "Current subvolume not found, skipping backup"
	RestoreBackedUpFmt         = "Backed up to %s"
	RestoreSnapshotRestored    = "Snapshot restored"
	RestoreRemounted           = "Remounted"
	RestoreBackupKeptFmt       = "Old subvolume kept as %s"
	RestoreDeleteHintFmt       = "  To free the space: btrfs subvolume delete %s"
	RestoreComplete            = "Restore complete!"
	RestoreRestartNote         = "Restart services using the mount point, or restart WSL, for full effect."

	SnapshotRunTitle   = "Creating Btrfs Snapshot"
	SnapshotRunning    = "Running btrbk..."
	SnapshotCreated    = "Snapshot created"
	SnapshotListHint   = "View snapshots: wslarc snapshot list"
	SnapshotListTitle  = "Btrfs Snapshots"
	SnapshotListingFmt = "Listing %s"

	StatusTitle                = "WSL Btrfs Status"
	StatusSectionConfig        = "Configuration"
	StatusSectionMounts        = "Btrfs Mounts"
	StatusSectionSubvolumes    = "Subvolumes"
	StatusSectionSnapshots     = "Snapshots"
	StatusSectionTimer         = "Snapshot Timer"
	StatusSectionBoot          = "WSL Boot Command"
	StatusSectionUnits         = "Mount Units"
	StatusNotSet               = "not set"
	StatusNoMounts             = "No Btrfs mounts found"
	StatusNotMountedFmt        = "%s not mounted"
	StatusNoSubvolumes         = "No subvolumes found"
	StatusSnapshotsUnavailable = "Snapshot directory not accessible"
	StatusNoSnapshots          = "No snapshots found"
	StatusSnapshotTotalFmt     = "Total: %d snapshots"
	StatusMoreSnapshotsFmt     = "... and %d more"
	StatusNoBootCommand        = "not set"
	StatusFailedMounts         = "Failed mounts detected! Check with:"
)
