package messages

// Orchestrate messages shared by every workflow.
const (
	OrchestrateRunnerRequired   = "orchestrate: runner is required"
	OrchestratePrompterRequired = "orchestrate: prompter is required"
	OrchestrateAborted          = "aborted"
	OrchestrateHazardDeclined   = "declined to continue"
	OrchestrateStepFailedFmt    = "step %d/%d (%s): %w"

	OrchestrateReadFileFmt   = "failed to read %s: %w"
	OrchestrateCreateDirFmt  = "failed to create directory %s: %w"
	OrchestrateWriteFileFmt  = "failed to write %s: %w"
	OrchestrateRemoveFileFmt = "failed to remove %s: %w"
	OrchestrateRenameFmt     = "failed to rename %s to %s: %w"
	OrchestrateStatFmt       = "failed to stat %s: %w"

	OrchestrateFileUnchangedFmt = "%s is up to date"
	OrchestrateFileUpdatedFmt   = "Updated %s"
	OrchestrateFileCreatedFmt   = "Created %s"

	SummaryTitle              = "Summary"
	SummarySubvolumeCountsFmt = "%d backup, %d excluded, %d transfer"
)
