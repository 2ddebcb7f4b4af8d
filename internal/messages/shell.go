package messages

// Shell messages for external command execution.
const (
	// ShellCommandFailedFmt formats a failed command with its captured stderr.
	ShellCommandFailedFmt = "command failed: %s: %v"
	ShellCommandStderrFmt = "%s\n%s"
	ShellDryRunPrefix     = "[dry-run]"
	ShellCommandRequired  = "command name is required"
)
