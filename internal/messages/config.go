package messages

// Config messages for configuration loading, saving, and point-of-use validation.
const (
	// ConfigReadFailedFmt formats config read errors.
	ConfigReadFailedFmt       = "failed to read config file %s: %w"
	ConfigInvalidConfigFmt    = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt = "%s: unrecognized config keys: %v"
	ConfigWriteFailedFmt      = "failed to write config file %s: %w"
	ConfigCreateDirFailedFmt  = "failed to create config directory %s: %w"
	ConfigEncodeFailedFmt     = "failed to serialize config: %w"
	ConfigResolvePathFmt      = "failed to resolve config path %s: %w"

	ConfigBackupShapeFmt         = "%s: subvolumes.backup.%s must be a path string or a table with mount and options"
	ConfigBackupMountRequiredFmt = "%s: subvolumes.backup.%s.mount is required"
	ConfigBackupFieldTypeFmt     = "%s: subvolumes.backup.%s.%s must be a string"
	ConfigBackupUnknownKeyFmt    = "%s: subvolumes.backup.%s has unrecognized key %q"

	ConfigVolumePathRequired = "vhdx.path is required; set it in the config file or run without --yes for interactive mode"
	ConfigUserRequired       = "user.name is required; set it in the config file or run without --yes for interactive mode"
	ConfigUUIDRequired       = "uuid is not set; run 'wslarc init' first"

	ConfigKeyRequired    = "config key is required"
	ConfigKeyNotFoundFmt = "config key %q not found"
	ConfigParseTreeFmt   = "failed to parse %s: %w"
)
