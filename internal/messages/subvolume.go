package messages

// Subvolume classification errors.
const (
	SubvolumeDuplicateNameFmt   = "subvolume %s is listed in both %s and %s"
	SubvolumeDuplicateTargetFmt = "subvolumes %s and %s both mount at %s"
	SubvolumeExcludeParentFmt   = "subvolumes.exclude.parent %q is not a backup subvolume"
	SubvolumeExcludePathFmt     = "subvolumes.exclude.paths entry %q must be a relative path"
	SubvolumeReservedNameFmt    = "subvolume name %s is reserved for configuration snapshots"
	SubvolumeNameFmt            = "subvolume name %q must start with @ and contain no /"
)
