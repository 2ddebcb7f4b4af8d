package messages

// Secondary-root sync messages.
const (
	Ext4SyncPacmanQueryFmt     = "unexpected pacman -Q output %q"
	Ext4SyncUnsupportedArchFmt = "no pacman architecture for GOARCH %s"
)
