package messages

// Snapshot naming errors.
const (
	BtrbkSnapshotNoDelimiterFmt = "snapshot name %q has no '.' separating the subvolume from its timestamp"
	BtrbkSnapshotEmptyPartFmt   = "snapshot name %q has an empty subvolume or timestamp part"
)
