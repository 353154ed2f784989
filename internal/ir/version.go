package ir

// Version constants for snapshots and the tool.
const (
	// SnapshotVersion is the layout version of canonical snapshots. It is
	// part of every digest domain, so changing a layout changes digests.
	SnapshotVersion = "1"

	// ToolVersion is the ndview release version.
	ToolVersion = "0.1.0"
)
