package constants

// DateLayout is the wire format for follow-up dates.
const DateLayout = "2006-01-02"

const (
	DefaultDatabaseDSN = "storage.db"
	DefaultSnapshotKey = "task_tree_snapshot"
)
