package model

// Resource status constants.
const (
	StatusPending    = "pending"
	StatusActive     = "active"
	StatusFailed     = "failed"
	StatusSuspended  = "suspended"
	StatusRestarting = "restarting"
	StatusDeleting   = "deleting"
)
