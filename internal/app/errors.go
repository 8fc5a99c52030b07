package app

import "errors"

// Service-level sentinel errors.
var (
	// ErrPersistenceFailure indicates a commit was accepted locally but the
	// save collaborator failed. The store has been rolled back; the edit can
	// be retried.
	ErrPersistenceFailure = errors.New("persistence failure")

	// ErrNotDeletable indicates the milestone's capability flags forbid deletion.
	ErrNotDeletable = errors.New("milestone is not deletable")

	// ErrProjectNotFound indicates the referenced project does not exist.
	ErrProjectNotFound = errors.New("project not found")
)
