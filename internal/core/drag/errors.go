package drag

import "errors"

// Sentinel errors for the interaction state machine.
var (
	// ErrSessionActive indicates a pointer-down arrived while a session is
	// already tracking. The active session is left untouched.
	ErrSessionActive = errors.New("drag session already active")

	// ErrNoSession indicates Update, End or Cancel was called while idle.
	ErrNoSession = errors.New("no active drag session")

	// ErrNotEditable indicates the target milestone does not allow editing.
	ErrNotEditable = errors.New("milestone is not editable")

	// ErrCommitConflict indicates pointer-up happened over a known conflict;
	// the milestone snaps back to its origin bounds.
	ErrCommitConflict = errors.New("commit rejected: unresolved conflict")
)
