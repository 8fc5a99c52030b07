package schedule

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for store operations. Callers match with errors.Is.
var (
	// ErrNotFound indicates the milestone id does not exist in the store.
	ErrNotFound = errors.New("milestone not found")

	// ErrCycleDetected indicates a parent or dependency edge would create a cycle.
	ErrCycleDetected = errors.New("cycle detected")

	// ErrHasDependents indicates removal is blocked by remaining dependents.
	ErrHasDependents = errors.New("milestone has dependents")

	// ErrInvalidInterval indicates start is after end.
	ErrInvalidInterval = errors.New("invalid interval")
)

// cycleError builds an ErrCycleDetected with a stable witness path.
func cycleError(path []string) error {
	if len(path) == 0 {
		return ErrCycleDetected
	}
	return fmt.Errorf("%w: %s", ErrCycleDetected, strings.Join(path, " -> "))
}

func notFoundError(id string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}
