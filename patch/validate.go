package patch

import (
	"errors"
	"fmt"
)

var ErrPathNotAllowed = errors.New("path is not in the allowed paths set")

// AllowedPaths builds the lookup set used by ValidatePatchOperations.
func AllowedPaths(names []string) map[string]bool {
	allowed := make(map[string]bool, len(names))
	for _, name := range names {
		allowed[Pointer(name)] = true
	}
	return allowed
}

// ValidatePatchOperations rejects operations touching paths outside
// allowedPaths. An empty set allows everything.
func ValidatePatchOperations(ops []Operation, allowedPaths map[string]bool) error {
	if len(allowedPaths) == 0 {
		return nil
	}
	for i, op := range ops {
		if !allowedPaths[op.Path] {
			return fmt.Errorf("operation %d: %w: %q", i, ErrPathNotAllowed, op.Path)
		}
	}
	return nil
}
