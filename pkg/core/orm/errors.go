package orm

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates that a required fetch found no rows.
	ErrNotFound = errors.New("record not found")

	// ErrNoRowsUpdated indicates that an update matched no rows.
	ErrNoRowsUpdated = errors.New("no rows were updated")

	// ErrNoRowsDeleted indicates that a required destroy matched
	// no rows.
	ErrNoRowsDeleted = errors.New("no rows were deleted")

	// ErrMissingID indicates that an operation needed the model ID
	// attribute, but it was not set.
	ErrMissingID = errors.New("model has no id")

	// ErrConflict indicates that a statement violated a uniqueness
	// or a foreign key constraint.
	ErrConflict = errors.New("conflicting record")
)

// ResolutionError indicates that a class name could not be found in
// the registry. Kind is one of "model", "collection", or "target";
// the latter is used when both of the collection and model registries
// were searched (e.g., for a relation target).
type ResolutionError struct {
	Kind string
	Name string
}

// Error returns a message which mentions the unresolved name.
func (re *ResolutionError) Error() string {
	return fmt.Sprintf(
		"the %s %q could not be resolved from the registry",
		re.Kind, re.Name,
	)
}
