package script

import "github.com/cockroachdb/errors"

// Errors returned by script execution.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrCallLimit is returned when a script makes more spaced calls than allowed.
	ErrCallLimit = errors.New("lua call limit exceeded")

	// ErrDuplicateExport is raised when two objects are exported under one name.
	ErrDuplicateExport = errors.New("export name already used")
)
