package spaced

import (
	"github.com/cockroachdb/errors"

	"github.com/dshills/spacedlist/internal/engine/arraylist"
)

// Errors returned by list operations.
var (
	// ErrEmptyList indicates a gap adjustment on a list with no entries.
	ErrEmptyList = errors.New("cannot adjust spacing of an empty list")

	// ErrUnderflow indicates a deflate larger than the gap it targets.
	ErrUnderflow = errors.New("cannot deflate below zero")

	// ErrInvalidRange indicates a range whose start lies past its end.
	ErrInvalidRange = errors.New("start position must be before or at end position")

	// ErrDeadIndex indicates an index that does not name a live entry.
	ErrDeadIndex = arraylist.ErrDeadIndex

	// ErrCorrupt indicates a broken internal invariant.
	ErrCorrupt = errors.New("spaced list invariant violated")

	// ErrMalformed indicates a snapshot document that cannot be decoded.
	ErrMalformed = errors.New("malformed snapshot")
)

// misuse marks err as a programming error.
func misuse(err error, format string, args ...any) error {
	return errors.WithAssertionFailure(errors.Wrapf(err, format, args...))
}
