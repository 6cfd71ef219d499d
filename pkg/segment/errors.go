package segment

import "errors"

// Error kinds from spec.md §7.
var (
	// ErrInvalidGeometry is returned when width or height is <= 2, or the
	// mask/image dimensions disagree.
	ErrInvalidGeometry = errors.New("segment: invalid geometry")
	// ErrOutOfMemory names the OutOfMemory error kind. No code path in this
	// module returns it: Go's allocator aborts the process on OOM rather
	// than returning an error, and Segment performs no size check of its
	// own before allocating.
	ErrOutOfMemory = errors.New("segment: out of memory")
)

// EmptyBand is not an error (spec.md §7): it is the condition where border
// mode finds no boundary in a uniform input mask. Callers detect it via
// Result.EmptyBand rather than an error return.
