package memo

// errors.go collects the sentinel errors surfaced across the package's
// public API.
//
// © 2025 memoscope authors. MIT License.

import "errors"

var (
	// ErrStaleEntry is returned by Entry.DirectValue when the entry's own
	// slot has never been assigned a value — in particular, by the probe
	// passed to Assign immediately after Assign returns: Assign writes the
	// value onto a freshly shadowed entry, never onto the probe itself.
	ErrStaleEntry = errors.New("memo: entry has no direct value")

	// ErrInvalidKey is returned when an argument tuple turns out not to be
	// hashable at runtime. Go's comparable constraint on Wrapper's K
	// rejects almost all such keys at compile time; this only fires when K
	// is an interface type (e.g. any) holding a non-comparable dynamic
	// value, which panics on map index — a panic this package recovers
	// from at the two map-indexing boundaries and reports as this error.
	ErrInvalidKey = errors.New("memo: argument key is not hashable")

	// ErrInvariantViolation is returned by Space.Exit when asked to pop the
	// root layer. The root layer lives for the lifetime of the Space; it is
	// a programming error to unbalance Enter/Exit calls past it.
	ErrInvariantViolation = errors.New("memo: cannot exit the root scope")
)
