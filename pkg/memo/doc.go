// Package memo implements a consistent mutable memoization cache with
// scoped overrides.
//
// A user function is wrapped with Wrap, producing a Wrapper whose Call
// method memoizes per-argument results. From inside a scope opened with
// Space.Enter (or Space.WithScope), a cached result can be overridden with
// Entry.Assign; every result that transitively depended on the overridden
// entry is invalidated in that scope alone. Exiting the scope discards the
// override and every cascaded invalidation atomically — the enclosing cache
// is never touched.
//
// The design is single-threaded cooperative: a Space and the Wrappers bound
// to it must only ever be driven by one goroutine at a time. Give each
// goroutine its own Space (NewSpace) for isolation; there is no locking.
//
// © 2025 memoscope authors. MIT License.
package memo
