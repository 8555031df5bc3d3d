package memo

// ids.go defines the composite key every Entry is addressed by: the pair
// (function-identity, argument-key). function-identity is the
// *Wrapper[K, V] pointer itself — every Wrap call allocates exactly one, so
// pointer identity is already a stable handle, with no separate name or id
// to keep in sync. The argument-key is stored as `any` so a single scope
// layer's table can hold entries for many different Wrapper[K, V]
// instantiations at once.
//
// © 2025 memoscope authors. MIT License.

type entryID struct {
	fn  any // always a *Wrapper[K, V] for some K, V
	key any // always a K for the same K as fn
}
