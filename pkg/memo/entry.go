package memo

// entry.go defines the public, type-safe handle onto an entryRecord: the
// Entry[K, V] returned by Wrapper.Ref. It exposes two distinct read forms:
//
//   - DirectValue is the direct-read form: raw access to the handle's own
//     record, which for a probe created by Ref is never the record living
//     in a scope layer's table — Assign always writes to a *new* shadow
//     record, never back onto the probe.
//   - CurrentValue is the scope-resolving form: it re-looks-up the Entry's
//     id through the scope stack, so it observes whatever the *current*
//     top-most layer considers live for that id — the shadow's new value
//     after an Assign, or the pre-override value outside any scope.
//
// © 2025 memoscope authors. MIT License.

// Entry is a handle identifying one (Wrapper, argument) pair. Handles
// returned by Wrapper.Ref are probes: constructing one never mutates the
// cache, and its own caller set starts and stays empty regardless of what
// happens to the entry the same id resolves to through the scope stack.
type Entry[K comparable, V any] struct {
	space *Space
	id    entryID
	own   *entryRecord // the probe's own record; never inserted into any layer
}

// resolvedRecord looks the Entry's id up through the scope stack, returning
// whatever entry is currently live for it (nil if none).
func (e *Entry[K, V]) resolvedRecord() (*entryRecord, error) {
	rec, _, err := e.space.stack.lookup(e.id, 0)
	return rec, err
}

// DirectValue reads the probe's own slot, bypassing the scope stack
// entirely. It is ErrStaleEntry unless this exact handle's record has been
// given a value directly (which never happens for a Ref() probe, even
// after calling Assign on it — see the file comment at the top of entry.go).
func (e *Entry[K, V]) DirectValue() (V, error) {
	var zero V
	if !e.own.hasValue {
		return zero, ErrStaleEntry
	}
	return e.own.value.(V), nil
}

// CurrentValue resolves the Entry's (function, key) pair through the scope
// stack and returns the value found there, or ok=false if no layer has a
// value for it.
func (e *Entry[K, V]) CurrentValue() (v V, ok bool) {
	rec, _, err := e.space.stack.lookup(e.id, 0)
	if err != nil || rec == nil || !rec.hasValue {
		return v, false
	}
	return rec.value.(V), true
}

// Callers returns a read-only view of the reverse dependency set belonging
// to whatever entry this id currently resolves to through the scope stack
// (not the probe's own, always-empty, caller set).
func (e *Entry[K, V]) Callers() CallerSet {
	rec, _, _ := e.space.stack.lookup(e.id, 0)
	return CallerSet{rec: rec}
}

// Assign shadows this entry and sets the new, top-layer record's value to
// v. The probe e itself never acquires a value: reading e.DirectValue()
// afterwards still returns ErrStaleEntry.
func (e *Entry[K, V]) Assign(v V) error {
	rec, err := e.space.shadow(e.id)
	if err != nil {
		return err
	}
	rec.value = v
	rec.hasValue = true
	return nil
}

// CallerSet is a read-only, type-erased view of an entry's reverse
// dependency set.
type CallerSet struct {
	rec *entryRecord
}

// Len reports the number of live (non-collected) callers.
func (cs CallerSet) Len() int {
	if cs.rec == nil {
		return 0
	}
	return len(cs.rec.liveCallers())
}

// Contains reports whether other's currently-resolved entry is among this
// set's live callers. other may belong to a different Wrapper[K, V]
// instantiation entirely — caller edges cross function boundaries freely,
// which is what lets invalidation propagate across functions.
func (cs CallerSet) Contains(other callerHandle) bool {
	if cs.rec == nil || other == nil {
		return false
	}
	target, err := other.resolvedRecord()
	if err != nil || target == nil {
		return false
	}
	return cs.rec.containsCaller(target)
}

// callerHandle is implemented by *Entry[K, V] for any K, V. It lets
// CallerSet.Contains compare across Entry instantiations of different
// types without CallerSet itself being generic.
type callerHandle interface {
	resolvedRecord() (*entryRecord, error)
}
