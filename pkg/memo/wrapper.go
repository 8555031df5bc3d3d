package memo

// wrapper.go implements Wrapper[K, V], the memoized view of a user
// function: find-or-insert the entry for the argument, record the calling
// entry as a dependent, return the cached value if there is one, otherwise
// run fn and store the result.
//
// Call(ctx, k) threads a context.Context as its first argument; it is the
// only function in the package's public API that takes one. memoscope's
// computations never suspend internally, so ctx is only checked up front
// and handed to the user function for it to honour.
//
// © 2025 memoscope authors. MIT License.

import (
	"context"
	"fmt"
	"reflect"
	"runtime"

	"go.uber.org/zap"
)

// Func is the user-supplied computation a Wrapper memoizes. It should be
// pure with respect to everything except the Wrapper calls it makes: it
// may freely call other Wrappers bound to the same Space (including
// itself, recursively), and doing so is how the dependency graph between
// entries is discovered. It must not call Entry.Assign on its own Space while
// executing — that is reserved for override scopes driven from outside any
// wrapped computation.
type Func[K comparable, V any] func(ctx context.Context, arg K) (V, error)

// Wrapper is the memoized view of a Func returned by Wrap. Each Wrapper
// instance is its own function-identity: the pointer returned by Wrap is
// never copied or reconstructed, so pointer equality on *Wrapper[K, V] is
// the function-identity used throughout the package.
type Wrapper[K comparable, V any] struct {
	space *Space
	name  string
	fn    Func[K, V]
}

// namedFn lets shadow.go report per-Wrapper shadow counts to the metrics
// sink without Space (non-generic) needing to know K or V.
type namedFn interface {
	wrapperName() string
}

func (w *Wrapper[K, V]) wrapperName() string { return w.name }

func funcName(fn any) string {
	name := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()).Name()
	if name == "" {
		return "anonymous"
	}
	return name
}

func wrapperName(fn any) (string, bool) {
	nf, ok := fn.(namedFn)
	if !ok {
		return "", false
	}
	return nf.wrapperName(), true
}

// Wrap registers fn against the package-wide DefaultSpace, naming it after
// fn's own runtime symbol for metrics and logging. Use WrapIn to bind to an
// explicit Space instead.
func Wrap[K comparable, V any](fn Func[K, V]) *Wrapper[K, V] {
	return WrapIn[K, V](DefaultSpace(), funcName(fn), fn)
}

// WrapNamed registers fn against DefaultSpace under an explicit name.
func WrapNamed[K comparable, V any](name string, fn Func[K, V]) *Wrapper[K, V] {
	return WrapIn[K, V](DefaultSpace(), name, fn)
}

// WrapIn registers fn against an explicit Space under an explicit name.
// Each call allocates one fresh Wrapper, which is its own stable
// function-identity for the rest of its lifetime.
func WrapIn[K comparable, V any](space *Space, name string, fn Func[K, V]) *Wrapper[K, V] {
	return &Wrapper[K, V]{space: space, name: name, fn: fn}
}

// Call is the primary operation:
//  1. find (or insert) the entry for (w, arg);
//  2. if a wrapped computation is currently executing, record it as a
//     caller of this entry — done before any cache-hit return, so a new
//     caller learns of an existing callee even when nothing recomputes;
//  3. return the cached value if present;
//  4. otherwise push the entry on the call tracker, run fn, store the
//     result, and pop — guaranteed, even if fn fails.
func (w *Wrapper[K, V]) Call(ctx context.Context, arg K) (v V, err error) {
	if err = ctx.Err(); err != nil {
		return v, err
	}

	id := entryID{fn: w, key: arg}
	rec, found, err := w.space.stack.lookup(id, 0)
	if err != nil {
		w.space.logger.Warn("memo: invalid argument key", zap.String("wrapper", w.name))
		return v, err
	}
	if !found {
		rec, err = w.space.stack.insert(id)
		if err != nil {
			w.space.logger.Warn("memo: invalid argument key", zap.String("wrapper", w.name))
			return v, err
		}
	}

	if caller := w.space.tracker.current(); caller != nil {
		rec.addCaller(caller)
	}

	if rec.hasValue {
		w.space.metrics.incHit(w.name)
		return rec.value.(V), nil
	}
	w.space.metrics.incMiss(w.name)

	w.space.tracker.push(rec)
	defer w.space.tracker.pop()

	v, err = w.fn(ctx, arg)
	if err != nil {
		return v, fmt.Errorf("memo: %s(%v): %w", w.name, arg, err)
	}
	rec.value = v
	rec.hasValue = true
	return v, nil
}

// Ref constructs — but does not insert — an Entry handle for (w, arg). It
// is a probe: it never mutates the cache on its own, and its own caller
// set starts, and stays, empty.
func (w *Wrapper[K, V]) Ref(arg K) *Entry[K, V] {
	id := entryID{fn: w, key: arg}
	return &Entry[K, V]{space: w.space, id: id, own: newEntryRecord(id)}
}
