package memo

// wrapper_test.go exercises Wrapper.Call and the end-to-end fib scenario:
// fib(7) computed from a fresh Space calls the user function 8 times; after
// entering a scope and overriding fib(5) to 3, recomputing fib(7) calls the
// user function only twice (fib(6) and fib(7), the two entries that depend
// on fib(5)); exiting the scope and recomputing fib(7) again reproduces the
// original value with zero calls.
//
// © 2025 memoscope authors. MIT License.

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// newCountingFib returns a memoized Fibonacci wrapper plus a pointer to a
// counter incremented once per underlying user-function invocation (never
// on a cache hit), bound to its own fresh Space for test isolation.
func newCountingFib(t *testing.T) (*Wrapper[int, int], *int) {
	t.Helper()
	space := NewSpace(WithName(t.Name()))
	calls := 0

	var fib *Wrapper[int, int]
	fib = WrapIn[int, int](space, "fib", func(ctx context.Context, n int) (int, error) {
		calls++
		if n < 2 {
			return n, nil
		}
		a, err := fib.Call(ctx, n-1)
		if err != nil {
			return 0, err
		}
		b, err := fib.Call(ctx, n-2)
		if err != nil {
			return 0, err
		}
		return a + b, nil
	})
	return fib, &calls
}

func TestFibRecomputeOnOverride(t *testing.T) {
	ctx := context.Background()
	fib, calls := newCountingFib(t)

	v, err := fib.Call(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, 13, v)
	require.Equal(t, 8, *calls)

	fib.space.Enter()
	require.NoError(t, fib.Ref(5).Assign(3))
	*calls = 0

	v, err = fib.Call(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, 9, v)
	require.Equal(t, 2, *calls)

	require.NoError(t, fib.space.Exit())
	*calls = 0

	v, err = fib.Call(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, 13, v)
	require.Equal(t, 0, *calls)
}

// TestMemoizationInvariant: after Call(a) returns, a subsequent Call(a)
// invokes the user function zero times.
func TestMemoizationInvariant(t *testing.T) {
	ctx := context.Background()
	fib, calls := newCountingFib(t)

	_, err := fib.Call(ctx, 10)
	require.NoError(t, err)
	before := *calls

	_, err = fib.Call(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, before, *calls)
}

// TestDeterminismWithoutOverrides: two identical call sequences from a
// fresh root produce identical values and identical call counts.
func TestDeterminismWithoutOverrides(t *testing.T) {
	ctx := context.Background()

	fibA, callsA := newCountingFib(t)
	fibB, callsB := newCountingFib(t)

	for _, n := range []int{1, 3, 5, 9, 5, 3} {
		va, err := fibA.Call(ctx, n)
		require.NoError(t, err)
		vb, err := fibB.Call(ctx, n)
		require.NoError(t, err)
		require.Equal(t, va, vb)
	}
	require.Equal(t, *callsA, *callsB)
}

// TestEdgeCompleteness: if computing A.Call(x) consumes B.Call(y), then
// after the outer call B.Ref(y).Callers() contains A.Ref(x).
func TestEdgeCompleteness(t *testing.T) {
	ctx := context.Background()
	space := NewSpace()

	b := WrapIn[int, int](space, "b", func(ctx context.Context, n int) (int, error) {
		return n * 2, nil
	})
	a := WrapIn[int, int](space, "a", func(ctx context.Context, n int) (int, error) {
		v, err := b.Call(ctx, n)
		if err != nil {
			return 0, err
		}
		return v + 1, nil
	})

	v, err := a.Call(ctx, 4)
	require.NoError(t, err)
	require.Equal(t, 9, v)

	require.True(t, b.Ref(4).Callers().Contains(a.Ref(4)))
}

// TestProbeNeutrality: Wrapper.Ref followed by CurrentValue with no
// intervening call returns ok=false and never inserts into the cache.
func TestProbeNeutrality(t *testing.T) {
	ctx := context.Background()
	fib, calls := newCountingFib(t)

	_, ok := fib.Ref(9).CurrentValue()
	require.False(t, ok)
	require.Equal(t, 0, *calls)

	// The probe must not have leaked into the cache: calling afterwards
	// still runs the user function.
	_, err := fib.Call(ctx, 9)
	require.NoError(t, err)
	require.Greater(t, *calls, 0)
}

// TestUserFunctionFailureLeavesCacheConsistent: a failing user function
// leaves its entry value-less; a later successful call recomputes cleanly.
func TestUserFunctionFailureLeavesCacheConsistent(t *testing.T) {
	ctx := context.Background()
	space := NewSpace()

	attempt := 0
	flaky := WrapIn[int, int](space, "flaky", func(ctx context.Context, n int) (int, error) {
		attempt++
		if attempt == 1 {
			return 0, errFlaky
		}
		return n * n, nil
	})

	_, err := flaky.Call(ctx, 3)
	require.ErrorIs(t, err, errFlaky)
	_, ok := flaky.Ref(3).CurrentValue()
	require.False(t, ok, "failed computation must not leave a value behind")

	v, err := flaky.Call(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, 9, v)
}

// TestNoLeaks: after a scope that shadows an entry exits, callers recorded
// against surviving entries during that scope become unreachable through
// their weak back-references once the garbage collector runs: the scope's
// layer is gone, so the dangling caller edge must be pruned rather than
// pinning the shadowed entry in memory forever.
func TestNoLeaks(t *testing.T) {
	ctx := context.Background()
	fib, _ := newCountingFib(t)

	_, err := fib.Call(ctx, 7)
	require.NoError(t, err)

	// fib(5) and fib(6) both call fib(4) directly in the unmodified tree.
	before := fib.Ref(4).Callers().Len()
	require.Equal(t, 2, before)

	fib.space.Enter()
	require.NoError(t, fib.Ref(5).Assign(3))
	// Recomputing fib(7) inside the scope walks fib(6)'s *shadow* down to
	// the surviving root fib(4) entry, adding a third, scope-local caller
	// edge to it: reading an unshadowed entry from inside a scope still
	// records the reader, even though the reader only lives as long as the
	// scope does.
	_, err = fib.Call(ctx, 7)
	require.NoError(t, err)

	require.NoError(t, fib.space.Exit())

	runtime.GC()
	// Once the scope's layer is gone, that third edge is weakly reachable
	// only; it must be pruned rather than pinning the shadow entry forever.
	after := fib.Ref(4).Callers().Len()
	require.Equal(t, before, after, "caller edge recorded by a now-discarded scope layer must be pruned, not leaked")
}

var errFlaky = errors.New("flaky: transient failure")
