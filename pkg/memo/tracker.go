package memo

// tracker.go implements the call tracker: a stack of currently-executing
// entries. Its sole purpose is letting Wrapper.Call record "while producing
// E's value, we consumed X's value, so X.callers contains E".
//
// © 2025 memoscope authors. MIT License.

type callTracker struct {
	stack []*entryRecord
}

func newCallTracker() *callTracker {
	return &callTracker{}
}

func (t *callTracker) push(r *entryRecord) {
	t.stack = append(t.stack, r)
}

func (t *callTracker) pop() {
	if len(t.stack) == 0 {
		return
	}
	t.stack = t.stack[:len(t.stack)-1]
}

// current returns the immediate caller for dependency-edge recording, or
// nil when no wrapped call is currently executing.
func (t *callTracker) current() *entryRecord {
	if len(t.stack) == 0 {
		return nil
	}
	return t.stack[len(t.stack)-1]
}
