package memo

// scope.go implements the scope stack: an ordered stack of scope layers,
// the bottom (index 0) being the root layer that lives for the Space's
// whole lifetime. Lookup walks from the top toward the root; insert always
// targets the top layer. The newest layer is the last slice element, the
// natural representation for a Go append/truncate stack.
//
// © 2025 memoscope authors. MIT License.

type layer struct {
	table map[entryID]*entryRecord
}

func newLayer() *layer {
	return &layer{table: make(map[entryID]*entryRecord)}
}

type scopeStack struct {
	layers []*layer
}

func newScopeStack() *scopeStack {
	return &scopeStack{layers: []*layer{newLayer()}}
}

func (s *scopeStack) depth() int { return len(s.layers) }

func (s *scopeStack) push() {
	s.layers = append(s.layers, newLayer())
}

func (s *scopeStack) pop() error {
	if len(s.layers) <= 1 {
		return ErrInvariantViolation
	}
	last := len(s.layers) - 1
	// Drop the strong reference before truncating: slicing alone leaves the
	// popped *layer reachable through the backing array's spare capacity,
	// which would keep every entry it owned (and, transitively, anything
	// only a weak caller pointer away) alive until some future push
	// happens to overwrite this slot. The popped layer's entries must
	// become collectible immediately.
	s.layers[last] = nil
	s.layers = s.layers[:last]
	return nil
}

// lookup returns the Entry found in the first layer at stack-from-top index
// >= offset whose table contains id. offset=0 searches every layer starting
// at the top; offset=1 skips the top layer entirely, which is exactly the
// "what would this key resolve to if the current top layer did not exist"
// query the shadowing algorithm needs.
func (s *scopeStack) lookup(id entryID, offset int) (rec *entryRecord, found bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec, found, err = nil, false, ErrInvalidKey
		}
	}()
	top := len(s.layers) - 1
	for i := top - offset; i >= 0; i-- {
		if r, ok := s.layers[i].table[id]; ok {
			return r, true, nil
		}
	}
	return nil, false, nil
}

// insert creates a fresh, value-less, caller-less Entry in the top layer,
// replacing whatever entry previously occupied that slot.
func (s *scopeStack) insert(id entryID) (rec *entryRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec, err = nil, ErrInvalidKey
		}
	}()
	fresh := newEntryRecord(id)
	s.layers[len(s.layers)-1].table[id] = fresh
	return fresh, nil
}
