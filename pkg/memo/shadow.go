package memo

// shadow.go implements the shadowing algorithm — the heart of the design:
// overriding an entry's value must also invalidate every entry that
// consumed the old value, transitively, without touching anything outside
// the active scope.
//
// © 2025 memoscope authors. MIT License.

import "go.uber.org/zap"

// shadow replaces id's entry in the top layer with a fresh, value-less,
// caller-less record, then recursively shadows every live caller of the
// *underlying* entry (the one that existed one layer down) whenever that
// underlying entry had a value. Callers are consulted on the underlying
// entry because the fresh shadow has no value yet — nothing has consumed it.
func (s *Space) shadow(id entryID) (*entryRecord, error) {
	underlying, found, err := s.stack.lookup(id, 1)
	if err != nil {
		return nil, err
	}

	fresh, err := s.stack.insert(id)
	if err != nil {
		return nil, err
	}

	if found && underlying.hasValue {
		cascade := underlying.liveCallers()
		if len(cascade) > 0 {
			s.logger.Debug("memo: shadow cascading to callers",
				zap.String("space", s.name),
				zap.Int("callers", len(cascade)),
			)
		}
		for _, caller := range cascade {
			if _, err := s.shadow(caller.id); err != nil {
				return nil, err
			}
		}
	}

	if name, ok := wrapperName(id.fn); ok {
		s.metrics.incShadow(name)
	}
	return fresh, nil
}
