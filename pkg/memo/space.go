package memo

// space.go defines Space, the top-level object a process (or, for
// per-goroutine isolation, a single goroutine) owns: it bundles the scope
// stack and call tracker that every Wrapper bound to it shares, plus the
// logger and metrics sink configured via Option.
//
// Space itself holds no locks: the design is single-threaded cooperative.
// Concurrent goroutines that each want isolated memoization should each
// own a Space.
//
// © 2025 memoscope authors. MIT License.

import "go.uber.org/zap"

// Space owns one scope stack and one call tracker. All Wrappers created
// against the same Space observe each other's caller edges; Wrappers bound
// to different Spaces are entirely independent.
type Space struct {
	stack   *scopeStack
	tracker *callTracker
	logger  *zap.Logger
	metrics metricsSink
	name    string
}

// NewSpace constructs an independent Space with a fresh root layer.
func NewSpace(opts ...Option) *Space {
	cfg := defaultConfig()
	applyOptions(cfg, opts)

	return &Space{
		stack:   newScopeStack(),
		tracker: newCallTracker(),
		logger:  cfg.logger,
		metrics: newMetricsSink(cfg.name, cfg.registry),
		name:    cfg.name,
	}
}

var defaultSpace = NewSpace(WithName("default"))

// DefaultSpace returns the package-wide Space used by Wrap when no
// explicit Space is given. It is initialized at package load and lives for
// the process's lifetime.
func DefaultSpace() *Space { return defaultSpace }

// Enter pushes a fresh, empty override layer on top of the stack. It never
// fails.
func (s *Space) Enter() {
	s.stack.push()
	s.metrics.setScopeDepth(s.stack.depth())
	s.logger.Debug("memo: scope entered", zap.String("space", s.name), zap.Int("depth", s.stack.depth()))
}

// Exit pops the top override layer, discarding every entry it contains
// (and therefore every override and cascaded invalidation performed inside
// it) and reverting to the layer beneath, unchanged. Exit fails with
// ErrInvariantViolation if called while only the root layer remains.
func (s *Space) Exit() error {
	if err := s.stack.pop(); err != nil {
		s.logger.Error("memo: attempted to exit the root scope", zap.String("space", s.name))
		return err
	}
	s.metrics.setScopeDepth(s.stack.depth())
	s.logger.Debug("memo: scope exited", zap.String("space", s.name), zap.Int("depth", s.stack.depth()))
	return nil
}

// WithScope runs fn inside a fresh override scope, guaranteeing the scope
// is exited on every return path from fn, including a panic unwinding
// through it.
func (s *Space) WithScope(fn func() error) (err error) {
	s.Enter()
	defer func() {
		if exitErr := s.Exit(); exitErr != nil && err == nil {
			err = exitErr
		}
	}()
	return fn()
}

// Depth reports the current number of layers, root included (so the root
// alone is depth 1).
func (s *Space) Depth() int { return s.stack.depth() }
