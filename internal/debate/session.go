package debate

import (
	"context"
	"sync"
)

// Session serializes runs on one Engine and retains the last finished run
// for export. It replaces the single "start" button: Busy is true for the
// whole duration of a run.
type Session struct {
	engine *Engine

	mu      sync.Mutex
	running bool
	last    *Result
}

// NewSession wraps engine.
func NewSession(engine *Engine) *Session {
	return &Session{engine: engine}
}

// Start runs one debate. It fails with ErrRunInProgress while another run is
// active. The retained snapshot is replaced only when a run finishes, whether
// it produced a verdict or aborted; validation failures leave it untouched.
func (s *Session) Start(ctx context.Context, topic string, roles Assignment) (*Result, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, ErrRunInProgress
	}
	s.running = true
	s.mu.Unlock()

	var result *Result
	defer func() {
		s.mu.Lock()
		if result != nil {
			s.last = result.Clone()
		}
		s.running = false
		s.mu.Unlock()
	}()

	result, err := s.engine.Run(ctx, topic, roles)
	return result, err
}

// Busy reports whether a run is in progress.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Last returns a copy of the most recently finished run. Changes to the
// copy do not reach the retained snapshot.
func (s *Session) Last() (*Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last.Clone(), s.last != nil
}

// Engine returns the wrapped engine.
func (s *Session) Engine() *Engine { return s.engine }
