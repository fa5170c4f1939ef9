package memory

import "context"

// ClearAll empties every collection and re-seeds the default user. Present
// for parity with the relational backing; the admin endpoint refuses to call
// it when the in-memory backing is active.
func (s *Store) ClearAll(_ context.Context) error {
	s.Reset()
	return nil
}
