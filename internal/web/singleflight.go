package web

import "sync"

// ActionGuard rejects duplicate concurrent submissions of the same action.
// A key is held for the duration of one request; a second request with the
// same key while the first is in flight is turned away.
type ActionGuard struct {
	mu       sync.Mutex
	inflight map[string]bool
}

func NewActionGuard() *ActionGuard {
	return &ActionGuard{inflight: make(map[string]bool)}
}

// TryAcquire marks key as in flight. It returns false when the key is
// already held.
func (g *ActionGuard) TryAcquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inflight[key] {
		return false
	}
	g.inflight[key] = true
	return true
}

func (g *ActionGuard) Release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inflight, key)
}
