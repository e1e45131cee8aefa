package pipeline

import "sync"

// RunRegistry tracks which channels currently have an active pipeline run.
// It is advisory and in-memory: it guards a single process instance only,
// and multi-instance deployments need an external lock behind the same
// methods.
type RunRegistry struct {
	mu     sync.Mutex
	active map[string]struct{}
}

// NewRunRegistry creates an empty registry
func NewRunRegistry() *RunRegistry {
	return &RunRegistry{active: make(map[string]struct{})}
}

// TryStart atomically claims a channel for a run. Returns false when a run
// is already active, in which case the caller must not start another.
func (r *RunRegistry) TryStart(channelID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, running := r.active[channelID]; running {
		return false
	}
	r.active[channelID] = struct{}{}
	return true
}

// Finish releases a channel. Safe to call on error paths and for channels
// that were never claimed.
func (r *RunRegistry) Finish(channelID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.active, channelID)
}

// IsRunning reports whether a run is active for the channel
func (r *RunRegistry) IsRunning(channelID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, running := r.active[channelID]
	return running
}
