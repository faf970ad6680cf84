package viewstate

import (
	"sync"

	"github.com/studiowebux/lifeweeks/internal/types"
)

// Tracker numbers in-flight calls per action so that a result from a
// superseded call can be recognized and dropped.
type Tracker struct {
	mu       sync.Mutex
	latest   map[types.Action]uint64
	inFlight map[types.Action]int
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{
		latest:   make(map[types.Action]uint64),
		inFlight: make(map[types.Action]int),
	}
}

// Begin registers a new call for the action and returns its generation
func (t *Tracker) Begin(action types.Action) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.latest[action]++
	t.inFlight[action]++
	return t.latest[action]
}

// Finish marks a call as resolved. It reports whether gen is still the
// latest generation for the action, i.e. whether its result should be shown.
func (t *Tracker) Finish(action types.Action, gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.inFlight[action] > 0 {
		t.inFlight[action]--
	}
	return gen == t.latest[action]
}

// Latest returns the generation of the most recent Begin for the action
func (t *Tracker) Latest(action types.Action) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest[action]
}

// InFlight reports whether any call for the action is unresolved
func (t *Tracker) InFlight(action types.Action) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inFlight[action] > 0
}
