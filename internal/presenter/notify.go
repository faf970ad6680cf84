package presenter

import (
	"sync"
	"time"
)

// DefaultNotificationTimeout is how long a notification stays visible
const DefaultNotificationTimeout = 3 * time.Second

// Kind classifies a notification
type Kind int

const (
	KindSuccess Kind = iota
	KindError
	KindInfo
)

// Notification is a transient message shown after a user action
type Notification struct {
	ID   uint64
	Kind Kind
	Text string
}

// Notifier keeps at most one visible notification. Showing a new one
// replaces the current one; a dismissal only applies to the ID it was
// scheduled for.
type Notifier struct {
	mu      sync.Mutex
	seq     uint64
	current *Notification
	timeout time.Duration
}

// NewNotifier creates a notifier; a non-positive timeout uses the default
func NewNotifier(timeout time.Duration) *Notifier {
	if timeout <= 0 {
		timeout = DefaultNotificationTimeout
	}
	return &Notifier{timeout: timeout}
}

// Timeout returns the auto-dismiss interval
func (n *Notifier) Timeout() time.Duration {
	return n.timeout
}

// Show replaces the visible notification
func (n *Notifier) Show(kind Kind, text string) Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.seq++
	note := Notification{ID: n.seq, Kind: kind, Text: text}
	n.current = &note
	return note
}

// Current returns the visible notification, if any
func (n *Notifier) Current() (Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Notification{}, false
	}
	return *n.current, true
}

// Dismiss clears the notification if id is still the visible one
func (n *Notifier) Dismiss(id uint64) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil || n.current.ID != id {
		return false
	}
	n.current = nil
	return true
}
