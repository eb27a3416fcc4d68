package progress

import (
	"sync"

	"github.com/ytget/yt-autofix/internal/model"
)

// Mailbox is a latest-wins handoff between the extraction worker and a UI
// loop. OnEvent never blocks: it overwrites the pending event and signals
// Ready. The consumer calls Take after each signal.
type Mailbox struct {
	mu      sync.Mutex
	pending model.ProgressEvent
	has     bool
	ready   chan struct{}
}

// NewMailbox creates an empty mailbox
func NewMailbox() *Mailbox {
	return &Mailbox{ready: make(chan struct{}, 1)}
}

// OnEvent stores ev as the pending event
func (m *Mailbox) OnEvent(ev model.ProgressEvent) {
	m.mu.Lock()
	m.pending = ev
	m.has = true
	m.mu.Unlock()

	select {
	case m.ready <- struct{}{}:
	default:
	}
}

// Ready is signalled whenever a new event is pending
func (m *Mailbox) Ready() <-chan struct{} {
	return m.ready
}

// Take returns the pending event, if any, and clears it
func (m *Mailbox) Take() (model.ProgressEvent, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ev, ok := m.pending, m.has
	m.has = false
	return ev, ok
}
