// Package publisher fans the latest status snapshot out to any number
// of long-poll subscribers. Delivery is best-effort: a subscriber that
// is slow to receive, or has disconnected, simply misses updates — no
// history is queued, matching spec.md §4.4's monitor semantics. There
// is no teacher analogue for this; the subscribe/publish-over-channel
// shape follows the pack's general pub/sub idiom in
// sweeney-boiler-sensor/internal/mqtt's buffered-channel handling.
package publisher

import (
	"sync"

	"github.com/thermod-project/thermod/internal/model"
)

// Publisher holds the current status and a registry of subscriber
// channels. Safe for concurrent use.
type Publisher struct {
	mu          sync.Mutex
	current     model.ThermodStatus
	hasCurrent  bool
	subscribers map[chan model.ThermodStatus]struct{}
}

func New() *Publisher {
	return &Publisher{
		subscribers: make(map[chan model.ThermodStatus]struct{}),
	}
}

// Publish records status as current and offers it to every
// subscriber. A subscriber whose channel is full (buffer size 1)
// simply does not receive this update; it will see the next one.
func (p *Publisher) Publish(status model.ThermodStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = status
	p.hasCurrent = true

	for ch := range p.subscribers {
		select {
		case ch <- status:
		default:
		}
	}
}

// Current returns the most recently published status, and whether one
// has ever been published.
func (p *Publisher) Current() (model.ThermodStatus, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current, p.hasCurrent
}

// Subscribe registers a new subscriber and returns its channel plus
// an unsubscribe function the caller must call when done (typically
// on request context cancellation).
func (p *Publisher) Subscribe() (<-chan model.ThermodStatus, func()) {
	ch := make(chan model.ThermodStatus, 1)

	p.mu.Lock()
	p.subscribers[ch] = struct{}{}
	p.mu.Unlock()

	unsubscribe := func() {
		p.mu.Lock()
		delete(p.subscribers, ch)
		p.mu.Unlock()
	}

	return ch, unsubscribe
}

// SubscriberCount reports how many subscribers are currently
// registered, for tests and metrics.
func (p *Publisher) SubscriberCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.subscribers)
}
