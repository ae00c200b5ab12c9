package services

import (
	"sync"
	"time"

	"progression-service/models"

	"github.com/google/uuid"
)

// Notifier is the subscribe/publish channel the engines push events into.
// Delivery is synchronous and in-process; display is out of scope.
type Notifier struct {
	mu     sync.RWMutex
	subs   map[int]func(models.Event)
	nextID int
}

// NewNotifier creates an empty hub.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]func(models.Event))}
}

// Subscribe registers a callback and returns its unsubscribe function.
func (n *Notifier) Subscribe(fn func(models.Event)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.nextID
	n.nextID++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// Publish stamps and fans the event out to all subscribers.
func (n *Notifier) Publish(evt models.Event) {
	if evt.ID == "" {
		evt.ID = uuid.NewString()
	}
	if evt.CreatedAt.IsZero() {
		evt.CreatedAt = time.Now().UTC()
	}
	n.mu.RLock()
	fns := make([]func(models.Event), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.RUnlock()
	for _, fn := range fns {
		fn(evt)
	}
}
