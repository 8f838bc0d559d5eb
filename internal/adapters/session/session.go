// Package session keeps one filter state per dashboard session.
package session

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/okian/sihdash/internal/domain/filter"
	"github.com/okian/sihdash/pkg/logger"
	"github.com/okian/sihdash/pkg/metrics"
)

// Registry hands out session ids and gives each session exclusive access to
// its own filter state.
type Registry interface {
	// Create starts a session with a default filter state and returns its id.
	Create(ctx context.Context) string

	// With runs fn with the session's state while holding that session's lock.
	// It returns ErrNotFound for unknown or evicted ids.
	With(ctx context.Context, id string, fn func(*filter.State) error) error

	// Delete ends a session. Unknown ids are ignored.
	Delete(ctx context.Context, id string)

	Size() int64
}

// node is one session in the recency list.
type node struct {
	id         string
	mu         sync.Mutex
	state      *filter.State
	prev, next *node
}

// inMemoryRegistry bounds live sessions and evicts the least recently used.
type inMemoryRegistry struct {
	mu       sync.Mutex
	sessions map[string]*node
	head     *node // most recently used
	tail     *node // least recently used
	capacity int
	size     atomic.Int64
	logger   logger.Logger
}

// NewInMemoryRegistry creates a bounded registry.
func NewInMemoryRegistry(opts ...Option) Registry {
	r := &inMemoryRegistry{capacity: defaultCapacity}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logger.Get()
	}
	r.sessions = make(map[string]*node)
	return r
}

func (r *inMemoryRegistry) Create(ctx context.Context) string {
	n := &node{id: uuid.NewString(), state: filter.NewState()}

	r.mu.Lock()
	var evicted string
	if len(r.sessions) >= r.capacity {
		evicted = r.evictLRU()
	}
	r.sessions[n.id] = n
	r.pushFront(n)
	size := r.size.Add(1)
	r.mu.Unlock()

	if evicted != "" {
		metrics.RecordSessionEvicted()
		r.logger.Info(ctx, "session evicted", logger.String("session", evicted))
	}
	metrics.UpdateSessionsActive(int(size))
	r.logger.Debug(ctx, "session created", logger.String("session", n.id))
	return n.id
}

func (r *inMemoryRegistry) With(ctx context.Context, id string, fn func(*filter.State) error) error {
	r.mu.Lock()
	n, ok := r.sessions[id]
	if ok {
		r.moveToFront(n)
	}
	r.mu.Unlock()
	if !ok {
		return ErrNotFound
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	return fn(n.state)
}

func (r *inMemoryRegistry) Delete(ctx context.Context, id string) {
	r.mu.Lock()
	n, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
		r.unlink(n)
		r.size.Add(-1)
	}
	size := r.size.Load()
	r.mu.Unlock()
	if ok {
		metrics.UpdateSessionsActive(int(size))
		r.logger.Debug(ctx, "session deleted", logger.String("session", id))
	}
}

func (r *inMemoryRegistry) Size() int64 { return r.size.Load() }

// evictLRU removes the tail. Caller holds r.mu.
func (r *inMemoryRegistry) evictLRU() string {
	n := r.tail
	if n == nil {
		return ""
	}
	r.unlink(n)
	delete(r.sessions, n.id)
	r.size.Add(-1)
	return n.id
}

func (r *inMemoryRegistry) pushFront(n *node) {
	n.prev = nil
	n.next = r.head
	if r.head != nil {
		r.head.prev = n
	}
	r.head = n
	if r.tail == nil {
		r.tail = n
	}
}

func (r *inMemoryRegistry) unlink(n *node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		r.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		r.tail = n.prev
	}
	n.prev, n.next = nil, nil
}

func (r *inMemoryRegistry) moveToFront(n *node) {
	if r.head == n {
		return
	}
	r.unlink(n)
	r.pushFront(n)
}
