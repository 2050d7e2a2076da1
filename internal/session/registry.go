// Package session keeps per-surface state (controllers, views, transcripts)
// for a limited time after its last use.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// NewID returns a fresh session identifier.
func NewID() string {
	return uuid.NewString()
}

type heldItem[T any] struct {
	value T
	refs  int
}

// Registry is a TTL cache of sessions keyed by id. Every successful Get
// extends the session's lifetime, and a held session does not expire until
// its last holder releases it.
type Registry[T any] struct {
	items *cache.Cache
	ttl   time.Duration

	mu   sync.Mutex
	held map[string]*heldItem[T]
}

func NewRegistry[T any](ttl, cleanupInterval time.Duration) *Registry[T] {
	return &Registry[T]{
		items: cache.New(ttl, cleanupInterval),
		ttl:   ttl,
		held:  make(map[string]*heldItem[T]),
	}
}

func (r *Registry[T]) Set(id string, value T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.held[id]; ok {
		h.value = value
	}
	r.items.Set(id, value, r.ttl)
}

func (r *Registry[T]) Get(id string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.lookup(id)
}

// GetOrCreate returns the session for id, creating it with create when it
// does not exist. create runs at most once per missing id and must not call
// back into the registry.
func (r *Registry[T]) GetOrCreate(id string, create func() T) T {
	r.mu.Lock()
	defer r.mu.Unlock()

	if value, ok := r.lookup(id); ok {
		return value
	}

	value := create()
	r.items.Set(id, value, r.ttl)
	return value
}

// Hold returns the session for id and keeps it alive until release is
// called. Holds nest; release is idempotent.
func (r *Registry[T]) Hold(id string) (value T, release func(), ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, held := r.held[id]
	if !held {
		value, ok = r.lookup(id)
		if !ok {
			return value, func() {}, false
		}
		h = &heldItem[T]{value: value}
		r.held[id] = h
	}
	h.refs++

	var once sync.Once
	release = func() {
		once.Do(func() { r.release(id, h) })
	}
	return h.value, release, true
}

func (r *Registry[T]) release(id string, h *heldItem[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.held[id] != h {
		return
	}

	h.refs--
	if h.refs == 0 {
		delete(r.held, id)
		r.items.Set(id, h.value, r.ttl)
	}
}

// lookup finds id and extends its lifetime. r.mu must be held.
func (r *Registry[T]) lookup(id string) (T, bool) {
	if h, ok := r.held[id]; ok {
		r.items.Set(id, h.value, r.ttl)
		return h.value, true
	}

	var zero T
	raw, ok := r.items.Get(id)
	if !ok {
		return zero, false
	}

	value, ok := raw.(T)
	if !ok {
		return zero, false
	}

	r.items.Set(id, value, r.ttl)
	return value, true
}

func (r *Registry[T]) Delete(id string) {
	r.mu.Lock()
	delete(r.held, id)
	r.mu.Unlock()

	r.items.Delete(id)
}

func (r *Registry[T]) Len() int {
	return r.items.ItemCount()
}

// OnEvicted registers fn to run when a session expires or is deleted. A held
// session that expires in the cache is not reported.
func (r *Registry[T]) OnEvicted(fn func(id string, value T)) {
	r.items.OnEvicted(func(id string, raw any) {
		r.mu.Lock()
		_, held := r.held[id]
		r.mu.Unlock()

		if held {
			return
		}
		if value, ok := raw.(T); ok {
			fn(id, value)
		}
	})
}
