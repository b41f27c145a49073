package cache

import "time"

// LRUNode is an entry in the recency list. left.Next is the least recently
// used node, right.Prev the most recently used one.
type LRUNode[K comparable, V any] struct {
	Key       K
	Val       V
	ExpiresAt time.Time

	Prev *LRUNode[K, V]
	Next *LRUNode[K, V]
}

// LRU is a cache bounded both by entry count and by entry age. Capacity
// overflow evicts the least recently touched entry; entries older than the
// TTL are invisible to readers and reclaimed on access or by Sweep.
//
// LRU is not safe for concurrent use.
type LRU[K comparable, V any] struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time
	cache    map[K]*LRUNode[K, V]

	left  *LRUNode[K, V]
	right *LRUNode[K, V]
}

type Option[K comparable, V any] func(*LRU[K, V])

// WithClock replaces time.Now as the cache's time source.
func WithClock[K comparable, V any](now func() time.Time) Option[K, V] {
	return func(l *LRU[K, V]) {
		l.now = now
	}
}

// NewLRU returns a cache holding at most capacity entries for at most ttl.
// A non-positive ttl disables expiry.
func NewLRU[K comparable, V any](capacity int, ttl time.Duration, opts ...Option[K, V]) *LRU[K, V] {
	left, right := &LRUNode[K, V]{}, &LRUNode[K, V]{}

	left.Next = right
	right.Prev = left

	l := &LRU[K, V]{
		left:     left,
		right:    right,
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		cache:    make(map[K]*LRUNode[K, V]),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Put inserts value under key and returns the live value it replaced, if any.
func (l *LRU[K, V]) Put(key K, value V) (V, bool) {
	var prev V
	replaced := false

	node, exists := l.cache[key]
	if exists {
		l.deleteNode(node)
		delete(l.cache, key)
		if !l.expired(node) {
			prev, replaced = node.Val, true
		}
	}

	node = &LRUNode[K, V]{Key: key, Val: value}
	if l.ttl > 0 {
		node.ExpiresAt = l.now().Add(l.ttl)
	}

	l.cache[key] = node
	l.insertNode(node)

	for l.CapacityReached() {
		l.Evict()
	}

	return prev, replaced
}

// Get returns the value under key and marks it as recently used.
func (l *LRU[K, V]) Get(key K) (V, bool) {
	var zero V

	node, exists := l.cache[key]
	if !exists {
		return zero, false
	}

	if l.expired(node) {
		l.remove(node)
		return zero, false
	}

	l.deleteNode(node)
	l.insertNode(node)

	return node.Val, true
}

// Remove deletes key and returns its value if it was present and unexpired.
func (l *LRU[K, V]) Remove(key K) (V, bool) {
	var zero V

	node, exists := l.cache[key]
	if !exists {
		return zero, false
	}

	l.remove(node)
	if l.expired(node) {
		return zero, false
	}

	return node.Val, true
}

// Sweep drops every expired entry and returns how many were dropped.
func (l *LRU[K, V]) Sweep() int {
	if l.ttl <= 0 {
		return 0
	}

	swept := 0
	for node := l.left.Next; node != l.right; {
		next := node.Next
		if l.expired(node) {
			l.remove(node)
			swept++
		}
		node = next
	}

	return swept
}

// Len reports the number of stored entries, including expired ones not yet swept.
func (l *LRU[K, V]) Len() int {
	return len(l.cache)
}

func (l *LRU[K, V]) CapacityReached() bool {
	return l.capacity > 0 && len(l.cache) > l.capacity
}

func (l *LRU[K, V]) Evict() {
	lru := l.left.Next
	if lru == l.right {
		return
	}

	l.remove(lru)
}

func (l *LRU[K, V]) expired(node *LRUNode[K, V]) bool {
	if l.ttl <= 0 {
		return false
	}

	return !l.now().Before(node.ExpiresAt)
}

func (l *LRU[K, V]) remove(node *LRUNode[K, V]) {
	l.deleteNode(node)
	delete(l.cache, node.Key)
}

func (l *LRU[K, V]) insertNode(node *LRUNode[K, V]) {
	prev, next := l.right.Prev, l.right

	node.Prev = prev
	node.Next = next

	prev.Next = node
	next.Prev = node
}

func (l *LRU[K, V]) deleteNode(node *LRUNode[K, V]) {
	prev, next := node.Prev, node.Next

	prev.Next = next
	next.Prev = prev
}
