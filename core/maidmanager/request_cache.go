package maidmanager

import (
	"time"

	"github.com/pyropy/vault/core/model"
	"github.com/pyropy/vault/lib/cache"
)

// PendingPut is a forwarded put awaiting its outcome from the data tier.
type PendingPut struct {
	Request     model.RequestMessage
	Client      model.XorName
	Reservation model.Reservation
}

// RequestCache correlates completions with the requests that caused them.
type RequestCache struct {
	lru *cache.LRU[model.MessageID, PendingPut]
}

func NewRequestCache(capacity int, ttl time.Duration, now func() time.Time) *RequestCache {
	return &RequestCache{
		lru: cache.NewLRU[model.MessageID, PendingPut](capacity, ttl, cache.WithClock[model.MessageID, PendingPut](now)),
	}
}

// Register stores pending under id. A live entry already registered under id
// is replaced and returned.
func (c *RequestCache) Register(id model.MessageID, pending PendingPut) (PendingPut, bool) {
	return c.lru.Put(id, pending)
}

// Resolve consumes the entry for id. Each entry resolves at most once.
func (c *RequestCache) Resolve(id model.MessageID) (PendingPut, bool) {
	return c.lru.Remove(id)
}

func (c *RequestCache) Sweep() int {
	return c.lru.Sweep()
}

func (c *RequestCache) Len() int {
	return c.lru.Len()
}
