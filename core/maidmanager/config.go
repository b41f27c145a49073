package maidmanager

import (
	"time"

	"github.com/pyropy/vault/core/model"
)

const (
	DefaultRequestCacheTTL      = 5 * time.Minute
	DefaultRequestCacheCapacity = 1000
)

type Config struct {
	// AccountSize is the quota a newly created account starts with.
	AccountSize uint64
	// PaymentPerPut is charged for every accepted put.
	PaymentPerPut uint64
	// ChargeByPayload charges the payload size of each put instead of PaymentPerPut.
	ChargeByPayload bool

	RequestCacheTTL      time.Duration
	RequestCacheCapacity int
}

func DefaultConfig() Config {
	return Config{
		AccountSize:          model.DefaultAccountSize,
		PaymentPerPut:        model.DefaultPayment,
		RequestCacheTTL:      DefaultRequestCacheTTL,
		RequestCacheCapacity: DefaultRequestCacheCapacity,
	}
}

// bounded returns c with non-positive request cache bounds replaced by the
// defaults. The cache must be limited by both age and size.
func (c Config) bounded() Config {
	if c.RequestCacheTTL <= 0 {
		c.RequestCacheTTL = DefaultRequestCacheTTL
	}
	if c.RequestCacheCapacity <= 0 {
		c.RequestCacheCapacity = DefaultRequestCacheCapacity
	}

	return c
}
