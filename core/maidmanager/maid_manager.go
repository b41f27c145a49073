package maidmanager

import (
	"context"
	"errors"
	"time"

	ds "github.com/ipfs/go-datastore"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/pyropy/vault/core/model"
	"github.com/pyropy/vault/core/routing"
	"go.uber.org/zap"
)

// MaidManager is the account-management persona of a vault. It keeps the
// accounts of the clients whose close group this node belongs to.
//
// MaidManager is not safe for concurrent use; events must be handled one at
// a time.
type MaidManager struct {
	cfg      Config
	router   routing.Router
	accounts *AccountStore
	requests *RequestCache
	log      *zap.SugaredLogger
	metrics  *metrics

	registerer prometheus.Registerer
	now        func() time.Time
}

type Option func(*MaidManager)

func WithLogger(log *zap.SugaredLogger) Option {
	return func(m *MaidManager) {
		m.log = log
	}
}

func WithRegisterer(reg prometheus.Registerer) Option {
	return func(m *MaidManager) {
		m.registerer = reg
	}
}

// WithClock sets the time source used to expire cached requests.
func WithClock(now func() time.Time) Option {
	return func(m *MaidManager) {
		m.now = now
	}
}

func New(cfg Config, router routing.Router, store ds.Datastore, opts ...Option) *MaidManager {
	m := &MaidManager{
		cfg:      cfg,
		router:   router,
		accounts: NewAccountStore(store),
		log:      zap.NewNop().Sugar(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	if bounded := cfg.bounded(); bounded != cfg {
		m.log.Warnw("startup", "status", "unbounded request cache, using defaults",
			"ttl", cfg.RequestCacheTTL, "capacity", cfg.RequestCacheCapacity)
		m.cfg = bounded
	}

	m.requests = NewRequestCache(m.cfg.RequestCacheCapacity, m.cfg.RequestCacheTTL, m.now)
	m.metrics = newMetrics(m.registerer)

	return m
}

// Account returns the stored account for a client.
func (m *MaidManager) Account(ctx context.Context, name model.XorName) (model.Account, bool, error) {
	return m.accounts.Get(ctx, name)
}

// PendingRequests reports how many forwarded puts await completion.
func (m *MaidManager) PendingRequests() int {
	return m.requests.Len()
}

// SweepRequests drops cached requests whose TTL has passed. Their charge
// stays with the client until a refresh rebalances the account.
func (m *MaidManager) SweepRequests() int {
	swept := m.requests.Sweep()
	if swept > 0 {
		m.log.Warnw("request-cache", "status", "expired without completion", "count", swept)
		m.metrics.cacheExpired.Add(float64(swept))
	}
	m.metrics.pending.Set(float64(m.requests.Len()))

	return swept
}

func (m *MaidManager) replyWithPutFailure(request model.RequestMessage, err error) error {
	var clientErr *model.ClientError
	if !errors.As(err, &clientErr) {
		return err
	}

	src := request.Dst
	dst := request.Src
	externalErrorIndicator, err := model.Serialize(clientErr)
	if err != nil {
		return err
	}

	if err := m.router.SendPutFailure(src, dst, request, externalErrorIndicator, request.Content.ID); err != nil {
		m.log.Warnw("put", "status", "failed to send put failure", "id", request.Content.ID, "error", err)
	}

	return nil
}
