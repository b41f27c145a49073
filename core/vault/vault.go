package vault

import (
	"context"
	"errors"
	"time"

	"github.com/pyropy/vault/core/maidmanager"
	"github.com/pyropy/vault/core/model"
	"github.com/pyropy/vault/core/routing"
	"go.uber.org/zap"
)

var (
	ErrStopped = errors.New("vault stopped")
)

type event struct {
	name   string
	apply  func(ctx context.Context) error
	result chan error
}

// Vault serializes every event addressed to its personas. Events are applied
// one at a time, in arrival order, by Run.
type Vault struct {
	maidManager *maidmanager.MaidManager
	membership  *routing.Membership

	events  chan event
	stopped chan struct{}
	log     *zap.SugaredLogger
}

func New(maidManager *maidmanager.MaidManager, membership *routing.Membership, log *zap.SugaredLogger) *Vault {
	return &Vault{
		maidManager: maidManager,
		membership:  membership,
		events:      make(chan event),
		stopped:     make(chan struct{}),
		log:         log,
	}
}

// Run applies submitted events until ctx is done.
func (v *Vault) Run(ctx context.Context) error {
	defer close(v.stopped)

	for {
		select {
		case ev := <-v.events:
			err := ev.apply(ctx)
			v.logResult(ev.name, err)
			ev.result <- err
		case <-ctx.Done():
			v.log.Infow("shutdown", "status", "event loop stopped")
			return nil
		}
	}
}

func (v *Vault) HandlePut(ctx context.Context, request model.RequestMessage) error {
	return v.submit(ctx, "put", func(ctx context.Context) error {
		return v.maidManager.HandlePut(ctx, request)
	})
}

func (v *Vault) HandlePutSuccess(ctx context.Context, id model.MessageID) error {
	return v.submit(ctx, "put-success", func(ctx context.Context) error {
		return v.maidManager.HandlePutSuccess(ctx, id)
	})
}

func (v *Vault) HandlePutFailure(ctx context.Context, id model.MessageID, externalErrorIndicator []byte) error {
	return v.submit(ctx, "put-failure", func(ctx context.Context) error {
		return v.maidManager.HandlePutFailure(ctx, id, externalErrorIndicator)
	})
}

func (v *Vault) HandleRefresh(ctx context.Context, content []byte) error {
	return v.submit(ctx, "refresh", func(ctx context.Context) error {
		return v.maidManager.HandleRefreshMessage(ctx, content)
	})
}

// HandleChurn installs the routing layer's new view of the network, if one is
// given, and reconciles accounts against it.
func (v *Vault) HandleChurn(ctx context.Context, nodes []model.XorName) error {
	return v.submit(ctx, "churn", func(ctx context.Context) error {
		if v.membership != nil && nodes != nil {
			v.membership.Update(nodes)
		}

		return v.maidManager.HandleChurn(ctx)
	})
}

func (v *Vault) SweepRequests(ctx context.Context) (int, error) {
	swept := 0
	err := v.submit(ctx, "sweep", func(context.Context) error {
		swept = v.maidManager.SweepRequests()
		return nil
	})

	return swept, err
}

// StartSweeper periodically reclaims expired cached requests until ctx is done.
func (v *Vault) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_, err := v.SweepRequests(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				v.log.Warnw("sweep", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (v *Vault) submit(ctx context.Context, name string, apply func(ctx context.Context) error) error {
	ev := event{
		name:   name,
		apply:  apply,
		result: make(chan error, 1),
	}

	select {
	case v.events <- ev:
	case <-v.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-ev.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (v *Vault) logResult(name string, err error) {
	switch {
	case err == nil:
	case model.IsClientError(err):
		v.log.Infow("event", "event", name, "status", "rejected", "error", err)
	default:
		v.log.Errorw("event", "event", name, "status", "failed", "error", err)
	}
}
