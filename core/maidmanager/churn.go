package maidmanager

import (
	"context"
	"errors"
	"fmt"

	"github.com/pyropy/vault/core/model"
)

// HandleChurn keeps only the accounts this node is still responsible for and
// refreshes the rest of their close group with them. A name whose group
// cannot be determined is dropped.
func (m *MaidManager) HandleChurn(ctx context.Context) error {
	accounts, err := m.accounts.All(ctx)
	if err != nil {
		return err
	}

	var errs []error
	retained := 0
	for _, a := range accounts {
		group, err := m.router.CloseGroup(a.Name)
		switch {
		case err != nil:
			m.log.Errorw("churn", "status", "failed to get close group", "client", a.Name.Short(), "error", err)
		case group == nil:
			m.log.Debugw("churn", "status", "no longer a maid manager", "client", a.Name.Short())
		default:
			m.sendRefresh(a.Name, a.Account)
			retained++
			continue
		}

		if err := m.accounts.Delete(ctx, a.Name); err != nil {
			errs = append(errs, err)
			continue
		}
		m.metrics.churnDropped.Inc()
	}

	m.metrics.accounts.Set(float64(retained))
	m.log.Infow("churn", "status", "reconciled", "retained", retained, "dropped", len(accounts)-retained)

	return errors.Join(errs...)
}

// HandleRefresh stores an account received from another group member,
// replacing any local copy.
func (m *MaidManager) HandleRefresh(ctx context.Context, name model.XorName, account model.Account) error {
	m.metrics.refreshes.WithLabelValues("received").Inc()
	return m.accounts.Put(ctx, name, account)
}

// HandleRefreshMessage decodes a serialized refresh and applies it.
func (m *MaidManager) HandleRefreshMessage(ctx context.Context, content []byte) error {
	refresh, err := model.Deserialize[model.Refresh](content)
	if err != nil {
		return err
	}

	switch {
	case refresh.Value.Kind == model.MaidManagerAccountRefresh && refresh.Value.Account != nil:
		return m.HandleRefresh(ctx, refresh.Name, *refresh.Value.Account)
	default:
		return fmt.Errorf("%w: %s", ErrUnexpectedRefresh, refresh.Value.Kind)
	}
}

func (m *MaidManager) sendRefresh(name model.XorName, account model.Account) {
	src := model.NewClientManager(name)
	refresh := model.NewAccountRefresh(name, account)

	serialized, err := model.Serialize(refresh)
	if err != nil {
		m.log.Errorw("churn", "status", "failed to serialize refresh", "client", name.Short(), "error", err)
		return
	}

	m.log.Debugw("churn", "status", "sending refresh", "client", name.Short())
	if err := m.router.SendRefreshRequest(src, serialized); err != nil {
		m.log.Warnw("churn", "status", "failed to send refresh", "client", name.Short(), "error", err)
		return
	}
	m.metrics.refreshes.WithLabelValues("sent").Inc()
}
