package maidmanager

import (
	"context"
	"fmt"

	"github.com/pyropy/vault/core/model"
	"github.com/pyropy/vault/lib/checksum"
)

// HandlePutSuccess answers the client once the data tier has stored its put.
// The charge taken when the put was forwarded is kept.
func (m *MaidManager) HandlePutSuccess(ctx context.Context, id model.MessageID) error {
	pending, ok := m.requests.Resolve(id)
	if !ok {
		m.metrics.completions.WithLabelValues("unknown").Inc()
		return fmt.Errorf("%w: %s", ErrFailedToFindCachedRequest, id)
	}
	m.metrics.completions.WithLabelValues("success").Inc()
	m.metrics.pending.Set(float64(m.requests.Len()))

	serialized, err := model.Serialize(pending.Request)
	if err != nil {
		return err
	}

	messageHash := checksum.Sum(serialized)
	src := pending.Request.Dst
	dst := pending.Request.Src
	if err := m.router.SendPutSuccess(src, dst, messageHash, id); err != nil {
		m.log.Warnw("put-success", "status", "failed to send put success", "id", id, "error", err)
	}

	return nil
}

// HandlePutFailure refunds the client for a put the data tier rejected and
// relays the data tier's error to the client.
func (m *MaidManager) HandlePutFailure(ctx context.Context, id model.MessageID, externalErrorIndicator []byte) error {
	pending, ok := m.requests.Resolve(id)
	if !ok {
		m.metrics.completions.WithLabelValues("unknown").Inc()
		return fmt.Errorf("%w: %s", ErrFailedToFindCachedRequest, id)
	}
	m.metrics.completions.WithLabelValues("failure").Inc()
	m.metrics.pending.Set(float64(m.requests.Len()))

	account, found, err := m.accounts.Get(ctx, pending.Client)
	if err != nil {
		m.logLostReservation(id, pending, err)
		return err
	}
	if !found {
		// Account moved away on churn while the put was in flight.
		m.log.Debugw("put-failure", "status", "account gone, skipping refund", "id", id, "client", pending.Client.Short())
		return nil
	}

	pending.Reservation.Release(&account)
	err = m.accounts.Put(ctx, pending.Client, account)
	if err != nil {
		m.logLostReservation(id, pending, err)
		return err
	}
	m.metrics.refunded.Add(float64(pending.Reservation.Size))

	clientErr, err := model.Deserialize[model.ClientError](externalErrorIndicator)
	if err != nil {
		return err
	}
	if clientErr.Kind == "" {
		return fmt.Errorf("%w: client error without kind", model.ErrSerialization)
	}

	m.log.Infow("put-failure", "status", "refunded", "id", id, "client", pending.Client.Short(), "error", &clientErr)
	return m.replyWithPutFailure(pending.Request, &clientErr)
}

// logLostReservation records a refund that could not be applied. The pending
// entry is already consumed, so the charge stays on the account.
func (m *MaidManager) logLostReservation(id model.MessageID, pending PendingPut, err error) {
	m.log.Errorw("put-failure", "status", "reservation lost", "id", id,
		"client", pending.Client.Short(), "size", pending.Reservation.Size, "error", err)
}
