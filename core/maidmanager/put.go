package maidmanager

import (
	"context"
	"fmt"

	"github.com/pyropy/vault/core/model"
)

// HandlePut charges the client for a put and forwards it to the data tier.
// Client-level rejections are answered with a failure response and returned
// as *model.ClientError; any other error is internal.
func (m *MaidManager) HandlePut(ctx context.Context, request model.RequestMessage) error {
	if request.Content.Kind != model.PutRequest {
		return fmt.Errorf("%w: %s request", ErrUnexpectedRequest, request.Content.Kind)
	}

	data := request.Content.Data
	switch {
	case data.Kind == model.ImmutableDataKind && data.Immutable != nil:
		return m.handlePutImmutableData(ctx, request)
	case data.Kind == model.StructuredDataKind && data.Structured != nil:
		return m.handlePutStructuredData(ctx, request)
	default:
		return fmt.Errorf("%w: put of %s data", ErrUnexpectedRequest, data.Kind)
	}
}

func (m *MaidManager) handlePutImmutableData(ctx context.Context, request model.RequestMessage) error {
	clientName := model.ClientName(request.Src)
	m.log.Debugw("put", "event", "immutable data", "data", request.Content.Data.Name().Short(), "client", clientName.Short())

	return m.forwardPutRequest(ctx, clientName, request)
}

func (m *MaidManager) handlePutStructuredData(ctx context.Context, request model.RequestMessage) error {
	clientName := model.ClientName(request.Src)
	typeTag := request.Content.Data.Structured.TypeTag
	m.log.Debugw("put", "event", "structured data", "data", request.Content.Data.Name().Short(), "client", clientName.Short(), "typeTag", typeTag)

	// Account creation: the account must not exist yet.
	if typeTag == model.AccountCreationTag {
		exists, err := m.accounts.Has(ctx, clientName)
		if err != nil {
			return err
		}

		if exists {
			m.metrics.puts.WithLabelValues("account_exists").Inc()
			if err := m.replyWithPutFailure(request, model.ErrAccountExists); err != nil {
				return err
			}
			return model.ErrAccountExists
		}

		err = m.accounts.Put(ctx, clientName, model.NewAccount(m.cfg.AccountSize))
		if err != nil {
			return err
		}

		m.log.Infow("put", "status", "account created", "client", clientName.Short())
	}

	return m.forwardPutRequest(ctx, clientName, request)
}

func (m *MaidManager) forwardPutRequest(ctx context.Context, clientName model.XorName, request model.RequestMessage) error {
	data := request.Content.Data
	id := request.Content.ID

	account, found, err := m.accounts.Get(ctx, clientName)
	if err != nil {
		return err
	}

	var reservation model.Reservation
	var clientErr error = model.ErrNoSuchAccount
	if found {
		reservation, clientErr = account.Reserve(m.charge(data))
	}

	if clientErr != nil {
		m.log.Infow("put", "status", "rejected", "data", data.Name().Short(), "client", clientName.Short(), "error", clientErr)
		m.metrics.puts.WithLabelValues("rejected").Inc()
		if err := m.replyWithPutFailure(request, clientErr); err != nil {
			return err
		}
		return clientErr
	}

	err = m.accounts.Put(ctx, clientName, account)
	if err != nil {
		return err
	}

	src := request.Dst
	dst := model.NewNaeManager(data.Name())
	m.log.Debugw("put", "status", "forwarding", "dst", dst, "id", id)
	if err := m.router.SendPutRequest(src, dst, data, id); err != nil {
		m.log.Warnw("put", "status", "failed to forward", "dst", dst, "id", id, "error", err)
	}

	pending := PendingPut{
		Request:     request,
		Client:      clientName,
		Reservation: reservation,
	}
	if prior, replaced := m.requests.Register(id, pending); replaced {
		m.log.Errorw("request-cache", "status", "overwrote existing cached request", "id", id, "client", prior.Client.Short())
		m.metrics.cacheCollisions.Inc()
	}

	m.metrics.puts.WithLabelValues("forwarded").Inc()
	m.metrics.pending.Set(float64(m.requests.Len()))

	return nil
}

func (m *MaidManager) charge(data model.Data) uint64 {
	if m.cfg.ChargeByPayload {
		return data.PayloadSize()
	}

	return m.cfg.PaymentPerPut
}
