package routing

import (
	"context"
	"errors"
	"net/rpc"
	"sync"

	"github.com/pyropy/vault/core/model"
	"github.com/pyropy/vault/lib/checksum"
	routingRPC "github.com/pyropy/vault/rpc/routing"
	"go.uber.org/zap"
)

var (
	ErrGatewayClosed = errors.New("routing gateway connection closed")
)

// GatewayRouter hands outbound messages to a routing gateway over net/rpc and
// answers group queries from its local Membership.
type GatewayRouter struct {
	*Membership

	addr string
	log  *zap.SugaredLogger

	mu     sync.Mutex
	client *rpc.Client
	closed bool
	done   chan *rpc.Call
}

func NewGatewayRouter(addr string, membership *Membership, log *zap.SugaredLogger) *GatewayRouter {
	return &GatewayRouter{
		Membership: membership,
		addr:       addr,
		log:        log,
		done:       make(chan *rpc.Call, 128),
	}
}

func (g *GatewayRouter) SendPutRequest(src, dst model.Authority, data model.Data, id model.MessageID) error {
	args := &routingRPC.PutRequestArgs{
		Src:  src,
		Dst:  dst,
		Data: data,
		ID:   id,
	}

	return g.send("RoutingAPI.PutRequest", args)
}

func (g *GatewayRouter) SendPutSuccess(src, dst model.Authority, hash checksum.Digest, id model.MessageID) error {
	args := &routingRPC.PutSuccessArgs{
		Src:  src,
		Dst:  dst,
		Hash: hash,
		ID:   id,
	}

	return g.send("RoutingAPI.PutSuccess", args)
}

func (g *GatewayRouter) SendPutFailure(src, dst model.Authority, request model.RequestMessage, externalErrorIndicator []byte, id model.MessageID) error {
	args := &routingRPC.PutFailureArgs{
		Src:                    src,
		Dst:                    dst,
		Request:                request,
		ExternalErrorIndicator: externalErrorIndicator,
		ID:                     id,
	}

	return g.send("RoutingAPI.PutFailure", args)
}

func (g *GatewayRouter) SendRefreshRequest(src model.Authority, content []byte) error {
	args := &routingRPC.RefreshRequestArgs{
		Src:     src,
		Content: content,
	}

	return g.send("RoutingAPI.RefreshRequest", args)
}

// Start drains completed deliveries until ctx is done, logging failed ones.
func (g *GatewayRouter) Start(ctx context.Context) {
	for {
		select {
		case call := <-g.done:
			if call.Error == nil {
				continue
			}

			g.log.Warnw("routing", "status", "delivery failed", "method", call.ServiceMethod, "error", call.Error)
			if errors.Is(call.Error, rpc.ErrShutdown) {
				g.reset()
			}
		case <-ctx.Done():
			return
		}
	}
}

func (g *GatewayRouter) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.closed = true
	if g.client == nil {
		return nil
	}

	err := g.client.Close()
	g.client = nil
	return err
}

func (g *GatewayRouter) send(method string, args any) error {
	client, err := g.dial()
	if err != nil {
		g.log.Errorw("routing", "status", "gateway unreachable", "address", g.addr, "method", method, "error", err)
		return err
	}

	client.Go(method, args, &routingRPC.Ack{}, g.done)
	return nil
}

func (g *GatewayRouter) dial() (*rpc.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return nil, ErrGatewayClosed
	}
	if g.client != nil {
		return g.client, nil
	}

	client, err := rpc.DialHTTP("tcp", g.addr)
	if err != nil {
		return nil, err
	}

	g.client = client
	return client, nil
}

func (g *GatewayRouter) reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		_ = g.client.Close()
		g.client = nil
	}
}
