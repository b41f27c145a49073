package client

import (
	"context"
	"crypto/ed25519"
	"net/rpc"

	"github.com/pyropy/vault/core/model"
	"github.com/pyropy/vault/lib/logger"
	vaultRPC "github.com/pyropy/vault/rpc/vault"
)

var log, _ = logger.New("client")

type Client struct {
	*KeyStore

	RpcClient *rpc.Client
	// Proxy is the vault relaying the client's requests.
	Proxy model.XorName

	key ed25519.PrivateKey
}

func NewClient(ctx context.Context, vaultAddr string, keys *KeyStore) (*Client, error) {
	key, err := keys.ClientKey(ctx)
	if err != nil {
		return nil, err
	}

	rpcClient, err := rpc.DialHTTP("tcp", vaultAddr)
	if err != nil {
		return nil, err
	}

	c := &Client{
		KeyStore:  keys,
		RpcClient: rpcClient,
		key:       key,
	}

	var reply vaultRPC.NodeNameReply
	err = c.call(ctx, "VaultAPI.NodeName", &vaultRPC.NodeNameArgs{}, &reply)
	if err != nil {
		_ = rpcClient.Close()
		return nil, err
	}
	c.Proxy = reply.Name

	return c, nil
}

func (c *Client) PublicKey() ed25519.PublicKey {
	return c.key.Public().(ed25519.PublicKey)
}

// Name is the address of the client's account.
func (c *Client) Name() model.XorName {
	return model.ClientName(c.authority())
}

// CreateAccount asks the client's managers to open an account for it.
func (c *Client) CreateAccount(ctx context.Context) (model.MessageID, error) {
	data := model.NewStructuredData(model.AccountCreationTag, c.Name(), nil)
	return c.Put(ctx, data)
}

// Put submits data for storage, charged to the client's account. A rejected
// request is returned as a *model.ClientError.
func (c *Client) Put(ctx context.Context, data model.Data) (model.MessageID, error) {
	id := model.NewMessageID()
	src := c.authority()
	request := model.NewPutRequest(src, model.NewClientManager(model.ClientName(src)), data, id)

	var reply vaultRPC.HandlePutReply
	err := c.call(ctx, "VaultAPI.HandlePut", &vaultRPC.HandlePutArgs{Request: request}, &reply)
	if err != nil {
		return id, err
	}

	if reply.ClientError != nil {
		return id, reply.ClientError
	}

	log.Infow("put", "id", id, "name", data.Name().Short(), "forwarded", reply.Forwarded)

	return id, nil
}

// Churn tells the vault the network now consists of nodes besides itself.
func (c *Client) Churn(ctx context.Context, nodes []model.XorName) error {
	return c.call(ctx, "VaultAPI.HandleChurn", &vaultRPC.HandleChurnArgs{Update: true, Nodes: nodes}, &vaultRPC.HandleChurnReply{})
}

func (c *Client) Close() error {
	return c.RpcClient.Close()
}

func (c *Client) authority() model.Authority {
	return model.NewClient(c.PublicKey(), c.Proxy)
}

func (c *Client) call(ctx context.Context, method string, args any, reply any) error {
	call := c.RpcClient.Go(method, args, reply, make(chan *rpc.Call, 1))

	select {
	case <-call.Done:
		return call.Error
	case <-ctx.Done():
		return ctx.Err()
	}
}
