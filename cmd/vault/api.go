package main

import (
	"context"
	"errors"
	"time"

	core "github.com/pyropy/vault/core/vault"
	"github.com/pyropy/vault/core/model"
	rpc "github.com/pyropy/vault/rpc/vault"
)

const requestTimeout = 30 * time.Second

type VaultAPI struct {
	ctx   context.Context
	self  model.XorName
	vault *core.Vault
}

var _ rpc.Vault = (*VaultAPI)(nil)

func NewVaultAPI(ctx context.Context, self model.XorName, vault *core.Vault) *VaultAPI {
	return &VaultAPI{
		ctx:   ctx,
		self:  self,
		vault: vault,
	}
}

func (a *VaultAPI) NodeName(_ *rpc.NodeNameArgs, reply *rpc.NodeNameReply) error {
	reply.Name = a.self
	return nil
}

// HandlePut ...
func (a *VaultAPI) HandlePut(args *rpc.HandlePutArgs, reply *rpc.HandlePutReply) error {
	log.Infow("rpc", "event", "VaultAPI.HandlePut", "id", args.Request.Content.ID, "src", args.Request.Src.Name.Short())
	ctx, cancel := context.WithTimeout(a.ctx, requestTimeout)
	defer cancel()

	err := a.vault.HandlePut(ctx, args.Request)

	var clientErr *model.ClientError
	if errors.As(err, &clientErr) {
		reply.ClientError = clientErr
		return nil
	}

	if err != nil {
		return err
	}

	reply.Forwarded = true

	return nil
}

// HandlePutSuccess ...
func (a *VaultAPI) HandlePutSuccess(args *rpc.HandlePutSuccessArgs, _ *rpc.HandlePutSuccessReply) error {
	log.Infow("rpc", "event", "VaultAPI.HandlePutSuccess", "id", args.ID)
	ctx, cancel := context.WithTimeout(a.ctx, requestTimeout)
	defer cancel()

	return a.vault.HandlePutSuccess(ctx, args.ID)
}

// HandlePutFailure ...
func (a *VaultAPI) HandlePutFailure(args *rpc.HandlePutFailureArgs, _ *rpc.HandlePutFailureReply) error {
	log.Infow("rpc", "event", "VaultAPI.HandlePutFailure", "id", args.ID)
	ctx, cancel := context.WithTimeout(a.ctx, requestTimeout)
	defer cancel()

	return a.vault.HandlePutFailure(ctx, args.ID, args.ExternalErrorIndicator)
}

func (a *VaultAPI) HandleRefresh(args *rpc.HandleRefreshArgs, _ *rpc.HandleRefreshReply) error {
	log.Infow("rpc", "event", "VaultAPI.HandleRefresh", "size", len(args.Content))
	ctx, cancel := context.WithTimeout(a.ctx, requestTimeout)
	defer cancel()

	return a.vault.HandleRefresh(ctx, args.Content)
}

// HandleChurn reconciles accounts against the node list carried by the churn
// event, installing it first when the event says so.
func (a *VaultAPI) HandleChurn(args *rpc.HandleChurnArgs, _ *rpc.HandleChurnReply) error {
	log.Infow("rpc", "event", "VaultAPI.HandleChurn", "update", args.Update, "nodes", len(args.Nodes))
	ctx, cancel := context.WithTimeout(a.ctx, requestTimeout)
	defer cancel()

	// gob decodes an empty list as nil
	nodes := args.Nodes
	if args.Update && nodes == nil {
		nodes = []model.XorName{}
	}

	return a.vault.HandleChurn(ctx, nodes)
}
