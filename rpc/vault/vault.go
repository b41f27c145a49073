package vault

import (
	"github.com/pyropy/vault/core/model"
)

// Vault is the inbound API a vault node serves to the routing layer.
type Vault interface {
	// HandlePut ...
	HandlePut(args *HandlePutArgs, reply *HandlePutReply) error
	// HandlePutSuccess ...
	HandlePutSuccess(args *HandlePutSuccessArgs, reply *HandlePutSuccessReply) error
	// HandlePutFailure ...
	HandlePutFailure(args *HandlePutFailureArgs, reply *HandlePutFailureReply) error
	// HandleRefresh ...
	HandleRefresh(args *HandleRefreshArgs, reply *HandleRefreshReply) error
	// HandleChurn ...
	HandleChurn(args *HandleChurnArgs, reply *HandleChurnReply) error
	// NodeName ...
	NodeName(args *NodeNameArgs, reply *NodeNameReply) error
}

type HandlePutArgs struct {
	Request model.RequestMessage
}

// HandlePutReply reports a client-level rejection. The client has already
// been sent a failure response when ClientError is set.
type HandlePutReply struct {
	Forwarded   bool
	ClientError *model.ClientError
}

type HandlePutSuccessArgs struct {
	ID model.MessageID
}

type HandlePutSuccessReply struct {
}

type HandlePutFailureArgs struct {
	ID                     model.MessageID
	ExternalErrorIndicator []byte
}

type HandlePutFailureReply struct {
}

type HandleRefreshArgs struct {
	Content []byte
}

type HandleRefreshReply struct {
}

// HandleChurnArgs carries the routing layer's current view of the network.
// Nodes replaces the vault's node table when Update is set; an empty list
// means this vault is the only node. Without Update the vault reconciles
// against the table it already has.
type HandleChurnArgs struct {
	Update bool
	Nodes  []model.XorName
}

type HandleChurnReply struct {
}

type NodeNameArgs struct {
}

// NodeNameReply names the vault; clients use it as their proxy.
type NodeNameReply struct {
	Name model.XorName
}
