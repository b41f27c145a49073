package routing

import (
	"github.com/pyropy/vault/core/model"
	"github.com/pyropy/vault/lib/checksum"
)

// Routing is served by the routing gateway. Every call is a one-way delivery;
// the reply only acknowledges receipt.
type Routing interface {
	// PutRequest forwards a put to the group managing the destination.
	PutRequest(args *PutRequestArgs, reply *Ack) error
	// PutSuccess delivers a success response.
	PutSuccess(args *PutSuccessArgs, reply *Ack) error
	// PutFailure delivers a failure response.
	PutFailure(args *PutFailureArgs, reply *Ack) error
	// RefreshRequest broadcasts a refresh to the source authority's group.
	RefreshRequest(args *RefreshRequestArgs, reply *Ack) error
}

type PutRequestArgs struct {
	Src  model.Authority
	Dst  model.Authority
	Data model.Data
	ID   model.MessageID
}

type PutSuccessArgs struct {
	Src  model.Authority
	Dst  model.Authority
	Hash checksum.Digest
	ID   model.MessageID
}

type PutFailureArgs struct {
	Src                    model.Authority
	Dst                    model.Authority
	Request                model.RequestMessage
	ExternalErrorIndicator []byte
	ID                     model.MessageID
}

type RefreshRequestArgs struct {
	Src     model.Authority
	Content []byte
}

type Ack struct {
	Accepted bool
}
