// Package routingtest provides a Router that records outbound traffic
// instead of delivering it.
package routingtest

import (
	"github.com/pyropy/vault/core/model"
	"github.com/pyropy/vault/lib/checksum"
	routingRPC "github.com/pyropy/vault/rpc/routing"
)

type Router struct {
	PutRequests     []routingRPC.PutRequestArgs
	PutSuccesses    []routingRPC.PutSuccessArgs
	PutFailures     []routingRPC.PutFailureArgs
	RefreshRequests []routingRPC.RefreshRequestArgs

	// DefaultGroup is returned for names without an explicit group. A nil
	// DefaultGroup means this node is responsible for nothing by default.
	DefaultGroup []model.XorName

	groups map[model.XorName][]model.XorName
	errs   map[model.XorName]error
}

// NewRouter returns a router that reports this node as responsible for every name.
func NewRouter() *Router {
	return &Router{
		DefaultGroup: []model.XorName{model.RandomXorName()},
		groups:       make(map[model.XorName][]model.XorName),
		errs:         make(map[model.XorName]error),
	}
}

// SetCloseGroup fixes the answer for name; a nil group means not responsible.
func (r *Router) SetCloseGroup(name model.XorName, group []model.XorName) {
	delete(r.errs, name)
	r.groups[name] = group
}

func (r *Router) SetCloseGroupError(name model.XorName, err error) {
	r.errs[name] = err
}

func (r *Router) SendPutRequest(src, dst model.Authority, data model.Data, id model.MessageID) error {
	r.PutRequests = append(r.PutRequests, routingRPC.PutRequestArgs{Src: src, Dst: dst, Data: data, ID: id})
	return nil
}

func (r *Router) SendPutSuccess(src, dst model.Authority, hash checksum.Digest, id model.MessageID) error {
	r.PutSuccesses = append(r.PutSuccesses, routingRPC.PutSuccessArgs{Src: src, Dst: dst, Hash: hash, ID: id})
	return nil
}

func (r *Router) SendPutFailure(src, dst model.Authority, request model.RequestMessage, externalErrorIndicator []byte, id model.MessageID) error {
	r.PutFailures = append(r.PutFailures, routingRPC.PutFailureArgs{
		Src:                    src,
		Dst:                    dst,
		Request:                request,
		ExternalErrorIndicator: externalErrorIndicator,
		ID:                     id,
	})
	return nil
}

func (r *Router) SendRefreshRequest(src model.Authority, content []byte) error {
	r.RefreshRequests = append(r.RefreshRequests, routingRPC.RefreshRequestArgs{Src: src, Content: content})
	return nil
}

func (r *Router) CloseGroup(name model.XorName) ([]model.XorName, error) {
	if err, ok := r.errs[name]; ok {
		return nil, err
	}
	if group, ok := r.groups[name]; ok {
		return group, nil
	}

	return r.DefaultGroup, nil
}

// Reset forgets recorded traffic but keeps configured groups.
func (r *Router) Reset() {
	r.PutRequests = nil
	r.PutSuccesses = nil
	r.PutFailures = nil
	r.RefreshRequests = nil
}
