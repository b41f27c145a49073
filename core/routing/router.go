package routing

import (
	"github.com/pyropy/vault/core/model"
	"github.com/pyropy/vault/lib/checksum"
)

// Router is the routing layer as seen by a persona. Sends are fire-and-forget:
// a nil error only means the message was handed over for delivery.
type Router interface {
	SendPutRequest(src, dst model.Authority, data model.Data, id model.MessageID) error
	SendPutSuccess(src, dst model.Authority, hash checksum.Digest, id model.MessageID) error
	SendPutFailure(src, dst model.Authority, request model.RequestMessage, externalErrorIndicator []byte, id model.MessageID) error
	SendRefreshRequest(src model.Authority, content []byte) error

	// CloseGroup returns the group responsible for name, or nil if this node
	// is not part of it.
	CloseGroup(name model.XorName) ([]model.XorName, error)
}
