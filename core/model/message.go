package model

import (
	"fmt"

	"github.com/google/uuid"
)

// MessageID is chosen by the originator of a client operation and carried
// unchanged by every message the operation causes.
type MessageID = uuid.UUID

func NewMessageID() MessageID {
	return uuid.New()
}

type RequestKind uint8

const (
	PutRequest RequestKind = iota + 1
	GetRequest
	PostRequest
	DeleteRequest
)

func (k RequestKind) String() string {
	switch k {
	case PutRequest:
		return "Put"
	case GetRequest:
		return "Get"
	case PostRequest:
		return "Post"
	case DeleteRequest:
		return "Delete"
	default:
		return fmt.Sprintf("RequestKind(%d)", uint8(k))
	}
}

type RequestContent struct {
	Kind RequestKind
	Data Data
	ID   MessageID
}

type RequestMessage struct {
	Src     Authority
	Dst     Authority
	Content RequestContent
}

func NewPutRequest(src, dst Authority, data Data, id MessageID) RequestMessage {
	return RequestMessage{
		Src: src,
		Dst: dst,
		Content: RequestContent{
			Kind: PutRequest,
			Data: data,
			ID:   id,
		},
	}
}
