package model

import (
	"errors"
	"fmt"
)

type ClientErrorKind string

const (
	NoSuchAccount     ClientErrorKind = "NoSuchAccount"
	AccountExists     ClientErrorKind = "AccountExists"
	InsufficientQuota ClientErrorKind = "InsufficientQuota"
	NoSuchData        ClientErrorKind = "NoSuchData"
	DataExists        ClientErrorKind = "DataExists"
	InvalidOperation  ClientErrorKind = "InvalidOperation"
	NetworkOther      ClientErrorKind = "NetworkOther"
)

// ClientError is a failure reported back to the client verbatim. It travels
// serialized in failure responses.
type ClientError struct {
	Kind   ClientErrorKind `json:"kind"`
	Detail string          `json:"detail,omitempty"`
}

var (
	ErrNoSuchAccount     = &ClientError{Kind: NoSuchAccount}
	ErrAccountExists     = &ClientError{Kind: AccountExists}
	ErrInsufficientQuota = &ClientError{Kind: InsufficientQuota}
)

func NewClientError(kind ClientErrorKind, detail string) *ClientError {
	return &ClientError{Kind: kind, Detail: detail}
}

func (e *ClientError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("client error: %s", e.Kind)
	}

	return fmt.Sprintf("client error: %s: %s", e.Kind, e.Detail)
}

// Is matches client errors of the same kind.
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	if !ok {
		return false
	}

	return t.Kind == e.Kind
}

// IsClientError reports whether err carries a ClientError.
func IsClientError(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce)
}
