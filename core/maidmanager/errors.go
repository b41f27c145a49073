package maidmanager

import "errors"

// Internal errors. They never produce a client response.
var (
	ErrFailedToFindCachedRequest = errors.New("failed to find cached request")
	ErrUnexpectedRequest         = errors.New("unexpected request reached maid manager")
	ErrUnexpectedRefresh         = errors.New("unexpected refresh value")
)
