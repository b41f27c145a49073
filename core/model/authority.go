package model

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
)

type AuthorityKind uint8

const (
	ClientAuthority AuthorityKind = iota + 1
	ClientManagerAuthority
	NaeManagerAuthority
	NodeManagerAuthority
	ManagedNodeAuthority
)

func (k AuthorityKind) String() string {
	switch k {
	case ClientAuthority:
		return "Client"
	case ClientManagerAuthority:
		return "ClientManager"
	case NaeManagerAuthority:
		return "NaeManager"
	case NodeManagerAuthority:
		return "NodeManager"
	case ManagedNodeAuthority:
		return "ManagedNode"
	default:
		return fmt.Sprintf("AuthorityKind(%d)", uint8(k))
	}
}

// PublicKey is a client's ed25519 signing key.
type PublicKey [ed25519.PublicKeySize]byte

func (k PublicKey) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(k[:])), nil
}

func (k *PublicKey) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}
	if len(b) != len(k) {
		return fmt.Errorf("public key: expected %d bytes, got %d", len(k), len(b))
	}

	copy(k[:], b)
	return nil
}

// Authority is the source or destination of a message. Group authorities are
// addressed by the name they manage; a client is addressed through the proxy
// node it is connected to.
type Authority struct {
	Kind      AuthorityKind
	Name      XorName
	ClientKey PublicKey
}

func NewClient(key ed25519.PublicKey, proxy XorName) Authority {
	a := Authority{Kind: ClientAuthority, Name: proxy}
	copy(a.ClientKey[:], key)

	return a
}

func NewClientManager(name XorName) Authority {
	return Authority{Kind: ClientManagerAuthority, Name: name}
}

func NewNaeManager(name XorName) Authority {
	return Authority{Kind: NaeManagerAuthority, Name: name}
}

func NewNodeManager(name XorName) Authority {
	return Authority{Kind: NodeManagerAuthority, Name: name}
}

// ClientName is the account address of the client behind a. For anything but
// a client authority it is the authority's own name.
func ClientName(a Authority) XorName {
	if a.Kind == ClientAuthority {
		return NameOf(a.ClientKey[:])
	}

	return a.Name
}

func (a Authority) String() string {
	return fmt.Sprintf("%s(%s)", a.Kind, a.Name.Short())
}
