package client

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"

	ds "github.com/ipfs/go-datastore"
	dslvl "github.com/ipfs/go-ds-leveldb"
)

var clientKey = ds.NewKey("/keys/client")

var (
	ErrInvalidKey = errors.New("invalid client key")
)

// KeyStore keeps the client's signing key between invocations.
type KeyStore struct {
	Keys ds.Datastore
}

func NewKeyStore(dsPath string) (*KeyStore, error) {
	p := fmt.Sprintf("%s/keys", dsPath)
	store, err := dslvl.NewDatastore(p, nil)
	if err != nil {
		return nil, err
	}

	return &KeyStore{
		Keys: store,
	}, nil
}

// ClientKey returns the stored key, generating and storing one on first use.
func (k *KeyStore) ClientKey(ctx context.Context) (ed25519.PrivateKey, error) {
	seed, err := k.Keys.Get(ctx, clientKey)
	if errors.Is(err, ds.ErrNotFound) {
		return k.generate(ctx)
	}
	if err != nil {
		return nil, err
	}

	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: seed is %d bytes", ErrInvalidKey, len(seed))
	}

	return ed25519.NewKeyFromSeed(seed), nil
}

func (k *KeyStore) generate(ctx context.Context) (ed25519.PrivateKey, error) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}

	err = k.Keys.Put(ctx, clientKey, key.Seed())
	if err != nil {
		return nil, err
	}

	return key, nil
}

func (k *KeyStore) Close() error {
	return k.Keys.Close()
}
