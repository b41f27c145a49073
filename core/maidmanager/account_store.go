package maidmanager

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	ds "github.com/ipfs/go-datastore"
	dsq "github.com/ipfs/go-datastore/query"
	"github.com/pyropy/vault/core/model"
)

var accountsPrefix = ds.NewKey("/accounts")

type NamedAccount struct {
	Name    model.XorName
	Account model.Account
}

// AccountStore maps client names to accounts.
type AccountStore struct {
	Accounts ds.Datastore
}

func NewAccountStore(store ds.Datastore) *AccountStore {
	return &AccountStore{
		Accounts: store,
	}
}

func accountKey(name model.XorName) ds.Key {
	return accountsPrefix.ChildString(name.String())
}

func (s *AccountStore) Get(ctx context.Context, name model.XorName) (model.Account, bool, error) {
	var account model.Account

	b, err := s.Accounts.Get(ctx, accountKey(name))
	if errors.Is(err, ds.ErrNotFound) {
		return account, false, nil
	}
	if err != nil {
		return account, false, fmt.Errorf("get account %s: %w", name.Short(), err)
	}

	err = json.Unmarshal(b, &account)
	if err != nil {
		return account, false, fmt.Errorf("decode account %s: %w", name.Short(), err)
	}

	return account, true, nil
}

func (s *AccountStore) Has(ctx context.Context, name model.XorName) (bool, error) {
	exists, err := s.Accounts.Has(ctx, accountKey(name))
	if err != nil {
		return false, fmt.Errorf("check account %s: %w", name.Short(), err)
	}

	return exists, nil
}

func (s *AccountStore) Put(ctx context.Context, name model.XorName, account model.Account) error {
	b, err := json.Marshal(account)
	if err != nil {
		return err
	}

	err = s.Accounts.Put(ctx, accountKey(name), b)
	if err != nil {
		return fmt.Errorf("put account %s: %w", name.Short(), err)
	}

	return nil
}

func (s *AccountStore) Delete(ctx context.Context, name model.XorName) error {
	err := s.Accounts.Delete(ctx, accountKey(name))
	if err != nil {
		return fmt.Errorf("delete account %s: %w", name.Short(), err)
	}

	return nil
}

func (s *AccountStore) All(ctx context.Context) ([]NamedAccount, error) {
	q := dsq.Query{Prefix: accountsPrefix.String()}
	accounts := make([]NamedAccount, 0)

	res, err := s.Accounts.Query(ctx, q)
	if err != nil {
		return accounts, err
	}
	defer res.Close()

	for {
		r, hasNext := res.NextSync()
		if !hasNext {
			break
		}
		if r.Error != nil {
			return accounts, r.Error
		}

		name, err := model.ParseXorName(ds.RawKey(r.Key).BaseNamespace())
		if err != nil {
			return accounts, err
		}

		var account model.Account
		err = json.Unmarshal(r.Value, &account)
		if err != nil {
			return accounts, err
		}

		accounts = append(accounts, NamedAccount{Name: name, Account: account})
	}

	return accounts, nil
}
