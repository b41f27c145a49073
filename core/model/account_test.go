package model

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAccount(t *testing.T) {
	a := DefaultAccount()
	assert.Equal(t, uint64(0), a.DataStored)
	assert.Equal(t, DefaultAccountSize, a.SpaceAvailable)
}

func TestAccountDebit(t *testing.T) {
	tests := []struct {
		name      string
		available uint64
		size      uint64
		wantErr   bool
	}{
		{name: "less than available", available: 10, size: 4},
		{name: "exactly available", available: 10, size: 10},
		{name: "zero", available: 0, size: 0},
		{name: "more than available", available: 10, size: 11, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAccount(tt.available)
			err := a.Debit(tt.size)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInsufficientQuota)
				assert.Equal(t, NewAccount(tt.available), a, "failed debit must not touch the account")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.size, a.DataStored)
			assert.Equal(t, tt.available-tt.size, a.SpaceAvailable)
		})
	}
}

func TestAccountRefundClamps(t *testing.T) {
	a := NewAccount(100)
	require.NoError(t, a.Debit(30))

	a.Refund(50)
	assert.Equal(t, uint64(0), a.DataStored)
	assert.Equal(t, uint64(100), a.SpaceAvailable)

	a.Refund(10)
	assert.Equal(t, NewAccount(100), a)
}

func TestAccountReservation(t *testing.T) {
	a := NewAccount(DefaultPayment)

	r, err := a.Reserve(DefaultPayment)
	require.NoError(t, err)
	assert.Equal(t, DefaultPayment, r.Size)

	_, err = a.Reserve(1)
	assert.ErrorIs(t, err, ErrInsufficientQuota)

	r.Release(&a)
	assert.Equal(t, NewAccount(DefaultPayment), a)
}

func TestAccountSizeConserved(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	a := NewAccount(1 << 20)

	var outstanding []uint64
	for i := 0; i < 1000; i++ {
		if len(outstanding) > 0 && rng.Intn(2) == 0 {
			j := rng.Intn(len(outstanding))
			a.Refund(outstanding[j])
			outstanding = append(outstanding[:j], outstanding[j+1:]...)
		} else {
			size := uint64(rng.Intn(1 << 16))
			if err := a.Debit(size); err == nil {
				outstanding = append(outstanding, size)
			}
		}

		require.Equal(t, uint64(1<<20), a.Size())
	}

	for _, size := range outstanding {
		a.Refund(size)
	}
	assert.Equal(t, NewAccount(1<<20), a)
}
