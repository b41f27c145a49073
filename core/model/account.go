package model

const (
	DefaultAccountSize uint64 = 1 << 30 // 1 GiB
	DefaultPayment     uint64 = 1 << 20 // 1 MiB
)

// Account is a client's storage quota. DataStored + SpaceAvailable stays
// constant across every debit that is later refunded in full.
type Account struct {
	DataStored     uint64 `json:"data_stored"`
	SpaceAvailable uint64 `json:"space_available"`
}

func NewAccount(size uint64) Account {
	return Account{SpaceAvailable: size}
}

func DefaultAccount() Account {
	return NewAccount(DefaultAccountSize)
}

// Size is the total quota the account was opened with.
func (a Account) Size() uint64 {
	return a.DataStored + a.SpaceAvailable
}

// Debit charges size bytes to the account. It fails without side effects when
// the remaining space cannot cover it.
func (a *Account) Debit(size uint64) error {
	if size > a.SpaceAvailable {
		return ErrInsufficientQuota
	}

	a.DataStored += size
	a.SpaceAvailable -= size

	return nil
}

// Refund returns size bytes to the account, never more than is charged.
func (a *Account) Refund(size uint64) {
	if a.DataStored < size {
		a.SpaceAvailable += a.DataStored
		a.DataStored = 0
		return
	}

	a.DataStored -= size
	a.SpaceAvailable += size
}

// Reservation is a charge taken when a put is forwarded. It is either kept
// when the put succeeds or released when it fails.
type Reservation struct {
	Size uint64 `json:"size"`
}

func (a *Account) Reserve(size uint64) (Reservation, error) {
	if err := a.Debit(size); err != nil {
		return Reservation{}, err
	}

	return Reservation{Size: size}, nil
}

// Release refunds the reservation to a.
func (r Reservation) Release(a *Account) {
	a.Refund(r.Size)
}
