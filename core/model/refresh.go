package model

import "fmt"

type RefreshValueKind uint8

const (
	MaidManagerAccountRefresh RefreshValueKind = iota + 1
)

func (k RefreshValueKind) String() string {
	switch k {
	case MaidManagerAccountRefresh:
		return "MaidManagerAccount"
	default:
		return fmt.Sprintf("RefreshValueKind(%d)", uint8(k))
	}
}

type RefreshValue struct {
	Kind    RefreshValueKind
	Account *Account `json:",omitempty"`
}

// Refresh carries a persona's state for one name to the rest of its group.
type Refresh struct {
	Name  XorName
	Value RefreshValue
}

func NewAccountRefresh(name XorName, account Account) Refresh {
	return Refresh{
		Name: name,
		Value: RefreshValue{
			Kind:    MaidManagerAccountRefresh,
			Account: &account,
		},
	}
}
