package model

import (
	"encoding/binary"
	"fmt"
)

type DataKind uint8

const (
	ImmutableDataKind DataKind = iota + 1
	StructuredDataKind
	PlainDataKind
)

func (k DataKind) String() string {
	switch k {
	case ImmutableDataKind:
		return "Immutable"
	case StructuredDataKind:
		return "Structured"
	case PlainDataKind:
		return "Plain"
	default:
		return fmt.Sprintf("DataKind(%d)", uint8(k))
	}
}

// AccountCreationTag is the structured data type tag a client uses to open
// its account.
const AccountCreationTag uint64 = 0

// ImmutableData is content addressed by the hash of its value.
type ImmutableData struct {
	Value []byte
}

// StructuredData is mutable content addressed by its type tag and identifier.
type StructuredData struct {
	TypeTag    uint64
	Identifier XorName
	Version    uint64
	Data       []byte
}

type PlainData struct {
	Name  XorName
	Value []byte
}

// Data is the payload of a put. Exactly one of the pointers matching Kind is set.
type Data struct {
	Kind       DataKind
	Immutable  *ImmutableData  `json:",omitempty"`
	Structured *StructuredData `json:",omitempty"`
	Plain      *PlainData      `json:",omitempty"`
}

func NewImmutableData(value []byte) Data {
	return Data{Kind: ImmutableDataKind, Immutable: &ImmutableData{Value: value}}
}

func NewStructuredData(typeTag uint64, identifier XorName, data []byte) Data {
	return Data{
		Kind: StructuredDataKind,
		Structured: &StructuredData{
			TypeTag:    typeTag,
			Identifier: identifier,
			Data:       data,
		},
	}
}

func NewPlainData(name XorName, value []byte) Data {
	return Data{Kind: PlainDataKind, Plain: &PlainData{Name: name, Value: value}}
}

// Name is the content address the data tier stores the data under.
func (d Data) Name() XorName {
	switch {
	case d.Kind == ImmutableDataKind && d.Immutable != nil:
		return NameOf(d.Immutable.Value)
	case d.Kind == StructuredDataKind && d.Structured != nil:
		b := make([]byte, 0, len(d.Structured.Identifier)+8)
		b = append(b, d.Structured.Identifier[:]...)
		b = binary.BigEndian.AppendUint64(b, d.Structured.TypeTag)
		return NameOf(b)
	case d.Kind == PlainDataKind && d.Plain != nil:
		return d.Plain.Name
	default:
		return XorName{}
	}
}

// PayloadSize is the number of content bytes carried.
func (d Data) PayloadSize() uint64 {
	switch {
	case d.Immutable != nil:
		return uint64(len(d.Immutable.Value))
	case d.Structured != nil:
		return uint64(len(d.Structured.Data))
	case d.Plain != nil:
		return uint64(len(d.Plain.Value))
	default:
		return 0
	}
}
