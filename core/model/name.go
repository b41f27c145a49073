package model

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/pyropy/vault/lib/checksum"
)

var ErrInvalidName = errors.New("invalid xor name")

// XorName is a fixed-width network address. Client, node and data names all
// live in the same space and are compared by XOR distance.
type XorName [checksum.Size]byte

// NameOf derives a name from arbitrary bytes.
func NameOf(data []byte) XorName {
	return XorName(checksum.Sum(data))
}

// RandomXorName returns a uniformly random name.
func RandomXorName() XorName {
	var n XorName
	if _, err := rand.Read(n[:]); err != nil {
		panic(err)
	}

	return n
}

func ParseXorName(s string) (XorName, error) {
	var n XorName

	b, err := hex.DecodeString(s)
	if err != nil {
		return n, fmt.Errorf("%w: %v", ErrInvalidName, err)
	}
	if len(b) != len(n) {
		return n, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidName, len(n), len(b))
	}

	copy(n[:], b)
	return n, nil
}

func (n XorName) String() string {
	return hex.EncodeToString(n[:])
}

// Short is a log-friendly prefix of the name.
func (n XorName) Short() string {
	return hex.EncodeToString(n[:4])
}

func (n XorName) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

func (n *XorName) UnmarshalText(text []byte) error {
	parsed, err := ParseXorName(string(text))
	if err != nil {
		return err
	}

	*n = parsed
	return nil
}

// CloserTo reports whether a is strictly closer to target than b.
func CloserTo(target, a, b XorName) bool {
	for i := range target {
		da, db := a[i]^target[i], b[i]^target[i]
		if da != db {
			return da < db
		}
	}

	return false
}
