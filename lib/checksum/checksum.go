package checksum

import (
	"crypto/sha512"
	"encoding/hex"
)

// Size is the length of a Digest in bytes.
const Size = sha512.Size

// Digest is a SHA-512 hash. Network names and message hashes are both digests.
type Digest [Size]byte

// Sum returns the SHA-512 digest of data.
func Sum(data []byte) Digest {
	return sha512.Sum512(data)
}

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}
