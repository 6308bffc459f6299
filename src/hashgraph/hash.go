package hashgraph

import (
	"fmt"

	"github.com/mosaicnetworks/eventlinker/src/common"
	"github.com/mosaicnetworks/eventlinker/src/crypto"
)

// HashLength is the size in bytes of an event hash.
const HashLength = 32

// Hash is the SHA256 digest identifying an event.
type Hash [HashLength]byte

// HashFromBytes copies b into a Hash. It fails if b is not exactly HashLength
// bytes long.
func HashFromBytes(b []byte) (Hash, error) {
	var h Hash
	if len(b) != HashLength {
		return h, fmt.Errorf("hash should be %d bytes, not %d", HashLength, len(b))
	}
	copy(h[:], b)
	return h, nil
}

// SHA256Hash hashes data into a Hash.
func SHA256Hash(data []byte) Hash {
	var h Hash
	copy(h[:], crypto.SHA256(data))
	return h
}

// IsZero is true for the zero Hash, which no event hashes to in practice.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// Hex returns the upper-case hex representation of the hash, with a 0X
// prefix.
func (h Hash) Hex() string {
	return common.EncodeToString(h[:])
}

// Short returns the first 4 bytes of Hex, for logs.
func (h Hash) Short() string {
	return fmt.Sprintf("%X", h[:4])
}

// String implements fmt.Stringer.
func (h Hash) String() string {
	return h.Hex()
}
