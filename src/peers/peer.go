package peers

import (
	"strings"

	"github.com/mosaicnetworks/eventlinker/src/common"
	"github.com/mosaicnetworks/eventlinker/src/crypto/keys"
)

// Peer is a creator of events.
type Peer struct {
	NetAddr   string
	PubKeyHex string
	Moniker   string

	id uint32
}

// NewPeer creates a new Peer
func NewPeer(pubKeyHex, netAddr, moniker string) *Peer {
	return &Peer{
		PubKeyHex: pubKeyHex,
		NetAddr:   netAddr,
		Moniker:   moniker,
	}
}

// ID returns the creator id of the peer, computed from its public key.
func (p *Peer) ID() uint32 {
	if p.id == 0 {
		p.id = keys.PublicKeyID(p.PubKeyBytes())
	}
	return p.id
}

// PubKeyString returns the upper-case version of PubKeyHex with a 0X prefix.
func (p *Peer) PubKeyString() string {
	return "0X" + strings.TrimPrefix(strings.ToUpper(p.PubKeyHex), "0X")
}

// PubKeyBytes returns the public key as a byte slice. Undecodable keys yield
// nil.
func (p *Peer) PubKeyBytes() []byte {
	b, err := common.DecodeFromString(p.PubKeyHex)
	if err != nil {
		return nil
	}
	return b
}
