package peers

import (
	"fmt"

	"github.com/mosaicnetworks/eventlinker/src/common"
	"github.com/mosaicnetworks/eventlinker/src/crypto"
)

//PeerSet is a set of Peers creating events for the same hashgraph.
type PeerSet struct {
	Peers    []*Peer          `json:"peers"`
	ByPubKey map[string]*Peer `json:"-"`
	ByID     map[uint32]*Peer `json:"-"`

	hex string
}

//NewPeerSet creates a new PeerSet from a list of Peers
func NewPeerSet(peers []*Peer) *PeerSet {
	peerSet := &PeerSet{
		ByPubKey: make(map[string]*Peer),
		ByID:     make(map[uint32]*Peer),
	}

	for _, peer := range peers {
		peerSet.ByPubKey[peer.PubKeyString()] = peer
		peerSet.ByID[peer.ID()] = peer
	}

	peerSet.Peers = peers

	return peerSet
}

//WithNewPeer returns a new PeerSet with a list of peers including the new one.
func (peerSet *PeerSet) WithNewPeer(peer *Peer) *PeerSet {
	peers := peerSet.Peers

	//don't add it if it already exists
	if _, ok := peerSet.ByID[peer.ID()]; !ok {
		peers = append(peers, peer)
	}

	return NewPeerSet(peers)
}

//IDs returns the PeerSet's slice of IDs, in the order of Peers
func (peerSet *PeerSet) IDs() []uint32 {
	res := make([]uint32, 0, len(peerSet.Peers))

	for _, peer := range peerSet.Peers {
		res = append(res, peer.ID())
	}

	return res
}

//Len returns the number of Peers in the PeerSet
func (peerSet *PeerSet) Len() int {
	return len(peerSet.ByPubKey)
}

//Peer returns the Peer with the given creator id.
func (peerSet *PeerSet) Peer(id uint32) (*Peer, error) {
	peer, ok := peerSet.ByID[id]
	if !ok {
		return nil, common.NewStoreErr("PeerSet", common.UnknownParticipant, fmt.Sprint(id))
	}
	return peer, nil
}

//Validate checks that peers have decodable public keys and distinct ids.
func (peerSet *PeerSet) Validate() error {
	seen := make(map[uint32]string, len(peerSet.Peers))
	for _, p := range peerSet.Peers {
		if len(p.PubKeyBytes()) == 0 {
			return fmt.Errorf("peer %q has an invalid public key", p.Moniker)
		}
		if other, ok := seen[p.ID()]; ok {
			return fmt.Errorf("peers %s and %s share creator id %d", other, p.PubKeyString(), p.ID())
		}
		seen[p.ID()] = p.PubKeyString()
	}
	return nil
}

// Hex uniquely identifies a PeerSet. It is computed by hashing (SHA256) their
// public keys together, one by one.
func (peerSet *PeerSet) Hex() string {
	if peerSet.hex == "" {
		hash := []byte{}
		for _, p := range peerSet.Peers {
			hash = crypto.SimpleHashFromTwoHashes(hash, p.PubKeyBytes())
		}
		peerSet.hex = common.EncodeToString(hash)
	}
	return peerSet.hex
}
